// Package assets provides the HTML templates, CSS and brand logos used to
// render invoices.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in templates, style and logos (go:embed)
//	    ├── FilesystemLoader  - custom directory on disk
//	    └── AssetResolver     - custom first, embedded as fallback
//
// AssetResolver lets a deployment replace a single logo or template while
// keeping every other built-in asset.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css      # e.g. invoice.css
//	├── templates/
//	│   └── {name}.html     # lajutuju.html, biggor.html, page.html, modal.html
//	└── logos/
//	    └── {name}.svg      # lajutuju.svg, biggor.svg
//
// # Security
//
// Asset names are validated to prevent path traversal. FilesystemLoader
// resolves symlinks and verifies paths stay within basePath.
package assets
