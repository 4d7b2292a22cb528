package assets

import (
	"fmt"
	"strings"
)

// Asset kinds. Each kind is a directory with a fixed file extension.
const (
	KindStyle    = "styles"
	KindTemplate = "templates"
	KindLogo     = "logos"
)

// kindExtensions maps a kind to the extension appended to asset names.
var kindExtensions = map[string]string{
	KindStyle:    ".css",
	KindTemplate: ".html",
	KindLogo:     ".svg",
}

// AssetLoader defines the contract for loading invoice assets.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	LoadStyle(name string) (string, error)

	// LoadTemplate loads an HTML template by name (without .html extension).
	LoadTemplate(name string) (string, error)

	// LoadLogo loads an SVG logo by name (without .svg extension).
	LoadLogo(name string) ([]byte, error)
}

// ValidateAssetName checks that an asset name is safe for use as a filename.
// Returns ErrInvalidAssetName if the name is empty or contains path separators,
// dots or a NUL byte.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}

// assetPath returns the slash-separated relative path of an asset.
func assetPath(kind, name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}
	ext, ok := kindExtensions[kind]
	if !ok {
		return "", fmt.Errorf("%w: unknown kind %q", ErrInvalidAssetName, kind)
	}
	return kind + "/" + name + ext, nil
}
