package invoiceprint

import (
	"time"

	"github.com/rs/zerolog"
)

// Download is an exported invoice ready to be saved.
type Download struct {
	Filename string // e.g. "Invoice-LajuTuju-A1B2C3D4.pdf"
	PDF      []byte
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout    time.Duration
	assetPath  string
	dateLayout string
	export     ExportSettings
	overrides  map[Template]*BrandOverride
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the browser page load timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("invoiceprint: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithAssetPath loads styles, templates and logos from a directory,
// falling back to the embedded assets for anything missing there.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithDateLayout sets the layout used for invoice dates, e.g. "D MMMM YYYY".
func WithDateLayout(layout string) Option {
	return func(c *Converter) {
		c.cfg.dateLayout = layout
	}
}

// WithExportSettings replaces the rasterized export settings.
func WithExportSettings(s ExportSettings) Option {
	return func(c *Converter) {
		c.cfg.export = s
	}
}

// WithBrandOverride replaces non-empty brand fields of template t.
func WithBrandOverride(t Template, o BrandOverride) Option {
	return func(c *Converter) {
		if c.cfg.overrides == nil {
			c.cfg.overrides = make(map[Template]*BrandOverride)
		}
		c.cfg.overrides[t] = &o
	}
}

// WithLogger sets the logger used for export diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Converter) {
		c.log = l
	}
}
