package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	invoiceprint "github.com/lajutuju/go-invoiceprint"
	"github.com/lajutuju/go-invoiceprint/internal/config"
	"github.com/lajutuju/go-invoiceprint/internal/hints"
	"github.com/lajutuju/go-invoiceprint/internal/logging"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage              = errors.New("invalid usage")
	ErrNoInput            = errors.New("no order files specified")
	ErrReadOrder          = errors.New("failed to read order")
	ErrWriteOutput        = errors.New("failed to write output")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// maxWorkers caps explicit --workers values.
const maxWorkers = 32

// loadConfig resolves the configuration for a command.
// Precedence: CLI flags > env vars > config file > defaults.
func loadConfig(common commonFlags, env *envConfig) (*config.Config, error) {
	cfg := config.DefaultConfig()

	name := common.config
	if name == "" {
		name = env.ConfigPath
	}
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
		}
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	applyEnvConfig(env, cfg)
	return cfg, nil
}

// mergeRendererFlags applies converter flags over cfg. Only explicitly
// set flags win.
func mergeRendererFlags(f *rendererFlags, cfg *config.Config) error {
	if f.workers < 0 || f.workers > maxWorkers {
		return fmt.Errorf("%w: %d (must be 0-%d)", ErrInvalidWorkerCount, f.workers, maxWorkers)
	}
	if f.workers > 0 {
		cfg.Workers = f.workers
	}
	if f.template != "" {
		cfg.Template = f.template
	}
	if f.timeout != "" {
		cfg.Timeout = f.timeout
	}
	if f.assetPath != "" {
		cfg.Assets.BasePath = f.assetPath
	}
	if f.dateLayout != "" {
		cfg.DateLayout = f.dateLayout
	}
	return nil
}

// resolveTemplate parses the configured template name.
func resolveTemplate(cfg *config.Config) (invoiceprint.Template, error) {
	t, err := invoiceprint.ParseTemplate(cfg.Template)
	if err != nil {
		return t, fmt.Errorf("%w%s", err, hints.ForTemplate(templateNames()))
	}
	return t, nil
}

func templateNames() []string {
	names := make([]string, len(invoiceprint.Templates))
	for i, t := range invoiceprint.Templates {
		names[i] = t.String()
	}
	return names
}

// newLogger builds the command logger. --verbose forces debug, --quiet
// keeps errors only.
func newLogger(cfg *config.Config, common commonFlags, w io.Writer) zerolog.Logger {
	lc := logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format}
	switch {
	case common.verbose:
		lc.Level = "debug"
	case common.quiet:
		lc.Level = "error"
	}
	return logging.New(lc, w)
}

// exportSettings maps the export section of cfg to converter settings.
func exportSettings(cfg *config.Config) invoiceprint.ExportSettings {
	s := invoiceprint.DefaultExportSettings()
	s.Width = cfg.Export.Width
	s.Padding = cfg.Export.Padding
	s.Scale = cfg.Export.Scale
	if cfg.Export.SettleDelay != "" {
		s.SettleDelay = cfg.Export.SettleDelayDuration()
	}
	s.WatermarkOpacity = cfg.Export.WatermarkOpacity
	s.WatermarkWidth = cfg.Export.WatermarkWidth
	return s
}

// brandOverride maps a config brand section to a converter override.
func brandOverride(b config.BrandConfig) invoiceprint.BrandOverride {
	return invoiceprint.BrandOverride{
		Name:          b.Name,
		Address:       b.Address,
		Phone:         b.Phone,
		Email:         b.Email,
		Website:       b.Website,
		BankName:      b.BankName,
		AccountNumber: b.AccountNumber,
		AccountHolder: b.AccountHolder,
		Note:          b.Note,
	}
}

// converterOptions builds the options every pooled converter is created
// with. cfg must be validated.
func converterOptions(cfg *config.Config, log zerolog.Logger) ([]invoiceprint.Option, error) {
	settings := exportSettings(cfg)
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	opts := []invoiceprint.Option{
		invoiceprint.WithExportSettings(settings),
		invoiceprint.WithLogger(log),
	}

	if cfg.Timeout != "" {
		d, err := time.ParseDuration(cfg.Timeout)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("%w: %q", invoiceprint.ErrInvalidTimeout, cfg.Timeout)
		}
		opts = append(opts, invoiceprint.WithTimeout(d))
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, invoiceprint.WithAssetPath(cfg.Assets.BasePath))
	}
	if cfg.DateLayout != "" {
		opts = append(opts, invoiceprint.WithDateLayout(cfg.DateLayout))
	}
	if !cfg.Brands.LajuTuju.IsZero() {
		opts = append(opts, invoiceprint.WithBrandOverride(invoiceprint.TemplateLajuTuju, brandOverride(cfg.Brands.LajuTuju)))
	}
	if !cfg.Brands.Biggor.IsZero() {
		opts = append(opts, invoiceprint.WithBrandOverride(invoiceprint.TemplateBiggor, brandOverride(cfg.Brands.Biggor)))
	}

	return opts, nil
}
