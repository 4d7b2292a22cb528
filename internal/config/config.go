// Package config loads the invoiceprint YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lajutuju/go-invoiceprint/internal/fileutil"
	"github.com/lajutuju/go-invoiceprint/internal/logging"
	"github.com/lajutuju/go-invoiceprint/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxBrandNameLength    = 100
	MaxAddressLength      = 300
	MaxPhoneLength        = 30
	MaxEmailLength        = 254
	MaxWebsiteLength      = 200
	MaxBankNameLength     = 100
	MaxAccountLength      = 50
	MaxAccountHolderLen   = 100
	MaxNoteLength         = 2000
	MaxDateLayoutLength   = 50
	MaxBasePathLength     = 200
	maxConfigFileSize     = 1 << 20
	defaultServerBasePath = "/Dasbhoard/"
)

// Known template names. Kept in sync with the root package's templates.
var templateNames = []string{"lajutuju", "biggor"}

// Config holds all configuration options.
type Config struct {
	Template   string       `yaml:"template"`
	DateLayout string       `yaml:"dateLayout"`
	Timeout    string       `yaml:"timeout"`
	Workers    int          `yaml:"workers"`
	Assets     AssetsConfig `yaml:"assets"`
	Output     OutputConfig `yaml:"output"`
	Export     ExportConfig `yaml:"export"`
	Log        LogConfig    `yaml:"log"`
	Serve      ServeConfig  `yaml:"serve"`
	Brands     BrandsConfig `yaml:"brands"`
}

// AssetsConfig points at a directory overriding embedded styles, templates
// and logos.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"`
}

// OutputConfig defines where generated files go.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"`
}

// ExportConfig tunes the rasterized export.
type ExportConfig struct {
	Width            int     `yaml:"width"`
	Padding          int     `yaml:"padding"`
	Scale            float64 `yaml:"scale"`
	SettleDelay      string  `yaml:"settleDelay"`
	WatermarkOpacity float64 `yaml:"watermarkOpacity"`
	WatermarkWidth   int     `yaml:"watermarkWidth"`
}

// LogConfig selects log level and format.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ServeConfig configures the preview server.
type ServeConfig struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	BasePath  string `yaml:"basePath"`
	OrdersDir string `yaml:"ordersDir"`
}

// BrandsConfig holds per-template brand overrides.
type BrandsConfig struct {
	LajuTuju BrandConfig `yaml:"lajutuju"`
	Biggor   BrandConfig `yaml:"biggor"`
}

// BrandConfig overrides brand details. Empty fields keep the built-in value.
type BrandConfig struct {
	Name          string `yaml:"name"`
	Address       string `yaml:"address"`
	Phone         string `yaml:"phone"`
	Email         string `yaml:"email"`
	Website       string `yaml:"website"`
	BankName      string `yaml:"bankName"`
	AccountNumber string `yaml:"accountNumber"`
	AccountHolder string `yaml:"accountHolder"`
	Note          string `yaml:"note"`
}

// IsZero reports whether no field is set.
func (b BrandConfig) IsZero() bool {
	return b == BrandConfig{}
}

// Validate checks field lengths and value ranges.
func (c *Config) Validate() error {
	if c.Template != "" && !isTemplateName(c.Template) {
		return fmt.Errorf("%w: template %q (available: %s)", ErrInvalidValue, c.Template, strings.Join(templateNames, ", "))
	}
	if err := validateFieldLength("dateLayout", c.DateLayout, MaxDateLayoutLength); err != nil {
		return err
	}
	if c.Timeout != "" {
		d, err := time.ParseDuration(c.Timeout)
		if err != nil {
			return fmt.Errorf("%w: timeout %q: %v", ErrInvalidValue, c.Timeout, err)
		}
		if d <= 0 {
			return fmt.Errorf("%w: timeout must be positive, got %s", ErrInvalidValue, c.Timeout)
		}
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be >= 0, got %d", ErrInvalidValue, c.Workers)
	}
	if err := c.Export.validate(); err != nil {
		return err
	}
	if !logging.ValidLevel(c.Log.Level) {
		return fmt.Errorf("%w: log.level %q", ErrInvalidValue, c.Log.Level)
	}
	if !logging.ValidFormat(c.Log.Format) {
		return fmt.Errorf("%w: log.format %q (available: console, json)", ErrInvalidValue, c.Log.Format)
	}
	if err := c.Serve.validate(); err != nil {
		return err
	}
	if err := c.Brands.LajuTuju.validate("brands.lajutuju"); err != nil {
		return err
	}
	return c.Brands.Biggor.validate("brands.biggor")
}

func (e ExportConfig) validate() error {
	if e.Width <= 0 {
		return fmt.Errorf("%w: export.width must be positive, got %d", ErrInvalidValue, e.Width)
	}
	if e.Padding < 0 || 2*e.Padding >= e.Width {
		return fmt.Errorf("%w: export.padding must be >= 0 and leave room for content, got %d", ErrInvalidValue, e.Padding)
	}
	if e.Scale <= 0 || e.Scale > 4 {
		return fmt.Errorf("%w: export.scale must be in (0, 4], got %g", ErrInvalidValue, e.Scale)
	}
	if e.SettleDelay != "" {
		d, err := time.ParseDuration(e.SettleDelay)
		if err != nil {
			return fmt.Errorf("%w: export.settleDelay %q: %v", ErrInvalidValue, e.SettleDelay, err)
		}
		if d < 0 {
			return fmt.Errorf("%w: export.settleDelay must be >= 0, got %s", ErrInvalidValue, e.SettleDelay)
		}
	}
	if e.WatermarkOpacity < 0 || e.WatermarkOpacity > 1 {
		return fmt.Errorf("%w: export.watermarkOpacity must be between 0 and 1, got %g", ErrInvalidValue, e.WatermarkOpacity)
	}
	if e.WatermarkWidth < 0 {
		return fmt.Errorf("%w: export.watermarkWidth must be >= 0, got %d", ErrInvalidValue, e.WatermarkWidth)
	}
	return nil
}

func (s ServeConfig) validate() error {
	if s.Port < 0 || s.Port > 65535 {
		return fmt.Errorf("%w: serve.port must be between 0 and 65535, got %d", ErrInvalidValue, s.Port)
	}
	if err := validateFieldLength("serve.basePath", s.BasePath, MaxBasePathLength); err != nil {
		return err
	}
	if s.BasePath != "" && !strings.HasPrefix(s.BasePath, "/") {
		return fmt.Errorf("%w: serve.basePath must start with /, got %q", ErrInvalidValue, s.BasePath)
	}
	return nil
}

func (b BrandConfig) validate(prefix string) error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"name", b.Name, MaxBrandNameLength},
		{"address", b.Address, MaxAddressLength},
		{"phone", b.Phone, MaxPhoneLength},
		{"email", b.Email, MaxEmailLength},
		{"website", b.Website, MaxWebsiteLength},
		{"bankName", b.BankName, MaxBankNameLength},
		{"accountNumber", b.AccountNumber, MaxAccountLength},
		{"accountHolder", b.AccountHolder, MaxAccountHolderLen},
		{"note", b.Note, MaxNoteLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(prefix+"."+f.name, f.value, f.max); err != nil {
			return err
		}
	}
	return nil
}

// validateFieldLength returns an error if value exceeds maxLength.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s is %d characters (max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

func isTemplateName(name string) bool {
	for _, n := range templateNames {
		if strings.EqualFold(name, n) {
			return true
		}
	}
	return false
}

// TimeoutDuration returns the parsed timeout, or 0 when unset.
// Call after Validate.
func (c *Config) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// SettleDelayDuration returns the parsed settle delay, or 0 when unset.
// Call after Validate.
func (e ExportConfig) SettleDelayDuration() time.Duration {
	d, _ := time.ParseDuration(e.SettleDelay)
	return d
}

// DefaultConfig returns a neutral configuration.
func DefaultConfig() *Config {
	return &Config{
		Template:   "lajutuju",
		DateLayout: "D MMMM YYYY",
		Timeout:    "30s",
		Export: ExportConfig{
			Width:            794,
			Padding:          40,
			Scale:            2,
			SettleDelay:      "300ms",
			WatermarkOpacity: 0.08,
			WatermarkWidth:   350,
		},
		Log: LogConfig{
			Level:  "info",
			Format: logging.FormatConsole,
		},
		Serve: ServeConfig{
			Host:      "127.0.0.1",
			Port:      5173,
			BasePath:  defaultServerBasePath,
			OrdersDir: "orders",
		},
	}
}

// LoadConfig loads a configuration by name or path.
// Fields absent from the file keep their DefaultConfig value.
// If nameOrPath contains a path separator or ends with .yaml/.yml, it's
// treated as a file path. Otherwise, it searches the current directory then
// the user config directory.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath, err := resolveConfigPath(nameOrPath)
	if err != nil {
		return nil, err
	}

	data, err := fileutil.ReadFileLimited(configPath, maxConfigFileSize)
	if err != nil {
		return nil, fmt.Errorf("reading config %q: %w", configPath, err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrConfigParse, configPath, yamlutil.FormatError(err))
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}

	return cfg, nil
}

// isFilePath returns true if the input looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsRune(s, '/') ||
		strings.ContainsRune(s, filepath.Separator) ||
		strings.HasSuffix(s, ".yaml") ||
		strings.HasSuffix(s, ".yml")
}

// resolveConfigPath finds the config file by name or returns the path if it's already a path.
func resolveConfigPath(nameOrPath string) (string, error) {
	if isFilePath(nameOrPath) {
		if !fileutil.FileExists(nameOrPath) {
			return "", fmt.Errorf("%w: %s", ErrConfigNotFound, nameOrPath)
		}
		return nameOrPath, nil
	}

	searched := SearchPaths(nameOrPath)
	for _, path := range searched {
		if fileutil.FileExists(path) {
			return path, nil
		}
	}

	return "", fmt.Errorf("%w: %q (searched: %v)", ErrConfigNotFound, nameOrPath, searched)
}

// SearchPaths returns the candidate files for a config name, in lookup
// order: current directory first, then the user config directory.
func SearchPaths(name string) []string {
	var paths []string
	for _, ext := range []string{".yaml", ".yml"} {
		paths = append(paths, name+ext)
	}
	if configDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range []string{".yaml", ".yml"} {
			paths = append(paths, filepath.Join(configDir, "go-invoiceprint", name+ext))
		}
	}
	return paths
}
