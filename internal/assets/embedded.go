package assets

import (
	"embed"
	"fmt"
)

//go:embed styles/* templates/* logos/*
var embedded embed.FS

// EmbeddedLoader loads assets compiled into the binary.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadStyle loads a CSS style from embedded assets by name.
func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	b, err := e.read(KindStyle, name)
	return string(b), err
}

// LoadTemplate loads an HTML template from embedded assets by name.
func (e *EmbeddedLoader) LoadTemplate(name string) (string, error) {
	b, err := e.read(KindTemplate, name)
	return string(b), err
}

// LoadLogo loads an SVG logo from embedded assets by name.
func (e *EmbeddedLoader) LoadLogo(name string) ([]byte, error) {
	return e.read(KindLogo, name)
}

func (e *EmbeddedLoader) read(kind, name string) ([]byte, error) {
	p, err := assetPath(kind, name)
	if err != nil {
		return nil, err
	}
	content, err := embedded.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %q", ErrAssetNotFound, kind, name)
	}
	return content, nil
}

// Compile-time interface check.
var _ AssetLoader = (*EmbeddedLoader)(nil)
