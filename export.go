package invoiceprint

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Export defaults: A4 width at 96 DPI, rendered at twice the pixel density.
const (
	DefaultCaptureWidth     = 794
	DefaultCapturePadding   = 40
	DefaultCaptureScale     = 2.0
	DefaultSettleDelay      = 300 * time.Millisecond
	DefaultWatermarkOpacity = 0.08
	DefaultWatermarkWidth   = 350

	// captureViewportHeight only sizes the tab; the element screenshot
	// covers the full container height.
	captureViewportHeight = 1123
)

// ExportSettings tunes the rasterized export.
type ExportSettings struct {
	Width            int           // container width in CSS pixels
	Padding          int           // container padding in CSS pixels
	Scale            float64       // device pixel ratio of the capture
	SettleDelay      time.Duration // wait after restyling, before capture
	WatermarkOpacity float64
	WatermarkWidth   int
}

// DefaultExportSettings returns the settings used when none are given.
func DefaultExportSettings() ExportSettings {
	return ExportSettings{
		Width:            DefaultCaptureWidth,
		Padding:          DefaultCapturePadding,
		Scale:            DefaultCaptureScale,
		SettleDelay:      DefaultSettleDelay,
		WatermarkOpacity: DefaultWatermarkOpacity,
		WatermarkWidth:   DefaultWatermarkWidth,
	}
}

// Validate checks export settings bounds.
func (s ExportSettings) Validate() error {
	if s.Width <= 0 {
		return fmt.Errorf("%w: width %d", ErrInvalidExportSettings, s.Width)
	}
	if s.Padding < 0 || s.Padding*2 >= s.Width {
		return fmt.Errorf("%w: padding %d", ErrInvalidExportSettings, s.Padding)
	}
	if s.Scale <= 0 || s.Scale > 4 {
		return fmt.Errorf("%w: scale %.2f (must be > 0 and <= 4)", ErrInvalidExportSettings, s.Scale)
	}
	if s.SettleDelay < 0 {
		return fmt.Errorf("%w: negative settle delay", ErrInvalidExportSettings)
	}
	if s.WatermarkOpacity < 0 || s.WatermarkOpacity > 1 {
		return fmt.Errorf("%w: watermark opacity %.2f", ErrInvalidExportSettings, s.WatermarkOpacity)
	}
	if s.WatermarkWidth < 0 {
		return fmt.Errorf("%w: watermark width %d", ErrInvalidExportSettings, s.WatermarkWidth)
	}
	return nil
}

func (s ExportSettings) viewport() viewport {
	return viewport{Width: s.Width, Height: captureViewportHeight, Scale: s.Scale}
}

// captureInvoice rasterizes the invoice container of s.
//
// The container is restyled to a fixed width with the brand logo as a faint
// watermark, left to settle, then captured. Its style attribute and children
// are restored whatever happens. ErrContainerNotReady is returned before
// anything is touched when the container is missing.
func captureInvoice(ctx context.Context, s captureSurface, watermark string, settings ExportSettings) (png []byte, err error) {
	ready, err := s.Ready()
	if err != nil {
		return nil, fmt.Errorf("%w: locating container: %v", ErrRasterize, err)
	}
	if !ready {
		return nil, ErrContainerNotReady
	}

	original, err := s.Style()
	if err != nil {
		return nil, fmt.Errorf("%w: reading style: %v", ErrRasterize, err)
	}

	defer func() {
		var cleanupErrs []error
		if rerr := s.RemoveWatermark(); rerr != nil {
			cleanupErrs = append(cleanupErrs, fmt.Errorf("removing watermark: %w", rerr))
		}
		if rerr := s.SetStyle(original); rerr != nil {
			cleanupErrs = append(cleanupErrs, fmt.Errorf("restoring style: %w", rerr))
		}
		if len(cleanupErrs) > 0 && err == nil {
			png = nil
			err = fmt.Errorf("%w: %v", ErrRasterize, errors.Join(cleanupErrs...))
		}
	}()

	if watermark != "" && settings.WatermarkWidth > 0 {
		if err := s.AddWatermark(watermark, settings.WatermarkOpacity, settings.WatermarkWidth); err != nil {
			return nil, fmt.Errorf("%w: adding watermark: %v", ErrRasterize, err)
		}
	}

	style := buildCaptureStyle(settings.Width, settings.Padding)
	if err := s.SetStyle(&style); err != nil {
		return nil, fmt.Errorf("%w: applying capture style: %v", ErrRasterize, err)
	}

	if err := settle(ctx, settings.SettleDelay); err != nil {
		return nil, err
	}

	png, err = s.Screenshot()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRasterize, err)
	}
	return png, nil
}

// settle waits d or until ctx is done.
func settle(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
