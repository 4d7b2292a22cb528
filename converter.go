package invoiceprint

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/lajutuju/go-invoiceprint/internal/assets"
	"github.com/lajutuju/go-invoiceprint/internal/fileutil"
)

// Converter renders orders into invoice HTML, print PDFs and rasterized PDF
// downloads. Create with NewConverter and Close when done.
//
// HTML rendering is safe for concurrent use. Browser work shares one Chrome
// instance; use a ConverterPool to run exports in parallel.
type Converter struct {
	cfg      converterConfig
	loader   assets.AssetLoader
	html     *htmlRenderer
	renderer pdfRenderer
	log      zerolog.Logger
}

// NewConverter creates a Converter with default configuration.
// Returns an error if assets cannot be loaded or settings are invalid.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			timeout: defaultTimeout,
			export:  DefaultExportSettings(),
		},
		loader: assets.NewEmbeddedLoader(),
		log:    zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.cfg.export.Validate(); err != nil {
		return nil, err
	}

	if c.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		c.loader = resolver
	}

	html, err := newHTMLRenderer(c.loader, c.cfg.overrides, c.cfg.dateLayout)
	if err != nil {
		return nil, err
	}
	c.html = html

	// Tests inject a fake renderer before this point.
	if c.renderer == nil {
		c.renderer = newRodRenderer(c.cfg.timeout)
	}

	return c, nil
}

// Brand returns the effective brand details for t.
func (c *Converter) Brand(t Template) Brand {
	return c.html.Brand(t)
}

// RenderHTML returns the standalone invoice page for order.
func (c *Converter) RenderHTML(order *Order, t Template) (string, error) {
	if order == nil {
		return "", ErrNilOrder
	}
	return c.html.RenderInvoice(order, t, nil)
}

// RenderPreview returns the interactive preview page for order.
func (c *Converter) RenderPreview(order *Order, t Template, meta []MetaTag, actions ModalActions) (string, error) {
	if order == nil {
		return "", ErrNilOrder
	}
	return c.html.RenderModal(order, t, meta, actions)
}

// Print renders the invoice through the browser's print pipeline and
// returns the printed A4 document.
func (c *Converter) Print(ctx context.Context, order *Order, t Template) (pdf []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	page, err := c.RenderHTML(order, t)
	if err != nil {
		return nil, err
	}

	path, cleanup, err := fileutil.WriteTempFile(page, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	pdf, err = c.renderer.PrintFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("printing invoice: %w", err)
	}
	return pdf, nil
}

// Export rasterizes the invoice and packs the image into a single-page A4
// PDF named after the template and invoice number.
//
// ErrContainerNotReady is returned unwrapped when the page has no invoice
// container. Every other failure wraps ErrPDFGeneration.
func (c *Converter) Export(ctx context.Context, order *Order, t Template) (dl *Download, err error) {
	defer func() {
		if r := recover(); r != nil {
			dl = nil
			err = fmt.Errorf("%w: internal error: %v", ErrPDFGeneration, r)
		}
	}()

	if order == nil {
		return nil, ErrNilOrder
	}

	start := time.Now()
	log := c.log.With().Str("order", order.ID).Str("template", t.String()).Logger()

	page, err := c.html.RenderInvoice(order, t, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPDFGeneration, err)
	}

	path, cleanup, err := fileutil.WriteTempFile(page, "html")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPDFGeneration, err)
	}
	defer cleanup()

	surface, err := c.renderer.OpenFile(ctx, path, c.cfg.export.viewport())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPDFGeneration, err)
	}
	defer func() {
		if cerr := surface.Close(); cerr != nil {
			log.Debug().Err(cerr).Msg("closing capture tab")
		}
	}()

	capture, err := captureInvoice(ctx, surface, string(c.html.Logo(t)), c.cfg.export)
	if errors.Is(err, ErrContainerNotReady) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPDFGeneration, err)
	}

	brand := c.html.Brand(t)
	pdf, err := imageToPDF(capture, pdfMeta{
		Title:   "Invoice #" + order.InvoiceNumber(),
		Author:  brand.Name,
		Subject: order.CustomerName,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPDFGeneration, err)
	}

	log.Debug().
		Int("bytes", len(pdf)).
		Dur("elapsed", time.Since(start)).
		Msg("invoice exported")

	return &Download{Filename: InvoiceFilename(t, order), PDF: pdf}, nil
}

// Close releases browser resources.
func (c *Converter) Close() error {
	if c.renderer != nil {
		return c.renderer.Close()
	}
	return nil
}
