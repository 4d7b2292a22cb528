package invoiceprint

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/phpdave11/gofpdf"
)

// captureImageName registers the capture inside the PDF.
const captureImageName = "invoice"

// pdfMeta is written to the document information dictionary.
type pdfMeta struct {
	Title   string
	Author  string
	Subject string
}

// imageToPDF places a PNG capture on a single A4 portrait page, scaled to the
// full page width with its aspect ratio kept. Content taller than the page
// is clipped at the bottom edge.
func imageToPDF(capture []byte, meta pdfMeta) ([]byte, error) {
	cfg, err := png.DecodeConfig(bytes.NewReader(capture))
	if err != nil {
		return nil, fmt.Errorf("decoding capture: %w", err)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return nil, fmt.Errorf("empty capture (%dx%d)", cfg.Width, cfg.Height)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(true)
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(meta.Title, true)
	pdf.SetAuthor(meta.Author, true)
	pdf.SetSubject(meta.Subject, true)
	pdf.SetCreator("go-invoiceprint", true)
	pdf.AddPage()

	pageWidth, _ := pdf.GetPageSize()
	height := pageWidth * float64(cfg.Height) / float64(cfg.Width)

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(captureImageName, opts, bytes.NewReader(capture))
	pdf.ImageOptions(captureImageName, 0, 0, pageWidth, height, false, opts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}
