// Package invoiceprint renders rental orders as branded invoices and exports
// them through headless Chrome.
//
// # Quick Start
//
// Create a converter, export an order, and close when done:
//
//	conv, err := invoiceprint.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	order, err := invoiceprint.LoadOrder("order.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	dl, err := conv.Export(ctx, order, invoiceprint.TemplateBiggor)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile(dl.Filename, dl.PDF, 0644)
//
// # Templates
//
// Two brand layouts render the same order data: TemplateLajuTuju (the
// default) and TemplateBiggor. They differ in logo, colors, contact and
// payment details. Amounts are displayed as supplied, never recomputed.
//
// # Export
//
// Export loads the invoice page in a fresh tab, adds a faint brand logo
// watermark, fixes the invoice container to A4 width (794 px at 96 DPI),
// waits for layout to settle and captures it at twice the pixel density.
// The capture is placed full-width on one A4 page with gofpdf. The
// container is restored afterwards whether the capture succeeded or not.
//
// Print, by contrast, uses Chrome's own print pipeline.
//
// # Preview Modal
//
// Modal ties an order to a selected template and the print, download and
// close actions. Mount it into a Host such as Document to install the
// telephone format-detection hint and the Escape key listener:
//
//	doc := &invoiceprint.Document{}
//	modal := invoiceprint.NewModal(conv, order, onClose,
//	    invoiceprint.WithAlerter(showAlert),
//	)
//	unmount := modal.Mount(doc)
//	defer unmount()
//
//	doc.DispatchKey(invoiceprint.KeyEscape) // calls onClose
//
// DownloadPDF rejects overlapping calls with ErrExportInProgress.
//
// # Command Line
//
// cmd/invoiceprint wraps the package: export, print and html render order
// files (YAML or JSON), and serve runs a preview server that hosts one
// Modal per session under /Dasbhoard/.
//
// # Parallel Processing
//
// For batch export, use ConverterPool to manage multiple browser instances:
//
//	pool := invoiceprint.NewConverterPool(invoiceprint.ResolvePoolSize(0))
//	defer pool.Close()
//
//	conv, err := pool.Acquire(ctx)
//	if err != nil {
//	    return err
//	}
//	defer pool.Release(conv)
package invoiceprint
