//go:build integration

package invoiceprint

// Notes:
// - Needs Chrome; rod downloads Chromium on first run if none is found.
// - testPool is shared by every test and closed in TestMain.
// - Pool size is capped at 2 to keep CI memory usage low.

import (
	"bytes"
	"context"
	"os"
	"testing"
	"time"
)

// testTimeout bounds each browser operation.
const testTimeout = 60 * time.Second

var testPool *ConverterPool

func TestMain(m *testing.M) {
	size := ResolvePoolSize(0)
	if size > 2 {
		size = 2
	}
	testPool = NewConverterPool(size)

	code := m.Run()

	_ = testPool.Close()
	os.Exit(code)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func acquireConverter(t *testing.T) *Converter {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	conv, err := testPool.Acquire(ctx)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	t.Cleanup(func() { testPool.Release(conv) })
	return conv
}

func assertValidPDF(t *testing.T, data []byte) {
	t.Helper()

	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("data does not have PDF magic bytes, got prefix: %q", data[:min(10, len(data))])
	}
	if len(data) < 100 {
		t.Errorf("PDF data suspiciously small: %d bytes", len(data))
	}
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestConverter_Print_Integration(t *testing.T) {
	t.Parallel()

	for _, tmpl := range Templates {
		t.Run(tmpl.String(), func(t *testing.T) {
			t.Parallel()

			conv := acquireConverter(t)
			ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
			defer cancel()

			pdf, err := conv.Print(ctx, sampleOrder(), tmpl)
			if err != nil {
				t.Fatalf("Print() error = %v", err)
			}
			assertValidPDF(t, pdf)
		})
	}
}

func TestConverter_Export_Integration(t *testing.T) {
	t.Parallel()

	for _, tmpl := range Templates {
		t.Run(tmpl.String(), func(t *testing.T) {
			t.Parallel()

			conv := acquireConverter(t)
			ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
			defer cancel()

			order := sampleOrder()
			dl, err := conv.Export(ctx, order, tmpl)
			if err != nil {
				t.Fatalf("Export() error = %v", err)
			}
			if dl == nil {
				t.Fatal("Export() returned nil download")
			}
			if want := InvoiceFilename(tmpl, order); dl.Filename != want {
				t.Errorf("Filename = %q, want %q", dl.Filename, want)
			}
			assertValidPDF(t, dl.PDF)
		})
	}
}

func TestModal_DownloadPDF_Integration(t *testing.T) {
	t.Parallel()

	conv := acquireConverter(t)
	var closed bool
	m := NewModal(conv, sampleOrder(), func() { closed = true })

	doc := &Document{}
	unmount := m.Mount(doc)
	defer unmount()

	if err := m.SelectTemplate(TemplateBiggor); err != nil {
		t.Fatalf("SelectTemplate() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	dl, err := m.DownloadPDF(ctx)
	if err != nil {
		t.Fatalf("DownloadPDF() error = %v", err)
	}
	if dl == nil || dl.Filename != InvoiceFilename(TemplateBiggor, m.Order()) {
		t.Fatalf("download = %+v", dl)
	}
	assertValidPDF(t, dl.PDF)

	doc.DispatchKey(KeyEscape)
	if !closed {
		t.Error("Escape did not close the modal")
	}
}
