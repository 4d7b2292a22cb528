package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	invoiceprint "github.com/lajutuju/go-invoiceprint"
)

const testOrderYAML = `id: a1b2c3d4-xxxx
customer_name: Budi Santoso
customer_phone: "081234567890"
order_date: "2024-05-01"
rental_start_date: "2024-05-02"
rental_end_date: "2024-05-04"
total_amount: 750000
order_items:
  - car_type: Toyota Avanza
    quantity: 1
    days: 2
    daily_rate: 150000
    subtotal: 300000
`

const secondOrderYAML = `id: e5f6a7b8-yyyy
customer_name: Siti Aminah
total_amount: 450000
order_items: []
`

// mockRenderer records calls and returns canned output.
type mockRenderer struct {
	mu        sync.Mutex
	calls     []string
	err       error
	templates []invoiceprint.Template
}

func (m *mockRenderer) record(kind string, order *invoiceprint.Order, t invoiceprint.Template) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, kind+":"+order.ID)
	m.templates = append(m.templates, t)
}

func (m *mockRenderer) RenderHTML(order *invoiceprint.Order, t invoiceprint.Template) (string, error) {
	m.record("html", order, t)
	if m.err != nil {
		return "", m.err
	}
	return "<html>" + order.ID + "</html>", nil
}

func (m *mockRenderer) Print(_ context.Context, order *invoiceprint.Order, t invoiceprint.Template) ([]byte, error) {
	m.record("print", order, t)
	if m.err != nil {
		return nil, m.err
	}
	return []byte("%PDF-print"), nil
}

func (m *mockRenderer) Export(_ context.Context, order *invoiceprint.Order, t invoiceprint.Template) (*invoiceprint.Download, error) {
	m.record("export", order, t)
	if m.err != nil {
		return nil, m.err
	}
	return &invoiceprint.Download{Filename: invoiceprint.InvoiceFilename(t, order), PDF: []byte("%PDF-raster")}, nil
}

func (m *mockRenderer) getCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// mockPool hands out one shared mockRenderer.
type mockPool struct {
	renderer   *mockRenderer
	acquireErr error

	mu       sync.Mutex
	size     int
	options  int
	acquired int
	released int
	closed   bool
}

func (p *mockPool) Acquire(context.Context) (Renderer, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	p.acquired++
	return p.renderer, nil
}

func (p *mockPool) Release(Renderer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.released++
}

func (p *mockPool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.size
}

func (p *mockPool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

// testEnv returns an environment writing to buffers and backed by pool.
func testEnv(pool *mockPool) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := &Environment{
		Now:    DefaultEnv().Now,
		Stdout: &stdout,
		Stderr: &stderr,
		NewPool: func(size int, opts ...invoiceprint.Option) Pool {
			pool.mu.Lock()
			pool.size = size
			pool.options = len(opts)
			pool.mu.Unlock()
			return pool
		},
	}
	return env, &stdout, &stderr
}

// setupTestDir creates a temp directory with the given files.
func setupTestDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for path, content := range files {
		full := filepath.Join(dir, path)
		if err := os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
			t.Fatalf("setup: %v", err)
		}
		if err := os.WriteFile(full, []byte(content), 0o600); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}
	return dir
}
