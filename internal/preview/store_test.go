package preview

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	invoiceprint "github.com/lajutuju/go-invoiceprint"
)

const yamlOrder = `id: a1b2c3d4-xxxx
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

const jsonOrder = `{"id":"e5f6a7b8-yyyy","customer_name":"Siti","total_amount":450000,"order_items":[]}`

func writeOrders(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"a1b2c3d4-xxxx.yaml": yamlOrder,
		"e5f6a7b8-yyyy.json": jsonOrder,
		"broken.yml":         "customer_name: [",
		"README.md":          "not an order",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive.yaml"), 0o750))
	return dir
}

// ---------------------------------------------------------------------------
// TestDirStore
// ---------------------------------------------------------------------------

func TestDirStore_Get(t *testing.T) {
	t.Parallel()

	store := NewDirStore(writeOrders(t))

	t.Run("yaml order", func(t *testing.T) {
		t.Parallel()

		o, err := store.Get("a1b2c3d4-xxxx")
		require.NoError(t, err)
		assert.Equal(t, "Budi Santoso", o.CustomerName)
		assert.Equal(t, "750000", o.TotalAmount.String())
		require.Len(t, o.Items, 1)
		assert.Equal(t, "300000", o.Items[0].Subtotal.String())
	})

	t.Run("json order", func(t *testing.T) {
		t.Parallel()

		o, err := store.Get("e5f6a7b8-yyyy")
		require.NoError(t, err)
		assert.Equal(t, "Siti", o.CustomerName)
	})

	t.Run("missing order", func(t *testing.T) {
		t.Parallel()

		_, err := store.Get("nope")
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})

	t.Run("path traversal is not found", func(t *testing.T) {
		t.Parallel()

		for _, id := range []string{"../a1b2c3d4-xxxx", "..", "a/b", `a\b`, ""} {
			_, err := store.Get(id)
			assert.ErrorIs(t, err, ErrOrderNotFound, "id %q", id)
		}
	})

	t.Run("malformed order is an error", func(t *testing.T) {
		t.Parallel()

		_, err := store.Get("broken")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestDirStore_List(t *testing.T) {
	t.Parallel()

	ids, err := NewDirStore(writeOrders(t)).List()
	require.NoError(t, err)
	assert.Equal(t, []string{"a1b2c3d4-xxxx", "broken", "e5f6a7b8-yyyy"}, ids)

	_, err = NewDirStore(filepath.Join(t.TempDir(), "missing")).List()
	assert.Error(t, err)
}

// ---------------------------------------------------------------------------
// TestPooledRenderer
// ---------------------------------------------------------------------------

type countingPool struct {
	conv *invoiceprint.Converter

	mu       sync.Mutex
	acquired int
	released int
}

func (p *countingPool) Acquire(context.Context) (*invoiceprint.Converter, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.acquired++
	return p.conv, nil
}

func (p *countingPool) Release(*invoiceprint.Converter) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.released++
}

func TestPooledRenderer_RenderPreview(t *testing.T) {
	t.Parallel()

	// HTML rendering never starts the browser.
	conv, err := invoiceprint.NewConverter()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conv.Close() })

	pool := &countingPool{conv: conv}
	r := PooledRenderer(pool)

	page, err := r.RenderPreview(testOrder(), invoiceprint.TemplateBiggor, nil, invoiceprint.ModalActions{Template: "/x/template"})
	require.NoError(t, err)
	assert.Contains(t, page, "A1B2C3D4")
	assert.Contains(t, page, `action="/x/template"`)

	pool.mu.Lock()
	defer pool.mu.Unlock()
	assert.Equal(t, 1, pool.acquired)
	assert.Equal(t, 1, pool.released)
}

// busyPool never frees a converter.
type busyPool struct{}

func (busyPool) Acquire(ctx context.Context) (*invoiceprint.Converter, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (busyPool) Release(*invoiceprint.Converter) {}

func TestPooledRenderer_RenderPreview_BusyPool(t *testing.T) {
	t.Parallel()

	r := &pooledRenderer{pool: busyPool{}, wait: 20 * time.Millisecond}

	done := make(chan error, 1)
	go func() {
		_, err := r.RenderPreview(testOrder(), invoiceprint.TemplateLajuTuju, nil, invoiceprint.ModalActions{})
		done <- err
	}()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	case <-time.After(5 * time.Second):
		t.Fatal("RenderPreview kept waiting on a busy pool")
	}
}
