package preview

import (
	"context"
	"time"

	invoiceprint "github.com/lajutuju/go-invoiceprint"
)

// ConverterPool is the subset of *invoiceprint.ConverterPool the server
// needs.
type ConverterPool interface {
	Acquire(ctx context.Context) (*invoiceprint.Converter, error)
	Release(c *invoiceprint.Converter)
}

// previewAcquireTimeout bounds how long a preview page waits for a free
// converter while every converter is busy exporting.
const previewAcquireTimeout = 10 * time.Second

// PooledRenderer adapts a converter pool to invoiceprint.InvoiceRenderer,
// holding a converter only for the duration of each call.
func PooledRenderer(pool ConverterPool) invoiceprint.InvoiceRenderer {
	return &pooledRenderer{pool: pool, wait: previewAcquireTimeout}
}

type pooledRenderer struct {
	pool ConverterPool
	wait time.Duration
}

func (p *pooledRenderer) RenderPreview(order *invoiceprint.Order, t invoiceprint.Template, meta []invoiceprint.MetaTag, actions invoiceprint.ModalActions) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), p.wait)
	defer cancel()

	c, err := p.pool.Acquire(ctx)
	if err != nil {
		return "", err
	}
	defer p.pool.Release(c)
	return c.RenderPreview(order, t, meta, actions)
}

func (p *pooledRenderer) Print(ctx context.Context, order *invoiceprint.Order, t invoiceprint.Template) ([]byte, error) {
	c, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer p.pool.Release(c)
	return c.Print(ctx, order, t)
}

func (p *pooledRenderer) Export(ctx context.Context, order *invoiceprint.Order, t invoiceprint.Template) (*invoiceprint.Download, error) {
	c, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer p.pool.Release(c)
	return c.Export(ctx, order, t)
}
