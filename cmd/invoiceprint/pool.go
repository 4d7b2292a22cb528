package main

import (
	"context"
	"errors"

	invoiceprint "github.com/lajutuju/go-invoiceprint"
)

// Renderer is the per-invoice work the CLI delegates to a converter.
type Renderer interface {
	RenderHTML(order *invoiceprint.Order, t invoiceprint.Template) (string, error)
	Print(ctx context.Context, order *invoiceprint.Order, t invoiceprint.Template) ([]byte, error)
	Export(ctx context.Context, order *invoiceprint.Order, t invoiceprint.Template) (*invoiceprint.Download, error)
}

// Compile-time interface implementation check.
var _ Renderer = (*invoiceprint.Converter)(nil)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire(ctx context.Context) (Renderer, error)
	Release(Renderer)
	Size() int
	Close() error
}

// errForeignRenderer is returned when a renderer not created by the pool
// is released into it.
var errForeignRenderer = errors.New("renderer does not belong to this pool")

// converterPool adapts invoiceprint.ConverterPool to Pool.
type converterPool struct {
	*invoiceprint.ConverterPool
}

var _ Pool = (*converterPool)(nil)

func newConverterPool(size int, opts ...invoiceprint.Option) Pool {
	return &converterPool{invoiceprint.NewConverterPool(size, opts...)}
}

func (p *converterPool) Acquire(ctx context.Context) (Renderer, error) {
	c, err := p.ConverterPool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (p *converterPool) Release(r Renderer) {
	c, ok := r.(*invoiceprint.Converter)
	if !ok {
		panic(errForeignRenderer)
	}
	p.ConverterPool.Release(c)
}
