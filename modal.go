package invoiceprint

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// Meta hint that stops mobile browsers from turning numbers into tel: links.
const (
	metaFormatDetection   = "format-detection"
	formatDetectionNoTele = "telephone=no"
)

// InvoiceRenderer renders and exports invoices. *Converter implements it.
type InvoiceRenderer interface {
	RenderPreview(order *Order, t Template, meta []MetaTag, actions ModalActions) (string, error)
	Print(ctx context.Context, order *Order, t Template) ([]byte, error)
	Export(ctx context.Context, order *Order, t Template) (*Download, error)
}

var _ InvoiceRenderer = (*Converter)(nil)

// Alerter shows a message to the end user.
type Alerter func(message string)

// ModalOption configures a Modal.
type ModalOption func(*Modal)

// WithAlerter sets the callback that surfaces export failures to users.
func WithAlerter(a Alerter) ModalOption {
	return func(m *Modal) {
		m.alert = a
	}
}

// WithModalLogger sets the logger export failures are written to.
func WithModalLogger(l zerolog.Logger) ModalOption {
	return func(m *Modal) {
		m.log = l
	}
}

// WithInitialTemplate selects the template shown first.
func WithInitialTemplate(t Template) ModalOption {
	return func(m *Modal) {
		if t.Valid() {
			m.template = t
		}
	}
}

// Modal is the invoice preview: one order, a selectable template and the
// print, download and close actions. The order is never modified.
type Modal struct {
	renderer InvoiceRenderer
	order    *Order
	onClose  func()
	alert    Alerter
	log      zerolog.Logger

	mu       sync.Mutex
	template Template
	host     Host

	exporting atomic.Bool
}

// NewModal creates a modal for order. onClose is invoked on Close and on
// Escape while mounted; it may be nil.
func NewModal(r InvoiceRenderer, order *Order, onClose func(), opts ...ModalOption) *Modal {
	m := &Modal{
		renderer: r,
		order:    order,
		onClose:  onClose,
		alert:    func(string) {},
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Order returns the order shown by the modal.
func (m *Modal) Order() *Order {
	return m.order
}

// Template returns the selected template.
func (m *Modal) Template() Template {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.template
}

// SelectTemplate switches the layout. Only presentation changes.
func (m *Modal) SelectTemplate(t Template) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownTemplate, int(t))
	}
	m.mu.Lock()
	m.template = t
	m.mu.Unlock()
	return nil
}

// HTML renders the preview page for the selected template, including the
// meta tags of the host the modal is mounted in.
func (m *Modal) HTML(actions ModalActions) (string, error) {
	m.mu.Lock()
	t, host := m.template, m.host
	m.mu.Unlock()

	var meta []MetaTag
	if host != nil {
		meta = host.Meta()
	}
	return m.renderer.RenderPreview(m.order, t, meta, actions)
}

// Print returns the browser-printed invoice for the selected template.
func (m *Modal) Print(ctx context.Context) ([]byte, error) {
	return m.renderer.Print(ctx, m.order, m.Template())
}

// DownloadPDF exports the selected template as a rasterized PDF.
//
// It returns (nil, nil) when the invoice container is not ready, and
// ErrExportInProgress while another export of this modal is running.
// Other failures are logged, reported through the Alerter with
// FailureNotice, and returned wrapping ErrPDFGeneration. The modal stays
// usable after a failure.
func (m *Modal) DownloadPDF(ctx context.Context) (*Download, error) {
	if !m.exporting.CompareAndSwap(false, true) {
		return nil, ErrExportInProgress
	}
	defer m.exporting.Store(false)

	t := m.Template()
	dl, err := m.renderer.Export(ctx, m.order, t)
	switch {
	case errors.Is(err, ErrContainerNotReady):
		m.log.Debug().Str("template", t.String()).Msg("invoice container not ready, export skipped")
		return nil, nil
	case err != nil:
		if !errors.Is(err, ErrPDFGeneration) {
			err = fmt.Errorf("%w: %w", ErrPDFGeneration, err)
		}
		m.log.Error().Err(err).
			Str("order", m.orderID()).
			Str("template", t.String()).
			Msg("PDF error")
		m.alert(FailureNotice)
		return nil, err
	}
	return dl, nil
}

// Exporting reports whether a DownloadPDF call is running.
func (m *Modal) Exporting() bool {
	return m.exporting.Load()
}

// Close invokes the dismissal callback.
func (m *Modal) Close() {
	if m.onClose != nil {
		m.onClose()
	}
}

// Mount installs the telephone format-detection hint and an Escape
// listener that closes the modal. The returned func removes both; it is
// idempotent and safe to call from the dismissal callback.
func (m *Modal) Mount(host Host) (unmount func()) {
	removeMeta := host.AddMeta(metaFormatDetection, formatDetectionNoTele)
	removeKey := host.AddKeyListener(func(key string) {
		if key == KeyEscape {
			m.Close()
		}
	})

	m.mu.Lock()
	m.host = host
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			removeKey()
			removeMeta()
			m.mu.Lock()
			if m.host == host {
				m.host = nil
			}
			m.mu.Unlock()
		})
	}
}

// Mounted reports whether the modal is mounted in a host.
func (m *Modal) Mounted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.host != nil
}

func (m *Modal) orderID() string {
	if m.order == nil {
		return ""
	}
	return m.order.ID
}
