package invoiceprint

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"

	"github.com/lajutuju/go-invoiceprint/internal/assets"
	"github.com/lajutuju/go-invoiceprint/internal/dateutil"
)

// Asset names used by the renderer.
const (
	styleInvoice  = "invoice"
	templatePage  = "page"
	templateModal = "modal"
)

// FailureNotice is the generic message shown when the PDF export fails.
const FailureNotice = "Gagal membuat PDF. Coba lagi."

// MetaTag is a <meta name content> pair placed in the page head.
type MetaTag struct {
	Name    string
	Content string
}

// ModalActions holds the endpoints the preview page calls.
type ModalActions struct {
	Template string // POST, form field "template"
	Download string // GET, returns the PDF
	Close    string // POST
	Keys     string // POST, JSON {"key": "..."}
	Done     string // where the browser goes after closing
}

// invoiceView is the data contract shared by both template variants.
type invoiceView struct {
	Brand           Brand
	LogoURI         template.URL
	QRCodeURI       template.URL
	Note            template.HTML
	Number          string
	OrderDate       string
	StartDate       string
	EndDate         string
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string
	Items           []itemView
	Total           string
}

type itemView struct {
	CarType   string
	Quantity  string
	Days      string
	DailyRate string
	Subtotal  string
	Odd       bool
}

type templateOption struct {
	Value    string
	Label    string
	Selected bool
}

type pageView struct {
	Title   string
	Meta    []MetaTag
	Style   template.CSS
	Invoice template.HTML
}

type modalView struct {
	pageView
	Options       []templateOption
	Actions       ModalActions
	FailureNotice string
}

// brandAssets holds everything precomputed per template.
type brandAssets struct {
	brand Brand
	logo  template.URL
	qr    template.URL
	note  template.HTML
	css   string
}

// htmlRenderer renders orders into invoice pages. It is safe for
// concurrent use once constructed.
type htmlRenderer struct {
	lajutuju   *template.Template
	biggor     *template.Template
	page       *template.Template
	modal      *template.Template
	style      string
	brands     map[Template]brandAssets
	dateLayout string
}

// newHTMLRenderer parses templates and precomputes logos, QR codes and
// notes for every brand.
func newHTMLRenderer(loader assets.AssetLoader, overrides map[Template]*BrandOverride, dateLayout string) (*htmlRenderer, error) {
	if dateLayout == "" {
		dateLayout = dateutil.DefaultLayout
	}
	if err := dateutil.ValidateLayout(dateLayout); err != nil {
		return nil, err
	}

	style, err := loader.LoadStyle(styleInvoice)
	if err != nil {
		return nil, fmt.Errorf("loading invoice style: %w", err)
	}

	r := &htmlRenderer{
		style:      style,
		brands:     make(map[Template]brandAssets, len(Templates)),
		dateLayout: dateLayout,
	}

	parse := func(name string) (*template.Template, error) {
		src, err := loader.LoadTemplate(name)
		if err != nil {
			return nil, fmt.Errorf("loading %s template: %w", name, err)
		}
		tpl, err := template.New(name).Parse(src)
		if err != nil {
			return nil, fmt.Errorf("%w: parsing %s: %v", ErrTemplateRender, name, err)
		}
		return tpl, nil
	}

	if r.lajutuju, err = parse(TemplateNameLajuTuju); err != nil {
		return nil, err
	}
	if r.biggor, err = parse(TemplateNameBiggor); err != nil {
		return nil, err
	}
	if r.page, err = parse(templatePage); err != nil {
		return nil, err
	}
	if r.modal, err = parse(templateModal); err != nil {
		return nil, err
	}

	notes := newNoteRenderer()
	for _, t := range Templates {
		brand := overrides[t].apply(DefaultBrand(t))

		logo, err := loader.LoadLogo(brand.Logo)
		if err != nil {
			return nil, fmt.Errorf("loading %s logo: %w", t, err)
		}
		qr, err := qrDataURI(brand.QRPayload)
		if err != nil {
			return nil, err
		}
		note, err := notes.Render(brand.Note)
		if err != nil {
			return nil, err
		}

		r.brands[t] = brandAssets{
			brand: brand,
			logo:  svgDataURI(logo),
			qr:    qr,
			note:  note,
			css:   buildBrandCSS(brand),
		}
	}

	return r, nil
}

// Brand returns the effective brand (defaults plus overrides) for t.
func (r *htmlRenderer) Brand(t Template) Brand {
	return r.brands[t].brand
}

// Logo returns the brand logo as a data URI, used for the export watermark.
func (r *htmlRenderer) Logo(t Template) template.URL {
	return r.brands[t].logo
}

// renderVariant dispatches to the layout of t.
func (r *htmlRenderer) renderVariant(t Template, v *invoiceView) (template.HTML, error) {
	switch t {
	case TemplateLajuTuju:
		return r.renderLajuTuju(v)
	case TemplateBiggor:
		return r.renderBiggor(v)
	}
	return "", fmt.Errorf("%w: %d", ErrUnknownTemplate, int(t))
}

func (r *htmlRenderer) renderLajuTuju(v *invoiceView) (template.HTML, error) {
	return executeFragment(r.lajutuju, v)
}

func (r *htmlRenderer) renderBiggor(v *invoiceView) (template.HTML, error) {
	return executeFragment(r.biggor, v)
}

func executeFragment(tpl *template.Template, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrTemplateRender, tpl.Name(), err)
	}
	// #nosec G203 -- output of html/template is already escaped
	return template.HTML(buf.String()), nil
}

// buildView maps an order to the shared view. Amounts are displayed as
// supplied; nothing is recomputed.
func (r *htmlRenderer) buildView(order *Order, t Template) *invoiceView {
	ba := r.brands[t]
	v := &invoiceView{
		Brand:           ba.brand,
		LogoURI:         ba.logo,
		QRCodeURI:       ba.qr,
		Note:            ba.note,
		Number:          order.InvoiceNumber(),
		OrderDate:       formatDateLayout(order.OrderDate, r.dateLayout),
		StartDate:       formatDateLayout(order.RentalStartDate, r.dateLayout),
		EndDate:         formatDateLayout(order.RentalEndDate, r.dateLayout),
		CustomerName:    order.CustomerName,
		CustomerPhone:   SafePhone(order.CustomerPhone),
		CustomerAddress: order.CustomerAddress,
		Items:           make([]itemView, len(order.Items)),
		Total:           FormatCurrency(order.TotalAmount),
	}
	for i, item := range order.Items {
		v.Items[i] = itemView{
			CarType:   item.CarType,
			Quantity:  strconv.Itoa(item.Quantity),
			Days:      strconv.Itoa(item.Days),
			DailyRate: FormatCurrency(item.DailyRate),
			Subtotal:  FormatCurrency(item.Subtotal),
			Odd:       i%2 == 1,
		}
	}
	return v
}

func (r *htmlRenderer) buildPage(order *Order, t Template, meta []MetaTag) (pageView, error) {
	if !t.Valid() {
		return pageView{}, fmt.Errorf("%w: %d", ErrUnknownTemplate, int(t))
	}
	invoice, err := r.renderVariant(t, r.buildView(order, t))
	if err != nil {
		return pageView{}, err
	}
	brand := r.brands[t]
	return pageView{
		Title: fmt.Sprintf("Invoice #%s - %s", order.InvoiceNumber(), brand.brand.Name),
		Meta:  meta,
		// #nosec G203 -- stylesheet comes from asset loaders and sanitized brand colors
		Style:   template.CSS(r.style + brand.css),
		Invoice: invoice,
	}, nil
}

// RenderInvoice renders a standalone page holding only the invoice
// container (#invoice). Print and export load this page.
func (r *htmlRenderer) RenderInvoice(order *Order, t Template, meta []MetaTag) (string, error) {
	pv, err := r.buildPage(order, t, meta)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := r.page.Execute(&buf, pv); err != nil {
		return "", fmt.Errorf("%w: page: %v", ErrTemplateRender, err)
	}
	return buf.String(), nil
}

// RenderModal renders the preview page: toolbar, Escape handling and the
// invoice container.
func (r *htmlRenderer) RenderModal(order *Order, t Template, meta []MetaTag, actions ModalActions) (string, error) {
	pv, err := r.buildPage(order, t, meta)
	if err != nil {
		return "", err
	}
	mv := modalView{
		pageView:      pv,
		Options:       make([]templateOption, 0, len(Templates)),
		Actions:       actions,
		FailureNotice: FailureNotice,
	}
	for _, opt := range Templates {
		mv.Options = append(mv.Options, templateOption{
			Value:    opt.String(),
			Label:    "Invoice " + r.brands[opt].brand.Name,
			Selected: opt == t,
		})
	}
	var buf bytes.Buffer
	if err := r.modal.Execute(&buf, mv); err != nil {
		return "", fmt.Errorf("%w: modal: %v", ErrTemplateRender, err)
	}
	return buf.String(), nil
}
