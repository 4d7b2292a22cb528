package invoiceprint

import (
	"fmt"
	"strings"
)

// Template selects one of the two invoice layouts. Both render the same
// order data; they differ in branding, colors, contact and payment details.
type Template int

// Template variants. The zero value is the default template.
const (
	TemplateLajuTuju Template = iota
	TemplateBiggor
)

// Template names as used in config files, flags and query strings.
const (
	TemplateNameLajuTuju = "lajutuju"
	TemplateNameBiggor   = "biggor"
)

// Templates lists every variant in display order.
var Templates = []Template{TemplateLajuTuju, TemplateBiggor}

// String returns the template name.
func (t Template) String() string {
	switch t {
	case TemplateLajuTuju:
		return TemplateNameLajuTuju
	case TemplateBiggor:
		return TemplateNameBiggor
	}
	return fmt.Sprintf("Template(%d)", int(t))
}

// Valid reports whether t is a known variant.
func (t Template) Valid() bool {
	return t == TemplateLajuTuju || t == TemplateBiggor
}

// ParseTemplate converts a template name to a Template (case-insensitive).
// An empty name yields the default template.
func ParseTemplate(name string) (Template, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", TemplateNameLajuTuju:
		return TemplateLajuTuju, nil
	case TemplateNameBiggor:
		return TemplateBiggor, nil
	}
	return TemplateLajuTuju, fmt.Errorf("%w: %q (must be %s or %s)", ErrUnknownTemplate, name, TemplateNameLajuTuju, TemplateNameBiggor)
}

// MarshalText implements encoding.TextMarshaler.
func (t Template) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTemplate, int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Template) UnmarshalText(b []byte) error {
	parsed, err := ParseTemplate(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Bank holds the transfer details printed on an invoice.
type Bank struct {
	Label         string // "Bank" or "Payment Method"
	Name          string
	AccountNumber string
	AccountHolder string
}

// Brand holds everything that differs between templates.
type Brand struct {
	Name           string // display name, e.g. "Laju Tuju"
	FilenamePrefix string // e.g. "Invoice-LajuTuju"
	Title          string // heading shown next to or under the logo
	Logo           string // embedded logo asset name
	PrimaryColor   string
	AccentColor    string
	Address        string
	Phone          string
	Email          string
	Website        string
	Bank           Bank
	QRPayload      string
	Note           string // Markdown, rendered under the payment block
}

// defaultBrands holds the built-in brand details, indexed by Template.
var defaultBrands = map[Template]Brand{
	TemplateLajuTuju: {
		Name:           "Laju Tuju",
		FilenamePrefix: "Invoice-LajuTuju",
		Title:          "INVOICE",
		Logo:           "lajutuju",
		PrimaryColor:   "#ea580c",
		AccentColor:    "#fff7ed",
		Address:        "Soka Asri Permai, Kadisoka, Purwomartani, Kalasan Sleman",
		Phone:          "+62 821 3856 8822",
		Email:          "contact@lajutuju.com",
		Website:        "lajutuju.com",
		Bank: Bank{
			Label:         "Bank",
			Name:          "BCA",
			AccountNumber: "4561059637",
			AccountHolder: "Moh Fajar Yogyaning Praharu",
		},
		QRPayload: "Processed by Laju Tuju System",
	},
	TemplateBiggor: {
		Name:           "Biggor",
		FilenamePrefix: "Invoice-Biggor",
		Title:          "BIGGOR TRANSPORT & TRAVEL",
		Logo:           "biggor",
		PrimaryColor:   "#d14545",
		AccentColor:    "#fdecec",
		Address:        "Soka Asri Permai, Kadisoka, Purwomartani, Kalasan Sleman",
		Phone:          "0813 2751 0494",
		Email:          "contact@biggor.com",
		Website:        "biggortransport.com",
		Bank: Bank{
			Label:         "Payment Method",
			Name:          "Transfer Bank Mandiri",
			AccountNumber: "1370018835948",
			AccountHolder: "Fayzaya Ganang Putra",
		},
		QRPayload: "Processed by Biggor System",
		Note:      "Terima kasih telah mempercayakan perjalanan Anda kepada **Biggor**",
	},
}

// DefaultBrand returns the built-in brand for t.
// Unknown templates fall back to the default template's brand.
func DefaultBrand(t Template) Brand {
	if b, ok := defaultBrands[t]; ok {
		return b
	}
	return defaultBrands[TemplateLajuTuju]
}

// BrandOverride replaces non-empty fields of a built-in brand.
type BrandOverride struct {
	Name          string
	Address       string
	Phone         string
	Email         string
	Website       string
	BankName      string
	AccountNumber string
	AccountHolder string
	Note          string
}

// apply returns b with every non-empty override field set.
func (o *BrandOverride) apply(b Brand) Brand {
	if o == nil {
		return b
	}
	if o.Name != "" {
		b.Name = o.Name
	}
	if o.Address != "" {
		b.Address = o.Address
	}
	if o.Phone != "" {
		b.Phone = o.Phone
	}
	if o.Email != "" {
		b.Email = o.Email
	}
	if o.Website != "" {
		b.Website = o.Website
	}
	if o.BankName != "" {
		b.Bank.Name = o.BankName
	}
	if o.AccountNumber != "" {
		b.Bank.AccountNumber = o.AccountNumber
	}
	if o.AccountHolder != "" {
		b.Bank.AccountHolder = o.AccountHolder
	}
	if o.Note != "" {
		b.Note = o.Note
	}
	return b
}
