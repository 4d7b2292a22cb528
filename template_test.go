package invoiceprint

import (
	"errors"
	"testing"
)

func TestParseTemplate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    Template
		wantErr bool
	}{
		{input: "", want: TemplateLajuTuju},
		{input: "lajutuju", want: TemplateLajuTuju},
		{input: "LajuTuju", want: TemplateLajuTuju},
		{input: " biggor ", want: TemplateBiggor},
		{input: "BIGGOR", want: TemplateBiggor},
		{input: "templateA", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := ParseTemplate(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownTemplate) {
					t.Errorf("ParseTemplate(%q) error = %v, want ErrUnknownTemplate", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTemplate(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseTemplate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTemplate_ZeroValueIsDefault(t *testing.T) {
	t.Parallel()

	var tpl Template
	if tpl != TemplateLajuTuju {
		t.Errorf("zero Template = %v, want %v", tpl, TemplateLajuTuju)
	}
}

func TestTemplate_Text(t *testing.T) {
	t.Parallel()

	for _, tpl := range Templates {
		b, err := tpl.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v) unexpected error: %v", tpl, err)
		}
		var back Template
		if err := back.UnmarshalText(b); err != nil {
			t.Fatalf("UnmarshalText(%q) unexpected error: %v", b, err)
		}
		if back != tpl {
			t.Errorf("text round trip = %v, want %v", back, tpl)
		}
	}

	if _, err := Template(7).MarshalText(); !errors.Is(err, ErrUnknownTemplate) {
		t.Errorf("MarshalText(7) = %v, want ErrUnknownTemplate", err)
	}
	if Template(7).Valid() {
		t.Error("Template(7).Valid() = true")
	}
}

func TestDefaultBrand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		template  Template
		prefix    string
		qr        string
		bankLabel string
	}{
		{TemplateLajuTuju, "Invoice-LajuTuju", "Processed by Laju Tuju System", "Bank"},
		{TemplateBiggor, "Invoice-Biggor", "Processed by Biggor System", "Payment Method"},
	}

	for _, tt := range tests {
		t.Run(tt.template.String(), func(t *testing.T) {
			t.Parallel()

			b := DefaultBrand(tt.template)
			if b.FilenamePrefix != tt.prefix {
				t.Errorf("FilenamePrefix = %q, want %q", b.FilenamePrefix, tt.prefix)
			}
			if b.QRPayload != tt.qr {
				t.Errorf("QRPayload = %q, want %q", b.QRPayload, tt.qr)
			}
			if b.Bank.Label != tt.bankLabel {
				t.Errorf("Bank.Label = %q, want %q", b.Bank.Label, tt.bankLabel)
			}
		})
	}

	if DefaultBrand(Template(9)).Name != "Laju Tuju" {
		t.Error("unknown template should fall back to the default brand")
	}
}

func TestBrandOverride_Apply(t *testing.T) {
	t.Parallel()

	base := DefaultBrand(TemplateBiggor)

	var nilOverride *BrandOverride
	if got := nilOverride.apply(base); got != base {
		t.Error("nil override changed the brand")
	}

	got := (&BrandOverride{Phone: "0811 0000 111", AccountNumber: "999"}).apply(base)
	if got.Phone != "0811 0000 111" || got.Bank.AccountNumber != "999" {
		t.Errorf("override not applied: %+v", got)
	}
	if got.Email != base.Email || got.Bank.Name != base.Bank.Name {
		t.Error("empty override fields must keep defaults")
	}
	if got.FilenamePrefix != base.FilenamePrefix {
		t.Error("filename prefix must not change")
	}
}
