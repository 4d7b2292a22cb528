package invoiceprint

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/lajutuju/go-invoiceprint/internal/dateutil"
)

// currencySymbol prefixes every formatted amount.
const currencySymbol = "Rp"

// zeroWidthSpace separates adjacent digits in phone numbers.
const zeroWidthSpace = "\u200b"

// idPrinter groups digits the Indonesian way (1.500.000).
var idPrinter = message.NewPrinter(language.Indonesian)

// FormatCurrency formats an amount as Indonesian Rupiah with no decimals.
// 1500000 -> "Rp1.500.000", 0 -> "Rp0", -1500 -> "-Rp1.500".
func FormatCurrency(amount decimal.Decimal) string {
	rounded := amount.Round(0)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}
	if !rounded.BigInt().IsInt64() {
		return sign + currencySymbol + groupDigits(rounded.String())
	}
	return sign + currencySymbol + idPrinter.Sprint(number.Decimal(rounded.IntPart(), number.MaxFractionDigits(0)))
}

// groupDigits separates thousands of a plain digit string with dots, for
// amounts the int64 printer cannot hold.
func groupDigits(digits string) string {
	head := len(digits) % 3
	if head == 0 {
		head = 3
	}
	var b strings.Builder
	b.Grow(len(digits) + len(digits)/3)
	b.WriteString(digits[:head])
	for i := head; i < len(digits); i += 3 {
		b.WriteByte('.')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatDate formats an order date as "5 Maret 2024".
// Values that cannot be parsed are returned unchanged.
func FormatDate(value string) string {
	return formatDateLayout(value, dateutil.DefaultLayout)
}

func formatDateLayout(value, layout string) string {
	t, err := dateutil.ParseDate(value)
	if err != nil {
		return value
	}
	out, err := dateutil.Format(t, layout)
	if err != nil {
		return value
	}
	return out
}

// SafePhone inserts a zero-width space between every pair of adjacent ASCII
// digits so mobile browsers and PDF viewers do not turn the number into a
// tel: link. The visible text is unchanged.
func SafePhone(phone string) string {
	if phone == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(phone) * 2)

	prevDigit := false
	for _, r := range phone {
		digit := r >= '0' && r <= '9'
		if digit && prevDigit {
			b.WriteString(zeroWidthSpace)
		}
		b.WriteRune(r)
		prevDigit = digit
	}
	return b.String()
}

// StripZeroWidth removes the separators inserted by SafePhone.
func StripZeroWidth(s string) string {
	return strings.ReplaceAll(s, zeroWidthSpace, "")
}

// InvoiceFilename returns the download name for an order rendered with t,
// e.g. "Invoice-LajuTuju-A1B2C3D4.pdf".
func InvoiceFilename(t Template, order *Order) string {
	return DefaultBrand(t).FilenamePrefix + "-" + order.InvoiceNumber() + ".pdf"
}
