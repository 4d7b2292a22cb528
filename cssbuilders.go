package invoiceprint

import (
	"fmt"
	"regexp"
	"strings"
)

// fallbackColor is used when a brand color is not a #rrggbb value.
const fallbackColor = "#111827"

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// buildBrandCSS sets the color variables used by the invoice stylesheet.
func buildBrandCSS(b Brand) string {
	return fmt.Sprintf(`
/* Brand: %s */
.invoice-container {
  --primary: %s;
  --accent: %s;
}
`, escapeCSSComment(b.Name), sanitizeColor(b.PrimaryColor), sanitizeColor(b.AccentColor))
}

func sanitizeColor(value string) string {
	trimmed := strings.TrimSpace(value)
	if hexColorPattern.MatchString(trimmed) {
		return trimmed
	}
	return fallbackColor
}

// escapeCSSComment keeps a brand name from closing the CSS comment or
// breaking fmt.Sprintf verbs.
func escapeCSSComment(s string) string {
	s = strings.ReplaceAll(s, "*/", "* /")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}

// buildCaptureStyle returns the inline style forced on the invoice container
// during export: fixed A4 width at 96 DPI on a white background.
func buildCaptureStyle(widthPx, paddingPx int) string {
	return fmt.Sprintf(
		"position: absolute; left: 0px; top: 0px; width: %dpx; max-width: %dpx; padding: %dpx; background: #fff;",
		widthPx, widthPx, paddingPx,
	)
}
