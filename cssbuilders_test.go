package invoiceprint

import (
	"strings"
	"testing"
)

func TestSanitizeColor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"#ea580c", "#ea580c"},
		{" #D14545 ", "#D14545"},
		{"red", fallbackColor},
		{"#fff", fallbackColor},
		{"#ea580c; background: url(x)", fallbackColor},
		{"", fallbackColor},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := sanitizeColor(tt.input); got != tt.want {
				t.Errorf("sanitizeColor(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestBuildBrandCSS(t *testing.T) {
	t.Parallel()

	css := buildBrandCSS(Brand{Name: "Evil */ body{}", PrimaryColor: "#123456", AccentColor: "nope"})

	if !strings.Contains(css, "--primary: #123456;") {
		t.Errorf("css missing primary color: %s", css)
	}
	if !strings.Contains(css, "--accent: "+fallbackColor+";") {
		t.Errorf("css should fall back for invalid accent: %s", css)
	}
	if strings.Count(css, "*/") != 1 {
		t.Errorf("brand name closed the comment early: %s", css)
	}
}

func TestBuildCaptureStyle(t *testing.T) {
	t.Parallel()

	style := buildCaptureStyle(794, 40)
	for _, want := range []string{"width: 794px", "max-width: 794px", "padding: 40px", "background: #fff", "position: absolute"} {
		if !strings.Contains(style, want) {
			t.Errorf("buildCaptureStyle() = %q, missing %q", style, want)
		}
	}
}
