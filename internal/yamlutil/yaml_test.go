package yamlutil_test

// Notes:
// - The Marshal error branch is not tested: yaml.Marshal only fails for
//   channels and funcs, which no caller passes.

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/lajutuju/go-invoiceprint/internal/yamlutil"
)

type testItem struct {
	CarType   string          `yaml:"car_type"`
	Quantity  int             `yaml:"quantity"`
	DailyRate decimal.Decimal `yaml:"daily_rate"`
}

// ---------------------------------------------------------------------------
// TestUnmarshal - Parses YAML and JSON into Go structs
// ---------------------------------------------------------------------------

func TestUnmarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		wantErr error
		want    testItem
	}{
		{
			name: "yaml",
			data: "car_type: Avanza\nquantity: 2\ndaily_rate: 150000",
			want: testItem{CarType: "Avanza", Quantity: 2, DailyRate: decimal.NewFromInt(150000)},
		},
		{
			name: "json",
			data: `{"car_type": "Innova", "quantity": 1, "daily_rate": "450000.50"}`,
			want: testItem{CarType: "Innova", Quantity: 1, DailyRate: decimal.RequireFromString("450000.50")},
		},
		{
			name: "unknown fields ignored",
			data: "car_type: Hiace\nquantity: 1\ndaily_rate: 1\ncolor: white",
			want: testItem{CarType: "Hiace", Quantity: 1, DailyRate: decimal.NewFromInt(1)},
		},
		{
			name:    "empty data",
			data:    "",
			wantErr: yamlutil.ErrNilData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got testItem
			err := yamlutil.Unmarshal([]byte(tt.data), &got)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Unmarshal() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unmarshal() unexpected error: %v", err)
			}
			if got.CarType != tt.want.CarType || got.Quantity != tt.want.Quantity {
				t.Errorf("Unmarshal() = %+v, want %+v", got, tt.want)
			}
			if !got.DailyRate.Equal(tt.want.DailyRate) {
				t.Errorf("DailyRate = %s, want %s", got.DailyRate, tt.want.DailyRate)
			}
		})
	}
}

func TestUnmarshal_Guards(t *testing.T) {
	t.Parallel()

	if err := yamlutil.Unmarshal([]byte("a: 1"), nil); !errors.Is(err, yamlutil.ErrNilDestination) {
		t.Errorf("nil destination: error = %v, want ErrNilDestination", err)
	}

	var v map[string]any
	if err := yamlutil.Unmarshal([]byte("name: [unclosed"), &v); err == nil || !strings.HasPrefix(err.Error(), "yamlutil:") {
		t.Errorf("invalid syntax: error = %v, want yamlutil-prefixed error", err)
	}
}

// NOTE: modifies the package-level MaxInputSize, cannot run in parallel.
func TestUnmarshal_TooLarge(t *testing.T) {
	orig := yamlutil.MaxInputSize
	yamlutil.MaxInputSize = 16
	defer func() { yamlutil.MaxInputSize = orig }()

	var v map[string]any
	err := yamlutil.Unmarshal([]byte(strings.Repeat("a", 17)), &v)
	if !errors.Is(err, yamlutil.ErrInputTooLarge) {
		t.Errorf("Unmarshal() error = %v, want ErrInputTooLarge", err)
	}
}

// ---------------------------------------------------------------------------
// TestUnmarshalStrict - Rejects unknown fields
// ---------------------------------------------------------------------------

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	var ok testItem
	if err := yamlutil.UnmarshalStrict([]byte("car_type: Avanza\ndaily_rate: 200000"), &ok); err != nil {
		t.Fatalf("UnmarshalStrict() unexpected error: %v", err)
	}
	if !ok.DailyRate.Equal(decimal.NewFromInt(200000)) {
		t.Errorf("DailyRate = %s, want 200000", ok.DailyRate)
	}

	var bad testItem
	err := yamlutil.UnmarshalStrict([]byte("car_type: Avanza\nseats: 7"), &bad)
	if err == nil {
		t.Fatal("UnmarshalStrict() expected error for unknown field")
	}
	if msg := yamlutil.FormatError(err); !strings.Contains(msg, "seats") {
		t.Errorf("FormatError() = %q, want it to mention the unknown field", msg)
	}
}

func TestMarshal(t *testing.T) {
	t.Parallel()

	out, err := yamlutil.Marshal(map[string]string{"template": "biggor"})
	if err != nil {
		t.Fatalf("Marshal() unexpected error: %v", err)
	}
	if strings.TrimSpace(string(out)) != "template: biggor" {
		t.Errorf("Marshal() = %q", out)
	}
}
