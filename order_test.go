package invoiceprint

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
)

// sampleOrder mirrors a two-car rental from the order data source.
func sampleOrder() *Order {
	return &Order{
		ID:              "a1b2c3d4-xxxx",
		OrderDate:       "2024-03-05",
		RentalStartDate: "2024-03-10",
		RentalEndDate:   "2024-03-13",
		CustomerName:    "Budi Santoso",
		CustomerPhone:   "0812345678",
		CustomerAddress: "Jl. Kaliurang KM 5, Sleman",
		TotalAmount:     decimal.NewFromInt(750000),
		Items: []OrderItem{
			{CarType: "Toyota Avanza", Quantity: 1, Days: 2, DailyRate: decimal.NewFromInt(150000), Subtotal: decimal.NewFromInt(300000)},
			{CarType: "Toyota Innova", Quantity: 1, Days: 1, DailyRate: decimal.NewFromInt(450000), Subtotal: decimal.NewFromInt(450000)},
		},
	}
}

func TestOrder_InvoiceNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id   string
		want string
	}{
		{id: "a1b2c3d4-xxxx", want: "A1B2C3D4"},
		{id: "abc", want: "ABC"},
		{id: "", want: ""},
		{id: "ünïcödé-id", want: "ÜNÏCÖDÉ-"},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			t.Parallel()

			o := &Order{ID: tt.id}
			if got := o.InvoiceNumber(); got != tt.want {
				t.Errorf("InvoiceNumber() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOrder_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(o *Order)
		wantErr error
	}{
		{name: "valid", mutate: func(o *Order) {}},
		{name: "empty id", mutate: func(o *Order) { o.ID = "  " }, wantErr: ErrEmptyOrderID},
		{name: "empty customer", mutate: func(o *Order) { o.CustomerName = "" }, wantErr: ErrEmptyCustomer},
		{name: "negative quantity", mutate: func(o *Order) { o.Items[0].Quantity = -1 }, wantErr: ErrInvalidQuantity},
		{name: "negative days", mutate: func(o *Order) { o.Items[1].Days = -3 }, wantErr: ErrInvalidQuantity},
		{
			name:   "mismatched total is not an error",
			mutate: func(o *Order) { o.TotalAmount = decimal.NewFromInt(1) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			o := sampleOrder()
			tt.mutate(o)
			err := o.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseOrder(t *testing.T) {
	t.Parallel()

	yamlDoc := `
id: a1b2c3d4-xxxx
order_date: "2024-03-05"
rental_start_date: "2024-03-10"
rental_end_date: "2024-03-13"
customer_name: Budi Santoso
customer_phone: "0812345678"
total_amount: 750000
order_items:
  - car_type: Toyota Avanza
    quantity: 1
    days: 2
    daily_rate: 150000
    subtotal: 300000
  - car_type: Toyota Innova
    quantity: 1
    days: 1
    daily_rate: 450000
    subtotal: 450000
`
	jsonDoc := `{
  "id": "a1b2c3d4-xxxx",
  "order_date": "2024-03-05",
  "customer_name": "Budi Santoso",
  "customer_phone": "0812345678",
  "total_amount": "750000.00",
  "order_items": [
    {"car_type": "Toyota Avanza", "quantity": 1, "days": 2, "daily_rate": "150000", "subtotal": "300000"},
    {"car_type": "Toyota Innova", "quantity": 1, "days": 1, "daily_rate": "450000", "subtotal": "450000"}
  ]
}`

	for name, doc := range map[string]string{"yaml": yamlDoc, "json": jsonDoc} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			o, err := ParseOrder([]byte(doc))
			if err != nil {
				t.Fatalf("ParseOrder() unexpected error: %v", err)
			}
			if o.CustomerPhone != "0812345678" {
				t.Errorf("CustomerPhone = %q", o.CustomerPhone)
			}
			if !o.TotalAmount.Equal(decimal.NewFromInt(750000)) {
				t.Errorf("TotalAmount = %s, want 750000", o.TotalAmount)
			}
			if len(o.Items) != 2 || o.Items[1].CarType != "Toyota Innova" {
				t.Fatalf("Items = %+v", o.Items)
			}
			if !o.Items[0].Subtotal.Equal(decimal.NewFromInt(300000)) {
				t.Errorf("Items[0].Subtotal = %s", o.Items[0].Subtotal)
			}
		})
	}
}

func TestParseOrder_Invalid(t *testing.T) {
	t.Parallel()

	if _, err := ParseOrder([]byte("customer_name: Budi")); !errors.Is(err, ErrEmptyOrderID) {
		t.Errorf("ParseOrder(no id) = %v, want ErrEmptyOrderID", err)
	}
	if _, err := ParseOrder([]byte("id: [broken")); err == nil {
		t.Error("ParseOrder(bad yaml) expected error")
	}
}

func TestLoadOrder(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "order.yaml")
	if err := os.WriteFile(path, []byte("id: zz99\ncustomer_name: Sari\ntotal_amount: 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	o, err := LoadOrder(path)
	if err != nil {
		t.Fatalf("LoadOrder() unexpected error: %v", err)
	}
	if o.InvoiceNumber() != "ZZ99" {
		t.Errorf("InvoiceNumber() = %q, want ZZ99", o.InvoiceNumber())
	}

	if _, err := LoadOrder(filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadOrder(missing) = %v, want os.ErrNotExist", err)
	}
}
