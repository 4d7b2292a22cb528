package invoiceprint

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/lajutuju/go-invoiceprint/internal/fileutil"
	"github.com/lajutuju/go-invoiceprint/internal/yamlutil"
)

// MaxOrderFileSize bounds order documents read from disk.
const MaxOrderFileSize = 1 << 20

// invoiceNumberLength is the number of leading id characters shown as the
// human-readable invoice number.
const invoiceNumberLength = 8

// Order is a rental transaction as supplied by the order data source.
// The renderer treats it as read-only and never recomputes amounts.
type Order struct {
	ID              string          `yaml:"id" json:"id"`
	OrderDate       string          `yaml:"order_date" json:"order_date"`
	RentalStartDate string          `yaml:"rental_start_date" json:"rental_start_date"`
	RentalEndDate   string          `yaml:"rental_end_date" json:"rental_end_date"`
	CustomerName    string          `yaml:"customer_name" json:"customer_name"`
	CustomerPhone   string          `yaml:"customer_phone" json:"customer_phone"`
	CustomerAddress string          `yaml:"customer_address,omitempty" json:"customer_address,omitempty"`
	TotalAmount     decimal.Decimal `yaml:"total_amount" json:"total_amount"`
	Items           []OrderItem     `yaml:"order_items" json:"order_items"`
}

// OrderItem is one rented car line. Subtotal is expected to equal
// Quantity * Days * DailyRate but is displayed as supplied.
type OrderItem struct {
	CarType   string          `yaml:"car_type" json:"car_type"`
	Quantity  int             `yaml:"quantity" json:"quantity"`
	Days      int             `yaml:"days" json:"days"`
	DailyRate decimal.Decimal `yaml:"daily_rate" json:"daily_rate"`
	Subtotal  decimal.Decimal `yaml:"subtotal" json:"subtotal"`
}

// InvoiceNumber returns the first eight characters of the order id, uppercased.
// Shorter ids are used whole.
func (o *Order) InvoiceNumber() string {
	runes := []rune(o.ID)
	if len(runes) > invoiceNumberLength {
		runes = runes[:invoiceNumberLength]
	}
	return strings.ToUpper(string(runes))
}

// Validate checks the fields every invoice needs.
//
// Rendering never calls Validate: it is a trust boundary for loaders that
// read orders from files or requests.
func (o *Order) Validate() error {
	if strings.TrimSpace(o.ID) == "" {
		return ErrEmptyOrderID
	}
	if strings.TrimSpace(o.CustomerName) == "" {
		return fmt.Errorf("%w: order %s", ErrEmptyCustomer, o.ID)
	}
	for i, item := range o.Items {
		if item.Quantity < 0 || item.Days < 0 {
			return fmt.Errorf("%w: order_items[%d] (quantity %d, days %d)", ErrInvalidQuantity, i, item.Quantity, item.Days)
		}
	}
	return nil
}

// ParseOrder decodes an order from a YAML or JSON document and validates it.
func ParseOrder(data []byte) (*Order, error) {
	var o Order
	if err := yamlutil.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("parsing order: %w", err)
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return &o, nil
}

// LoadOrder reads and parses an order file.
func LoadOrder(path string) (*Order, error) {
	data, err := fileutil.ReadFileLimited(path, MaxOrderFileSize)
	if err != nil {
		return nil, fmt.Errorf("reading order: %w", err)
	}
	return ParseOrder(data)
}
