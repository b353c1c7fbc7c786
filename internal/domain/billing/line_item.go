package billing

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/invoiceme/backend/internal/domain/shared"
	"github.com/invoiceme/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

const maxLineItemDescriptionLength = 500

// LineItem represents a single billable entry on an invoice.
// It is a value object within the Invoice aggregate, stored as JSONB;
// slice order is the display order.
type LineItem struct {
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// NewLineItem creates a validated line item. The unit price is stored
// rounded to two fractional digits, half away from zero.
func NewLineItem(description string, quantity int, unitPrice decimal.Decimal) (LineItem, error) {
	trimmed := strings.TrimSpace(description)
	if trimmed == "" {
		return LineItem{}, shared.NewDomainError(shared.CodeValidationFailed, "Line item description is required")
	}
	if len(trimmed) > maxLineItemDescriptionLength {
		return LineItem{}, shared.NewDomainError(shared.CodeValidationFailed,
			fmt.Sprintf("Line item description cannot exceed %d characters", maxLineItemDescriptionLength))
	}
	if quantity < 1 {
		return LineItem{}, shared.NewDomainError(shared.CodeValidationFailed, "Line item quantity must be at least 1")
	}
	if unitPrice.IsNegative() {
		return LineItem{}, shared.NewDomainError(shared.CodeValidationFailed, "Line item unit price cannot be negative")
	}

	return LineItem{
		Description: trimmed,
		Quantity:    quantity,
		UnitPrice:   valueobject.Round2(unitPrice),
	}, nil
}

// Subtotal returns quantity x unit price, rounded to two digits
func (li LineItem) Subtotal() decimal.Decimal {
	return valueobject.Round2(li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity))))
}

// SubtotalMoney returns the subtotal as a Money value object
func (li LineItem) SubtotalMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(li.Subtotal())
}

// LineItems is an ordered collection of line items that implements the
// GORM Scanner/Valuer interfaces for JSONB storage.
type LineItems []LineItem

// Value implements driver.Valuer for GORM to store as JSONB
func (l LineItems) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner for GORM to read from JSONB
func (l *LineItems) Scan(value interface{}) error {
	if value == nil {
		*l = LineItems{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan LineItems: unsupported type")
	}

	if len(bytes) == 0 {
		*l = LineItems{}
		return nil
	}

	return json.Unmarshal(bytes, l)
}

// Total returns the rounded sum of all subtotals
func (l LineItems) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range l {
		total = total.Add(item.Subtotal())
	}
	return valueobject.Round2(total)
}
