package billing

import (
	"github.com/invoiceme/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const (
	AggregateTypeInvoice = "Invoice"

	EventTypeInvoiceCreated = "invoice.created"
	EventTypeInvoiceUpdated = "invoice.updated"
	EventTypeInvoiceSent    = "invoice.sent"
	EventTypeInvoicePaid    = "invoice.paid"
)

// InvoiceCreatedEvent is emitted when a new invoice is created
type InvoiceCreatedEvent struct {
	shared.BaseDomainEvent
	CustomerID  string          `json:"customer_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// NewInvoiceCreatedEvent creates a new InvoiceCreatedEvent
func NewInvoiceCreatedEvent(inv *Invoice) *InvoiceCreatedEvent {
	return &InvoiceCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceCreated, AggregateTypeInvoice, inv.ID),
		CustomerID:      inv.CustomerID.String(),
		TotalAmount:     inv.TotalAmount,
	}
}

// InvoiceUpdatedEvent is emitted when a draft invoice's line items change
type InvoiceUpdatedEvent struct {
	shared.BaseDomainEvent
	TotalAmount decimal.Decimal `json:"total_amount"`
	ItemCount   int             `json:"item_count"`
}

// NewInvoiceUpdatedEvent creates a new InvoiceUpdatedEvent
func NewInvoiceUpdatedEvent(inv *Invoice) *InvoiceUpdatedEvent {
	return &InvoiceUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceUpdated, AggregateTypeInvoice, inv.ID),
		TotalAmount:     inv.TotalAmount,
		ItemCount:       len(inv.LineItems),
	}
}

// InvoiceSentEvent is emitted when an invoice transitions to Sent
type InvoiceSentEvent struct {
	shared.BaseDomainEvent
	CustomerID  string          `json:"customer_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// NewInvoiceSentEvent creates a new InvoiceSentEvent
func NewInvoiceSentEvent(inv *Invoice) *InvoiceSentEvent {
	return &InvoiceSentEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceSent, AggregateTypeInvoice, inv.ID),
		CustomerID:      inv.CustomerID.String(),
		TotalAmount:     inv.TotalAmount,
	}
}

// InvoicePaidEvent is emitted when the balance reaches zero and the
// invoice transitions to Paid
type InvoicePaidEvent struct {
	shared.BaseDomainEvent
	CustomerID  string          `json:"customer_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// NewInvoicePaidEvent creates a new InvoicePaidEvent
func NewInvoicePaidEvent(inv *Invoice) *InvoicePaidEvent {
	return &InvoicePaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoicePaid, AggregateTypeInvoice, inv.ID),
		CustomerID:      inv.CustomerID.String(),
		TotalAmount:     inv.TotalAmount,
	}
}
