package billing

import (
	"github.com/invoiceme/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const (
	AggregateTypePayment = "Payment"

	EventTypePaymentRecorded = "payment.recorded"
)

// PaymentRecordedEvent is emitted when a payment is recorded against an
// invoice
type PaymentRecordedEvent struct {
	shared.BaseDomainEvent
	InvoiceID string          `json:"invoice_id"`
	Amount    decimal.Decimal `json:"amount"`
}

// NewPaymentRecordedEvent creates a new PaymentRecordedEvent
func NewPaymentRecordedEvent(p *Payment) *PaymentRecordedEvent {
	return &PaymentRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentRecorded, AggregateTypePayment, p.ID),
		InvoiceID:       p.InvoiceID.String(),
		Amount:          p.Amount,
	}
}
