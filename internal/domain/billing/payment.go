package billing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/invoiceme/backend/internal/domain/shared"
	"github.com/invoiceme/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Payment is an immutable ledger entry recording money received against
// an invoice. Payments are never updated or deleted once persisted; the
// invoice balance is rederived from their sum.
type Payment struct {
	shared.BaseAggregateRoot
	InvoiceID   uuid.UUID       `json:"invoice_id"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate time.Time       `json:"payment_date"`
}

// NewPayment creates a payment entry. The amount is normalized to two
// decimal places and must be positive. A zero paymentDate defaults to
// now; future dates are rejected.
func NewPayment(invoiceID uuid.UUID, amount decimal.Decimal, paymentDate time.Time) (*Payment, error) {
	if invoiceID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeValidationFailed, "Invoice ID is required")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError(shared.CodeInvalidPaymentAmount, "Payment amount must be greater than 0")
	}

	now := time.Now().UTC()
	if paymentDate.IsZero() {
		paymentDate = now
	}
	if paymentDate.After(now) {
		return nil, shared.NewDomainError(shared.CodeValidationFailed, "Payment date cannot be in the future")
	}

	p := &Payment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		InvoiceID:         invoiceID,
		Amount:            valueobject.Round2(amount),
		PaymentDate:       paymentDate,
	}

	p.AddDomainEvent(NewPaymentRecordedEvent(p))

	return p, nil
}

// ValidateAgainstBalance checks the payment amount against the
// invoice's current outstanding balance.
func (p *Payment) ValidateAgainstBalance(balance decimal.Decimal) error {
	if p.Amount.GreaterThan(balance) {
		return shared.NewDomainError(shared.CodePaymentExceedsBalance,
			fmt.Sprintf("Payment amount %s exceeds invoice balance %s", p.Amount.StringFixed(2), balance.StringFixed(2)))
	}
	return nil
}

// GetAmountMoney returns the payment amount as Money
func (p *Payment) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(p.Amount)
}
