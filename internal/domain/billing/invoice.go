package billing

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/invoiceme/backend/internal/domain/shared"
	"github.com/invoiceme/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the lifecycle status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft InvoiceStatus = "DRAFT" // Editable, not yet delivered
	InvoiceStatusSent  InvoiceStatus = "SENT"  // Delivered, line items frozen, accepting payments
	InvoiceStatusPaid  InvoiceStatus = "PAID"  // Terminal, balance is zero
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// IsTerminal returns true if no further transition can leave the status
func (s InvoiceStatus) IsTerminal() bool {
	return s == InvoiceStatusPaid
}

// CanEdit returns true if line items may be mutated in this status
func (s InvoiceStatus) CanEdit() bool {
	return s == InvoiceStatusDraft
}

// CanApplyPayment returns true if payments may be applied in this status
func (s InvoiceStatus) CanApplyPayment() bool {
	return s == InvoiceStatusSent
}

// Invoice is the aggregate root of the billing context. It owns its line
// items and the calculation and lifecycle rules for total, balance and
// status. TotalAmount and Balance are derived values: the balance stored
// here is a cache that callers refresh from the payment ledger via
// RecomputeBalance before trusting it.
type Invoice struct {
	shared.BaseAggregateRoot
	CustomerID  uuid.UUID       `json:"customer_id"`
	Status      InvoiceStatus   `json:"status"`
	LineItems   LineItems       `json:"line_items"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Balance     decimal.Decimal `json:"balance"`
}

// NewInvoice creates a new invoice in Draft status for the given
// customer. The line item list may be empty while the invoice is Draft.
func NewInvoice(customerID uuid.UUID, items []LineItem) (*Invoice, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeValidationFailed, "Customer ID is required")
	}

	inv := &Invoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customerID,
		Status:            InvoiceStatusDraft,
		LineItems:         append(LineItems{}, items...),
		TotalAmount:       decimal.Zero,
		Balance:           decimal.Zero,
	}
	inv.recalculateTotal()

	inv.AddDomainEvent(NewInvoiceCreatedEvent(inv))

	return inv, nil
}

// AddLineItem validates and appends a line item, then recalculates the
// total. Only Draft invoices may be mutated.
func (inv *Invoice) AddLineItem(description string, quantity int, unitPrice decimal.Decimal) error {
	if !inv.Status.CanEdit() {
		return shared.NewDomainError(shared.CodeInvoiceNotEditable,
			fmt.Sprintf("Invoice cannot be edited in %s status; only DRAFT invoices are editable", inv.Status))
	}

	item, err := NewLineItem(description, quantity, unitPrice)
	if err != nil {
		return err
	}

	inv.LineItems = append(inv.LineItems, item)
	inv.recalculateTotal()
	inv.Touch()
	inv.IncrementVersion()

	return nil
}

// ReplaceLineItems swaps the entire line item collection and
// recalculates the total. The new collection must be non-empty and the
// invoice must be Draft; on failure the invoice is unchanged.
func (inv *Invoice) ReplaceLineItems(items []LineItem) error {
	if !inv.Status.CanEdit() {
		return shared.NewDomainError(shared.CodeInvoiceNotEditable,
			fmt.Sprintf("Invoice cannot be edited in %s status; only DRAFT invoices are editable", inv.Status))
	}
	if len(items) == 0 {
		return shared.NewDomainError(shared.CodeInvalidLineItems, "Invoice must have at least one line item")
	}

	inv.LineItems = append(LineItems{}, items...)
	inv.recalculateTotal()
	inv.Touch()
	inv.IncrementVersion()

	inv.AddDomainEvent(NewInvoiceUpdatedEvent(inv))

	return nil
}

// recalculateTotal rederives the total from the line items. It runs only
// while the invoice is Draft, where no payments can exist yet, so the
// balance equals the total.
func (inv *Invoice) recalculateTotal() {
	inv.TotalAmount = inv.LineItems.Total()
	inv.Balance = inv.TotalAmount
}

// CanBeMarkedAsSent reports whether the Draft->Sent guard passes:
// status is Draft, at least one line item, total greater than zero.
func (inv *Invoice) CanBeMarkedAsSent() bool {
	return inv.sendGuardViolation() == nil
}

// EnsureSendable returns the error describing why the invoice cannot
// be sent, or nil. Callers use it to fail fast before doing delivery
// work, then MarkAsSent after delivery succeeds.
func (inv *Invoice) EnsureSendable() error {
	if err := inv.sendGuardViolation(); err != nil {
		return err
	}
	return nil
}

// sendGuardViolation returns the error describing the first violated
// send condition, or nil when the transition is allowed.
func (inv *Invoice) sendGuardViolation() *shared.DomainError {
	if inv.Status != InvoiceStatusDraft {
		return shared.NewDomainError(shared.CodeInvalidStateTransition,
			fmt.Sprintf("Invoice cannot be sent from %s status; only DRAFT invoices can be sent", inv.Status))
	}
	if len(inv.LineItems) == 0 {
		return shared.NewDomainError(shared.CodeInvalidStateTransition,
			"Invoice cannot be sent without line items")
	}
	if !inv.TotalAmount.IsPositive() {
		return shared.NewDomainError(shared.CodeInvalidStateTransition,
			"Invoice cannot be sent with a zero total amount")
	}
	return nil
}

// MarkAsSent performs the Draft->Sent transition. The transition never
// partially applies: a guard violation leaves the invoice untouched.
func (inv *Invoice) MarkAsSent() error {
	if err := inv.sendGuardViolation(); err != nil {
		return err
	}

	inv.Status = InvoiceStatusSent
	inv.Touch()
	inv.IncrementVersion()

	inv.AddDomainEvent(NewInvoiceSentEvent(inv))

	return nil
}

// RecomputeBalance rederives the outstanding balance from the sum of
// persisted payments. This is the authoritative derivation; the stored
// Balance field is only a cache of it.
func (inv *Invoice) RecomputeBalance(paidTotal decimal.Decimal) error {
	balance := valueobject.Round2(inv.TotalAmount.Sub(paidTotal))
	if balance.IsNegative() {
		return shared.NewDomainError(shared.CodeValidationFailed,
			fmt.Sprintf("Recorded payments %s exceed invoice total %s", paidTotal.StringFixed(2), inv.TotalAmount.StringFixed(2)))
	}
	inv.Balance = balance
	return nil
}

// ApplyPayment validates the amount against the current balance and
// subtracts it. When the balance reaches exactly zero the invoice
// transitions Sent->Paid; there is no direct mark-as-paid operation.
func (inv *Invoice) ApplyPayment(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return shared.NewDomainError(shared.CodeInvalidPaymentAmount, "Payment amount must be greater than 0")
	}
	if !inv.Status.CanApplyPayment() {
		return shared.NewDomainError(shared.CodeInvalidStateTransition,
			"Payments can only be recorded for sent invoices")
	}
	if amount.GreaterThan(inv.Balance) {
		return shared.NewDomainError(shared.CodePaymentExceedsBalance,
			fmt.Sprintf("Payment amount %s exceeds invoice balance %s", amount.StringFixed(2), inv.Balance.StringFixed(2)))
	}

	inv.Balance = valueobject.Round2(inv.Balance.Sub(amount))

	if inv.Balance.IsZero() {
		inv.Status = InvoiceStatusPaid
		inv.AddDomainEvent(NewInvoicePaidEvent(inv))
	}

	inv.Touch()
	inv.IncrementVersion()

	return nil
}

// Helper methods

// GetTotalAmountMoney returns the total as Money
func (inv *Invoice) GetTotalAmountMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(inv.TotalAmount)
}

// GetBalanceMoney returns the balance as Money
func (inv *Invoice) GetBalanceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(inv.Balance)
}

// IsDraft returns true if the invoice is in Draft status
func (inv *Invoice) IsDraft() bool {
	return inv.Status == InvoiceStatusDraft
}

// IsSent returns true if the invoice is in Sent status
func (inv *Invoice) IsSent() bool {
	return inv.Status == InvoiceStatusSent
}

// IsPaid returns true if the invoice is fully paid
func (inv *Invoice) IsPaid() bool {
	return inv.Status == InvoiceStatusPaid
}

// Number returns the short human-readable invoice number derived from
// the invoice ID (first UUID segment, uppercased).
func (inv *Invoice) Number() string {
	return "INV-" + strings.ToUpper(fmt.Sprintf("%.8s", inv.ID.String()))
}

// LineItemCount returns the number of line items
func (inv *Invoice) LineItemCount() int {
	return len(inv.LineItems)
}
