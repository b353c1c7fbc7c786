package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/invoiceme/backend/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// InvoiceModel is the persistence model for the Invoice aggregate.
// Line items are embedded as a JSONB document; they have no identity
// outside their invoice.
type InvoiceModel struct {
	AggregateModel
	CustomerID  uuid.UUID             `gorm:"type:uuid;not null;index:idx_invoices_customer"`
	Status      billing.InvoiceStatus `gorm:"type:varchar(20);not null;default:'DRAFT';index:idx_invoices_status"`
	LineItems   billing.LineItems     `gorm:"type:jsonb;not null;default:'[]'"`
	TotalAmount decimal.Decimal       `gorm:"type:decimal(18,2);not null;default:0"`
	Balance     decimal.Decimal       `gorm:"type:decimal(18,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice aggregate.
func (m *InvoiceModel) ToDomain() *billing.Invoice {
	return &billing.Invoice{
		BaseAggregateRoot: m.toDomainAggregateRoot(),
		CustomerID:        m.CustomerID,
		Status:            m.Status,
		LineItems:         m.LineItems,
		TotalAmount:       m.TotalAmount,
		Balance:           m.Balance,
	}
}

// FromDomain populates the persistence model from a domain Invoice aggregate.
func (m *InvoiceModel) FromDomain(inv *billing.Invoice) {
	m.FromDomainAggregateRoot(inv.BaseAggregateRoot)
	m.CustomerID = inv.CustomerID
	m.Status = inv.Status
	m.LineItems = inv.LineItems
	m.TotalAmount = inv.TotalAmount
	m.Balance = inv.Balance
}

// PaymentModel is the persistence model for the Payment ledger entry.
// Rows are append-only.
type PaymentModel struct {
	AggregateModel
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index:idx_payments_invoice"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	PaymentDate time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment.
func (m *PaymentModel) ToDomain() *billing.Payment {
	return &billing.Payment{
		BaseAggregateRoot: m.toDomainAggregateRoot(),
		InvoiceID:         m.InvoiceID,
		Amount:            m.Amount,
		PaymentDate:       m.PaymentDate,
	}
}

// FromDomain populates the persistence model from a domain Payment.
func (m *PaymentModel) FromDomain(p *billing.Payment) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.InvoiceID = p.InvoiceID
	m.Amount = p.Amount
	m.PaymentDate = p.PaymentDate
}
