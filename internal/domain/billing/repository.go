package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/invoiceme/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InvoiceRepository defines persistence for invoices
type InvoiceRepository interface {
	// FindByID retrieves an invoice by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)

	// FindByIDForUpdate retrieves an invoice and takes a row-level
	// write lock on it. Must run inside a transaction.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Invoice, error)

	// FindAll retrieves invoices with pagination, newest first
	FindAll(ctx context.Context, filter shared.Filter) ([]*Invoice, error)

	// FindByCustomerID retrieves invoices for a customer with pagination
	FindByCustomerID(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]*Invoice, error)

	// Save persists an invoice (create or update)
	Save(ctx context.Context, inv *Invoice) error

	// Delete removes an invoice
	Delete(ctx context.Context, id uuid.UUID) error

	// Count returns the number of invoices matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountByCustomerID returns the number of invoices for a customer
	CountByCustomerID(ctx context.Context, customerID uuid.UUID) (int64, error)
}

// PaymentRepository defines persistence for the payment ledger.
// Payments are append-only; there is no update or delete.
type PaymentRepository interface {
	// FindByID retrieves a payment by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)

	// FindByInvoiceID retrieves all payments for an invoice, oldest first
	FindByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]*Payment, error)

	// SumAmountByInvoiceID returns the sum of all payment amounts
	// recorded against an invoice. Zero when none exist.
	SumAmountByInvoiceID(ctx context.Context, invoiceID uuid.UUID) (decimal.Decimal, error)

	// Save persists a new payment
	Save(ctx context.Context, p *Payment) error
}
