package billing

import (
	"context"

	"github.com/invoiceme/backend/internal/domain/billing"
	"github.com/invoiceme/backend/internal/domain/partner"
)

// InvoiceRenderer produces a PDF document for an invoice
type InvoiceRenderer interface {
	RenderInvoicePDF(ctx context.Context, inv *billing.Invoice, customer *partner.Customer) ([]byte, error)
}

// InvoiceSender delivers a rendered invoice to the customer
type InvoiceSender interface {
	SendInvoice(ctx context.Context, inv *billing.Invoice, customer *partner.Customer, pdf []byte) error
}

// InvoiceArchiver stores a copy of a sent invoice document.
// Archiving is best effort; failures must not block the send flow.
type InvoiceArchiver interface {
	ArchiveInvoicePDF(ctx context.Context, inv *billing.Invoice, pdf []byte) (string, error)
}
