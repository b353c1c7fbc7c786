package email

import (
	"context"

	appbilling "github.com/invoiceme/backend/internal/application/billing"
	"github.com/invoiceme/backend/internal/domain/billing"
	"github.com/invoiceme/backend/internal/domain/partner"
	"go.uber.org/zap"
)

// NoopSender logs instead of sending. Used when SMTP is disabled so
// invoices can still be marked as sent in development environments.
type NoopSender struct {
	logger *zap.Logger
}

// NewNoopSender creates a sender that only logs deliveries
func NewNoopSender(logger *zap.Logger) *NoopSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NoopSender{logger: logger}
}

// SendInvoice logs the delivery and reports success
func (s *NoopSender) SendInvoice(ctx context.Context, inv *billing.Invoice, customer *partner.Customer, pdf []byte) error {
	s.logger.Info("SMTP disabled, skipping invoice email",
		zap.String("invoice_number", inv.Number()),
		zap.String("to", customer.Email),
		zap.Int("pdf_bytes", len(pdf)))
	return nil
}

var _ appbilling.InvoiceSender = (*NoopSender)(nil)
