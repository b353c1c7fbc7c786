// Package email delivers rendered invoices to customers over SMTP.
package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"

	appbilling "github.com/invoiceme/backend/internal/application/billing"
	"github.com/invoiceme/backend/internal/domain/billing"
	"github.com/invoiceme/backend/internal/domain/partner"
	"github.com/invoiceme/backend/internal/domain/shared"
	"github.com/invoiceme/backend/internal/infrastructure/config"
	"github.com/invoiceme/backend/internal/infrastructure/printing"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// SMTPSender delivers invoices by email with the PDF attached
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
	logger *zap.Logger
	tmpl   *template.Template
}

// NewSMTPSender creates an SMTP-backed invoice sender
func NewSMTPSender(cfg config.SMTPConfig, logger *zap.Logger) (*SMTPSender, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("smtp host is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	tmpl, err := template.New("invoice_email").Parse(invoiceEmailTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse invoice email template: %w", err)
	}

	return &SMTPSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		logger: logger,
		tmpl:   tmpl,
	}, nil
}

// emailData is the template context for the invoice email body
type emailData struct {
	Number       string
	CustomerName string
	Date         string
	Total        string
	Balance      string
}

// SendInvoice emails the invoice to the customer with the PDF attached
func (s *SMTPSender) SendInvoice(ctx context.Context, inv *billing.Invoice, customer *partner.Customer, pdf []byte) error {
	if customer.Email == "" {
		return shared.NewDomainError(shared.CodeDeliveryFailed, "Customer has no email address")
	}
	if len(pdf) == 0 {
		return shared.NewDomainError(shared.CodeDeliveryFailed, "Invoice PDF is empty")
	}

	body, err := s.renderBody(inv, customer)
	if err != nil {
		return shared.NewDomainError(shared.CodeDeliveryFailed,
			fmt.Sprintf("Failed to render invoice email: %v", err))
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", customer.Email)
	msg.SetHeader("Subject", fmt.Sprintf("Invoice #%s from InvoiceMe", inv.Number()))
	msg.SetBody("text/html", body)
	msg.Attach(fmt.Sprintf("%s.pdf", inv.Number()), gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(pdf)
		return err
	}))

	// gomail has no context support, honor cancellation before dialing
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if err := s.dialer.DialAndSend(msg); err != nil {
		s.logger.Error("Failed to send invoice email",
			zap.String("invoice_number", inv.Number()),
			zap.String("to", customer.Email),
			zap.Error(err))
		return shared.NewDomainError(shared.CodeDeliveryFailed,
			fmt.Sprintf("Failed to send invoice email: %v", err))
	}

	s.logger.Info("Invoice email sent",
		zap.String("invoice_number", inv.Number()),
		zap.String("to", customer.Email))
	return nil
}

func (s *SMTPSender) renderBody(inv *billing.Invoice, customer *partner.Customer) (string, error) {
	data := emailData{
		Number:       inv.Number(),
		CustomerName: customer.Name,
		Date:         inv.CreatedAt.Format("January 02, 2006"),
		Total:        printing.FormatMoney(inv.TotalAmount),
		Balance:      printing.FormatMoney(inv.Balance),
	}

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var _ appbilling.InvoiceSender = (*SMTPSender)(nil)
