package billing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/invoiceme/backend/internal/domain/billing"
	"github.com/invoiceme/backend/internal/domain/partner"
	"github.com/invoiceme/backend/internal/domain/shared"
	"github.com/invoiceme/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// InvoiceService handles invoice lifecycle operations
type InvoiceService struct {
	invoiceRepo  billing.InvoiceRepository
	paymentRepo  billing.PaymentRepository
	customerRepo partner.CustomerRepository
	renderer     InvoiceRenderer
	sender       InvoiceSender
	archiver     InvoiceArchiver
	logger       *zap.Logger
}

// NewInvoiceService creates a new InvoiceService. The archiver may be
// nil when no document archive is configured.
func NewInvoiceService(
	invoiceRepo billing.InvoiceRepository,
	paymentRepo billing.PaymentRepository,
	customerRepo partner.CustomerRepository,
	renderer InvoiceRenderer,
	sender InvoiceSender,
	archiver InvoiceArchiver,
	logger *zap.Logger,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:  invoiceRepo,
		paymentRepo:  paymentRepo,
		customerRepo: customerRepo,
		renderer:     renderer,
		sender:       sender,
		archiver:     archiver,
		logger:       logger,
	}
}

// Create creates a new draft invoice for an existing customer
func (s *InvoiceService) Create(ctx context.Context, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, shared.NewDomainError(shared.CodeValidationFailed, "Invalid customer ID")
	}

	if _, err := s.customerRepo.FindByID(ctx, customerID); err != nil {
		return nil, err
	}

	items, err := toDomainLineItems(req.LineItems)
	if err != nil {
		return nil, err
	}

	inv, err := billing.NewInvoice(customerID, items)
	if err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Save(ctx, inv); err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(inv)
	return &response, nil
}

// GetByID retrieves an invoice. The returned balance is rederived from
// the payment ledger rather than read from the stored column.
func (s *InvoiceService) GetByID(ctx context.Context, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	if err := s.refreshBalance(ctx, inv); err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(inv)
	return &response, nil
}

// List retrieves invoices with pagination, optionally filtered by
// customer
func (s *InvoiceService) List(ctx context.Context, filter InvoiceListFilter) (*shared.Paginated[InvoiceResponse], error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.Status != "" {
		if !billing.InvoiceStatus(filter.Status).IsValid() {
			return nil, shared.NewDomainError(shared.CodeValidationFailed,
				fmt.Sprintf("Invalid invoice status %q", filter.Status))
		}
		domainFilter.Filters["status"] = filter.Status
	}

	var (
		invoices []*billing.Invoice
		total    int64
		err      error
	)

	if filter.CustomerID != "" {
		customerID, parseErr := uuid.Parse(filter.CustomerID)
		if parseErr != nil {
			return nil, shared.NewDomainError(shared.CodeValidationFailed, "Invalid customer ID")
		}
		invoices, err = s.invoiceRepo.FindByCustomerID(ctx, customerID, domainFilter)
		if err != nil {
			return nil, err
		}
		total, err = s.invoiceRepo.CountByCustomerID(ctx, customerID)
	} else {
		invoices, err = s.invoiceRepo.FindAll(ctx, domainFilter)
		if err != nil {
			return nil, err
		}
		total, err = s.invoiceRepo.Count(ctx, domainFilter)
	}
	if err != nil {
		return nil, err
	}

	for _, inv := range invoices {
		if err := s.refreshBalance(ctx, inv); err != nil {
			return nil, err
		}
	}

	page := shared.NewPaginated(ToInvoiceResponses(invoices), total, domainFilter.Page, domainFilter.PageSize)
	return &page, nil
}

// UpdateLineItems replaces the line items of a draft invoice
func (s *InvoiceService) UpdateLineItems(ctx context.Context, invoiceID uuid.UUID, req UpdateLineItemsRequest) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	items, err := toDomainLineItems(req.LineItems)
	if err != nil {
		return nil, err
	}

	if err := inv.ReplaceLineItems(items); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Save(ctx, inv); err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(inv)
	return &response, nil
}

// Send delivers an invoice to its customer and transitions it to Sent.
// The status only changes after the delivery succeeds; a rendering or
// delivery failure leaves the invoice Draft.
func (s *InvoiceService) Send(ctx context.Context, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "invoice", "send")
	defer span.End()

	inv, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttributes(span,
		telemetry.SpanAttrInvoiceID, inv.ID.String(),
		telemetry.SpanAttrInvoiceStatus, inv.Status.String(),
	)

	// Run the guard up front so an undeliverable invoice fails before
	// any rendering work happens.
	if err := inv.EnsureSendable(); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	customer, err := s.customerRepo.FindByID(ctx, inv.CustomerID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	pdf, err := s.renderer.RenderInvoicePDF(ctx, inv, customer)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, shared.NewDomainError(shared.CodeDeliveryFailed,
			fmt.Sprintf("Failed to render invoice document: %v", err))
	}

	if err := s.sender.SendInvoice(ctx, inv, customer, pdf); err != nil {
		telemetry.RecordError(span, err)
		return nil, shared.NewDomainError(shared.CodeDeliveryFailed,
			fmt.Sprintf("Failed to deliver invoice to %s: %v", customer.Email, err))
	}

	if err := inv.MarkAsSent(); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := s.invoiceRepo.Save(ctx, inv); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	// Archiving is best effort: the invoice is already sent, so a
	// storage failure is only logged.
	if s.archiver != nil {
		if location, archiveErr := s.archiver.ArchiveInvoicePDF(ctx, inv, pdf); archiveErr != nil {
			s.logger.Warn("failed to archive invoice document",
				zap.String("invoice_id", inv.ID.String()),
				zap.Error(archiveErr))
		} else {
			s.logger.Info("archived invoice document",
				zap.String("invoice_id", inv.ID.String()),
				zap.String("location", location))
		}
	}

	s.logger.Info("invoice sent",
		zap.String("invoice_id", inv.ID.String()),
		zap.String("customer_email", customer.Email),
		zap.String("total_amount", inv.TotalAmount.StringFixed(2)))

	response := ToInvoiceResponse(inv)
	return &response, nil
}

// RenderPDF produces the invoice document without sending it
func (s *InvoiceService) RenderPDF(ctx context.Context, invoiceID uuid.UUID) ([]byte, string, error) {
	inv, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, "", err
	}

	if err := s.refreshBalance(ctx, inv); err != nil {
		return nil, "", err
	}

	customer, err := s.customerRepo.FindByID(ctx, inv.CustomerID)
	if err != nil {
		return nil, "", err
	}

	pdf, err := s.renderer.RenderInvoicePDF(ctx, inv, customer)
	if err != nil {
		return nil, "", shared.NewDomainError(shared.CodeDeliveryFailed,
			fmt.Sprintf("Failed to render invoice document: %v", err))
	}

	return pdf, fmt.Sprintf("%s.pdf", inv.Number()), nil
}

// refreshBalance rederives the invoice balance from the payment ledger
func (s *InvoiceService) refreshBalance(ctx context.Context, inv *billing.Invoice) error {
	paidTotal, err := s.paymentRepo.SumAmountByInvoiceID(ctx, inv.ID)
	if err != nil {
		return err
	}
	return inv.RecomputeBalance(paidTotal)
}
