package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/invoiceme/backend/internal/domain/billing"
	"github.com/invoiceme/backend/internal/domain/shared"
	"github.com/invoiceme/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// PaymentService records payments against invoices. Recording runs in a
// single transaction with the invoice row locked, so concurrent
// payments against the same invoice serialize and each validates
// against a balance derived from the committed ledger.
type PaymentService struct {
	invoiceRepo billing.InvoiceRepository
	paymentRepo billing.PaymentRepository
	txManager   shared.TxManager
	logger      *zap.Logger
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	invoiceRepo billing.InvoiceRepository,
	paymentRepo billing.PaymentRepository,
	txManager shared.TxManager,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Record records a payment against an invoice. The payment insert and
// the invoice balance/status update commit atomically; on any failure
// nothing is persisted.
func (s *PaymentService) Record(ctx context.Context, invoiceID uuid.UUID, req RecordPaymentRequest) (*PaymentResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "payment", "record")
	defer span.End()

	telemetry.SetAttributes(span,
		telemetry.SpanAttrInvoiceID, invoiceID.String(),
		telemetry.SpanAttrAmount, req.Amount.String(),
	)

	var paymentDate time.Time
	if req.PaymentDate != nil {
		paymentDate = *req.PaymentDate
	}

	var response PaymentResponse
	err := s.txManager.InTx(ctx, func(txCtx context.Context) error {
		inv, err := s.invoiceRepo.FindByIDForUpdate(txCtx, invoiceID)
		if err != nil {
			return err
		}

		// Rederive the balance from the committed ledger while holding
		// the row lock; the stored column is never trusted here.
		paidTotal, err := s.paymentRepo.SumAmountByInvoiceID(txCtx, inv.ID)
		if err != nil {
			return err
		}
		if err := inv.RecomputeBalance(paidTotal); err != nil {
			return err
		}

		payment, err := billing.NewPayment(inv.ID, req.Amount, paymentDate)
		if err != nil {
			return err
		}

		if err := inv.ApplyPayment(payment.Amount); err != nil {
			return err
		}

		if err := s.paymentRepo.Save(txCtx, payment); err != nil {
			return err
		}
		if err := s.invoiceRepo.Save(txCtx, inv); err != nil {
			return err
		}

		response = ToPaymentResponse(payment, inv)
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("payment recorded",
		zap.String("invoice_id", invoiceID.String()),
		zap.String("amount", req.Amount.StringFixed(2)),
		zap.String("invoice_status", response.InvoiceStatus))

	return &response, nil
}

// ListByInvoice retrieves all payments recorded against an invoice,
// oldest first
func (s *PaymentService) ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]PaymentResponse, error) {
	if _, err := s.invoiceRepo.FindByID(ctx, invoiceID); err != nil {
		return nil, err
	}

	payments, err := s.paymentRepo.FindByInvoiceID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	return ToPaymentResponses(payments), nil
}
