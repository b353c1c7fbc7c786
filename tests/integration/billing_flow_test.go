// Package integration tests for the invoice lifecycle against a real
// database: draft creation, line item edits, sending, and payment
// recording with ledger-derived balances.
package integration

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	billingapp "github.com/invoiceme/backend/internal/application/billing"
	partnerapp "github.com/invoiceme/backend/internal/application/partner"
	"github.com/invoiceme/backend/internal/domain/billing"
	"github.com/invoiceme/backend/internal/domain/partner"
	"github.com/invoiceme/backend/internal/domain/shared"
	"github.com/invoiceme/backend/internal/infrastructure/persistence"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubRenderer produces a fixed byte blob instead of driving a browser
type stubRenderer struct{}

func (stubRenderer) RenderInvoicePDF(_ context.Context, _ *billing.Invoice, _ *partner.Customer) ([]byte, error) {
	return []byte("%PDF-1.4 stub"), nil
}

// stubSender records deliveries without talking to an SMTP server
type stubSender struct {
	mu   sync.Mutex
	sent []string
}

func (s *stubSender) SendInvoice(_ context.Context, inv *billing.Invoice, _ *partner.Customer, _ []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, inv.Number())
	return nil
}

// billingEnv wires the application services over a test database
type billingEnv struct {
	customers *partnerapp.CustomerService
	invoices  *billingapp.InvoiceService
	payments  *billingapp.PaymentService
	sender    *stubSender
}

func newBillingEnv(t *testing.T, tdb *TestDB) *billingEnv {
	t.Helper()

	customerRepo := persistence.NewGormCustomerRepository(tdb.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(tdb.DB)
	paymentRepo := persistence.NewGormPaymentRepository(tdb.DB)
	txManager := persistence.NewGormTxManager(tdb.DB)

	sender := &stubSender{}
	logger := zap.NewNop()

	return &billingEnv{
		customers: partnerapp.NewCustomerService(customerRepo),
		invoices: billingapp.NewInvoiceService(
			invoiceRepo, paymentRepo, customerRepo,
			stubRenderer{}, sender, nil, logger,
		),
		payments: billingapp.NewPaymentService(invoiceRepo, paymentRepo, txManager, logger),
		sender:   sender,
	}
}

func (env *billingEnv) createCustomer(t *testing.T, name, email string) uuid.UUID {
	t.Helper()

	customer, err := env.customers.Create(context.Background(), partnerapp.CreateCustomerRequest{
		Name:  name,
		Email: email,
	})
	require.NoError(t, err)
	return uuid.MustParse(customer.ID)
}

func (env *billingEnv) createInvoice(t *testing.T, customerID uuid.UUID, items []billingapp.LineItemRequest) uuid.UUID {
	t.Helper()

	inv, err := env.invoices.Create(context.Background(), billingapp.CreateInvoiceRequest{
		CustomerID: customerID.String(),
		LineItems:  items,
	})
	require.NoError(t, err)
	return uuid.MustParse(inv.ID)
}

func consultingItems() []billingapp.LineItemRequest {
	return []billingapp.LineItemRequest{
		{Description: "Consulting", Quantity: 10, UnitPrice: decimal.NewFromInt(100)},
		{Description: "Travel expenses", Quantity: 1, UnitPrice: decimal.RequireFromString("250.50")},
	}
}

func requireDomainCode(t *testing.T, err error, code string) {
	t.Helper()

	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr), "expected domain error, got %v", err)
	assert.Equal(t, code, domainErr.Code)
}

func TestInvoiceLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tdb := NewTestDB(t)
	env := newBillingEnv(t, tdb)
	ctx := context.Background()

	customerID := env.createCustomer(t, "Acme Corp", "billing@acme.test")
	invoiceID := env.createInvoice(t, customerID, consultingItems())

	t.Run("draft invoice starts with full balance", func(t *testing.T) {
		inv, err := env.invoices.GetByID(ctx, invoiceID)
		require.NoError(t, err)

		assert.Equal(t, "DRAFT", inv.Status)
		assert.True(t, inv.TotalAmount.Equal(decimal.RequireFromString("1250.50")),
			"total was %s", inv.TotalAmount)
		assert.True(t, inv.Balance.Equal(inv.TotalAmount))
		assert.Len(t, inv.LineItems, 2)
	})

	t.Run("line items can be replaced while draft", func(t *testing.T) {
		inv, err := env.invoices.UpdateLineItems(ctx, invoiceID, billingapp.UpdateLineItemsRequest{
			LineItems: []billingapp.LineItemRequest{
				{Description: "Consulting", Quantity: 10, UnitPrice: decimal.NewFromInt(100)},
			},
		})
		require.NoError(t, err)

		assert.True(t, inv.TotalAmount.Equal(decimal.NewFromInt(1000)))
		assert.True(t, inv.Balance.Equal(decimal.NewFromInt(1000)))
	})

	t.Run("payments are rejected while draft", func(t *testing.T) {
		_, err := env.payments.Record(ctx, invoiceID, billingapp.RecordPaymentRequest{
			Amount: decimal.NewFromInt(100),
		})
		requireDomainCode(t, err, shared.CodeInvalidStateTransition)
	})

	t.Run("sending delivers the invoice and transitions to sent", func(t *testing.T) {
		inv, err := env.invoices.Send(ctx, invoiceID)
		require.NoError(t, err)

		assert.Equal(t, "SENT", inv.Status)
		assert.Len(t, env.sender.sent, 1)
	})

	t.Run("sent invoice cannot be sent again", func(t *testing.T) {
		_, err := env.invoices.Send(ctx, invoiceID)
		requireDomainCode(t, err, shared.CodeInvalidStateTransition)
	})

	t.Run("line items are frozen once sent", func(t *testing.T) {
		_, err := env.invoices.UpdateLineItems(ctx, invoiceID, billingapp.UpdateLineItemsRequest{
			LineItems: []billingapp.LineItemRequest{
				{Description: "Discounted consulting", Quantity: 1, UnitPrice: decimal.NewFromInt(1)},
			},
		})
		requireDomainCode(t, err, shared.CodeInvoiceNotEditable)
	})

	t.Run("partial payment reduces the balance", func(t *testing.T) {
		payment, err := env.payments.Record(ctx, invoiceID, billingapp.RecordPaymentRequest{
			Amount: decimal.RequireFromString("400.00"),
		})
		require.NoError(t, err)

		assert.Equal(t, "SENT", payment.InvoiceStatus)
		assert.True(t, payment.InvoiceBalance.Equal(decimal.NewFromInt(600)))

		inv, err := env.invoices.GetByID(ctx, invoiceID)
		require.NoError(t, err)
		assert.True(t, inv.Balance.Equal(decimal.NewFromInt(600)))
	})

	t.Run("overpayment is rejected", func(t *testing.T) {
		_, err := env.payments.Record(ctx, invoiceID, billingapp.RecordPaymentRequest{
			Amount: decimal.RequireFromString("600.01"),
		})
		requireDomainCode(t, err, shared.CodePaymentExceedsBalance)
	})

	t.Run("final payment settles the invoice", func(t *testing.T) {
		payment, err := env.payments.Record(ctx, invoiceID, billingapp.RecordPaymentRequest{
			Amount: decimal.NewFromInt(600),
		})
		require.NoError(t, err)

		assert.Equal(t, "PAID", payment.InvoiceStatus)
		assert.True(t, payment.InvoiceBalance.IsZero())
	})

	t.Run("paid invoice rejects further payments", func(t *testing.T) {
		_, err := env.payments.Record(ctx, invoiceID, billingapp.RecordPaymentRequest{
			Amount: decimal.NewFromInt(1),
		})
		requireDomainCode(t, err, shared.CodeInvalidStateTransition)
	})

	t.Run("ledger lists payments oldest first", func(t *testing.T) {
		payments, err := env.payments.ListByInvoice(ctx, invoiceID)
		require.NoError(t, err)

		require.Len(t, payments, 2)
		assert.True(t, payments[0].Amount.Equal(decimal.NewFromInt(400)))
		assert.True(t, payments[1].Amount.Equal(decimal.NewFromInt(600)))
	})
}

func TestConcurrentPayments(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tdb := NewTestDB(t)
	env := newBillingEnv(t, tdb)
	ctx := context.Background()

	customerID := env.createCustomer(t, "Globex", "accounts@globex.test")
	invoiceID := env.createInvoice(t, customerID, []billingapp.LineItemRequest{
		{Description: "Retainer", Quantity: 1, UnitPrice: decimal.NewFromInt(100)},
	})

	_, err := env.invoices.Send(ctx, invoiceID)
	require.NoError(t, err)

	// Five concurrent half payments against a 100 balance. The invoice
	// row lock serializes them, so exactly two can succeed.
	const workers = 5
	var wg sync.WaitGroup
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.payments.Record(ctx, invoiceID, billingapp.RecordPaymentRequest{
				Amount: decimal.NewFromInt(50),
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr), "unexpected error: %v", err)
		assert.Contains(t,
			[]string{shared.CodePaymentExceedsBalance, shared.CodeInvalidStateTransition},
			domainErr.Code)
	}
	assert.Equal(t, 2, succeeded)

	inv, err := env.invoices.GetByID(ctx, invoiceID)
	require.NoError(t, err)
	assert.Equal(t, "PAID", inv.Status)
	assert.True(t, inv.Balance.IsZero())

	payments, err := env.payments.ListByInvoice(ctx, invoiceID)
	require.NoError(t, err)
	assert.Len(t, payments, 2)
}
