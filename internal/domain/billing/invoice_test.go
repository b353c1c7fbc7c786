package billing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/invoiceme/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLineItem(t *testing.T, description string, quantity int, unitPrice string) LineItem {
	t.Helper()
	item, err := NewLineItem(description, quantity, mustDecimal(t, unitPrice))
	require.NoError(t, err)
	return item
}

func newSentInvoice(t *testing.T, items ...LineItem) *Invoice {
	t.Helper()
	inv, err := NewInvoice(uuid.New(), items)
	require.NoError(t, err)
	require.NoError(t, inv.MarkAsSent())
	return inv
}

func TestNewInvoice(t *testing.T) {
	t.Run("creates draft invoice with computed total", func(t *testing.T) {
		items := []LineItem{
			newTestLineItem(t, "Widget", 10, "100.00"),
			newTestLineItem(t, "Gadget", 5, "50.00"),
		}

		inv, err := NewInvoice(uuid.New(), items)

		require.NoError(t, err)
		assert.Equal(t, InvoiceStatusDraft, inv.Status)
		assert.Equal(t, "1250.00", inv.TotalAmount.StringFixed(2))
		assert.Equal(t, "1250.00", inv.Balance.StringFixed(2))
		assert.Len(t, inv.GetDomainEvents(), 1)
		assert.Equal(t, EventTypeInvoiceCreated, inv.GetDomainEvents()[0].EventType())
	})

	t.Run("allows empty line items while draft", func(t *testing.T) {
		inv, err := NewInvoice(uuid.New(), nil)

		require.NoError(t, err)
		assert.True(t, inv.TotalAmount.IsZero())
		assert.Empty(t, inv.LineItems)
	})

	t.Run("rejects nil customer ID", func(t *testing.T) {
		_, err := NewInvoice(uuid.Nil, nil)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeValidationFailed, domainErr.Code)
	})
}

func TestInvoiceAddLineItem(t *testing.T) {
	t.Run("appends item and recalculates", func(t *testing.T) {
		inv, err := NewInvoice(uuid.New(), []LineItem{newTestLineItem(t, "Widget", 1, "10.00")})
		require.NoError(t, err)
		initialVersion := inv.GetVersion()

		require.NoError(t, inv.AddLineItem("Gadget", 2, mustDecimal(t, "5.50")))

		assert.Equal(t, "21.00", inv.TotalAmount.StringFixed(2))
		assert.Equal(t, initialVersion+1, inv.GetVersion())
	})

	t.Run("rejects invalid item without mutating", func(t *testing.T) {
		inv, err := NewInvoice(uuid.New(), []LineItem{newTestLineItem(t, "Widget", 1, "10.00")})
		require.NoError(t, err)

		err = inv.AddLineItem("", 1, mustDecimal(t, "5.00"))

		require.Error(t, err)
		assert.Equal(t, "10.00", inv.TotalAmount.StringFixed(2))
		assert.Len(t, inv.LineItems, 1)
	})

	t.Run("rejects mutation after sent", func(t *testing.T) {
		inv := newSentInvoice(t, newTestLineItem(t, "Widget", 1, "10.00"))

		err := inv.AddLineItem("Gadget", 1, mustDecimal(t, "5.00"))

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeInvoiceNotEditable, domainErr.Code)
	})
}

func TestInvoiceReplaceLineItems(t *testing.T) {
	t.Run("replaces full collection", func(t *testing.T) {
		inv, err := NewInvoice(uuid.New(), []LineItem{newTestLineItem(t, "Old", 1, "99.00")})
		require.NoError(t, err)

		newItems := []LineItem{
			newTestLineItem(t, "Widget", 10, "100.00"),
			newTestLineItem(t, "Gadget", 5, "50.00"),
		}
		require.NoError(t, inv.ReplaceLineItems(newItems))

		assert.Equal(t, "1250.00", inv.TotalAmount.StringFixed(2))
		assert.Len(t, inv.LineItems, 2)
	})

	t.Run("rejects empty collection", func(t *testing.T) {
		inv, err := NewInvoice(uuid.New(), []LineItem{newTestLineItem(t, "Widget", 1, "10.00")})
		require.NoError(t, err)

		err = inv.ReplaceLineItems(nil)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeInvalidLineItems, domainErr.Code)
		assert.Len(t, inv.LineItems, 1)
	})

	t.Run("rejects replacement after sent", func(t *testing.T) {
		inv := newSentInvoice(t, newTestLineItem(t, "Widget", 1, "10.00"))

		err := inv.ReplaceLineItems([]LineItem{newTestLineItem(t, "Gadget", 1, "5.00")})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeInvoiceNotEditable, domainErr.Code)
	})
}

func TestInvoiceMarkAsSent(t *testing.T) {
	t.Run("transitions draft to sent", func(t *testing.T) {
		inv, err := NewInvoice(uuid.New(), []LineItem{newTestLineItem(t, "Widget", 1, "10.00")})
		require.NoError(t, err)
		inv.ClearDomainEvents()

		require.NoError(t, inv.MarkAsSent())

		assert.Equal(t, InvoiceStatusSent, inv.Status)
		require.Len(t, inv.GetDomainEvents(), 1)
		assert.Equal(t, EventTypeInvoiceSent, inv.GetDomainEvents()[0].EventType())
	})

	tests := []struct {
		name    string
		invoice func(t *testing.T) *Invoice
	}{
		{
			"already sent",
			func(t *testing.T) *Invoice {
				return newSentInvoice(t, newTestLineItem(t, "Widget", 1, "10.00"))
			},
		},
		{
			"no line items",
			func(t *testing.T) *Invoice {
				inv, err := NewInvoice(uuid.New(), nil)
				require.NoError(t, err)
				return inv
			},
		},
		{
			"zero total",
			func(t *testing.T) *Invoice {
				inv, err := NewInvoice(uuid.New(), []LineItem{newTestLineItem(t, "Free tier", 3, "0.00")})
				require.NoError(t, err)
				return inv
			},
		},
	}

	for _, tt := range tests {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			inv := tt.invoice(t)
			statusBefore := inv.Status

			err := inv.MarkAsSent()

			var domainErr *shared.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, shared.CodeInvalidStateTransition, domainErr.Code)
			assert.Equal(t, statusBefore, inv.Status)
			assert.False(t, inv.CanBeMarkedAsSent())
		})
	}
}

func TestInvoiceApplyPayment(t *testing.T) {
	t.Run("partial payment reduces balance and stays sent", func(t *testing.T) {
		inv := newSentInvoice(t, newTestLineItem(t, "Widget", 10, "100.00"))

		require.NoError(t, inv.ApplyPayment(mustDecimal(t, "300.00")))

		assert.Equal(t, "700.00", inv.Balance.StringFixed(2))
		assert.Equal(t, InvoiceStatusSent, inv.Status)
	})

	t.Run("payment to exactly zero transitions to paid", func(t *testing.T) {
		inv := newSentInvoice(t, newTestLineItem(t, "Widget", 10, "100.00"))
		require.NoError(t, inv.ApplyPayment(mustDecimal(t, "600.00")))
		inv.ClearDomainEvents()

		require.NoError(t, inv.ApplyPayment(mustDecimal(t, "400.00")))

		assert.Equal(t, "0.00", inv.Balance.StringFixed(2))
		assert.Equal(t, InvoiceStatusPaid, inv.Status)
		require.Len(t, inv.GetDomainEvents(), 1)
		assert.Equal(t, EventTypeInvoicePaid, inv.GetDomainEvents()[0].EventType())
	})

	t.Run("rejects overpayment leaving invoice unchanged", func(t *testing.T) {
		inv := newSentInvoice(t, newTestLineItem(t, "Widget", 10, "100.00"))

		err := inv.ApplyPayment(mustDecimal(t, "1500.00"))

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodePaymentExceedsBalance, domainErr.Code)
		assert.Equal(t, "1000.00", inv.Balance.StringFixed(2))
		assert.Equal(t, InvoiceStatusSent, inv.Status)
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		inv := newSentInvoice(t, newTestLineItem(t, "Widget", 1, "10.00"))

		for _, amount := range []string{"0", "-5.00"} {
			err := inv.ApplyPayment(mustDecimal(t, amount))

			var domainErr *shared.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, shared.CodeInvalidPaymentAmount, domainErr.Code)
		}
	})

	t.Run("rejects payment on draft invoice", func(t *testing.T) {
		inv, err := NewInvoice(uuid.New(), []LineItem{newTestLineItem(t, "Widget", 1, "10.00")})
		require.NoError(t, err)

		err = inv.ApplyPayment(mustDecimal(t, "5.00"))

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeInvalidStateTransition, domainErr.Code)
	})

	t.Run("rejects payment on paid invoice", func(t *testing.T) {
		inv := newSentInvoice(t, newTestLineItem(t, "Widget", 1, "10.00"))
		require.NoError(t, inv.ApplyPayment(mustDecimal(t, "10.00")))

		err := inv.ApplyPayment(mustDecimal(t, "0.01"))

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeInvalidStateTransition, domainErr.Code)
	})
}

func TestInvoiceRecomputeBalance(t *testing.T) {
	t.Run("derives balance from ledger total", func(t *testing.T) {
		inv := newSentInvoice(t, newTestLineItem(t, "Widget", 10, "100.00"))

		require.NoError(t, inv.RecomputeBalance(mustDecimal(t, "250.50")))

		assert.Equal(t, "749.50", inv.Balance.StringFixed(2))
	})

	t.Run("rejects ledger exceeding total", func(t *testing.T) {
		inv := newSentInvoice(t, newTestLineItem(t, "Widget", 1, "10.00"))

		err := inv.RecomputeBalance(mustDecimal(t, "10.01"))

		require.Error(t, err)
	})
}

func TestInvoiceNumber(t *testing.T) {
	inv, err := NewInvoice(uuid.New(), nil)
	require.NoError(t, err)

	number := inv.Number()
	assert.Len(t, number, len("INV-")+8)
	assert.Contains(t, number, "INV-")
}
