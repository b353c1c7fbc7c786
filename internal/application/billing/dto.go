package billing

import (
	"time"

	"github.com/invoiceme/backend/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// LineItemRequest carries one line item in a create or update request
type LineItemRequest struct {
	Description string          `json:"description" binding:"required,max=500"`
	Quantity    int             `json:"quantity" binding:"required,min=1"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required,decimal2"`
}

// CreateInvoiceRequest carries the fields for creating a draft invoice
type CreateInvoiceRequest struct {
	CustomerID string            `json:"customer_id" binding:"required,uuid"`
	LineItems  []LineItemRequest `json:"line_items" binding:"omitempty,dive"`
}

// UpdateLineItemsRequest replaces a draft invoice's line items
type UpdateLineItemsRequest struct {
	LineItems []LineItemRequest `json:"line_items" binding:"required,min=1,dive"`
}

// RecordPaymentRequest carries the fields for recording a payment
type RecordPaymentRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required,decimal2"`
	PaymentDate *time.Time      `json:"payment_date"`
}

// InvoiceListFilter carries query parameters for listing invoices
type InvoiceListFilter struct {
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
	CustomerID string `form:"customer_id" binding:"omitempty,uuid"`
	Status     string `form:"status" binding:"omitempty,oneof=DRAFT SENT PAID"`
}

// LineItemResponse represents a line item in API responses
type LineItemResponse struct {
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID          string             `json:"id"`
	Number      string             `json:"number"`
	CustomerID  string             `json:"customer_id"`
	Status      string             `json:"status"`
	LineItems   []LineItemResponse `json:"line_items"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
	Balance     decimal.Decimal    `json:"balance"`
	Version     int                `json:"version"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID             string          `json:"id"`
	InvoiceID      string          `json:"invoice_id"`
	Amount         decimal.Decimal `json:"amount"`
	PaymentDate    time.Time       `json:"payment_date"`
	InvoiceStatus  string          `json:"invoice_status"`
	InvoiceBalance decimal.Decimal `json:"invoice_balance"`
	CreatedAt      time.Time       `json:"created_at"`
}

// ToLineItemResponses converts domain line items
func ToLineItemResponses(items billing.LineItems) []LineItemResponse {
	responses := make([]LineItemResponse, len(items))
	for i, item := range items {
		responses[i] = LineItemResponse{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.Subtotal(),
		}
	}
	return responses
}

// ToInvoiceResponse converts a domain Invoice to InvoiceResponse
func ToInvoiceResponse(inv *billing.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:          inv.ID.String(),
		Number:      inv.Number(),
		CustomerID:  inv.CustomerID.String(),
		Status:      inv.Status.String(),
		LineItems:   ToLineItemResponses(inv.LineItems),
		TotalAmount: inv.TotalAmount,
		Balance:     inv.Balance,
		Version:     inv.GetVersion(),
		CreatedAt:   inv.CreatedAt,
		UpdatedAt:   inv.UpdatedAt,
	}
}

// ToInvoiceResponses converts a slice of domain Invoices
func ToInvoiceResponses(invoices []*billing.Invoice) []InvoiceResponse {
	responses := make([]InvoiceResponse, len(invoices))
	for i, inv := range invoices {
		responses[i] = ToInvoiceResponse(inv)
	}
	return responses
}

// ToPaymentResponse converts a payment and the invoice state after it
// was applied
func ToPaymentResponse(p *billing.Payment, inv *billing.Invoice) PaymentResponse {
	return PaymentResponse{
		ID:             p.ID.String(),
		InvoiceID:      p.InvoiceID.String(),
		Amount:         p.Amount,
		PaymentDate:    p.PaymentDate,
		InvoiceStatus:  inv.Status.String(),
		InvoiceBalance: inv.Balance,
		CreatedAt:      p.CreatedAt,
	}
}

// ToPaymentResponses converts ledger entries without invoice state
func ToPaymentResponses(payments []*billing.Payment) []PaymentResponse {
	responses := make([]PaymentResponse, len(payments))
	for i, p := range payments {
		responses[i] = PaymentResponse{
			ID:          p.ID.String(),
			InvoiceID:   p.InvoiceID.String(),
			Amount:      p.Amount,
			PaymentDate: p.PaymentDate,
			CreatedAt:   p.CreatedAt,
		}
	}
	return responses
}

// toDomainLineItems validates and converts request line items
func toDomainLineItems(reqs []LineItemRequest) ([]billing.LineItem, error) {
	items := make([]billing.LineItem, 0, len(reqs))
	for _, req := range reqs {
		item, err := billing.NewLineItem(req.Description, req.Quantity, req.UnitPrice)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
