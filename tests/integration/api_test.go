// Package integration tests for the HTTP API against a real database.
package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/invoiceme/backend/internal/interfaces/http/handler"
	"github.com/invoiceme/backend/internal/interfaces/http/middleware"
	"github.com/invoiceme/backend/internal/interfaces/http/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// apiServer wraps the test database and HTTP engine for API testing
type apiServer struct {
	env    *billingEnv
	engine *gin.Engine
}

func newAPIServer(t *testing.T, tdb *TestDB) *apiServer {
	t.Helper()

	env := newBillingEnv(t, tdb)

	middleware.SetupValidator()
	engine := gin.New()
	engine.Use(middleware.RequestID())

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewCustomerHandler(env.customers))
	r.Register(handler.NewInvoiceHandler(env.invoices))
	r.Register(handler.NewPaymentHandler(env.payments))
	r.Setup()

	return &apiServer{env: env, engine: engine}
}

func (s *apiServer) request(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, "/api/v1"+path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

// decodeData unmarshals the data field of the standard response envelope
func decodeData(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()

	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.True(t, envelope.Success, "response was not successful: %s", w.Body.String())
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func TestCustomerAPI(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tdb := NewTestDB(t)
	server := newAPIServer(t, tdb)

	var customerID string

	t.Run("create customer", func(t *testing.T) {
		w := server.request(t, http.MethodPost, "/customers", gin.H{
			"name":    "Acme Corp",
			"email":   "billing@acme.test",
			"address": "1 Main St",
			"phone":   "555-0100",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var customer struct {
			ID    string `json:"id"`
			Name  string `json:"name"`
			Email string `json:"email"`
		}
		decodeData(t, w, &customer)
		assert.Equal(t, "Acme Corp", customer.Name)
		assert.Equal(t, "billing@acme.test", customer.Email)
		customerID = customer.ID
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		w := server.request(t, http.MethodPost, "/customers", gin.H{
			"name":  "Acme Clone",
			"email": "BILLING@acme.test",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "ALREADY_EXISTS")
	})

	t.Run("get customer", func(t *testing.T) {
		w := server.request(t, http.MethodGet, "/customers/"+customerID, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var customer struct {
			ID string `json:"id"`
		}
		decodeData(t, w, &customer)
		assert.Equal(t, customerID, customer.ID)
	})

	t.Run("invalid email rejected", func(t *testing.T) {
		w := server.request(t, http.MethodPost, "/customers", gin.H{
			"name":  "Bad Email Inc",
			"email": "not-an-email",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "email")
	})

	t.Run("unknown customer returns not found", func(t *testing.T) {
		w := server.request(t, http.MethodGet, "/customers/0a658b9f-5da1-4e3f-8f0b-111111111111", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestInvoiceAndPaymentAPI(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tdb := NewTestDB(t)
	server := newAPIServer(t, tdb)

	customerID := server.env.createCustomer(t, "Globex", "accounts@globex.test")

	type invoicePayload struct {
		ID          string `json:"id"`
		Number      string `json:"number"`
		Status      string `json:"status"`
		TotalAmount string `json:"total_amount"`
		Balance     string `json:"balance"`
	}

	var invoiceID string

	t.Run("create draft invoice", func(t *testing.T) {
		w := server.request(t, http.MethodPost, "/invoices", gin.H{
			"customer_id": customerID.String(),
			"line_items": []gin.H{
				{"description": "Consulting", "quantity": 10, "unit_price": "100.00"},
			},
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var inv invoicePayload
		decodeData(t, w, &inv)
		assert.Equal(t, "DRAFT", inv.Status)
		assert.Equal(t, "1000", inv.TotalAmount)
		assert.Contains(t, inv.Number, "INV-")
		invoiceID = inv.ID
	})

	t.Run("reject line item with sub-cent price", func(t *testing.T) {
		w := server.request(t, http.MethodPost, "/invoices", gin.H{
			"customer_id": customerID.String(),
			"line_items": []gin.H{
				{"description": "Consulting", "quantity": 1, "unit_price": "9.999"},
			},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("send invoice", func(t *testing.T) {
		w := server.request(t, http.MethodPost, "/invoices/"+invoiceID+"/send", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var inv invoicePayload
		decodeData(t, w, &inv)
		assert.Equal(t, "SENT", inv.Status)
	})

	t.Run("line item edit on sent invoice is unprocessable", func(t *testing.T) {
		w := server.request(t, http.MethodPut, "/invoices/"+invoiceID+"/line-items", gin.H{
			"line_items": []gin.H{
				{"description": "Cheaper consulting", "quantity": 1, "unit_price": "1.00"},
			},
		})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "INVOICE_NOT_EDITABLE")
	})

	t.Run("record partial payment", func(t *testing.T) {
		w := server.request(t, http.MethodPost, "/invoices/"+invoiceID+"/payments", gin.H{
			"amount": "400.00",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var payment struct {
			InvoiceStatus  string `json:"invoice_status"`
			InvoiceBalance string `json:"invoice_balance"`
		}
		decodeData(t, w, &payment)
		assert.Equal(t, "SENT", payment.InvoiceStatus)
		assert.Equal(t, "600", payment.InvoiceBalance)
	})

	t.Run("overpayment is unprocessable", func(t *testing.T) {
		w := server.request(t, http.MethodPost, "/invoices/"+invoiceID+"/payments", gin.H{
			"amount": "600.01",
		})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "PAYMENT_EXCEEDS_BALANCE")
	})

	t.Run("final payment settles the invoice", func(t *testing.T) {
		w := server.request(t, http.MethodPost, "/invoices/"+invoiceID+"/payments", gin.H{
			"amount": "600.00",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var payment struct {
			InvoiceStatus string `json:"invoice_status"`
		}
		decodeData(t, w, &payment)
		assert.Equal(t, "PAID", payment.InvoiceStatus)
	})

	t.Run("payment ledger is listed", func(t *testing.T) {
		w := server.request(t, http.MethodGet, "/invoices/"+invoiceID+"/payments", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var payments []struct {
			Amount string `json:"amount"`
		}
		decodeData(t, w, &payments)
		require.Len(t, payments, 2)
		assert.Equal(t, "400", payments[0].Amount)
		assert.Equal(t, "600", payments[1].Amount)
	})

	t.Run("invoice list filters by customer", func(t *testing.T) {
		w := server.request(t, http.MethodGet, fmt.Sprintf("/invoices?customer_id=%s", customerID), nil)
		require.Equal(t, http.StatusOK, w.Code)

		var invoices []invoicePayload
		decodeData(t, w, &invoices)
		require.Len(t, invoices, 1)
		assert.Equal(t, "PAID", invoices[0].Status)
	})

	t.Run("invoice list filters by status", func(t *testing.T) {
		w := server.request(t, http.MethodGet, "/invoices?status=DRAFT", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var invoices []invoicePayload
		decodeData(t, w, &invoices)
		assert.Empty(t, invoices)
	})
}
