package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type paymentBody struct {
	Amount decimal.Decimal `json:"amount" binding:"required,decimal2"`
}

func newValidationRouter() *gin.Engine {
	SetupValidator()
	router := gin.New()
	router.Use(RequestID())
	router.POST("/payments", func(c *gin.Context) {
		var body paymentBody
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})
	return router
}

func TestDecimal2Validation(t *testing.T) {
	router := newValidationRouter()

	post := func(body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/payments", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("accepts two decimal places", func(t *testing.T) {
		w := post(`{"amount": "10.25"}`)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("accepts whole amounts", func(t *testing.T) {
		w := post(`{"amount": "100"}`)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejects three decimal places", func(t *testing.T) {
		w := post(`{"amount": "10.255"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "amount")
	})

	t.Run("rejects missing amount", func(t *testing.T) {
		w := post(`{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
