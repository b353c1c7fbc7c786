// Package printing renders invoices to printable documents.
package printing

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/invoiceme/backend/internal/domain/billing"
	"github.com/invoiceme/backend/internal/domain/partner"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TemplateEngine renders the invoice HTML document from domain data.
type TemplateEngine struct {
	tmpl *template.Template
}

// NewTemplateEngine parses the built-in invoice template
func NewTemplateEngine() (*TemplateEngine, error) {
	tmpl, err := template.New("invoice").Funcs(templateFuncs()).Parse(invoiceTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse invoice template: %w", err)
	}
	return &TemplateEngine{tmpl: tmpl}, nil
}

// invoiceData is the template context for a single invoice document
type invoiceData struct {
	Number     string
	Date       time.Time
	Status     string
	Customer   *partner.Customer
	LineItems  billing.LineItems
	Total      decimal.Decimal
	PaidAmount decimal.Decimal
	Balance    decimal.Decimal
}

// RenderInvoiceHTML produces the HTML document for an invoice
func (e *TemplateEngine) RenderInvoiceHTML(inv *billing.Invoice, customer *partner.Customer) (string, error) {
	data := invoiceData{
		Number:     inv.Number(),
		Date:       inv.CreatedAt,
		Status:     string(inv.Status),
		Customer:   customer,
		LineItems:  inv.LineItems,
		Total:      inv.TotalAmount,
		PaidAmount: inv.TotalAmount.Sub(inv.Balance),
		Balance:    inv.Balance,
	}

	var buf bytes.Buffer
	if err := e.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render invoice template: %w", err)
	}
	return buf.String(), nil
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatMoney":   FormatMoney,
		"formatDate":    formatDate,
		"formatdecimal": func(d decimal.Decimal) string { return d.String() },
		"upper":         strings.ToUpper,
		"title":         titleCase,
	}
}

// FormatMoney formats a decimal as US currency
// Example: 1234.5 -> "$1,234.50"
func FormatMoney(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	parts := strings.Split(d.StringFixed(2), ".")
	intPart := parts[0]
	decPart := "00"
	if len(parts) > 1 {
		decPart = parts[1]
	}

	var result strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(c)
	}

	return sign + "$" + result.String() + "." + decPart
}

// formatDate formats a time value like "January 02, 2006"
func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("January 02, 2006")
}

func titleCase(s string) string {
	caser := cases.Title(language.English)
	return caser.String(s)
}
