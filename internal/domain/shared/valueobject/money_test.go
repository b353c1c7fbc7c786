package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRound2(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"no fraction", "100", "100"},
		{"two digits unchanged", "99.99", "99.99"},
		{"half rounds up", "10.005", "10.01"},
		{"half rounds away from zero when negative", "-10.005", "-10.01"},
		{"below half rounds down", "10.004", "10"},
		{"above half rounds up", "10.006", "10.01"},
		{"many digits", "1.23456", "1.23"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := decimal.NewFromString(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, Round2(d).String())
		})
	}
}

func TestNewMoney(t *testing.T) {
	t.Run("valid money", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromInt(100), USD)
		require.NoError(t, err)
		assert.Equal(t, USD, m.Currency())
		assert.True(t, m.Amount().Equal(decimal.NewFromInt(100)))
	})

	t.Run("empty currency fails", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(100), "")
		assert.Error(t, err)
	})
}

func TestNewMoneyUSDFromString(t *testing.T) {
	m, err := NewMoneyUSDFromString("1234.56")
	require.NoError(t, err)
	assert.Equal(t, "1234.56", m.StringFixed())

	_, err = NewMoneyUSDFromString("not-a-number")
	assert.Error(t, err)
}

func TestMoney_Add(t *testing.T) {
	a := NewMoneyUSDFromFloat(600.00)
	b := NewMoneyUSDFromFloat(400.00)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, "1000.00", sum.StringFixed())

	_, err = a.Add(Zero(EUR))
	assert.Error(t, err)
}

func TestMoney_Subtract(t *testing.T) {
	total := NewMoneyUSDFromFloat(1000.00)
	paid := NewMoneyUSDFromFloat(300.00)

	balance, err := total.Subtract(paid)
	require.NoError(t, err)
	assert.Equal(t, "700.00", balance.StringFixed())

	_, err = total.Subtract(Zero(GBP))
	assert.Error(t, err)
}

func TestMoney_MultiplyByInt(t *testing.T) {
	price := NewMoneyUSDFromFloat(100.00)
	assert.Equal(t, "1000.00", price.MultiplyByInt(10).StringFixed())
}

func TestMoney_Round(t *testing.T) {
	m := NewMoneyUSDFromFloat(10.005)
	assert.Equal(t, "10.01", m.Round().StringFixed())
}

func TestMoney_Comparisons(t *testing.T) {
	a := NewMoneyUSDFromFloat(100)
	b := NewMoneyUSDFromFloat(200)

	less, err := a.LessThan(b)
	require.NoError(t, err)
	assert.True(t, less)

	greater, err := b.GreaterThan(a)
	require.NoError(t, err)
	assert.True(t, greater)

	assert.True(t, a.Equals(NewMoneyUSDFromFloat(100)))
	assert.False(t, a.Equals(b))

	_, err = a.LessThan(Zero(EUR))
	assert.Error(t, err)
}

func TestMoney_Predicates(t *testing.T) {
	assert.True(t, ZeroUSD().IsZero())
	assert.True(t, NewMoneyUSDFromFloat(1).IsPositive())
	assert.True(t, NewMoneyUSDFromFloat(-1).IsNegative())
}

func TestMoney_JSONRoundTrip(t *testing.T) {
	m := NewMoneyUSDFromFloat(99.95)

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, m.Equals(decoded))
}

func TestMoney_Scan(t *testing.T) {
	var m Money
	require.NoError(t, m.Scan("250.50"))
	assert.Equal(t, "250.50", m.StringFixed())
	assert.Equal(t, DefaultCurrency, m.Currency())

	require.NoError(t, m.Scan(nil))
	assert.True(t, m.IsZero())

	assert.Error(t, m.Scan(42))
}

func TestMoney_String(t *testing.T) {
	assert.Equal(t, "19.90 USD", NewMoneyUSDFromFloat(19.9).String())
}
