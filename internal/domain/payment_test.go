package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validIntent() PaymentIntent {
	return PaymentIntent{
		Amount:   2500,
		Currency: "EUR",
		CustomerInfo: CustomerInfo{
			Email:      "jane.doe@example.com",
			FirstName:  "Jane",
			LastName:   "Doe",
			Address:    "1 rue de la Paix",
			City:       "Paris",
			PostalCode: "75002",
		},
		Items: []PaymentItem{
			{ID: "sku-1", Name: "Tagine pot", Quantity: 1, Price: 2500},
		},
	}
}

func TestValidate_ValidIntent(t *testing.T) {
	require.NoError(t, validIntent().Validate())
}

func TestValidate_AmountMismatch(t *testing.T) {
	intent := validIntent()
	intent.Items = []PaymentItem{
		{ID: "sku-1", Name: "Tagine pot", Quantity: 1, Price: 2000},
	}

	err := intent.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Contains(t, err.Error(), "expected 2000")
	assert.Contains(t, err.Error(), "got 2500")
}

func TestValidate_AmountMismatchWithQuantities(t *testing.T) {
	intent := validIntent()
	intent.Amount = 5000
	intent.Items = []PaymentItem{
		{ID: "sku-1", Name: "Tagine pot", Quantity: 2, Price: 2500},
		{ID: "sku-2", Name: "Mint tea", Quantity: 3, Price: 100},
	}

	err := intent.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 5300")
	assert.Contains(t, err.Error(), "got 5000")
}

func TestValidate_NonPositiveAmount(t *testing.T) {
	for _, amount := range []int64{0, -100} {
		intent := validIntent()
		intent.Amount = amount

		err := intent.Validate()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrValidation))
		assert.Contains(t, err.Error(), "amount must be greater than zero")
	}
}

func TestValidate_CurrencyFormat(t *testing.T) {
	tests := []struct {
		name     string
		currency string
	}{
		{"lowercase", "eur"},
		{"too short", "EU"},
		{"too long", "EURO"},
		{"blank", "   "},
		{"empty", ""},
		{"digits", "EU1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent := validIntent()
			intent.Currency = tt.currency

			err := intent.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))
		})
	}
}

func TestValidate_CustomerInfo(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CustomerInfo)
		want   string
	}{
		{"bad email", func(c *CustomerInfo) { c.Email = "not-an-email" }, "valid email is required"},
		{"empty email", func(c *CustomerInfo) { c.Email = "" }, "valid email is required"},
		{"blank first name", func(c *CustomerInfo) { c.FirstName = "  " }, "first name is required"},
		{"blank last name", func(c *CustomerInfo) { c.LastName = "" }, "last name is required"},
		{"blank address", func(c *CustomerInfo) { c.Address = "" }, "address is required"},
		{"blank city", func(c *CustomerInfo) { c.City = " " }, "city is required"},
		{"blank postal code", func(c *CustomerInfo) { c.PostalCode = "" }, "postal code is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent := validIntent()
			tt.mutate(&intent.CustomerInfo)

			err := intent.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_PhoneIsOptional(t *testing.T) {
	intent := validIntent()
	intent.CustomerInfo.Phone = ""
	require.NoError(t, intent.Validate())
}

func TestValidate_Items(t *testing.T) {
	t.Run("no items", func(t *testing.T) {
		intent := validIntent()
		intent.Items = nil

		err := intent.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least one item is required")
	})

	tests := []struct {
		name string
		item PaymentItem
		want string
	}{
		{"blank id", PaymentItem{ID: " ", Name: "x", Quantity: 1, Price: 2500}, "item ID is required"},
		{"blank name", PaymentItem{ID: "sku-1", Name: "", Quantity: 1, Price: 2500}, "item name is required"},
		{"zero quantity", PaymentItem{ID: "sku-1", Name: "x", Quantity: 0, Price: 2500}, "item quantity must be greater than zero"},
		{"negative price", PaymentItem{ID: "sku-1", Name: "x", Quantity: 1, Price: -1}, "item price must be non-negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent := validIntent()
			intent.Items = []PaymentItem{tt.item}

			err := intent.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_FreeItemAllowed(t *testing.T) {
	intent := validIntent()
	intent.Items = append(intent.Items, PaymentItem{ID: "sku-2", Name: "Sample", Quantity: 1, Price: 0})
	require.NoError(t, intent.Validate())
}

func TestIsFinalState(t *testing.T) {
	final := map[PaymentStatus]bool{
		StatusRequiresPaymentMethod: false,
		StatusRequiresConfirmation:  false,
		StatusRequiresAction:        false,
		StatusProcessing:            false,
		StatusSucceeded:             true,
		StatusCanceled:              true,
		StatusFailed:                true,
	}

	for status, want := range final {
		intent := PaymentIntent{Status: status}
		assert.Equal(t, want, intent.IsFinalState(), "status %s", status)
	}
}
