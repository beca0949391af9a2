package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"inventorywidget/internal/models"
	"inventorywidget/internal/validation"
)

func TestForCreate_Valid(t *testing.T) {
	fields, err := validation.ForCreate("12", "Pen", "3.50", "10")

	assert.NoError(t, err)
	assert.Equal(t, 12, fields.Code)
	assert.Equal(t, "Pen", fields.Name)
	assert.Equal(t, 3.50, fields.UnitPrice)
	assert.Equal(t, 10, fields.Quantity)
}

func TestForCreate_FieldReasons(t *testing.T) {
	longName := ""
	for i := 0; i < 41; i++ {
		longName += "x"
	}

	cases := []struct {
		name     string
		code     string
		prod     string
		price    string
		quantity string
		reason   models.ValidationReason
	}{
		{"empty code", "", "Pen", "3.50", "10", models.ReasonEmptyCode},
		{"blank code", "   ", "Pen", "3.50", "10", models.ReasonEmptyCode},
		{"five digit code", "99999", "Pen", "3.50", "10", models.ReasonInvalidCodeFormat},
		{"non numeric code", "12a", "Pen", "3.50", "10", models.ReasonInvalidCodeFormat},
		{"negative code", "-1", "Pen", "3.50", "10", models.ReasonInvalidCodeFormat},
		{"zero code", "0", "Pen", "3.50", "10", models.ReasonInvalidCodeFormat},
		{"padded zero code", "0000", "Pen", "3.50", "10", models.ReasonInvalidCodeFormat},
		{"empty name", "12", "", "3.50", "10", models.ReasonEmptyName},
		{"blank name", "12", "   ", "3.50", "10", models.ReasonEmptyName},
		{"name too long", "12", longName, "3.50", "10", models.ReasonNameTooLong},
		{"price not a number", "12", "Pen", "abc", "10", models.ReasonInvalidPrice},
		{"price zero", "12", "Pen", "0", "10", models.ReasonInvalidPrice},
		{"price negative", "12", "Pen", "-1.50", "10", models.ReasonInvalidPrice},
		{"quantity not a number", "12", "Pen", "3.50", "ten", models.ReasonInvalidQuantity},
		{"quantity negative", "12", "Pen", "3.50", "-1", models.ReasonInvalidQuantity},
		{"quantity fractional", "12", "Pen", "3.50", "1.5", models.ReasonInvalidQuantity},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := validation.ForCreate(tc.code, tc.prod, tc.price, tc.quantity)
			assert.Error(t, err)

			verr, ok := models.AsValidationError(err)
			assert.True(t, ok, "expected a ValidationError, got %v", err)
			assert.Equal(t, tc.reason, verr.Reason)
		})
	}
}

func TestForCreate_FirstFailureWins(t *testing.T) {
	// Everything is wrong here, but the code check runs first.
	_, err := validation.ForCreate("", "", "abc", "-1")

	verr, ok := models.AsValidationError(err)
	assert.True(t, ok)
	assert.Equal(t, models.ReasonEmptyCode, verr.Reason)

	// With the code fixed, the name check is next in line.
	_, err = validation.ForCreate("12", "", "abc", "-1")
	verr, ok = models.AsValidationError(err)
	assert.True(t, ok)
	assert.Equal(t, models.ReasonEmptyName, verr.Reason)
}

func TestForUpdate_Valid(t *testing.T) {
	fields, err := validation.ForUpdate("Pen", "3.50", "0")

	assert.NoError(t, err)
	assert.Equal(t, "Pen", fields.Name)
	assert.Equal(t, 3.50, fields.UnitPrice)
	assert.Equal(t, 0, fields.Quantity)
}

func TestForUpdate_FieldReasons(t *testing.T) {
	cases := []struct {
		name     string
		prod     string
		price    string
		quantity string
		reason   models.ValidationReason
	}{
		{"empty name", "", "3.50", "10", models.ReasonEmptyName},
		{"price zero", "Pen", "0", "10", models.ReasonInvalidPrice},
		{"quantity negative", "Pen", "3.50", "-1", models.ReasonInvalidQuantity},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := validation.ForUpdate(tc.prod, tc.price, tc.quantity)
			verr, ok := models.AsValidationError(err)
			assert.True(t, ok)
			assert.Equal(t, tc.reason, verr.Reason)
		})
	}
}

func TestForCreate_NameAtLimit(t *testing.T) {
	name := ""
	for i := 0; i < 40; i++ {
		name += "y"
	}

	fields, err := validation.ForCreate("1", name, "0.01", "0")
	assert.NoError(t, err)
	assert.Equal(t, name, fields.Name)
}
