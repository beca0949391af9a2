package validation

import (
	"regexp"
	"strconv"
	"strings"

	"inventorywidget/internal/models"
)

// codePattern accepts one to four decimal digits, nothing else.
var codePattern = regexp.MustCompile(`^\d{1,4}$`)

// NewProductFields is the normalized result of validating raw create input.
type NewProductFields struct {
	Code      int
	Name      string
	UnitPrice float64
	Quantity  int
}

// UpdatedFields is the normalized result of validating raw update input.
// The code is absent: identity is immutable after creation.
type UpdatedFields struct {
	Name      string
	UnitPrice float64
	Quantity  int
}

// ForCreate validates the raw text fields of a new product. Checks run in a
// fixed order and the first failure wins: code non-blank, code format, name
// non-blank, name length, price, quantity.
func ForCreate(code, name, price, quantity string) (NewProductFields, error) {
	if strings.TrimSpace(code) == "" {
		return NewProductFields{}, models.NewValidationError(
			models.ReasonEmptyCode, "code", "code must not be empty")
	}
	if !codePattern.MatchString(code) {
		return NewProductFields{}, models.NewValidationError(
			models.ReasonInvalidCodeFormat, "code", "code must be 1 to 4 digits")
	}
	codeValue, err := strconv.Atoi(code)
	if err != nil {
		// Unreachable after the pattern match, kept as a backstop.
		return NewProductFields{}, models.NewValidationError(
			models.ReasonInvalidCodeFormat, "code", "code must be 1 to 4 digits")
	}
	// The digit pattern admits "0" and "0000"; codes start at 1.
	if codeValue < 1 {
		return NewProductFields{}, models.NewValidationError(
			models.ReasonInvalidCodeFormat, "code", "code must be 1 to 4 digits")
	}

	nameValue, priceValue, quantityValue, verr := commonFields(name, price, quantity)
	if verr != nil {
		return NewProductFields{}, verr
	}

	return NewProductFields{
		Code:      codeValue,
		Name:      nameValue,
		UnitPrice: priceValue,
		Quantity:  quantityValue,
	}, nil
}

// ForUpdate validates the raw text fields of an update. Same rules as
// ForCreate minus the code, which cannot change.
func ForUpdate(name, price, quantity string) (UpdatedFields, error) {
	nameValue, priceValue, quantityValue, verr := commonFields(name, price, quantity)
	if verr != nil {
		return UpdatedFields{}, verr
	}
	return UpdatedFields{
		Name:      nameValue,
		UnitPrice: priceValue,
		Quantity:  quantityValue,
	}, nil
}

func commonFields(name, price, quantity string) (string, float64, int, error) {
	if strings.TrimSpace(name) == "" {
		return "", 0, 0, models.NewValidationError(
			models.ReasonEmptyName, "name", "name must not be empty")
	}
	if len([]rune(name)) > 40 {
		return "", 0, 0, models.NewValidationError(
			models.ReasonNameTooLong, "name", "name must not exceed 40 characters")
	}

	priceValue, err := strconv.ParseFloat(price, 64)
	if err != nil || priceValue <= 0 {
		return "", 0, 0, models.NewValidationError(
			models.ReasonInvalidPrice, "unit_price", "price must be a number greater than 0")
	}

	quantityValue, err := strconv.Atoi(quantity)
	if err != nil || quantityValue < 0 {
		return "", 0, 0, models.NewValidationError(
			models.ReasonInvalidQuantity, "quantity", "quantity must be an integer of 0 or more")
	}

	return name, priceValue, quantityValue, nil
}
