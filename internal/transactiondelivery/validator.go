package transactiondelivery

import (
	"github.com/go-playground/validator/v10"
)

// ValidServiceCode validates that the service code is made of upper case letters,
// digits and underscores.
var ValidServiceCode validator.Func = func(fl validator.FieldLevel) bool {
	code, ok := fl.Field().Interface().(string)
	if !ok || code == "" {
		return false
	}

	for _, r := range code {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		default:
			return false
		}
	}

	return true
}
