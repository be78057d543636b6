// AngelaMos | 2026
// validation.go

package account

import (
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/nyaruka/phonenumbers"
)

// Latin letters, the Cyrillic а-я/А-Я range and hyphen.
var letterPattern = regexp.MustCompile(`^[а-яА-Яa-zA-Z\-]+$`)

// NewValidator returns a validator with the account tags registered:
// "letters" for names and "phone" for E.164 numbers.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	//nolint:errcheck // registration only fails on an empty tag
	_ = v.RegisterValidation("letters", func(fl validator.FieldLevel) bool {
		return letterPattern.MatchString(fl.Field().String())
	})

	//nolint:errcheck // registration only fails on an empty tag
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return IsValidPhone(fl.Field().String())
	})

	return v
}

func IsValidLetters(s string) bool {
	return letterPattern.MatchString(s)
}

// IsValidPhone accepts numbers in international form only; without a
// leading "+" there is no region to parse against.
func IsValidPhone(s string) bool {
	if len(s) < 2 || s[0] != '+' {
		return false
	}

	num, err := phonenumbers.Parse(s, "")
	if err != nil {
		return false
	}

	return phonenumbers.IsValidNumber(num)
}
