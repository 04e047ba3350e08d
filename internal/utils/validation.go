package utils

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateLanguageCode accepts exactly two characters (runes), e.g. "en" or "de".
func ValidateLanguageCode(code string) error {
	if err := validate.Var(code, "len=2"); err != nil {
		return fmt.Errorf("invalid language code %q: %w", code, err)
	}
	return nil
}
