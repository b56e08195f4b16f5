package validator

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var studyTerms = map[string]bool{
	"1A": true, "1B": true,
	"2A": true, "2B": true,
	"3A": true, "3B": true,
	"4A": true, "4B": true,
}

func registerCustomRules(v *validator.Validate) error {
	// studyterm: Waterloo-style academic term codes.
	if err := v.RegisterValidation("studyterm", func(fl validator.FieldLevel) bool {
		return studyTerms[strings.ToUpper(fl.Field().String())]
	}); err != nil {
		return err
	}

	// eduemail: account signup is limited to student addresses.
	if err := v.RegisterValidation("eduemail", func(fl validator.FieldLevel) bool {
		email := strings.ToLower(fl.Field().String())
		return strings.HasSuffix(email, ".edu") || strings.HasSuffix(email, "@uwaterloo.ca")
	}); err != nil {
		return err
	}

	return nil
}
