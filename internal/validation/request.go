package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var structValidator = newStructValidator()

func newStructValidator() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	if err := validate.RegisterValidation("solana_address", func(fl validator.FieldLevel) bool {
		return IsValidAddress(fl.Field().String())
	}); err != nil {
		panic(err)
	}

	if err := validate.RegisterValidation("amount", func(fl validator.FieldLevel) bool {
		return ValidateAmount(fl.Field().String()).Valid
	}); err != nil {
		panic(err)
	}

	if err := validate.RegisterValidation("https_url", func(fl validator.FieldLevel) bool {
		return strings.HasPrefix(fl.Field().String(), "https://")
	}); err != nil {
		panic(err)
	}

	return validate
}

// Struct validates a request DTO using its `validate` tags and returns the
// failures as ordered issues. A nil slice means the struct is valid.
func Struct(s interface{}) []Issue {
	err := structValidator.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []Issue{{Field: "request", Code: "INVALID_REQUEST", Message: err.Error()}}
	}

	issues := make([]Issue, 0, len(verrs))
	for _, fe := range verrs {
		issues = append(issues, issueFromFieldError(fe))
	}
	return issues
}

func issueFromFieldError(fe validator.FieldError) Issue {
	field := fe.Field()
	value, _ := fe.Value().(string)

	switch fe.Tag() {
	case "required":
		return Issue{Field: field, Code: "REQUIRED", Message: fmt.Sprintf("%s is required", fieldTitle(field))}
	case "solana_address":
		if field == "recipient" {
			return Issue{Field: field, Code: CodeInvalidRecipient, Message: ValidateRecipient(value).Error}
		}
		return Issue{Field: field, Code: "INVALID_ADDRESS", Message: fmt.Sprintf("Invalid %s address", field)}
	case "amount":
		return Issue{Field: field, Code: CodeInvalidAmount, Message: ValidateAmount(value).Error}
	case "max":
		return Issue{Field: field, Code: "TOO_LONG", Message: fmt.Sprintf("%s exceeds %s characters", fieldTitle(field), fe.Param())}
	case "https_url":
		return Issue{Field: field, Code: "INVALID_LINK", Message: "Link must use HTTPS"}
	case "oneof":
		return Issue{Field: field, Code: "INVALID_VALUE", Message: fmt.Sprintf("%s must be one of: %s", fieldTitle(field), fe.Param())}
	default:
		return Issue{Field: field, Code: "INVALID_VALUE", Message: fmt.Sprintf("%s is invalid", fieldTitle(field))}
	}
}
