package validation

import (
	"fmt"
	"strings"

	"storefront/internal/models"

	"github.com/go-playground/validator/v10"
)

// FieldError identifies a single invalid order field with a human-readable
// message, suitable for rendering next to the offending form input.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var validate = validator.New()

// ValidateOrder checks the submitted order fields. It returns one error
// entry per missing or invalid field and nil when everything passes. No
// formatting or sanitizing happens here; trimming is a UI concern.
func ValidateOrder(order *models.Order) []FieldError {
	err := validate.Struct(order)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "order", Message: "Invalid order submission"}}
	}

	errors := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		var message string
		switch fe.Tag() {
		case "required":
			message = fmt.Sprintf("You must supply a %s", field)
		case "email":
			message = "Invalid email address"
		default:
			message = fmt.Sprintf("Invalid %s", field)
		}
		errors = append(errors, FieldError{Field: field, Message: message})
	}
	return errors
}
