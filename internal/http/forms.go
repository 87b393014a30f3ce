package http

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// BookForm carries the submitted fields for book create/edit. The
// binding tags drive validation; failures re-render the form with the
// submitted values rather than persisting anything.
type BookForm struct {
	BookID   uint   `form:"book_id"`
	Title    string `form:"title" binding:"required"`
	Genre    string `form:"genre" binding:"required"`
	Author   string `form:"author" binding:"required"`
	Rating   int    `form:"rating" binding:"gte=0,lte=5"`
	ListName string `form:"list_name"`
}

// ReviewForm carries a submitted review. Beyond what the field types
// enforce there is no validation, and the referenced book is not
// checked for existence.
type ReviewForm struct {
	Rating  int    `form:"rating"`
	Content string `form:"content"`
}

// formErrors converts a binding error into per-field messages for the
// re-rendered form.
func formErrors(err error) map[string]string {
	msgs := make(map[string]string)

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			field := strings.ToLower(fe.Field())
			switch fe.Tag() {
			case "required":
				msgs[field] = "This field is required"
			case "gte", "lte":
				msgs[field] = "Must be between 0 and 5"
			default:
				msgs[field] = "Invalid value"
			}
		}
		return msgs
	}

	// Type mismatches (e.g. a non-numeric rating) surface as a single
	// binding error without field attribution
	msgs["form"] = "Submitted values could not be read"
	return msgs
}
