// Package validator wraps go-playground/validator for request bodies.
//
// Fields are reported by their JSON names and failures render as
// "field message", so a missing name reads "name missing":
//
//	if err := validator.Validate(input); err != nil {
//	    // err is a validator.ValidationErrors
//	}
//
// The validator instance is package-level and safe for concurrent use.
package validator
