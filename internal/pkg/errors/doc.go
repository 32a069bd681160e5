// Package errors provides application error types for the phonebook API.
//
// # Error Types
//
//   - Validation: a required field is missing (400)
//   - Duplicate: a person with the same name already exists (400)
//   - Cast: an identifier is not a valid store id (400)
//   - BadRequest: the request body could not be decoded (400)
//   - NotFound: the person does not exist (404)
//   - UnknownEndpoint: no route matched (404)
//   - RateLimited: the client exceeded the request budget (429)
//   - Internal: unexpected server error (500)
//
// # Usage
//
//	return apperrors.Validation(apperrors.MessageNameMissing)
//
//	if apperrors.IsNotFound(err) {
//	    // Handle not found
//	}
//
// Errors keep their classification through fmt.Errorf wrapping with %w.
package errors
