package apperrors

import "errors"

var (
	ErrMissingSignature    = errors.New("missing signature or secret")
	ErrInvalidSignature    = errors.New("invalid signature")
	ErrMalformedPayload    = errors.New("malformed payload")
	ErrColumnNotFound      = errors.New("column not found in store headers")
	ErrStoreUnavailable    = errors.New("table store unavailable")
	ErrRecordNotFound      = errors.New("record not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInternalServerError = errors.New("internal server error")
)
