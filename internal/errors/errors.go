package errors

import "errors"

// This package defines a centralized set of sentinel errors for the application.
// Using sentinel errors allows services to return specific, recognizable error types
// without coupling them to implementation details like HTTP status codes. The API
// layer can then use `errors.Is()` to check for these specific errors and map
// them to the correct HTTP responses.

var (
	// ErrNotFound signifies that a requested resource could not be located.
	// This is typically mapped to a 404 Not Found HTTP status.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation signifies that input data provided by a client failed
	// business rule validation.
	// This is typically mapped to a 400 Bad Request HTTP status.
	ErrValidation = errors.New("validation failed")

	// ErrPersistence signifies that a durable store operation failed. The
	// in-memory state may be ahead of the store when this is returned; the
	// failure is logged and surfaced, never silently swallowed.
	// This is typically mapped to a 500 Internal Server Error HTTP status.
	ErrPersistence = errors.New("persistence failed")

	// ErrTransport signifies a network or connection failure while talking
	// to the AI gateway. Retrying is a caller/UI policy decision, not done
	// here. This is typically mapped to a 502 Bad Gateway HTTP status.
	ErrTransport = errors.New("transport failed")

	// ErrRateLimited is the gateway's HTTP 429 surfaced as a distinct,
	// user-actionable variant of ErrTransport.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrQuotaExhausted is the gateway's HTTP 402 surfaced as a distinct,
	// user-actionable variant of ErrTransport.
	ErrQuotaExhausted = errors.New("quota exhausted")

	// ErrInternal signifies an unexpected error on the server. This is a generic
	// error used to prevent leaking sensitive implementation details to the client.
	ErrInternal = errors.New("internal server error")
)
