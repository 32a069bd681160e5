// Package middleware provides the HTTP middleware of the phonebook API.
//
// The server installs it in this order:
//
//	RequestID → Metrics → Logger → RecoverWithSentry → CORS → RateLimit (on /api only)
//
// The logger renders handler errors through the app error handler so the
// access log records the status actually sent.
package middleware
