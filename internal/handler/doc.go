// Package handler contains HTTP request handlers for the phonebook.
//
// Handlers parse the request, call the person service and serialize the
// result. They never write error responses themselves: every failure is
// returned to Fiber and rendered by ErrorHandler, which maps application
// error codes to statuses and the {"error": "..."} body.
//
// # Routes
//
//   - /api/persons - person collection and items
//   - /info - HTML summary
//   - /health, /livez, /readyz, /version - probes
//   - /openapi.yaml, /docs, /redoc - API documentation
//
// All handlers are safe for concurrent use.
package handler
