// Package handler is the first layer. The first entry point
// for business logic after the router.
//
// It parses requests, binds them into request shapes using the
// validation package, calls the appropriate service and wraps
// the result in the response envelope.
// Errors are returned to Echo and rendered by the global error handler.
package handler
