// Package errs defines the error types returned to API clients.
//
// Every failure leaving the HTTP layer is an *HTTPError so clients always
// receive the same JSON shape: a machine-friendly code, a human message,
// the HTTP status and optional field-level errors.
package errs
