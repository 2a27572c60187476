// Package errs defines the error types shared by every layer of the API.
//
// All failures, whether raised in a handler, a service, or the database
// layer, are eventually funneled into an *HTTPError so clients always
// receive the same JSON error shape: a machine-readable code, a human
// message, an HTTP status, and optional field-level errors.
package errs
