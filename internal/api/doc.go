// Package api contains the HTTP handlers for the vocabulary service. Each
// handler validates its input, delegates to the store or service layer, and
// maps the returned sentinel errors onto HTTP status codes. Raw internal
// errors never reach clients; they are logged with the request trace ID and
// replaced with a sanitized message.
package api
