// Package api contains the HTTP handlers, request/response models, and
// error mapping for the card drawing service. Handlers stay thin: they
// decode and validate the payload, resolve the authenticated user from
// the request context, call the matching service, and translate errors
// to safe HTTP responses.
package api
