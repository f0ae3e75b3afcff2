package api

import (
	"net/http"

	"github.com/Icezero0/Oblivionis/internal/api/shared"
)

// Thin delegates to the shared helpers so handlers in this package can
// call them unqualified.

// DecodeJSON decodes the request body into the given destination struct.
func DecodeJSON(r *http.Request, dst interface{}) error {
	return shared.DecodeJSON(r, dst)
}

// RespondWithJSON writes the payload as JSON with the given status code.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, payload interface{}) {
	shared.RespondWithJSON(w, r, status, payload)
}

// RespondWithError writes a standard error envelope.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	shared.RespondWithError(w, r, status, message)
}

// RespondWithErrorAndLog writes an error envelope and logs the cause.
func RespondWithErrorAndLog(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

// respondWithMappedError maps a service error to its status code and safe
// message, then writes and logs it.
func respondWithMappedError(w http.ResponseWriter, r *http.Request, err error) {
	RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}
