package http

import (
	"errors"
	"net/http"

	"finance/internal/core"
	applog "finance/internal/log"
)

const (
	msgFieldsRequired = "All fields are required."
	msgInvalidBody    = "Invalid request body."
	msgInvalidID      = "Invalid transaction ID."
	msgNotFound       = "Transaction not found."
	msgDeleted        = "Transaction deleted successfully."
	msgInternal       = "Internal server error."
)

// errorResponse maps a service error to the client-facing response. The
// underlying error is only logged, never returned to the caller.
func (s *Server) errorResponse(r *http.Request, op string, err error) *JSONResponseBuilder {
	switch {
	case errors.Is(err, errMalformedBody):
		return BadRequestError(msgInvalidBody)
	case errors.Is(err, core.ErrInvalidID):
		return BadRequestError(msgInvalidID)
	case errors.Is(err, core.ErrValidation):
		return BadRequestError(msgFieldsRequired)
	case errors.Is(err, core.ErrNotFound):
		return NotFoundError(msgNotFound)
	}

	fields := applog.NewFields()
	fields[applog.FieldPath] = r.URL.Path
	applog.NewStructuredLogger(applog.FromContext(r.Context())).
		LogError(r.Context(), "Request failed", err, op, fields)
	return InternalServerError()
}
