package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"uptask-project/backend/logging"
	"uptask-project/backend/services"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// statusForError maps the service error taxonomy onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, services.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// userMessage strips the wrapped sentinel suffix from a service error,
// leaving only the user-facing text.
func userMessage(err error) string {
	msg := err.Error()
	for _, sentinel := range []error{
		services.ErrNotFound,
		services.ErrInvalidRequest,
		services.ErrUnauthorized,
		services.ErrForbidden,
		services.ErrConflict,
	} {
		msg = strings.TrimSuffix(msg, ": "+sentinel.Error())
	}
	return msg
}

// writeError converts a service error into the JSON failure shape. Unexpected
// errors are logged and reduced to a generic message, internal detail never
// reaches the body.
func writeError(w http.ResponseWriter, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		logging.Logger.Errorf("Event ID: REQUEST_FAILED, Description: %v", err)
		writeMessage(w, status, "Something went wrong")
		return
	}
	writeMessage(w, status, userMessage(err))
}
