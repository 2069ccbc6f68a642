// Package response is the HTTP response envelope pkg/httpapi writes
// through: JSON helpers plus an error middleware that maps a
// pkg/errors.AppError's type to an HTTP status code.
package response

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/chainlaunch/editcore/pkg/errors"
)

// Response is the standard JSON envelope for a successful call.
type Response struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse is the plain-message error shape.
type ErrorResponse struct {
	Error string `json:"error"`
}

// JSON writes data as a JSON response with the given status.
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Error writes a plain-message error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, ErrorResponse{Error: message})
}

// Handler is an http.HandlerFunc that may return an error instead of
// writing one itself.
type Handler func(w http.ResponseWriter, r *http.Request) error

// Middleware adapts a Handler to http.HandlerFunc, routing any returned
// error through WriteError.
func Middleware(h Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			WriteError(w, err)
		}
	}
}

// WriteJSON writes data as a JSON response with the given status and
// returns the encoder's error, for handlers that want to log it.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// WriteError writes err as a JSON response, mapping an *AppError's Type to
// an HTTP status.
func WriteError(w http.ResponseWriter, err error) {
	appErr, ok := err.(*apperrors.AppError)
	if !ok {
		JSON(w, http.StatusInternalServerError, Response{Message: "an unexpected error occurred"})
		return
	}

	var status int
	switch appErr.Type {
	case apperrors.ValidationError:
		status = http.StatusBadRequest
	case apperrors.NotFoundError:
		status = http.StatusNotFound
	case apperrors.ConflictError:
		status = http.StatusConflict
	case apperrors.AmbiguousError:
		status = http.StatusConflict
	case apperrors.IOError:
		status = http.StatusInternalServerError
	default:
		status = http.StatusInternalServerError
	}

	JSON(w, status, Response{Message: appErr.Message, Data: appErr.Details})
}
