package server

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/matzehuels/fanout/pkg/errors"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError renders a coded error with the matching HTTP status.
func writeError(w http.ResponseWriter, err error) {
	code := apperrors.GetCode(err)
	if code == "" {
		code = apperrors.ErrCodeInternal
	}

	var body errorBody
	body.Error.Code = string(code)
	body.Error.Message = apperrors.UserMessage(err)
	writeJSON(w, statusFor(code), body)
}

// statusFor maps error codes to HTTP statuses.
func statusFor(code apperrors.Code) int {
	switch code {
	case apperrors.ErrCodeInvalidInput,
		apperrors.ErrCodeInvalidFormat,
		apperrors.ErrCodeDuplicateEdge,
		apperrors.ErrCodeOrderViolation:
		return http.StatusBadRequest
	case apperrors.ErrCodeUnknownNode,
		apperrors.ErrCodeCyclicGraph:
		return http.StatusUnprocessableEntity
	case apperrors.ErrCodeNotFound,
		apperrors.ErrCodeGraphNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
