package apperr

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Machine-readable error codes shared with the admin client.
const (
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeNotFound           = "NOT_FOUND"
	CodeBadRequest         = "BAD_REQUEST"
	CodePreconditionFailed = "PRECONDITION_FAILED"
	CodeInternal           = "INTERNAL_SERVER_ERROR"
)

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return e.Code + ": " + e.Message
}

func New(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Unauthorized(message string) *Error {
	return New(CodeUnauthorized, message)
}

func NotFound(message string) *Error {
	return New(CodeNotFound, message)
}

func BadRequest(message string) *Error {
	return New(CodeBadRequest, message)
}

func PreconditionFailed(message string) *Error {
	return New(CodePreconditionFailed, message)
}

func Internal(message string) *Error {
	return New(CodeInternal, message)
}

func statusForCode(code string) int {
	switch code {
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	case CodeBadRequest:
		return http.StatusBadRequest
	case CodePreconditionFailed:
		return http.StatusPreconditionFailed
	default:
		return http.StatusInternalServerError
	}
}

// Write renders err as the JSON error envelope. Errors that are not *Error
// are reported as INTERNAL_SERVER_ERROR without leaking their text.
func Write(w http.ResponseWriter, err error) {
	var appErr *Error
	if !errors.As(err, &appErr) {
		appErr = Internal("erro interno")
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusForCode(appErr.Code))
	json.NewEncoder(w).Encode(map[string]*Error{"error": appErr})
}
