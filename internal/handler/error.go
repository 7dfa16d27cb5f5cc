package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/dukerupert/brochure/internal/domain"
	"github.com/dukerupert/brochure/internal/middleware"
	"github.com/dukerupert/brochure/internal/telemetry"
)

// ErrorCodeToHTTPStatus maps domain error codes to HTTP status codes.
func ErrorCodeToHTTPStatus(code string) int {
	switch code {
	case domain.EINVALID:
		return http.StatusBadRequest // 400
	case domain.ENOTFOUND:
		return http.StatusNotFound // 404
	case domain.ETOOLARGE:
		return http.StatusRequestEntityTooLarge // 413
	case domain.ERATELIMIT:
		return http.StatusTooManyRequests // 429
	case domain.EINTERNAL:
		return http.StatusInternalServerError // 500
	case domain.EBADGATEWAY:
		return http.StatusBadGateway // 502
	case domain.EUNAVAILABLE:
		return http.StatusServiceUnavailable // 503
	default:
		return http.StatusInternalServerError // 500
	}
}

// errorBody is the JSON error envelope.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// ErrorStatus returns the HTTP status for err, treating field validation
// failures as bad input.
func ErrorStatus(err error) int {
	if domain.IsValidationError(err) {
		return http.StatusBadRequest
	}
	return ErrorCodeToHTTPStatus(domain.ErrorCode(err))
}

// LogError logs err at a level matching its status and reports server
// errors to Sentry.
func LogError(r *http.Request, err error) int {
	status := ErrorStatus(err)
	logger := middleware.GetLogger(r.Context())

	attrs := []any{
		"error", err.Error(),
		"code", domain.ErrorCode(err),
		"op", domain.ErrorOp(err),
		"status", status,
	}

	if status >= 500 {
		logger.Error("request failed", attrs...)
		telemetry.CaptureError(r, err, map[string]any{
			"request_id": middleware.GetRequestID(r.Context()),
			"op":         domain.ErrorOp(err),
		})
	} else {
		logger.Info("request rejected", attrs...)
	}

	return status
}

// ErrorResponse writes err to the client. JSON clients get a structured
// envelope; everyone else gets plain text. Internal details are never exposed.
func ErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	status := LogError(r, err)

	code := domain.ErrorCode(err)
	message := domain.ErrorMessage(err)
	fields := domain.GetValidationFields(err)
	if fields != nil {
		code = domain.EINVALID
		message = "Validation failed"
	}

	if wantsJSON(r) {
		writeJSON(w, status, errorBody{Error: errorDetail{
			Code:    code,
			Message: message,
			Fields:  fields,
		}})
		return
	}

	http.Error(w, message, status)
}

// isBodyTooLarge reports whether err came from the MaxBytesReader installed
// by middleware.MaxBodySize.
func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json") ||
		strings.Contains(r.Header.Get("Content-Type"), "application/json") ||
		strings.HasPrefix(r.URL.Path, "/api/")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
