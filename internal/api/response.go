package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/rflorenc/cloud-resource-workbench/internal/models"
)

// Error codes carried in the response envelope.
const (
	CodeOK           int32 = 0
	CodeInvalidParam int32 = 2000000
	CodeInternal     int32 = 2000001
	CodeNotFound     int32 = 2000005
	CodeConflict     int32 = 2000009
)

// Response is the envelope of every JSON API response.
type Response struct {
	Code    int32       `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// APIError is an error with its envelope code and HTTP status.
type APIError struct {
	Status  int
	Code    int32
	Message string
	Details []string
	Err     error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func invalidParam(format string, args ...interface{}) *APIError {
	return &APIError{Status: http.StatusBadRequest, Code: CodeInvalidParam, Message: fmt.Sprintf(format, args...)}
}

// toAPIError classifies err into an APIError.
func toAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		messages := make([]string, 0, len(validationErrors))
		for _, fe := range validationErrors {
			messages = append(messages, formatValidationError(fe.Field(), fe.Tag(), fe.Param()))
		}
		return &APIError{
			Status:  http.StatusBadRequest,
			Code:    CodeInvalidParam,
			Message: "validation error: " + strings.Join(messages, "; "),
			Details: messages,
			Err:     err,
		}
	}

	switch {
	case errors.Is(err, models.ErrSecretNotFound), errors.Is(err, models.ErrTaskNotFound):
		return &APIError{Status: http.StatusNotFound, Code: CodeNotFound, Message: err.Error(), Err: err}
	case errors.Is(err, models.ErrVendorMismatch):
		return &APIError{Status: http.StatusBadRequest, Code: CodeInvalidParam, Message: err.Error(), Err: err}
	case errors.Is(err, models.ErrTaskNotRunning):
		return &APIError{Status: http.StatusConflict, Code: CodeConflict, Message: err.Error(), Err: err}
	}
	return &APIError{Status: http.StatusInternalServerError, Code: CodeInternal, Message: err.Error(), Err: err}
}

// formatValidationError converts a validation error into a human-readable message.
func formatValidationError(field, tag, param string) string {
	field = strings.ToLower(field)
	if field == "" {
		field = "value"
	}

	switch tag {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must have at least %s entries", field, param)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, param)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	default:
		return fmt.Sprintf("%s failed on %s validation", field, tag)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeOK(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, Response{Code: CodeOK, Data: data})
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	apiErr := toAPIError(err)
	if apiErr.Status >= http.StatusInternalServerError {
		s.Logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	} else {
		s.Logger.Debug("request rejected", zap.String("path", r.URL.Path), zap.String("reason", apiErr.Message))
	}
	resp := Response{Code: apiErr.Code, Message: apiErr.Message}
	if len(apiErr.Details) > 0 {
		resp.Data = apiErr.Details
	}
	writeJSON(w, apiErr.Status, resp)
}

// decodeJSON reads a JSON body into dst, rejecting empty and malformed bodies.
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return invalidParam("request body is required")
		}
		return invalidParam("invalid JSON: %v", err)
	}
	return nil
}
