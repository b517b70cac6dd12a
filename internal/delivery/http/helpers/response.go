package helpers

import (
	"encoding/json"
	"net/http"

	"orgcalendar/internal/domain"
)

// Error codes for API error responses. Use these with WriteJSONError.
const (
	ErrCodeNoToken          = "no_token"
	ErrCodeInvalidToken     = "invalid_token"
	ErrCodeInvalidLogin     = "invalid_credentials"
	ErrCodeUserNotFound     = "user_not_found"
	ErrCodeAccountInactive  = "account_inactive"
	ErrCodeForbidden        = "forbidden"
	ErrCodeNotFound         = "not_found"
	ErrCodeValidationFailed = "validation_failed"
	ErrCodeBadRequest       = "bad_request"
	ErrCodeConflict         = "conflict"
	ErrCodeInternalError    = "internal_error"
)

// APIResponse is the envelope for every JSON response.
// Lists carry Count; failures carry Code and, for validation, Errors.
// swagger:model APIResponse
type APIResponse struct {
	Success bool                `json:"success"`
	Data    any                 `json:"data,omitempty"`
	Count   *int                `json:"count,omitempty"`
	Message string              `json:"message,omitempty"`
	Code    string              `json:"code,omitempty"`
	Errors  []domain.FieldError `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, statusCode int, body APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteJSONSuccess writes a successful envelope with data and an optional message.
func WriteJSONSuccess(w http.ResponseWriter, statusCode int, data any, message string) {
	writeJSON(w, statusCode, APIResponse{Success: true, Data: data, Message: message})
}

// WriteJSONList writes a 200 envelope with data and its element count.
func WriteJSONList(w http.ResponseWriter, data any, count int) {
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: data, Count: &count})
}

// WriteJSONMessage writes a successful envelope carrying only a message.
func WriteJSONMessage(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, APIResponse{Success: true, Message: message})
}

// WriteJSONError writes a failed envelope with the given code and message.
func WriteJSONError(w http.ResponseWriter, statusCode int, code, message string) {
	writeJSON(w, statusCode, APIResponse{Success: false, Code: code, Message: message})
}

// WriteValidationError writes a 400 envelope listing every field failure.
func WriteValidationError(w http.ResponseWriter, ve *domain.ValidationError) {
	writeJSON(w, http.StatusBadRequest, APIResponse{
		Success: false,
		Code:    ErrCodeValidationFailed,
		Message: "validation failed",
		Errors:  ve.Fields,
	})
}
