package models

import "time"

type ResponseMeta struct {
	Timestamp time.Time `json:"timestamp"`
}

// SuccessResponse is the JSON envelope for every successful handler.
type SuccessResponse struct {
	Success bool         `json:"success"`
	Data    any          `json:"data"`
	Meta    ResponseMeta `json:"meta"`
}

// ErrorResponse is the JSON envelope for every failed handler.
type ErrorResponse struct {
	Success    bool     `json:"success"`
	StatusCode int      `json:"status_code"`
	ErrorCode  string   `json:"error_code"`
	Message    string   `json:"message"`
	Errors     []string `json:"errors,omitempty"`

	// Delete-conflict extras
	Dependencies     *DependencyReport `json:"dependencies,omitempty"`
	CascadeAvailable *bool             `json:"cascade_available,omitempty"`
}

func NewSuccessResponse(data any) SuccessResponse {
	return SuccessResponse{
		Success: true,
		Data:    data,
		Meta:    ResponseMeta{Timestamp: time.Now().UTC()},
	}
}
