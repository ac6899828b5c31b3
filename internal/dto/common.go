package dto

import "errors"

// Shared failures of the allow-list body parsers.
var (
	ErrMalformedBody   = errors.New("malformed request body")
	ErrFieldNotAllowed = errors.New("field is not updatable")
)

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
