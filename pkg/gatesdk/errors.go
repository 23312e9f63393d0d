package gatesdk

import (
	"encoding/json"
	"fmt"
)

// APIError is a non-2xx response from the service, carrying the message
// from the response envelope.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gatekeep: %s (status %d)", e.Message, e.StatusCode)
}

func parseErrorResponse(statusCode int, body []byte) error {
	var env struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &env); err != nil || env.Message == "" {
		return &APIError{StatusCode: statusCode, Message: "unexpected response"}
	}
	return &APIError{StatusCode: statusCode, Message: env.Message}
}
