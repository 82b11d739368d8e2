package dto

import "time"

// ErrorResponse is the JSON body returned by every failing endpoint.
type ErrorResponse struct {
	Message      string    `json:"message" example:"data file not found"`
	ErrorDetails string    `json:"error_details,omitempty" example:"open ./data/import_export.csv: no such file or directory"`
	Timestamp    time.Time `json:"timestamp"`
}

// Error implements the error interface so the response can travel through c.Error.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails == "" {
		return e.Message
	}
	return e.Message + ": " + e.ErrorDetails
}

// NewErrorResponse builds an ErrorResponse stamped with the current time.
// err may be nil.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{Message: message, Timestamp: time.Now().UTC()}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}
