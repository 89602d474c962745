package dto

// ErrorResponse is the body of a failed legacy metadata request.
type ErrorResponse struct {
	Error string `json:"error"`
}
