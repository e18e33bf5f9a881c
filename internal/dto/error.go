package dto

// ErrorResponse is the body of every failed JSON API call.
type ErrorResponse struct {
	Error string `json:"error"`
}
