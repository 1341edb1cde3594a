package utils

// ErrorResponse is a struct for error response
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// ValidationResponse carries the per-field error map for a rejected form
// submission. The client re-renders the form from it without losing the
// values it already holds.
type ValidationResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}
