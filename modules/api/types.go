package api

// ErrorResponse is the JSON envelope for single errors.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationErrorResponse is the JSON envelope for update-validation errors.
type ValidationErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details"`
}
