package dto

// ErrorResponse standard error payload for the API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
