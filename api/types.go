package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	blogPostHandler    blogPostHandler
	diagnosticsHandler diagnosticsHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string `json:"error" example:"invalid field"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"title"`
	Details string `json:"details,omitempty" example:"Invalid field title: must be at least 3 characters"`
	Cause   string `json:"cause,omitempty" example:"Underlying error cause"`
}

// SuccessResponse is returned by operations without a resource body.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// MessageResponse is returned by the root endpoint.
type MessageResponse struct {
	Message string `json:"message"`
}
