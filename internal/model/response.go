package model

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// MessageResponse is returned by endpoints that have no resource to echo back.
type MessageResponse struct {
	Message string `json:"message"`
}

func NewErrorResponse(message, details string) ErrorResponse {
	return ErrorResponse{Error: message, Details: details}
}

func NewMessageResponse(message string) MessageResponse {
	return MessageResponse{Message: message}
}
