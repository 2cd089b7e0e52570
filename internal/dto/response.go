package dto

// ErrorResponse is the uniform failure shape: a stable message plus optional
// details, with the HTTP status carried on the response itself.
type ErrorResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{
		Message: message,
	}
}

func NewErrorResponseWithData(message string, data interface{}) ErrorResponse {
	return ErrorResponse{
		Message: message,
		Data:    data,
	}
}
