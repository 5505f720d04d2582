package commons

// Response is the envelope every HTTP endpoint answers with. Data is a
// pointer so empty responses omit the field instead of emitting a zero value.
type Response[T any] struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    *T       `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

// SuccessResponse wraps data in a successful envelope.
func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{Success: true, Message: message, Data: &data}
}

// ErrorResponse builds a failed envelope carrying one or more error details.
func ErrorResponse[T any](message string, details ...string) Response[T] {
	return Response[T]{Success: false, Message: message, Errors: details}
}
