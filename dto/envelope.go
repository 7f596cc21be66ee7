package dto

// Envelope is the common response wrapper of the marketplace API.
// Success is a pointer because some endpoints (city list, guide search) omit it.
type Envelope[T any] struct {
	Success *bool  `json:"success,omitempty"`
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

// Failed reports an explicit success=false.
func (e Envelope[T]) Failed() bool {
	return e.Success != nil && !*e.Success
}

// OK builds a successful envelope.
func OK[T any](data T) Envelope[T] {
	ok := true
	return Envelope[T]{Success: &ok, Data: data}
}

// StatusResponse is an envelope without data.
type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Field   string `json:"field,omitempty"`
}
