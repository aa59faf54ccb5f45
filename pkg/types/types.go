package types

// Envelope is the uniform {success, data, message} shape used by every API
// endpoint except /health. Absent fields serialize as null.
type Envelope[T any] struct {
	Success bool    `json:"success"`
	Data    *T      `json:"data"`
	Message *string `json:"message"`
}

// Success wraps v in a success envelope: data set, message null.
func Success[T any](v T) Envelope[T] {
	return Envelope[T]{Success: true, Data: &v}
}

// Failure builds a failure envelope: data null, message set.
func Failure[T any](msg string) Envelope[T] {
	return Envelope[T]{Success: false, Message: &msg}
}
