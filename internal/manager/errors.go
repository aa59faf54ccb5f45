package manager

import "errors"

const (
	msgModelNotLoaded = "PII detection model not loaded. Please ensure model files are available."
	prefixInput       = "Failed to create input: "
	prefixInference   = "Inference failed: "
)

// modelNotLoadedError signals a detection request before the slot is loaded.
type modelNotLoadedError struct{}

func (modelNotLoadedError) Error() string { return msgModelNotLoaded }

// ErrModelNotLoaded returns the error reported when no engine is available.
func ErrModelNotLoaded() error { return modelNotLoadedError{} }

// IsModelNotLoaded reports whether err indicates a missing engine.
func IsModelNotLoaded(err error) bool {
	var e modelNotLoadedError
	return errors.As(err, &e)
}

// inputError wraps a normalization failure; the cause text is kept verbatim.
type inputError struct{ cause error }

func (e inputError) Error() string { return prefixInput + e.cause.Error() }
func (e inputError) Unwrap() error { return e.cause }

// ErrInput wraps cause as an input error.
func ErrInput(cause error) error { return inputError{cause: cause} }

// IsInputError reports whether err came from input normalization.
func IsInputError(err error) bool {
	var e inputError
	return errors.As(err, &e)
}

// inferenceError wraps an engine failure, including recovered panics.
type inferenceError struct{ cause error }

func (e inferenceError) Error() string { return prefixInference + e.cause.Error() }
func (e inferenceError) Unwrap() error { return e.cause }

// ErrInference wraps cause as an inference error.
func ErrInference(cause error) error { return inferenceError{cause: cause} }

// IsInferenceError reports whether err came from the engine call.
func IsInferenceError(err error) bool {
	var e inferenceError
	return errors.As(err, &e)
}

// initError is returned by Initialize. It is logged at startup and never
// surfaces in a response.
type initError struct {
	msg   string
	cause error
}

func (e initError) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return e.msg + ": " + e.cause.Error()
}
func (e initError) Unwrap() error { return e.cause }

// IsInitError reports whether err came from model initialization.
func IsInitError(err error) bool {
	var e initError
	return errors.As(err, &e)
}
