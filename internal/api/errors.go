package api

import "errors"

var (
	ErrInvalidRequest = errors.New("invalid_request")
	ErrInvalidSample  = errors.New("invalid_sample")
)

type invalidRequestError struct {
	msg string
}

func (e invalidRequestError) Error() string {
	return e.msg
}

func (e invalidRequestError) Unwrap() error {
	return ErrInvalidRequest
}

func newInvalidRequest(msg string) error {
	return invalidRequestError{msg: msg}
}

// invalidSampleError wraps a decoder error that rejects the upload as a whole.
type invalidSampleError struct {
	err error
}

func (e invalidSampleError) Error() string {
	return e.err.Error()
}

func (e invalidSampleError) Unwrap() []error {
	return []error{ErrInvalidSample, e.err}
}
