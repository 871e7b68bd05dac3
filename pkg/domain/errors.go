package domain

import "errors"

// ErrNotFound is returned when an input path does not exist.
var ErrNotFound = errors.New("not found")

// ErrMalformedInput is returned when a document is not valid JSON or not a
// JSON object of node records.
var ErrMalformedInput = errors.New("malformed input")

// ErrUnexpected wraps any other failure (e.g. write permission).
var ErrUnexpected = errors.New("unexpected error")

// Kind names the error category of err: "NotFound", "MalformedInput" or
// "Unexpected". A nil error has no kind.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "NotFound"
	case errors.Is(err, ErrMalformedInput):
		return "MalformedInput"
	default:
		return "Unexpected"
	}
}
