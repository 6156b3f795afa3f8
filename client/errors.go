package client

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies a failed backend call. Every failure is exactly
// one of these; callers never see a partial or ambiguous result.
type ErrorKind int

const (
	// KindTimeout means the retry budget was exhausted by transport
	// timeouts.
	KindTimeout ErrorKind = iota
	// KindTransport is any non-timeout transport failure. Not retried.
	KindTransport
	// KindStatus is a response with a non-2xx HTTP status.
	KindStatus
	// KindJSONParse is a response body that failed to decode.
	KindJSONParse
)

func (k ErrorKind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindTransport:
		return "transport"
	case KindStatus:
		return "status"
	case KindJSONParse:
		return "json_parse"
	default:
		return "unknown"
	}
}

// RequestError is the failure side of every backend call.
type RequestError struct {
	Kind       ErrorKind
	StatusCode int
	Err        error
}

func (e *RequestError) Error() string {
	switch e.Kind {
	case KindTimeout:
		return "request has failed due to timeout"
	case KindStatus:
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	default:
		return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
	}
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// IsTimeout reports whether err is a retry-exhausting timeout failure.
func IsTimeout(err error) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr) && reqErr.Kind == KindTimeout
}

// IsForbidden reports whether err is an HTTP 403 response. Commands
// use it to tell "session invalid" apart from other failures.
func IsForbidden(err error) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr) &&
		reqErr.Kind == KindStatus &&
		reqErr.StatusCode == http.StatusForbidden
}
