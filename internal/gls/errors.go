package gls

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrUnauthorized matches StatusErrors caused by a rejected subscription key
var ErrUnauthorized = errors.New("gls: subscription key rejected")

// ErrBodyTooLarge is wrapped by the RequestError for a response over the read limit
var ErrBodyTooLarge = errors.New("gls: response body too large")

// RequestError reports a transport failure: DNS, connect, TLS, timeout or a broken body read
type RequestError struct {
	URL string
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("gls: request to %s failed: %v", e.URL, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// StatusError reports a non-2xx response. Messages holds whatever diagnostics
// could be read from the body.
type StatusError struct {
	StatusCode int
	Status     string
	Messages   []string
}

func (e *StatusError) Error() string {
	if len(e.Messages) == 0 {
		return fmt.Sprintf("gls: unexpected status %s", e.Status)
	}
	return fmt.Sprintf("gls: unexpected status %s: %s", e.Status, strings.Join(e.Messages, "; "))
}

func (e *StatusError) Is(target error) bool {
	if target != ErrUnauthorized {
		return false
	}
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// MissingFieldError reports a response body without the expected JSON path
type MissingFieldError struct {
	Field    string
	Messages []string
}

func (e *MissingFieldError) Error() string {
	if len(e.Messages) == 0 {
		return fmt.Sprintf("gls: response has no %q field", e.Field)
	}
	return fmt.Sprintf("gls: response has no %q field: %s", e.Field, strings.Join(e.Messages, "; "))
}

// DecodeError reports an almanac_image that is not valid base64
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("gls: almanac_image is not valid base64: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
