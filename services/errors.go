package services

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorKind string

const (
	// KindNetwork covers failures before a response arrived: refused
	// connections, timeouts, cancelled contexts.
	KindNetwork ErrorKind = "network"
	// KindStatus is a response outside 2xx.
	KindStatus ErrorKind = "status"
	// KindDecode is a 2xx response whose body could not be read.
	KindDecode ErrorKind = "decode"
	// KindMissingToken means an authenticated call was attempted without a
	// token; no request was sent.
	KindMissingToken ErrorKind = "missing_token"
)

// Error is the only error type the service layer returns.
type Error struct {
	Kind    ErrorKind
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Kind == KindStatus && e.Message != "":
		return fmt.Sprintf("%s: HTTP %d: %s", e.Op, e.Status, e.Message)
	case e.Kind == KindStatus:
		return fmt.Sprintf("%s: HTTP %d", e.Op, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsUnauthorized reports whether err means the session has no usable token:
// either none was stored or the API rejected it with 401.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Kind == KindMissingToken ||
		(apiErr.Kind == KindStatus && apiErr.Status == http.StatusUnauthorized)
}

// UserMessage picks the text to show a user: the API's own message when it
// sent one, otherwise fallback.
func UserMessage(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
