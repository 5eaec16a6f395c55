package crawler

import (
	"fmt"
	"net/http"
)

// StatusKind discriminates the outcome of fetching one url.
type StatusKind uint8

const (
	// StatusSuccess indicates an HTTP response with a success status code.
	StatusSuccess StatusKind = iota
	// StatusFailure indicates an HTTP response with a non-success status code.
	StatusFailure
	// StatusUnreachable indicates a transport-level failure: timeout, DNS, connection refused, TLS.
	StatusUnreachable
)

// Status is the classified outcome of fetching one url.
//
// Code is the HTTP status code, zero for StatusUnreachable. Cause is the transport error, nil otherwise. Both
// StatusFailure and StatusUnreachable are bad for reporting purposes, they differ only in diagnostic detail.
type Status struct {
	Kind  StatusKind
	Code  int
	Cause error
}

func successStatus(code int) Status {
	return Status{Kind: StatusSuccess, Code: code}
}

func failureStatus(code int) Status {
	return Status{Kind: StatusFailure, Code: code}
}

func unreachableStatus(cause error) Status {
	return Status{Kind: StatusUnreachable, Cause: cause}
}

// Bad reports whether the outcome should be counted as a broken link.
func (s Status) Bad() bool {
	return s.Kind != StatusSuccess
}

// Detail returns a human readable description of the outcome for reporting.
func (s Status) Detail() string {
	switch s.Kind {
	case StatusFailure:
		return fmt.Sprintf("http %d %s", s.Code, http.StatusText(s.Code))

	case StatusUnreachable:
		return fmt.Sprintf("unreachable: %s", s.Cause)

	default:
		return fmt.Sprintf("http %d %s", s.Code, http.StatusText(s.Code))
	}
}
