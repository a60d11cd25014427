package client

import (
	"errors"
	"fmt"
)

// GatewayError covers network failures and non-2xx answers from the record
// store, including auth and rate-limit rejections from the upstream.
type GatewayError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *GatewayError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("gateway: %s returned %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("gateway: %s: %v", e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// NotFoundError marks an id the record store does not know.
type NotFoundError struct {
	Op string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("gateway: %s: not found", e.Op)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsGatewayError reports whether err came from the record store transport.
func IsGatewayError(err error) bool {
	var ge *GatewayError
	return errors.As(err, &ge)
}

// IsUnreachable reports whether err looks like an outage rather than the
// record store rejecting the request: a transport failure or a 5xx answer.
func IsUnreachable(err error) bool {
	var ge *GatewayError
	if !errors.As(err, &ge) {
		return false
	}
	return ge.StatusCode == 0 || ge.StatusCode >= 500
}
