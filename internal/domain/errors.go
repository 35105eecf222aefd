package domain

import "errors"

// Sentinel errors wrapped by services so handlers can pick an HTTP status
// without knowing which store or codec produced the failure.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized") // bad credentials or unusable token
	ErrForbidden    = errors.New("forbidden")    // token is valid but its subject is gone
	ErrBadRequest   = errors.New("bad request")  // validation and OTP throttle rejections
)
