// Package services defines the business logic for customer bills, vehicle
// insurance quotes, and the driving/claims history lookups.
// This file centralizes service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// Translation into user-facing messages or HTTP status codes is performed at
// the handler layer.
package services

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is returned when the request itself is malformed, e.g. the
	// path key and the body key of an update disagree.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates that the addressed record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrConflict is returned when a create collides with an existing key or
	// an update carried a version that is no longer current.
	ErrConflict = errors.New("record was modified concurrently")

	// ErrCertificateNotFound is returned by bill creation when no certificate
	// exists for the bill's policy number. Nothing is written in that case.
	ErrCertificateNotFound = errors.New("certificate not found")
)

// Stages of bill creation reported by CreateBillError.
const (
	StageCertificateLookup = "certificate_lookup"
	StageCertificateUpdate = "certificate_update"
	StageBillPersist       = "bill_persist"
)

// CreateBillError wraps a store failure during bill creation and records
// which step failed. The transaction has been rolled back when it is returned.
type CreateBillError struct {
	Stage string
	Err   error
}

func (e *CreateBillError) Error() string {
	return fmt.Sprintf("create bill: %s: %v", e.Stage, e.Err)
}

func (e *CreateBillError) Unwrap() error { return e.Err }

// ExternalServiceError reports that an upstream lookup failed: transport
// error, non-2xx status, or an undecodable body.
type ExternalServiceError struct {
	Service string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	return e.Err.Error()
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }
