// Package handlers defines HTTP-layer error codes used across all API endpoints
// and the mapping from service errors to HTTP responses.
//
// Codes are lowercase snake_case and stable; clients branch on them. Generic
// codes mirror HTTP status semantics, domain codes name the step that failed.
//
// Example response:
//
//	{
//	  "request_id": "e1b9be03-4999-4289-9f03-999b042d65d6",
//	  "code": "conflict",
//	  "message": "record was modified concurrently"
//	}
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/vehicle-insurance-api/internal/http/middleware"
	"github.com/tbourn/vehicle-insurance-api/internal/services"
)

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeNotFound         = "not_found"
	ErrCodeConflict         = "conflict"
	ErrCodeRateLimited      = "too_many_requests"
	ErrCodeInternal         = "internal_error"
	ErrCodeMethodNotAllowed = "method_not_allowed"

	// Domain-specific:
	ErrCodeExternalService         = "external_service_error"
	ErrCodeCertificateLookupFailed = "certificate_lookup_failed"
	ErrCodeBillPersistFailed       = "bill_persist_failed"
	ErrCodeListFailed              = "list_failed"
)

// externalErrorPrefix precedes the upstream reason in driving-history failures.
const externalErrorPrefix = "Error calling external service: "

// failErr maps a service error onto the error envelope.
//
//	ErrValidation          -> 400 bad_request
//	ErrNotFound            -> 404 not_found
//	ErrConflict            -> 409 conflict
//	*ExternalServiceError  -> 400 external_service_error
//	*CreateBillError       -> 400 certificate_lookup_failed | bill_persist_failed
//	anything else          -> 500 internal_error (logged by fail)
func failErr(c *gin.Context, err error) {
	var (
		ext *services.ExternalServiceError
		cbe *services.CreateBillError
	)
	switch {
	case errors.Is(err, services.ErrValidation):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	case errors.Is(err, services.ErrNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "record not found")
	case errors.Is(err, services.ErrConflict):
		fail(c, http.StatusConflict, ErrCodeConflict, services.ErrConflict.Error())
	case errors.As(err, &ext):
		fail(c, http.StatusBadRequest, ErrCodeExternalService, externalErrorPrefix+ext.Error())
	case errors.As(err, &cbe):
		code := ErrCodeBillPersistFailed
		if cbe.Stage == services.StageCertificateLookup {
			code = ErrCodeCertificateLookupFailed
		}
		middleware.LoggerFrom(c).Warn().Err(cbe.Err).Str("stage", cbe.Stage).Msg("create bill failed")
		fail(c, http.StatusBadRequest, code, "could not create bill")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}
