// Package services – HistoryService
//
// HistoryService fronts the two outbound lookups. Driving-history failures are
// wrapped in *ExternalServiceError so the handler can answer with the upstream
// reason; claims-history failures pass through untouched. Nothing is cached
// and nothing is retried.
package services

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/vehicle-insurance-api/internal/domain"
	"github.com/tbourn/vehicle-insurance-api/internal/observability"
)

// DrivingHistoryFetcher retrieves a driver's record from the upstream service.
type DrivingHistoryFetcher interface {
	Fetch(ctx context.Context, driverID string) (*domain.DrivingHistory, error)
}

// ClaimsHistoryFetcher retrieves a driver's claims summary. A nil result with
// a nil error means the upstream had nothing for that driver.
type ClaimsHistoryFetcher interface {
	Fetch(ctx context.Context, driverName string) (*domain.ClaimsHistory, error)
}

// Upstream service names, used in errors and metrics.
const (
	ServiceDrivingHistory = "driving_history"
	ServiceClaimsHistory  = "claims_history"
)

// HistoryService exposes the driving and claims history lookups.
type HistoryService struct {
	Driving DrivingHistoryFetcher
	Claims  ClaimsHistoryFetcher
}

// NewHistoryService constructs a HistoryService.
func NewHistoryService(driving DrivingHistoryFetcher, claims ClaimsHistoryFetcher) *HistoryService {
	return &HistoryService{Driving: driving, Claims: claims}
}

// DrivingHistory performs one upstream call for driverID.
func (s *HistoryService) DrivingHistory(ctx context.Context, driverID string) (*domain.DrivingHistory, error) {
	tr := otel.Tracer("services/HistoryService")
	ctx, span := tr.Start(ctx, "DrivingHistory",
		trace.WithAttributes(observability.DriverAttr(driverID)),
	)
	defer span.End()

	if strings.TrimSpace(driverID) == "" {
		return nil, ErrValidation
	}
	h, err := s.Driving.Fetch(ctx, driverID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "driving history lookup failed")
		return nil, &ExternalServiceError{Service: ServiceDrivingHistory, Err: err}
	}
	return h, nil
}

// ClaimsHistory performs one upstream call for driverName. A nil result means
// no claims history was returned.
func (s *HistoryService) ClaimsHistory(ctx context.Context, driverName string) (*domain.ClaimsHistory, error) {
	tr := otel.Tracer("services/HistoryService")
	ctx, span := tr.Start(ctx, "ClaimsHistory")
	defer span.End()

	if strings.TrimSpace(driverName) == "" {
		return nil, ErrValidation
	}
	return s.Claims.Fetch(ctx, driverName)
}
