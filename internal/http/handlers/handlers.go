// Package handlers provides the HTTP endpoints of the vehicle insurance API.
//
// Handlers are transport-thin: they bind and validate input, call the
// application services, and translate results (including the -1 bill-number
// sentinel and conditional list responses) into HTTP.
package handlers

import (
	"context"
	"time"

	"github.com/tbourn/vehicle-insurance-api/internal/domain"
)

//go:generate mockgen -destination=mocks/history_service_mock.go -package=mocks . HistoryService

//
// Service contracts (context-aware)
//

// BillService defines the bill operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type BillService interface {
	List(ctx context.Context) ([]domain.CustomerBill, error)
	Stats(ctx context.Context) (int64, *time.Time, error)
	// BillNoForPolicy resolves the first "Completed" bill of a policy.
	BillNoForPolicy(ctx context.Context, policyNo int64) (billNo int64, found bool, err error)
	// Create raises a bill against the policy's certificate.
	Create(ctx context.Context, bill *domain.CustomerBill) (billNo int64, persisted bool, err error)
	Update(ctx context.Context, id int64, bill *domain.CustomerBill) error
	Delete(ctx context.Context, id int64) error
}

// QuoteService defines CRUD over vehicle insurance quotes.
type QuoteService interface {
	List(ctx context.Context) ([]domain.VehicleInsuranceQuote, error)
	Stats(ctx context.Context) (int64, *time.Time, error)
	Get(ctx context.Context, id int64) (*domain.VehicleInsuranceQuote, error)
	Create(ctx context.Context, q *domain.VehicleInsuranceQuote) error
	Update(ctx context.Context, id int64, q *domain.VehicleInsuranceQuote) error
	Delete(ctx context.Context, id int64) error
}

// HistoryService defines the outbound driving and claims lookups.
type HistoryService interface {
	DrivingHistory(ctx context.Context, driverID string) (*domain.DrivingHistory, error)
	// ClaimsHistory returns nil when the upstream had nothing for the driver.
	ClaimsHistory(ctx context.Context, driverName string) (*domain.ClaimsHistory, error)
}

// IdempotencyStore records and replays the outcome of keyed create requests.
type IdempotencyStore interface {
	Find(ctx context.Context, scope, key string, now time.Time) (*domain.Idempotency, error)
	Save(ctx context.Context, scope, key string, resourceID int64, status int, ttl time.Duration) error
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for bills, quotes, and history lookups.
type Handlers struct {
	bills   BillService
	quotes  QuoteService
	history HistoryService

	idem    IdempotencyStore
	idemTTL time.Duration
}

// Option customizes Handlers.
type Option func(*Handlers)

// WithIdempotency enables replay of keyed create requests for ttl.
func WithIdempotency(store IdempotencyStore, ttl time.Duration) Option {
	return func(h *Handlers) {
		h.idem = store
		h.idemTTL = ttl
	}
}

// New constructs and returns a Handlers instance bound to the given services.
func New(bills BillService, quotes QuoteService, history HistoryService, opts ...Option) *Handlers {
	h := &Handlers{bills: bills, quotes: quotes, history: history, idemTTL: 24 * time.Hour}
	for _, o := range opts {
		o(h)
	}
	return h
}
