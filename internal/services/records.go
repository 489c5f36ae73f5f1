// Package services – Records
//
// Records is the keyed-record CRUD service shared by every resource kind.
// It wraps the generic repo functions with the update policy used across the
// API:
//
//  1. The key in the path must equal the key embedded in the body, otherwise
//     ErrValidation is returned and the store is never touched.
//  2. When the caller sends a version, the row is replaced only while its
//     stored version still equals it. A zero version replaces the row
//     unconditionally.
//  3. When no row matched, the key is looked up once more: a missing row is
//     ErrNotFound, a present one is ErrConflict. Conflicts are not retried.
//
// Observability: all public methods are OpenTelemetry-instrumented with the
// record kind and key as span attributes.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/vehicle-insurance-api/internal/domain"
	"github.com/tbourn/vehicle-insurance-api/internal/repo"
)

// Records provides CRUD for one record kind T.
type Records[T any, PT repo.Keyed[T]] struct {
	DB *gorm.DB
	// Kind names the record in spans and logs ("bill", "quote").
	Kind string
}

// NewRecords constructs a Records service for T.
func NewRecords[T any, PT repo.Keyed[T]](db *gorm.DB, kind string) *Records[T, PT] {
	return &Records[T, PT]{DB: db, Kind: kind}
}

// BillRecords and QuoteRecords are the instantiations served over HTTP.
type (
	BillRecords  = Records[domain.CustomerBill, *domain.CustomerBill]
	QuoteRecords = Records[domain.VehicleInsuranceQuote, *domain.VehicleInsuranceQuote]
)

func (s *Records[T, PT]) start(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tr := otel.Tracer("services/Records")
	attrs = append(attrs, attribute.String("record.kind", s.Kind))
	return tr.Start(ctx, op, trace.WithAttributes(attrs...))
}

// List returns every record ordered by key.
func (s *Records[T, PT]) List(ctx context.Context) ([]T, error) {
	ctx, span := s.start(ctx, "List")
	defer span.End()
	return repo.List[T, PT](ctx, s.DB)
}

// Stats returns the row count and latest update time, used for list ETags.
func (s *Records[T, PT]) Stats(ctx context.Context) (int64, *time.Time, error) {
	ctx, span := s.start(ctx, "Stats")
	defer span.End()
	return repo.Stats[T, PT](ctx, s.DB)
}

// Get returns the record with key or ErrNotFound.
func (s *Records[T, PT]) Get(ctx context.Context, key int64) (*T, error) {
	ctx, span := s.start(ctx, "Get", attribute.Int64("record.key", key))
	defer span.End()

	rec, err := repo.Get[T, PT](ctx, s.DB, key)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrNotFound
	}
	return rec, err
}

// Create persists rec verbatim with version 1. A key collision is ErrConflict.
func (s *Records[T, PT]) Create(ctx context.Context, rec PT) error {
	ctx, span := s.start(ctx, "Create", attribute.Int64("record.key", rec.Key()))
	defer span.End()

	err := repo.Create[T, PT](ctx, s.DB, rec)
	if errors.Is(err, repo.ErrDuplicate) {
		return fmt.Errorf("%s %d already exists: %w", s.Kind, rec.Key(), ErrConflict)
	}
	return err
}

// Update replaces the record identified by key with rec. A non-zero
// rec.Revision() makes the write conditional on the stored version.
func (s *Records[T, PT]) Update(ctx context.Context, key int64, rec PT) error {
	ctx, span := s.start(ctx, "Update", attribute.Int64("record.key", key))
	defer span.End()

	if rec.Key() != key {
		return fmt.Errorf("%s key %d does not match path key %d: %w", s.Kind, rec.Key(), key, ErrValidation)
	}
	var err error
	if rec.Revision() == 0 {
		err = repo.Replace[T, PT](ctx, s.DB, rec)
	} else {
		err = repo.UpdateIfRevision[T, PT](ctx, s.DB, rec)
	}
	if !errors.Is(err, repo.ErrStaleWrite) {
		return err
	}

	exists, xerr := repo.Exists[T, PT](ctx, s.DB, key)
	if xerr != nil {
		return xerr
	}
	if !exists {
		return ErrNotFound
	}
	span.SetAttributes(attribute.Bool("record.conflict", true))
	return ErrConflict
}

// Delete removes the record with key, or returns ErrNotFound.
func (s *Records[T, PT]) Delete(ctx context.Context, key int64) error {
	ctx, span := s.start(ctx, "Delete", attribute.Int64("record.key", key))
	defer span.End()

	n, err := repo.Delete[T, PT](ctx, s.DB, key)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
