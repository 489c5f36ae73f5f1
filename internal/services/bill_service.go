// Package services – BillService
//
// BillService implements the two billing operations that go beyond plain CRUD:
// resolving the bill number for a policy, and raising a bill against an
// existing certificate. Bill creation runs in one transaction: the certificate
// warranty switch to "Pending" and the bill insert commit together or not at
// all.
package services

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/vehicle-insurance-api/internal/domain"
	"github.com/tbourn/vehicle-insurance-api/internal/observability"
	"github.com/tbourn/vehicle-insurance-api/internal/repo"
)

// BillService coordinates bill and certificate persistence. Plain bill CRUD
// (List, Update, Delete, ...) comes from the embedded BillRecords; Create is
// the certificate-aware variant.
type BillService struct {
	*BillRecords
	DB *gorm.DB
}

// NewBillService constructs a BillService.
func NewBillService(db *gorm.DB) *BillService {
	return &BillService{
		BillRecords: NewRecords[domain.CustomerBill](db, "bill"),
		DB:          db,
	}
}

// BillNoForPolicy returns the bill number of the first "Completed" bill for
// policyNo. found is false when no such bill exists.
func (s *BillService) BillNoForPolicy(ctx context.Context, policyNo int64) (billNo int64, found bool, err error) {
	tr := otel.Tracer("services/BillService")
	ctx, span := tr.Start(ctx, "BillNoForPolicy",
		trace.WithAttributes(observability.PolicyAttr(policyNo)),
	)
	defer span.End()

	b, err := repo.FindCompletedBill(ctx, s.DB, policyNo)
	if errors.Is(err, repo.ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return b.BillNo, true, nil
}

// Create raises bill against the certificate identified by bill.PolicyNo.
//
// When the certificate does not exist nothing is written and
// ErrCertificateNotFound is returned. Otherwise the certificate warranty is
// set to "Pending" and the bill is inserted in the same transaction.
// persisted reports whether the store acknowledged the bill row; store
// failures come back as *CreateBillError naming the failed stage.
func (s *BillService) Create(ctx context.Context, bill *domain.CustomerBill) (billNo int64, persisted bool, err error) {
	tr := otel.Tracer("services/BillService")
	ctx, span := tr.Start(ctx, "Create",
		trace.WithAttributes(observability.PolicyAttr(bill.PolicyNo)),
	)
	defer span.End()

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cert, err := repo.Get[domain.Certificate](ctx, tx, bill.PolicyNo)
		if errors.Is(err, repo.ErrNotFound) {
			return ErrCertificateNotFound
		}
		if err != nil {
			return &CreateBillError{Stage: StageCertificateLookup, Err: err}
		}

		cert.VehicleWarranty = domain.WarrantyPending
		if err := repo.UpdateIfRevision(ctx, tx, cert); err != nil {
			return &CreateBillError{Stage: StageCertificateUpdate, Err: err}
		}

		bill.ID = 0
		if err := repo.Create(ctx, tx, bill); err != nil {
			return &CreateBillError{Stage: StageBillPersist, Err: err}
		}
		persisted = bill.ID != 0
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrCertificateNotFound) {
			span.RecordError(err)
			span.SetStatus(codes.Error, "create bill failed")
		}
		return 0, false, err
	}
	if !persisted {
		return 0, false, nil
	}
	return bill.BillNo, true, nil
}
