package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/vehicle-insurance-api/internal/domain"
)

// FindCompletedBill returns the lowest-id bill for policyNo whose status is
// exactly domain.BillStatusCompleted, or ErrNotFound when there is none.
// The status match is case-sensitive.
func FindCompletedBill(ctx context.Context, db *gorm.DB, policyNo int64) (*domain.CustomerBill, error) {
	var b domain.CustomerBill
	err := db.WithContext(ctx).
		Where("policy_no = ? AND status = ?", policyNo, domain.BillStatusCompleted).
		Order("id asc").
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}
