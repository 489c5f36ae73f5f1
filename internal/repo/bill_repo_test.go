package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tbourn/vehicle-insurance-api/internal/domain"
)

func TestFindCompletedBill(t *testing.T) {
	db := newTestDB(t, &domain.CustomerBill{})
	ctx := context.Background()
	now := time.Now().UTC()

	seed := []domain.CustomerBill{
		{BillNo: 500, PolicyNo: 1, Status: "Pending"},
		{BillNo: 501, PolicyNo: 1, Status: "completed"},
		{BillNo: 502, PolicyNo: 1, Status: domain.BillStatusCompleted},
		{BillNo: 503, PolicyNo: 1, Status: domain.BillStatusCompleted},
		{BillNo: 600, PolicyNo: 2, Status: domain.BillStatusCompleted},
	}
	for i := range seed {
		seed[i].Date = now
		seed[i].Amount = decimal.NewFromInt(int64(10 * (i + 1)))
		if err := Create(ctx, db, &seed[i]); err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
	}

	b, err := FindCompletedBill(ctx, db, 1)
	if err != nil {
		t.Fatalf("FindCompletedBill: %v", err)
	}
	// Lowest id among exact "Completed" matches; lowercase status is ignored.
	if b.BillNo != 502 {
		t.Fatalf("expected bill 502, got %d", b.BillNo)
	}

	if _, err := FindCompletedBill(ctx, db, 3); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown policy, got %v", err)
	}
}
