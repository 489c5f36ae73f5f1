// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides the generic keyed-record store shared by
// every resource the API exposes.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a record is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - A conditional update or a replace that matched no row returns ErrStaleWrite.
//   - An insert that collides with an existing key returns ErrDuplicate.
//   - Other DB errors are propagated as-is.
//
// Usage:
//
//	bill, err := repo.Get[domain.CustomerBill](ctx, db, 42)
//	if errors.Is(err, repo.ErrNotFound) {
//	    // handle missing
//	}
//	bill.Status = domain.BillStatusCompleted
//	if err := repo.UpdateIfRevision(ctx, db, bill); errors.Is(err, repo.ErrStaleWrite) {
//	    // someone else won the race, or the row is gone
//	}
package repo

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// ErrDuplicate indicates that a row with the same unique key already exists.
var ErrDuplicate = errors.New("duplicate")

// ErrStaleWrite is returned by UpdateIfRevision when no row carried both the
// key and the expected version.
var ErrStaleWrite = errors.New("stale write: key/version matched no row")

// Keyed is implemented by pointer-to-model types that have a single int64 key
// column and an integer version column.
type Keyed[T any] interface {
	*T
	KeyColumn() string
	Key() int64
	Revision() int64
	SetRevision(int64)
}

func keyColumn[T any, PT Keyed[T]]() string {
	return PT(new(T)).KeyColumn()
}

// List returns every record of T ordered by key ascending.
func List[T any, PT Keyed[T]](ctx context.Context, db *gorm.DB) ([]T, error) {
	out := make([]T, 0)
	err := db.WithContext(ctx).
		Order(keyColumn[T, PT]() + " asc").
		Find(&out).Error
	return out, err
}

// Get fetches a single record by key, or ErrNotFound.
func Get[T any, PT Keyed[T]](ctx context.Context, db *gorm.DB, key int64) (*T, error) {
	var rec T
	err := db.WithContext(ctx).
		Where(keyColumn[T, PT]()+" = ?", key).
		First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Exists reports whether a record with key is present.
func Exists[T any, PT Keyed[T]](ctx context.Context, db *gorm.DB, key int64) (bool, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(new(T)).
		Where(keyColumn[T, PT]()+" = ?", key).
		Count(&n).Error
	return n > 0, err
}

// Create inserts rec with version 1. A zero key is assigned by the store when
// the column is auto-increment. Key collisions surface as ErrDuplicate.
func Create[T any, PT Keyed[T]](ctx context.Context, db *gorm.DB, rec PT) error {
	rec.SetRevision(1)
	if err := db.WithContext(ctx).Create(rec).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// UpdateIfRevision replaces every mutable column of the row identified by
// rec.Key(), but only while the stored version still equals rec.Revision().
// On success rec carries the bumped version. When nothing matched, rec is left
// untouched and ErrStaleWrite is returned; callers decide between "missing"
// and "conflict" with Exists.
func UpdateIfRevision[T any, PT Keyed[T]](ctx context.Context, db *gorm.DB, rec PT) error {
	col := rec.KeyColumn()
	expected := rec.Revision()
	rec.SetRevision(expected + 1)

	res := db.WithContext(ctx).
		Model(rec).
		Where(col+" = ? AND version = ?", rec.Key(), expected).
		Select("*").
		Omit(col, "created_at").
		Updates(rec)
	if res.Error != nil {
		rec.SetRevision(expected)
		return res.Error
	}
	if res.RowsAffected == 0 {
		rec.SetRevision(expected)
		return ErrStaleWrite
	}
	return nil
}

// Replace overwrites every mutable column of the row identified by rec.Key()
// regardless of its stored version, and bumps that version by one. On success
// rec carries the new version. A missing row is ErrStaleWrite, as with
// UpdateIfRevision.
func Replace[T any, PT Keyed[T]](ctx context.Context, db *gorm.DB, rec PT) error {
	col := rec.KeyColumn()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(rec).
			Where(col+" = ?", rec.Key()).
			Select("*").
			Omit(col, "created_at", "version").
			Updates(rec)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStaleWrite
		}
		if err := tx.Model(new(T)).
			Where(col+" = ?", rec.Key()).
			UpdateColumn("version", gorm.Expr("version + 1")).Error; err != nil {
			return err
		}
		var version int64
		if err := tx.Model(new(T)).
			Where(col+" = ?", rec.Key()).
			Pluck("version", &version).Error; err != nil {
			return err
		}
		rec.SetRevision(version)
		return nil
	})
}

// Delete removes the record with key and returns the number of rows removed.
func Delete[T any, PT Keyed[T]](ctx context.Context, db *gorm.DB, key int64) (int64, error) {
	res := db.WithContext(ctx).
		Where(keyColumn[T, PT]()+" = ?", key).
		Delete(new(T))
	return res.RowsAffected, res.Error
}

// isUniqueViolation recognises duplicate-key errors from both backends.
// glebarez/sqlite often returns plain-text errors for UNIQUE violations.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	low := strings.ToLower(err.Error())
	return strings.Contains(low, "unique constraint failed") ||
		strings.Contains(low, "constraint failed: unique") ||
		strings.Contains(low, "primary key constraint")
}
