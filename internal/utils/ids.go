// Package utils provides small, generic helper functions used across
// different layers of the application. These utilities are independent
// of domain or business logic.
package utils

import (
	"errors"
	"strconv"
)

// ErrInvalidID reports a path or query id that is not a base-10 int64.
var ErrInvalidID = errors.New("id must be an integer")

// ParseID converts a path segment into a record key.
// Leading or trailing whitespace is rejected rather than trimmed.
//
// Example:
//
//	id, err := utils.ParseID("42")  // 42, nil
//	_, err = utils.ParseID("abc")   // ErrInvalidID
func ParseID(s string) (int64, error) {
	if s == "" {
		return 0, ErrInvalidID
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, ErrInvalidID
	}
	return n, nil
}
