package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DrivingHistory is a driver's record as returned by the driving-history
// service. Only the six fields below are carried over; anything else the
// upstream sends is dropped. Dates the upstream omits stay at their zero value.
type DrivingHistory struct {
	DriverName           string    `json:"driver_name"`
	DriverLicense        string    `json:"driver_license"`
	BirthDate            time.Time `json:"birth_date"`
	EmailID              string    `json:"email_id"`
	PolicyID             string    `json:"policy_id"`
	PolicyExpirationDate time.Time `json:"policy_expiration_date"`
}

// ClaimsHistory summarises the claims filed by a driver.
type ClaimsHistory struct {
	DriverName       string          `json:"driver_name"`
	NumberOfClaims   int             `json:"number_of_claims"`
	TotalClaimAmount decimal.Decimal `json:"total_claim_amount"`
}
