// Package domain defines the persistence models for the vehicle insurance
// back office: customer bills, the certificates they are billed against, and
// vehicle insurance quotes. These types are mapped with GORM and form the
// core data layer of the API.
//
// Every persisted record carries a Version column. It starts at 1 on insert
// and is bumped by exactly one on each successful update; writers must echo
// the version they read, which lets the store reject lost updates.
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bill statuses used by the billing flow. Status is free text; only
// BillStatusCompleted carries meaning for lookups and it is matched exactly.
const (
	BillStatusCompleted = "Completed"
	BillStatusPending   = "Pending"
)

// WarrantyPending is written to a certificate when a bill is raised against it.
const WarrantyPending = "Pending"

// CustomerBill is a bill issued for an insurance policy.
//
// Fields:
//   - ID: store-assigned primary key.
//   - BillNo: business bill number handed back to the billing flow.
//   - PolicyNo: the certificate this bill is raised against.
//   - Status: free text ("Completed", "Pending", ...).
//   - Date / Amount: billing date and exact decimal amount.
//   - Version: optimistic concurrency token.
type CustomerBill struct {
	ID        int64           `json:"id"         gorm:"primaryKey;autoIncrement"`
	BillNo    int64           `json:"bill_no"    gorm:"not null"`
	PolicyNo  int64           `json:"policy_no"  gorm:"not null;index:idx_bills_policy_status,priority:1"`
	Status    string          `json:"status"     gorm:"type:varchar(32);not null;default:'';index:idx_bills_policy_status,priority:2"`
	Date      time.Time       `json:"date"`
	Amount    decimal.Decimal `json:"amount"     gorm:"type:decimal(18,2);not null"`
	Version   int64           `json:"version"    gorm:"not null;default:1"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// TableName returns the database table name for CustomerBill.
func (CustomerBill) TableName() string { return "customer_bills" }

func (b *CustomerBill) KeyColumn() string { return "id" }
func (b *CustomerBill) Key() int64 { return b.ID }
func (b *CustomerBill) Revision() int64 { return b.Version }
func (b *CustomerBill) SetRevision(v int64) { b.Version = v }

// Certificate is the insurance certificate identified by its policy number.
// Bills reference it by PolicyNo; raising a bill marks its warranty pending.
type Certificate struct {
	PolicyNo        int64     `json:"policy_no"        gorm:"primaryKey;autoIncrement:false"`
	VehicleWarranty string    `json:"vehicle_warranty" gorm:"type:varchar(64);not null;default:''"`
	Version         int64     `json:"version"          gorm:"not null;default:1"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName returns the database table name for Certificate.
func (Certificate) TableName() string { return "certificates" }

func (c *Certificate) KeyColumn() string { return "policy_no" }
func (c *Certificate) Key() int64 { return c.PolicyNo }
func (c *Certificate) Revision() int64 { return c.Version }
func (c *Certificate) SetRevision(v int64) { c.Version = v }

// VehicleInsuranceQuote is a flat quote resource. Every field is supplied by
// the caller and stored verbatim; nothing is derived. A zero QuoteID lets the
// store assign one.
type VehicleInsuranceQuote struct {
	QuoteID        int64           `json:"quote_id"        gorm:"primaryKey;autoIncrement"`
	VehicleMake    string          `json:"vehicle_make"    gorm:"type:varchar(64)"`
	VehicleModel   string          `json:"vehicle_model"   gorm:"type:varchar(64)"`
	VehicleYear    int             `json:"vehicle_year"`
	VehicleVIN     string          `json:"vehicle_vin"     gorm:"column:vehicle_vin;type:varchar(32)"`
	VehicleType    string          `json:"vehicle_type"    gorm:"type:varchar(64)"`
	VehicleMileage int             `json:"vehicle_mileage"`
	OwnerName      string          `json:"owner_name"      gorm:"type:varchar(255)"`
	OwnerAddress   string          `json:"owner_address"   gorm:"type:varchar(255)"`
	PremiumAmount  decimal.Decimal `json:"premium_amount"  gorm:"type:decimal(18,2);not null"`
	Rating         string          `json:"rating"          gorm:"type:varchar(16)"`
	Version        int64           `json:"version"         gorm:"not null;default:1"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// TableName returns the database table name for VehicleInsuranceQuote.
func (VehicleInsuranceQuote) TableName() string { return "vehicle_insurance_quotes" }

func (q *VehicleInsuranceQuote) KeyColumn() string { return "quote_id" }
func (q *VehicleInsuranceQuote) Key() int64 { return q.QuoteID }
func (q *VehicleInsuranceQuote) Revision() int64 { return q.Version }
func (q *VehicleInsuranceQuote) SetRevision(v int64) { q.Version = v }
