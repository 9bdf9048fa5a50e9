package holiday

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusFinalized Status = "finalized"
)

// Holiday is a calendar date whose payment rows can be frozen into duty
// records. ProcessedAt is set once a snapshot exists.
type Holiday struct {
	ID          int64
	Date        time.Time
	Name        string
	Status      Status
	ProcessedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Computed
	RecordCount int
}

func (h Holiday) IsProcessed() bool {
	return h.ProcessedAt != nil
}

func (h Holiday) IsFinalized() bool {
	return h.Status == StatusFinalized
}

// RecordKind separates payment-sheet rows from security rows in one snapshot.
type RecordKind string

const (
	RecordPayment  RecordKind = "payment"
	RecordSecurity RecordKind = "security"
)

// DutyRecord is one frozen payment row of a processed holiday.
type DutyRecord struct {
	ID          int64
	HolidayID   int64
	Kind        RecordKind
	EmployeeID  string
	Name        string
	Designation string
	Section     string
	SubSection  string
	Category    string
	Gross       decimal.Decimal
	Basic       decimal.Decimal
	InTime      string
	OutTime     string
	WorkHours   decimal.Decimal
	OTHours     decimal.Decimal
	OTRate      decimal.Decimal
	Amount      decimal.Decimal
	IsManual    bool
	Remarks     string
	CreatedAt   time.Time
}

// Actor is the caller of a privileged holiday operation.
type Actor struct {
	UserID  string
	IsAdmin bool
}
