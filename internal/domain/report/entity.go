package report

import (
	"context"
	"time"

	"github.com/manel-hris/attendance-payroll/internal/domain/employee"
	"github.com/shopspring/decimal"
)

// MissingTime is displayed in place of an absent in- or out-time.
const MissingTime = "Missing"

// Kind tags the report variant a row set is computed for.
type Kind string

const (
	KindPaymentSheet    Kind = "payment_sheet"
	KindPresentStatus   Kind = "present_status"
	KindNightBill       Kind = "night_bill"
	KindSecurityPayment Kind = "security_payment"
)

// PunchState is where an employee's day stands after classification.
type PunchState string

const (
	PunchStateNone    PunchState = "none"
	PunchStateInOnly  PunchState = "in_only"
	PunchStateOutOnly PunchState = "out_only"
	PunchStateBoth    PunchState = "both"
)

// Presence is the participation status reported by the present-status sheet.
type Presence string

const (
	PresenceAbsent     Presence = "absent"
	PresenceIncomplete Presence = "incomplete"
	PresenceComplete   Presence = "complete"
)

func (s PunchState) Presence() Presence {
	switch s {
	case PunchStateBoth:
		return PresenceComplete
	case PunchStateInOnly, PunchStateOutOnly:
		return PresenceIncomplete
	default:
		return PresenceAbsent
	}
}

// StatusFilter selects present-status rows. "all" means everyone not absent.
type StatusFilter string

const (
	StatusAll        StatusFilter = "all"
	StatusAbsent     StatusFilter = "absent"
	StatusIncomplete StatusFilter = "incomplete"
	StatusComplete   StatusFilter = "complete"
)

var StatusFilters = []string{string(StatusAll), string(StatusAbsent), string(StatusIncomplete), string(StatusComplete)}

func (f StatusFilter) Matches(p Presence) bool {
	switch f {
	case StatusAll, "":
		return p != PresenceAbsent
	default:
		return string(f) == string(p)
	}
}

// Record is the normalized result of the shared classification step. Every
// variant derives its row from a Record, never from raw punches.
type Record struct {
	Employee     employee.Employee
	RawIn        *time.Time
	RawOut       *time.Time
	EffectiveIn  *time.Time
	EffectiveOut *time.Time
	WorkHours    decimal.Decimal
	State        PunchState
	Manual       bool
	Basic        decimal.Decimal
	OTRate       decimal.Decimal
}

// Row is one line of any report variant. Fields a variant does not use stay
// zero or empty.
type Row struct {
	SL          int             `json:"sl"`
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Designation string          `json:"designation"`
	Section     string          `json:"section"`
	SubSection  string          `json:"sub_section"`
	Category    string          `json:"category"`
	Gross       decimal.Decimal `json:"gross"`
	Basic       decimal.Decimal `json:"basic"`
	InTime      string          `json:"in_time"`
	OutTime     string          `json:"out_time"`
	Hour        decimal.Decimal `json:"hour"`
	OT          decimal.Decimal `json:"ot"`
	OTRate      decimal.Decimal `json:"ot_rate"`
	Amount      decimal.Decimal `json:"amount"`
	Status      Presence        `json:"status,omitempty"`
	IsManual    bool            `json:"is_manual"`
	Remarks     string          `json:"remarks"`
	Signature   string          `json:"signature"`
}

// Query is one engine invocation.
type Query struct {
	Kind   Kind
	Date   time.Time
	Filter employee.Filter
	Status StatusFilter
}

// SourceKind says whether payment rows were computed now or read from a
// holiday snapshot.
type SourceKind string

const (
	SourceLive     SourceKind = "live"
	SourceSnapshot SourceKind = "snapshot"
)

// Source serves the payment rows of one date, either from the live engine
// or from a processed holiday's frozen records.
type Source interface {
	Kind() SourceKind
	HolidayName() string
	PaymentSheet(ctx context.Context, filter employee.Filter) ([]Row, error)
	SecurityPayment(ctx context.Context) ([]Row, error)
}
