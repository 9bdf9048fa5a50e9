package punch

import (
	"strings"
	"time"
)

// SessionCutoffHour splits a day's punches: earlier hours can only form an
// in-time, this hour and later can only form an out-time.
const SessionCutoffHour = 13

// Punch is one clock event in the local store. Synced punches carry the
// upstream source id; manual punches are flagged and never have one.
type Punch struct {
	ID                int64
	EmployeeCode      string
	PunchTime         time.Time
	SyncID            *int64
	OriginalPunchTime *time.Time
	IsManual          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type Session string

const (
	SessionMorning   Session = "morning"
	SessionAfternoon Session = "afternoon"
)

func SessionOf(t time.Time) Session {
	if t.Hour() < SessionCutoffHour {
		return SessionMorning
	}
	return SessionAfternoon
}

// Attendance is the derived in/out pair of one employee for one day.
// InTime and OutTime are nil when the corresponding bucket was empty.
type Attendance struct {
	InTime    *time.Time
	OutTime   *time.Time
	InManual  bool
	OutManual bool
}

// Manual reports whether a manual correction supplied either time.
func (a Attendance) Manual() bool {
	return a.InManual || a.OutManual
}

func (a Attendance) HasAny() bool {
	return a.InTime != nil || a.OutTime != nil
}

func (a Attendance) HasBoth() bool {
	return a.InTime != nil && a.OutTime != nil
}

type UpsertResult string

const (
	UpsertCreated UpsertResult = "created"
	UpsertUpdated UpsertResult = "updated"
)

// UpstreamPunch is a row read from the BioTime terminal database.
type UpstreamPunch struct {
	SourceID     int64
	EmployeeCode string
	PunchTime    time.Time
}

// Classify folds a day's punches into one Attendance per employee code:
// the earliest morning punch is the in-time and the latest afternoon punch is
// the out-time. Two morning punches never pair up into a complete day.
func Classify(punches []Punch) map[string]Attendance {
	result := make(map[string]Attendance)

	for _, p := range punches {
		code := strings.TrimSpace(p.EmployeeCode)
		t := p.PunchTime
		att := result[code]

		if SessionOf(t) == SessionMorning {
			if att.InTime == nil || t.Before(*att.InTime) {
				att.InTime = &t
				att.InManual = p.IsManual
			}
		} else {
			if att.OutTime == nil || t.After(*att.OutTime) {
				att.OutTime = &t
				att.OutManual = p.IsManual
			}
		}
		result[code] = att
	}

	return result
}

// DayBounds returns the half-open [start, end) range covering date.
func DayBounds(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return start, start.AddDate(0, 0, 1)
}
