package report

import (
	"time"

	"github.com/manel-hris/attendance-payroll/internal/domain/employee"
	"github.com/manel-hris/attendance-payroll/internal/domain/punch"
	"github.com/manel-hris/attendance-payroll/internal/domain/report"
	"github.com/shopspring/decimal"
)

const (
	clockLayout = "15:04"

	roundingStep   = 30 // minutes
	lunchThreshold = 6 * time.Hour
	lunchBreak     = time.Hour
)

var secondsPerHour = decimal.NewFromInt(3600)

// startFloor is the earliest paid start for an employee's sub-section.
func startFloor(e employee.Employee, day time.Time) time.Time {
	if e.IsCleaner() {
		return atClock(day, 7, 30)
	}
	return atClock(day, 8, 0)
}

func atClock(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}

// EffectiveIn raises a raw in-time to the sub-section's start floor.
func EffectiveIn(e employee.Employee, raw time.Time) time.Time {
	floor := startFloor(e, raw)
	if raw.Before(floor) {
		return floor
	}
	return raw
}

// EffectiveOut rounds a raw out-time down to the previous half hour.
func EffectiveOut(raw time.Time) time.Time {
	return time.Date(raw.Year(), raw.Month(), raw.Day(), raw.Hour(), raw.Minute()/roundingStep*roundingStep, 0, 0, raw.Location())
}

// WorkHours is the paid span between effective times in hours, less lunch
// when the span reaches six hours. Never negative.
func WorkHours(in, out *time.Time) decimal.Decimal {
	if in == nil || out == nil {
		return decimal.Zero
	}
	span := out.Sub(*in)
	if span >= lunchThreshold {
		span -= lunchBreak
	}
	if span <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(span / time.Second)).Div(secondsPerHour)
}

func stateOf(att punch.Attendance) report.PunchState {
	switch {
	case att.InTime != nil && att.OutTime != nil:
		return report.PunchStateBoth
	case att.InTime != nil:
		return report.PunchStateInOnly
	case att.OutTime != nil:
		return report.PunchStateOutOnly
	default:
		return report.PunchStateNone
	}
}

// Classify builds the normalized record every report variant starts from.
func Classify(e employee.Employee, att punch.Attendance) report.Record {
	rec := report.Record{
		Employee: e,
		RawIn:    att.InTime,
		RawOut:   att.OutTime,
		State:    stateOf(att),
		Manual:   att.Manual(),
		Basic:    e.BasicSalary(),
	}
	rec.OTRate = employee.OTRate(rec.Basic)

	if att.InTime != nil {
		in := EffectiveIn(e, *att.InTime)
		rec.EffectiveIn = &in
	}
	if att.OutTime != nil {
		out := EffectiveOut(*att.OutTime)
		rec.EffectiveOut = &out
	}
	rec.WorkHours = WorkHours(rec.EffectiveIn, rec.EffectiveOut)
	return rec
}

func displayClock(t *time.Time) string {
	if t == nil {
		return report.MissingTime
	}
	return t.Format(clockLayout)
}
