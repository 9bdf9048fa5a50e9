package report

import (
	"strings"
	"time"

	"github.com/manel-hris/attendance-payroll/internal/domain/employee"
	"github.com/manel-hris/attendance-payroll/internal/domain/report"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	nightBase           = clockOffset(22, 0)
	workerNightCutoff   = clockOffset(22, 30)
	staffNightCutoff    = clockOffset(23, 0)
	minutesPerHour      = decimal.NewFromInt(60)
	securityDayMultiple = decimal.NewFromInt(2)
)

func clockOffset(hour, minute int) time.Duration {
	return time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute
}

func sinceMidnight(t time.Time) time.Duration {
	return clockOffset(t.Hour(), t.Minute()) + time.Duration(t.Second())*time.Second
}

// strategy turns a classified record into a row of one report kind. The
// second result is false when the record does not belong in the report.
type strategy func(rec report.Record, q report.Query) (report.Row, bool)

var strategies = map[report.Kind]strategy{
	report.KindPaymentSheet:    paymentSheetRow,
	report.KindPresentStatus:   presentStatusRow,
	report.KindNightBill:       nightBillRow,
	report.KindSecurityPayment: securityPaymentRow,
}

// build applies the kind's strategy to every record and numbers the
// surviving rows from 1 in input order.
func build(kind report.Kind, q report.Query, records []report.Record) ([]report.Row, error) {
	apply, ok := strategies[kind]
	if !ok {
		return nil, report.ErrUnknownKind
	}

	rows := make([]report.Row, 0, len(records))
	for _, rec := range records {
		row, keep := apply(rec, q)
		if !keep {
			continue
		}
		row.SL = len(rows) + 1
		rows = append(rows, row)
	}
	return rows, nil
}

func baseRow(rec report.Record) report.Row {
	// Caser keeps state between calls and is not safe to share. Category is
	// shown as stored.
	title := cases.Title(language.English)
	e := rec.Employee
	return report.Row{
		ID:          strings.TrimSpace(e.ID),
		Name:        title.String(strings.TrimSpace(e.Name)),
		Designation: title.String(strings.TrimSpace(e.Designation)),
		Section:     title.String(strings.TrimSpace(e.Section)),
		SubSection:  title.String(strings.TrimSpace(e.SubSection)),
		Category:    e.Category,
		Gross:       e.GrossSalary.RoundBank(0),
		Basic:       rec.Basic.RoundBank(0),
		IsManual:    rec.Manual,
	}
}

// paymentSheetRow pays workers every effective hour at the OT rate and staff
// one day's basic. Workers missing either punch get nothing; staff only
// need one.
func paymentSheetRow(rec report.Record, _ report.Query) (report.Row, bool) {
	e := rec.Employee
	if e.IsSecurity() || rec.State == report.PunchStateNone {
		return report.Row{}, false
	}

	row := baseRow(rec)
	row.InTime = displayClock(rec.EffectiveIn)
	row.OutTime = displayClock(rec.EffectiveOut)
	row.OTRate = rec.OTRate.RoundBank(2)

	if e.IsWorker() {
		if rec.State != report.PunchStateBoth {
			return row, true
		}
		// hour and rate are rounded for display only
		row.Hour = rec.WorkHours.RoundBank(2)
		row.OT = row.Hour
		row.Amount = rec.WorkHours.Mul(rec.OTRate).RoundBank(0)
		return row, true
	}

	row.Hour = rec.WorkHours.RoundBank(2)
	row.Amount = rec.Basic.Div(employee.DaysPerMonth).RoundBank(0)
	return row, true
}

// presentStatusRow reports raw punch times and participation only.
func presentStatusRow(rec report.Record, q report.Query) (report.Row, bool) {
	if rec.Employee.IsSecurity() {
		return report.Row{}, false
	}
	presence := rec.State.Presence()
	if !q.Status.Matches(presence) {
		return report.Row{}, false
	}

	row := baseRow(rec)
	row.Gross = decimal.Zero
	row.Basic = decimal.Zero
	row.InTime = displayClock(rec.RawIn)
	row.OutTime = displayClock(rec.RawOut)
	row.Status = presence
	return row, true
}

// nightBillRow pays late leavers: workers by the minute past 22:00 at the
// OT rate, staff the flat night bill of their designation.
func nightBillRow(rec report.Record, _ report.Query) (report.Row, bool) {
	if rec.EffectiveOut == nil {
		return report.Row{}, false
	}
	e := rec.Employee
	out := sinceMidnight(*rec.EffectiveOut)

	row := baseRow(rec)
	row.InTime = displayClock(rec.EffectiveIn)
	row.OutTime = displayClock(rec.EffectiveOut)

	if e.IsWorker() {
		if out < workerNightCutoff {
			return report.Row{}, false
		}
		minutes := decimal.NewFromInt(int64((out - nightBase) / time.Minute))
		row.OTRate = rec.OTRate.RoundBank(2)
		row.OT = minutes.Div(minutesPerHour).RoundBank(2)
		row.Amount = minutes.Div(minutesPerHour).Mul(rec.OTRate).RoundBank(0)
	} else {
		if out < staffNightCutoff {
			return report.Row{}, false
		}
		row.Amount = e.NightBill.RoundBank(0)
	}

	if !row.Amount.IsPositive() {
		return report.Row{}, false
	}
	return row, true
}

// securityPaymentRow pays the security sub-section double daily basic for
// any punch on the day.
func securityPaymentRow(rec report.Record, _ report.Query) (report.Row, bool) {
	if !rec.Employee.InSecuritySubSection() || rec.State == report.PunchStateNone {
		return report.Row{}, false
	}

	row := baseRow(rec)
	row.InTime = displayClock(rec.EffectiveIn)
	row.OutTime = displayClock(rec.EffectiveOut)
	row.Amount = rec.Basic.Div(employee.DaysPerMonth).Mul(securityDayMultiple).RoundBank(0)
	return row, true
}
