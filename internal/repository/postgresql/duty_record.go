package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/manel-hris/attendance-payroll/internal/domain/employee"
	"github.com/manel-hris/attendance-payroll/internal/domain/holiday"
	"github.com/manel-hris/attendance-payroll/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type dutyRecordRepositoryImpl struct {
	db *database.DB
}

func NewDutyRecordRepository(db *database.DB) holiday.DutyRecordRepository {
	return &dutyRecordRepositoryImpl{db: db}
}

var dutyRecordColumns = []string{
	"holiday_id", "record_kind", "emp_id", "emp_name", "designation", "section", "sub_section", "category",
	"gross_salary", "basic_salary", "in_time", "out_time", "work_hours", "ot_hours", "ot_rate", "amount",
	"is_manual", "remarks",
}

// numeric converts a decimal for binary COPY.
func numeric(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{Int: d.Coefficient(), Exp: d.Exponent(), Valid: true}
}

// DeleteByHoliday implements holiday.DutyRecordRepository.
func (r *dutyRecordRepositoryImpl) DeleteByHoliday(ctx context.Context, holidayID int64) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM holiday_duty_records WHERE holiday_id = $1`, holidayID); err != nil {
		return fmt.Errorf("failed to delete duty records of holiday %d: %w", holidayID, err)
	}
	return nil
}

// BulkInsert implements holiday.DutyRecordRepository.
func (r *dutyRecordRepositoryImpl) BulkInsert(ctx context.Context, records []holiday.DutyRecord) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}
	q := GetQuerier(ctx, r.db)

	n, err := q.CopyFrom(ctx, pgx.Identifier{"holiday_duty_records"}, dutyRecordColumns,
		pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
			rec := records[i]
			return []any{
				rec.HolidayID, string(rec.Kind), rec.EmployeeID, rec.Name, rec.Designation,
				rec.Section, rec.SubSection, rec.Category,
				numeric(rec.Gross), numeric(rec.Basic), rec.InTime, rec.OutTime,
				numeric(rec.WorkHours), numeric(rec.OTHours), numeric(rec.OTRate), numeric(rec.Amount),
				rec.IsManual, rec.Remarks,
			}, nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to copy duty records: %w", err)
	}
	return n, nil
}

const dutyRecordSelect = `
	SELECT id, holiday_id, record_kind, emp_id, COALESCE(emp_name, ''), COALESCE(designation, ''),
		COALESCE(section, ''), COALESCE(sub_section, ''), COALESCE(category, ''),
		COALESCE(gross_salary, 0), COALESCE(basic_salary, 0), COALESCE(in_time, ''), COALESCE(out_time, ''),
		COALESCE(work_hours, 0), COALESCE(ot_hours, 0), COALESCE(ot_rate, 0), COALESCE(amount, 0),
		is_manual, COALESCE(remarks, ''), created_at
	FROM holiday_duty_records
`

// placementFilter matches $3..$5 case-insensitively; empty values match all.
const placementFilter = `
	($3::text = '' OR LOWER(section) = LOWER($3::text))
	AND ($4::text = '' OR LOWER(sub_section) = LOWER($4::text))
	AND ($5::text = '' OR LOWER(category) = LOWER($5::text))
`

// ListByHoliday implements holiday.DutyRecordRepository.
func (r *dutyRecordRepositoryImpl) ListByHoliday(ctx context.Context, holidayID int64, kind holiday.RecordKind, filter employee.Filter) ([]holiday.DutyRecord, error) {
	query := dutyRecordSelect + `
		WHERE holiday_id = $1 AND record_kind = $2 AND ` + placementFilter + `
		ORDER BY id
	`
	return r.list(ctx, query, holidayID, string(kind), filter)
}

// ListSnapshot implements holiday.DutyRecordRepository. Payment and security
// rows come from one statement, so both kinds belong to the same snapshot.
func (r *dutyRecordRepositoryImpl) ListSnapshot(ctx context.Context, holidayID int64, filter employee.Filter) ([]holiday.DutyRecord, error) {
	query := dutyRecordSelect + `
		WHERE holiday_id = $1
			AND (record_kind = $2 OR (record_kind = $6 AND ` + placementFilter + `))
		ORDER BY id
	`
	return r.list(ctx, query, holidayID, string(holiday.RecordSecurity), filter, string(holiday.RecordPayment))
}

func (r *dutyRecordRepositoryImpl) list(ctx context.Context, query string, holidayID int64, kind string, filter employee.Filter, extra ...any) ([]holiday.DutyRecord, error) {
	q := GetQuerier(ctx, r.db)

	args := append([]any{holidayID, kind, filter.Section, filter.SubSection, filter.Category}, extra...)
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list duty records of holiday %d: %w", holidayID, err)
	}
	defer rows.Close()

	var records []holiday.DutyRecord
	for rows.Next() {
		var rec holiday.DutyRecord
		err := rows.Scan(
			&rec.ID, &rec.HolidayID, &rec.Kind, &rec.EmployeeID, &rec.Name, &rec.Designation,
			&rec.Section, &rec.SubSection, &rec.Category,
			&rec.Gross, &rec.Basic, &rec.InTime, &rec.OutTime,
			&rec.WorkHours, &rec.OTHours, &rec.OTRate, &rec.Amount,
			&rec.IsManual, &rec.Remarks, &rec.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan duty record: %w", err)
		}
		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
