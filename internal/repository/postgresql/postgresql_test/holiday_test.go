package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/manel-hris/attendance-payroll/internal/domain/employee"
	"github.com/manel-hris/attendance-payroll/internal/domain/holiday"
	"github.com/manel-hris/attendance-payroll/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHolidayRepository_CreateDuplicateDate(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewHolidayRepository(setup.DB)

	date := time.Date(2026, 3, 26, 0, 0, 0, 0, time.UTC)
	created, err := repo.Create(ctx, holiday.Holiday{Date: date, Name: "Independence Day", Status: holiday.StatusDraft})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, holiday.StatusDraft, created.Status)

	_, err = repo.Create(ctx, holiday.Holiday{Date: date, Name: "Again", Status: holiday.StatusDraft})
	assert.ErrorIs(t, err, holiday.ErrHolidayDateExists)

	found, err := repo.GetByDate(ctx, date)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.ID, found.ID)

	none, err := repo.GetByDate(ctx, date.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestHolidayRepository_NotFound(t *testing.T) {
	setup := NewTestDatabase(t)
	repo := postgresql.NewHolidayRepository(setup.DB)

	_, err := repo.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, holiday.ErrHolidayNotFound)
}

func TestDutyRecordRepository_CopyAndFilter(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	holidays := postgresql.NewHolidayRepository(setup.DB)
	records := postgresql.NewDutyRecordRepository(setup.DB)

	h, err := holidays.Create(ctx, holiday.Holiday{
		Date:   time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		Name:   "May Day",
		Status: holiday.StatusDraft,
	})
	require.NoError(t, err)

	n, err := records.BulkInsert(ctx, []holiday.DutyRecord{
		{HolidayID: h.ID, Kind: holiday.RecordPayment, EmployeeID: "101", Name: "Rahim", Section: "Sewing", Category: "Worker",
			Gross: decimal.NewFromInt(11900), Basic: decimal.NewFromInt(6300), InTime: "08:00 AM", OutTime: "05:30 PM",
			WorkHours: decimal.RequireFromString("7.83"), OTHours: decimal.RequireFromString("7.83"),
			OTRate: decimal.RequireFromString("80.45"), Amount: decimal.NewFromInt(630)},
		{HolidayID: h.ID, Kind: holiday.RecordPayment, EmployeeID: "102", Name: "Karim", Section: "Cutting", Category: "Staff",
			Amount: decimal.NewFromInt(279), IsManual: true},
		{HolidayID: h.ID, Kind: holiday.RecordSecurity, EmployeeID: "900", Name: "Guard", Section: "Admin",
			Amount: decimal.NewFromInt(558)},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	payment, err := records.ListByHoliday(ctx, h.ID, holiday.RecordPayment, employee.Filter{Section: "sewing"})
	require.NoError(t, err)
	require.Len(t, payment, 1)
	assert.Equal(t, "101", payment[0].EmployeeID)
	assert.True(t, decimal.RequireFromString("80.45").Equal(payment[0].OTRate))
	assert.True(t, decimal.NewFromInt(630).Equal(payment[0].Amount))

	security, err := records.ListByHoliday(ctx, h.ID, holiday.RecordSecurity, employee.Filter{})
	require.NoError(t, err)
	require.Len(t, security, 1)

	// the filter narrows payment rows only
	snapshot, err := records.ListSnapshot(ctx, h.ID, employee.Filter{Section: "CUTTING"})
	require.NoError(t, err)
	require.Len(t, snapshot, 2)
	assert.Equal(t, "102", snapshot[0].EmployeeID)
	assert.Equal(t, holiday.RecordSecurity, snapshot[1].Kind)

	got, err := holidays.GetByID(ctx, h.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.RecordCount)

	require.NoError(t, records.DeleteByHoliday(ctx, h.ID))
	payment, err = records.ListByHoliday(ctx, h.ID, holiday.RecordPayment, employee.Filter{})
	require.NoError(t, err)
	assert.Empty(t, payment)
}
