package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/manel-hris/attendance-payroll/internal/domain/punch"
	"github.com/manel-hris/attendance-payroll/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPunchRepository_InsertSyncedIsIdempotent(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewPunchRepository(setup.DB)

	day := time.Date(2026, 3, 26, 0, 0, 0, 0, time.UTC)
	batch := []punch.UpstreamPunch{
		{SourceID: 1, EmployeeCode: " 101 ", PunchTime: day.Add(8 * time.Hour)},
		{SourceID: 2, EmployeeCode: "101", PunchTime: day.Add(17*time.Hour + 30*time.Minute)},
	}

	n, err := repo.InsertSynced(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = repo.InsertSynced(ctx, batch)
	require.NoError(t, err)
	assert.Zero(t, n)

	max, err := repo.MaxSyncID(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), max)

	punches, err := repo.ListByDate(ctx, day, []string{"101"})
	require.NoError(t, err)
	require.Len(t, punches, 2)
	assert.Equal(t, "101", punches[0].EmployeeCode)
	assert.False(t, punches[0].IsManual)
}

func TestPunchRepository_ManualPunchLifecycle(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewPunchRepository(setup.DB)

	day := time.Date(2026, 3, 26, 0, 0, 0, 0, time.UTC)
	created, err := repo.CreateManual(ctx, "101", day.Add(8*time.Hour))
	require.NoError(t, err)
	assert.True(t, created.IsManual)

	found, err := repo.FindManual(ctx, "101", day, punch.SessionMorning)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.ID, found.ID)

	none, err := repo.FindManual(ctx, "101", day, punch.SessionAfternoon)
	require.NoError(t, err)
	assert.Nil(t, none)

	require.NoError(t, repo.DeleteManual(ctx, created.ID))
	assert.ErrorIs(t, repo.DeleteManual(ctx, created.ID), punch.ErrPunchNotFound)
}

func TestPunchRepository_SyncLockIsExclusive(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewPunchRepository(setup.DB)

	release, ok, err := repo.TryLockSync(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = repo.TryLockSync(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	release()

	release, ok, err = repo.TryLockSync(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	release()
}

func TestPunchRepository_ManualSlotLockBlocksSecondWriter(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewPunchRepository(setup.DB)
	day := time.Date(2026, 3, 26, 0, 0, 0, 0, time.UTC)

	assert.Error(t, repo.LockManualSlot(ctx, "101", day, punch.SessionMorning))

	held := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = postgresql.WithTransaction(ctx, setup.DB, func(txCtx context.Context) error {
			if err := repo.LockManualSlot(txCtx, "101", day, punch.SessionMorning); err != nil {
				close(held)
				return err
			}
			close(held)
			time.Sleep(500 * time.Millisecond)
			return nil
		})
	}()
	<-held

	short, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
	defer cancel()
	err := postgresql.WithTransaction(short, setup.DB, func(txCtx context.Context) error {
		return repo.LockManualSlot(txCtx, "101", day, punch.SessionMorning)
	})
	assert.Error(t, err)

	// another session of the same day is independent
	err = postgresql.WithTransaction(ctx, setup.DB, func(txCtx context.Context) error {
		return repo.LockManualSlot(txCtx, "101", day, punch.SessionAfternoon)
	})
	assert.NoError(t, err)

	<-done
	err = postgresql.WithTransaction(ctx, setup.DB, func(txCtx context.Context) error {
		return repo.LockManualSlot(txCtx, "101", day, punch.SessionMorning)
	})
	assert.NoError(t, err)
}
