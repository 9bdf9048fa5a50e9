package punch

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/manel-hris/attendance-payroll/internal/domain/employee"
	"github.com/manel-hris/attendance-payroll/internal/domain/punch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory punch store. Its transactor snapshots the rows
// before fn and restores them when fn fails.
type memStore struct {
	mu      sync.Mutex
	punches []punch.Punch
	nextID  int64
	locked  bool
	slots   map[string]*sync.Mutex

	failInsertCall int // 1-based InsertSynced call that fails halfway, 0 never
	insertCalls    int
}

func newMemStore() *memStore {
	return &memStore{nextID: 1, slots: map[string]*sync.Mutex{}}
}

type memTxKey struct{}

// memTx collects the slot unlocks to run when the transaction ends.
type memTx struct {
	release []func()
}

func (m *memStore) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	saved := append([]punch.Punch(nil), m.punches...)
	next := m.nextID
	m.mu.Unlock()

	tx := &memTx{}
	defer func() {
		for _, release := range tx.release {
			release()
		}
	}()

	if err := fn(context.WithValue(ctx, memTxKey{}, tx)); err != nil {
		m.mu.Lock()
		m.punches, m.nextID = saved, next
		m.mu.Unlock()
		return err
	}
	return nil
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func (m *memStore) ListByDate(ctx context.Context, date time.Time, codes []string) ([]punch.Punch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []punch.Punch
	for _, p := range m.punches {
		if !sameDay(p.PunchTime, date) {
			continue
		}
		if len(codes) > 0 {
			found := false
			for _, c := range codes {
				if c == strings.TrimSpace(p.EmployeeCode) {
					found = true
				}
			}
			if !found {
				continue
			}
		}
		out = append(out, p)
	}
	return out, nil
}

func (m *memStore) ListForEmployeeDate(ctx context.Context, code string, date time.Time) ([]punch.Punch, error) {
	out, _ := m.ListByDate(ctx, date, []string{code})
	sort.Slice(out, func(i, j int) bool { return out[i].PunchTime.Before(out[j].PunchTime) })
	return out, nil
}

func (m *memStore) GetByID(ctx context.Context, id int64) (punch.Punch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.punches {
		if p.ID == id {
			return p, nil
		}
	}
	return punch.Punch{}, punch.ErrPunchNotFound
}

func (m *memStore) LockManualSlot(ctx context.Context, code string, date time.Time, session punch.Session) error {
	tx, ok := ctx.Value(memTxKey{}).(*memTx)
	if !ok {
		return errors.New("no transaction")
	}
	key := code + "|" + date.Format("2006-01-02") + "|" + string(session)

	m.mu.Lock()
	slot, ok := m.slots[key]
	if !ok {
		slot = &sync.Mutex{}
		m.slots[key] = slot
	}
	m.mu.Unlock()

	slot.Lock()
	tx.release = append(tx.release, slot.Unlock)
	return nil
}

func (m *memStore) FindManual(ctx context.Context, code string, date time.Time, session punch.Session) (*punch.Punch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.punches {
		if p.IsManual && p.EmployeeCode == code && sameDay(p.PunchTime, date) && punch.SessionOf(p.PunchTime) == session {
			found := p
			return &found, nil
		}
	}
	return nil, nil
}

func (m *memStore) CreateManual(ctx context.Context, code string, at time.Time) (punch.Punch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := punch.Punch{ID: m.nextID, EmployeeCode: code, PunchTime: at, IsManual: true}
	m.nextID++
	m.punches = append(m.punches, p)
	return p, nil
}

func (m *memStore) UpdatePunchTime(ctx context.Context, id int64, at time.Time) (punch.Punch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, p := range m.punches {
		if p.ID == id {
			m.punches[i].PunchTime = at
			return m.punches[i], nil
		}
	}
	return punch.Punch{}, punch.ErrPunchNotFound
}

func (m *memStore) DeleteManual(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, p := range m.punches {
		if p.ID == id && p.IsManual {
			m.punches = append(m.punches[:i], m.punches[i+1:]...)
			return nil
		}
	}
	return punch.ErrPunchNotFound
}

func (m *memStore) MaxSyncID(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var max int64
	for _, p := range m.punches {
		if p.SyncID != nil && *p.SyncID > max {
			max = *p.SyncID
		}
	}
	return max, nil
}

func (m *memStore) InsertSynced(ctx context.Context, batch []punch.UpstreamPunch) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.insertCalls++

	inserted := 0
	for i, u := range batch {
		if m.insertCalls == m.failInsertCall && i == len(batch)/2 {
			return inserted, errors.New("connection lost")
		}
		if m.hasSyncID(u.SourceID) {
			continue
		}
		id := u.SourceID
		m.punches = append(m.punches, punch.Punch{ID: m.nextID, EmployeeCode: u.EmployeeCode, PunchTime: u.PunchTime, SyncID: &id})
		m.nextID++
		inserted++
	}
	return inserted, nil
}

func (m *memStore) hasSyncID(id int64) bool {
	for _, p := range m.punches {
		if p.SyncID != nil && *p.SyncID == id {
			return true
		}
	}
	return false
}

func (m *memStore) TryLockSync(ctx context.Context) (func(), bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locked {
		return nil, false, nil
	}
	m.locked = true
	return func() {
		m.mu.Lock()
		m.locked = false
		m.mu.Unlock()
	}, true, nil
}

func (m *memStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.punches)
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	getByIDFn func(ctx context.Context, id string) (employee.Employee, error)
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	return f.getByIDFn(ctx, id)
}

func knownEmployees(ids ...string) *fakeEmployeeRepo {
	return &fakeEmployeeRepo{
		getByIDFn: func(ctx context.Context, id string) (employee.Employee, error) {
			for _, known := range ids {
				if known == id {
					return employee.Employee{ID: id}, nil
				}
			}
			return employee.Employee{}, employee.ErrEmployeeNotFound
		},
	}
}

func at(hour, minute int) time.Time {
	return time.Date(2026, 3, 10, hour, minute, 0, 0, time.UTC)
}

func TestAddManualPunch_UpsertsPerSession(t *testing.T) {
	store := newMemStore()
	svc := NewPunchService(store, store, knownEmployees("1042"))
	ctx := context.Background()

	first, err := svc.AddManualPunch(ctx, punch.ManualPunchRequest{EmployeeCode: "1042", Date: "2026-03-10", Time: "08:05"})
	require.NoError(t, err)
	assert.Equal(t, punch.UpsertCreated, first.Result)
	assert.Equal(t, punch.SessionMorning, first.Punch.Session)

	moved, err := svc.AddManualPunch(ctx, punch.ManualPunchRequest{EmployeeCode: "1042", Date: "2026-03-10", Time: "07:55"})
	require.NoError(t, err)
	assert.Equal(t, punch.UpsertUpdated, moved.Result)
	assert.Equal(t, first.Punch.ID, moved.Punch.ID)
	assert.Equal(t, "2026-03-10 07:55:00", moved.Punch.PunchTime)

	afternoon, err := svc.AddManualPunch(ctx, punch.ManualPunchRequest{EmployeeCode: "1042", Date: "2026-03-10", Time: "17:30"})
	require.NoError(t, err)
	assert.Equal(t, punch.UpsertCreated, afternoon.Result)
	assert.Equal(t, 2, store.count())

	att, err := svc.AttendanceForDate(ctx, at(0, 0), []string{"1042"})
	require.NoError(t, err)
	assert.Equal(t, at(7, 55), *att["1042"].InTime)
	assert.Equal(t, at(17, 30), *att["1042"].OutTime)
	assert.True(t, att["1042"].Manual())
}

func TestAddManualPunch_ConcurrentWritesKeepOnePunchPerSession(t *testing.T) {
	store := newMemStore()
	svc := NewPunchService(store, store, knownEmployees("1042"))

	const writers = 8
	results := make(chan punch.UpsertResult, writers)
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(minute int) {
			defer wg.Done()
			resp, err := svc.AddManualPunch(context.Background(), punch.ManualPunchRequest{
				EmployeeCode: "1042", Date: "2026-03-10", Time: fmt.Sprintf("08:%02d", minute),
			})
			assert.NoError(t, err)
			results <- resp.Result
		}(i)
	}
	wg.Wait()
	close(results)

	created := 0
	for r := range results {
		if r == punch.UpsertCreated {
			created++
		}
	}
	assert.Equal(t, 1, created)
	assert.Equal(t, 1, store.count())
}

func TestAddManualPunch_LeavesSyncedPunchesAlone(t *testing.T) {
	store := newMemStore()
	_, err := store.InsertSynced(context.Background(), []punch.UpstreamPunch{{SourceID: 9, EmployeeCode: "7", PunchTime: at(8, 20)}})
	require.NoError(t, err)
	svc := NewPunchService(store, store, knownEmployees("7"))

	resp, err := svc.AddManualPunch(context.Background(), punch.ManualPunchRequest{EmployeeCode: "7", Date: "2026-03-10", Time: "08:00"})

	require.NoError(t, err)
	assert.Equal(t, punch.UpsertCreated, resp.Result)
	synced, err := store.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, at(8, 20), synced.PunchTime)
}

func TestAddManualPunch_Errors(t *testing.T) {
	store := newMemStore()
	svc := NewPunchService(store, store, knownEmployees("1"))
	ctx := context.Background()

	_, err := svc.AddManualPunch(ctx, punch.ManualPunchRequest{EmployeeCode: "1", Date: "2026-03-10", Time: "8am"})
	assert.Error(t, err)

	_, err = svc.AddManualPunch(ctx, punch.ManualPunchRequest{EmployeeCode: "2", Date: "2026-03-10", Time: "08:00"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	assert.Zero(t, store.count())
}

func TestDeleteManualPunch(t *testing.T) {
	store := newMemStore()
	_, err := store.InsertSynced(context.Background(), []punch.UpstreamPunch{{SourceID: 1, EmployeeCode: "7", PunchTime: at(8, 20)}})
	require.NoError(t, err)
	svc := NewPunchService(store, store, knownEmployees("7"))
	ctx := context.Background()

	assert.ErrorIs(t, svc.DeleteManualPunch(ctx, 1), punch.ErrPunchNotManual)
	assert.ErrorIs(t, svc.DeleteManualPunch(ctx, 99), punch.ErrPunchNotFound)

	manual, err := svc.AddManualPunch(ctx, punch.ManualPunchRequest{EmployeeCode: "7", Date: "2026-03-10", Time: "18:00"})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteManualPunch(ctx, manual.Punch.ID))
	assert.Equal(t, 1, store.count())
}

func TestAttendanceStatus(t *testing.T) {
	store := newMemStore()
	_, err := store.InsertSynced(context.Background(), []punch.UpstreamPunch{
		{SourceID: 1, EmployeeCode: "7", PunchTime: at(12, 10)},
		{SourceID: 2, EmployeeCode: "7", PunchTime: at(8, 20)},
	})
	require.NoError(t, err)
	svc := NewPunchService(store, store, knownEmployees("7"))

	resp, err := svc.AttendanceStatus(context.Background(), punch.AttendanceStatusRequest{EmployeeCode: "7", Date: "2026-03-10"})

	require.NoError(t, err)
	assert.Equal(t, "08:20", resp.InTime)
	assert.Equal(t, "Missing", resp.OutTime)
	require.Len(t, resp.Punches, 2)
	assert.Equal(t, "2026-03-10 08:20:00", resp.Punches[0].PunchTime)
}
