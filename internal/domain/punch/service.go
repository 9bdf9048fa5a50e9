package punch

import (
	"context"
	"time"
)

// AttendanceReader is what the payment engine needs from the punch store.
type AttendanceReader interface {
	// AttendanceForDate maps employee code to the day's in/out pair; employees
	// without any punch are absent from the map
	AttendanceForDate(ctx context.Context, date time.Time, employeeCodes []string) (map[string]Attendance, error)
}

// PunchService defines the manual-entry pathway and attendance lookups
type PunchService interface {
	AttendanceReader

	// AddManualPunch creates or moves the employee's manual punch for the session
	AddManualPunch(ctx context.Context, req ManualPunchRequest) (ManualPunchResponse, error)

	// DeleteManualPunch removes a manual correction; synced punches are refused
	DeleteManualPunch(ctx context.Context, id int64) error

	// AttendanceStatus shows one employee's raw in/out and punches for a day
	AttendanceStatus(ctx context.Context, req AttendanceStatusRequest) (AttendanceStatusResponse, error)
}

// SyncService replicates punches from the upstream terminal database
type SyncService interface {
	Sync(ctx context.Context) (SyncResult, error)
}
