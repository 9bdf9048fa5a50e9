package holiday

import "errors"

var (
	ErrHolidayNotFound        = errors.New("holiday not found")
	ErrHolidayDateExists      = errors.New("a holiday already exists for this date")
	ErrHolidayFinalized       = errors.New("holiday is finalized")
	ErrHolidayNotProcessed    = errors.New("holiday has not been processed")
	ErrHolidayNotFinalized    = errors.New("holiday is not finalized")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
)
