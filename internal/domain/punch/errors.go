package punch

import "errors"

var (
	ErrPunchNotFound      = errors.New("punch record not found")
	ErrPunchNotManual     = errors.New("only manually entered punches can be changed")
	ErrSyncAlreadyRunning = errors.New("punch sync is already running")
	ErrMalformedBatch     = errors.New("upstream batch is malformed")
	ErrUpstreamNotWired   = errors.New("upstream punch source is not configured")
)
