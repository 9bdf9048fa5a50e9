package http

import (
	"net/http"

	"github.com/manel-hris/attendance-payroll/internal/domain/punch"
	"github.com/manel-hris/attendance-payroll/internal/handler/http/response"
)

type SyncHandler interface {
	Run(w http.ResponseWriter, r *http.Request)
}

type syncHandlerImpl struct {
	syncService punch.SyncService
}

func NewSyncHandler(syncService punch.SyncService) SyncHandler {
	return &syncHandlerImpl{
		syncService: syncService,
	}
}

// Run handles POST /sync/run
func (h *syncHandlerImpl) Run(w http.ResponseWriter, r *http.Request) {
	result, err := h.syncService.Sync(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Punch sync completed", result)
}
