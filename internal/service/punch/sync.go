package punch

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/manel-hris/attendance-payroll/internal/domain/punch"
	"github.com/manel-hris/attendance-payroll/internal/pkg/database"
)

const DefaultSyncBatchSize = 100

type SyncServiceImpl struct {
	database.Transactor
	punchRepo punch.PunchRepository
	source    punch.UpstreamSource
	batchSize int
}

func NewSyncService(tx database.Transactor, punchRepo punch.PunchRepository, source punch.UpstreamSource, batchSize int) punch.SyncService {
	if batchSize <= 0 {
		batchSize = DefaultSyncBatchSize
	}
	return &SyncServiceImpl{
		Transactor: tx,
		punchRepo:  punchRepo,
		source:     source,
		batchSize:  batchSize,
	}
}

// Sync copies upstream punches newer than the local watermark in batches.
// Each batch commits on its own; a failed batch rolls back alone and the
// result still reports what was committed before it.
func (s *SyncServiceImpl) Sync(ctx context.Context) (punch.SyncResult, error) {
	result := punch.SyncResult{RunID: uuid.NewString()}
	if s.source == nil {
		return result, punch.ErrUpstreamNotWired
	}

	release, acquired, err := s.punchRepo.TryLockSync(ctx)
	if err != nil {
		return result, fmt.Errorf("sync %s: acquire lock: %w", result.RunID, err)
	}
	if !acquired {
		return result, punch.ErrSyncAlreadyRunning
	}
	defer release()

	watermark, err := s.punchRepo.MaxSyncID(ctx)
	if err != nil {
		return result, fmt.Errorf("sync %s: read watermark: %w", result.RunID, err)
	}
	result.Watermark = watermark

	log := slog.With("run_id", result.RunID)
	log.Info("punch sync started", "watermark", watermark, "batch_size", s.batchSize)

	for {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		batch, err := s.source.FetchAfter(ctx, result.Watermark, s.batchSize)
		if err != nil {
			return result, fmt.Errorf("sync %s: fetch after %d: %w", result.RunID, result.Watermark, err)
		}
		if len(batch) == 0 {
			break
		}
		if err := validateBatch(result.Watermark, batch); err != nil {
			return result, fmt.Errorf("sync %s: batch after %d: %w", result.RunID, result.Watermark, err)
		}

		var inserted int
		err = s.WithinTransaction(ctx, func(txCtx context.Context) error {
			inserted, err = s.punchRepo.InsertSynced(txCtx, batch)
			return err
		})
		if err != nil {
			log.Error("punch sync batch failed", "after", result.Watermark, "synced", result.Synced, "error", err)
			return result, fmt.Errorf("sync %s: insert batch after %d: %w", result.RunID, result.Watermark, err)
		}

		result.Synced += inserted
		result.Batches++
		result.Watermark = batch[len(batch)-1].SourceID
		log.Debug("punch sync batch committed", "inserted", inserted, "watermark", result.Watermark)

		if len(batch) < s.batchSize {
			break
		}
	}

	log.Info("punch sync finished", "synced", result.Synced, "batches", result.Batches, "watermark", result.Watermark)
	return result, nil
}

// validateBatch checks source ids strictly increase past the watermark and
// every row names an employee.
func validateBatch(after int64, batch []punch.UpstreamPunch) error {
	prev := after
	for _, p := range batch {
		if p.SourceID <= prev {
			return fmt.Errorf("%w: source id %d not after %d", punch.ErrMalformedBatch, p.SourceID, prev)
		}
		if strings.TrimSpace(p.EmployeeCode) == "" {
			return fmt.Errorf("%w: source id %d has no employee code", punch.ErrMalformedBatch, p.SourceID)
		}
		prev = p.SourceID
	}
	return nil
}
