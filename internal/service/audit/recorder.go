// Package audit records every mutation as an append-only change-log entry.
// Recording is synchronous with the triggering operation but deliberately
// decoupled from its outcome: an audit failure is logged and swallowed,
// never surfaced to the caller.
package audit

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/linsamsir/pro-erp/internal/domain/models"
)

// Store is the append-only persistence behind the recorder.
type Store interface {
	AppendAuditEntry(ctx context.Context, entry models.AuditEntry) error
	// EvictOldestAuditEntries removes the oldest entries until at most cap remain.
	EvictOldestAuditEntries(ctx context.Context, cap int) error
}

// Recorder writes audit entries with a FIFO size cap.
type Recorder struct {
	store  Store
	cap    int
	logger *zap.Logger
	now    func() time.Time
}

// NewRecorder constructs an audit recorder with the given retention cap.
func NewRecorder(store Store, cap int, logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cap <= 0 {
		cap = 2000
	}
	return &Recorder{store: store, cap: cap, logger: logger, now: time.Now}
}

// Entry is the caller-facing payload for one audit record. Before/After
// may be arbitrary values; the recorder snapshots them safely.
type Entry struct {
	Module  string
	Action  models.AuditAction
	Target  models.AuditTarget
	Summary string
	Before  any
	After   any
}

// Record captures one audit entry. It never returns an error: persistence
// problems must not abort the mutation being audited. An absent actor is
// attributed to the System identity.
func (r *Recorder) Record(ctx context.Context, actor models.Actor, entry Entry) {
	if actor.IsZero() {
		actor = models.SystemActor
	}

	record := models.AuditEntry{
		Timestamp: r.now().UTC(),
		Actor:     actor,
		Module:    entry.Module,
		Action:    entry.Action,
		Target:    entry.Target,
		Summary:   entry.Summary,
		Before:    Snapshot(entry.Before),
		After:     Snapshot(entry.After),
	}

	if err := r.store.AppendAuditEntry(ctx, record); err != nil {
		r.logger.Warn("audit append failed",
			zap.String("module", entry.Module),
			zap.String("action", string(entry.Action)),
			zap.Error(err))
		return
	}

	if err := r.store.EvictOldestAuditEntries(ctx, r.cap); err != nil {
		r.logger.Warn("audit eviction failed", zap.Error(err))
	}
}
