// Package audit 는 일자별 수집 감사 집계를 PostgreSQL 에 적재한다.
// 기록 실패는 수집 요청을 막지 않는다.
package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/park285/comment-insight-go/internal/config"
)

// Recorder 는 수집별 감사 증분을 저장하거나 배치로 적재한다.
type Recorder struct {
	repo    *Repository
	batcher *batcher
	logger  *slog.Logger
}

// NewRecorder 는 설정에 따라 배치 사용 여부를 결정해 Recorder를 생성한다.
func NewRecorder(cfg *config.Config, repo *Repository, logger *slog.Logger) *Recorder {
	recorder := &Recorder{
		repo:   repo,
		logger: logger,
	}

	if cfg != nil && cfg.Database.AuditBatchEnabled {
		recorder.batcher = newBatcher(cfg, repo, logger)
		recorder.batcher.start()
		if logger != nil {
			logger.Info(
				"audit_db_batch_enabled",
				"flush_interval_seconds", cfg.Database.AuditFlushIntervalSeconds,
				"flush_timeout_seconds", cfg.Database.AuditFlushTimeoutSeconds,
				"max_pending_batches", cfg.Database.AuditMaxPendingBatches,
				"max_backoff_seconds", cfg.Database.AuditMaxBackoffSeconds,
				"error_log_max_interval_seconds", cfg.Database.AuditErrorLogMaxIntervalSeconds,
			)
		}
	}

	return recorder
}

// Record 는 수집 1회분의 감사 증분을 기록한다.
func (r *Recorder) Record(ctx context.Context, delta Delta) {
	if r == nil || r.repo == nil {
		return
	}
	if delta.empty() {
		return
	}

	if r.batcher != nil {
		r.batcher.add(delta)
		return
	}

	if err := r.repo.RecordIngest(ctx, delta, time.Time{}); err != nil {
		if r.logger != nil {
			r.logger.Warn("audit_db_save_failed", "err", err)
		}
	}
}

// Close 는 배치 플러셔를 중지한다.
func (r *Recorder) Close() {
	if r == nil || r.batcher == nil {
		return
	}
	r.batcher.stop()
}
