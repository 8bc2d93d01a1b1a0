package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/park285/comment-insight-go/internal/config"
)

const defaultFlushTimeout = 5 * time.Second

// batcher 는 수집 감사 증분을 배치로 DB에 플러시한다.
type batcher struct {
	repo                     *Repository
	logger                   *slog.Logger
	flushInterval            time.Duration
	flushTimeout             time.Duration
	maxPendingBatches        int
	maxBackoff               time.Duration
	errorLogMaxInterval      time.Duration
	mu                       sync.Mutex
	pending                  map[time.Time]*Delta
	pendingBatchesTotal      int
	wakeup                   chan struct{}
	stopCh                   chan struct{}
	doneCh                   chan struct{}
	consecutiveFlushFailures int
	nextFlushAllowedAt       time.Time
	lastErrorLoggedAt        time.Time
	flushSuccessTotal        int
	flushFailureTotal        int
	flushRequeuedTotal       int
	flushDroppedTotal        int
}

// newBatcher 새로운 배치 플러셔 생성
func newBatcher(cfg *config.Config, repo *Repository, logger *slog.Logger) *batcher {
	interval := time.Duration(cfg.Database.AuditFlushIntervalSeconds) * time.Second
	if interval <= 0 {
		interval = time.Second
	}
	maxBackoff := time.Duration(cfg.Database.AuditMaxBackoffSeconds) * time.Second
	if maxBackoff <= 0 {
		maxBackoff = interval
	}
	maxPending := cfg.Database.AuditMaxPendingBatches
	if maxPending <= 0 {
		maxPending = 1
	}
	flushTimeout := defaultFlushTimeout
	if cfg.Database.AuditFlushTimeoutSeconds > 0 {
		flushTimeout = time.Duration(cfg.Database.AuditFlushTimeoutSeconds) * time.Second
	}
	if flushTimeout <= 0 {
		flushTimeout = interval
	}
	return &batcher{
		repo:                repo,
		logger:              logger,
		flushInterval:       interval,
		flushTimeout:        flushTimeout,
		maxPendingBatches:   maxPending,
		maxBackoff:          maxBackoff,
		errorLogMaxInterval: time.Duration(cfg.Database.AuditErrorLogMaxIntervalSeconds) * time.Second,
		pending:             make(map[time.Time]*Delta),
		wakeup:              make(chan struct{}, 1),
		stopCh:              make(chan struct{}),
		doneCh:              make(chan struct{}),
	}
}

func (b *batcher) start() {
	go b.loop()
}

func (b *batcher) stop() {
	close(b.stopCh)
	<-b.doneCh
}

func (b *batcher) add(delta Delta) {
	if delta.empty() {
		return
	}

	targetDate := todayDate()
	b.mu.Lock()
	pending := b.pending[targetDate]
	if pending == nil {
		pending = &Delta{}
		b.pending[targetDate] = pending
	}
	pending.Files += delta.Files
	pending.RowsParsed += delta.RowsParsed
	pending.RowsKept += delta.RowsKept
	pending.Comments += delta.Comments
	pending.Videos += delta.Videos
	pending.SpamHits += delta.SpamHits
	b.pendingBatchesTotal++
	shouldFlush := b.pendingBatchesTotal >= b.maxPendingBatches
	b.mu.Unlock()

	if shouldFlush {
		b.signal()
	}
}

func (b *batcher) loop() {
	ticker := time.NewTicker(b.flushInterval)
	defer func() {
		ticker.Stop()
		close(b.doneCh)
	}()

	for {
		select {
		case <-ticker.C:
			b.flush(false)
		case <-b.wakeup:
			b.flush(false)
		case <-b.stopCh:
			b.flush(true)
			return
		}
	}
}

func (b *batcher) signal() {
	select {
	case b.wakeup <- struct{}{}:
	default:
	}
}

func (b *batcher) flush(isShutdown bool) {
	if b.shouldSkipFlush(isShutdown) {
		return
	}

	snapshot := b.takeSnapshot()
	if len(snapshot) == 0 {
		return
	}

	hadFailure, firstErr := b.applySnapshot(snapshot, isShutdown)
	if hadFailure {
		b.registerFailure(firstErr)
		return
	}

	b.resetFailures()
}

func (b *batcher) shouldSkipFlush(isShutdown bool) bool {
	if isShutdown {
		return false
	}
	if b.nextFlushAllowedAt.IsZero() {
		return false
	}
	return time.Now().Before(b.nextFlushAllowedAt)
}

func (b *batcher) takeSnapshot() map[time.Time]Delta {
	snapshot := make(map[time.Time]Delta)
	b.mu.Lock()
	for date, delta := range b.pending {
		snapshot[date] = *delta
	}
	b.pending = make(map[time.Time]*Delta)
	b.pendingBatchesTotal = 0
	b.mu.Unlock()
	return snapshot
}

func (b *batcher) applySnapshot(snapshot map[time.Time]Delta, isShutdown bool) (bool, error) {
	hadFailure := false
	var firstErr error
	for date, delta := range snapshot {
		ctx := context.Background()
		cancel := func() {}
		if b.flushTimeout > 0 {
			ctx, cancel = context.WithTimeout(ctx, b.flushTimeout)
		}
		err := b.repo.RecordIngest(ctx, delta, date)
		cancel()
		if err != nil {
			hadFailure = true
			if firstErr == nil {
				firstErr = err
			}
			b.flushFailureTotal++
			if isShutdown {
				b.flushDroppedTotal++
				continue
			}
			b.requeue(date, delta)
			b.flushRequeuedTotal++
			continue
		}
		b.flushSuccessTotal++
	}
	return hadFailure, firstErr
}

func (b *batcher) requeue(date time.Time, delta Delta) {
	b.mu.Lock()
	existing := b.pending[date]
	if existing == nil {
		existing = &Delta{}
		b.pending[date] = existing
	}
	existing.Files += delta.Files
	existing.RowsParsed += delta.RowsParsed
	existing.RowsKept += delta.RowsKept
	existing.Comments += delta.Comments
	existing.Videos += delta.Videos
	existing.SpamHits += delta.SpamHits
	b.pendingBatchesTotal++
	b.mu.Unlock()
}

func (b *batcher) registerFailure(firstErr error) {
	b.consecutiveFlushFailures++
	backoff := b.computeBackoff()
	b.nextFlushAllowedAt = time.Now().Add(backoff)

	if b.shouldLogFailure() {
		b.lastErrorLoggedAt = time.Now()
		if b.logger != nil {
			b.logger.Warn(
				"audit_db_batch_flush_failed",
				"failures", b.consecutiveFlushFailures,
				"backoff", backoff,
				"pending_batches", b.pendingBatchesTotal,
				"err", firstErr,
			)
		}
	}
}

func (b *batcher) computeBackoff() time.Duration {
	backoff := b.flushInterval * time.Duration(1<<max(0, b.consecutiveFlushFailures-1))
	if backoff > b.maxBackoff {
		backoff = b.maxBackoff
	}
	if backoff <= 0 {
		backoff = b.flushInterval
	}
	return backoff
}

func (b *batcher) resetFailures() {
	b.consecutiveFlushFailures = 0
	b.nextFlushAllowedAt = time.Time{}
}

func (b *batcher) shouldLogFailure() bool {
	if b.consecutiveFlushFailures <= 0 {
		return false
	}
	if isPowerOfTwo(b.consecutiveFlushFailures) {
		return true
	}
	if b.errorLogMaxInterval <= 0 {
		return false
	}
	return time.Since(b.lastErrorLoggedAt) >= b.errorLogMaxInterval
}

// isPowerOfTwo 2의 거듭제곱인지 확인
func isPowerOfTwo(value int) bool {
	return value > 0 && (value&(value-1)) == 0
}
