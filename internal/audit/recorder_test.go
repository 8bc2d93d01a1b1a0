package audit

import (
	"testing"
	"time"
)

func TestDeltaEmpty(t *testing.T) {
	if !(Delta{}).empty() {
		t.Fatalf("zero delta must be empty")
	}
	if (Delta{Files: 1}).empty() {
		t.Fatalf("delta with files must not be empty")
	}
	if (Delta{SpamHits: 3}).empty() == false {
		t.Fatalf("spam hits alone do not make a delta recordable")
	}
}

func TestDailyIngestKeepRate(t *testing.T) {
	row := DailyIngest{RowsParsed: 200, RowsKept: 150}
	if rate := row.KeepRate(); rate != 0.75 {
		t.Fatalf("unexpected keep rate: %v", rate)
	}
	if rate := (DailyIngest{}).KeepRate(); rate != 0 {
		t.Fatalf("expected zero keep rate, got %v", rate)
	}
}

func TestBatcherAccumulatesByDate(t *testing.T) {
	b := &batcher{
		pending:           make(map[time.Time]*Delta),
		maxPendingBatches: 100,
		wakeup:            make(chan struct{}, 1),
	}

	b.add(Delta{Files: 1, RowsParsed: 10, RowsKept: 8, Comments: 8})
	b.add(Delta{Files: 2, RowsParsed: 5, RowsKept: 5, Videos: 5})

	if len(b.pending) != 1 {
		t.Fatalf("expected single pending date, got %d", len(b.pending))
	}
	pending := b.pending[todayDate()]
	if pending == nil || pending.Files != 3 || pending.RowsParsed != 15 || pending.Comments != 8 || pending.Videos != 5 {
		t.Fatalf("unexpected pending delta: %+v", pending)
	}
	if b.pendingBatchesTotal != 2 {
		t.Fatalf("unexpected pending batches: %d", b.pendingBatchesTotal)
	}
}

func TestBatcherBackoff(t *testing.T) {
	b := &batcher{flushInterval: time.Second, maxBackoff: 4 * time.Second}

	b.consecutiveFlushFailures = 1
	if backoff := b.computeBackoff(); backoff != time.Second {
		t.Fatalf("unexpected backoff: %v", backoff)
	}

	b.consecutiveFlushFailures = 2
	if backoff := b.computeBackoff(); backoff != 2*time.Second {
		t.Fatalf("unexpected backoff: %v", backoff)
	}

	b.consecutiveFlushFailures = 4
	if backoff := b.computeBackoff(); backoff != 4*time.Second {
		t.Fatalf("unexpected backoff cap: %v", backoff)
	}
}

func TestBatcherShouldLogFailure(t *testing.T) {
	b := &batcher{errorLogMaxInterval: time.Hour}
	b.consecutiveFlushFailures = 1
	if !b.shouldLogFailure() {
		t.Fatalf("expected log on first failure")
	}

	b.consecutiveFlushFailures = 3
	b.lastErrorLoggedAt = time.Now()
	if b.shouldLogFailure() {
		t.Fatalf("did not expect log for non power-of-two")
	}
}

func TestIsPowerOfTwo(t *testing.T) {
	if !isPowerOfTwo(1) || !isPowerOfTwo(2) || !isPowerOfTwo(4) {
		t.Fatalf("expected power of two")
	}
	if isPowerOfTwo(3) || isPowerOfTwo(0) {
		t.Fatalf("unexpected power of two")
	}
}
