package stats

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestCollectorSnapshot(t *testing.T) {
	c := New(prometheus.NewRegistry())

	c.FileIngested()
	c.FileIngested()
	c.FileFailed()
	c.RowsParsed(100)
	c.RowsDropped(7)
	c.CommentsAnalyzed(80)
	c.VideosAnalyzed(3)

	got := c.Snapshot()
	want := Snapshot{
		FilesIngested:    2,
		FileErrors:       1,
		RowsParsed:       100,
		RowsDropped:      7,
		CommentsAnalyzed: 80,
		VideosAnalyzed:   3,
	}
	if got != want {
		t.Fatalf("snapshot = %+v, want %+v", got, want)
	}
}

func TestCollectorConcurrentAdds(t *testing.T) {
	c := New(prometheus.NewRegistry())

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			for j := 0; j < 100; j++ {
				c.RowsParsed(1)
			}
			done <- struct{}{}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}

	if got := c.Snapshot().RowsParsed; got != 800 {
		t.Fatalf("rowsParsed = %d, want 800", got)
	}
}
