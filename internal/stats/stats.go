// Package stats 는 프로세스 수명 동안의 수집 카운터를 관리한다.
// 원자 카운터가 진실이고, 같은 값이 prometheus 카운터로도 노출된다.
package stats

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector 는 수집 지점들이 공유하는 카운터 묶음이다. 제로값은 쓸 수 없고 New 로 만든다.
type Collector struct {
	filesIngested    atomic.Int64
	fileErrors       atomic.Int64
	rowsParsed       atomic.Int64
	rowsDropped      atomic.Int64
	commentsAnalyzed atomic.Int64
	videosAnalyzed   atomic.Int64

	promFiles      prometheus.Counter
	promFileErrors prometheus.Counter
	promRows       prometheus.Counter
	promDropped    prometheus.Counter
	promComments   prometheus.Counter
	promVideos     prometheus.Counter
}

// Snapshot 은 한 시점의 카운터 값들이다.
type Snapshot struct {
	FilesIngested    int64 `json:"files_ingested"`
	FileErrors       int64 `json:"file_errors"`
	RowsParsed       int64 `json:"rows_parsed"`
	RowsDropped      int64 `json:"rows_dropped"`
	CommentsAnalyzed int64 `json:"comments_analyzed"`
	VideosAnalyzed   int64 `json:"videos_analyzed"`
}

// New 는 카운터를 만들고 prometheus 레지스트리에 등록한다.
func New(registerer prometheus.Registerer) *Collector {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registerer)

	return &Collector{
		promFiles: factory.NewCounter(prometheus.CounterOpts{
			Name: "insight_files_ingested_total",
			Help: "수집에 성공한 업로드 파일 수",
		}),
		promFileErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "insight_file_errors_total",
			Help: "파일 단위 실패 수",
		}),
		promRows: factory.NewCounter(prometheus.CounterOpts{
			Name: "insight_rows_parsed_total",
			Help: "파싱된 데이터 행 수",
		}),
		promDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "insight_rows_dropped_total",
			Help: "형식 불일치 또는 정제 단계에서 버려진 행 수",
		}),
		promComments: factory.NewCounter(prometheus.CounterOpts{
			Name: "insight_comments_analyzed_total",
			Help: "분석된 댓글 수",
		}),
		promVideos: factory.NewCounter(prometheus.CounterOpts{
			Name: "insight_videos_analyzed_total",
			Help: "분석된 영상 수",
		}),
	}
}

// FileIngested: 파일 1건 수집 성공.
func (c *Collector) FileIngested() {
	c.filesIngested.Add(1)
	c.promFiles.Inc()
}

// FileFailed: 파일 단위 실패.
func (c *Collector) FileFailed() {
	c.fileErrors.Add(1)
	c.promFileErrors.Inc()
}

// RowsParsed: 파싱된 행 수 누적.
func (c *Collector) RowsParsed(n int) {
	c.rowsParsed.Add(int64(n))
	c.promRows.Add(float64(n))
}

// RowsDropped: 버려진 행 수 누적.
func (c *Collector) RowsDropped(n int) {
	c.rowsDropped.Add(int64(n))
	c.promDropped.Add(float64(n))
}

// CommentsAnalyzed: 분석된 댓글 수 누적.
func (c *Collector) CommentsAnalyzed(n int) {
	c.commentsAnalyzed.Add(int64(n))
	c.promComments.Add(float64(n))
}

// VideosAnalyzed: 분석된 영상 수 누적.
func (c *Collector) VideosAnalyzed(n int) {
	c.videosAnalyzed.Add(int64(n))
	c.promVideos.Add(float64(n))
}

// Snapshot 은 현재 값을 복사해 반환한다.
func (c *Collector) Snapshot() Snapshot {
	return Snapshot{
		FilesIngested:    c.filesIngested.Load(),
		FileErrors:       c.fileErrors.Load(),
		RowsParsed:       c.rowsParsed.Load(),
		RowsDropped:      c.rowsDropped.Load(),
		CommentsAnalyzed: c.commentsAnalyzed.Load(),
		VideosAnalyzed:   c.videosAnalyzed.Load(),
	}
}
