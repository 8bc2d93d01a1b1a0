// Package pipeline 은 업로드 파일 하나를 파싱-정규화-정제-분석까지 실행한다.
// 파일 단위 실패만 오류로 돌려주고, 행 단위 이상은 통계로만 집계한다.
package pipeline

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/park285/comment-insight-go/internal/analyzer"
	"github.com/park285/comment-insight-go/internal/record"
	"github.com/park285/comment-insight-go/internal/stats"
	"github.com/park285/comment-insight-go/internal/tabular"
)

// ErrUnknownSchema 는 헤더가 댓글/영상 어느 쪽 시그니처도 충족하지 못할 때다.
var ErrUnknownSchema = errors.New("pipeline: cannot detect file type")

// ErrEmptyFile 은 헤더와 데이터 행을 만들 수 없는 입력이다.
var ErrEmptyFile = errors.New("pipeline: file has no parsable rows")

// FileResult 는 파일 하나의 처리 결과다. Kind 에 따라 한쪽 슬라이스만 채워진다.
type FileResult struct {
	Name        string                     `json:"name"`
	Kind        record.Kind                `json:"kind"`
	ParsedRows  int                        `json:"parsed_rows"`
	DroppedRows int                        `json:"dropped_rows"`
	CleanStats  record.CleanStats          `json:"clean_stats"`
	Comments    []analyzer.AnalyzedComment `json:"comments,omitempty"`
	Videos      []analyzer.AnalyzedVideo   `json:"videos,omitempty"`
}

// Processor 는 파이프라인 한 단계씩을 묶어 실행한다.
type Processor struct {
	analyzer  *analyzer.Analyzer
	collector *stats.Collector
	logger    *slog.Logger
}

// New 는 프로세서를 만든다. collector 는 nil 일 수 있다.
func New(a *analyzer.Analyzer, collector *stats.Collector, logger *slog.Logger) *Processor {
	return &Processor{analyzer: a, collector: collector, logger: logger}
}

// ProcessFile 은 파일 하나를 끝까지 처리한다. videoIndex 는 호출자가 만든
// videoId → 정제된 영상 맵으로, 댓글 분석 시 조인에 쓰인다. nil 허용.
func (p *Processor) ProcessFile(name string, content []byte, videoIndex map[string]*record.Video) (*FileResult, error) {
	table, err := tabular.Parse(string(content), record.SniffColumns())
	if err != nil {
		p.fileFailed()
		if errors.Is(err, tabular.ErrEmptyInput) {
			return nil, fmt.Errorf("%w: %s", ErrEmptyFile, name)
		}
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}

	kind := record.DetectKind(table.Header)
	if kind == record.KindUnknown {
		p.fileFailed()
		return nil, fmt.Errorf("%w: %s (expected comment columns %s or video columns %s)",
			ErrUnknownSchema, name,
			strings.Join(record.ExpectedColumns(record.KindComments), "/"),
			strings.Join(record.ExpectedColumns(record.KindVideos), "/"))
	}

	result := &FileResult{
		Name:        name,
		Kind:        kind,
		ParsedRows:  len(table.Rows),
		DroppedRows: table.Dropped,
	}

	switch kind {
	case record.KindComments:
		if err := p.processComments(table, videoIndex, result); err != nil {
			p.fileFailed()
			return nil, err
		}
	case record.KindVideos:
		if err := p.processVideos(table, result); err != nil {
			p.fileFailed()
			return nil, err
		}
	}

	p.fileDone(result)
	return result, nil
}

func (p *Processor) processComments(table *tabular.Table, videoIndex map[string]*record.Video, result *FileResult) error {
	raws := make([]record.RawComment, 0, len(table.Rows))
	for _, row := range table.Rows {
		raw, err := record.NormalizeComment(row)
		if err != nil {
			return fmt.Errorf("normalize %s: %w", result.Name, err)
		}
		raws = append(raws, raw)
	}

	cleaned, cleanStats := record.CleanComments(raws)
	result.CleanStats = cleanStats

	result.Comments = make([]analyzer.AnalyzedComment, 0, len(cleaned))
	for _, comment := range cleaned {
		result.Comments = append(result.Comments, p.analyzer.AnalyzeCommentWithVideo(comment, videoIndex[comment.VideoID]))
	}
	return nil
}

func (p *Processor) processVideos(table *tabular.Table, result *FileResult) error {
	raws := make([]record.RawVideo, 0, len(table.Rows))
	for _, row := range table.Rows {
		raw, err := record.NormalizeVideo(row)
		if err != nil {
			return fmt.Errorf("normalize %s: %w", result.Name, err)
		}
		raws = append(raws, raw)
	}

	cleaned, cleanStats := record.CleanVideos(raws)
	result.CleanStats = cleanStats

	result.Videos = make([]analyzer.AnalyzedVideo, 0, len(cleaned))
	for _, video := range cleaned {
		result.Videos = append(result.Videos, p.analyzer.AnalyzeVideo(video))
	}
	return nil
}

func (p *Processor) fileFailed() {
	if p.collector != nil {
		p.collector.FileFailed()
	}
}

func (p *Processor) fileDone(result *FileResult) {
	if p.collector != nil {
		p.collector.FileIngested()
		p.collector.RowsParsed(result.ParsedRows)
		p.collector.RowsDropped(result.DroppedRows + result.CleanStats.Removed)
		p.collector.CommentsAnalyzed(len(result.Comments))
		p.collector.VideosAnalyzed(len(result.Videos))
	}
	if p.logger != nil {
		p.logger.Info("file processed",
			"file", result.Name,
			"kind", result.Kind,
			"rows", result.ParsedRows,
			"dropped", result.DroppedRows,
			"removed", result.CleanStats.Removed,
			"comments", len(result.Comments),
			"videos", len(result.Videos),
		)
	}
}
