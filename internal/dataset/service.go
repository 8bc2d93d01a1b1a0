package dataset

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/park285/comment-insight-go/internal/aggregate"
	"github.com/park285/comment-insight-go/internal/analyzer"
	"github.com/park285/comment-insight-go/internal/export"
	"github.com/park285/comment-insight-go/internal/pipeline"
	"github.com/park285/comment-insight-go/internal/record"
)

// ErrNoValidFiles 는 업로드된 모든 파일이 파일 단위 실패한 경우다.
var ErrNoValidFiles = errors.New("no files could be processed")

// UploadFile 은 업로드된 파일 하나다.
type UploadFile struct {
	Name    string
	Content []byte
}

// FileStatus 는 파일별 처리 결과다. 한 파일의 실패가 다른 파일을 막지 않는다.
type FileStatus struct {
	File    string `json:"file"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

const (
	statusOK    = "ok"
	statusError = "error"
)

// Filter 는 댓글 조회 조건이다. 빈 값은 조건 없음이다.
type Filter struct {
	Sentiment string
	Category  string
	Spam      *bool
	Quality   *bool
}

// Service 는 수집과 조회를 저장소 위에서 조율한다.
// 지표는 변경 때마다 전체 컬렉션에서 재계산하며, 동시 재계산은 singleflight 로 합쳐진다.
type Service struct {
	store       Storage
	processor   *pipeline.Processor
	maxDatasets int
	logger      *slog.Logger
	group       singleflight.Group
}

// NewService 는 서비스를 만든다.
func NewService(store Storage, processor *pipeline.Processor, maxDatasets int, logger *slog.Logger) *Service {
	return &Service{store: store, processor: processor, maxDatasets: maxDatasets, logger: logger}
}

// Ingest 는 파일들을 데이터셋에 수집한다. id 가 비어 있으면 새 데이터셋을 만든다.
// 반환되는 상태 목록은 입력 파일 순서를 따른다.
func (s *Service) Ingest(ctx context.Context, id string, name string, files []UploadFile) (*Snapshot, []FileStatus, error) {
	snapshot, created, err := s.loadOrCreate(ctx, id, name)
	if err != nil {
		return nil, nil, err
	}

	index := videoIndex(snapshot.Videos)
	statuses := make([]FileStatus, 0, len(files))
	succeeded := 0

	for _, file := range files {
		result, err := s.processor.ProcessFile(file.Name, file.Content, index)
		if err != nil {
			statuses = append(statuses, FileStatus{File: file.Name, Status: statusError, Message: err.Error()})
			continue
		}

		snapshot.Files = append(snapshot.Files, FileSummary{
			Name:        result.Name,
			Kind:        result.Kind,
			ParsedRows:  result.ParsedRows,
			DroppedRows: result.DroppedRows,
			CleanStats:  result.CleanStats,
			IngestedAt:  time.Now(),
		})
		snapshot.Comments = append(snapshot.Comments, result.Comments...)
		if len(result.Videos) > 0 {
			snapshot.Videos = append(snapshot.Videos, result.Videos...)
			index = videoIndex(snapshot.Videos)
		}

		statuses = append(statuses, FileStatus{File: file.Name, Status: statusOK})
		succeeded++
	}

	if succeeded == 0 {
		if created {
			return nil, statuses, ErrNoValidFiles
		}
		return snapshot, statuses, nil
	}

	rejoinComments(snapshot, index)
	snapshot.Metrics = s.recompute(snapshot)
	snapshot.UpdatedAt = time.Now()

	if err := s.store.Save(ctx, snapshot); err != nil {
		return nil, statuses, fmt.Errorf("save dataset %s: %w", snapshot.ID, err)
	}

	if s.logger != nil {
		s.logger.Info("dataset ingested",
			"dataset", snapshot.ID,
			"files", len(files),
			"succeeded", succeeded,
			"comments", len(snapshot.Comments),
			"videos", len(snapshot.Videos),
		)
	}
	return snapshot, statuses, nil
}

// Get 은 스냅샷을 조회한다.
func (s *Service) Get(ctx context.Context, id string) (*Snapshot, error) {
	return s.store.Get(ctx, id)
}

// Comments 는 필터를 적용한 분석 댓글 목록을 반환한다.
func (s *Service) Comments(ctx context.Context, id string, filter Filter) ([]analyzer.AnalyzedComment, error) {
	snapshot, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return filterComments(snapshot.Comments, filter), nil
}

// Metrics 는 저장된 지표를 반환한다.
func (s *Service) Metrics(ctx context.Context, id string) (aggregate.Metrics, error) {
	snapshot, err := s.store.Get(ctx, id)
	if err != nil {
		return aggregate.Metrics{}, err
	}
	return snapshot.Metrics, nil
}

// Export 는 필터된 댓글을 CSV 아티팩트로 쓴다.
func (s *Service) Export(ctx context.Context, id string, filter Filter, w io.Writer) error {
	comments, err := s.Comments(ctx, id, filter)
	if err != nil {
		return err
	}
	return export.WriteComments(w, comments)
}

// Delete 는 데이터셋을 삭제한다. 없으면 ErrNotFound 다.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.store.Get(ctx, id); err != nil {
		return err
	}
	return s.store.Delete(ctx, id)
}

func (s *Service) loadOrCreate(ctx context.Context, id string, name string) (*Snapshot, bool, error) {
	if id != "" {
		snapshot, err := s.store.Get(ctx, id)
		if err != nil {
			return nil, false, err
		}
		return snapshot, false, nil
	}

	if s.maxDatasets > 0 {
		count, err := s.store.Count(ctx)
		if err != nil {
			return nil, false, fmt.Errorf("count datasets: %w", err)
		}
		if count >= s.maxDatasets {
			return nil, false, ErrTooManyDatasets
		}
	}

	now := time.Now()
	return &Snapshot{
		ID:        newID(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}, true, nil
}

// recompute 는 전체 컬렉션에서 지표를 다시 계산한다. 같은 데이터셋에 대한
// 동시 계산은 하나로 합쳐진다.
func (s *Service) recompute(snapshot *Snapshot) aggregate.Metrics {
	result, _, _ := s.group.Do(snapshot.ID, func() (any, error) {
		return aggregate.Generate(snapshot.Comments, snapshot.Videos), nil
	})
	return result.(aggregate.Metrics)
}

func videoIndex(videos []analyzer.AnalyzedVideo) map[string]*record.Video {
	if len(videos) == 0 {
		return nil
	}
	index := make(map[string]*record.Video, len(videos))
	for i := range videos {
		index[videos[i].VideoID] = &videos[i].Video
	}
	return index
}

// rejoinComments 는 영상이 늦게 수집된 경우를 위해 전체 댓글의 조인을 다시 건다.
func rejoinComments(snapshot *Snapshot, index map[string]*record.Video) {
	if len(index) == 0 {
		return
	}
	for i := range snapshot.Comments {
		comment := &snapshot.Comments[i]
		if comment.Video != nil {
			continue
		}
		video, ok := index[comment.VideoID]
		if !ok {
			continue
		}
		comment.Video = &analyzer.VideoContext{
			Title:           video.Title,
			ViewCount:       video.ViewCount,
			LikeCount:       video.LikeCount,
			CommentCount:    video.CommentCount,
			TopicCategories: video.TopicCategories,
		}
	}
}

func filterComments(comments []analyzer.AnalyzedComment, filter Filter) []analyzer.AnalyzedComment {
	filtered := make([]analyzer.AnalyzedComment, 0, len(comments))
	for _, comment := range comments {
		if filter.Sentiment != "" && string(comment.Sentiment) != filter.Sentiment {
			continue
		}
		if filter.Category != "" && comment.Category != filter.Category {
			continue
		}
		if filter.Spam != nil && comment.IsSpam != *filter.Spam {
			continue
		}
		if filter.Quality != nil && comment.IsQuality != *filter.Quality {
			continue
		}
		filtered = append(filtered, comment)
	}
	return filtered
}

func newID() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("ds-%d", time.Now().UnixNano())
	}
	return "ds-" + hex.EncodeToString(buf)
}
