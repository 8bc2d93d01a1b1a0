package handler

import (
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/park285/comment-insight-go/internal/aggregate"
	"github.com/park285/comment-insight-go/internal/analyzer"
	"github.com/park285/comment-insight-go/internal/audit"
	"github.com/park285/comment-insight-go/internal/config"
	"github.com/park285/comment-insight-go/internal/dataset"
	"github.com/park285/comment-insight-go/internal/httperror"
	"github.com/park285/comment-insight-go/internal/record"
)

// DatasetSummaryResponse: 데이터셋 요약 응답입니다.
type DatasetSummaryResponse struct {
	ID        string                `json:"id"`
	Name      string                `json:"name"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
	Files     []dataset.FileSummary `json:"files"`
	Comments  int                   `json:"comments"`
	Videos    int                   `json:"videos"`
}

// IngestResponse: 수집 응답입니다.
type IngestResponse struct {
	Dataset DatasetSummaryResponse `json:"dataset"`
	Files   []dataset.FileStatus   `json:"files"`
	Metrics aggregate.Metrics      `json:"metrics"`
}

// CommentListResponse: 분석 댓글 목록 응답입니다.
type CommentListResponse struct {
	Comments []analyzer.AnalyzedComment `json:"comments"`
	Total    int                        `json:"total"`
}

// DatasetHandler: 데이터셋 API 핸들러입니다.
type DatasetHandler struct {
	cfg      *config.Config
	service  *dataset.Service
	recorder *audit.Recorder
	logger   *slog.Logger
}

// NewDatasetHandler: 데이터셋 핸들러를 생성합니다.
func NewDatasetHandler(cfg *config.Config, service *dataset.Service, recorder *audit.Recorder, logger *slog.Logger) *DatasetHandler {
	return &DatasetHandler{
		cfg:      cfg,
		service:  service,
		recorder: recorder,
		logger:   logger,
	}
}

// RegisterRoutes: 데이터셋 라우트를 등록합니다.
func (h *DatasetHandler) RegisterRoutes(router *gin.Engine) {
	group := router.Group("/api/datasets")
	group.POST("", h.handleIngest)
	group.GET("/:id", h.handleGet)
	group.GET("/:id/comments", h.handleComments)
	group.GET("/:id/metrics", h.handleMetrics)
	group.GET("/:id/export", h.handleExport)
	group.DELETE("/:id", h.handleDelete)
}

func (h *DatasetHandler) handleIngest(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		writeError(c, httperror.NewInvalidInput("multipart form required"))
		return
	}

	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		writeError(c, httperror.NewMissingField("files"))
		return
	}
	if len(fileHeaders) > h.cfg.Upload.MaxFiles {
		writeError(c, httperror.NewInvalidInput(
			fmt.Sprintf("too many files: %d (max %d)", len(fileHeaders), h.cfg.Upload.MaxFiles)))
		return
	}

	uploads, err := h.readUploads(fileHeaders)
	if err != nil {
		writeError(c, err)
		return
	}

	datasetID := c.PostForm("dataset_id")
	name := c.PostForm("name")

	snapshot, statuses, err := h.service.Ingest(c.Request.Context(), datasetID, name, uploads)
	if err != nil {
		h.logError(err)
		writeError(c, err)
		return
	}

	h.recordAudit(c, snapshot, statuses)

	c.JSON(http.StatusOK, IngestResponse{
		Dataset: buildSummary(snapshot),
		Files:   statuses,
		Metrics: snapshot.Metrics,
	})
}

func (h *DatasetHandler) handleGet(c *gin.Context) {
	snapshot, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, buildSummary(snapshot))
}

func (h *DatasetHandler) handleComments(c *gin.Context) {
	filter, ok := parseFilter(c)
	if !ok {
		return
	}

	comments, err := h.service.Comments(c.Request.Context(), c.Param("id"), filter)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, CommentListResponse{Comments: comments, Total: len(comments)})
}

func (h *DatasetHandler) handleMetrics(c *gin.Context) {
	metrics, err := h.service.Metrics(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, metrics)
}

func (h *DatasetHandler) handleExport(c *gin.Context) {
	filter, ok := parseFilter(c)
	if !ok {
		return
	}

	id := c.Param("id")
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", id+"-comments.csv"))
	if err := h.service.Export(c.Request.Context(), id, filter, c.Writer); err != nil {
		// 본문 일부가 이미 쓰였을 수 있어 헤더를 되돌리지 않는다.
		h.logError(err)
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusOK)
}

func (h *DatasetHandler) handleDelete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *DatasetHandler) readUploads(fileHeaders []*multipart.FileHeader) ([]dataset.UploadFile, error) {
	maxBytes := int64(h.cfg.Upload.MaxFileSizeMB) * 1024 * 1024
	uploads := make([]dataset.UploadFile, 0, len(fileHeaders))

	for _, header := range fileHeaders {
		if maxBytes > 0 && header.Size > maxBytes {
			return nil, httperror.NewUploadTooLarge(h.cfg.Upload.MaxFileSizeMB)
		}

		file, err := header.Open()
		if err != nil {
			return nil, httperror.NewInvalidInput(fmt.Sprintf("open %s: %v", header.Filename, err))
		}
		content, err := io.ReadAll(file)
		_ = file.Close()
		if err != nil {
			return nil, httperror.NewInvalidInput(fmt.Sprintf("read %s: %v", header.Filename, err))
		}

		uploads = append(uploads, dataset.UploadFile{Name: header.Filename, Content: content})
	}
	return uploads, nil
}

// recordAudit 는 이번 수집분의 감사 증분을 비동기 경로로 적재한다.
func (h *DatasetHandler) recordAudit(c *gin.Context, snapshot *dataset.Snapshot, statuses []dataset.FileStatus) {
	if h.recorder == nil {
		return
	}

	succeeded := 0
	for _, status := range statuses {
		if status.Status == "ok" {
			succeeded++
		}
	}
	if succeeded == 0 || len(snapshot.Files) < succeeded {
		return
	}

	delta := audit.Delta{Files: int64(succeeded)}
	newComments := 0
	for _, summary := range snapshot.Files[len(snapshot.Files)-succeeded:] {
		delta.RowsParsed += int64(summary.ParsedRows)
		delta.RowsKept += int64(summary.CleanStats.Cleaned)
		switch summary.Kind {
		case record.KindComments:
			delta.Comments += int64(summary.CleanStats.Cleaned)
			newComments += summary.CleanStats.Cleaned
		case record.KindVideos:
			delta.Videos += int64(summary.CleanStats.Cleaned)
		}
	}
	if newComments > 0 && newComments <= len(snapshot.Comments) {
		for _, comment := range snapshot.Comments[len(snapshot.Comments)-newComments:] {
			if comment.IsSpam {
				delta.SpamHits++
			}
		}
	}

	h.recorder.Record(c.Request.Context(), delta)
}

func buildSummary(snapshot *dataset.Snapshot) DatasetSummaryResponse {
	return DatasetSummaryResponse{
		ID:        snapshot.ID,
		Name:      snapshot.Name,
		CreatedAt: snapshot.CreatedAt,
		UpdatedAt: snapshot.UpdatedAt,
		Files:     snapshot.Files,
		Comments:  len(snapshot.Comments),
		Videos:    len(snapshot.Videos),
	}
}

func parseFilter(c *gin.Context) (dataset.Filter, bool) {
	filter := dataset.Filter{
		Sentiment: c.Query("sentiment"),
		Category:  c.Query("category"),
	}

	spam, ok := parseOptionalBool(c, "spam")
	if !ok {
		return dataset.Filter{}, false
	}
	filter.Spam = spam

	quality, ok := parseOptionalBool(c, "quality")
	if !ok {
		return dataset.Filter{}, false
	}
	filter.Quality = quality

	return filter, true
}

func parseOptionalBool(c *gin.Context, key string) (*bool, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		writeError(c, httperror.NewInvalidInput(fmt.Sprintf("%s must be a boolean", key)))
		return nil, false
	}
	return &parsed, true
}

func (h *DatasetHandler) logError(err error) {
	if err == nil || h.logger == nil {
		return
	}
	h.logger.Warn("dataset_request_failed", "err", err)
}
