package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/park285/comment-insight-go/internal/audit"
	"github.com/park285/comment-insight-go/internal/httperror"
)

// DailyIngestResponse: 일자별 수집 감사 응답입니다.
type DailyIngestResponse struct {
	IngestDate string  `json:"ingest_date"`
	Files      int64   `json:"files"`
	RowsParsed int64   `json:"rows_parsed"`
	RowsKept   int64   `json:"rows_kept"`
	KeepRate   float64 `json:"keep_rate"`
	Comments   int64   `json:"comments"`
	Videos     int64   `json:"videos"`
	SpamHits   int64   `json:"spam_hits"`
}

// IngestListResponse: 수집 감사 목록 응답입니다.
type IngestListResponse struct {
	Ingests         []DailyIngestResponse `json:"ingests"`
	TotalFiles      int64                 `json:"total_files"`
	TotalRowsParsed int64                 `json:"total_rows_parsed"`
	TotalRowsKept   int64                 `json:"total_rows_kept"`
	TotalComments   int64                 `json:"total_comments"`
	TotalVideos     int64                 `json:"total_videos"`
	TotalSpamHits   int64                 `json:"total_spam_hits"`
}

// AuditHandler: 수집 감사 API 핸들러입니다.
type AuditHandler struct {
	store  audit.Store
	logger *slog.Logger
}

// NewAuditHandler: 수집 감사 핸들러를 생성합니다.
func NewAuditHandler(store audit.Store, logger *slog.Logger) *AuditHandler {
	return &AuditHandler{
		store:  store,
		logger: logger,
	}
}

// RegisterRoutes: 수집 감사 라우트를 등록합니다.
func (h *AuditHandler) RegisterRoutes(router *gin.Engine) {
	group := router.Group("/api/audit")
	group.GET("/daily", h.handleDaily)
	group.GET("/recent", h.handleRecent)
	group.GET("/total", h.handleTotal)
}

func (h *AuditHandler) handleDaily(c *gin.Context) {
	row, err := h.store.GetDailyIngest(c.Request.Context(), time.Time{})
	if err != nil {
		h.logError(err)
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, buildDailyIngestResponse(row))
}

func (h *AuditHandler) handleRecent(c *gin.Context) {
	days, ok := parseDays(c, 7)
	if !ok {
		return
	}

	rows, err := h.store.GetRecentIngest(c.Request.Context(), days)
	if err != nil {
		h.logError(err)
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, buildIngestListResponse(rows))
}

func (h *AuditHandler) handleTotal(c *gin.Context) {
	days, ok := parseDays(c, 30)
	if !ok {
		return
	}

	row, err := h.store.GetTotalIngest(c.Request.Context(), days)
	if err != nil {
		h.logError(err)
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, buildDailyIngestResponse(&row))
}

func buildDailyIngestResponse(row *audit.DailyIngest) DailyIngestResponse {
	if row == nil {
		return DailyIngestResponse{
			IngestDate: time.Now().Format("2006-01-02"),
		}
	}

	return DailyIngestResponse{
		IngestDate: row.IngestDate.Format("2006-01-02"),
		Files:      row.Files,
		RowsParsed: row.RowsParsed,
		RowsKept:   row.RowsKept,
		KeepRate:   row.KeepRate(),
		Comments:   row.Comments,
		Videos:     row.Videos,
		SpamHits:   row.SpamHits,
	}
}

func buildIngestListResponse(rows []audit.DailyIngest) IngestListResponse {
	response := IngestListResponse{
		Ingests: make([]DailyIngestResponse, 0, len(rows)),
	}

	for _, row := range rows {
		response.Ingests = append(response.Ingests, buildDailyIngestResponse(&row))
		response.TotalFiles += row.Files
		response.TotalRowsParsed += row.RowsParsed
		response.TotalRowsKept += row.RowsKept
		response.TotalComments += row.Comments
		response.TotalVideos += row.Videos
		response.TotalSpamHits += row.SpamHits
	}

	return response
}

func parseDays(c *gin.Context, defaultDays int) (int, bool) {
	raw := c.Query("days")
	if raw == "" {
		return defaultDays, true
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		writeError(c, httperror.NewInvalidInput("days must be a positive integer"))
		return 0, false
	}
	return parsed, true
}

func (h *AuditHandler) logError(err error) {
	if err == nil || h.logger == nil {
		return
	}
	h.logger.Warn("audit_request_failed", "err", err)
}
