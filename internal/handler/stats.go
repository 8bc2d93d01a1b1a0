package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/park285/comment-insight-go/internal/stats"
)

// StatsHandler: 프로세스 누적 통계 API 핸들러입니다.
type StatsHandler struct {
	collector *stats.Collector
}

// NewStatsHandler: 통계 핸들러를 생성합니다.
func NewStatsHandler(collector *stats.Collector) *StatsHandler {
	return &StatsHandler{collector: collector}
}

// RegisterRoutes: 통계 라우트를 등록합니다.
func (h *StatsHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/api/stats", h.handleSnapshot)
}

func (h *StatsHandler) handleSnapshot(c *gin.Context) {
	c.JSON(http.StatusOK, h.collector.Snapshot())
}
