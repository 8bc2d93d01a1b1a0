package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/park285/comment-insight-go/internal/config"
	"github.com/park285/comment-insight-go/internal/health"
	"github.com/park285/comment-insight-go/internal/lexicon"
)

// AnalysisConfigResponse: 분석 엔진 설정 응답입니다.
type AnalysisConfigResponse struct {
	LexiconSource   string   `json:"lexicon_source"`
	Categories      []string `json:"categories"`
	SentimentTiers  int      `json:"sentiment_tiers"`
	SpamFamilies    int      `json:"spam_families"`
	CacheMaxSize    int      `json:"cache_max_size"`
	CacheTTLSeconds int      `json:"cache_ttl_seconds"`
	HTTP2Enabled    bool     `json:"http2_enabled"`
	TransportMode   string   `json:"transport_mode"`
}

// RegisterHealthRoutes: 상태 확인 라우트를 등록합니다.
func RegisterHealthRoutes(router *gin.Engine, cfg *config.Config, lex *lexicon.Lexicon) {
	router.GET("/health", func(c *gin.Context) {
		// Liveness: 외부 의존성(Valkey/DB 등) 상태로 인해 다운 판정되지 않도록 shallow로 유지합니다.
		payload := health.Collect(c.Request.Context(), cfg, false)
		c.JSON(http.StatusOK, payload)
	})

	router.GET("/health/ready", func(c *gin.Context) {
		payload := health.Collect(c.Request.Context(), cfg, true)
		status := http.StatusOK
		if payload.Status != "ok" {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, payload)
	})

	// Prometheus 메트릭 (장기 히스토리 분석용)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/health/analysis", func(c *gin.Context) {
		lexiconSource := "embedded"
		if cfg.Analysis.LexiconDir != "" {
			lexiconSource = cfg.Analysis.LexiconDir
		}

		transportMode := "h1"
		if cfg.HTTP.HTTP2Enabled {
			transportMode = "h2c"
		}

		response := AnalysisConfigResponse{
			LexiconSource:   lexiconSource,
			Categories:      lex.CategoryNames(),
			SentimentTiers:  len(lex.Tiers),
			SpamFamilies:    len(lex.SpamFamilies),
			CacheMaxSize:    cfg.Analysis.CacheMaxSize,
			CacheTTLSeconds: cfg.Analysis.CacheTTLSeconds,
			HTTP2Enabled:    cfg.HTTP.HTTP2Enabled,
			TransportMode:   transportMode,
		}

		c.JSON(http.StatusOK, response)
	})
}
