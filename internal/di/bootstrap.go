package di

import (
	"fmt"

	"github.com/park285/comment-insight-go/internal/audit"
	"github.com/park285/comment-insight-go/internal/config"
	"github.com/park285/comment-insight-go/internal/dataset"
	"github.com/park285/comment-insight-go/internal/handler"
	"github.com/park285/comment-insight-go/internal/pipeline"
	"github.com/park285/comment-insight-go/internal/server"
	"github.com/park285/comment-insight-go/internal/stats"
)

// InitializeApp 은 애플리케이션 의존성을 초기화하고 App 인스턴스를 반환한다.
func InitializeApp() (*App, error) {
	cfg, err := config.ProvideConfig()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	logger, err := ProvideLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	lex, err := ProvideLexicon(cfg)
	if err != nil {
		return nil, fmt.Errorf("lexicon: %w", err)
	}

	collector := stats.New(nil)
	processor := pipeline.New(ProvideAnalyzer(cfg, lex), collector, logger)

	datasetStore, err := dataset.NewStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("dataset store: %w", err)
	}

	datasetService := dataset.NewService(datasetStore, processor, cfg.Dataset.MaxDatasets, logger)

	auditRepository := audit.NewRepository(cfg, logger)
	auditRecorder := audit.NewRecorder(cfg, auditRepository, logger)

	datasetHandler := handler.NewDatasetHandler(cfg, datasetService, auditRecorder, logger)
	auditHandler := handler.NewAuditHandler(auditRepository, logger)
	statsHandler := handler.NewStatsHandler(collector)

	router := handler.NewRouter(cfg, logger, lex, datasetHandler, auditHandler, statsHandler)
	httpServer := server.NewHTTPServer(cfg, router)

	return NewApp(httpServer, logger, cfg, datasetStore, auditRepository, auditRecorder), nil
}
