package di

import (
	"log/slog"
	"net/http"

	"github.com/park285/comment-insight-go/internal/audit"
	"github.com/park285/comment-insight-go/internal/config"
	"github.com/park285/comment-insight-go/internal/dataset"
)

// App: 애플리케이션 구성 요소를 묶는다.
type App struct {
	Server          *http.Server
	Logger          *slog.Logger
	Config          *config.Config
	DatasetStore    *dataset.Store
	AuditRepository *audit.Repository
	AuditRecorder   *audit.Recorder
}

// NewApp: App 인스턴스를 생성합니다.
func NewApp(
	server *http.Server,
	logger *slog.Logger,
	cfg *config.Config,
	datasetStore *dataset.Store,
	auditRepository *audit.Repository,
	auditRecorder *audit.Recorder,
) *App {
	return &App{
		Server:          server,
		Logger:          logger,
		Config:          cfg,
		DatasetStore:    datasetStore,
		AuditRepository: auditRepository,
		AuditRecorder:   auditRecorder,
	}
}

// Close: 앱 리소스를 정리합니다.
func (a *App) Close() {
	if a.DatasetStore != nil {
		a.DatasetStore.Close()
	}
	if a.AuditRecorder != nil {
		a.AuditRecorder.Close()
	}
	if a.AuditRepository != nil {
		a.AuditRepository.Close()
	}
}
