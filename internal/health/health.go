package health

import (
	"context"
	"time"

	"github.com/park285/comment-insight-go/internal/config"
	"github.com/park285/comment-insight-go/internal/dataset"
)

var startTime = time.Now()

// Component 는 상태 구성 요소다.
type Component struct {
	Status string         `json:"status"`
	Detail map[string]any `json:"detail"`
}

// Response 는 상태 응답 본문이다.
type Response struct {
	Status       string               `json:"status"`
	Components   map[string]Component `json:"components"`
	DatasetStore map[string]any       `json:"dataset_store"`
}

// Collect 는 헬스 상태를 수집한다.
func Collect(ctx context.Context, cfg *config.Config, deepChecks bool) Response {
	components := make(map[string]Component)

	appStatus := buildAppStatus()
	components["app"] = appStatus

	datasetStoreStatus := buildDatasetStoreStatus(ctx, cfg, deepChecks)
	components["dataset_store"] = datasetStoreStatus

	analysisStatus := buildAnalysisStatus(cfg)
	components["analysis"] = analysisStatus

	overall := "ok"
	for _, component := range components {
		if component.Status != "ok" {
			overall = "degraded"
			break
		}
	}

	return Response{
		Status:       overall,
		Components:   components,
		DatasetStore: datasetStoreStatus.Detail,
	}
}

func buildAppStatus() Component {
	uptimeSeconds := int(time.Since(startTime).Seconds())
	return Component{
		Status: "ok",
		Detail: map[string]any{
			"uptime_seconds": uptimeSeconds,
		},
	}
}

func buildAnalysisStatus(cfg *config.Config) Component {
	lexiconDir := ""
	cacheSize := 0
	cacheTTLSeconds := 0

	if cfg != nil {
		lexiconDir = cfg.Analysis.LexiconDir
		cacheSize = cfg.Analysis.CacheMaxSize
		cacheTTLSeconds = cfg.Analysis.CacheTTLSeconds
	}

	lexiconSource := "embedded"
	if lexiconDir != "" {
		lexiconSource = lexiconDir
	}

	detail := map[string]any{
		"lexicon_source":    lexiconSource,
		"cache_max_size":    cacheSize,
		"cache_ttl_seconds": cacheTTLSeconds,
	}

	return Component{
		Status: "ok",
		Detail: detail,
	}
}

func buildDatasetStoreStatus(ctx context.Context, cfg *config.Config, deepChecks bool) Component {
	reachability := false
	backend := "memory"
	storeEnabled := false
	storeURL := ""
	datasetTTL := 0
	datasetCount := 0
	datasetCountErr := ""

	if cfg != nil {
		storeEnabled = cfg.DatasetStore.Enabled
		storeURL = cfg.DatasetStore.URL
		datasetTTL = cfg.Dataset.TTLMinutes
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if storeEnabled && deepChecks {
		checkCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
		defer cancel()

		store, err := dataset.NewStore(cfg)
		if err != nil {
			datasetCountErr = err.Error()
		} else {
			defer store.Close()
			if err := store.Ping(checkCtx); err != nil {
				datasetCountErr = err.Error()
			} else {
				reachability = true
				backend = "valkey"
				count, err := store.Count(checkCtx)
				if err != nil {
					datasetCountErr = err.Error()
				} else {
					datasetCount = count
				}
			}
		}
	}

	status := "ok"
	if storeEnabled && !reachability {
		status = "degraded"
	}

	detail := map[string]any{
		"store_enabled":       storeEnabled,
		"store_connected":     reachability,
		"backend":             backend,
		"dataset_count":       datasetCount,
		"store_url":           storeURL,
		"dataset_ttl_minutes": datasetTTL,
		"deep_checked":        deepChecks,
	}
	if datasetCountErr != "" {
		detail["dataset_count_error"] = datasetCountErr
	}

	return Component{
		Status: status,
		Detail: detail,
	}
}
