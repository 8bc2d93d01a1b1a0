package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/park285/comment-insight-go/internal/analyzer"
	"github.com/park285/comment-insight-go/internal/classify"
	"github.com/park285/comment-insight-go/internal/config"
	"github.com/park285/comment-insight-go/internal/dataset"
	"github.com/park285/comment-insight-go/internal/lexicon"
	"github.com/park285/comment-insight-go/internal/logging"
	"github.com/park285/comment-insight-go/internal/pipeline"
	"github.com/park285/comment-insight-go/internal/stats"
)

const commentsCSV = "commentId,videoId,textOriginal,authorId,likeCount,publishedAt\n" +
	"c1,v1,\"This serum is amazing, holy grail skincare!\",a1,15,2024-03-01T10:00:00Z\n" +
	"c2,v1,dm me for free money now,a2,0,2024-03-01T11:00:00Z\n"

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Dataset:      config.DatasetConfig{MaxDatasets: 10, TTLMinutes: 30},
		DatasetStore: config.DatasetStoreConfig{Enabled: false},
		Upload:       config.UploadConfig{MaxFileSizeMB: 1, MaxFiles: 3},
	}

	lex, err := lexicon.New()
	if err != nil {
		t.Fatalf("lexicon.New() error: %v", err)
	}
	store, err := dataset.NewStore(cfg)
	if err != nil {
		t.Fatalf("dataset.NewStore() error: %v", err)
	}
	processor := pipeline.New(
		analyzer.New(classify.New(lex), 0, time.Minute),
		stats.New(prometheus.NewRegistry()),
		logging.Discard(),
	)
	service := dataset.NewService(store, processor, cfg.Dataset.MaxDatasets, logging.Discard())

	router := gin.New()
	NewDatasetHandler(cfg, service, nil, logging.Discard()).RegisterRoutes(router)
	return router
}

func multipartUpload(t *testing.T, fields map[string]string, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	for name, content := range files {
		part, err := writer.CreateFormFile("files", name)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write([]byte(content)); err != nil {
			t.Fatalf("write file part: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &body, writer.FormDataContentType()
}

func ingestFixture(t *testing.T, router *gin.Engine) IngestResponse {
	t.Helper()
	body, contentType := multipartUpload(t,
		map[string]string{"name": "fixture"},
		map[string]string{"comments.csv": commentsCSV},
	)
	req := httptest.NewRequest(http.MethodPost, "/api/datasets", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("ingest status = %d, body = %s", resp.Code, resp.Body.String())
	}

	var payload IngestResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode ingest response: %v", err)
	}
	return payload
}

func TestDatasetIngestAndGet(t *testing.T) {
	router := newTestRouter(t)

	payload := ingestFixture(t, router)
	if payload.Dataset.ID == "" || payload.Dataset.Name != "fixture" {
		t.Fatalf("dataset = %+v", payload.Dataset)
	}
	if payload.Dataset.Comments != 2 {
		t.Fatalf("comments = %d", payload.Dataset.Comments)
	}
	if len(payload.Files) != 1 || payload.Files[0].Status != "ok" {
		t.Fatalf("files = %+v", payload.Files)
	}
	if payload.Metrics.TotalComments != 2 {
		t.Fatalf("metrics = %+v", payload.Metrics)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/datasets/"+payload.Dataset.ID, nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("get status = %d", resp.Code)
	}
}

func TestDatasetIngestMissingFiles(t *testing.T) {
	router := newTestRouter(t)

	body, contentType := multipartUpload(t, map[string]string{"name": "empty"}, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/datasets", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestDatasetIngestTooManyFiles(t *testing.T) {
	router := newTestRouter(t)

	body, contentType := multipartUpload(t, nil, map[string]string{
		"a.csv": commentsCSV,
		"b.csv": commentsCSV,
		"c.csv": commentsCSV,
		"d.csv": commentsCSV,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/datasets", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestDatasetCommentsFilter(t *testing.T) {
	router := newTestRouter(t)
	payload := ingestFixture(t, router)

	req := httptest.NewRequest(http.MethodGet, "/api/datasets/"+payload.Dataset.ID+"/comments?spam=true", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("comments status = %d", resp.Code)
	}

	var list CommentListResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode comments: %v", err)
	}
	if list.Total != 1 || list.Comments[0].CommentID != "c2" {
		t.Fatalf("spam filter = %+v", list)
	}

	badReq := httptest.NewRequest(http.MethodGet, "/api/datasets/"+payload.Dataset.ID+"/comments?spam=maybe", nil)
	badResp := httptest.NewRecorder()
	router.ServeHTTP(badResp, badReq)
	if badResp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad bool, got %d", badResp.Code)
	}
}

func TestDatasetMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t)
	payload := ingestFixture(t, router)

	req := httptest.NewRequest(http.MethodGet, "/api/datasets/"+payload.Dataset.ID+"/metrics", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("metrics status = %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "total_comments") {
		t.Fatalf("metrics body = %s", resp.Body.String())
	}
}

func TestDatasetExport(t *testing.T) {
	router := newTestRouter(t)
	payload := ingestFixture(t, router)

	req := httptest.NewRequest(http.MethodGet, "/api/datasets/"+payload.Dataset.ID+"/export", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("export status = %d", resp.Code)
	}
	if !strings.Contains(resp.Header().Get("Content-Disposition"), "attachment") {
		t.Fatalf("disposition = %q", resp.Header().Get("Content-Disposition"))
	}
	if !strings.HasPrefix(resp.Body.String(), "Comment ID,") {
		t.Fatalf("export body = %q", resp.Body.String())
	}
}

func TestDatasetDelete(t *testing.T) {
	router := newTestRouter(t)
	payload := ingestFixture(t, router)

	req := httptest.NewRequest(http.MethodDelete, "/api/datasets/"+payload.Dataset.ID, nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", resp.Code)
	}

	getReq := httptest.NewRequest(http.MethodGet, "/api/datasets/"+payload.Dataset.ID, nil)
	getResp := httptest.NewRecorder()
	router.ServeHTTP(getResp, getReq)
	if getResp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", getResp.Code)
	}
	if !strings.Contains(getResp.Body.String(), "DATASET_NOT_FOUND") {
		t.Fatalf("body = %s", getResp.Body.String())
	}
}
