package httperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/park285/comment-insight-go/internal/dataset"
	"github.com/park285/comment-insight-go/internal/pipeline"
)

func TestFromErrorMapping(t *testing.T) {
	apiErr := FromError(dataset.ErrNotFound)
	if apiErr == nil || apiErr.Code != ErrorCodeDatasetNotFound || apiErr.Status != http.StatusNotFound {
		t.Fatalf("expected dataset not found with 404")
	}

	apiErr = FromError(dataset.ErrTooManyDatasets)
	if apiErr == nil || apiErr.Code != ErrorCodeDatasetLimit || apiErr.Status != http.StatusConflict {
		t.Fatalf("expected dataset limit with 409")
	}

	apiErr = FromError(dataset.ErrNoValidFiles)
	if apiErr == nil || apiErr.Code != ErrorCodeNoValidFiles {
		t.Fatalf("expected no valid files error")
	}

	apiErr = FromError(fmt.Errorf("process comments.csv: %w", pipeline.ErrEmptyFile))
	if apiErr == nil || apiErr.Code != ErrorCodeEmptyFile || apiErr.Status != http.StatusBadRequest {
		t.Fatalf("expected empty file with 400")
	}

	apiErr = FromError(pipeline.ErrUnknownSchema)
	if apiErr == nil || apiErr.Code != ErrorCodeUnknownSchema {
		t.Fatalf("expected unknown schema error")
	}
}

func TestResponseIncludesRequestID(t *testing.T) {
	status, payload := Response(NewMissingField("id"), "req-1")
	if status != 400 {
		t.Fatalf("unexpected status: %d", status)
	}
	if payload.RequestID == nil || *payload.RequestID != "req-1" {
		t.Fatalf("expected request id")
	}
}

func TestNewMissingField(t *testing.T) {
	err := NewMissingField("dataset_id")
	if err == nil {
		t.Fatalf("expected non-nil error")
	}
	if err.Status != http.StatusBadRequest {
		t.Fatalf("expected 400 status, got: %d", err.Status)
	}
	if err.Code != ErrorCodeMissingField {
		t.Fatalf("expected missing field error code")
	}
}

func TestNewDatasetNotFound(t *testing.T) {
	err := NewDatasetNotFound("ds-abc")
	if err.Status != http.StatusNotFound {
		t.Fatalf("expected 404 status, got: %d", err.Status)
	}
	if err.Details["dataset_id"] != "ds-abc" {
		t.Fatalf("expected dataset id detail")
	}
}

func TestNewUploadTooLarge(t *testing.T) {
	err := NewUploadTooLarge(20)
	if err.Status != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413 status, got: %d", err.Status)
	}
}

func TestNewValidationError(t *testing.T) {
	originalErr := errors.New("field validation failed")
	err := NewValidationError(originalErr)
	if err == nil {
		t.Fatalf("expected non-nil error")
	}
	// NewValidationError 는 422 Unprocessable Entity 반환
	if err.Status != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 status, got: %d", err.Status)
	}
}

func TestNewInternalError(t *testing.T) {
	err := NewInternalError("something went wrong")
	if err == nil {
		t.Fatalf("expected non-nil error")
	}
	if err.Status != http.StatusInternalServerError {
		t.Fatalf("expected 500 status, got: %d", err.Status)
	}
	if err.Code != ErrorCodeInternal {
		t.Fatalf("expected internal error code")
	}
}

func TestAPIErrorError(t *testing.T) {
	err := NewMissingField("test")
	msg := err.Error()
	if msg == "" {
		t.Fatalf("expected non-empty error message")
	}
}

func TestFromErrorNil(t *testing.T) {
	apiErr := FromError(nil)
	if apiErr != nil {
		t.Fatalf("expected nil for nil input")
	}
}

func TestFromErrorGeneric(t *testing.T) {
	genericErr := errors.New("some generic error")
	apiErr := FromError(genericErr)
	if apiErr == nil {
		t.Fatalf("expected non-nil error")
	}
	if apiErr.Status != http.StatusInternalServerError {
		t.Fatalf("expected 500 for generic error")
	}
}

func TestResponseWithEmptyRequestID(t *testing.T) {
	status, payload := Response(NewInternalError("test"), "")
	if status != 500 {
		t.Fatalf("unexpected status: %d", status)
	}
	if payload.RequestID != nil {
		t.Fatalf("expected nil request id for empty string")
	}
}
