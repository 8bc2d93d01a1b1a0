package httperror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/park285/comment-insight-go/internal/dataset"
	"github.com/park285/comment-insight-go/internal/pipeline"
)

// ErrorCode 는 API 오류 코드다.
type ErrorCode string

const (
	// ErrorCodeInternal 는 내부 오류 코드다.
	ErrorCodeInternal ErrorCode = "INTERNAL_ERROR"
	// ErrorCodeValidation 는 검증 오류 코드다.
	ErrorCodeValidation ErrorCode = "VALIDATION_ERROR"
	// ErrorCodeUnauthorized 는 인증 오류 코드다.
	ErrorCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	// ErrorCodeHTTPRateLimit 는 요청 제한 오류 코드다.
	ErrorCodeHTTPRateLimit ErrorCode = "HTTP_RATE_LIMIT"
	// ErrorCodeEmptyFile 는 빈 파일 코드다.
	ErrorCodeEmptyFile ErrorCode = "EMPTY_FILE"
	// ErrorCodeUnknownSchema 는 스키마 판별 실패 코드다.
	ErrorCodeUnknownSchema ErrorCode = "UNKNOWN_SCHEMA"
	// ErrorCodeDatasetNotFound 는 데이터셋 미존재 코드다.
	ErrorCodeDatasetNotFound ErrorCode = "DATASET_NOT_FOUND"
	// ErrorCodeDatasetLimit 는 데이터셋 제한 초과 코드다.
	ErrorCodeDatasetLimit ErrorCode = "DATASET_LIMIT_EXCEEDED"
	// ErrorCodeNoValidFiles 는 처리 가능한 파일 없음 코드다.
	ErrorCodeNoValidFiles ErrorCode = "NO_VALID_FILES"
	// ErrorCodeUploadTooLarge 는 업로드 크기 초과 코드다.
	ErrorCodeUploadTooLarge ErrorCode = "UPLOAD_TOO_LARGE"
	// ErrorCodeInvalidInput 는 입력 오류 코드다.
	ErrorCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrorCodeMissingField 는 필드 누락 코드다.
	ErrorCodeMissingField ErrorCode = "MISSING_FIELD"
)

// ErrorResponse 는 API 오류 응답 본문이다.
type ErrorResponse struct {
	ErrorCode string         `json:"error_code"`
	ErrorType string         `json:"error_type"`
	Message   string         `json:"message"`
	RequestID *string        `json:"request_id"`
	Details   map[string]any `json:"details"`
}

// Error 는 내부 표준 오류 타입이다.
type Error struct {
	Code    ErrorCode
	Status  int
	Type    string
	Message string
	Details map[string]any
}

// Error 는 오류 메시지를 반환한다.
func (e *Error) Error() string {
	return e.Message
}

// Response 는 오류를 HTTP 응답으로 변환한다.
func Response(err error, requestID string) (int, ErrorResponse) {
	apiErr := FromError(err)
	if apiErr == nil {
		apiErr = NewInternalError("unknown error")
	}

	var requestIDPtr *string
	if requestID != "" {
		requestIDPtr = &requestID
	}

	return apiErr.Status, ErrorResponse{
		ErrorCode: string(apiErr.Code),
		ErrorType: apiErr.Type,
		Message:   apiErr.Message,
		RequestID: requestIDPtr,
		Details:   apiErr.Details,
	}
}

// FromError 는 오류를 내부 오류 타입으로 변환한다.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}

	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}

	if errors.Is(err, dataset.ErrNotFound) {
		return NewDatasetNotFound("")
	}

	if errors.Is(err, dataset.ErrTooManyDatasets) {
		return NewDatasetLimitExceeded(nil)
	}

	if errors.Is(err, dataset.ErrNoValidFiles) {
		return NewNoValidFiles(nil)
	}

	if errors.Is(err, pipeline.ErrEmptyFile) {
		return NewEmptyFile(err.Error())
	}

	if errors.Is(err, pipeline.ErrUnknownSchema) {
		return NewUnknownSchema(err.Error())
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		return NewValidationError(err)
	}

	return NewInternalError(err.Error())
}

// NewInternalError 는 내부 오류를 생성한다.
func NewInternalError(message string) *Error {
	return &Error{
		Code:    ErrorCodeInternal,
		Status:  http.StatusInternalServerError,
		Type:    "InternalError",
		Message: message,
		Details: nil,
	}
}

// NewValidationError 는 검증 오류를 생성한다.
func NewValidationError(err error) *Error {
	return &Error{
		Code:    ErrorCodeValidation,
		Status:  http.StatusUnprocessableEntity,
		Type:    "ValidationError",
		Message: "Input validation failed",
		Details: validationDetails(err),
	}
}

// NewMissingField 는 누락 필드 오류를 생성한다.
func NewMissingField(field string) *Error {
	return &Error{
		Code:    ErrorCodeMissingField,
		Status:  http.StatusBadRequest,
		Type:    "MissingFieldError",
		Message: fmt.Sprintf("Field '%s' required", field),
		Details: map[string]any{"field": field},
	}
}

// NewInvalidInput 는 입력 오류를 생성한다.
func NewInvalidInput(message string) *Error {
	return &Error{
		Code:    ErrorCodeInvalidInput,
		Status:  http.StatusBadRequest,
		Type:    "InvalidInputError",
		Message: message,
		Details: nil,
	}
}

// NewUnauthorized 는 인증 오류를 생성한다.
func NewUnauthorized(details map[string]any) *Error {
	return &Error{
		Code:    ErrorCodeUnauthorized,
		Status:  http.StatusUnauthorized,
		Type:    "UnauthorizedError",
		Message: "Invalid API key",
		Details: details,
	}
}

// NewRateLimitExceeded 는 요청 제한 오류를 생성한다.
func NewRateLimitExceeded(details map[string]any) *Error {
	return &Error{
		Code:    ErrorCodeHTTPRateLimit,
		Status:  http.StatusTooManyRequests,
		Type:    "HTTPRateLimitExceededError",
		Message: "Rate limit exceeded",
		Details: details,
	}
}

// NewEmptyFile 는 빈 파일 오류를 생성한다.
func NewEmptyFile(message string) *Error {
	return &Error{
		Code:    ErrorCodeEmptyFile,
		Status:  http.StatusBadRequest,
		Type:    "EmptyFileError",
		Message: message,
		Details: nil,
	}
}

// NewUnknownSchema 는 스키마 판별 실패 오류를 생성한다.
func NewUnknownSchema(message string) *Error {
	return &Error{
		Code:    ErrorCodeUnknownSchema,
		Status:  http.StatusBadRequest,
		Type:    "UnknownSchemaError",
		Message: message,
		Details: nil,
	}
}

// NewDatasetNotFound 는 데이터셋 미존재 오류를 생성한다.
func NewDatasetNotFound(datasetID string) *Error {
	message := "Dataset not found"
	var details map[string]any
	if datasetID != "" {
		message = fmt.Sprintf("Dataset '%s' not found", datasetID)
		details = map[string]any{"dataset_id": datasetID}
	}
	return &Error{
		Code:    ErrorCodeDatasetNotFound,
		Status:  http.StatusNotFound,
		Type:    "DatasetNotFoundError",
		Message: message,
		Details: details,
	}
}

// NewDatasetLimitExceeded 는 데이터셋 제한 초과 오류를 생성한다.
func NewDatasetLimitExceeded(details map[string]any) *Error {
	return &Error{
		Code:    ErrorCodeDatasetLimit,
		Status:  http.StatusConflict,
		Type:    "DatasetLimitExceededError",
		Message: "Dataset limit exceeded",
		Details: details,
	}
}

// NewNoValidFiles 는 처리 가능한 파일 없음 오류를 생성한다.
func NewNoValidFiles(details map[string]any) *Error {
	return &Error{
		Code:    ErrorCodeNoValidFiles,
		Status:  http.StatusBadRequest,
		Type:    "NoValidFilesError",
		Message: "No files could be processed",
		Details: details,
	}
}

// NewUploadTooLarge 는 업로드 크기 초과 오류를 생성한다.
func NewUploadTooLarge(maxSizeMB int) *Error {
	return &Error{
		Code:    ErrorCodeUploadTooLarge,
		Status:  http.StatusRequestEntityTooLarge,
		Type:    "UploadTooLargeError",
		Message: fmt.Sprintf("Upload exceeds %dMB limit", maxSizeMB),
		Details: map[string]any{"max_file_size_mb": maxSizeMB},
	}
}

// FieldError 는 필드 오류 상세 정보다.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   any    `json:"value"`
}

func validationDetails(err error) map[string]any {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		fields := make([]FieldError, 0, len(validationErrors))
		for _, validationErr := range validationErrors {
			fields = append(fields, FieldError{
				Field:   validationErr.Field(),
				Message: validationErr.Error(),
				Value:   validationErr.Value(),
			})
		}
		return map[string]any{"errors": fields}
	}

	return map[string]any{
		"errors": []FieldError{
			{
				Field:   "body",
				Message: err.Error(),
				Value:   nil,
			},
		},
	}
}
