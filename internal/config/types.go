package config

import (
	"net"
	"net/url"
	"strconv"
)

// AnalysisConfig: 분석 엔진 설정입니다.
type AnalysisConfig struct {
	LexiconDir      string // 비어있으면 내장 팩 사용
	CacheMaxSize    int
	CacheTTLSeconds int
}

// DatasetConfig: 데이터셋 보관 설정입니다.
type DatasetConfig struct {
	MaxDatasets int
	TTLMinutes  int
}

// DatasetStoreConfig: 데이터셋 저장소 연결 설정입니다.
type DatasetStoreConfig struct {
	URL                 string
	Enabled             bool
	Required            bool
	DisableCache        bool
	ConnectMaxAttempts  int
	ConnectRetrySeconds int
}

// UploadConfig: 업로드 제한 설정입니다.
type UploadConfig struct {
	MaxFileSizeMB int
	MaxFiles      int
}

// LoggingConfig: 로깅 설정입니다.
type LoggingConfig struct {
	Level      string
	LogDir     string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// HTTPConfig: HTTP 서버 설정입니다.
type HTTPConfig struct {
	Host         string
	Port         int
	HTTP2Enabled bool
}

// HTTPAuthConfig: API 키 인증 설정입니다.
type HTTPAuthConfig struct {
	APIKey string
}

// HTTPRateLimitConfig: 요청 제한 설정입니다.
type HTTPRateLimitConfig struct {
	RequestsPerMinute int
	CacheSize         int
	CacheTTLSeconds   int
}

// DatabaseConfig: 감사 로그 DB 연결 및 배치 설정입니다.
type DatabaseConfig struct {
	Host                            string
	Port                            int
	Name                            string
	User                            string
	Password                        string
	MinPool                         int
	MaxPool                         int
	ConnMaxLifetimeMinutes          int
	ConnMaxIdleTimeMinutes          int
	AuditBatchEnabled               bool
	AuditFlushIntervalSeconds       int
	AuditFlushTimeoutSeconds        int
	AuditMaxPendingBatches          int
	AuditMaxBackoffSeconds          int
	AuditErrorLogMaxIntervalSeconds int
}

// DSN: DB 접속 문자열을 반환합니다.
func (d DatabaseConfig) DSN() string {
	host := net.JoinHostPort(d.Host, strconv.Itoa(d.Port))
	u := &url.URL{
		Scheme: "postgresql",
		Host:   host,
		Path:   "/" + d.Name,
	}
	if d.Password == "" {
		u.User = url.User(d.User)
	} else {
		u.User = url.UserPassword(d.User, d.Password)
	}
	return u.String()
}

// Config: 애플리케이션 전체 설정입니다.
type Config struct {
	Analysis      AnalysisConfig
	Dataset       DatasetConfig
	DatasetStore  DatasetStoreConfig
	Upload        UploadConfig
	Logging       LoggingConfig
	HTTP          HTTPConfig
	HTTPAuth      HTTPAuthConfig
	HTTPRateLimit HTTPRateLimitConfig
	Database      DatabaseConfig
}
