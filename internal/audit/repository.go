package audit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"sync"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/park285/comment-insight-go/internal/config"
)

// Delta 는 수집 1회분의 감사 증분이다.
type Delta struct {
	Files      int64
	RowsParsed int64
	RowsKept   int64
	Comments   int64
	Videos     int64
	SpamHits   int64
}

func (d Delta) empty() bool {
	return d.Files <= 0 && d.RowsParsed <= 0 && d.Comments <= 0 && d.Videos <= 0
}

// Repository 는 감사 DB 접근을 담당한다.
type Repository struct {
	cfg    *config.Config
	logger *slog.Logger
	mu     sync.Mutex
	db     *gorm.DB
	sqlDB  *sql.DB
}

// NewRepository 는 감사 저장소를 생성한다.
func NewRepository(cfg *config.Config, logger *slog.Logger) *Repository {
	return &Repository{
		cfg:    cfg,
		logger: logger,
	}
}

// RecordIngest 는 지정한 날짜(또는 오늘)의 수집 감사를 누적 저장한다.
func (r *Repository) RecordIngest(ctx context.Context, delta Delta, ingestDate time.Time) error {
	if delta.empty() {
		return nil
	}

	db, err := r.getDB(ctx)
	if err != nil {
		return err
	}

	targetDate := ingestDate
	if targetDate.IsZero() {
		targetDate = todayDate()
	}

	row := IngestAudit{
		IngestDate: targetDate,
		Files:      delta.Files,
		RowsParsed: delta.RowsParsed,
		RowsKept:   delta.RowsKept,
		Comments:   delta.Comments,
		Videos:     delta.Videos,
		SpamHits:   delta.SpamHits,
		Version:    0,
	}

	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "ingest_date"}},
		DoUpdates: clause.Assignments(map[string]any{
			"files":       gorm.Expr("ingest_audit.files + EXCLUDED.files"),
			"rows_parsed": gorm.Expr("ingest_audit.rows_parsed + EXCLUDED.rows_parsed"),
			"rows_kept":   gorm.Expr("ingest_audit.rows_kept + EXCLUDED.rows_kept"),
			"comments":    gorm.Expr("ingest_audit.comments + EXCLUDED.comments"),
			"videos":      gorm.Expr("ingest_audit.videos + EXCLUDED.videos"),
			"spam_hits":   gorm.Expr("ingest_audit.spam_hits + EXCLUDED.spam_hits"),
			"version":     gorm.Expr("ingest_audit.version + 1"),
		}),
	}).Create(&row).Error
}

// GetDailyIngest 는 특정 날짜(또는 오늘)의 수집 감사를 조회한다.
func (r *Repository) GetDailyIngest(ctx context.Context, ingestDate time.Time) (*DailyIngest, error) {
	db, err := r.getDB(ctx)
	if err != nil {
		return nil, err
	}

	targetDate := ingestDate
	if targetDate.IsZero() {
		targetDate = todayDate()
	}

	var row IngestAudit
	result := db.WithContext(ctx).Where("ingest_date = ?", targetDate).First(&row)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if result.Error != nil {
		return nil, result.Error
	}

	return &DailyIngest{
		IngestDate: row.IngestDate,
		Files:      row.Files,
		RowsParsed: row.RowsParsed,
		RowsKept:   row.RowsKept,
		Comments:   row.Comments,
		Videos:     row.Videos,
		SpamHits:   row.SpamHits,
	}, nil
}

// GetRecentIngest 는 최근 N일 수집 감사를 조회한다.
func (r *Repository) GetRecentIngest(ctx context.Context, days int) ([]DailyIngest, error) {
	db, err := r.getDB(ctx)
	if err != nil {
		return nil, err
	}
	if days <= 0 {
		days = 7
	}

	var rows []IngestAudit
	if err := db.WithContext(ctx).Order("ingest_date desc").Limit(days).Find(&rows).Error; err != nil {
		return nil, err
	}

	ingests := make([]DailyIngest, 0, len(rows))
	for _, row := range rows {
		ingests = append(ingests, DailyIngest{
			IngestDate: row.IngestDate,
			Files:      row.Files,
			RowsParsed: row.RowsParsed,
			RowsKept:   row.RowsKept,
			Comments:   row.Comments,
			Videos:     row.Videos,
			SpamHits:   row.SpamHits,
		})
	}
	return ingests, nil
}

// GetTotalIngest 는 최근 N일 합계를 조회한다.
func (r *Repository) GetTotalIngest(ctx context.Context, days int) (DailyIngest, error) {
	db, err := r.getDB(ctx)
	if err != nil {
		return DailyIngest{}, err
	}
	if days <= 0 {
		days = 30
	}

	type aggregate struct {
		Files      int64
		RowsParsed int64
		RowsKept   int64
		Comments   int64
		Videos     int64
		SpamHits   int64
	}

	var result aggregate
	if err := db.WithContext(ctx).Raw(`
			SELECT
				COALESCE(SUM(files), 0) as files,
				COALESCE(SUM(rows_parsed), 0) as rows_parsed,
				COALESCE(SUM(rows_kept), 0) as rows_kept,
				COALESCE(SUM(comments), 0) as comments,
				COALESCE(SUM(videos), 0) as videos,
				COALESCE(SUM(spam_hits), 0) as spam_hits
			FROM ingest_audit
			WHERE ingest_date >= CURRENT_DATE - (?::int)`, days).Scan(&result).Error; err != nil {
		return DailyIngest{}, err
	}

	return DailyIngest{
		IngestDate: todayDate(),
		Files:      result.Files,
		RowsParsed: result.RowsParsed,
		RowsKept:   result.RowsKept,
		Comments:   result.Comments,
		Videos:     result.Videos,
		SpamHits:   result.SpamHits,
	}, nil
}

// Close 는 DB 연결을 닫는다.
func (r *Repository) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sqlDB == nil {
		return
	}
	_ = r.sqlDB.Close()
	r.sqlDB = nil
	r.db = nil
}

func (r *Repository) getDB(ctx context.Context) (*gorm.DB, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.db != nil {
		return r.db, nil
	}
	if r.cfg == nil {
		return nil, errors.New("database config is nil")
	}

	hostUsed := r.cfg.Database.Host
	dsn := r.cfg.Database.DSN()
	gormCfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)}
	db, err := gorm.Open(postgres.Open(dsn), gormCfg)
	if err != nil && shouldFallbackToLocalhost(err, r.cfg.Database.Host) {
		fallback := r.cfg.Database
		fallback.Host = "127.0.0.1"
		fallbackDSN := fallback.DSN()
		db, err = gorm.Open(postgres.Open(fallbackDSN), gormCfg)
		if err == nil {
			hostUsed = fallback.Host
			if r.logger != nil {
				r.logger.Warn(
					"audit_db_host_fallback",
					"configured_host", r.cfg.Database.Host,
					"effective_host", hostUsed,
				)
			}
		}
	}
	if err != nil {
		return nil, fmt.Errorf("open audit db: %w", err)
	}

	if schemaErr := ensureAuditSchema(db); schemaErr != nil {
		return nil, fmt.Errorf("prepare audit db: %w", schemaErr)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get audit db handle: %w", err)
	}

	sqlDB.SetMaxIdleConns(r.cfg.Database.MinPool)
	sqlDB.SetMaxOpenConns(r.cfg.Database.MaxPool)
	if r.cfg.Database.ConnMaxLifetimeMinutes > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(r.cfg.Database.ConnMaxLifetimeMinutes) * time.Minute)
	}
	if r.cfg.Database.ConnMaxIdleTimeMinutes > 0 {
		sqlDB.SetConnMaxIdleTime(time.Duration(r.cfg.Database.ConnMaxIdleTimeMinutes) * time.Minute)
	}

	if r.logger != nil {
		r.logger.Info("audit_db_connected", "host", hostUsed, "name", r.cfg.Database.Name)
	}

	r.db = db
	r.sqlDB = sqlDB
	return db, nil
}

func ensureAuditSchema(db *gorm.DB) error {
	if db == nil {
		return errors.New("db is nil")
	}

	if err := db.Exec(`
			CREATE TABLE IF NOT EXISTS ingest_audit (
				id BIGSERIAL PRIMARY KEY,
				ingest_date DATE NOT NULL,
				files BIGINT NOT NULL DEFAULT 0,
				rows_parsed BIGINT NOT NULL DEFAULT 0,
				rows_kept BIGINT NOT NULL DEFAULT 0,
				comments BIGINT NOT NULL DEFAULT 0,
				videos BIGINT NOT NULL DEFAULT 0,
				spam_hits BIGINT NOT NULL DEFAULT 0,
				version BIGINT NOT NULL DEFAULT 0
			)
		`).Error; err != nil {
		return fmt.Errorf("create ingest_audit table: %w", err)
	}

	if err := db.Exec(`
			CREATE UNIQUE INDEX IF NOT EXISTS idx_ingest_audit_ingest_date
			ON ingest_audit (ingest_date)
		`).Error; err != nil {
		return fmt.Errorf("create ingest_audit ingest_date unique index: %w", err)
	}

	return nil
}

func todayDate() time.Time {
	now := time.Now().In(time.Local)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func shouldFallbackToLocalhost(err error, host string) bool {
	if err == nil {
		return false
	}
	if host == "" || host == "127.0.0.1" || strings.EqualFold(host, "localhost") {
		return false
	}
	if !strings.EqualFold(host, "postgres") {
		return false
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return strings.EqualFold(dnsErr.Name, host)
	}

	lower := strings.ToLower(err.Error())
	hostLower := strings.ToLower(host)
	if strings.Contains(lower, "lookup "+hostLower) && strings.Contains(lower, "no such host") {
		return true
	}
	return strings.Contains(lower, "no such host") && strings.Contains(lower, hostLower)
}
