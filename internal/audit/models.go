package audit

import "time"

// IngestAudit 는 일자별 수집 감사 집계를 저장하는 DB 모델이다.
type IngestAudit struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	IngestDate time.Time `gorm:"column:ingest_date;type:date"`
	Files      int64     `gorm:"column:files"`
	RowsParsed int64     `gorm:"column:rows_parsed"`
	RowsKept   int64     `gorm:"column:rows_kept"`
	Comments   int64     `gorm:"column:comments"`
	Videos     int64     `gorm:"column:videos"`
	SpamHits   int64     `gorm:"column:spam_hits"`
	Version    int64     `gorm:"column:version"`
}

// TableName 은 GORM에서 사용할 테이블명을 반환한다.
func (IngestAudit) TableName() string {
	return "ingest_audit"
}

// DailyIngest 는 API/집계용 일자별 수집 뷰 모델이다.
type DailyIngest struct {
	IngestDate time.Time
	Files      int64
	RowsParsed int64
	RowsKept   int64
	Comments   int64
	Videos     int64
	SpamHits   int64
}

// KeepRate 는 파싱 대비 보존 비율(0~1)을 반환한다.
func (d DailyIngest) KeepRate() float64 {
	if d.RowsParsed <= 0 {
		return 0
	}
	return float64(d.RowsKept) / float64(d.RowsParsed)
}
