package audit

import (
	"context"
	"time"
)

// Store: 감사 저장소 인터페이스입니다.
// 테스트에서 mock 구현을 주입할 수 있도록 합니다.
type Store interface {
	// RecordIngest 수집 감사 기록
	RecordIngest(ctx context.Context, delta Delta, ingestDate time.Time) error

	// GetDailyIngest 일별 수집 감사 조회
	GetDailyIngest(ctx context.Context, ingestDate time.Time) (*DailyIngest, error)

	// GetRecentIngest 최근 N일 수집 감사 조회
	GetRecentIngest(ctx context.Context, days int) ([]DailyIngest, error)

	// GetTotalIngest 최근 N일 합계 조회
	GetTotalIngest(ctx context.Context, days int) (DailyIngest, error)

	// Close 리소스 정리
	Close()
}

// Repository가 Store 인터페이스를 구현하는지 컴파일 타임 확인
var _ Store = (*Repository)(nil)
