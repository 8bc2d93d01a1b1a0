// Package dataset 은 분석 결과 스냅샷을 세션 범위로 보관한다.
// 백엔드는 메모리와 Valkey 두 가지이며, Valkey 에는 goccy JSON 을 zstd 로 압축해 저장한다.
package dataset

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/goccy/go-json"
	"github.com/valkey-io/valkey-go"

	"github.com/park285/comment-insight-go/internal/aggregate"
	"github.com/park285/comment-insight-go/internal/analyzer"
	"github.com/park285/comment-insight-go/internal/config"
	"github.com/park285/comment-insight-go/internal/record"
)

var (
	// ErrNotFound 는 데이터셋 미존재 오류다.
	ErrNotFound = errors.New("dataset not found")
	// ErrTooManyDatasets 는 보관 한도 초과 오류다.
	ErrTooManyDatasets = errors.New("dataset limit exceeded")
)

type storeBackend int

const (
	storeBackendMemory storeBackend = iota
	storeBackendValkey
)

// FileSummary 는 데이터셋에 수집된 파일 한 건의 요약이다.
type FileSummary struct {
	Name        string            `json:"name"`
	Kind        record.Kind       `json:"kind"`
	ParsedRows  int               `json:"parsed_rows"`
	DroppedRows int               `json:"dropped_rows"`
	CleanStats  record.CleanStats `json:"clean_stats"`
	IngestedAt  time.Time         `json:"ingested_at"`
}

// Snapshot 은 데이터셋 하나의 전체 상태다. 지표는 항상 전체 컬렉션에서 재계산된 값이다.
type Snapshot struct {
	ID        string                     `json:"id"`
	Name      string                     `json:"name"`
	CreatedAt time.Time                  `json:"created_at"`
	UpdatedAt time.Time                  `json:"updated_at"`
	Files     []FileSummary              `json:"files"`
	Comments  []analyzer.AnalyzedComment `json:"comments"`
	Videos    []analyzer.AnalyzedVideo   `json:"videos"`
	Metrics   aggregate.Metrics          `json:"metrics"`
}

// Storage 는 스냅샷 저장소 인터페이스다. 테스트에서 mock 구현을 주입할 수 있도록 한다.
type Storage interface {
	Save(ctx context.Context, snapshot *Snapshot) error
	Get(ctx context.Context, id string) (*Snapshot, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	Ping(ctx context.Context) error
	Close()
}

// Store 가 Storage 인터페이스를 구현하는지 컴파일 타임 확인
var _ Storage = (*Store)(nil)

// Store 는 메모리 또는 Valkey 기반 스냅샷 저장소다.
type Store struct {
	client  valkey.Client
	ttl     time.Duration
	backend storeBackend

	memory *memoryStore
}

// NewStore 는 설정에 따라 저장소를 만든다. 저장소가 비활성이면 메모리 백엔드를 쓴다.
func NewStore(cfg *config.Config) (*Store, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	ttl := time.Duration(cfg.Dataset.TTLMinutes) * time.Minute
	if !cfg.DatasetStore.Enabled {
		if cfg.DatasetStore.Required {
			return nil, errors.New("dataset store required but disabled")
		}
		return &Store{backend: storeBackendMemory, ttl: ttl, memory: newMemoryStore(ttl)}, nil
	}

	conn, err := parseStoreURL(cfg.DatasetStore.URL)
	if err != nil {
		return nil, fmt.Errorf("parse dataset store url: %w", err)
	}

	var tlsConfig *tls.Config
	if conn.useTLS {
		host, _, splitErr := net.SplitHostPort(conn.addr)
		if splitErr != nil {
			return nil, fmt.Errorf("parse dataset store addr: %w", splitErr)
		}
		tlsConfig = &tls.Config{MinVersion: tls.VersionTLS12, ServerName: host}
	}

	client, err := valkey.NewClient(valkey.ClientOption{
		TLSConfig:    tlsConfig,
		Username:     conn.username,
		Password:     conn.password,
		InitAddress:  []string{conn.addr},
		SelectDB:     conn.selectDB,
		DisableCache: cfg.DatasetStore.DisableCache,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to valkey: %w", err)
	}

	return &Store{client: client, ttl: ttl, backend: storeBackendValkey}, nil
}

// Close 는 Valkey 연결을 종료한다.
func (s *Store) Close() {
	if s == nil {
		return
	}
	if s.backend == storeBackendValkey && s.client != nil {
		s.client.Close()
	}
}

func (s *Store) snapshotKey(id string) string {
	return fmt.Sprintf("dataset:%s:snapshot", id)
}

// Save 는 스냅샷을 저장하고 TTL 을 재설정한다.
func (s *Store) Save(ctx context.Context, snapshot *Snapshot) error {
	if s.backend == storeBackendMemory {
		return s.memory.save(snapshot)
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	compressed, err := compressZstd(data)
	if err != nil {
		return fmt.Errorf("compress snapshot: %w", err)
	}

	cmd := s.client.B().Set().Key(s.snapshotKey(snapshot.ID)).Value(valkey.BinaryString(compressed)).Ex(s.ttl).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Get 은 스냅샷을 조회한다. 없으면 ErrNotFound 다.
func (s *Store) Get(ctx context.Context, id string) (*Snapshot, error) {
	if s.backend == storeBackendMemory {
		return s.memory.get(id)
	}

	cmd := s.client.B().Get().Key(s.snapshotKey(id)).Build()
	raw, err := s.client.Do(ctx, cmd).AsBytes()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get snapshot: %w", err)
	}

	data, err := decompressZstd(raw)
	if err != nil {
		return nil, fmt.Errorf("decompress snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return &snapshot, nil
}

// Delete 는 스냅샷을 삭제한다. 미존재는 오류가 아니다.
func (s *Store) Delete(ctx context.Context, id string) error {
	if s.backend == storeBackendMemory {
		return s.memory.delete(id)
	}

	cmd := s.client.B().Del().Key(s.snapshotKey(id)).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil && !valkey.IsValkeyNil(err) {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	return nil
}

// Count 는 보관 중인 데이터셋 수를 센다. SCAN 기반 근사치다.
func (s *Store) Count(ctx context.Context) (int, error) {
	if s.backend == storeBackendMemory {
		return s.memory.count(), nil
	}

	var count int
	var cursor uint64
	for {
		cmd := s.client.B().Scan().Cursor(cursor).Match("dataset:*:snapshot").Count(100).Build()
		result, err := s.client.Do(ctx, cmd).AsScanEntry()
		if err != nil {
			return 0, fmt.Errorf("scan datasets: %w", err)
		}
		count += len(result.Elements)
		cursor = result.Cursor
		if cursor == 0 {
			break
		}
	}
	return count, nil
}

// Ping 은 백엔드 연결을 확인한다.
func (s *Store) Ping(ctx context.Context) error {
	if s.backend == storeBackendMemory {
		return nil
	}

	cmd := s.client.B().Ping().Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("ping valkey: %w", err)
	}
	return nil
}
