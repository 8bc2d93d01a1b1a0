package di

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/park285/comment-insight-go/internal/analyzer"
	"github.com/park285/comment-insight-go/internal/classify"
	"github.com/park285/comment-insight-go/internal/config"
	"github.com/park285/comment-insight-go/internal/lexicon"
	"github.com/park285/comment-insight-go/internal/logging"
)

// ProvideLogger: 로거를 구성해 반환합니다.
func ProvideLogger(cfg *config.Config) (*slog.Logger, error) {
	logger, err := logging.NewLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return logger, nil
}

// ProvideLexicon: 설정된 디렉터리(비어있으면 내장 팩)에서 렉시콘을 로드합니다.
func ProvideLexicon(cfg *config.Config) (*lexicon.Lexicon, error) {
	lex, err := lexicon.Load(cfg.Analysis.LexiconDir)
	if err != nil {
		return nil, fmt.Errorf("load lexicon: %w", err)
	}
	return lex, nil
}

// ProvideAnalyzer: 분류기와 메모 캐시를 묶은 분석기를 생성합니다.
func ProvideAnalyzer(cfg *config.Config, lex *lexicon.Lexicon) *analyzer.Analyzer {
	cacheTTL := time.Duration(cfg.Analysis.CacheTTLSeconds) * time.Second
	return analyzer.New(classify.New(lex), cfg.Analysis.CacheMaxSize, cacheTTL)
}
