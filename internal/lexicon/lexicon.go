// Package lexicon 은 분류기들이 사용하는 키워드 팩을 관리한다.
// 팩은 YAML 로 기술되어 바이너리에 내장되며, LEXICON_DIR 로 파일 단위 교체가 가능하다.
package lexicon

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/cloudflare/ahocorasick"
	"gopkg.in/yaml.v3"
)

//go:embed packs/*.yml
var packsFS embed.FS

// 카테고리 키워드 등급별 가중치. 분류 공식에 고정되어 있어 팩으로 빼지 않는다.
const (
	PrimaryWeight   = 3.0
	SecondaryWeight = 2.0
	NegativeWeight  = 1.0
)

// PhraseSet 은 소문자 구문 목록과 Aho-Corasick 매처를 묶는다.
// 매칭은 빈도가 아니라 존재 여부다: 구문당 최대 1회 보고된다.
type PhraseSet struct {
	phrases []string
	matcher *ahocorasick.Matcher
}

func newPhraseSet(phrases []string) *PhraseSet {
	lowered := make([]string, 0, len(phrases))
	patterns := make([][]byte, 0, len(phrases))
	for _, phrase := range phrases {
		value := strings.ToLower(strings.TrimSpace(phrase))
		if value == "" {
			continue
		}
		lowered = append(lowered, value)
		patterns = append(patterns, []byte(value))
	}

	set := &PhraseSet{phrases: lowered}
	if len(patterns) > 0 {
		set.matcher = ahocorasick.NewMatcher(patterns)
	}
	return set
}

// Matches 는 textLower 에 부분 문자열로 존재하는 구문들을 선언 순서대로 반환한다.
func (s *PhraseSet) Matches(textLower string) []string {
	if s == nil || s.matcher == nil || textLower == "" {
		return nil
	}

	indexes := s.matcher.MatchThreadSafe([]byte(textLower))
	if len(indexes) == 0 {
		return nil
	}
	sort.Ints(indexes)

	matched := make([]string, 0, len(indexes))
	for _, index := range indexes {
		if index < 0 || index >= len(s.phrases) {
			continue
		}
		matched = append(matched, s.phrases[index])
	}
	return matched
}

// Size 는 구문 수를 반환한다.
func (s *PhraseSet) Size() int {
	if s == nil {
		return 0
	}
	return len(s.phrases)
}

// Tier 는 감성 등급이다.
type Tier struct {
	Name    string
	Weight  float64
	Phrases *PhraseSet
}

// Category 는 분류 대상 카테고리다. Primary/Secondary/Negative 순으로 3/2/1 가중치를 갖는다.
type Category struct {
	Name      string
	Primary   *PhraseSet
	Secondary *PhraseSet
	Negative  *PhraseSet
}

// SpamFamily 는 스팸 패턴 계열이다. PerMatch 가 참이면 일치 구문마다 가중치가 누적된다.
type SpamFamily struct {
	Name     string
	Weight   float64
	PerMatch bool
	Phrases  *PhraseSet
	Patterns []*regexp.Regexp
}

// SpamHeuristics 는 구문 매칭 외의 휴리스틱 가중치다.
type SpamHeuristics struct {
	ShortText  float64 `yaml:"short_text"`
	EmojiFlood float64 `yaml:"emoji_flood"`
	CapsRatio  float64 `yaml:"caps_ratio"`
	URL        float64 `yaml:"url"`
}

// Lexicon 은 컴파일된 전체 팩이다. 생성 후 불변이며 프로세스 전역에서 공유된다.
type Lexicon struct {
	Tiers             []Tier
	Categories        []Category
	SpamFamilies      []SpamFamily
	SpamHeuristics    SpamHeuristics
	IndicatorWeight   float64
	QualityIndicators *PhraseSet
	stopwords         map[string]struct{}
}

// IsStopword 는 소문자 토큰이 불용어인지 반환한다.
func (l *Lexicon) IsStopword(word string) bool {
	if l == nil {
		return false
	}
	_, ok := l.stopwords[word]
	return ok
}

// CategoryNames 는 선언 순서의 카테고리 이름 목록을 반환한다.
func (l *Lexicon) CategoryNames() []string {
	names := make([]string, 0, len(l.Categories))
	for _, category := range l.Categories {
		names = append(names, category.Name)
	}
	return names
}

// CategoryByName 는 이름으로 카테고리를 찾는다.
func (l *Lexicon) CategoryByName(name string) (Category, bool) {
	for _, category := range l.Categories {
		if category.Name == name {
			return category, true
		}
	}
	return Category{}, false
}

// New 는 내장 팩으로 렉시콘을 구성한다.
func New() (*Lexicon, error) {
	return Load("")
}

// Load 는 렉시콘을 구성한다. dir 이 지정되면 같은 이름의 파일이 내장 팩을 대체한다.
func Load(dir string) (*Lexicon, error) {
	lex := &Lexicon{}

	if err := loadSentiment(lex, dir); err != nil {
		return nil, fmt.Errorf("load sentiment pack: %w", err)
	}
	if err := loadCategories(lex, dir); err != nil {
		return nil, fmt.Errorf("load categories pack: %w", err)
	}
	if err := loadSpam(lex, dir); err != nil {
		return nil, fmt.Errorf("load spam pack: %w", err)
	}
	if err := loadQuality(lex, dir); err != nil {
		return nil, fmt.Errorf("load quality pack: %w", err)
	}
	if err := loadStopwords(lex, dir); err != nil {
		return nil, fmt.Errorf("load stopwords pack: %w", err)
	}

	return lex, nil
}

func readPack(dir string, name string) ([]byte, error) {
	if dir != "" {
		path := filepath.Join(dir, name)
		if data, err := os.ReadFile(path); err == nil {
			return data, nil
		}
	}
	return fs.ReadFile(packsFS, "packs/"+name)
}

type rawSentimentPack struct {
	Version int `yaml:"version"`
	Tiers   []struct {
		Name    string   `yaml:"name"`
		Weight  float64  `yaml:"weight"`
		Phrases []string `yaml:"phrases"`
	} `yaml:"tiers"`
}

func loadSentiment(lex *Lexicon, dir string) error {
	data, err := readPack(dir, "sentiment.yml")
	if err != nil {
		return err
	}

	var raw rawSentimentPack
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw.Tiers) == 0 {
		return fmt.Errorf("no sentiment tiers defined")
	}

	tiers := make([]Tier, 0, len(raw.Tiers))
	for _, tier := range raw.Tiers {
		if tier.Name == "" || tier.Weight == 0 || len(tier.Phrases) == 0 {
			return fmt.Errorf("invalid sentiment tier: %q", tier.Name)
		}
		tiers = append(tiers, Tier{
			Name:    tier.Name,
			Weight:  tier.Weight,
			Phrases: newPhraseSet(tier.Phrases),
		})
	}
	lex.Tiers = tiers
	return nil
}

type rawCategoriesPack struct {
	Version    int `yaml:"version"`
	Categories []struct {
		Name      string   `yaml:"name"`
		Primary   []string `yaml:"primary"`
		Secondary []string `yaml:"secondary"`
		Negative  []string `yaml:"negative"`
	} `yaml:"categories"`
}

func loadCategories(lex *Lexicon, dir string) error {
	data, err := readPack(dir, "categories.yml")
	if err != nil {
		return err
	}

	var raw rawCategoriesPack
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw.Categories) == 0 {
		return fmt.Errorf("no categories defined")
	}

	categories := make([]Category, 0, len(raw.Categories))
	for _, category := range raw.Categories {
		if category.Name == "" || len(category.Primary) == 0 {
			return fmt.Errorf("invalid category: %q", category.Name)
		}
		categories = append(categories, Category{
			Name:      strings.ToLower(category.Name),
			Primary:   newPhraseSet(category.Primary),
			Secondary: newPhraseSet(category.Secondary),
			Negative:  newPhraseSet(category.Negative),
		})
	}
	lex.Categories = categories
	return nil
}

type rawSpamPack struct {
	Version  int `yaml:"version"`
	Families []struct {
		Name     string   `yaml:"name"`
		Weight   float64  `yaml:"weight"`
		PerMatch bool     `yaml:"per_match"`
		Phrases  []string `yaml:"phrases"`
		Patterns []string `yaml:"patterns"`
	} `yaml:"families"`
	Heuristics SpamHeuristics `yaml:"heuristics"`
}

func loadSpam(lex *Lexicon, dir string) error {
	data, err := readPack(dir, "spam.yml")
	if err != nil {
		return err
	}

	var raw rawSpamPack
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw.Families) == 0 {
		return fmt.Errorf("no spam families defined")
	}

	families := make([]SpamFamily, 0, len(raw.Families))
	for _, family := range raw.Families {
		if family.Name == "" || family.Weight <= 0 {
			return fmt.Errorf("invalid spam family: %q", family.Name)
		}
		if len(family.Phrases) == 0 && len(family.Patterns) == 0 {
			return fmt.Errorf("spam family %q has no phrases or patterns", family.Name)
		}

		compiled := SpamFamily{
			Name:     family.Name,
			Weight:   family.Weight,
			PerMatch: family.PerMatch,
			Phrases:  newPhraseSet(family.Phrases),
		}
		for _, pattern := range family.Patterns {
			expr, err := regexp.Compile("(?i)" + pattern)
			if err != nil {
				return fmt.Errorf("spam family %q pattern %q: %w", family.Name, pattern, err)
			}
			compiled.Patterns = append(compiled.Patterns, expr)
		}
		families = append(families, compiled)
	}
	lex.SpamFamilies = families
	lex.SpamHeuristics = raw.Heuristics
	return nil
}

type rawQualityPack struct {
	Version         int      `yaml:"version"`
	IndicatorWeight float64  `yaml:"indicator_weight"`
	Indicators      []string `yaml:"indicators"`
}

func loadQuality(lex *Lexicon, dir string) error {
	data, err := readPack(dir, "quality.yml")
	if err != nil {
		return err
	}

	var raw rawQualityPack
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.IndicatorWeight <= 0 || len(raw.Indicators) == 0 {
		return fmt.Errorf("invalid quality pack")
	}

	lex.IndicatorWeight = raw.IndicatorWeight
	lex.QualityIndicators = newPhraseSet(raw.Indicators)
	return nil
}

type rawStopwordsPack struct {
	Version int      `yaml:"version"`
	Words   []string `yaml:"words"`
}

func loadStopwords(lex *Lexicon, dir string) error {
	data, err := readPack(dir, "stopwords.yml")
	if err != nil {
		return err
	}

	var raw rawStopwordsPack
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return err
	}

	stopwords := make(map[string]struct{}, len(raw.Words))
	for _, word := range raw.Words {
		value := strings.ToLower(strings.TrimSpace(word))
		if value == "" {
			continue
		}
		stopwords[value] = struct{}{}
	}
	if len(stopwords) == 0 {
		return fmt.Errorf("no stopwords defined")
	}
	lex.stopwords = stopwords
	return nil
}
