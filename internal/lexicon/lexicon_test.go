package lexicon

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEmbeddedPacks(t *testing.T) {
	lex, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	if len(lex.Tiers) != 6 {
		t.Fatalf("tiers = %d, want 6", len(lex.Tiers))
	}
	if got := lex.CategoryNames(); len(got) != 4 || got[0] != "skincare" {
		t.Fatalf("category names = %v", got)
	}
	if len(lex.SpamFamilies) != 4 {
		t.Fatalf("spam families = %d, want 4", len(lex.SpamFamilies))
	}
	if lex.IndicatorWeight != 0.1 {
		t.Fatalf("indicator weight = %v, want 0.1", lex.IndicatorWeight)
	}
	if !lex.IsStopword("this") {
		t.Fatal("expected this to be a stopword")
	}
	if lex.IsStopword("serum") {
		t.Fatal("serum must not be a stopword")
	}
}

func TestTierWeightsOrdered(t *testing.T) {
	lex, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	want := []float64{3, 2, 1, -1, -2, -3}
	for i, tier := range lex.Tiers {
		if tier.Weight != want[i] {
			t.Errorf("tier %q weight = %v, want %v", tier.Name, tier.Weight, want[i])
		}
		if tier.Phrases.Size() == 0 {
			t.Errorf("tier %q has no phrases", tier.Name)
		}
	}
}

func TestPhraseSetMatches(t *testing.T) {
	set := newPhraseSet([]string{"love it", "Amazing", "great"})

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"single hit", "this product is amazing", []string{"amazing"}},
		{"multiple hits in declaration order", "great value, love it, amazing", []string{"love it", "amazing", "great"}},
		{"presence not frequency", "great great great", []string{"great"}},
		{"substring hit", "greatest", []string{"great"}},
		{"no hit", "mediocre at best", nil},
		{"empty text", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := set.Matches(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("Matches(%q) = %v, want %v", tt.text, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("Matches(%q) = %v, want %v", tt.text, got, tt.want)
				}
			}
		})
	}
}

func TestNilPhraseSet(t *testing.T) {
	var set *PhraseSet
	if got := set.Matches("anything"); got != nil {
		t.Fatalf("nil set Matches = %v, want nil", got)
	}
	if got := set.Size(); got != 0 {
		t.Fatalf("nil set Size = %d, want 0", got)
	}
}

func TestSpamPatternsCompile(t *testing.T) {
	lex, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	var repetitive *SpamFamily
	for i := range lex.SpamFamilies {
		if lex.SpamFamilies[i].Name == "repetitive" {
			repetitive = &lex.SpamFamilies[i]
		}
	}
	if repetitive == nil {
		t.Fatal("repetitive family missing")
	}

	matched := false
	for _, expr := range repetitive.Patterns {
		if expr.MatchString("wow!!!!!") {
			matched = true
		}
	}
	if !matched {
		t.Fatal("expected !!!!! to match a repetitive pattern")
	}
}

func TestLoadDirOverride(t *testing.T) {
	dir := t.TempDir()
	override := "version: 1\ntiers:\n  - name: only\n    weight: 3\n    phrases: [superb]\n"
	if err := os.WriteFile(filepath.Join(dir, "sentiment.yml"), []byte(override), 0o644); err != nil {
		t.Fatalf("write override: %v", err)
	}

	lex, err := Load(dir)
	if err != nil {
		t.Fatalf("Load(dir) error: %v", err)
	}
	if len(lex.Tiers) != 1 || lex.Tiers[0].Name != "only" {
		t.Fatalf("tiers = %+v, want single override tier", lex.Tiers)
	}
	// 나머지 팩은 내장본으로 유지된다.
	if len(lex.Categories) != 4 {
		t.Fatalf("categories = %d, want embedded 4", len(lex.Categories))
	}
}

func TestLoadRejectsBrokenPack(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "spam.yml"), []byte("families: []\n"), 0o644); err != nil {
		t.Fatalf("write override: %v", err)
	}

	if _, err := Load(dir); err == nil {
		t.Fatal("expected error for empty spam pack")
	}
}
