package classify

import (
	"math"
	"testing"

	"github.com/park285/comment-insight-go/internal/lexicon"
)

func newTestClassifier(t *testing.T) *Classifier {
	t.Helper()
	lex, err := lexicon.New()
	if err != nil {
		t.Fatalf("lexicon.New() error: %v", err)
	}
	return New(lex)
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSentiment(t *testing.T) {
	c := newTestClassifier(t)

	tests := []struct {
		name  string
		text  string
		label SentimentLabel
		score float64
	}{
		{"single strong positive clamps to 1", "this is amazing", SentimentPositive, 1},
		{"single strong negative clamps to -1", "what a scam", SentimentNegative, -1},
		{"opposing strong words cancel", "amazing but terrible", SentimentNeutral, 0},
		{"no matches", "it is what it is", SentimentNeutral, 0},
		{"mild positive", "pretty decent", SentimentPositive, 1},
		{"boundary is exclusive", "good but bad", SentimentNeutral, -0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Sentiment(tt.text)
			if got.Label != tt.label {
				t.Fatalf("label = %q, want %q (score %v)", got.Label, tt.label, got.Score)
			}
			if !almostEqual(got.Score, tt.score) {
				t.Fatalf("score = %v, want %v", got.Score, tt.score)
			}
		})
	}
}

func TestCategory(t *testing.T) {
	c := newTestClassifier(t)

	t.Run("single category full confidence", func(t *testing.T) {
		got := c.Category("love this serum for my skincare routine")
		if got.Name != "skincare" {
			t.Fatalf("name = %q, want skincare", got.Name)
		}
		if !almostEqual(got.Confidence, 1) {
			t.Fatalf("confidence = %v, want 1", got.Confidence)
		}
	})

	t.Run("tie keeps declaration order", func(t *testing.T) {
		got := c.Category("serum and lipstick")
		if got.Name != "skincare" {
			t.Fatalf("name = %q, want skincare on tie", got.Name)
		}
		if !almostEqual(got.Confidence, 0.5) {
			t.Fatalf("confidence = %v, want 0.5", got.Confidence)
		}
	})

	t.Run("negative context still counts toward the category", func(t *testing.T) {
		got := c.Category("the new toner caused irritation and redness")
		if got.Name != "skincare" {
			t.Fatalf("name = %q, want skincare", got.Name)
		}
	})

	t.Run("no match falls back to general", func(t *testing.T) {
		got := c.Category("nothing relevant here")
		if got.Name != GeneralCategory || !almostEqual(got.Confidence, 0.1) {
			t.Fatalf("got = %+v, want general/0.1", got)
		}
	})
}

func TestSpam(t *testing.T) {
	c := newTestClassifier(t)

	t.Run("promotional plus url", func(t *testing.T) {
		got := c.Spam("Check out my channel at www.spam-central.com")
		if !almostEqual(got.Score, 0.6) {
			t.Fatalf("score = %v, want 0.6", got.Score)
		}
		if !got.IsSpam {
			t.Fatal("expected spam")
		}
		wantReasons := map[string]bool{"promotional": true, "url": true}
		for _, reason := range got.Reasons {
			if !wantReasons[reason] {
				t.Fatalf("unexpected reason %q in %v", reason, got.Reasons)
			}
		}
		if len(got.Reasons) != 2 {
			t.Fatalf("reasons = %v, want 2 entries", got.Reasons)
		}
	})

	t.Run("suspicious scores per matching phrase", func(t *testing.T) {
		got := c.Spam("free money, click here, limited time only friends")
		// monetary 0.4 + suspicious 2x0.5 before clamp.
		if !almostEqual(got.Score, 1) {
			t.Fatalf("score = %v, want clamp to 1", got.Score)
		}
		if !got.IsSpam {
			t.Fatal("expected spam")
		}
	})

	t.Run("exactly half is not spam", func(t *testing.T) {
		got := c.Spam("check out my channel!!!!")
		if !almostEqual(got.Score, 0.5) {
			t.Fatalf("score = %v, want 0.5", got.Score)
		}
		if got.IsSpam {
			t.Fatal("0.5 must not classify as spam")
		}
	})

	t.Run("short text heuristic", func(t *testing.T) {
		got := c.Spam("hi")
		if !almostEqual(got.Score, 0.2) || got.IsSpam {
			t.Fatalf("got = %+v, want 0.2 non-spam", got)
		}
		if len(got.Reasons) != 1 || got.Reasons[0] != "short_text" {
			t.Fatalf("reasons = %v", got.Reasons)
		}
	})

	t.Run("caps ratio heuristic", func(t *testing.T) {
		got := c.Spam("STOP SHOUTING AT EVERYONE")
		if !almostEqual(got.Score, 0.2) {
			t.Fatalf("score = %v, want 0.2", got.Score)
		}
		if len(got.Reasons) != 1 || got.Reasons[0] != "caps_ratio" {
			t.Fatalf("reasons = %v", got.Reasons)
		}
	})

	t.Run("emoji flood heuristic", func(t *testing.T) {
		got := c.Spam("nice product 😀😀😀😀😀😀")
		if !almostEqual(got.Score, 0.3) {
			t.Fatalf("score = %v, want 0.3", got.Score)
		}
		if len(got.Reasons) != 1 || got.Reasons[0] != "emoji_flood" {
			t.Fatalf("reasons = %v", got.Reasons)
		}
	})

	t.Run("clean text", func(t *testing.T) {
		got := c.Spam("The texture feels light and absorbs quickly.")
		if got.Score != 0 || got.IsSpam || len(got.Reasons) != 0 {
			t.Fatalf("got = %+v, want zero", got)
		}
	})
}

func TestQuality(t *testing.T) {
	c := newTestClassifier(t)

	tests := []struct {
		name    string
		text    string
		likes   int
		score   float64
		quality bool
	}{
		{"short unliked text", "nice", 0, 0, false},
		{"likes alone pass the bar", "ok!", 6, 0.5, true},
		{
			name:    "indicators length sentences and casing",
			text:    "I recommend this because the texture is great. Worth it!",
			likes:   0,
			score:   0.75,
			quality: true,
		},
		{
			name:    "boundary is exclusive",
			text:    "tried the new lotion twice this weekend. still unsure of it honestly.",
			likes:   0,
			score:   0.4,
			quality: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Quality(tt.text, tt.likes)
			if !almostEqual(got.Score, tt.score) {
				t.Fatalf("score = %v, want %v", got.Score, tt.score)
			}
			if got.IsQuality != tt.quality {
				t.Fatalf("isQuality = %v, want %v", got.IsQuality, tt.quality)
			}
		})
	}
}

func TestReadability(t *testing.T) {
	c := newTestClassifier(t)

	t.Run("zero guard", func(t *testing.T) {
		for _, text := range []string{"", "   ", "!!!"} {
			if got := c.Readability(text); got != 0 {
				t.Fatalf("Readability(%q) = %v, want 0", text, got)
			}
		}
	})

	t.Run("simple text clamps high", func(t *testing.T) {
		if got := c.Readability("The cat sat."); !almostEqual(got, 1) {
			t.Fatalf("got = %v, want 1", got)
		}
	})

	t.Run("dense text scores lower", func(t *testing.T) {
		simple := c.Readability("The cat sat. The dog ran.")
		dense := c.Readability("Extraordinarily sophisticated formulations demonstrate considerable efficacy.")
		if dense >= simple {
			t.Fatalf("dense %v should score below simple %v", dense, simple)
		}
	})
}

func TestSyllables(t *testing.T) {
	tests := []struct {
		word string
		want int
	}{
		{"cat", 1},
		{"the", 1},
		{"code", 1},
		{"beautiful", 3},
		{"sky", 1},
		{"", 1},
		{"xyz", 1},
	}
	for _, tt := range tests {
		if got := syllables(tt.word); got != tt.want {
			t.Errorf("syllables(%q) = %d, want %d", tt.word, got, tt.want)
		}
	}
}

func TestKeywords(t *testing.T) {
	c := newTestClassifier(t)

	t.Run("category hits precede frequent tokens without dedup", func(t *testing.T) {
		got := c.Keywords("This serum gives hydration and glow for happy skincare lovers routine", "skincare")
		want := []string{"skincare", "serum", "hydration", "glow", "routine", "hydration", "skincare", "lovers"}
		if len(got) != len(want) {
			t.Fatalf("keywords = %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("keywords = %v, want %v", got, want)
			}
		}
	})

	t.Run("frequency qualifies short-ish tokens", func(t *testing.T) {
		got := c.Keywords("budget budget wins", GeneralCategory)
		if len(got) != 1 || got[0] != "budget" {
			t.Fatalf("keywords = %v, want [budget]", got)
		}
	})

	t.Run("stopwords and short tokens dropped", func(t *testing.T) {
		got := c.Keywords("this is it and so on", GeneralCategory)
		if len(got) != 0 {
			t.Fatalf("keywords = %v, want empty", got)
		}
	})
}

func TestEngagement(t *testing.T) {
	tests := []struct {
		likes int
		want  EngagementTier
	}{
		{0, EngagementLow},
		{2, EngagementLow},
		{3, EngagementMedium},
		{10, EngagementMedium},
		{11, EngagementHigh},
	}
	for _, tt := range tests {
		if got := Engagement(tt.likes); got != tt.want {
			t.Errorf("Engagement(%d) = %q, want %q", tt.likes, got, tt.want)
		}
	}
}

func TestFold(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"ascii passthrough", "plain text", "plain text"},
		{"control chars stripped", "a​b", "ab"},
		{"homoglyphs folded", "раypal", "paypal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Fold(tt.in); got != tt.want {
				t.Fatalf("Fold(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
