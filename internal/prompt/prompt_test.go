package prompt

import (
	"errors"
	"strings"
	"testing"
)

func TestStoryPromptAllLevels(t *testing.T) {
	seen := map[string]bool{}
	for _, level := range Levels {
		p, err := StoryPrompt(level)
		if err != nil {
			t.Fatalf("level %s: %v", level, err)
		}
		if strings.TrimSpace(p) == "" {
			t.Fatalf("level %s: empty prompt", level)
		}
		if seen[p] {
			t.Fatalf("level %s: prompt not level-specific", level)
		}
		seen[p] = true
	}
}

func TestStoryPromptInvalidLevel(t *testing.T) {
	for _, level := range []string{"", "beginner", "超級"} {
		if _, err := StoryPrompt(level); !errors.Is(err, ErrInvalidLevel) {
			t.Errorf("level %q: expected ErrInvalidLevel, got %v", level, err)
		}
	}
}

func TestFeedbackPromptEmbedsTextVerbatim(t *testing.T) {
	texts := []string{
		"主人公に共感した…",
		`引用符 "と" カンマ, 改行
を含む感想`,
	}
	for _, text := range texts {
		p := FeedbackPrompt(text)
		if !strings.Contains(p, text) {
			t.Errorf("prompt does not contain reflection verbatim: %q", text)
		}
		if !strings.Contains(p, "よかった点") || !strings.Contains(p, "スコア") {
			t.Error("prompt lost the JSON shape instruction")
		}
	}
}
