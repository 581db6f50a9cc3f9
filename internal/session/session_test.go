package session

import (
	"testing"

	"dokusho-feedback/internal/feedback"
)

func TestManagerReturnsSameSessionForSameID(t *testing.T) {
	m := NewManager()
	a := m.Get("abc")
	b := m.Get("abc")
	if a != b {
		t.Fatal("expected the same session for a repeated ID")
	}
	if m.Get("def") == a {
		t.Fatal("expected a distinct session for a distinct ID")
	}
}

func TestSetPassageReplacesWholesale(t *testing.T) {
	s := NewManager().Get("s")
	if s.HasPassage() {
		t.Fatal("fresh session must have no passage")
	}

	s.SetPassage("むかしむかし…", "初級", "gemini-2.5-pro")
	s.SetPassage("ある冒険の話", "中級", "gemini-2.5-flash")

	text, level, model := s.Passage()
	if text != "ある冒険の話" || level != "中級" || model != "gemini-2.5-flash" {
		t.Fatalf("unexpected passage state: %q %s %s", text, level, model)
	}
}

func TestCachedPassagePerLevelModelPair(t *testing.T) {
	s := NewManager().Get("s")
	s.SetPassage("story-a", "初級", "gemini-2.5-pro")
	s.SetPassage("story-b", "中級", "gemini-2.5-pro")

	if text, ok := s.CachedPassage("初級", "gemini-2.5-pro"); !ok || text != "story-a" {
		t.Fatalf("cache miss for earlier pair: %q %v", text, ok)
	}
	if _, ok := s.CachedPassage("初級", "gemini-2.5-flash"); ok {
		t.Fatal("unexpected cache hit for never-generated pair")
	}
}

func TestFlashIsOneShot(t *testing.T) {
	s := NewManager().Get("s")
	s.SetFlash("感想を入力してください。")
	if got := s.PopFlash(); got != "感想を入力してください。" {
		t.Fatalf("unexpected flash: %q", got)
	}
	if got := s.PopFlash(); got != "" {
		t.Fatalf("flash not cleared: %q", got)
	}
}

func TestLastFeedbackRoundTrip(t *testing.T) {
	s := NewManager().Get("s")
	if _, ok := s.LastFeedback(); ok {
		t.Fatal("fresh session must have no feedback")
	}
	res := feedback.Result{Feedback: feedback.Feedback{Positive: "A", Improvement: "B", Score: 80}}
	s.SetLastFeedback(res)
	got, ok := s.LastFeedback()
	if !ok || got != res {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestNewIDUnique(t *testing.T) {
	a, err := NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	b, err := NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	if a == b || len(a) != 32 {
		t.Fatalf("bad ids: %q %q", a, b)
	}
}
