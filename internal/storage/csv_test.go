package storage

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

func newTestRecorder(t *testing.T) *CSVRecorder {
	t.Helper()
	rec, err := NewCSVRecorder(filepath.Join(t.TempDir(), "feedback_log.csv"))
	if err != nil {
		t.Fatalf("init recorder: %v", err)
	}
	return rec
}

func TestLoadWithoutFileReturnsEmpty(t *testing.T) {
	rec := newTestRecorder(t)
	records, err := rec.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("want empty, got %d records", len(records))
	}
}

func TestAppendThenLoad(t *testing.T) {
	rec := newTestRecorder(t)

	r1 := Record{Date: "2025-07-01", Level: "初級", Model: "gemini-2.5-pro", Reflection: "主人公に共感した", Score: 72}
	r2 := Record{Date: "2025-07-02", Level: "中級", Model: "gemini-2.5-flash", Reflection: "結末が意外だった", Score: 85}
	if err := rec.Append(r1); err != nil {
		t.Fatalf("append1: %v", err)
	}
	if err := rec.Append(r2); err != nil {
		t.Fatalf("append2: %v", err)
	}

	records, err := rec.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("want 2, got %d", len(records))
	}
	if records[0] != r1 || records[1] != r2 {
		t.Fatalf("round trip mismatch: %+v", records)
	}

	isoDate := regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	for _, r := range records {
		if !isoDate.MatchString(r.Date) {
			t.Errorf("date not ISO 8601: %q", r.Date)
		}
	}
}

func TestAppendEscapesDelimiters(t *testing.T) {
	rec := newTestRecorder(t)

	r := Record{
		Date:       "2025-07-03",
		Level:      "上級",
		Model:      "gemini-2.5-pro",
		Reflection: "カンマ, 引用符 \"と\" 改行\nを含む感想",
		Score:      60,
	}
	if err := rec.Append(r); err != nil {
		t.Fatalf("append: %v", err)
	}

	records, err := rec.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(records) != 1 || records[0].Reflection != r.Reflection {
		t.Fatalf("reflection not preserved: %+v", records)
	}
}

func TestFileHasFixedHeader(t *testing.T) {
	rec := newTestRecorder(t)
	if err := rec.Append(Record{Date: "2025-07-01", Level: "初級", Model: "gemini-2.5-pro", Reflection: "x", Score: 1}); err != nil {
		t.Fatalf("append: %v", err)
	}
	data, err := os.ReadFile(rec.path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	first := strings.SplitN(string(data), "\n", 2)[0]
	if first != "日付,レベル,モデル,感想,スコア" {
		t.Fatalf("unexpected header: %q", first)
	}
}
