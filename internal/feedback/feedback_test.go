package feedback

import "testing"

func TestParseWellFormedResponse(t *testing.T) {
	res := Parse(`{"よかった点":"A","改善点":"B","スコア":80}`)
	if res.Fallback {
		t.Fatal("expected parsed result, got fallback")
	}
	want := Feedback{Positive: "A", Improvement: "B", Score: 80}
	if res.Feedback != want {
		t.Fatalf("got %+v, want %+v", res.Feedback, want)
	}
}

func TestParseTrimsSurroundingWhitespace(t *testing.T) {
	res := Parse("\n  {\"よかった点\":\"A\",\"改善点\":\"B\",\"スコア\":55}  \n")
	if res.Fallback || res.Feedback.Score != 55 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestParseOutOfRangeScorePassesThrough(t *testing.T) {
	res := Parse(`{"よかった点":"A","改善点":"B","スコア":999}`)
	if res.Fallback || res.Feedback.Score != 999 {
		t.Fatalf("score must pass through unchecked: %+v", res)
	}
}

func TestParseMalformedResponse(t *testing.T) {
	cases := []string{
		"この感想文はとても良いと思います。",
		"```json\n{\"スコア\": 80}\n```",
		`{"スコア": "eighty"}`,
		"",
	}
	want := Feedback{Positive: "解析失敗", Improvement: "形式を確認", Score: 0}
	for _, raw := range cases {
		res := Parse(raw)
		if !res.Fallback {
			t.Errorf("%q: expected fallback", raw)
		}
		if res.Feedback != want {
			t.Errorf("%q: got %+v, want %+v", raw, res.Feedback, want)
		}
	}
}
