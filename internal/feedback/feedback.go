package feedback

import (
	"encoding/json"
	"strings"
)

// Feedback is the graded result for one reflection. Field names mirror
// the JSON keys the model is instructed to emit. Score passes through
// unvalidated on the parsed path; the model owns its range.
type Feedback struct {
	Positive    string `json:"よかった点"`
	Improvement string `json:"改善点"`
	Score       int    `json:"スコア"`
}

// Result distinguishes a parsed model response from the local
// fallback, so callers can surface the degradation instead of
// silently recording a zero score.
type Result struct {
	Feedback Feedback
	Fallback bool
}

// Fallback is the fixed record substituted when the model response is
// not the requested JSON object.
func Fallback() Feedback {
	return Feedback{Positive: "解析失敗", Improvement: "形式を確認", Score: 0}
}

// Parse attempts strict JSON decoding of a feedback response. No
// field-by-field recovery: anything that is not one well-formed JSON
// object becomes the fallback record.
func Parse(raw string) Result {
	var fb Feedback
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &fb); err != nil {
		return Result{Feedback: Fallback(), Fallback: true}
	}
	return Result{Feedback: fb}
}
