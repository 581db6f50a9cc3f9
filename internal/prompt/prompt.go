package prompt

import (
	"errors"
	"fmt"
)

var ErrInvalidLevel = errors.New("invalid reading level")

// Reading levels offered in the UI, in display order.
const (
	LevelBeginner     = "初級"
	LevelIntermediate = "中級"
	LevelAdvanced     = "上級"
)

var Levels = []string{LevelBeginner, LevelIntermediate, LevelAdvanced}

// levelPrompts maps each reading level to its fixed story instruction.
// The mapping is a process-wide constant; do not mutate.
var levelPrompts = map[string]string{
	LevelBeginner:     "日本の小学高学年でも読める 5,000 字程度の物語を日本語で書いて。",
	LevelIntermediate: "中学生向けに 5,000 字前後の冒険小説を日本語で書いて。",
	LevelAdvanced:     "高校生〜一般向け 5,000 字超の文学的短編小説を日本語で書いて。",
}

const feedbackTemplate = `あなたは中学生向け読書感想文の指導者です。
以下の感想文を評価し、次の JSON 形式だけを出力してください。説明は不要。

{"よかった点": "〜", "改善点": "〜", "スコア": 80}

感想文:
%s`

// StoryPrompt returns the generation instruction for a reading level.
func StoryPrompt(level string) (string, error) {
	p, ok := levelPrompts[level]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidLevel, level)
	}
	return p, nil
}

// FeedbackPrompt embeds the reader's reflection verbatim into the
// grading template. The JSON shape in the template is a textual
// convention only; the model may disobey it, which the feedback
// parser handles.
func FeedbackPrompt(text string) string {
	return fmt.Sprintf(feedbackTemplate, text)
}
