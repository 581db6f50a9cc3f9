package web

import (
	"fmt"
	"html/template"
	"strings"

	"dokusho-feedback/internal/analytics"
	"dokusho-feedback/internal/storage"
)

const (
	chartWidth   = 640
	chartHeight  = 260
	chartPadLeft = 44
	chartPadTop  = 12
	chartPadBot  = 32
	chartPadRght = 16
)

// scoreChart renders the full score history as an inline SVG line
// chart. Rendering server-side keeps the page free of script
// dependencies.
func scoreChart(records []storage.Record) template.HTML {
	points := analytics.ScoreSeries(records)
	if len(points) == 0 {
		return ""
	}

	minScore, maxScore := points[0].Score, points[0].Score
	for _, p := range points {
		if p.Score < minScore {
			minScore = p.Score
		}
		if p.Score > maxScore {
			maxScore = p.Score
		}
	}
	if minScore == maxScore {
		// flat series still needs a visible vertical range
		minScore--
		maxScore++
	}

	plotW := float64(chartWidth - chartPadLeft - chartPadRght)
	plotH := float64(chartHeight - chartPadTop - chartPadBot)

	x := func(i int) float64 {
		if len(points) == 1 {
			return float64(chartPadLeft) + plotW/2
		}
		return float64(chartPadLeft) + plotW*float64(i)/float64(len(points)-1)
	}
	y := func(score int) float64 {
		return float64(chartPadTop) + plotH*(1-float64(score-minScore)/float64(maxScore-minScore))
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg viewBox="0 0 %d %d" role="img" aria-label="スコア推移">`, chartWidth, chartHeight)

	// axes
	fmt.Fprintf(&b, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="#999"/>`,
		chartPadLeft, chartPadTop, chartPadLeft, chartHeight-chartPadBot)
	fmt.Fprintf(&b, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="#999"/>`,
		chartPadLeft, chartHeight-chartPadBot, chartWidth-chartPadRght, chartHeight-chartPadBot)
	fmt.Fprintf(&b, `<text x="%d" y="%.1f" font-size="11" text-anchor="end">%d</text>`,
		chartPadLeft-6, y(maxScore)+4, maxScore)
	fmt.Fprintf(&b, `<text x="%d" y="%.1f" font-size="11" text-anchor="end">%d</text>`,
		chartPadLeft-6, y(minScore)+4, minScore)

	var line strings.Builder
	for i, p := range points {
		if i > 0 {
			line.WriteByte(' ')
		}
		fmt.Fprintf(&line, "%.1f,%.1f", x(i), y(p.Score))
	}
	fmt.Fprintf(&b, `<polyline points="%s" fill="none" stroke="#1a73e8" stroke-width="2"/>`, line.String())
	for i, p := range points {
		fmt.Fprintf(&b, `<circle cx="%.1f" cy="%.1f" r="3" fill="#1a73e8"><title>%s: %d</title></circle>`,
			x(i), y(p.Score), template.HTMLEscapeString(p.Date), p.Score)
	}

	fmt.Fprintf(&b, `<text x="%d" y="%d" font-size="11">%s</text>`,
		chartPadLeft, chartHeight-10, template.HTMLEscapeString(points[0].Date))
	if len(points) > 1 {
		fmt.Fprintf(&b, `<text x="%d" y="%d" font-size="11" text-anchor="end">%s</text>`,
			chartWidth-chartPadRght, chartHeight-10, template.HTMLEscapeString(points[len(points)-1].Date))
	}

	b.WriteString(`</svg>`)
	return template.HTML(b.String())
}

const pageTemplate = `<!DOCTYPE html>
<html lang="ja">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>読書感想フィードバックアプリ</title>
<style>
  body { font-family: "Hiragino Sans", "Noto Sans JP", sans-serif; max-width: 760px; margin: 0 auto; padding: 16px; color: #222; }
  h1 { font-size: 1.5em; }
  fieldset { border: 1px solid #ddd; border-radius: 8px; margin-bottom: 12px; }
  .passage { background: #eef4fb; border-radius: 8px; padding: 12px; white-space: pre-wrap; }
  .placeholder { color: #666; }
  .flash { background: #fff3cd; border: 1px solid #ffe08a; border-radius: 8px; padding: 10px; margin-bottom: 12px; }
  .score { background: #e6f4ea; border-radius: 8px; padding: 12px; margin-bottom: 8px; }
  .fallback-note { color: #a15c00; font-size: 0.9em; }
  textarea { width: 100%; height: 160px; box-sizing: border-box; }
  button { padding: 8px 16px; margin: 6px 0; cursor: pointer; }
  button:disabled { cursor: not-allowed; opacity: 0.5; }
  table { border-collapse: collapse; width: 100%; font-size: 0.9em; }
  th, td { border: 1px solid #ddd; padding: 6px 8px; text-align: left; }
  svg { width: 100%; height: auto; background: #fafafa; border: 1px solid #eee; border-radius: 8px; }
  footer { color: #888; font-size: 0.8em; margin-top: 24px; }
</style>
</head>
<body>
<h1>📘 読書感想フィードバックアプリ</h1>

{{if .Flash}}<div class="flash">{{.Flash}}</div>{{end}}

<form method="post">
  <fieldset>
    <legend>⚙️ 設定</legend>
    <label>🧠 使用する Gemini モデル
      <select name="model">
        {{range .Models}}<option value="{{.ID}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>{{end}}
      </select>
    </label>
    <p>📚 文章レベル:
      {{range .Levels}}
      <label><input type="radio" name="level" value="{{.Name}}"{{if .Checked}} checked{{end}}> {{.Name}}</label>
      {{end}}
    </p>
  </fieldset>

  <button type="submit" formaction="/generate">📝 文章を生成する</button>

  <h2>今日の文章</h2>
  {{if .HasPassage}}
  <div class="passage">{{.Passage}}</div>
  {{else}}
  <p class="placeholder">⬆️ レベルを選び、ボタンを押して文章を生成してください。</p>
  {{end}}

  <h2>✏️ 感想を書いてね</h2>
  <textarea name="reflection" placeholder="例: 主人公に共感した…"{{if not .HasPassage}} disabled{{end}}></textarea>
  <button type="submit" formaction="/feedback"{{if not .HasPassage}} disabled{{end}}>💡 フィードバックをもらう</button>
</form>

{{with .Feedback}}
<div class="score">
  スコア: {{.Score}} 点<br>
  <strong>よかった点</strong>: {{.Positive}}<br>
  <strong>改善点</strong>: {{.Improvement}}
  {{if .Fallback}}<div class="fallback-note">モデルの応答を解析できなかったため、スコアを 0 として記録しました。</div>{{end}}
</div>
{{end}}

<h2>📈 スコア履歴</h2>
{{if .History}}
<table>
  <tr><th>日付</th><th>レベル</th><th>モデル</th><th>感想</th><th>スコア</th></tr>
  {{range .History}}
  <tr><td>{{.Date}}</td><td>{{.Level}}</td><td>{{.Model}}</td><td>{{.Reflection}}</td><td>{{.Score}}</td></tr>
  {{end}}
</table>
{{.Chart}}
{{else}}
<p class="placeholder">まだスコアの記録はありません。</p>
{{end}}

<footer>© 2025 読書感想フィードバックアプリ – Gemini 2.5 API</footer>
</body>
</html>
`
