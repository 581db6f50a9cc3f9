package web

import (
	"encoding/json"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strings"

	"dokusho-feedback/internal/feedback"
	"dokusho-feedback/internal/llm"
	"dokusho-feedback/internal/prompt"
	"dokusho-feedback/internal/storage"
)

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleHistory serves the full log as JSON, oldest first.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	records, err := s.recorder.Load()
	if err != nil {
		log.Printf("failed to load feedback log: %v", err)
		http.Error(w, "failed to load history", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(map[string]any{"records": records})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	sess := s.sessionFor(w, r)

	records, err := s.recorder.Load()
	if err != nil {
		log.Printf("failed to load feedback log: %v", err)
		records = nil
	}

	data := s.buildPageData(sess, records)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.Execute(w, data); err != nil {
		log.Printf("error rendering template: %v", err)
	}
}

// handleGenerate produces a new passage for the selected level and
// model, reusing the session's earlier result for an identical pair.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sess := s.sessionFor(w, r)
	level := r.FormValue("level")
	model := r.FormValue("model")

	storyPrompt, err := prompt.StoryPrompt(level)
	if err != nil {
		sess.SetFlash(fmt.Sprintf("文章レベルが不正です: %q", level))
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if cached, ok := sess.CachedPassage(level, model); ok {
		sess.SetPassage(cached, level, model)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	client, err := s.factory.CreateClient(r.Context(), s.provider, model)
	if err != nil {
		sess.SetFlash(fmt.Sprintf("モデルを利用できません: %v", err))
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	resp, err := client.Generate(r.Context(), storyPrompt)
	if err != nil {
		log.Printf("passage generation failed: %v", err)
		sess.SetFlash(fmt.Sprintf("文章の生成に失敗しました: %v", err))
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	sess.SetPassage(resp.Content, level, model)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleFeedback scores the submitted reflection and appends the
// result to the log. Requires a current passage and non-blank text.
func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sess := s.sessionFor(w, r)

	if !sess.HasPassage() {
		sess.SetFlash("先に文章を生成してください。")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	reflection := r.FormValue("reflection")
	if strings.TrimSpace(reflection) == "" {
		sess.SetFlash("感想を入力してください。")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	level := r.FormValue("level")
	model := r.FormValue("model")
	if _, err := prompt.StoryPrompt(level); err != nil {
		sess.SetFlash(fmt.Sprintf("文章レベルが不正です: %q", level))
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	client, err := s.factory.CreateClient(r.Context(), s.provider, model)
	if err != nil {
		sess.SetFlash(fmt.Sprintf("モデルを利用できません: %v", err))
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	resp, err := client.Generate(r.Context(), prompt.FeedbackPrompt(reflection))
	if err != nil {
		log.Printf("feedback generation failed: %v", err)
		sess.SetFlash(fmt.Sprintf("評価の取得に失敗しました: %v", err))
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	result := feedback.Parse(resp.Content)
	sess.SetLastFeedback(result)

	record := storage.Record{
		Date:       s.now().Format("2006-01-02"),
		Level:      level,
		Model:      model,
		Reflection: reflection,
		Score:      result.Feedback.Score,
	}
	if err := s.recorder.Append(record); err != nil {
		log.Printf("failed to append feedback record: %v", err)
		sess.SetFlash("履歴の保存に失敗しました。")
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) buildPageData(sess sessionView, records []storage.Record) pageData {
	_, curLevel, curModel := sess.Passage()
	if curLevel == "" {
		curLevel = prompt.LevelBeginner
	}
	if curModel == "" {
		curModel = llm.ModelGeminiPro
	}

	data := pageData{
		Flash:      sess.PopFlash(),
		HasPassage: sess.HasPassage(),
	}
	data.Passage, _, _ = sess.Passage()

	for _, m := range llm.AllowedModels {
		data.Models = append(data.Models, modelOption{ID: m.ID, Label: m.Label, Selected: m.ID == curModel})
	}
	for _, level := range prompt.Levels {
		data.Levels = append(data.Levels, levelOption{Name: level, Checked: level == curLevel})
	}

	if res, ok := sess.LastFeedback(); ok {
		data.Feedback = &feedbackView{
			Score:       res.Feedback.Score,
			Positive:    res.Feedback.Positive,
			Improvement: res.Feedback.Improvement,
			Fallback:    res.Fallback,
		}
	}

	if n := len(records); n > 0 {
		tail := records
		if n > 10 {
			tail = records[n-10:]
		}
		data.History = tail
		data.Chart = scoreChart(records)
	}
	return data
}

// sessionView is the slice of session.Session the page needs.
type sessionView interface {
	Passage() (text, level, model string)
	HasPassage() bool
	LastFeedback() (feedback.Result, bool)
	PopFlash() string
}

type modelOption struct {
	ID       string
	Label    string
	Selected bool
}

type levelOption struct {
	Name    string
	Checked bool
}

type feedbackView struct {
	Score       int
	Positive    string
	Improvement string
	Fallback    bool
}

type pageData struct {
	Models     []modelOption
	Levels     []levelOption
	Passage    string
	HasPassage bool
	Flash      string
	Feedback   *feedbackView
	History    []storage.Record
	Chart      template.HTML
}
