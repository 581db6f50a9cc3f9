package analytics

import (
	"fmt"
	"time"

	"dokusho-feedback/internal/storage"
)

// Point is one chart sample: a calendar date and the score recorded
// on it. Points keep the log's append order.
type Point struct {
	Date  string `json:"date"`
	Score int    `json:"score"`
}

// ScoreSeries converts the full log into chart points.
func ScoreSeries(records []storage.Record) []Point {
	points := make([]Point, 0, len(records))
	for _, r := range records {
		points = append(points, Point{Date: r.Date, Score: r.Score})
	}
	return points
}

// DailySummary aggregates the scores recorded on a single date.
type DailySummary struct {
	Date     string `json:"date"`
	Count    int    `json:"count"`
	MeanStr  string `json:"mean"`
	MinScore int    `json:"min_score"`
	MaxScore int    `json:"max_score"`
}

// Summarize computes count/mean/min/max over the records of the target
// date only.
func Summarize(records []storage.Record, targetDate time.Time) *DailySummary {
	date := targetDate.Format("2006-01-02")
	summary := &DailySummary{Date: date}

	total := 0
	for _, r := range records {
		if r.Date != date {
			continue
		}
		if summary.Count == 0 || r.Score < summary.MinScore {
			summary.MinScore = r.Score
		}
		if summary.Count == 0 || r.Score > summary.MaxScore {
			summary.MaxScore = r.Score
		}
		summary.Count++
		total += r.Score
	}
	if summary.Count > 0 {
		summary.MeanStr = fmt.Sprintf("%.1f", float64(total)/float64(summary.Count))
	}
	return summary
}

// ReportLine renders the summary as a single log line.
func (ds *DailySummary) ReportLine() string {
	if ds.Count == 0 {
		return fmt.Sprintf("%s: no feedback recorded", ds.Date)
	}
	return fmt.Sprintf("%s: %d件, 平均 %s点 (min %d / max %d)", ds.Date, ds.Count, ds.MeanStr, ds.MinScore, ds.MaxScore)
}
