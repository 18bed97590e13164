// Package series turns an analysis history into chart-ready data.
//
// Everything here is a pure function of its inputs. Results are rebuilt on
// every call and the caller's history slice is never written to.
package series

import (
	"slices"
	"time"

	"golang.org/x/text/language"

	"github.com/raysh454/repopulse/internal/analysis"
)

// ChartPoint is a commit decorated for display.
type ChartPoint struct {
	Date      string `json:"date"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
	Author    string `json:"author"`
	ShortDate string `json:"shortDate"`
	Churn     int    `json:"churn"`
}

// ChurnPoint feeds the code churn chart.
type ChurnPoint struct {
	Label     string `json:"label"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
}

// ImpactPoint feeds the commit impact chart.
type ImpactPoint struct {
	Label  string `json:"label"`
	Churn  int    `json:"churn"`
	Author string `json:"author"`
}

// Derive returns result's history earliest-first with short date labels in
// UTC. A nil result yields an empty, non-nil slice.
func Derive(result *analysis.AnalysisResult, tag language.Tag) []ChartPoint {
	return DeriveWith(result, NewDateFormatter(tag, time.UTC))
}

// DeriveWith is Derive with an explicit formatter.
func DeriveWith(result *analysis.AnalysisResult, f DateFormatter) []ChartPoint {
	if result == nil || len(result.History) == 0 {
		return []ChartPoint{}
	}

	// History is delivered newest-first; charts read left to right.
	history := slices.Clone(result.History)
	slices.Reverse(history)

	points := make([]ChartPoint, 0, len(history))
	for _, c := range history {
		points = append(points, ChartPoint{
			Date:      c.Date,
			Additions: c.Additions,
			Deletions: c.Deletions,
			Author:    c.Author,
			ShortDate: f.Format(c.Date),
			Churn:     c.Churn(),
		})
	}
	return points
}

// ChurnSeries projects points onto the churn chart.
func ChurnSeries(points []ChartPoint) []ChurnPoint {
	out := make([]ChurnPoint, 0, len(points))
	for _, p := range points {
		out = append(out, ChurnPoint{Label: p.ShortDate, Additions: p.Additions, Deletions: p.Deletions})
	}
	return out
}

// ImpactSeries projects points onto the commit impact chart.
func ImpactSeries(points []ChartPoint) []ImpactPoint {
	out := make([]ImpactPoint, 0, len(points))
	for _, p := range points {
		out = append(out, ImpactPoint{Label: p.ShortDate, Churn: p.Churn, Author: p.Author})
	}
	return out
}
