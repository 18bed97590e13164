package series

import (
	"sort"
	"time"

	"github.com/raysh454/repopulse/internal/analysis"
)

const (
	maxTopContributors = 10
	recentWeeks        = 4
	hobbyWeekendRatio  = 0.3
)

// ScoreBand buckets a health score for display.
type ScoreBand string

const (
	BandGood ScoreBand = "good"
	BandFair ScoreBand = "fair"
	BandPoor ScoreBand = "poor"
)

// Band maps a score to its display bucket: >=80 good, >=50 fair, else poor.
func Band(score float64) ScoreBand {
	switch {
	case score >= 80:
		return BandGood
	case score >= 50:
		return BandFair
	default:
		return BandPoor
	}
}

// ContributorCount is one row of the top contributors table.
type ContributorCount struct {
	Author  string `json:"author"`
	Commits int    `json:"commits"`
}

// WeekdayCount is one bar of the work rhythm chart.
type WeekdayCount struct {
	Day     string `json:"day"`
	Commits int    `json:"commits"`
}

// WeeklyCount is one point of the weekly activity chart. Weeks run Monday
// through Sunday and are labelled by their Sunday.
type WeeklyCount struct {
	WeekEnding string `json:"week_ending" example:"2024-01-07"`
	Commits    int    `json:"commits"`
}

// Trend compares recent weekly activity with the whole history.
type Trend string

const (
	TrendUp   Trend = "Trending Up"
	TrendDown Trend = "Cooling Down"
)

// WeekendVerdict classifies a project by how much of its work lands on
// weekends.
type WeekendVerdict string

const (
	WeekendHobby        WeekendVerdict = "hobby/side project"
	WeekendProfessional WeekendVerdict = "professional workflow"
)

// Summary holds the headline numbers shown next to the score.
type Summary struct {
	TotalCommits    int                `json:"total_commits"`
	Contributors    int                `json:"contributors"`
	ActiveDays      int                `json:"active_days"`
	TopContributors []ContributorCount `json:"top_contributors"`
	Weekdays        []WeekdayCount     `json:"weekdays"`
	WeekendRatio    float64            `json:"weekend_ratio"`

	// Weekly is chronological and has no gaps: quiet weeks between the
	// first and last commit count as zero.
	Weekly []WeeklyCount `json:"weekly"`

	// RecentWeeklyAverage is the mean of the last four entries of Weekly.
	RecentWeeklyAverage float64 `json:"recent_weekly_average"`

	// Trend and WeekendVerdict are empty when no commit has a usable date.
	Trend          Trend          `json:"trend,omitempty"`
	WeekendVerdict WeekendVerdict `json:"weekend_verdict,omitempty"`
}

var weekOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// Summarize computes headline numbers over result's history. Records with
// unparseable dates still count as commits but are ignored by the
// time-based figures.
func Summarize(result *analysis.AnalysisResult) Summary {
	s := Summary{
		TopContributors: []ContributorCount{},
		Weekdays:        make([]WeekdayCount, 0, len(weekOrder)),
		Weekly:          []WeeklyCount{},
	}
	if result == nil {
		for _, d := range weekOrder {
			s.Weekdays = append(s.Weekdays, WeekdayCount{Day: d.String()})
		}
		return s
	}

	byAuthor := map[string]int{}
	byDay := map[time.Weekday]int{}
	byWeek := map[time.Time]int{}
	var first, last time.Time
	dated := 0

	for _, c := range result.History {
		s.TotalCommits++
		byAuthor[c.Author]++

		t, ok := ParseDate(c.Date)
		if !ok {
			continue
		}
		t = t.UTC()
		byDay[t.Weekday()]++
		byWeek[weekEnding(t)]++
		if dated == 0 || t.Before(first) {
			first = t
		}
		if dated == 0 || t.After(last) {
			last = t
		}
		dated++
	}

	s.Contributors = len(byAuthor)
	if dated > 0 {
		s.ActiveDays = int(last.Sub(first).Hours() / 24)
	}

	for author, n := range byAuthor {
		s.TopContributors = append(s.TopContributors, ContributorCount{Author: author, Commits: n})
	}
	sort.Slice(s.TopContributors, func(i, j int) bool {
		a, b := s.TopContributors[i], s.TopContributors[j]
		if a.Commits != b.Commits {
			return a.Commits > b.Commits
		}
		return a.Author < b.Author
	})
	if len(s.TopContributors) > maxTopContributors {
		s.TopContributors = s.TopContributors[:maxTopContributors]
	}

	for _, d := range weekOrder {
		s.Weekdays = append(s.Weekdays, WeekdayCount{Day: d.String(), Commits: byDay[d]})
	}
	if dated == 0 {
		return s
	}

	s.WeekendRatio = float64(byDay[time.Saturday]+byDay[time.Sunday]) / float64(dated)
	s.WeekendVerdict = WeekendProfessional
	if s.WeekendRatio > hobbyWeekendRatio {
		s.WeekendVerdict = WeekendHobby
	}

	lastWeek := weekEnding(last)
	for week := weekEnding(first); !week.After(lastWeek); week = week.AddDate(0, 0, 7) {
		s.Weekly = append(s.Weekly, WeeklyCount{WeekEnding: week.Format(time.DateOnly), Commits: byWeek[week]})
	}

	recent := s.Weekly[max(0, len(s.Weekly)-recentWeeks):]
	s.RecentWeeklyAverage = meanCommits(recent)
	// A tie is not growth.
	s.Trend = TrendDown
	if s.RecentWeeklyAverage > meanCommits(s.Weekly) {
		s.Trend = TrendUp
	}
	return s
}

// weekEnding returns midnight UTC of the Sunday closing t's week.
func weekEnding(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, (7-int(t.Weekday()))%7)
}

func meanCommits(weeks []WeeklyCount) float64 {
	if len(weeks) == 0 {
		return 0
	}
	total := 0
	for _, w := range weeks {
		total += w.Commits
	}
	return float64(total) / float64(len(weeks))
}
