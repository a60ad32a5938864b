// Package report turns completed survey responses into the aggregates served
// by the reporting endpoints. Everything here is pure: callers load the
// responses and catalog, and the functions only compute.
//
// Per-employee figures are the mean of each response's own average. Daily
// buckets, per-question rows and summaries are flat means over every numeric
// answer.
package report

import (
	"sort"
	"time"

	"github.com/tbourn/go-survey-backend/internal/domain"
)

// FeedbackLimit caps the excerpts returned with an employee report.
const FeedbackLimit = 6

// EmployeeRow is one employee's line in a team report.
type EmployeeRow struct {
	EmployeeID     string           `json:"employee_id"`
	Name           domain.Localized `json:"name,omitempty"`
	Department     domain.Localized `json:"department,omitempty"`
	AverageScore   float64          `json:"average_score"`
	ResponseCount  int              `json:"response_count"`
	LastResponseAt *time.Time       `json:"last_response_at"`
}

// DailyRow is one UTC day bucket.
type DailyRow struct {
	Date         string  `json:"date"`
	AverageScore float64 `json:"average_score"`
	Count        int     `json:"count"`
}

// QuestionRow aggregates numeric answers for one question.
type QuestionRow struct {
	QuestionID   string           `json:"question_id"`
	Text         domain.Localized `json:"text,omitempty"`
	AverageScore float64          `json:"average_score"`
	Count        int              `json:"count"`
}

// Summary is the flat mean of all numeric answers and the response count.
type Summary struct {
	AverageScore  float64 `json:"average_score"`
	ResponseCount int     `json:"response_count"`
}

// Comparison relates a period to the one immediately before it.
type Comparison struct {
	PreviousAverage   float64 `json:"previous_average"`
	PreviousResponses int     `json:"previous_responses"`
	AverageDelta      float64 `json:"average_delta"`
	ResponseDelta     int     `json:"response_delta"`
}

// FeedbackItem is a free-text excerpt dated by its response's UTC day.
type FeedbackItem struct {
	Text string `json:"text"`
	Date string `json:"date"`
}

type tally struct {
	sum   float64
	count int
}

func (t *tally) add(v float64) { t.sum += v; t.count++ }

func (t tally) mean() float64 {
	if t.count == 0 {
		return 0
	}
	return t.sum / float64(t.count)
}

// Completed keeps completed responses whose activity time lies in rng.
// When employeeIDs is non-nil only those employees are kept.
func Completed(responses []domain.SurveyResponse, employeeIDs map[string]bool, rng Range) []domain.SurveyResponse {
	out := make([]domain.SurveyResponse, 0, len(responses))
	for _, r := range responses {
		if r.Status != domain.StatusCompleted {
			continue
		}
		if employeeIDs != nil && !employeeIDs[r.EmployeeID] {
			continue
		}
		if !rng.Contains(r.ActivityAt()) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// NewestFirst sorts responses by activity time, most recent first. Ties keep
// their input order.
func NewestFirst(responses []domain.SurveyResponse) {
	sort.SliceStable(responses, func(i, j int) bool {
		return responses[i].ActivityAt().After(responses[j].ActivityAt())
	})
}

// Employees builds one row per employee that has at least one response.
// directory supplies names; unknown ids still get a row. Rows are ordered by
// employee id.
func Employees(responses []domain.SurveyResponse, directory map[string]domain.Employee) []EmployeeRow {
	type acc struct {
		row   EmployeeRow
		means tally
	}
	byID := map[string]*acc{}
	for _, r := range responses {
		a, ok := byID[r.EmployeeID]
		if !ok {
			a = &acc{row: EmployeeRow{EmployeeID: r.EmployeeID}}
			if e, found := directory[r.EmployeeID]; found {
				a.row.Name = e.Name
				a.row.Department = e.Department
			}
			byID[r.EmployeeID] = a
		}
		a.row.ResponseCount++
		at := r.ActivityAt()
		if a.row.LastResponseAt == nil || at.After(*a.row.LastResponseAt) {
			a.row.LastResponseAt = &at
		}
		if avg, ok := r.AverageScore(); ok {
			a.means.add(avg)
		}
	}

	rows := make([]EmployeeRow, 0, len(byID))
	for _, a := range byID {
		a.row.AverageScore = a.means.mean()
		rows = append(rows, a.row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].EmployeeID < rows[j].EmployeeID })
	return rows
}

// Daily buckets numeric answers by the UTC day of each response's activity
// time. Count is the number of numeric answers. Rows are ascending by date;
// days whose responses carry no scores still appear with a zero count.
func Daily(responses []domain.SurveyResponse) []DailyRow {
	days := map[string]*tally{}
	for _, r := range responses {
		key := Day(r.ActivityAt())
		t, ok := days[key]
		if !ok {
			t = &tally{}
			days[key] = t
		}
		for _, s := range r.Scores() {
			t.add(float64(s))
		}
	}
	rows := make([]DailyRow, 0, len(days))
	for d, t := range days {
		rows = append(rows, DailyRow{Date: d, AverageScore: t.mean(), Count: t.count})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date < rows[j].Date })
	return rows
}

// Questions aggregates numeric answers per question. Catalog questions come
// first in catalog order; scores for ids missing from the catalog follow,
// sorted by id. Questions without scores are omitted.
func Questions(responses []domain.SurveyResponse, catalog []domain.SurveyQuestion) []QuestionRow {
	byID := map[string]*tally{}
	for _, r := range responses {
		for _, a := range r.Answers {
			if a.Score == nil {
				continue
			}
			t, ok := byID[a.QuestionID]
			if !ok {
				t = &tally{}
				byID[a.QuestionID] = t
			}
			t.add(float64(*a.Score))
		}
	}

	rows := make([]QuestionRow, 0, len(byID))
	seen := map[string]bool{}
	for _, q := range catalog {
		if t, ok := byID[q.ID]; ok {
			rows = append(rows, QuestionRow{QuestionID: q.ID, Text: q.Text, AverageScore: t.mean(), Count: t.count})
			seen[q.ID] = true
		}
	}
	var orphans []string
	for id := range byID {
		if !seen[id] {
			orphans = append(orphans, id)
		}
	}
	sort.Strings(orphans)
	for _, id := range orphans {
		t := byID[id]
		rows = append(rows, QuestionRow{QuestionID: id, AverageScore: t.mean(), Count: t.count})
	}
	return rows
}

// Summarize returns the flat mean over all numeric answers and the number of
// responses.
func Summarize(responses []domain.SurveyResponse) Summary {
	var t tally
	for _, r := range responses {
		for _, s := range r.Scores() {
			t.add(float64(s))
		}
	}
	return Summary{AverageScore: t.mean(), ResponseCount: len(responses)}
}

// Compare relates the current summary to the previous period's.
func Compare(current, previous Summary) Comparison {
	return Comparison{
		PreviousAverage:   previous.AverageScore,
		PreviousResponses: previous.ResponseCount,
		AverageDelta:      current.AverageScore - previous.AverageScore,
		ResponseDelta:     current.ResponseCount - previous.ResponseCount,
	}
}

// Feedback collects remarks from the newest responses first, up to limit.
// The input is not reordered.
func Feedback(responses []domain.SurveyResponse, limit int) []FeedbackItem {
	sorted := make([]domain.SurveyResponse, len(responses))
	copy(sorted, responses)
	NewestFirst(sorted)

	out := []FeedbackItem{}
	for _, r := range sorted {
		day := Day(r.ActivityAt())
		for _, text := range r.Remarks() {
			if len(out) == limit {
				return out
			}
			out = append(out, FeedbackItem{Text: text, Date: day})
		}
	}
	return out
}
