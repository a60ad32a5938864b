// Package events publishes domain events to a message broker.
//
// The only event today is SurveyCompleted, emitted when a respondent finishes
// a survey. Publishing is best-effort: callers log failures and carry on.
package events

import (
	"context"
	"time"

	"github.com/tbourn/go-survey-backend/internal/domain"
)

// SurveyCompleted is the payload sent when a response reaches the completed
// state. It carries enough for downstream consumers to update dashboards
// without reading the primary store.
type SurveyCompleted struct {
	ResponseID   string    `json:"response_id"`
	CustomerID   string    `json:"customer_id"`
	EmployeeID   string    `json:"employee_id"`
	GroupID      string    `json:"group_id"`
	Lang         string    `json:"lang"`
	AverageScore *float64  `json:"average_score,omitempty"`
	Answers      int       `json:"answers"`
	CompletedAt  time.Time `json:"completed_at"`
}

// NewSurveyCompleted builds the event for r. r.CompletedAt must be set.
func NewSurveyCompleted(r *domain.SurveyResponse) SurveyCompleted {
	ev := SurveyCompleted{
		ResponseID: r.ID,
		CustomerID: r.CustomerID,
		EmployeeID: r.EmployeeID,
		GroupID:    r.GroupID,
		Lang:       r.Lang,
		Answers:    len(r.Answers),
	}
	if r.CompletedAt != nil {
		ev.CompletedAt = r.CompletedAt.UTC()
	}
	if avg, ok := r.AverageScore(); ok {
		ev.AverageScore = &avg
	}
	return ev
}

// Publisher sends domain events.
type Publisher interface {
	PublishSurveyCompleted(ctx context.Context, ev SurveyCompleted) error
}

// Nop discards every event.
type Nop struct{}

// PublishSurveyCompleted implements Publisher.
func (Nop) PublishSurveyCompleted(context.Context, SurveyCompleted) error { return nil }
