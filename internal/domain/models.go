// Package domain defines the persistence models for the survey service:
// employees being rated, the question catalog, survey responses with their
// answers, the short-lived sessions that bind a client to a response, and the
// users that hold portal/admin roles. The types are mapped with GORM and are
// also the JSON shapes served by the HTTP layer.
package domain

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

// Localized maps a language code ("fa", "en", "ar", ...) to display text.
type Localized map[string]string

// Employee is a staff member customers rate. Employees are never hard-deleted;
// they are deactivated via Active.
//
// Fields:
//   - ID: stable external identifier (e.g. "EMP-001").
//   - Name / Department: localized display strings (JSON columns).
//   - Active: inactive employees are hidden from surveys and team reports.
//   - SupervisorID: optional back-reference to the supervising user.
type Employee struct {
	ID           string    `json:"id"                      gorm:"type:varchar(64);primaryKey"`
	Name         Localized `json:"name"                    gorm:"serializer:json;type:text;not null"`
	Department   Localized `json:"department"              gorm:"serializer:json;type:text;not null"`
	Active       bool      `json:"active"                  gorm:"not null;index"`
	SupervisorID *string   `json:"supervisor_id,omitempty" gorm:"type:varchar(64);index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName returns the database table name for Employee.
func (Employee) TableName() string { return "employees" }

// QuestionType enumerates the answer widgets a question can use.
type QuestionType string

const (
	QuestionRating QuestionType = "rating" // score 1..10
	QuestionText   QuestionType = "text"
	QuestionYesNo  QuestionType = "yes_no"
)

// Valid reports whether t is a known question type.
func (t QuestionType) Valid() bool {
	switch t {
	case QuestionRating, QuestionText, QuestionYesNo:
		return true
	}
	return false
}

// QuestionCategory groups questions for display and reporting.
type QuestionCategory string

const (
	CategoryGeneral          QuestionCategory = "general"
	CategoryEmployeeSpecific QuestionCategory = "employee_specific"
	CategoryFeedback         QuestionCategory = "feedback"
	CategoryService          QuestionCategory = "service"
	CategoryAdditional       QuestionCategory = "additional"
)

// Valid reports whether c is a known category.
func (c QuestionCategory) Valid() bool {
	switch c {
	case CategoryGeneral, CategoryEmployeeSpecific, CategoryFeedback, CategoryService, CategoryAdditional:
		return true
	}
	return false
}

// MaxPrimaryQuestions caps how many questions may be flagged IsPrimary.
const MaxPrimaryQuestions = 5

// SurveyQuestion is one entry of the questionnaire catalog. Order is a
// sequencing key and is not required to be unique.
type SurveyQuestion struct {
	ID        string           `json:"id"         gorm:"type:varchar(64);primaryKey"`
	Text      Localized        `json:"text"       gorm:"serializer:json;type:text;not null"`
	Type      QuestionType     `json:"type"       gorm:"type:varchar(16);not null"`
	Category  QuestionCategory `json:"category"   gorm:"type:varchar(32);not null"`
	Required  bool             `json:"required"   gorm:"not null"`
	IsPrimary bool             `json:"is_primary" gorm:"not null"`
	Order     int              `json:"order"      gorm:"column:sort_order;not null;index"`
	Active    bool             `json:"active"     gorm:"not null;index"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// TableName returns the database table name for SurveyQuestion.
func (SurveyQuestion) TableName() string { return "survey_questions" }

// ResponseStatus is the lifecycle state of a SurveyResponse.
type ResponseStatus string

const (
	StatusInProgress ResponseStatus = "in_progress"
	StatusCompleted  ResponseStatus = "completed"
	StatusIncomplete ResponseStatus = "incomplete"
)

// SurveyAnswer holds the values a respondent gave for one question. Every
// value is optional; only the fields sent by the client are ever touched.
type SurveyAnswer struct {
	QuestionID string  `json:"question_id"`
	Score      *int    `json:"score,omitempty"`
	TextValue  *string `json:"text_value,omitempty"`
	YesNoValue *bool   `json:"yes_no_value,omitempty"`
	Comment    *string `json:"comment,omitempty"`
}

// SurveyResponse is one respondent's answer set for one employee.
//
// Answers are stored as a JSON column in insertion order and are unique by
// QuestionID. Version is bumped on every save and is used for optimistic
// concurrency control by the repository.
type SurveyResponse struct {
	ID                string                            `json:"id"                      gorm:"type:char(36);primaryKey"`
	CustomerID        string                            `json:"customer_id"             gorm:"type:varchar(64);not null;index:idx_response_pair,priority:1"`
	EmployeeID        string                            `json:"employee_id"             gorm:"type:varchar(64);not null;index:idx_response_pair,priority:2;index"`
	GroupID           string                            `json:"group_id"                gorm:"type:varchar(64);not null"`
	Status            ResponseStatus                    `json:"status"                  gorm:"type:varchar(16);not null;index"`
	StartedAt         time.Time                         `json:"started_at"              gorm:"not null"`
	LastActivityAt    time.Time                         `json:"last_activity_at"        gorm:"not null"`
	CompletedAt       *time.Time                        `json:"completed_at,omitempty"`
	LastQuestionIndex int                               `json:"last_question_index"     gorm:"not null"`
	Lang              string                            `json:"lang"                    gorm:"type:varchar(8);not null"`
	EditToken         string                            `json:"edit_token"              gorm:"type:char(36);not null;uniqueIndex"`
	FinalComment      *string                           `json:"final_comment,omitempty" gorm:"type:text"`
	Answers           datatypes.JSONSlice[SurveyAnswer] `json:"answers"`
	Version           int                               `json:"version"                 gorm:"not null"`
}

// TableName returns the database table name for SurveyResponse.
func (SurveyResponse) TableName() string { return "survey_responses" }

// Answer returns the answer for questionID, or nil.
func (r *SurveyResponse) Answer(questionID string) *SurveyAnswer {
	for i := range r.Answers {
		if r.Answers[i].QuestionID == questionID {
			return &r.Answers[i]
		}
	}
	return nil
}

// ActivityAt is the timestamp reports use to place a response in time:
// CompletedAt when set, LastActivityAt otherwise.
func (r *SurveyResponse) ActivityAt() time.Time {
	if r.CompletedAt != nil {
		return *r.CompletedAt
	}
	return r.LastActivityAt
}

// Scores returns every numeric score in answer order.
func (r *SurveyResponse) Scores() []int {
	out := make([]int, 0, len(r.Answers))
	for _, a := range r.Answers {
		if a.Score != nil {
			out = append(out, *a.Score)
		}
	}
	return out
}

// AverageScore returns the mean of the response's numeric answers and false
// when the response has none.
func (r *SurveyResponse) AverageScore() (float64, bool) {
	scores := r.Scores()
	if len(scores) == 0 {
		return 0, false
	}
	sum := 0
	for _, s := range scores {
		sum += s
	}
	return float64(sum) / float64(len(scores)), true
}

// Remarks returns the non-empty free-text fragments of the response: answer
// comments and text values in answer order, followed by the final comment.
func (r *SurveyResponse) Remarks() []string {
	var out []string
	add := func(p *string) {
		if p == nil {
			return
		}
		if t := strings.TrimSpace(*p); t != "" {
			out = append(out, t)
		}
	}
	for _, a := range r.Answers {
		add(a.Comment)
		add(a.TextValue)
	}
	add(r.FinalComment)
	return out
}

// SurveySession binds a client-held session id to a response. Sessions are
// never mutated; a new one supersedes the old on every authentication or
// edit-token redemption.
type SurveySession struct {
	ID         string    `json:"id"          gorm:"type:char(36);primaryKey"`
	ResponseID string    `json:"response_id" gorm:"type:char(36);not null;index"`
	CustomerID string    `json:"customer_id" gorm:"type:varchar(64);not null"`
	EmployeeID string    `json:"employee_id" gorm:"type:varchar(64);not null"`
	GroupID    string    `json:"group_id"    gorm:"type:varchar(64);not null"`
	Lang       string    `json:"lang"        gorm:"type:varchar(8);not null"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName returns the database table name for SurveySession.
func (SurveySession) TableName() string { return "survey_sessions" }

// Role is a portal/admin role.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSupervisor Role = "supervisor"
	RoleEmployee   Role = "employee"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSupervisor, RoleEmployee:
		return true
	}
	return false
}

// User binds a person to a role. Employee users point at their Employee row.
type User struct {
	ID         string    `json:"id"                    gorm:"type:varchar(64);primaryKey"`
	Name       string    `json:"name"                  gorm:"type:varchar(255);not null"`
	Role       Role      `json:"role"                  gorm:"type:varchar(16);not null;index"`
	EmployeeID *string   `json:"employee_id,omitempty" gorm:"type:varchar(64)"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// Document is the whole store as a single value. It is the unit of
// export/import and mirrors the legacy single-file layout.
type Document struct {
	Sessions  []SurveySession  `json:"sessions"`
	Responses []SurveyResponse `json:"responses"`
	Employees []Employee       `json:"employees"`
	Questions []SurveyQuestion `json:"questions"`
	Users     []User           `json:"users"`
}
