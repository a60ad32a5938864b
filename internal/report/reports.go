package report

import (
	"time"

	"github.com/tbourn/go-survey-backend/internal/domain"
)

// EmployeeReport is the public per-employee view.
type EmployeeReport struct {
	Employee       domain.Employee `json:"employee"`
	AverageScore   float64         `json:"average_score"`
	ResponseCount  int             `json:"response_count"`
	Daily          []DailyRow      `json:"daily"`
	Feedback       []FeedbackItem  `json:"feedback"`
	LastResponseAt *time.Time      `json:"last_response_at"`
}

// TeamMember lists an employee under a supervisor whether or not they have
// responses in the period.
type TeamMember struct {
	EmployeeID string           `json:"employee_id"`
	Name       domain.Localized `json:"name"`
	Department domain.Localized `json:"department"`
}

// SupervisorReport covers a supervisor's active team.
type SupervisorReport struct {
	SupervisorID string                  `json:"supervisor_id"`
	Employees    []EmployeeRow           `json:"employees"`
	Team         []TeamMember            `json:"team"`
	Daily        []DailyRow              `json:"daily"`
	Questions    []domain.SurveyQuestion `json:"questions"`
	Comparison   *Comparison             `json:"comparison"`
	Summary      Summary                 `json:"summary"`
}

// ManagerReport covers every employee.
type ManagerReport struct {
	Employees []EmployeeRow `json:"employees"`
	Daily     []DailyRow    `json:"daily"`
	Questions []QuestionRow `json:"questions"`
	Summary   Summary       `json:"summary"`
}

// BuildEmployee aggregates all completed responses for e. Responses for other
// employees are ignored.
func BuildEmployee(e domain.Employee, responses []domain.SurveyResponse) EmployeeReport {
	own := Completed(responses, map[string]bool{e.ID: true}, Range{})
	rep := EmployeeReport{
		Employee:      e,
		ResponseCount: len(own),
		Daily:         Daily(own),
		Feedback:      Feedback(own, FeedbackLimit),
	}
	rows := Employees(own, nil)
	if len(rows) == 1 {
		rep.AverageScore = rows[0].AverageScore
		rep.LastResponseAt = rows[0].LastResponseAt
	}
	return rep
}

// BuildSupervisor aggregates responses for team within rng. When rng is
// bounded the previous period is compared as well.
func BuildSupervisor(supervisorID string, team []domain.Employee, catalog []domain.SurveyQuestion, responses []domain.SurveyResponse, rng Range) SupervisorReport {
	ids := make(map[string]bool, len(team))
	directory := make(map[string]domain.Employee, len(team))
	members := make([]TeamMember, 0, len(team))
	for _, e := range team {
		ids[e.ID] = true
		directory[e.ID] = e
		members = append(members, TeamMember{EmployeeID: e.ID, Name: e.Name, Department: e.Department})
	}

	current := Completed(responses, ids, rng)
	rep := SupervisorReport{
		SupervisorID: supervisorID,
		Employees:    Employees(current, directory),
		Team:         members,
		Daily:        Daily(current),
		Questions:    catalog,
		Summary:      Summarize(current),
	}
	if rep.Questions == nil {
		rep.Questions = []domain.SurveyQuestion{}
	}
	if prev, ok := rng.Previous(); ok {
		cmp := Compare(rep.Summary, Summarize(Completed(responses, ids, prev)))
		rep.Comparison = &cmp
	}
	return rep
}

// BuildManager aggregates every completed response within rng.
func BuildManager(employees []domain.Employee, catalog []domain.SurveyQuestion, responses []domain.SurveyResponse, rng Range) ManagerReport {
	directory := make(map[string]domain.Employee, len(employees))
	for _, e := range employees {
		directory[e.ID] = e
	}
	current := Completed(responses, nil, rng)
	return ManagerReport{
		Employees: Employees(current, directory),
		Daily:     Daily(current),
		Questions: Questions(current, catalog),
		Summary:   Summarize(current),
	}
}
