// Package services – CatalogService
//
// CatalogService serves the public employee and question lists and the admin
// create/update operations on employees, questions and users. Records are
// never deleted; employees and questions are deactivated instead.
package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-survey-backend/internal/domain"
	"github.com/tbourn/go-survey-backend/internal/repo"
)

// EmployeeInput carries employee fields. On update nil fields are left as
// they are; an empty SupervisorID clears the supervisor.
type EmployeeInput struct {
	ID           string           `json:"id,omitempty"`
	Name         domain.Localized `json:"name,omitempty"`
	Department   domain.Localized `json:"department,omitempty"`
	Active       *bool            `json:"active,omitempty"`
	SupervisorID *string          `json:"supervisor_id,omitempty"`
}

// QuestionInput carries question fields with the same update rules.
type QuestionInput struct {
	ID        string                  `json:"id,omitempty"`
	Text      domain.Localized        `json:"text,omitempty"`
	Type      domain.QuestionType     `json:"type,omitempty"`
	Category  domain.QuestionCategory `json:"category,omitempty"`
	Required  *bool                   `json:"required,omitempty"`
	IsPrimary *bool                   `json:"is_primary,omitempty"`
	Order     *int                    `json:"order,omitempty"`
	Active    *bool                   `json:"active,omitempty"`
}

// UserInput carries user fields with the same update rules.
type UserInput struct {
	ID         string      `json:"id,omitempty"`
	Name       string      `json:"name,omitempty"`
	Role       domain.Role `json:"role,omitempty"`
	EmployeeID *string     `json:"employee_id,omitempty"`
}

// CatalogService manages employees, questions and users.
type CatalogService struct {
	DB *gorm.DB
}

// NewCatalogService returns a CatalogService backed by db.
func NewCatalogService(db *gorm.DB) *CatalogService { return &CatalogService{DB: db} }

// newID returns prefix followed by six upper-case hex characters.
func newID(prefix string) string {
	return prefix + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
}

func hasText(m domain.Localized) bool {
	for _, v := range m {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}

func notFound(err error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

// ActiveEmployees lists employees shown to respondents.
func (s *CatalogService) ActiveEmployees(ctx context.Context) ([]domain.Employee, error) {
	return repo.ListEmployees(ctx, s.DB, true)
}

// ActiveQuestions lists the questionnaire in order.
func (s *CatalogService) ActiveQuestions(ctx context.Context) ([]domain.SurveyQuestion, error) {
	return repo.ListQuestions(ctx, s.DB, true)
}

// Employees lists every employee, inactive ones included.
func (s *CatalogService) Employees(ctx context.Context) ([]domain.Employee, error) {
	return repo.ListEmployees(ctx, s.DB, false)
}

// CreateEmployee adds an employee. Name is required; Active defaults to true.
func (s *CatalogService) CreateEmployee(ctx context.Context, in EmployeeInput) (*domain.Employee, error) {
	if !hasText(in.Name) {
		return nil, ErrMissingFields
	}
	e := &domain.Employee{
		ID:         strings.TrimSpace(in.ID),
		Name:       in.Name,
		Department: in.Department,
		Active:     true,
	}
	if e.ID == "" {
		e.ID = newID("EMP-")
	} else if _, err := repo.GetEmployee(ctx, s.DB, e.ID); err == nil {
		return nil, ErrAlreadyExists
	}
	if e.Department == nil {
		e.Department = domain.Localized{}
	}
	if in.Active != nil {
		e.Active = *in.Active
	}
	if in.SupervisorID != nil && *in.SupervisorID != "" {
		sup := *in.SupervisorID
		e.SupervisorID = &sup
	}
	if err := repo.CreateEmployee(ctx, s.DB, e); err != nil {
		return nil, err
	}
	return e, nil
}

// UpdateEmployee applies the non-nil fields of in to employee id.
func (s *CatalogService) UpdateEmployee(ctx context.Context, id string, in EmployeeInput) (*domain.Employee, error) {
	e, err := repo.GetEmployee(ctx, s.DB, id)
	if err != nil {
		return nil, notFound(err)
	}
	if in.Name != nil {
		if !hasText(in.Name) {
			return nil, ErrMissingFields
		}
		e.Name = in.Name
	}
	if in.Department != nil {
		e.Department = in.Department
	}
	if in.Active != nil {
		e.Active = *in.Active
	}
	if in.SupervisorID != nil {
		if *in.SupervisorID == "" {
			e.SupervisorID = nil
		} else {
			sup := *in.SupervisorID
			e.SupervisorID = &sup
		}
	}
	if err := repo.SaveEmployee(ctx, s.DB, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Questions lists every question, inactive ones included.
func (s *CatalogService) Questions(ctx context.Context) ([]domain.SurveyQuestion, error) {
	return repo.ListQuestions(ctx, s.DB, false)
}

// CreateQuestion adds a question. Text, type and category are required;
// order defaults to one past the highest in use.
func (s *CatalogService) CreateQuestion(ctx context.Context, in QuestionInput) (*domain.SurveyQuestion, error) {
	if !hasText(in.Text) || in.Type == "" || in.Category == "" {
		return nil, ErrMissingFields
	}
	if !in.Type.Valid() || !in.Category.Valid() {
		return nil, ErrInvalidField
	}
	q := &domain.SurveyQuestion{
		ID:       strings.TrimSpace(in.ID),
		Text:     in.Text,
		Type:     in.Type,
		Category: in.Category,
		Active:   true,
	}
	if q.ID == "" {
		q.ID = newID("Q-")
	} else if _, err := repo.GetQuestion(ctx, s.DB, q.ID); err == nil {
		return nil, ErrAlreadyExists
	}
	if in.Required != nil {
		q.Required = *in.Required
	}
	if in.Active != nil {
		q.Active = *in.Active
	}
	if in.Order != nil {
		q.Order = *in.Order
	} else {
		top, err := repo.MaxQuestionOrder(ctx, s.DB)
		if err != nil {
			return nil, err
		}
		q.Order = top + 1
	}
	if in.IsPrimary != nil && *in.IsPrimary {
		if err := s.checkPrimary(ctx, ""); err != nil {
			return nil, err
		}
		q.IsPrimary = true
	}
	if err := repo.CreateQuestion(ctx, s.DB, q); err != nil {
		return nil, err
	}
	return q, nil
}

// UpdateQuestion applies the non-nil fields of in to question id.
func (s *CatalogService) UpdateQuestion(ctx context.Context, id string, in QuestionInput) (*domain.SurveyQuestion, error) {
	q, err := repo.GetQuestion(ctx, s.DB, id)
	if err != nil {
		return nil, notFound(err)
	}
	if in.Text != nil {
		if !hasText(in.Text) {
			return nil, ErrMissingFields
		}
		q.Text = in.Text
	}
	if in.Type != "" {
		if !in.Type.Valid() {
			return nil, ErrInvalidField
		}
		q.Type = in.Type
	}
	if in.Category != "" {
		if !in.Category.Valid() {
			return nil, ErrInvalidField
		}
		q.Category = in.Category
	}
	if in.Required != nil {
		q.Required = *in.Required
	}
	if in.Order != nil {
		q.Order = *in.Order
	}
	if in.Active != nil {
		q.Active = *in.Active
	}
	if in.IsPrimary != nil {
		if *in.IsPrimary && !q.IsPrimary {
			if err := s.checkPrimary(ctx, q.ID); err != nil {
				return nil, err
			}
		}
		q.IsPrimary = *in.IsPrimary
	}
	if err := repo.SaveQuestion(ctx, s.DB, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *CatalogService) checkPrimary(ctx context.Context, excludeID string) error {
	n, err := repo.CountPrimaryQuestions(ctx, s.DB, excludeID)
	if err != nil {
		return err
	}
	if n >= domain.MaxPrimaryQuestions {
		return ErrTooManyPrimary
	}
	return nil
}

// Users lists users; excludeAdmins hides admin accounts.
func (s *CatalogService) Users(ctx context.Context, excludeAdmins bool) ([]domain.User, error) {
	return repo.ListUsers(ctx, s.DB, excludeAdmins)
}

// CreateUser adds a user. Name and role are required; employee users must
// point at an existing employee.
func (s *CatalogService) CreateUser(ctx context.Context, in UserInput) (*domain.User, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Role == "" {
		return nil, ErrMissingFields
	}
	if !in.Role.Valid() {
		return nil, ErrInvalidField
	}
	u := &domain.User{ID: strings.TrimSpace(in.ID), Name: name, Role: in.Role}
	if u.ID == "" {
		u.ID = newID("USER-")
	} else if _, err := repo.GetUser(ctx, s.DB, u.ID); err == nil {
		return nil, ErrAlreadyExists
	}
	if in.EmployeeID != nil && *in.EmployeeID != "" {
		emp := *in.EmployeeID
		u.EmployeeID = &emp
	}
	if err := s.checkUserEmployee(ctx, u); err != nil {
		return nil, err
	}
	if err := repo.CreateUser(ctx, s.DB, u); err != nil {
		return nil, err
	}
	return u, nil
}

// UpdateUser applies the non-empty fields of in to user id.
func (s *CatalogService) UpdateUser(ctx context.Context, id string, in UserInput) (*domain.User, error) {
	u, err := repo.GetUser(ctx, s.DB, id)
	if err != nil {
		return nil, notFound(err)
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		u.Name = name
	}
	if in.Role != "" {
		if !in.Role.Valid() {
			return nil, ErrInvalidField
		}
		u.Role = in.Role
	}
	if in.EmployeeID != nil {
		if *in.EmployeeID == "" {
			u.EmployeeID = nil
		} else {
			emp := *in.EmployeeID
			u.EmployeeID = &emp
		}
	}
	if err := s.checkUserEmployee(ctx, u); err != nil {
		return nil, err
	}
	if err := repo.SaveUser(ctx, s.DB, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *CatalogService) checkUserEmployee(ctx context.Context, u *domain.User) error {
	if u.Role != domain.RoleEmployee {
		return nil
	}
	if u.EmployeeID == nil {
		return ErrMissingFields
	}
	if _, err := repo.GetEmployee(ctx, s.DB, *u.EmployeeID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrInvalidField
		}
		return err
	}
	return nil
}
