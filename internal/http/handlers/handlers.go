// Package handlers exposes the survey, report, catalog and portal endpoints.
//
// Handlers are transport-thin: they bind input, call application services
// through the interfaces below, manage cookies, and translate service errors
// into the standard envelope.
package handlers

import (
	"context"
	"time"

	"github.com/tbourn/go-survey-backend/internal/auth"
	"github.com/tbourn/go-survey-backend/internal/domain"
	"github.com/tbourn/go-survey-backend/internal/report"
	"github.com/tbourn/go-survey-backend/internal/services"
)

//
// Service contracts (context-aware)
//

// AuthService issues and redeems signed survey hand-offs.
type AuthService interface {
	Issue(ctx context.Context, req services.IssueRequest) (*auth.Payload, error)
	Redeem(ctx context.Context, p auth.Payload) (*services.Identity, error)
	MockVerify(req services.DelegatedRequest) (*services.DelegatedResponse, error)
}

// SurveyService drives survey sessions and responses. Every mutation returns
// the fresh snapshot the handler writes back as a cookie.
type SurveyService interface {
	RedeemAuth(ctx context.Context, id services.Identity) (*services.Mutation, error)
	ResumeByEditToken(ctx context.Context, token string) (*services.Mutation, error)
	Current(ctx context.Context, sessionID string) (*services.SessionView, error)
	RecordAnswer(ctx context.Context, ref services.SessionRef, in services.AnswerInput, allowEdit bool) (*services.Mutation, error)
	RecordProgress(ctx context.Context, ref services.SessionRef, index int) (*services.Mutation, error)
	Finish(ctx context.Context, ref services.SessionRef, finalComment *string) (string, *services.Mutation, error)
	Abandon(ctx context.Context, ref services.SessionRef) (*services.Mutation, error)
}

// ReportService builds the three report scopes.
type ReportService interface {
	EmployeeETag(ctx context.Context, employeeID string) (string, error)
	EmployeeReport(ctx context.Context, employeeID string) (*report.EmployeeReport, error)
	SupervisorReport(ctx context.Context, caller services.Principal, supervisorID, start, end string) (*report.SupervisorReport, error)
	ManagerReport(ctx context.Context, start, end string) (*report.ManagerReport, error)
}

// CatalogService reads and edits employees, questions and users.
type CatalogService interface {
	ActiveEmployees(ctx context.Context) ([]domain.Employee, error)
	ActiveQuestions(ctx context.Context) ([]domain.SurveyQuestion, error)
	Employees(ctx context.Context) ([]domain.Employee, error)
	CreateEmployee(ctx context.Context, in services.EmployeeInput) (*domain.Employee, error)
	UpdateEmployee(ctx context.Context, id string, in services.EmployeeInput) (*domain.Employee, error)
	Questions(ctx context.Context) ([]domain.SurveyQuestion, error)
	CreateQuestion(ctx context.Context, in services.QuestionInput) (*domain.SurveyQuestion, error)
	UpdateQuestion(ctx context.Context, id string, in services.QuestionInput) (*domain.SurveyQuestion, error)
	Users(ctx context.Context, excludeAdmins bool) ([]domain.User, error)
	CreateUser(ctx context.Context, in services.UserInput) (*domain.User, error)
	UpdateUser(ctx context.Context, id string, in services.UserInput) (*domain.User, error)
}

// PortalService signs admins and portal users in.
type PortalService interface {
	AdminLogin(username, password string) (*services.Login, error)
	PortalLogin(ctx context.Context, userID string) (*services.Login, error)
	Me(ctx context.Context, p services.Principal) (*services.Principal, error)
}

//
// Handler wiring
//

// Services bundles the handler dependencies.
type Services struct {
	Auth    AuthService
	Survey  SurveyService
	Reports ReportService
	Catalog CatalogService
	Portal  PortalService
}

// CookieOptions tunes the cookies written by the handlers.
type CookieOptions struct {
	Secure bool
	// PortalTTL is the Max-Age of the portal_token cookie.
	PortalTTL time.Duration
}

// Handlers groups every HTTP endpoint.
type Handlers struct {
	auth    AuthService
	survey  SurveyService
	reports ReportService
	catalog CatalogService
	portal  PortalService
	cookies CookieOptions
}

// New constructs Handlers bound to the given services.
func New(svc Services, cookies CookieOptions) *Handlers {
	if cookies.PortalTTL <= 0 {
		cookies.PortalTTL = 8 * time.Hour
	}
	return &Handlers{
		auth:    svc.Auth,
		survey:  svc.Survey,
		reports: svc.Reports,
		catalog: svc.Catalog,
		portal:  svc.Portal,
		cookies: cookies,
	}
}
