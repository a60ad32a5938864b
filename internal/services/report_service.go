// Package services – ReportService
//
// ReportService loads responses and catalog data and hands them to the pure
// aggregation functions in package report. Results are cached as JSON for a
// short TTL under report:<scope>:<id>:<start>:<end>.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-survey-backend/internal/cache"
	"github.com/tbourn/go-survey-backend/internal/domain"
	"github.com/tbourn/go-survey-backend/internal/report"
	"github.com/tbourn/go-survey-backend/internal/repo"
)

// ReportService builds employee, supervisor and manager reports.
type ReportService struct {
	DB    *gorm.DB
	Cache cache.Cache
	TTL   time.Duration
}

// NewReportService returns a service caching results in c for ttl. A nil c
// disables caching.
func NewReportService(db *gorm.DB, c cache.Cache, ttl time.Duration) *ReportService {
	return &ReportService{DB: db, Cache: c, TTL: ttl}
}

// EmployeeETag returns a weak validator for an employee's report. It changes
// whenever a completed response is added or touched.
func (s *ReportService) EmployeeETag(ctx context.Context, employeeID string) (string, error) {
	employeeID = strings.TrimSpace(employeeID)
	if employeeID == "" {
		return "", ErrMissingEmployee
	}
	version, err := s.employeeVersion(ctx, employeeID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(`W/"%s-%s"`, employeeID, version), nil
}

// employeeVersion is "<count>-<latest activity ms>" over the employee's
// completed responses.
func (s *ReportService) employeeVersion(ctx context.Context, employeeID string) (string, error) {
	count, latest, err := repo.ResponseStats(ctx, s.DB, employeeID)
	if err != nil {
		return "", err
	}
	var ts int64
	if latest != nil {
		ts = latest.UTC().UnixMilli()
	}
	return fmt.Sprintf("%d-%d", count, ts), nil
}

// EmployeeReport aggregates every completed response for one employee.
// Cached entries are keyed by the same version EmployeeETag reports, so a
// body is never older than the validator sent before it.
func (s *ReportService) EmployeeReport(ctx context.Context, employeeID string) (*report.EmployeeReport, error) {
	tr := otel.Tracer("services/ReportService")
	ctx, span := tr.Start(ctx, "EmployeeReport",
		trace.WithAttributes(attribute.String("employee.id", employeeID)),
	)
	defer span.End()

	employeeID = strings.TrimSpace(employeeID)
	if employeeID == "" {
		return nil, ErrMissingEmployee
	}
	version, err := s.employeeVersion(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	key := cache.ReportKey("employee", employeeID, "", "") + ":" + version
	return cached(ctx, s, "employee", key, func() (*report.EmployeeReport, error) {
		emp, err := repo.GetEmployee(ctx, s.DB, employeeID)
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrEmployeeNotFound
		}
		if err != nil {
			return nil, err
		}
		rows, err := repo.ListCompletedResponses(ctx, s.DB, employeeID)
		if err != nil {
			return nil, err
		}
		rep := report.BuildEmployee(*emp, rows)
		return &rep, nil
	})
}

// SupervisorReport aggregates the active team of supervisorID within
// [start, end]. An empty supervisorID defaults to the caller's own id.
// Supervisors may only see their own team; admins may see any.
func (s *ReportService) SupervisorReport(ctx context.Context, caller Principal, supervisorID, start, end string) (*report.SupervisorReport, error) {
	tr := otel.Tracer("services/ReportService")
	ctx, span := tr.Start(ctx, "SupervisorReport")
	defer span.End()

	supervisorID = strings.TrimSpace(supervisorID)
	switch caller.Role {
	case domain.RoleAdmin:
	case domain.RoleSupervisor:
		if supervisorID == "" {
			supervisorID = caller.UserID
		}
		if supervisorID != caller.UserID {
			return nil, ErrForbidden
		}
	default:
		return nil, ErrForbidden
	}
	if supervisorID == "" {
		return nil, ErrMissingSupervisor
	}
	span.SetAttributes(attribute.String("supervisor.id", supervisorID))

	rng, err := parseRange(start, end)
	if err != nil {
		return nil, err
	}
	key := cache.ReportKey("supervisor", supervisorID, start, end)
	return cached(ctx, s, "supervisor", key, func() (*report.SupervisorReport, error) {
		team, err := repo.ListTeam(ctx, s.DB, supervisorID)
		if err != nil {
			return nil, err
		}
		catalog, err := repo.ListQuestions(ctx, s.DB, true)
		if err != nil {
			return nil, err
		}
		var rows []domain.SurveyResponse
		if len(team) > 0 {
			ids := make([]string, 0, len(team))
			for _, e := range team {
				ids = append(ids, e.ID)
			}
			if rows, err = repo.ListCompletedResponses(ctx, s.DB, ids...); err != nil {
				return nil, err
			}
		}
		rep := report.BuildSupervisor(supervisorID, team, catalog, rows, rng)
		return &rep, nil
	})
}

// ManagerReport aggregates every completed response within [start, end].
func (s *ReportService) ManagerReport(ctx context.Context, start, end string) (*report.ManagerReport, error) {
	tr := otel.Tracer("services/ReportService")
	ctx, span := tr.Start(ctx, "ManagerReport")
	defer span.End()

	rng, err := parseRange(start, end)
	if err != nil {
		return nil, err
	}
	key := cache.ReportKey("manager", "all", start, end)
	return cached(ctx, s, "manager", key, func() (*report.ManagerReport, error) {
		employees, err := repo.ListEmployees(ctx, s.DB, false)
		if err != nil {
			return nil, err
		}
		catalog, err := repo.ListQuestions(ctx, s.DB, false)
		if err != nil {
			return nil, err
		}
		rows, err := repo.ListCompletedResponses(ctx, s.DB)
		if err != nil {
			return nil, err
		}
		rep := report.BuildManager(employees, catalog, rows, rng)
		return &rep, nil
	})
}

func parseRange(start, end string) (report.Range, error) {
	rng, err := report.ParseRange(strings.TrimSpace(start), strings.TrimSpace(end))
	if errors.Is(err, report.ErrInvalidRange) {
		return report.Range{}, ErrInvalidRange
	}
	return rng, err
}

// cached returns the value stored under key, or builds, stores and returns
// it. Undecodable entries are rebuilt.
func cached[T any](ctx context.Context, s *ReportService, scope, key string, build func() (T, error)) (T, error) {
	if s.Cache != nil && s.TTL > 0 {
		if raw, ok := s.Cache.Get(ctx, key); ok {
			var v T
			if err := json.Unmarshal(raw, &v); err == nil {
				reportCache.WithLabelValues(scope, "hit").Inc()
				return v, nil
			}
		}
		reportCache.WithLabelValues(scope, "miss").Inc()
	}

	v, err := build()
	if err != nil {
		return v, err
	}
	if s.Cache != nil && s.TTL > 0 {
		if raw, err := json.Marshal(v); err == nil {
			s.Cache.Set(ctx, key, raw, s.TTL)
		}
	}
	return v, nil
}
