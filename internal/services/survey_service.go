// Package services – SurveyService
//
// SurveyService owns the lifecycle of a survey response: redeeming a verified
// hand-off into a session, resuming by edit token, recording answers and
// progress, finishing and abandoning.
//
// Every mutation returns a Mutation carrying a fresh response snapshot. The
// HTTP layer hands that snapshot to the client, and session-dependent calls
// accept it back: when the server has lost the session (or its response) the
// snapshot is inserted as if newly created and the call proceeds. A snapshot
// never overwrites a record that still exists.
//
// Writes use the response Version for optimistic concurrency; a lost race
// surfaces as ErrConcurrentUpdate and is not retried.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-survey-backend/internal/domain"
	"github.com/tbourn/go-survey-backend/internal/events"
	"github.com/tbourn/go-survey-backend/internal/repo"
	"github.com/tbourn/go-survey-backend/internal/snapshot"
)

const (
	minScore = 1
	maxScore = 10
)

// SessionRef is what a client presents for session-dependent calls: the
// session id cookie and, optionally, its response snapshot.
type SessionRef struct {
	SessionID string
	Snapshot  string
}

// AnswerInput carries the fields of one answer. Nil fields are left as they
// are.
type AnswerInput struct {
	QuestionID string
	Score      *int
	TextValue  *string
	YesNoValue *bool
	Comment    *string
}

// Mutation is the result of every state-changing call.
type Mutation struct {
	Session  *domain.SurveySession
	Response *domain.SurveyResponse
	Snapshot string
}

// SessionView is the read model returned for the current session.
type SessionView struct {
	Session  *domain.SurveySession
	Response *domain.SurveyResponse
	Employee *domain.Employee
}

// SurveyService coordinates survey sessions and responses.
type SurveyService struct {
	DB          *gorm.DB
	Events      events.Publisher
	DailyWindow time.Duration
	DefaultLang string
	Now         func() time.Time
}

// NewSurveyService returns a service with the default 24h window.
func NewSurveyService(db *gorm.DB, pub events.Publisher) *SurveyService {
	return &SurveyService{
		DB:          db,
		Events:      pub,
		DailyWindow: 24 * time.Hour,
		DefaultLang: "fa",
		Now:         time.Now,
	}
}

func (s *SurveyService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *SurveyService) window() time.Duration {
	if s.DailyWindow > 0 {
		return s.DailyWindow
	}
	return 24 * time.Hour
}

func surveyTracer() trace.Tracer { return otel.Tracer("services/SurveyService") }

// RedeemAuth binds a verified identity to a response. A non-completed
// response for the pair started inside the daily window is reused; otherwise
// a completed one inside the window yields ErrDailyLimitReached; otherwise a
// new response is created. A new session is created every time.
func (s *SurveyService) RedeemAuth(ctx context.Context, id Identity) (*Mutation, error) {
	ctx, span := surveyTracer().Start(ctx, "RedeemAuth",
		trace.WithAttributes(
			attribute.String("customer.id", id.CustomerID),
			attribute.String("employee.id", id.EmployeeID),
		),
	)
	defer span.End()

	now := s.now()
	lang := id.Lang
	if lang == "" {
		lang = s.DefaultLang
	}

	pair, err := repo.ListResponsesForPair(ctx, s.DB, id.CustomerID, id.EmployeeID)
	if err != nil {
		return nil, err
	}
	var open *domain.SurveyResponse
	completedInWindow := false
	for i := range pair {
		r := &pair[i]
		if now.Sub(r.StartedAt) > s.window() {
			continue
		}
		if r.Status == domain.StatusCompleted {
			completedInWindow = true
			continue
		}
		if open == nil {
			open = r
		}
	}

	var resp *domain.SurveyResponse
	switch {
	case open != nil:
		resp = open
		if resp.Status != domain.StatusInProgress {
			resp.Status = domain.StatusInProgress
			if err := s.save(ctx, resp); err != nil {
				return nil, err
			}
		}
	case completedInWindow:
		authOutcomes.WithLabelValues("daily_limit").Inc()
		return nil, ErrDailyLimitReached
	default:
		resp = &domain.SurveyResponse{
			ID:             uuid.NewString(),
			CustomerID:     id.CustomerID,
			EmployeeID:     id.EmployeeID,
			GroupID:        id.GroupID,
			Status:         domain.StatusInProgress,
			StartedAt:      now,
			LastActivityAt: now,
			Lang:           lang,
			EditToken:      uuid.NewString(),
			Answers:        []domain.SurveyAnswer{},
		}
		if err := repo.CreateResponse(ctx, s.DB, resp); err != nil {
			return nil, err
		}
	}
	span.SetAttributes(attribute.String("response.id", resp.ID))

	sess := &domain.SurveySession{
		ID:         uuid.NewString(),
		ResponseID: resp.ID,
		CustomerID: id.CustomerID,
		EmployeeID: id.EmployeeID,
		GroupID:    id.GroupID,
		Lang:       lang,
		CreatedAt:  now,
	}
	if err := repo.CreateSession(ctx, s.DB, sess); err != nil {
		return nil, err
	}
	return newMutation(sess, resp)
}

// ResumeByEditToken opens a new session on the response holding token.
// Status and answers are left untouched.
func (s *SurveyService) ResumeByEditToken(ctx context.Context, token string) (*Mutation, error) {
	ctx, span := surveyTracer().Start(ctx, "ResumeByEditToken")
	defer span.End()

	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrInvalidEditToken
	}
	resp, err := repo.GetResponseByEditToken(ctx, s.DB, token)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrInvalidEditToken
	}
	if err != nil {
		return nil, err
	}

	sess := &domain.SurveySession{
		ID:         uuid.NewString(),
		ResponseID: resp.ID,
		CustomerID: resp.CustomerID,
		EmployeeID: resp.EmployeeID,
		GroupID:    resp.GroupID,
		Lang:       resp.Lang,
		CreatedAt:  s.now(),
	}
	if err := repo.CreateSession(ctx, s.DB, sess); err != nil {
		return nil, err
	}
	return newMutation(sess, resp)
}

// Current returns the session, its response and the rated employee. The
// employee is nil when it no longer exists.
func (s *SurveyService) Current(ctx context.Context, sessionID string) (*SessionView, error) {
	ctx, span := surveyTracer().Start(ctx, "Current")
	defer span.End()

	if sessionID == "" {
		return nil, ErrNoSession
	}
	sess, err := repo.GetSession(ctx, s.DB, sessionID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, err
	}
	resp, err := repo.GetResponse(ctx, s.DB, sess.ResponseID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrMissingResponse
	}
	if err != nil {
		return nil, err
	}
	view := &SessionView{Session: sess, Response: resp}
	if emp, err := repo.GetEmployee(ctx, s.DB, resp.EmployeeID); err == nil {
		view.Employee = emp
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}
	return view, nil
}

// RecordAnswer upserts one answer. Only non-nil fields of in are written.
// Answering a completed response requires allowEdit.
func (s *SurveyService) RecordAnswer(ctx context.Context, ref SessionRef, in AnswerInput, allowEdit bool) (*Mutation, error) {
	ctx, span := surveyTracer().Start(ctx, "RecordAnswer",
		trace.WithAttributes(attribute.String("question.id", in.QuestionID)),
	)
	defer span.End()

	in.QuestionID = strings.TrimSpace(in.QuestionID)
	if in.QuestionID == "" {
		return nil, ErrMissingQuestion
	}
	if in.Score != nil && (*in.Score < minScore || *in.Score > maxScore) {
		return nil, ErrInvalidScore
	}

	return s.mutate(ctx, ref, func(r *domain.SurveyResponse) (bool, error) {
		if r.Status == domain.StatusCompleted && !allowEdit {
			return false, ErrReadOnly
		}
		a := r.Answer(in.QuestionID)
		if a == nil {
			r.Answers = append(r.Answers, domain.SurveyAnswer{QuestionID: in.QuestionID})
			a = &r.Answers[len(r.Answers)-1]
		}
		if in.Score != nil {
			a.Score = in.Score
		}
		if in.TextValue != nil {
			a.TextValue = in.TextValue
		}
		if in.YesNoValue != nil {
			a.YesNoValue = in.YesNoValue
		}
		if in.Comment != nil {
			a.Comment = in.Comment
		}
		r.LastActivityAt = s.now()
		if r.Status != domain.StatusCompleted {
			r.Status = domain.StatusInProgress
		}
		return true, nil
	})
}

// RecordProgress stores the index of the question the respondent is on.
func (s *SurveyService) RecordProgress(ctx context.Context, ref SessionRef, index int) (*Mutation, error) {
	ctx, span := surveyTracer().Start(ctx, "RecordProgress",
		trace.WithAttributes(attribute.Int("question.index", index)),
	)
	defer span.End()

	if index < 0 {
		return nil, ErrInvalidIndex
	}
	return s.mutate(ctx, ref, func(r *domain.SurveyResponse) (bool, error) {
		r.LastQuestionIndex = index
		r.LastActivityAt = s.now()
		if r.Status != domain.StatusCompleted {
			r.Status = domain.StatusInProgress
		}
		return true, nil
	})
}

// Finish completes the response and returns its edit token. Calling it again
// keeps the response completed, keeps the token and replaces the final
// comment. A completion event is published best-effort.
func (s *SurveyService) Finish(ctx context.Context, ref SessionRef, finalComment *string) (string, *Mutation, error) {
	ctx, span := surveyTracer().Start(ctx, "Finish")
	defer span.End()

	var firstCompletion bool
	m, err := s.mutate(ctx, ref, func(r *domain.SurveyResponse) (bool, error) {
		firstCompletion = r.Status != domain.StatusCompleted
		r.FinalComment = nil
		if finalComment != nil {
			if c := strings.TrimSpace(*finalComment); c != "" {
				r.FinalComment = &c
			}
		}
		now := s.now()
		r.Status = domain.StatusCompleted
		r.CompletedAt = &now
		r.LastActivityAt = now
		return true, nil
	})
	if err != nil {
		return "", nil, err
	}
	if firstCompletion {
		responsesCompleted.Inc()
	}
	s.publishCompleted(ctx, m.Response)
	return m.Response.EditToken, m, nil
}

// Abandon marks an in-progress response incomplete. Any other status is left
// alone.
func (s *SurveyService) Abandon(ctx context.Context, ref SessionRef) (*Mutation, error) {
	ctx, span := surveyTracer().Start(ctx, "Abandon")
	defer span.End()

	return s.mutate(ctx, ref, func(r *domain.SurveyResponse) (bool, error) {
		if r.Status != domain.StatusInProgress {
			return false, nil
		}
		r.Status = domain.StatusIncomplete
		r.LastActivityAt = s.now()
		return true, nil
	})
}

func (s *SurveyService) publishCompleted(ctx context.Context, r *domain.SurveyResponse) {
	if s.Events == nil {
		return
	}
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 3*time.Second)
	defer cancel()
	if err := s.Events.PublishSurveyCompleted(pctx, events.NewSurveyCompleted(r)); err != nil {
		log.Warn().Err(err).Str("response_id", r.ID).Msg("publish survey.completed failed")
	}
}

// mutate resolves ref, applies fn and saves the response when fn reports a
// change.
func (s *SurveyService) mutate(ctx context.Context, ref SessionRef, fn func(*domain.SurveyResponse) (bool, error)) (*Mutation, error) {
	sess, resp, err := s.resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	changed, err := fn(resp)
	if err != nil {
		return nil, err
	}
	if changed {
		if err := s.save(ctx, resp); err != nil {
			return nil, err
		}
	}
	return newMutation(sess, resp)
}

func (s *SurveyService) save(ctx context.Context, r *domain.SurveyResponse) error {
	err := repo.SaveResponse(ctx, s.DB, r)
	switch {
	case errors.Is(err, repo.ErrStaleVersion):
		return ErrConcurrentUpdate
	case errors.Is(err, repo.ErrNotFound):
		return ErrMissingResponse
	}
	return err
}

// resolve finds the session and response for ref, rebuilding either from the
// snapshot when the server copy is gone.
func (s *SurveyService) resolve(ctx context.Context, ref SessionRef) (*domain.SurveySession, *domain.SurveyResponse, error) {
	snap := snapshot.Decode(ref.Snapshot)

	var sess *domain.SurveySession
	if ref.SessionID != "" {
		got, err := repo.GetSession(ctx, s.DB, ref.SessionID)
		switch {
		case err == nil:
			sess = got
		case !errors.Is(err, repo.ErrNotFound):
			return nil, nil, err
		}
	}

	if sess == nil {
		if snap == nil {
			return nil, nil, ErrNoSession
		}
		if err := s.restoreResponse(ctx, snap); err != nil {
			return nil, nil, err
		}
		id := ref.SessionID
		if id == "" {
			id = uuid.NewString()
		}
		sess = &domain.SurveySession{
			ID:         id,
			ResponseID: snap.ID,
			CustomerID: snap.CustomerID,
			EmployeeID: snap.EmployeeID,
			GroupID:    snap.GroupID,
			Lang:       snap.Lang,
			CreatedAt:  s.now(),
		}
		if err := repo.CreateSession(ctx, s.DB, sess); err != nil {
			return nil, nil, err
		}
		rehydrations.Inc()
		log.Info().Str("session_id", sess.ID).Str("response_id", snap.ID).Msg("session rebuilt from snapshot")
	}

	resp, err := repo.GetResponse(ctx, s.DB, sess.ResponseID)
	if errors.Is(err, repo.ErrNotFound) && snap != nil && snap.ID == sess.ResponseID {
		if err := s.restoreResponse(ctx, snap); err != nil {
			return nil, nil, err
		}
		rehydrations.Inc()
		resp, err = repo.GetResponse(ctx, s.DB, sess.ResponseID)
	}
	if errors.Is(err, repo.ErrNotFound) {
		return nil, nil, ErrMissingResponse
	}
	if err != nil {
		return nil, nil, err
	}
	return sess, resp, nil
}

// restoreResponse inserts snap unless a response with its id exists.
func (s *SurveyService) restoreResponse(ctx context.Context, snap *domain.SurveyResponse) error {
	exists, err := repo.ResponseExists(ctx, s.DB, snap.ID)
	if err != nil || exists {
		return err
	}
	if err := repo.CreateResponse(ctx, s.DB, snap); err != nil {
		// Lost an insert race with another request restoring the same id.
		if again, _ := repo.ResponseExists(ctx, s.DB, snap.ID); again {
			return nil
		}
		return err
	}
	return nil
}

func newMutation(sess *domain.SurveySession, resp *domain.SurveyResponse) (*Mutation, error) {
	tok, err := snapshot.Encode(resp)
	if err != nil {
		return nil, err
	}
	return &Mutation{Session: sess, Response: resp, Snapshot: tok}, nil
}
