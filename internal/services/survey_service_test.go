package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-survey-backend/internal/domain"
	"github.com/tbourn/go-survey-backend/internal/events"
	"github.com/tbourn/go-survey-backend/internal/repo"
	"github.com/tbourn/go-survey-backend/internal/snapshot"
)

// ----- helpers -----

func newServiceDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := repo.OpenMemory("services")
	if err != nil {
		t.Fatalf("open memory db: %v", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	if err := repo.Seed(context.Background(), db); err != nil {
		t.Fatalf("seed: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type stubPublisher struct {
	mu     sync.Mutex
	events []events.SurveyCompleted
	err    error
}

func (p *stubPublisher) PublishSurveyCompleted(_ context.Context, ev events.SurveyCompleted) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func (p *stubPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

func newSurveySvc(t *testing.T) (*SurveyService, *fakeClock, *stubPublisher) {
	t.Helper()
	clk := &fakeClock{t: time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)}
	pub := &stubPublisher{}
	s := NewSurveyService(newServiceDB(t), pub)
	s.Now = clk.Now
	return s, clk, pub
}

func identity() Identity {
	return Identity{GroupID: "G-DEFAULT", CustomerID: "CUST-1", EmployeeID: "EMP-001", Lang: "en"}
}

func refOf(m *Mutation) SessionRef {
	return SessionRef{SessionID: m.Session.ID, Snapshot: m.Snapshot}
}

func intp(v int) *int       { return &v }
func strp(v string) *string { return &v }

// ----- RedeemAuth -----

func TestRedeemAuth_CreatesResponseAndSession(t *testing.T) {
	s, _, _ := newSurveySvc(t)
	ctx := context.Background()

	m, err := s.RedeemAuth(ctx, identity())
	if err != nil {
		t.Fatalf("RedeemAuth: %v", err)
	}
	if m.Response.Status != domain.StatusInProgress || m.Response.LastQuestionIndex != 0 {
		t.Fatalf("unexpected response: %+v", m.Response)
	}
	if m.Response.EditToken == "" || m.Response.Lang != "en" {
		t.Fatalf("edit token and lang must be set: %+v", m.Response)
	}
	if m.Session.ResponseID != m.Response.ID || m.Session.EmployeeID != "EMP-001" {
		t.Fatalf("session not bound: %+v", m.Session)
	}
	if snapshot.Decode(m.Snapshot) == nil {
		t.Fatalf("snapshot must decode")
	}
}

func TestRedeemAuth_DefaultsLang(t *testing.T) {
	s, _, _ := newSurveySvc(t)
	id := identity()
	id.Lang = ""
	m, err := s.RedeemAuth(context.Background(), id)
	if err != nil {
		t.Fatalf("RedeemAuth: %v", err)
	}
	if m.Response.Lang != "fa" || m.Session.Lang != "fa" {
		t.Fatalf("want default lang fa, got %q/%q", m.Response.Lang, m.Session.Lang)
	}
}

func TestRedeemAuth_ReusesOpenResponseWithinWindow(t *testing.T) {
	s, clk, _ := newSurveySvc(t)
	ctx := context.Background()

	first, err := s.RedeemAuth(ctx, identity())
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	clk.Advance(3 * time.Hour)
	second, err := s.RedeemAuth(ctx, identity())
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if second.Response.ID != first.Response.ID {
		t.Fatalf("want same response, got %s vs %s", second.Response.ID, first.Response.ID)
	}
	if second.Session.ID == first.Session.ID {
		t.Fatalf("every redemption must create a new session")
	}
}

func TestRedeemAuth_RevivesIncomplete(t *testing.T) {
	s, _, _ := newSurveySvc(t)
	ctx := context.Background()

	m, _ := s.RedeemAuth(ctx, identity())
	if _, err := s.Abandon(ctx, refOf(m)); err != nil {
		t.Fatalf("Abandon: %v", err)
	}
	again, err := s.RedeemAuth(ctx, identity())
	if err != nil {
		t.Fatalf("RedeemAuth: %v", err)
	}
	if again.Response.ID != m.Response.ID || again.Response.Status != domain.StatusInProgress {
		t.Fatalf("want revived response, got %+v", again.Response)
	}
}

func TestRedeemAuth_DailyLimitAndRollover(t *testing.T) {
	s, clk, _ := newSurveySvc(t)
	ctx := context.Background()

	m, _ := s.RedeemAuth(ctx, identity())
	if _, _, err := s.Finish(ctx, refOf(m), nil); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	clk.Advance(23 * time.Hour)
	if _, err := s.RedeemAuth(ctx, identity()); !errors.Is(err, ErrDailyLimitReached) {
		t.Fatalf("want ErrDailyLimitReached, got %v", err)
	}

	// Another customer is not limited.
	other := identity()
	other.CustomerID = "CUST-2"
	if _, err := s.RedeemAuth(ctx, other); err != nil {
		t.Fatalf("other customer: %v", err)
	}

	clk.Advance(2 * time.Hour)
	next, err := s.RedeemAuth(ctx, identity())
	if err != nil {
		t.Fatalf("after window: %v", err)
	}
	if next.Response.ID == m.Response.ID {
		t.Fatalf("want a fresh response after 24h")
	}
}

// ----- ResumeByEditToken / Current -----

func TestResumeByEditToken(t *testing.T) {
	s, _, _ := newSurveySvc(t)
	ctx := context.Background()

	if _, err := s.ResumeByEditToken(ctx, "nope"); !errors.Is(err, ErrInvalidEditToken) {
		t.Fatalf("want ErrInvalidEditToken, got %v", err)
	}
	if _, err := s.ResumeByEditToken(ctx, "  "); !errors.Is(err, ErrInvalidEditToken) {
		t.Fatalf("want ErrInvalidEditToken for blank, got %v", err)
	}

	m, _ := s.RedeemAuth(ctx, identity())
	tok, _, err := s.Finish(ctx, refOf(m), strp("great"))
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	r, err := s.ResumeByEditToken(ctx, tok)
	if err != nil {
		t.Fatalf("Resume: %v", err)
	}
	if r.Response.ID != m.Response.ID || r.Response.Status != domain.StatusCompleted {
		t.Fatalf("resume must not change the response: %+v", r.Response)
	}
	if r.Session.ID == m.Session.ID {
		t.Fatalf("resume must create a new session")
	}
}

func TestCurrent(t *testing.T) {
	s, _, _ := newSurveySvc(t)
	ctx := context.Background()

	if _, err := s.Current(ctx, ""); !errors.Is(err, ErrNoSession) {
		t.Fatalf("want ErrNoSession, got %v", err)
	}
	if _, err := s.Current(ctx, "missing"); !errors.Is(err, ErrNoSession) {
		t.Fatalf("want ErrNoSession, got %v", err)
	}

	m, _ := s.RedeemAuth(ctx, identity())
	v, err := s.Current(ctx, m.Session.ID)
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if v.Response.ID != m.Response.ID || v.Employee == nil || v.Employee.ID != "EMP-001" {
		t.Fatalf("unexpected view: %+v", v)
	}

	if err := s.DB.Delete(&domain.SurveyResponse{}, "id = ?", m.Response.ID).Error; err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Current(ctx, m.Session.ID); !errors.Is(err, ErrMissingResponse) {
		t.Fatalf("want ErrMissingResponse, got %v", err)
	}
}

// ----- RecordAnswer -----

func TestRecordAnswer_ScoreBounds(t *testing.T) {
	s, _, _ := newSurveySvc(t)
	ctx := context.Background()
	m, _ := s.RedeemAuth(ctx, identity())

	cases := []struct {
		score int
		want  error
	}{
		{0, ErrInvalidScore},
		{11, ErrInvalidScore},
		{1, nil},
		{10, nil},
	}
	for _, tc := range cases {
		_, err := s.RecordAnswer(ctx, SessionRef{SessionID: m.Session.ID}, AnswerInput{QuestionID: "Q-001", Score: intp(tc.score)}, false)
		if !errors.Is(err, tc.want) {
			t.Fatalf("score %d: want %v, got %v", tc.score, tc.want, err)
		}
	}
}

func TestRecordAnswer_MissingQuestion(t *testing.T) {
	s, _, _ := newSurveySvc(t)
	if _, err := s.RecordAnswer(context.Background(), SessionRef{SessionID: "x"}, AnswerInput{QuestionID: " "}, false); !errors.Is(err, ErrMissingQuestion) {
		t.Fatalf("want ErrMissingQuestion, got %v", err)
	}
}

func TestRecordAnswer_UpsertsProvidedFieldsOnly(t *testing.T) {
	s, clk, _ := newSurveySvc(t)
	ctx := context.Background()
	m, _ := s.RedeemAuth(ctx, identity())
	ref := SessionRef{SessionID: m.Session.ID}

	if _, err := s.RecordAnswer(ctx, ref, AnswerInput{QuestionID: "Q-001", Score: intp(7), Comment: strp("ok")}, false); err != nil {
		t.Fatalf("first: %v", err)
	}
	clk.Advance(time.Minute)
	got, err := s.RecordAnswer(ctx, ref, AnswerInput{QuestionID: "Q-001", Score: intp(9)}, false)
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if len(got.Response.Answers) != 1 {
		t.Fatalf("want 1 answer, got %d", len(got.Response.Answers))
	}
	a := got.Response.Answers[0]
	if a.Score == nil || *a.Score != 9 || a.Comment == nil || *a.Comment != "ok" {
		t.Fatalf("unexpected answer: %+v", a)
	}
	if !got.Response.LastActivityAt.Equal(clk.Now()) {
		t.Fatalf("activity not stamped: %v", got.Response.LastActivityAt)
	}

	stored, err := repo.GetResponse(ctx, s.DB, m.Response.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(stored.Answers) != 1 || *stored.Answers[0].Score != 9 {
		t.Fatalf("not persisted: %+v", stored.Answers)
	}
}

func TestRecordAnswer_ReadOnlyAfterFinish(t *testing.T) {
	s, _, _ := newSurveySvc(t)
	ctx := context.Background()
	m, _ := s.RedeemAuth(ctx, identity())
	ref := SessionRef{SessionID: m.Session.ID}
	if _, _, err := s.Finish(ctx, ref, nil); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	in := AnswerInput{QuestionID: "Q-002", Score: intp(5)}
	if _, err := s.RecordAnswer(ctx, ref, in, false); !errors.Is(err, ErrReadOnly) {
		t.Fatalf("want ErrReadOnly, got %v", err)
	}
	got, err := s.RecordAnswer(ctx, ref, in, true)
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if got.Response.Status != domain.StatusCompleted {
		t.Fatalf("editing must keep completed status, got %s", got.Response.Status)
	}
}

func TestRecordProgress(t *testing.T) {
	s, _, _ := newSurveySvc(t)
	ctx := context.Background()
	m, _ := s.RedeemAuth(ctx, identity())

	if _, err := s.RecordProgress(ctx, refOf(m), -1); !errors.Is(err, ErrInvalidIndex) {
		t.Fatalf("want ErrInvalidIndex, got %v", err)
	}
	got, err := s.RecordProgress(ctx, refOf(m), 3)
	if err != nil {
		t.Fatalf("RecordProgress: %v", err)
	}
	if got.Response.LastQuestionIndex != 3 {
		t.Fatalf("want index 3, got %d", got.Response.LastQuestionIndex)
	}
}

// ----- Finish / Abandon -----

func TestFinish_IdempotentAndCommentOverwrite(t *testing.T) {
	s, _, pub := newSurveySvc(t)
	ctx := context.Background()
	m, _ := s.RedeemAuth(ctx, identity())
	ref := SessionRef{SessionID: m.Session.ID}

	tok1, first, err := s.Finish(ctx, ref, strp("  thanks  "))
	if err != nil {
		t.Fatalf("first finish: %v", err)
	}
	if tok1 != m.Response.EditToken {
		t.Fatalf("edit token must not change")
	}
	if first.Response.FinalComment == nil || *first.Response.FinalComment != "thanks" {
		t.Fatalf("comment not trimmed: %v", first.Response.FinalComment)
	}
	if first.Response.CompletedAt == nil || !first.Response.CompletedAt.Equal(first.Response.LastActivityAt) {
		t.Fatalf("completedAt must equal lastActivityAt")
	}

	tok2, second, err := s.Finish(ctx, ref, strp("   "))
	if err != nil {
		t.Fatalf("second finish: %v", err)
	}
	if tok2 != tok1 || second.Response.Status != domain.StatusCompleted {
		t.Fatalf("finish must be idempotent")
	}
	if second.Response.FinalComment != nil {
		t.Fatalf("blank comment must clear, got %q", *second.Response.FinalComment)
	}
	if pub.count() != 2 {
		t.Fatalf("want 2 published events, got %d", pub.count())
	}
}

func TestFinish_PublishFailureDoesNotFail(t *testing.T) {
	s, _, pub := newSurveySvc(t)
	pub.err = errors.New("broker down")
	ctx := context.Background()
	m, _ := s.RedeemAuth(ctx, identity())
	if _, _, err := s.Finish(ctx, refOf(m), nil); err != nil {
		t.Fatalf("Finish must ignore publish errors, got %v", err)
	}
}

func TestAbandon(t *testing.T) {
	s, _, _ := newSurveySvc(t)
	ctx := context.Background()
	m, _ := s.RedeemAuth(ctx, identity())

	got, err := s.Abandon(ctx, refOf(m))
	if err != nil || got.Response.Status != domain.StatusIncomplete {
		t.Fatalf("want incomplete, got %v / %v", got, err)
	}

	if _, _, err := s.Finish(ctx, refOf(m), nil); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	got, err = s.Abandon(ctx, refOf(m))
	if err != nil || got.Response.Status != domain.StatusCompleted {
		t.Fatalf("abandon must not touch completed responses: %v / %v", got, err)
	}
}

// ----- rehydration & concurrency -----

func TestMutations_NoSessionWithoutSnapshot(t *testing.T) {
	s, _, _ := newSurveySvc(t)
	if _, err := s.RecordProgress(context.Background(), SessionRef{SessionID: "gone"}, 1); !errors.Is(err, ErrNoSession) {
		t.Fatalf("want ErrNoSession, got %v", err)
	}
}

func TestRehydrate_FromSnapshotAfterStoreLoss(t *testing.T) {
	s, _, _ := newSurveySvc(t)
	ctx := context.Background()
	m, _ := s.RedeemAuth(ctx, identity())
	m, err := s.RecordAnswer(ctx, refOf(m), AnswerInput{QuestionID: "Q-001", Score: intp(8)}, false)
	if err != nil {
		t.Fatalf("answer: %v", err)
	}

	// Simulate a fresh instance that never saw the session.
	fresh := NewSurveyService(newServiceDB(t), events.Nop{})
	got, err := fresh.RecordAnswer(ctx, refOf(m), AnswerInput{QuestionID: "Q-002", Score: intp(6)}, false)
	if err != nil {
		t.Fatalf("rehydrated answer: %v", err)
	}
	if got.Session.ID != m.Session.ID {
		t.Fatalf("presented session id must be reused")
	}
	if got.Response.ID != m.Response.ID || len(got.Response.Answers) != 2 {
		t.Fatalf("unexpected rehydrated response: %+v", got.Response)
	}
	if ok, _ := repo.SessionExists(ctx, fresh.DB, m.Session.ID); !ok {
		t.Fatalf("session must be persisted")
	}
}

func TestRehydrate_NoSessionIDGetsNewOne(t *testing.T) {
	s, _, _ := newSurveySvc(t)
	ctx := context.Background()
	m, _ := s.RedeemAuth(ctx, identity())

	fresh := NewSurveyService(newServiceDB(t), events.Nop{})
	got, err := fresh.RecordProgress(ctx, SessionRef{Snapshot: m.Snapshot}, 2)
	if err != nil {
		t.Fatalf("RecordProgress: %v", err)
	}
	if got.Session.ID == "" || got.Session.ID == m.Session.ID {
		t.Fatalf("want a newly minted session id, got %q", got.Session.ID)
	}
}

func TestRehydrate_SnapshotNeverOverwritesServerRecord(t *testing.T) {
	s, _, _ := newSurveySvc(t)
	ctx := context.Background()
	m, _ := s.RedeemAuth(ctx, identity())
	stale := m.Snapshot

	if _, err := s.RecordAnswer(ctx, refOf(m), AnswerInput{QuestionID: "Q-001", Score: intp(4)}, false); err != nil {
		t.Fatalf("answer: %v", err)
	}
	if err := s.DB.Delete(&domain.SurveySession{}, "id = ?", m.Session.ID).Error; err != nil {
		t.Fatalf("delete session: %v", err)
	}

	got, err := s.RecordProgress(ctx, SessionRef{SessionID: m.Session.ID, Snapshot: stale}, 1)
	if err != nil {
		t.Fatalf("RecordProgress: %v", err)
	}
	if len(got.Response.Answers) != 1 {
		t.Fatalf("stale snapshot overwrote the stored response: %+v", got.Response.Answers)
	}
}

func TestRehydrate_MissingResponseRestored(t *testing.T) {
	s, _, _ := newSurveySvc(t)
	ctx := context.Background()
	m, _ := s.RedeemAuth(ctx, identity())
	if err := s.DB.Delete(&domain.SurveyResponse{}, "id = ?", m.Response.ID).Error; err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := s.RecordProgress(ctx, SessionRef{SessionID: m.Session.ID}, 1); !errors.Is(err, ErrMissingResponse) {
		t.Fatalf("want ErrMissingResponse without snapshot, got %v", err)
	}
	if _, err := s.RecordProgress(ctx, refOf(m), 1); err != nil {
		t.Fatalf("want restore from snapshot, got %v", err)
	}
}

func TestSave_StaleVersionIsConflict(t *testing.T) {
	s, _, _ := newSurveySvc(t)
	ctx := context.Background()
	m, _ := s.RedeemAuth(ctx, identity())

	a, _ := repo.GetResponse(ctx, s.DB, m.Response.ID)
	b, _ := repo.GetResponse(ctx, s.DB, m.Response.ID)
	if err := s.save(ctx, a); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := s.save(ctx, b); !errors.Is(err, ErrConcurrentUpdate) {
		t.Fatalf("want ErrConcurrentUpdate, got %v", err)
	}

	ghost := &domain.SurveyResponse{ID: "ghost"}
	if err := s.save(ctx, ghost); !errors.Is(err, ErrMissingResponse) {
		t.Fatalf("want ErrMissingResponse, got %v", err)
	}
}
