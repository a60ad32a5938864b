package repo

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/tbourn/go-survey-backend/internal/domain"
)

func TestResponseStats_CountError_NoTable(t *testing.T) {
	db := newTestDB(t)
	if err := db.Migrator().DropTable(&domain.SurveyResponse{}); err != nil {
		t.Fatalf("drop: %v", err)
	}
	if _, _, err := ResponseStats(context.Background(), db, "EMP-001"); err == nil {
		t.Fatalf("expected error due to missing survey_responses table")
	}
}

func TestResponseStats_ZeroRows(t *testing.T) {
	db := newTestDB(t)
	count, latest, err := ResponseStats(context.Background(), db, "EMP-001")
	if err != nil {
		t.Fatalf("ResponseStats error: %v", err)
	}
	if count != 0 || latest != nil {
		t.Fatalf("expected (0, nil), got (%d, %v)", count, latest)
	}
}

func TestResponseStats_FilterAndMax(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	t1 := time.Date(2025, 1, 2, 15, 0, 0, 0, time.UTC)
	t2 := time.Date(2025, 3, 4, 10, 30, 0, 0, time.UTC) // max for EMP-001
	t3 := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)   // in progress, ignored

	seed := func(emp string, at time.Time, status domain.ResponseStatus) {
		r := newResponse(uuid.NewString(), emp, at)
		r.Status = status
		if err := CreateResponse(ctx, db, r); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	seed("EMP-001", t1, domain.StatusCompleted)
	seed("EMP-001", t2, domain.StatusCompleted)
	seed("EMP-001", t3, domain.StatusInProgress)
	seed("EMP-002", t3, domain.StatusCompleted)

	count, latest, err := ResponseStats(ctx, db, "EMP-001")
	if err != nil {
		t.Fatalf("ResponseStats error: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected count 2, got %d", count)
	}
	if latest == nil || !latest.Equal(t2) {
		t.Fatalf("expected latest %v, got %v", t2, latest)
	}
}
