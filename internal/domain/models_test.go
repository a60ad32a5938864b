package domain

import (
	"fmt"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite (no CGO)
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newDomainDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:domain_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	return db
}

func intp(v int) *int              { return &v }
func strp(v string) *string        { return &v }
func boolp(v bool) *bool           { return &v }
func timep(v time.Time) *time.Time { return &v }

func TestTableNames(t *testing.T) {
	cases := map[string]string{
		(Employee{}).TableName():       "employees",
		(SurveyQuestion{}).TableName(): "survey_questions",
		(SurveyResponse{}).TableName(): "survey_responses",
		(SurveySession{}).TableName():  "survey_sessions",
		(User{}).TableName():           "users",
	}
	for got, want := range cases {
		if got != want {
			t.Fatalf("TableName() = %q; want %q", got, want)
		}
	}
}

func TestMigrations_IndexesExist(t *testing.T) {
	db := newDomainDB(t)
	if err := db.AutoMigrate(&Employee{}, &SurveyQuestion{}, &SurveyResponse{}, &SurveySession{}, &User{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	m := db.Migrator()
	if !m.HasIndex(&SurveyResponse{}, "idx_response_pair") {
		t.Fatalf("expected idx_response_pair on survey_responses")
	}
	if !m.HasColumn(&SurveyQuestion{}, "sort_order") {
		t.Fatalf("expected sort_order column on survey_questions")
	}
}

func TestSurveyResponse_AnswersRoundTripThroughJSONColumn(t *testing.T) {
	db := newDomainDB(t)
	if err := db.AutoMigrate(&SurveyResponse{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	now := time.Now().UTC()
	in := SurveyResponse{
		ID: uuid.NewString(), CustomerID: "C1", EmployeeID: "EMP-001", GroupID: "G",
		Status: StatusInProgress, StartedAt: now, LastActivityAt: now, Lang: "fa",
		EditToken: uuid.NewString(),
		Answers: []SurveyAnswer{
			{QuestionID: "q1", Score: intp(9)},
			{QuestionID: "q2", YesNoValue: boolp(true), Comment: strp("great")},
		},
	}
	if err := db.Create(&in).Error; err != nil {
		t.Fatalf("create: %v", err)
	}

	var out SurveyResponse
	if err := db.First(&out, "id = ?", in.ID).Error; err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out.Answers) != 2 || out.Answers[0].QuestionID != "q1" || *out.Answers[0].Score != 9 {
		t.Fatalf("answers not preserved: %+v", out.Answers)
	}
	if out.Answers[1].YesNoValue == nil || !*out.Answers[1].YesNoValue {
		t.Fatalf("yes/no not preserved: %+v", out.Answers[1])
	}
}

func TestEmployee_LocalizedColumns(t *testing.T) {
	db := newDomainDB(t)
	if err := db.AutoMigrate(&Employee{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	e := Employee{ID: "EMP-9", Name: Localized{"en": "Ann", "fa": "آن"}, Department: Localized{"en": "IT"}, Active: true}
	if err := db.Create(&e).Error; err != nil {
		t.Fatalf("create: %v", err)
	}
	var got Employee
	if err := db.First(&got, "id = ?", "EMP-9").Error; err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Name["fa"] != "آن" || got.Department["en"] != "IT" || !got.Active {
		t.Fatalf("unexpected employee: %+v", got)
	}
}

func TestSurveyResponse_AverageScoreAndScores(t *testing.T) {
	r := SurveyResponse{Answers: []SurveyAnswer{
		{QuestionID: "a", Score: intp(8)},
		{QuestionID: "b", TextValue: strp("hi")},
		{QuestionID: "c", Score: intp(6)},
	}}
	avg, ok := r.AverageScore()
	if !ok || avg != 7 {
		t.Fatalf("AverageScore = %v,%v; want 7,true", avg, ok)
	}
	if got := r.Scores(); len(got) != 2 {
		t.Fatalf("Scores = %v", got)
	}

	empty := SurveyResponse{}
	if _, ok := empty.AverageScore(); ok {
		t.Fatalf("expected no average for empty response")
	}
}

func TestSurveyResponse_AnswerLookup(t *testing.T) {
	r := SurveyResponse{Answers: []SurveyAnswer{{QuestionID: "a"}}}
	a := r.Answer("a")
	if a == nil {
		t.Fatalf("expected answer a")
	}
	a.Score = intp(3)
	if r.Answers[0].Score == nil || *r.Answers[0].Score != 3 {
		t.Fatalf("Answer must return a pointer into the slice")
	}
	if r.Answer("zzz") != nil {
		t.Fatalf("expected nil for unknown question")
	}
}

func TestSurveyResponse_ActivityAt(t *testing.T) {
	last := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	done := last.Add(time.Hour)

	r := SurveyResponse{LastActivityAt: last}
	if !r.ActivityAt().Equal(last) {
		t.Fatalf("want lastActivityAt when not completed")
	}
	r.CompletedAt = timep(done)
	if !r.ActivityAt().Equal(done) {
		t.Fatalf("want completedAt when set")
	}
}

func TestSurveyResponse_Remarks(t *testing.T) {
	r := SurveyResponse{
		Answers: []SurveyAnswer{
			{QuestionID: "a", Comment: strp("  friendly  ")},
			{QuestionID: "b", TextValue: strp("   ")},
			{QuestionID: "c", TextValue: strp("fast")},
		},
		FinalComment: strp("thanks"),
	}
	got := r.Remarks()
	want := []string{"friendly", "fast", "thanks"}
	if len(got) != len(want) {
		t.Fatalf("Remarks = %v; want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Remarks[%d] = %q; want %q", i, got[i], want[i])
		}
	}
}

func TestEnumsValid(t *testing.T) {
	if !QuestionRating.Valid() || QuestionType("slider").Valid() {
		t.Fatalf("QuestionType.Valid mismatch")
	}
	if !CategoryService.Valid() || QuestionCategory("misc").Valid() {
		t.Fatalf("QuestionCategory.Valid mismatch")
	}
	if !RoleSupervisor.Valid() || Role("root").Valid() {
		t.Fatalf("Role.Valid mismatch")
	}
}
