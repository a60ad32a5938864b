package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tbourn/go-survey-backend/internal/auth"
	"github.com/tbourn/go-survey-backend/internal/cache"
	"github.com/tbourn/go-survey-backend/internal/config"
	"github.com/tbourn/go-survey-backend/internal/domain"
	"github.com/tbourn/go-survey-backend/internal/events"
	"github.com/tbourn/go-survey-backend/internal/http/middleware"
	"github.com/tbourn/go-survey-backend/internal/repo"
	"github.com/tbourn/go-survey-backend/internal/services"
)

const testSecret = "handler-test-secret"

// testApp is a router over real services backed by a private in-memory DB.
type testApp struct {
	r      *gin.Engine
	db     *gorm.DB
	survey *services.SurveyService
	portal *services.PortalService
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	return newTestAppWithReportTTL(t, 0)
}

// newTestAppWithReportTTL is newTestApp with the report cache enabled for ttl.
func newTestAppWithReportTTL(t *testing.T, reportTTL time.Duration) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := repo.OpenMemory("handlers")
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

	authSvc := services.NewAuthService(config.AuthConfig{
		SharedSecret:   testSecret,
		GroupID:        "G-DEFAULT",
		TokenTTL:       5 * time.Minute,
		MockSecret:     "MOCK_SHARED_SECRET",
		SupportedLangs: []string{"fa", "en", "ar"},
		DefaultLang:    "fa",
	})
	surveySvc := services.NewSurveyService(db, events.Nop{})
	portalSvc, err := services.NewPortalService(db, config.PortalConfig{
		AdminUsername: "admin",
		AdminPassword: "admin123",
		JWTSecret:     "jwt-test-secret",
		SessionTTL:    time.Hour,
	})
	if err != nil {
		t.Fatalf("portal service: %v", err)
	}

	h := New(Services{
		Auth:    authSvc,
		Survey:  surveySvc,
		Reports: services.NewReportService(db, cache.NewMemory(), reportTTL),
		Catalog: services.NewCatalogService(db),
		Portal:  portalSvc,
	}, CookieOptions{PortalTTL: time.Hour})

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Authenticate(portalSvc))

	r.POST("/auth/request", h.RequestAuth)
	r.POST("/auth/verify", h.VerifyAuth)
	r.POST("/auth/mock/verify", h.MockVerify)

	r.GET("/survey/session", h.GetSession)
	r.POST("/survey/answer", h.RecordAnswer)
	r.POST("/survey/progress", h.RecordProgress)
	r.POST("/survey/finish", h.FinishSurvey)
	r.POST("/survey/abandon", h.AbandonSurvey)
	r.POST("/survey/logout", h.LogoutSurvey)
	r.GET("/survey/employees", h.ListActiveEmployees)
	r.GET("/survey/questions", h.ListActiveQuestions)

	r.GET("/reports/employee", h.EmployeeReport)
	r.GET("/reports/supervisor", middleware.RequireRole(domain.RoleAdmin, domain.RoleSupervisor), h.SupervisorReport)
	r.GET("/reports/manager", middleware.RequireRole(domain.RoleAdmin), h.ManagerReport)

	r.POST("/admin/login", h.AdminLogin)
	r.POST("/admin/logout", h.AdminLogout)
	admin := r.Group("/admin", middleware.RequireRole(domain.RoleAdmin))
	admin.GET("/employees", h.ListEmployees)
	admin.POST("/employees", h.CreateEmployee)
	admin.PATCH("/employees/:id", h.UpdateEmployee)
	admin.GET("/questions", h.ListQuestions)
	admin.POST("/questions", h.CreateQuestion)
	admin.PATCH("/questions/:id", h.UpdateQuestion)
	admin.GET("/users", h.ListUsers)
	admin.POST("/users", h.CreateUser)
	admin.PATCH("/users/:id", h.UpdateUser)

	r.POST("/portal/login", h.PortalLogin)
	r.POST("/portal/logout", h.PortalLogout)
	r.GET("/portal/me", h.PortalMe)
	r.GET("/portal/users", h.PortalUsers)

	return &testApp{r: r, db: db, survey: surveySvc, portal: portalSvc}
}

// do sends a request with an optional JSON body and cookies.
func (a *testApp) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, req)
	return w
}

// bearer sends a request authenticated with token.
func (a *testApp) bearer(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, req)
	return w
}

// signedPayload builds a fresh payload for the pair.
func signedPayload(customerID, employeeID string) auth.Payload {
	issuedAt := auth.FormatIssuedAt(time.Now())
	return auth.Payload{
		GroupID:    "G-DEFAULT",
		CustomerID: customerID,
		EmployeeID: employeeID,
		IssuedAt:   issuedAt,
		Signature:  auth.Sign("G-DEFAULT", customerID, issuedAt, testSecret),
	}
}

// startSurvey redeems a payload and returns the survey cookies.
func (a *testApp) startSurvey(t *testing.T, customerID, employeeID string) []*http.Cookie {
	t.Helper()
	w := a.do(t, http.MethodPost, "/auth/verify", VerifyRequest{Payload: ptrPayload(signedPayload(customerID, employeeID))})
	if w.Code != http.StatusOK {
		t.Fatalf("verify: %d %s", w.Code, w.Body.String())
	}
	return surveyCookies(w)
}

func ptrPayload(p auth.Payload) *auth.Payload { return &p }

// surveyCookies keeps the live session and snapshot cookies from a response.
func surveyCookies(w *httptest.ResponseRecorder) []*http.Cookie {
	var out []*http.Cookie
	for _, c := range w.Result().Cookies() {
		if (c.Name == CookieSession || c.Name == CookieSnapshot) && c.MaxAge >= 0 {
			out = append(out, c)
		}
	}
	return out
}

func findCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// merge replaces cookies in base with same-named ones from updates.
func merge(base []*http.Cookie, updates []*http.Cookie) []*http.Cookie {
	byName := map[string]*http.Cookie{}
	var order []string
	for _, c := range append(append([]*http.Cookie{}, base...), updates...) {
		if _, seen := byName[c.Name]; !seen {
			order = append(order, c.Name)
		}
		byName[c.Name] = c
	}
	out := make([]*http.Cookie, 0, len(order))
	for _, n := range order {
		out = append(out, byName[n])
	}
	return out
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %T: %v (body=%s)", v, err, w.Body.String())
	}
	return v
}

func errCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[ErrorResponse](t, w).Code
}

func intp(v int) *int { return &v }

func strp(s string) *string { return &s }
