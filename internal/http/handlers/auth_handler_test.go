package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/tbourn/go-survey-backend/internal/auth"
	"github.com/tbourn/go-survey-backend/internal/services"
)

func TestRequestAuth_IssuesVerifiablePayload(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/auth/request", AuthRequest{EmployeeID: "EMP-001", Lang: "en"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
	p := decode[AuthPayloadResponse](t, w).Payload
	if p.EmployeeID != "EMP-001" || p.CustomerID == "" || p.GroupID != "G-DEFAULT" {
		t.Fatalf("unexpected payload: %+v", p)
	}
	if !auth.Verify(p, testSecret) {
		t.Fatalf("issued payload does not verify")
	}

	// The issued payload is directly redeemable.
	w = app.do(t, http.MethodPost, "/auth/verify", VerifyRequest{Payload: &p})
	if w.Code != http.StatusOK {
		t.Fatalf("verify issued payload: %d %s", w.Code, w.Body.String())
	}
}

func TestRequestAuth_Errors(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/auth/request", AuthRequest{})
	if w.Code != http.StatusBadRequest || errCode(t, w) != ErrCodeMissingEmployee {
		t.Fatalf("missing employee: %d %s", w.Code, w.Body.String())
	}

	w = app.do(t, http.MethodPost, "/auth/request", "{not json")
	if w.Code != http.StatusBadRequest || errCode(t, w) != ErrCodeBadRequest {
		t.Fatalf("bad json: %d %s", w.Code, w.Body.String())
	}
}

func TestVerifyAuth_SetsCookiesAndClearsLoggedOut(t *testing.T) {
	app := newTestApp(t)

	p := signedPayload("CUST-1", "EMP-001")
	w := app.do(t, http.MethodPost, "/auth/verify", VerifyRequest{Payload: &p},
		&http.Cookie{Name: CookieLoggedOut, Value: "1"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
	body := decode[VerifyResponse](t, w)
	if body.SessionID == "" || body.ResponseID == "" {
		t.Fatalf("missing ids: %+v", body)
	}

	sess := findCookie(w, CookieSession)
	if sess == nil || sess.Value != body.SessionID || !sess.HttpOnly || sess.SameSite != http.SameSiteLaxMode {
		t.Fatalf("session cookie = %+v", sess)
	}
	if sess.MaxAge != 0 {
		t.Fatalf("session cookie should be a browser-session cookie, MaxAge=%d", sess.MaxAge)
	}
	snap := findCookie(w, "survey_response")
	if snap == nil || snap.Value == "" || snap.MaxAge != int((12*time.Hour).Seconds()) {
		t.Fatalf("snapshot cookie = %+v", snap)
	}
	if lo := findCookie(w, CookieLoggedOut); lo == nil || lo.MaxAge >= 0 {
		t.Fatalf("logged_out cookie should be cleared, got %+v", lo)
	}
}

func TestVerifyAuth_ReusesOpenResponseWithNewSession(t *testing.T) {
	app := newTestApp(t)

	p := signedPayload("CUST-2", "EMP-002")
	first := decode[VerifyResponse](t, app.do(t, http.MethodPost, "/auth/verify", VerifyRequest{Payload: &p}))
	p2 := signedPayload("CUST-2", "EMP-002")
	second := decode[VerifyResponse](t, app.do(t, http.MethodPost, "/auth/verify", VerifyRequest{Payload: &p2}))

	if first.ResponseID != second.ResponseID {
		t.Fatalf("open response not reused: %s vs %s", first.ResponseID, second.ResponseID)
	}
	if first.SessionID == second.SessionID {
		t.Fatalf("expected a fresh session")
	}
}

func TestVerifyAuth_Rejections(t *testing.T) {
	app := newTestApp(t)

	stale := signedPayload("CUST-3", "EMP-001")
	stale.IssuedAt = auth.FormatIssuedAt(time.Now().Add(-time.Hour))
	stale.Signature = auth.Sign(stale.GroupID, stale.CustomerID, stale.IssuedAt, testSecret)

	forged := signedPayload("CUST-3", "EMP-001")
	forged.Signature = auth.Sign(forged.GroupID, forged.CustomerID, forged.IssuedAt, "wrong-secret")

	incomplete := signedPayload("CUST-3", "EMP-001")
	incomplete.Signature = ""

	tests := []struct {
		name   string
		body   any
		status int
		code   string
	}{
		{"no payload", map[string]any{}, http.StatusBadRequest, ErrCodeMissingPayload},
		{"bad json", "{", http.StatusBadRequest, ErrCodeMissingPayload},
		{"incomplete", VerifyRequest{Payload: &incomplete}, http.StatusBadRequest, ErrCodeMissingPayload},
		{"forged", VerifyRequest{Payload: &forged}, http.StatusUnauthorized, ErrCodeAuthFailed},
		{"expired", VerifyRequest{Payload: &stale}, http.StatusUnauthorized, ErrCodeAuthFailed},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := app.do(t, http.MethodPost, "/auth/verify", tc.body)
			if w.Code != tc.status {
				t.Fatalf("status = %d, want %d (body=%s)", w.Code, tc.status, w.Body.String())
			}
			er := decode[ErrorResponse](t, w)
			if er.Code != tc.code {
				t.Fatalf("code = %q, want %q", er.Code, tc.code)
			}
			if tc.status == http.StatusUnauthorized && er.Message != authFailedMsg {
				t.Fatalf("auth failures must not reveal the cause, got %q", er.Message)
			}
			if findCookie(w, CookieSession) != nil {
				t.Fatalf("no session cookie expected on failure")
			}
		})
	}
}

func TestVerifyAuth_DailyLimitHasItsOwnCode(t *testing.T) {
	app := newTestApp(t)

	cookies := app.startSurvey(t, "CUST-4", "EMP-003")
	if w := app.do(t, http.MethodPost, "/survey/finish", nil, cookies...); w.Code != http.StatusOK {
		t.Fatalf("finish: %d %s", w.Code, w.Body.String())
	}

	p := signedPayload("CUST-4", "EMP-003")
	w := app.do(t, http.MethodPost, "/auth/verify", VerifyRequest{Payload: &p})
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
	er := decode[ErrorResponse](t, w)
	if er.Code != ErrCodeDailyLimit || er.Message != "daily survey limit reached" {
		t.Fatalf("unexpected envelope %+v", er)
	}

	// A different employee for the same customer is unaffected.
	other := signedPayload("CUST-4", "EMP-004")
	if w := app.do(t, http.MethodPost, "/auth/verify", VerifyRequest{Payload: &other}); w.Code != http.StatusOK {
		t.Fatalf("other employee: %d %s", w.Code, w.Body.String())
	}
}

func TestMockVerify(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name    string
		body    any
		status  int
		message string
	}{
		{"ok", services.DelegatedRequest{GroupID: "G-1", CustomerID: "CUST-9", SharedSecret: "MOCK_SHARED_SECRET"}, http.StatusOK, ""},
		{"missing fields", services.DelegatedRequest{GroupID: "G-1", CustomerID: "CUST-9"}, http.StatusBadRequest, "missing_fields"},
		{"wrong secret", services.DelegatedRequest{GroupID: "G-1", CustomerID: "CUST-9", SharedSecret: "nope"}, http.StatusUnauthorized, "invalid_credentials"},
		{"bad json", "{", http.StatusBadRequest, "invalid_json"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := app.do(t, http.MethodPost, "/auth/mock/verify", tc.body)
			if w.Code != tc.status {
				t.Fatalf("status = %d, want %d (body=%s)", w.Code, tc.status, w.Body.String())
			}
			got := decode[services.DelegatedResponse](t, w)
			if tc.message != "" && got.Message != tc.message {
				t.Fatalf("message = %q, want %q", got.Message, tc.message)
			}
			if tc.status == http.StatusOK && got.EmployeeID == "" {
				t.Fatalf("expected an employee id: %+v", got)
			}
		})
	}
}
