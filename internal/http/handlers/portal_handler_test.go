package handlers

import (
	"net/http"
	"testing"

	"github.com/tbourn/go-survey-backend/internal/domain"
	"github.com/tbourn/go-survey-backend/internal/services"
)

func TestAdminLogin(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/admin/login", AdminLoginRequest{Username: "admin", Password: "admin123"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
	body := decode[LoginResponse](t, w)
	if !body.OK || body.Token == "" || body.User.Role != domain.RoleAdmin || body.User.UserID != "admin" {
		t.Fatalf("unexpected login body: %+v", body)
	}
	ck := findCookie(w, CookiePortal)
	if ck == nil || ck.Value != body.Token || !ck.HttpOnly || ck.SameSite != http.SameSiteStrictMode || ck.MaxAge != 3600 {
		t.Fatalf("portal cookie = %+v", ck)
	}

	tests := []struct {
		name   string
		body   any
		status int
		code   string
	}{
		{"wrong password", AdminLoginRequest{Username: "admin", Password: "nope"}, http.StatusUnauthorized, ErrCodeBadCredentials},
		{"wrong user", AdminLoginRequest{Username: "root", Password: "admin123"}, http.StatusUnauthorized, ErrCodeBadCredentials},
		{"missing password", map[string]string{"username": "admin"}, http.StatusBadRequest, ErrCodeMissingFields},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := app.do(t, http.MethodPost, "/admin/login", tc.body)
			if w.Code != tc.status || errCode(t, w) != tc.code {
				t.Fatalf("got %d %s, want %d %s", w.Code, w.Body.String(), tc.status, tc.code)
			}
			if findCookie(w, CookiePortal) != nil {
				t.Fatalf("failed login must not set a cookie")
			}
		})
	}
}

func TestPortalLogin_MeAndLogout(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/portal/login", PortalLoginRequest{UserID: "SUP-002"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
	ck := findCookie(w, CookiePortal)
	if ck == nil {
		t.Fatalf("missing portal cookie")
	}

	// The cookie alone authenticates.
	w = app.do(t, http.MethodGet, "/portal/me", nil, ck)
	if w.Code != http.StatusOK {
		t.Fatalf("me: %d %s", w.Code, w.Body.String())
	}
	me := decode[services.Principal](t, w)
	if me.UserID != "SUP-002" || me.Role != domain.RoleSupervisor || me.Name != "Supervisor 2" {
		t.Fatalf("me = %+v", me)
	}

	w = app.do(t, http.MethodPost, "/portal/logout", nil, ck)
	if w.Code != http.StatusOK {
		t.Fatalf("logout: %d", w.Code)
	}
	if cleared := findCookie(w, CookiePortal); cleared == nil || cleared.MaxAge >= 0 {
		t.Fatalf("portal cookie should be cleared, got %+v", cleared)
	}

	if w := app.do(t, http.MethodGet, "/portal/me", nil); w.Code != http.StatusUnauthorized || errCode(t, w) != ErrCodeUnauthorized {
		t.Fatalf("anonymous me: %d %s", w.Code, w.Body.String())
	}
}

func TestPortalLogin_Rejections(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name   string
		body   any
		status int
		code   string
	}{
		{"unknown user", PortalLoginRequest{UserID: "SUP-404"}, http.StatusUnauthorized, ErrCodeBadCredentials},
		{"admin account", PortalLoginRequest{UserID: "ADMIN-001"}, http.StatusUnauthorized, ErrCodeBadCredentials},
		{"missing id", map[string]string{}, http.StatusBadRequest, ErrCodeMissingFields},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := app.do(t, http.MethodPost, "/portal/login", tc.body)
			if w.Code != tc.status || errCode(t, w) != tc.code {
				t.Fatalf("got %d %s, want %d %s", w.Code, w.Body.String(), tc.status, tc.code)
			}
		})
	}
}

func TestPortalUsers_ExcludesAdmins(t *testing.T) {
	app := newTestApp(t)

	users := decode[UsersResponse](t, app.do(t, http.MethodGet, "/portal/users", nil)).Users
	if len(users) != 2 {
		t.Fatalf("users = %+v", users)
	}
	for _, u := range users {
		if u.Role == domain.RoleAdmin {
			t.Fatalf("admin listed: %s", u.ID)
		}
	}
}
