package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tbourn/go-survey-backend/internal/auth"
	"github.com/tbourn/go-survey-backend/internal/config"
)

func newAuthSvc() (*AuthService, *fakeClock) {
	clk := &fakeClock{t: time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)}
	s := NewAuthService(config.AuthConfig{
		SharedSecret:   "shared",
		GroupID:        "G-TEST",
		TokenTTL:       5 * time.Minute,
		MockSecret:     "mock",
		SupportedLangs: []string{"fa", "en", "ar"},
		DefaultLang:    "fa",
	})
	s.Now = clk.Now
	return s, clk
}

func TestIssue_LocalDefaults(t *testing.T) {
	s, _ := newAuthSvc()

	if _, err := s.Issue(context.Background(), IssueRequest{EmployeeID: "  "}); !errors.Is(err, ErrMissingEmployee) {
		t.Fatalf("want ErrMissingEmployee, got %v", err)
	}

	p, err := s.Issue(context.Background(), IssueRequest{EmployeeID: "EMP-001", Lang: "en-US"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if p.GroupID != "G-TEST" || !strings.HasPrefix(p.CustomerID, "CUST-") || len(p.CustomerID) != len("CUST-")+8 {
		t.Fatalf("defaults not applied: %+v", p)
	}
	if p.Lang != "en" {
		t.Fatalf("want lang en, got %q", p.Lang)
	}
	if p.IssuedAt != "2024-05-10T09:00:00.000Z" {
		t.Fatalf("unexpected issuedAt %q", p.IssuedAt)
	}
	if !auth.Verify(*p, "shared") {
		t.Fatalf("payload must verify with the shared secret")
	}
}

func TestRedeem(t *testing.T) {
	s, clk := newAuthSvc()
	ctx := context.Background()
	p, _ := s.Issue(ctx, IssueRequest{EmployeeID: "EMP-001", CustomerID: "C-1", Lang: "ar"})

	id, err := s.Redeem(ctx, *p)
	if err != nil {
		t.Fatalf("Redeem: %v", err)
	}
	if id.CustomerID != "C-1" || id.EmployeeID != "EMP-001" || id.Lang != "ar" {
		t.Fatalf("unexpected identity: %+v", id)
	}

	missing := *p
	missing.Signature = ""
	if _, err := s.Redeem(ctx, missing); !errors.Is(err, ErrMissingPayload) {
		t.Fatalf("want ErrMissingPayload, got %v", err)
	}

	tampered := *p
	tampered.CustomerID = "C-2"
	if _, err := s.Redeem(ctx, tampered); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("want ErrInvalidSignature, got %v", err)
	}

	flipped := *p
	b := []byte(flipped.Signature)
	if b[0] == 'a' {
		b[0] = 'b'
	} else {
		b[0] = 'a'
	}
	flipped.Signature = string(b)
	if _, err := s.Redeem(ctx, flipped); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("single-byte mutation: want ErrInvalidSignature, got %v", err)
	}

	clk.Advance(5 * time.Minute)
	if _, err := s.Redeem(ctx, *p); err != nil {
		t.Fatalf("exactly at ttl must pass, got %v", err)
	}
	clk.Advance(time.Millisecond)
	if _, err := s.Redeem(ctx, *p); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("want ErrTokenExpired, got %v", err)
	}
}

func TestRedeem_UnparsableIssuedAtIsExpired(t *testing.T) {
	s, _ := newAuthSvc()
	p := auth.Payload{GroupID: "G", CustomerID: "C", EmployeeID: "E", IssuedAt: "yesterday"}
	p.Signature = auth.Sign(p.GroupID, p.CustomerID, p.IssuedAt, "shared")
	if _, err := s.Redeem(context.Background(), p); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("want ErrTokenExpired, got %v", err)
	}
}

func TestIssue_Delegated(t *testing.T) {
	var got DelegatedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		_ = json.NewEncoder(w).Encode(DelegatedResponse{
			Status:     "ok",
			CustomerID: "UPSTREAM-C",
			IssuedAt:   "2024-05-10T09:00:00.000Z",
			Signature:  "abc",
		})
	}))
	defer srv.Close()

	s, _ := newAuthSvc()
	s.Endpoint = srv.URL
	p, err := s.Issue(context.Background(), IssueRequest{EmployeeID: "EMP-002", Lang: "fa"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if got.SharedSecret != "shared" || got.EmployeeID != "EMP-002" || got.GroupID != "G-TEST" {
		t.Fatalf("unexpected upstream request: %+v", got)
	}
	if p.CustomerID != "UPSTREAM-C" || p.GroupID != "G-TEST" || p.EmployeeID != "EMP-002" || p.Signature != "abc" {
		t.Fatalf("upstream values must be trusted with request fallbacks: %+v", p)
	}
}

func TestIssue_DelegatedFailures(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
		want    error
	}{
		{"non-2xx", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusUnauthorized) }, ErrAuthUpstreamRejected},
		{"status rejected", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"status":"rejected"}`))
		}, ErrAuthUpstreamRejected},
		{"garbage", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte(`<html>`)) }, ErrAuthUpstreamUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			defer srv.Close()
			s, _ := newAuthSvc()
			s.Endpoint = srv.URL
			if _, err := s.Issue(context.Background(), IssueRequest{EmployeeID: "EMP-001"}); !errors.Is(err, tc.want) {
				t.Fatalf("want %v, got %v", tc.want, err)
			}
		})
	}

	t.Run("unreachable", func(t *testing.T) {
		s, _ := newAuthSvc()
		s.Endpoint = "http://127.0.0.1:1/verify"
		if _, err := s.Issue(context.Background(), IssueRequest{EmployeeID: "EMP-001"}); !errors.Is(err, ErrAuthUpstreamUnavailable) {
			t.Fatalf("want ErrAuthUpstreamUnavailable, got %v", err)
		}
	})
}

func TestMockVerify(t *testing.T) {
	s, _ := newAuthSvc()

	if _, err := s.MockVerify(DelegatedRequest{GroupID: "G", CustomerID: "C"}); !errors.Is(err, ErrMissingFields) {
		t.Fatalf("want ErrMissingFields, got %v", err)
	}
	for _, secret := range []string{"nope", "moc", "mockk", "MOCK"} {
		if _, err := s.MockVerify(DelegatedRequest{GroupID: "G", CustomerID: "C", SharedSecret: secret}); !errors.Is(err, ErrAuthUpstreamRejected) {
			t.Fatalf("secret %q: want ErrAuthUpstreamRejected, got %v", secret, err)
		}
	}
	res, err := s.MockVerify(DelegatedRequest{GroupID: "G", CustomerID: "C", SharedSecret: "mock"})
	if err != nil {
		t.Fatalf("MockVerify: %v", err)
	}
	if res.Status != "ok" || res.EmployeeID != "EMP-001" {
		t.Fatalf("unexpected response: %+v", res)
	}
	p := auth.Payload{GroupID: res.GroupID, CustomerID: res.CustomerID, EmployeeID: res.EmployeeID, IssuedAt: res.IssuedAt, Signature: res.Signature}
	if _, err := s.Redeem(context.Background(), p); err != nil {
		t.Fatalf("mock payload must redeem: %v", err)
	}
}

func TestLangMatcher(t *testing.T) {
	m := NewLangMatcher([]string{"fa", "en", "ar"}, "fa")
	cases := map[string]string{
		"":      "fa",
		"en":    "en",
		"en-GB": "en",
		"fa-IR": "fa",
		"ar-EG": "ar",
		"de":    "fa",
		"!!":    "fa",
	}
	for in, want := range cases {
		if got := m.Normalize(in); got != want {
			t.Fatalf("Normalize(%q) = %q; want %q", in, got, want)
		}
	}
	if NewLangMatcher(nil, "xx").Default() != "fa" {
		t.Fatalf("empty supported set must fall back to fa")
	}
}
