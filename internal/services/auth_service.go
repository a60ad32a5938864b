// Package services – AuthService
//
// AuthService issues and redeems the signed hand-off payload that admits a
// customer to a survey. Payloads are either signed locally with the shared
// secret or obtained from a delegated authentication endpoint.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/go-survey-backend/internal/auth"
	"github.com/tbourn/go-survey-backend/internal/config"
)

// IssueRequest asks for a signed payload for one employee.
type IssueRequest struct {
	EmployeeID string
	Lang       string
	GroupID    string
	CustomerID string
}

// Identity is the verified content of a redeemed payload.
type Identity struct {
	GroupID    string
	CustomerID string
	EmployeeID string
	Lang       string
}

// DelegatedRequest is the body exchanged with a delegated authentication
// endpoint.
type DelegatedRequest struct {
	GroupID      string `json:"group_id"`
	CustomerID   string `json:"customer_id"`
	SharedSecret string `json:"shared_secret"`
	EmployeeID   string `json:"employee_id"`
}

// DelegatedResponse is the delegated endpoint's answer. Status is "ok" on
// success; an empty status is treated as success.
type DelegatedResponse struct {
	Status     string `json:"status,omitempty"`
	Message    string `json:"message,omitempty"`
	GroupID    string `json:"group_id,omitempty"`
	CustomerID string `json:"customer_id,omitempty"`
	EmployeeID string `json:"employee_id,omitempty"`
	IssuedAt   string `json:"issued_at,omitempty"`
	Signature  string `json:"signature,omitempty"`
}

// AuthService signs, fetches and verifies hand-off payloads.
type AuthService struct {
	Secret   string
	GroupID  string
	Endpoint string
	TokenTTL time.Duration

	MockSecret string

	Client *http.Client
	Langs  *LangMatcher
	Now    func() time.Time
}

// NewAuthService builds an AuthService from configuration.
func NewAuthService(cfg config.AuthConfig) *AuthService {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &AuthService{
		Secret:     cfg.SharedSecret,
		GroupID:    cfg.GroupID,
		Endpoint:   cfg.Endpoint,
		TokenTTL:   cfg.TokenTTL,
		MockSecret: cfg.MockSecret,
		Client:     &http.Client{Timeout: timeout},
		Langs:      NewLangMatcher(cfg.SupportedLangs, cfg.DefaultLang),
		Now:        time.Now,
	}
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *AuthService) lang(l string) string {
	if strings.TrimSpace(l) == "" {
		return ""
	}
	if s.Langs == nil {
		return l
	}
	return s.Langs.Normalize(l)
}

// Issue produces a signed payload for req.EmployeeID. Missing group and
// customer ids are defaulted.
func (s *AuthService) Issue(ctx context.Context, req IssueRequest) (*auth.Payload, error) {
	tr := otel.Tracer("services/AuthService")
	ctx, span := tr.Start(ctx, "Issue",
		trace.WithAttributes(attribute.String("employee.id", req.EmployeeID)),
	)
	defer span.End()

	employeeID := strings.TrimSpace(req.EmployeeID)
	if employeeID == "" {
		return nil, ErrMissingEmployee
	}
	groupID := strings.TrimSpace(req.GroupID)
	if groupID == "" {
		groupID = s.GroupID
	}
	if groupID == "" {
		groupID = "G-DEFAULT"
	}
	customerID := strings.TrimSpace(req.CustomerID)
	if customerID == "" {
		customerID = "CUST-" + uuid.NewString()[:8]
	}
	lang := s.lang(req.Lang)

	if s.Endpoint != "" {
		span.SetAttributes(attribute.Bool("auth.delegated", true))
		p, err := s.delegate(ctx, DelegatedRequest{
			GroupID:      groupID,
			CustomerID:   customerID,
			SharedSecret: s.Secret,
			EmployeeID:   employeeID,
		})
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		p.Lang = lang
		return p, nil
	}

	issuedAt := auth.FormatIssuedAt(s.now())
	return &auth.Payload{
		GroupID:    groupID,
		CustomerID: customerID,
		EmployeeID: employeeID,
		IssuedAt:   issuedAt,
		Signature:  auth.Sign(groupID, customerID, issuedAt, s.Secret),
		Lang:       lang,
	}, nil
}

// delegate calls the delegated endpoint once. No retries.
func (s *AuthService) delegate(ctx context.Context, in DelegatedRequest) (*auth.Payload, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthUpstreamUnavailable, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthUpstreamUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	res, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthUpstreamUnavailable, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, 1<<16))
		return nil, fmt.Errorf("%w: status %d", ErrAuthUpstreamRejected, res.StatusCode)
	}

	var out DelegatedResponse
	if err := json.NewDecoder(io.LimitReader(res.Body, 1<<20)).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrAuthUpstreamUnavailable, err)
	}
	if out.Status != "" && out.Status != "ok" {
		return nil, fmt.Errorf("%w: status %q", ErrAuthUpstreamRejected, out.Status)
	}

	return &auth.Payload{
		GroupID:    firstNonEmpty(out.GroupID, in.GroupID),
		CustomerID: firstNonEmpty(out.CustomerID, in.CustomerID),
		EmployeeID: firstNonEmpty(out.EmployeeID, in.EmployeeID),
		IssuedAt:   out.IssuedAt,
		Signature:  out.Signature,
	}, nil
}

// Redeem verifies p and returns the identity it carries.
func (s *AuthService) Redeem(ctx context.Context, p auth.Payload) (*Identity, error) {
	tr := otel.Tracer("services/AuthService")
	_, span := tr.Start(ctx, "Redeem",
		trace.WithAttributes(
			attribute.String("employee.id", p.EmployeeID),
			attribute.String("group.id", p.GroupID),
		),
	)
	defer span.End()

	id, err := s.redeem(p)
	switch {
	case err == nil:
		authOutcomes.WithLabelValues("ok").Inc()
	case errors.Is(err, ErrMissingPayload):
		authOutcomes.WithLabelValues("missing_payload").Inc()
	case errors.Is(err, ErrInvalidSignature):
		authOutcomes.WithLabelValues("invalid_signature").Inc()
	case errors.Is(err, ErrTokenExpired):
		authOutcomes.WithLabelValues("expired").Inc()
	}
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
	}
	return id, err
}

func (s *AuthService) redeem(p auth.Payload) (*Identity, error) {
	if !p.Complete() {
		return nil, ErrMissingPayload
	}
	if !auth.Verify(p, s.Secret) {
		return nil, ErrInvalidSignature
	}
	issued, err := auth.ParseIssuedAt(p.IssuedAt)
	if err != nil {
		return nil, ErrTokenExpired
	}
	ttl := s.TokenTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if s.now().Sub(issued) > ttl {
		return nil, ErrTokenExpired
	}
	return &Identity{
		GroupID:    p.GroupID,
		CustomerID: p.CustomerID,
		EmployeeID: p.EmployeeID,
		Lang:       s.lang(p.Lang),
	}, nil
}

// MockVerify answers like a delegated authentication endpoint. It is meant
// for development and is only mounted when explicitly enabled. A missing
// field yields ErrMissingFields; a wrong secret ErrAuthUpstreamRejected.
func (s *AuthService) MockVerify(req DelegatedRequest) (*DelegatedResponse, error) {
	if req.GroupID == "" || req.CustomerID == "" || req.SharedSecret == "" {
		return nil, ErrMissingFields
	}
	if !auth.SecretEqual(req.SharedSecret, s.MockSecret) {
		return nil, ErrAuthUpstreamRejected
	}
	employeeID := req.EmployeeID
	if employeeID == "" {
		employeeID = "EMP-001"
	}
	issuedAt := auth.FormatIssuedAt(s.now())
	return &DelegatedResponse{
		Status:     "ok",
		GroupID:    req.GroupID,
		CustomerID: req.CustomerID,
		EmployeeID: employeeID,
		IssuedAt:   issuedAt,
		Signature:  auth.Sign(req.GroupID, req.CustomerID, issuedAt, s.Secret),
	}, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
