// Package services – PortalService
//
// PortalService signs admins and portal users in and issues the bearer
// tokens that the HTTP middleware later verifies.
package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/tbourn/go-survey-backend/internal/auth"
	"github.com/tbourn/go-survey-backend/internal/config"
	"github.com/tbourn/go-survey-backend/internal/domain"
	"github.com/tbourn/go-survey-backend/internal/repo"
)

// Principal identifies the caller of a portal or admin request.
type Principal struct {
	UserID     string      `json:"id"`
	Role       domain.Role `json:"role"`
	EmployeeID string      `json:"employee_id,omitempty"`
	Name       string      `json:"name,omitempty"`
}

// Login is a successful sign-in.
type Login struct {
	Token     string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	Principal Principal `json:"user"`
}

// PortalService authenticates admins and portal users.
type PortalService struct {
	DB     *gorm.DB
	Tokens *auth.TokenIssuer

	adminUser string
	adminHash []byte
	now       func() time.Time
}

// NewPortalService hashes the configured admin password once.
func NewPortalService(db *gorm.DB, cfg config.PortalConfig) (*PortalService, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("portal: hash admin password: %w", err)
	}
	return &PortalService{
		DB:        db,
		Tokens:    auth.NewTokenIssuer(cfg.JWTSecret, cfg.SessionTTL),
		adminUser: cfg.AdminUsername,
		adminHash: hash,
		now:       time.Now,
	}, nil
}

// AdminLogin checks the admin credentials.
func (s *PortalService) AdminLogin(username, password string) (*Login, error) {
	userOK := subtle.ConstantTimeCompare([]byte(strings.TrimSpace(username)), []byte(s.adminUser)) == 1
	passErr := bcrypt.CompareHashAndPassword(s.adminHash, []byte(password))
	if !userOK || passErr != nil {
		return nil, ErrBadCredentials
	}
	return s.issue(Principal{UserID: s.adminUser, Role: domain.RoleAdmin, Name: s.adminUser})
}

// PortalLogin signs in a supervisor or employee user by id. Admin accounts
// must use AdminLogin.
func (s *PortalService) PortalLogin(ctx context.Context, userID string) (*Login, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrMissingFields
	}
	u, err := repo.GetUser(ctx, s.DB, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrBadCredentials
	}
	if err != nil {
		return nil, err
	}
	if u.Role == domain.RoleAdmin {
		return nil, ErrBadCredentials
	}
	p := Principal{UserID: u.ID, Role: u.Role, Name: u.Name}
	if u.EmployeeID != nil {
		p.EmployeeID = *u.EmployeeID
	}
	if u.Role == domain.RoleEmployee && p.EmployeeID == "" {
		return nil, ErrInvalidField
	}
	return s.issue(p)
}

// Authenticate verifies a bearer token.
func (s *PortalService) Authenticate(token string) (*Principal, error) {
	c, err := s.Tokens.Parse(token)
	if err != nil {
		return nil, err
	}
	return &Principal{UserID: c.Subject, Role: c.Role, EmployeeID: c.EmployeeID}, nil
}

// Me returns the caller, filled in from the user table when a record exists.
func (s *PortalService) Me(ctx context.Context, p Principal) (*Principal, error) {
	out := p
	u, err := repo.GetUser(ctx, s.DB, p.UserID)
	switch {
	case err == nil:
		out.Name = u.Name
	case errors.Is(err, repo.ErrNotFound):
		if out.Name == "" {
			out.Name = p.UserID
		}
	default:
		return nil, err
	}
	return &out, nil
}

func (s *PortalService) issue(p Principal) (*Login, error) {
	tok, err := s.Tokens.Issue(p.UserID, p.Role, p.EmployeeID)
	if err != nil {
		return nil, err
	}
	return &Login{Token: tok, ExpiresAt: s.now().Add(s.Tokens.TTL()), Principal: p}, nil
}
