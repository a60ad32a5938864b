// Package snapshot encodes a full survey response into an opaque,
// client-held token and back. The token lets a client carry the authoritative
// copy of its own in-flight response so the server can recreate records lost
// by ephemeral storage. It is reversible and carries no secret.
package snapshot

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"

	"github.com/tbourn/go-survey-backend/internal/domain"
)

// CookieName is the cookie the HTTP layer stores the token in.
const CookieName = "survey_response"

// MaxAge is the cookie lifetime.
const MaxAge = 12 * time.Hour

// Encode serializes r as unpadded base64url JSON.
func Encode(r *domain.SurveyResponse) (string, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// Decode parses a token produced by Encode. It returns nil for any malformed
// input, including tokens that decode but lack the response identity.
func Decode(token string) *domain.SurveyResponse {
	token = strings.TrimRight(strings.TrimSpace(token), "=")
	if token == "" {
		return nil
	}
	b, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil
	}
	var r domain.SurveyResponse
	if err := json.Unmarshal(b, &r); err != nil {
		return nil
	}
	if r.ID == "" || r.CustomerID == "" || r.EmployeeID == "" || r.EditToken == "" {
		return nil
	}
	switch r.Status {
	case domain.StatusInProgress, domain.StatusCompleted, domain.StatusIncomplete:
	default:
		return nil
	}
	if r.Answers == nil {
		r.Answers = []domain.SurveyAnswer{}
	}
	return &r
}
