// Package auth holds the two credential formats the service understands: the
// HMAC-signed hand-off payload that admits a customer to a survey, and the
// HS256 portal tokens that admins and supervisors sign in with.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"time"
)

// IssuedAtLayout is the wire format of Payload.IssuedAt (UTC, millisecond
// precision). The signature covers the string exactly as transmitted.
const IssuedAtLayout = "2006-01-02T15:04:05.000Z07:00"

// Payload is the signed hand-off issued to a customer and later redeemed for
// a survey session.
type Payload struct {
	GroupID    string `json:"group_id"`
	CustomerID string `json:"customer_id"`
	EmployeeID string `json:"employee_id"`
	IssuedAt   string `json:"issued_at"`
	Signature  string `json:"signature"`
	Lang       string `json:"lang,omitempty"`
}

// Complete reports whether every signed field and the signature are present.
func (p Payload) Complete() bool {
	return p.GroupID != "" && p.CustomerID != "" && p.EmployeeID != "" &&
		p.IssuedAt != "" && p.Signature != ""
}

// Sign returns the lowercase hex HMAC-SHA256 of "group.customer.issuedAt"
// keyed by secret.
func Sign(groupID, customerID, issuedAt, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(groupID + "." + customerID + "." + issuedAt))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify recomputes the payload signature and compares it in constant time.
// Mismatched lengths fail before the byte comparison.
func Verify(p Payload, secret string) bool {
	want := Sign(p.GroupID, p.CustomerID, p.IssuedAt, secret)
	if len(want) != len(p.Signature) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(want), []byte(p.Signature)) == 1
}

// SecretEqual compares two shared secrets in constant time.
func SecretEqual(got, want string) bool {
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

// FormatIssuedAt renders t in IssuedAtLayout.
func FormatIssuedAt(t time.Time) string {
	return t.UTC().Format(IssuedAtLayout)
}

// ParseIssuedAt accepts IssuedAtLayout and any other RFC 3339 timestamp.
func ParseIssuedAt(s string) (time.Time, error) {
	if t, err := time.Parse(IssuedAtLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}
