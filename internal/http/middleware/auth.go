// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file authenticates portal and admin callers. A token is read from the
// portal_token cookie or an "Authorization: Bearer" header, verified, and the
// caller's identity is stored in the Gin context:
//
//   - "userID"      subject of the token
//   - "role"        domain.Role
//   - "employeeID"  bound employee, when any
//
// RequireRole gates a route group on those values.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-survey-backend/internal/domain"
	"github.com/tbourn/go-survey-backend/internal/services"
)

const (
	// PortalCookie carries the portal/admin bearer token.
	PortalCookie = "portal_token"

	ctxKeyUserID     = "userID"
	ctxKeyRole       = "role"
	ctxKeyEmployeeID = "employeeID"
)

// TokenVerifier resolves a bearer token to a caller.
type TokenVerifier interface {
	Authenticate(token string) (*services.Principal, error)
}

// Authenticate verifies the caller's token when one is presented. Requests
// without a token pass through anonymously; an invalid token is rejected
// with 401.
func Authenticate(v TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok := bearerToken(c)
		if tok == "" {
			c.Next()
			return
		}
		p, err := v.Authenticate(tok)
		if err != nil {
			abortJSON(c, http.StatusUnauthorized, "unauthorized", "invalid or expired token")
			return
		}
		c.Set(ctxKeyUserID, p.UserID)
		c.Set(ctxKeyRole, p.Role)
		c.Set(ctxKeyEmployeeID, p.EmployeeID)
		c.Next()
	}
}

// RequireRole rejects anonymous callers with 401 and callers holding none of
// roles with 403.
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		if !ok {
			abortJSON(c, http.StatusUnauthorized, "unauthorized", "sign-in required")
			return
		}
		if _, ok := allowed[p.Role]; !ok {
			abortJSON(c, http.StatusForbidden, "forbidden", "insufficient role")
			return
		}
		c.Next()
	}
}

// PrincipalFrom returns the authenticated caller, if any.
func PrincipalFrom(c *gin.Context) (services.Principal, bool) {
	uid := c.GetString(ctxKeyUserID)
	if uid == "" {
		return services.Principal{}, false
	}
	role, _ := c.Get(ctxKeyRole)
	r, _ := role.(domain.Role)
	return services.Principal{
		UserID:     uid,
		Role:       r,
		EmployeeID: c.GetString(ctxKeyEmployeeID),
	}, true
}

func bearerToken(c *gin.Context) string {
	if h := strings.TrimSpace(c.GetHeader("Authorization")); h != "" {
		if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
			return strings.TrimSpace(h[7:])
		}
	}
	if ck, err := c.Cookie(PortalCookie); err == nil {
		return ck
	}
	return ""
}

// abortJSON writes the standard error envelope. It mirrors handlers.Fail,
// which middleware cannot import.
func abortJSON(c *gin.Context, status int, code, msg string) {
	c.Set(ErrorCodeKey, code)
	c.AbortWithStatusJSON(status, gin.H{
		"request_id": c.Writer.Header().Get(requestIDHeader),
		"code":       code,
		"message":    msg,
	})
}
