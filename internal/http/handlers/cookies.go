package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-survey-backend/internal/http/middleware"
	"github.com/tbourn/go-survey-backend/internal/services"
	"github.com/tbourn/go-survey-backend/internal/snapshot"
)

// Cookie names shared with the survey front end.
const (
	CookieSession        = middleware.SessionCookie
	CookieSnapshot       = snapshot.CookieName
	CookieLoggedOut      = "survey_logged_out"
	CookieThankYouClosed = "survey_thank_you_closed"
	CookiePortal         = middleware.PortalCookie
)

const (
	snapshotMaxAge = snapshot.MaxAge
	logoutMaxAge   = 12 * time.Hour
)

// setCookie writes an HttpOnly cookie at path "/". maxAge 0 means a browser
// session cookie; a negative maxAge deletes the cookie.
func (h *Handlers) setCookie(c *gin.Context, name, value string, maxAge time.Duration, same http.SameSite) {
	ck := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: same,
	}
	switch {
	case maxAge < 0:
		ck.MaxAge = -1
	case maxAge > 0:
		ck.MaxAge = int(maxAge.Seconds())
	}
	http.SetCookie(c.Writer, ck)
}

func (h *Handlers) clearCookie(c *gin.Context, name string, same http.SameSite) {
	h.setCookie(c, name, "", -1, same)
}

// writeMutation persists the snapshot on the client, and the session id
// when it differs from the one presented (new or rebuilt sessions).
func (h *Handlers) writeMutation(c *gin.Context, m *services.Mutation, presented string) {
	if m.Session != nil && m.Session.ID != presented {
		h.setCookie(c, CookieSession, m.Session.ID, 0, http.SameSiteLaxMode)
	}
	if m.Snapshot != "" {
		h.setCookie(c, CookieSnapshot, m.Snapshot, snapshotMaxAge, http.SameSiteLaxMode)
	}
}

// sessionRef reads the session id and snapshot cookies.
func sessionRef(c *gin.Context) services.SessionRef {
	var ref services.SessionRef
	if v, err := c.Cookie(CookieSession); err == nil {
		ref.SessionID = v
	}
	if v, err := c.Cookie(CookieSnapshot); err == nil {
		ref.Snapshot = v
	}
	return ref
}
