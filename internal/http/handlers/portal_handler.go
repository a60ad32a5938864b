// Portal and admin sign-in handlers.
//
//   - POST /admin/login, /admin/logout
//   - POST /portal/login, /portal/logout
//   - GET  /portal/me, /portal/users
//
// A successful login sets the portal_token cookie (HttpOnly, SameSite=Strict)
// and also returns the token for clients that prefer a Bearer header.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-survey-backend/internal/domain"
	"github.com/tbourn/go-survey-backend/internal/http/middleware"
	"github.com/tbourn/go-survey-backend/internal/services"
)

// AdminLoginRequest carries admin credentials.
type AdminLoginRequest struct {
	Username string `json:"username" binding:"required" example:"admin"`
	Password string `json:"password" binding:"required" example:"admin123"`
}

// PortalLoginRequest names the portal user to sign in as.
type PortalLoginRequest struct {
	UserID string `json:"user_id" binding:"required" example:"SUP-001"`
}

// LoginResponse describes the issued session.
type LoginResponse struct {
	OK        bool               `json:"ok" example:"true"`
	Token     string             `json:"token"`
	ExpiresAt time.Time          `json:"expires_at"`
	User      services.Principal `json:"user"`
}

// UsersResponse lists users.
type UsersResponse struct {
	Users []domain.User `json:"users"`
}

func (h *Handlers) startPortalSession(c *gin.Context, l *services.Login) {
	h.setCookie(c, CookiePortal, l.Token, h.cookies.PortalTTL, http.SameSiteStrictMode)
	ok(c, http.StatusOK, LoginResponse{OK: true, Token: l.Token, ExpiresAt: l.ExpiresAt, User: l.Principal})
}

func (h *Handlers) endPortalSession(c *gin.Context) {
	h.clearCookie(c, CookiePortal, http.SameSiteStrictMode)
	acknowledge(c)
}

// AdminLogin godoc
// @ID          adminLogin
// @Summary     Admin sign-in
// @Tags        Admin
// @Accept      json
// @Produce     json
// @Param       body  body      handlers.AdminLoginRequest  true  "Credentials"
// @Success     200   {object}  handlers.LoginResponse
// @Failure     400   {object}  handlers.ErrorResponse "missing_fields"
// @Failure     401   {object}  handlers.ErrorResponse "bad_credentials"
// @Router      /admin/login [post]
func (h *Handlers) AdminLogin(c *gin.Context) {
	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeMissingFields, "username and password are required")
		return
	}
	l, err := h.portal.AdminLogin(req.Username, req.Password)
	if err != nil {
		serviceError(c, err)
		return
	}
	h.startPortalSession(c, l)
}

// AdminLogout godoc
// @ID          adminLogout
// @Summary     Admin sign-out
// @Tags        Admin
// @Produce     json
// @Success     200  {object}  handlers.OKResponse
// @Router      /admin/logout [post]
func (h *Handlers) AdminLogout(c *gin.Context) { h.endPortalSession(c) }

// PortalLogin godoc
// @ID          portalLogin
// @Summary     Portal sign-in
// @Description Signs in a supervisor or employee user. Admin accounts must use /admin/login.
// @Tags        Portal
// @Accept      json
// @Produce     json
// @Param       body  body      handlers.PortalLoginRequest  true  "User"
// @Success     200   {object}  handlers.LoginResponse
// @Failure     400   {object}  handlers.ErrorResponse "missing_fields or invalid_field"
// @Failure     401   {object}  handlers.ErrorResponse "bad_credentials"
// @Router      /portal/login [post]
func (h *Handlers) PortalLogin(c *gin.Context) {
	var req PortalLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeMissingFields, "user_id is required")
		return
	}
	l, err := h.portal.PortalLogin(c.Request.Context(), req.UserID)
	if err != nil {
		serviceError(c, err)
		return
	}
	h.startPortalSession(c, l)
}

// PortalLogout godoc
// @ID          portalLogout
// @Summary     Portal sign-out
// @Tags        Portal
// @Produce     json
// @Success     200  {object}  handlers.OKResponse
// @Router      /portal/logout [post]
func (h *Handlers) PortalLogout(c *gin.Context) { h.endPortalSession(c) }

// PortalMe godoc
// @ID          portalMe
// @Summary     Signed-in caller
// @Tags        Portal
// @Produce     json
// @Security    PortalToken
// @Success     200  {object}  services.Principal
// @Failure     401  {object}  handlers.ErrorResponse "unauthorized"
// @Failure     404  {object}  handlers.ErrorResponse "not_found"
// @Router      /portal/me [get]
func (h *Handlers) PortalMe(c *gin.Context) {
	p, signedIn := middleware.PrincipalFrom(c)
	if !signedIn {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "sign-in required")
		return
	}
	me, err := h.portal.Me(c.Request.Context(), p)
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusOK, me)
}

// PortalUsers godoc
// @ID          portalUsers
// @Summary     Users that can sign in to the portal
// @Tags        Portal
// @Produce     json
// @Success     200  {object}  handlers.UsersResponse
// @Router      /portal/users [get]
func (h *Handlers) PortalUsers(c *gin.Context) {
	users, err := h.catalog.Users(c.Request.Context(), true)
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusOK, UsersResponse{Users: users})
}
