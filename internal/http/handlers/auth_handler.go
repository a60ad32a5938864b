// Hand-off HTTP handlers.
//
//   - POST /auth/request      issue a signed payload for an employee
//   - POST /auth/verify       redeem a payload for a survey session
//   - POST /auth/mock/verify  development stand-in for a delegated endpoint
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-survey-backend/internal/auth"
	"github.com/tbourn/go-survey-backend/internal/services"
)

// AuthRequest asks for a signed hand-off. GroupID and CustomerID are
// generated when omitted.
type AuthRequest struct {
	EmployeeID string `json:"employee_id" example:"EMP-001"`
	Lang       string `json:"lang,omitempty" example:"fa"`
	GroupID    string `json:"group_id,omitempty" example:"G-DEFAULT"`
	CustomerID string `json:"customer_id,omitempty" example:"CUST-1a2b3c4d"`
}

// AuthPayloadResponse wraps an issued payload.
type AuthPayloadResponse struct {
	Payload auth.Payload `json:"payload"`
}

// VerifyRequest carries the payload to redeem.
type VerifyRequest struct {
	Payload *auth.Payload `json:"payload"`
}

// VerifyResponse names the session and response bound by a redeemed payload.
type VerifyResponse struct {
	SessionID  string `json:"session_id" example:"0b7e2c35-0a43-4c0e-a1e5-0c7d6bb5e4a0"`
	ResponseID string `json:"response_id" example:"7c0f3f6e-4d1b-4a43-9d7e-1b1f0f8f8e11"`
}

// RequestAuth godoc
// @ID          requestAuth
// @Summary     Issue a signed hand-off payload
// @Tags        Auth
// @Accept      json
// @Produce     json
// @Param       body  body      handlers.AuthRequest  true  "Employee to rate"
// @Success     200   {object}  handlers.AuthPayloadResponse
// @Failure     400   {object}  handlers.ErrorResponse "missing_employee"
// @Failure     401   {object}  handlers.ErrorResponse "auth_failed"
// @Router      /auth/request [post]
func (h *Handlers) RequestAuth(c *gin.Context) {
	var req AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	p, err := h.auth.Issue(c.Request.Context(), services.IssueRequest{
		EmployeeID: req.EmployeeID,
		Lang:       req.Lang,
		GroupID:    req.GroupID,
		CustomerID: req.CustomerID,
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusOK, AuthPayloadResponse{Payload: *p})
}

// VerifyAuth godoc
// @ID          verifyAuth
// @Summary     Redeem a hand-off payload
// @Description Verifies the signature and freshness, binds a response and opens a session. Sets the survey_session and survey_response cookies.
// @Tags        Auth
// @Accept      json
// @Produce     json
// @Param       body  body      handlers.VerifyRequest  true  "Signed payload"
// @Success     200   {object}  handlers.VerifyResponse
// @Failure     400   {object}  handlers.ErrorResponse "missing_payload"
// @Failure     401   {object}  handlers.ErrorResponse "auth_failed"
// @Failure     429   {object}  handlers.ErrorResponse "daily_limit_reached"
// @Router      /auth/verify [post]
func (h *Handlers) VerifyAuth(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Payload == nil {
		fail(c, http.StatusBadRequest, ErrCodeMissingPayload, "payload is required")
		return
	}
	ctx := c.Request.Context()
	id, err := h.auth.Redeem(ctx, *req.Payload)
	if err != nil {
		serviceError(c, err)
		return
	}
	m, err := h.survey.RedeemAuth(ctx, *id)
	if err != nil {
		serviceError(c, err)
		return
	}
	h.clearCookie(c, CookieLoggedOut, http.SameSiteLaxMode)
	h.writeMutation(c, m, "")
	ok(c, http.StatusOK, VerifyResponse{SessionID: m.Session.ID, ResponseID: m.Response.ID})
}

// MockVerify godoc
// @ID          mockVerify
// @Summary     Mock delegated authentication endpoint
// @Description Development only. Answers like an external identity provider.
// @Tags        Auth
// @Accept      json
// @Produce     json
// @Param       body  body      services.DelegatedRequest  true  "Delegated request"
// @Success     200   {object}  services.DelegatedResponse
// @Failure     400   {object}  services.DelegatedResponse
// @Failure     401   {object}  services.DelegatedResponse
// @Router      /auth/mock/verify [post]
func (h *Handlers) MockVerify(c *gin.Context) {
	var req services.DelegatedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, services.DelegatedResponse{Status: "error", Message: "invalid_json"})
		return
	}
	resp, err := h.auth.MockVerify(req)
	switch {
	case errors.Is(err, services.ErrMissingFields):
		c.JSON(http.StatusBadRequest, services.DelegatedResponse{Status: "error", Message: "missing_fields"})
	case err != nil:
		c.JSON(http.StatusUnauthorized, services.DelegatedResponse{Status: "rejected", Message: "invalid_credentials"})
	default:
		c.JSON(http.StatusOK, resp)
	}
}
