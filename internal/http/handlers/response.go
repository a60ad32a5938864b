// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the response helpers shared by every endpoint: the error
// envelope, the service-error mapping table and the success writers.
//
// Example error response:
//
//	HTTP/1.1 404 Not Found
//	{
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "missing_response",
//	  "message": "survey response missing"
//	}
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-survey-backend/internal/http/middleware"
	"github.com/tbourn/go-survey-backend/internal/services"
)

// ErrorResponse is the standard error envelope returned by all endpoints.
type ErrorResponse struct {
	// Correlates server logs and client errors
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Stable, machine-readable code (see errors.go constants)
	Code string `json:"code" example:"no_session"`
	// Human-readable message (safe to show to users)
	Message string `json:"message" example:"no survey session"`
}

// OKResponse is the body of calls that only acknowledge.
type OKResponse struct {
	OK bool `json:"ok" example:"true"`
}

// fail aborts the request with a structured error. The code is recorded for
// the access log and error metrics; 5xx responses are also logged here.
func fail(c *gin.Context, status int, code, msg string) {
	c.Set(middleware.ErrorCodeKey, code)

	if status >= http.StatusInternalServerError {
		middleware.LoggerFrom(c).Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, ErrorResponse{
		RequestID: c.Writer.Header().Get("X-Request-ID"),
		Code:      code,
		Message:   msg,
	})
}

// Fail is the exported variant of fail() for router-level fallbacks.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

type errorMapping struct {
	err    error
	status int
	code   string
	msg    string // overrides err.Error() when set
}

const authFailedMsg = "authentication failed"

// serviceErrors maps service sentinels to HTTP results. Order matters only
// for wrapped errors matching several entries; the first match wins.
var serviceErrors = []errorMapping{
	{services.ErrMissingEmployee, http.StatusBadRequest, ErrCodeMissingEmployee, ""},
	{services.ErrAuthUpstreamRejected, http.StatusUnauthorized, ErrCodeAuthFailed, authFailedMsg},
	{services.ErrAuthUpstreamUnavailable, http.StatusUnauthorized, ErrCodeAuthFailed, authFailedMsg},
	{services.ErrMissingPayload, http.StatusBadRequest, ErrCodeMissingPayload, ""},
	{services.ErrInvalidSignature, http.StatusUnauthorized, ErrCodeAuthFailed, authFailedMsg},
	{services.ErrTokenExpired, http.StatusUnauthorized, ErrCodeAuthFailed, authFailedMsg},
	{services.ErrDailyLimitReached, http.StatusTooManyRequests, ErrCodeDailyLimit, ""},

	{services.ErrInvalidEditToken, http.StatusNotFound, ErrCodeInvalidEditToken, ""},
	{services.ErrNoSession, http.StatusUnauthorized, ErrCodeNoSession, ""},
	{services.ErrMissingResponse, http.StatusNotFound, ErrCodeMissingResponse, ""},
	{services.ErrMissingQuestion, http.StatusBadRequest, ErrCodeMissingQuestion, ""},
	{services.ErrInvalidScore, http.StatusBadRequest, ErrCodeInvalidScore, ""},
	{services.ErrReadOnly, http.StatusForbidden, ErrCodeReadOnly, ""},
	{services.ErrInvalidIndex, http.StatusBadRequest, ErrCodeInvalidIndex, ""},
	{services.ErrConcurrentUpdate, http.StatusConflict, ErrCodeConflict, ""},

	{services.ErrEmployeeNotFound, http.StatusNotFound, ErrCodeEmployeeNotFound, ""},
	{services.ErrMissingSupervisor, http.StatusBadRequest, ErrCodeMissingSupervisor, ""},
	{services.ErrInvalidRange, http.StatusBadRequest, ErrCodeInvalidRange, ""},
	{services.ErrForbidden, http.StatusForbidden, ErrCodeForbidden, ""},

	{services.ErrTooManyPrimary, http.StatusBadRequest, ErrCodeTooManyPrimary, ""},
	{services.ErrMissingFields, http.StatusBadRequest, ErrCodeMissingFields, ""},
	{services.ErrInvalidField, http.StatusBadRequest, ErrCodeInvalidField, ""},
	{services.ErrNotFound, http.StatusNotFound, ErrCodeNotFound, ""},
	{services.ErrBadCredentials, http.StatusUnauthorized, ErrCodeBadCredentials, ""},
	{services.ErrAlreadyExists, http.StatusConflict, ErrCodeAlreadyExists, ""},
}

// serviceError writes the envelope for err. Unknown errors become a logged
// 500 whose message does not leak internals.
func serviceError(c *gin.Context, err error) {
	for _, m := range serviceErrors {
		if errors.Is(err, m.err) {
			msg := m.msg
			if msg == "" {
				msg = m.err.Error()
			} else {
				middleware.LoggerFrom(c).Info().Err(err).Str("code", m.code).Msg("request rejected")
			}
			fail(c, m.status, m.code, msg)
			return
		}
	}
	middleware.LoggerFrom(c).Error().Err(err).Msg("unmapped service error")
	fail(c, http.StatusInternalServerError, ErrCodeInternal, "internal server error")
}

// ok writes a success JSON response.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

func acknowledge(c *gin.Context) {
	c.JSON(http.StatusOK, OKResponse{OK: true})
}
