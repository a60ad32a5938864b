package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/tbourn/go-survey-backend/internal/http/middleware"
	"github.com/tbourn/go-survey-backend/internal/services"
)

// envelopeRouter mounts h behind a fixed request id and a captured logger.
func envelopeRouter(rid string, buf *bytes.Buffer, h gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	logger := zerolog.New(buf)
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("X-Request-ID", rid)
		c.Set("logger", &logger)
		c.Next()
	})
	r.GET("/x", h)
	return r
}

func Test_fail_500_LogsAndBody(t *testing.T) {
	var buf bytes.Buffer
	var code string
	r := envelopeRouter("rid-500", &buf, func(c *gin.Context) {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "kaboom")
		code = c.GetString(middleware.ErrorCodeKey)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d", w.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json: %v", err)
	}
	if resp.RequestID != "rid-500" || resp.Code != ErrCodeInternal || resp.Message != "kaboom" {
		t.Fatalf("unexpected body: %+v", resp)
	}
	if code != ErrCodeInternal {
		t.Fatalf("error code not recorded for metrics, got %q", code)
	}
	if !strings.Contains(buf.String(), `"level":"error"`) {
		t.Fatalf("expected error log, got: %s", buf.String())
	}
}

func Test_Fail_4xxIsNotLogged(t *testing.T) {
	var buf bytes.Buffer
	r := envelopeRouter("rid-404", &buf, func(c *gin.Context) {
		Fail(c, http.StatusNotFound, ErrCodeNotFound, "route not found")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	if w.Code != http.StatusNotFound || !strings.Contains(w.Body.String(), `"code":"not_found"`) {
		t.Fatalf("unexpected: %d %s", w.Code, w.Body.String())
	}
	if buf.Len() != 0 {
		t.Fatalf("4xx should not log, got: %s", buf.String())
	}
}

func Test_SuccessHelpers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ok", func(c *gin.Context) { ok(c, http.StatusCreated, gin.H{"x": 1}) })
	r.GET("/ack", acknowledge)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	if w.Code != http.StatusCreated || strings.TrimSpace(w.Body.String()) != `{"x":1}` {
		t.Fatalf("ok(): %d %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ack", nil))
	if w.Code != http.StatusOK || strings.TrimSpace(w.Body.String()) != `{"ok":true}` {
		t.Fatalf("acknowledge(): %d %s", w.Code, w.Body.String())
	}
}

func Test_serviceError_Mapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
		msg    string
	}{
		{services.ErrNoSession, http.StatusUnauthorized, ErrCodeNoSession, "no survey session"},
		{services.ErrMissingResponse, http.StatusNotFound, ErrCodeMissingResponse, "survey response missing"},
		{services.ErrReadOnly, http.StatusForbidden, ErrCodeReadOnly, "response is read-only"},
		{services.ErrInvalidScore, http.StatusBadRequest, ErrCodeInvalidScore, "score must be between 1 and 10"},
		{services.ErrConcurrentUpdate, http.StatusConflict, ErrCodeConflict, "response was modified concurrently"},
		{services.ErrInvalidRange, http.StatusBadRequest, ErrCodeInvalidRange, "invalid date range"},
		{services.ErrAlreadyExists, http.StatusConflict, ErrCodeAlreadyExists, "already exists"},
		{fmt.Errorf("wrapped: %w", services.ErrEmployeeNotFound), http.StatusNotFound, ErrCodeEmployeeNotFound, "employee not found"},

		{services.ErrDailyLimitReached, http.StatusTooManyRequests, ErrCodeDailyLimit, "daily survey limit reached"},

		// Credential failures all look alike.
		{services.ErrInvalidSignature, http.StatusUnauthorized, ErrCodeAuthFailed, authFailedMsg},
		{services.ErrTokenExpired, http.StatusUnauthorized, ErrCodeAuthFailed, authFailedMsg},
		{services.ErrAuthUpstreamRejected, http.StatusUnauthorized, ErrCodeAuthFailed, authFailedMsg},
		{services.ErrAuthUpstreamUnavailable, http.StatusUnauthorized, ErrCodeAuthFailed, authFailedMsg},

		{errors.New("db on fire"), http.StatusInternalServerError, ErrCodeInternal, "internal server error"},
	}
	for _, tc := range tests {
		t.Run(tc.code+"/"+tc.err.Error(), func(t *testing.T) {
			var buf bytes.Buffer
			r := envelopeRouter("rid-map", &buf, func(c *gin.Context) { serviceError(c, tc.err) })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
			if w.Code != tc.status {
				t.Fatalf("status = %d, want %d", w.Code, tc.status)
			}
			var resp ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("json: %v", err)
			}
			if resp.Code != tc.code || resp.Message != tc.msg || resp.RequestID != "rid-map" {
				t.Fatalf("body = %+v", resp)
			}
			if strings.Contains(resp.Message, "db on fire") {
				t.Fatalf("internal error leaked")
			}
			if tc.msg == authFailedMsg && !strings.Contains(buf.String(), tc.err.Error()) {
				t.Fatalf("hidden cause should still be logged, got: %s", buf.String())
			}
		})
	}
}
