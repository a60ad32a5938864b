// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements RedactingLogger, the access logger. It never logs
// bodies, masks credential-bearing headers and query parameters, and
// pattern-redacts identifiers that slip into other headers or the query.
//
// Always masked:
//   - headers Authorization, Cookie and Set-Cookie
//   - query parameters edit_token and signature
//
// Edit tokens and session ids are UUIDs, so the UUID pattern also catches
// them wherever else they appear.
package middleware

import (
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RedactOptions adds headers and query parameters to the masked sets.
// Matching is case-insensitive for headers and exact for parameters.
type RedactOptions struct {
	MaskHeaders     []string
	MaskQueryParams []string
}

var (
	uuidRE  = regexp.MustCompile(`(?i)\b[0-9a-f]{8}\-[0-9a-f]{4}\-[1-5][0-9a-f]{3}\-[89ab][0-9a-f]{3}\-[0-9a-f]{12}\b`)
	emailRE = regexp.MustCompile(`(?i)\b[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}\b`)
	phoneRE = regexp.MustCompile(`\b(?:\+?\d{1,3}[ .-]?)?(?:\(?\d{2,4}\)?[ .-]?)?\d{3,4}[ .-]?\d{4}\b`)
)

// redact scrubs ids, then emails, then phone numbers. The phone pattern is
// the loosest, so it must run last.
func redact(s string) string {
	if s == "" {
		return s
	}
	s = uuidRE.ReplaceAllString(s, "[REDACTED:id]")
	s = emailRE.ReplaceAllString(s, "[REDACTED:email]")
	return phoneRE.ReplaceAllString(s, "[REDACTED:phone]")
}

// RedactingLogger logs one line per request with the request-scoped logger
// it attaches (see LoggerFrom). The level follows the outcome: error for 5xx
// or when handlers recorded Gin errors, warn for 4xx, info otherwise.
func RedactingLogger(opts RedactOptions) gin.HandlerFunc {
	maskHeaders := map[string]struct{}{
		"authorization": {},
		"cookie":        {},
		"set-cookie":    {},
	}
	for _, h := range opts.MaskHeaders {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			maskHeaders[h] = struct{}{}
		}
	}

	params := []string{"edit_token", "signature"}
	for _, p := range opts.MaskQueryParams {
		if p = strings.TrimSpace(p); p != "" {
			params = append(params, regexp.QuoteMeta(p))
		}
	}
	paramRE := regexp.MustCompile(`(^|&)(` + strings.Join(params, "|") + `)=[^&]*`)

	return func(c *gin.Context) {
		start := time.Now()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		query := paramRE.ReplaceAllString(c.Request.URL.RawQuery, "$1$2=[REDACTED]")
		query = truncate(redact(query), maxQueryLogLength)

		headers := make(map[string]string, len(c.Request.Header))
		for k, vv := range c.Request.Header {
			if _, ok := maskHeaders[strings.ToLower(k)]; ok {
				headers[k] = "[REDACTED]"
				continue
			}
			headers[k] = redact(strings.Join(vv, ", "))
		}
		_, sessErr := c.Cookie(SessionCookie)

		lg := attachLogger(c, path)

		c.Next()

		status := c.Writer.Status()
		var ev *zerolog.Event
		switch {
		case len(c.Errors) > 0 || status >= 500:
			ev = lg.Error()
			if len(c.Errors) > 0 {
				ev = ev.Str("errors", c.Errors.String())
			}
		case status >= 400:
			ev = lg.Warn()
		default:
			ev = lg.Info()
		}
		if p, ok := PrincipalFrom(c); ok {
			ev = ev.Str("user_id", p.UserID).Str("role", string(p.Role))
		}
		if code := c.GetString(ErrorCodeKey); code != "" {
			ev = ev.Str("code", code)
		}

		ev.
			Str("query", query).
			Bool("survey_session", sessErr == nil).
			Int("status", status).
			Int("bytes", c.Writer.Size()).
			Dur("latency", time.Since(start)).
			Interface("headers", headers).
			Msg("http_request")
	}
}
