package middleware

import (
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	redacted = "[REDACTED]"

	// maxQueryLogLength caps how much of the scrubbed query string is logged.
	maxQueryLogLength = 2048
)

// Patterns for identifiers that may turn up in query strings or headers.
// UUIDs are scrubbed before phone numbers so the phone pattern cannot match
// the digit groups of a UUID.
var (
	uuidRE  = regexp.MustCompile(`(?i)\b[0-9a-f]{8}\-[0-9a-f]{4}\-[1-5][0-9a-f]{3}\-[89ab][0-9a-f]{3}\-[0-9a-f]{12}\b`)
	emailRE = regexp.MustCompile(`(?i)\b[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}\b`)
	phoneRE = regexp.MustCompile(`\b(?:\+?\d{1,3}[ .-]?)?(?:\(?\d{2,4}\)?[ .-]?)?\d{3,4}[ .-]?\d{4}\b`)
	vinRE   = regexp.MustCompile(`\b[A-HJ-NPR-Z0-9]{17}\b`)
)

// Built-in masks. driverName and ownerName carry a person's name; the
// listed headers carry credentials.
var (
	defaultMaskedParams  = []string{"driverName", "ownerName"}
	defaultMaskedHeaders = []string{"Authorization", "Cookie", "Set-Cookie"}
)

// RedactOptions extends the built-in masks. Matching is case-insensitive.
type RedactOptions struct {
	// MaskHeaders are headers whose values are replaced entirely.
	MaskHeaders []string
	// MaskQueryParams are query parameters whose values are replaced entirely.
	MaskQueryParams []string
}

type redactor struct {
	params  *regexp.Regexp
	headers map[string]struct{}
}

func newRedactor(opts RedactOptions) *redactor {
	var quoted []string
	for _, p := range append(append([]string{}, defaultMaskedParams...), opts.MaskQueryParams...) {
		if p = strings.TrimSpace(p); p != "" {
			quoted = append(quoted, regexp.QuoteMeta(p))
		}
	}
	r := &redactor{
		params:  regexp.MustCompile(`(?i)(^|&)(` + strings.Join(quoted, "|") + `)=[^&]*`),
		headers: make(map[string]struct{}),
	}
	for _, h := range append(append([]string{}, defaultMaskedHeaders...), opts.MaskHeaders...) {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			r.headers[h] = struct{}{}
		}
	}
	return r
}

// scrub replaces identifiers inside free text.
func (r *redactor) scrub(s string) string {
	if s == "" {
		return s
	}
	s = uuidRE.ReplaceAllString(s, "[REDACTED:id]")
	s = emailRE.ReplaceAllString(s, "[REDACTED:email]")
	s = vinRE.ReplaceAllString(s, "[REDACTED:vin]")
	return phoneRE.ReplaceAllString(s, "[REDACTED:phone]")
}

func (r *redactor) query(raw string) string {
	q := r.scrub(r.params.ReplaceAllString(raw, "${1}${2}="+redacted))
	if len(q) > maxQueryLogLength {
		q = q[:maxQueryLogLength] + "…"
	}
	return q
}

func (r *redactor) headerDict(h map[string][]string) *zerolog.Event {
	d := zerolog.Dict()
	for k, vv := range h {
		if _, ok := r.headers[strings.ToLower(k)]; ok {
			d.Str(k, redacted)
			continue
		}
		d.Str(k, r.scrub(strings.Join(vv, ", ")))
	}
	return d
}

// RedactingLogger installs the request-scoped logger (see LoggerFrom) and
// writes one access log line per request. Bodies are never logged; query
// strings and header values are scrubbed first.
//
// Level follows the outcome: error for 5xx or collected gin errors, warn for
// 4xx, info otherwise. Place it after RequestID.
func RedactingLogger(opts RedactOptions) gin.HandlerFunc {
	r := newRedactor(opts)

	return func(c *gin.Context) {
		start := time.Now()
		query := r.query(c.Request.URL.RawQuery)
		headers := r.headerDict(c.Request.Header)

		lg := scopedLogger(c)
		c.Set(loggerKey, &lg)

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

		ev.
			Str("query", query).
			Str("remote_ip", c.ClientIP()).
			Int64("bytes_in", c.Request.ContentLength).
			Int("status", status).
			Int("bytes_out", c.Writer.Size()).
			Dur("latency", time.Since(start)).
			Bool("replay", IsReplay(c)).
			Dict("headers", headers).
			Msg("http_request")
	}
}
