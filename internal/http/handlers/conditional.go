package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type statsFunc func(ctx context.Context) (int64, *time.Time, error)

// notModified sets a weak ETag derived from (count, latest update) and
// answers 304 when If-None-Match carries the same tag. Stats failures are
// ignored and the caller serves the full list.
func notModified(c *gin.Context, kind string, stats statsFunc) bool {
	count, maxTS, err := stats(c.Request.Context())
	if err != nil {
		return false
	}
	var ts int64
	if maxTS != nil {
		ts = maxTS.UnixNano()
	}
	etag := fmt.Sprintf(`W/"%s:%d:%d"`, kind, count, ts)
	c.Header("ETag", etag)
	if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
		c.Status(http.StatusNotModified)
		return true
	}
	return false
}
