package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/vehicle-insurance-api/internal/domain"
	"github.com/tbourn/vehicle-insurance-api/internal/http/middleware"
)

const headerReplayed = "Idempotency-Replayed"

// storedOutcome returns the recorded outcome for this request's
// Idempotency-Key, or nil when there is none (or no store is configured).
func (h *Handlers) storedOutcome(c *gin.Context) *domain.Idempotency {
	if h.idem == nil {
		return nil
	}
	key, ok := middleware.GetIdempotencyKey(c)
	if !ok {
		return nil
	}
	rec, err := h.idem.Find(c.Request.Context(), middleware.IdempotencyScope(c), key, time.Now().UTC())
	if err != nil || rec == nil {
		return nil
	}
	return rec
}

// rememberOutcome records a successful create under the request's key.
// Failures are logged and otherwise ignored; the create already happened.
func (h *Handlers) rememberOutcome(c *gin.Context, resourceID int64, status int) {
	if h.idem == nil {
		return
	}
	key, ok := middleware.GetIdempotencyKey(c)
	if !ok {
		return
	}
	if err := h.idem.Save(c.Request.Context(), middleware.IdempotencyScope(c), key, resourceID, status, h.idemTTL); err != nil {
		middleware.LoggerFrom(c).Warn().Err(err).Msg("idempotency record not saved")
	}
}
