package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// GetDrivingHistory godoc
// @ID          getDrivingHistory
// @Summary     Driving history lookup
// @Description Fetches the driver's record from the driving-history service. Upstream failures answer 400 with the reason.
// @Tags        History
// @Produce     json
//
// @Param       driverId  path  string  true  "Driver id"  example(D-123)
//
// @Success     200  {object} domain.DrivingHistory
// @Failure     400  {object} handlers.ErrorResponse "Error calling external service"
// @Router      /driving-history/{driverId} [get]
func (h *Handlers) GetDrivingHistory(c *gin.Context) {
	dh, err := h.history.DrivingHistory(c.Request.Context(), c.Param("driverId"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, dh)
}

// GetClaimsHistory godoc
// @ID          getClaimsHistory
// @Summary     Claims history lookup
// @Description Fetches the claims summary for a driver. Answers 204 when the upstream has nothing for the name.
// @Tags        History
// @Produce     json
//
// @Param       driverName  query  string  true  "Driver name"  example(John Doe)
//
// @Success     200  {object} domain.ClaimsHistory
// @Success     204  {string} string "No claims history"
// @Failure     400  {object} handlers.ErrorResponse "driverName missing"
// @Failure     500  {object} handlers.ErrorResponse "Upstream failure"
// @Router      /claims-history [get]
func (h *Handlers) GetClaimsHistory(c *gin.Context) {
	name := c.Query("driverName")
	if strings.TrimSpace(name) == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "driverName is required")
		return
	}

	ch, err := h.history.ClaimsHistory(c.Request.Context(), name)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	if ch == nil {
		noContent(c)
		return
	}
	ok(c, http.StatusOK, ch)
}
