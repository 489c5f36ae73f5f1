// Quote HTTP handlers.
//
// Quotes are flat records: every field is supplied by the caller and stored
// verbatim.
//   - GET    /quotes       (list, ETag support)
//   - GET    /quotes/{id}
//   - POST   /quotes       (201 + Location)
//   - PUT    /quotes/{id}  (replace, optionally version-checked)
//   - DELETE /quotes/{id}
package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/tbourn/vehicle-insurance-api/internal/domain"
	"github.com/tbourn/vehicle-insurance-api/internal/services"
	"github.com/tbourn/vehicle-insurance-api/internal/utils"
)

// QuoteRequest is the JSON payload for creating or replacing a quote.
type QuoteRequest struct {
	// QuoteID must equal the path id on PUT; zero on POST lets the store assign one.
	QuoteID        int64           `json:"quote_id" binding:"min=0" example:"0"`
	VehicleMake    string          `json:"vehicle_make" binding:"max=64" example:"Toyota"`
	VehicleModel   string          `json:"vehicle_model" binding:"max=64" example:"Corolla"`
	VehicleYear    int             `json:"vehicle_year" binding:"min=0" example:"2020"`
	VehicleVIN     string          `json:"vehicle_vin" binding:"max=32" example:"1HGCM82633A004352"`
	VehicleType    string          `json:"vehicle_type" binding:"max=64" example:"Sedan"`
	VehicleMileage int             `json:"vehicle_mileage" binding:"min=0" example:"15000"`
	OwnerName      string          `json:"owner_name" binding:"max=255" example:"Jane Doe"`
	OwnerAddress   string          `json:"owner_address" binding:"max=255" example:"123 Main St"`
	PremiumAmount  decimal.Decimal `json:"premium_amount" swaggertype:"string" example:"450.00"`
	Rating         string          `json:"rating" binding:"max=16" example:"A"`
	// Version is the version last read. On PUT a non-zero value makes the
	// replace conditional; zero replaces unconditionally.
	Version int64 `json:"version" binding:"min=0" example:"1"`
}

func (r QuoteRequest) toDomain() *domain.VehicleInsuranceQuote {
	return &domain.VehicleInsuranceQuote{
		QuoteID:        r.QuoteID,
		VehicleMake:    r.VehicleMake,
		VehicleModel:   r.VehicleModel,
		VehicleYear:    r.VehicleYear,
		VehicleVIN:     r.VehicleVIN,
		VehicleType:    r.VehicleType,
		VehicleMileage: r.VehicleMileage,
		OwnerName:      r.OwnerName,
		OwnerAddress:   r.OwnerAddress,
		PremiumAmount:  r.PremiumAmount,
		Rating:         r.Rating,
		Version:        r.Version,
	}
}

// location builds the URL of a created quote from the matched collection route.
func location(c *gin.Context, id int64) string {
	base := c.FullPath()
	if base == "" {
		base = c.Request.URL.Path
	}
	return strings.TrimRight(base, "/") + "/" + strconv.FormatInt(id, 10)
}

// ListQuotes godoc
// @ID          listQuotes
// @Summary     List quotes
// @Description Returns every vehicle insurance quote. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Quotes
// @Produce     json
//
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"
//
// @Success     200  {array}   domain.VehicleInsuranceQuote
// @Header      200  {string}  ETag  "Weak ETag for current result"
// @Success     304  {string}  string "Not Modified"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /quotes [get]
func (h *Handlers) ListQuotes(c *gin.Context) {
	if notModified(c, "quotes", h.quotes.Stats) {
		return
	}
	items, err := h.quotes.List(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, items)
}

// GetQuote godoc
// @ID          getQuote
// @Summary     Get a quote
// @Tags        Quotes
// @Produce     json
//
// @Param       id  path  int  true  "Quote id"  example(1)
//
// @Success     200  {object} domain.VehicleInsuranceQuote
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Quote not found"
// @Router      /quotes/{id} [get]
func (h *Handlers) GetQuote(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "quote id must be an integer")
		return
	}
	q, err := h.quotes.Get(c.Request.Context(), id)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, q)
}

// CreateQuote godoc
// @ID          createQuote
// @Summary     Create a quote
// @Description Stores the quote verbatim and returns it with its assigned id.
// @Description Supports idempotency via the Idempotency-Key header (same key → same quote).
// @Tags        Quotes
// @Accept      json
// @Produce     json
//
// @Param       Idempotency-Key  header  string  false "Idempotency key for safe retries"
// @Param       body             body    handlers.QuoteRequest  true  "Quote payload"
//
// @Success     201  {object} domain.VehicleInsuranceQuote
// @Header      201  {string} Location              "URL of the created quote"
// @Header      201  {string} Idempotency-Replayed  "true when served from a previous request"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     409  {object} handlers.ErrorResponse "Quote id already exists"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /quotes [post]
func (h *Handlers) CreateQuote(c *gin.Context) {
	var req QuoteRequest
	if !bindJSON(c, &req) {
		return
	}
	ctx := c.Request.Context()

	// A replay whose quote has since been deleted is processed as new.
	if rec := h.storedOutcome(c); rec != nil {
		if q, err := h.quotes.Get(ctx, rec.ResourceID); err == nil {
			c.Header(headerReplayed, "true")
			c.Header("Location", location(c, q.QuoteID))
			ok(c, http.StatusCreated, q)
			return
		}
	}

	q := req.toDomain()
	if err := h.quotes.Create(ctx, q); err != nil {
		if errors.Is(err, services.ErrConflict) {
			fail(c, http.StatusConflict, ErrCodeConflict, "quote id already exists")
			return
		}
		failErr(c, err)
		return
	}

	h.rememberOutcome(c, q.QuoteID, http.StatusCreated)
	c.Header("Location", location(c, q.QuoteID))
	ok(c, http.StatusCreated, q)
}

// UpdateQuote godoc
// @ID          updateQuote
// @Summary     Replace a quote
// @Description Replaces every field of the quote. The body quote_id must equal the path id. A non-zero version must equal the stored version, otherwise 409.
// @Tags        Quotes
// @Accept      json
// @Produce     json
//
// @Param       id    path  int  true  "Quote id"  example(1)
// @Param       body  body  handlers.QuoteRequest  true  "Quote payload"
//
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Bad request or id mismatch"
// @Failure     404  {object} handlers.ErrorResponse "Quote not found"
// @Failure     409  {object} handlers.ErrorResponse "Quote was modified concurrently"
// @Router      /quotes/{id} [put]
func (h *Handlers) UpdateQuote(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "quote id must be an integer")
		return
	}
	var req QuoteRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.quotes.Update(c.Request.Context(), id, req.toDomain()); err != nil {
		failErr(c, err)
		return
	}
	noContent(c)
}

// DeleteQuote godoc
// @ID          deleteQuote
// @Summary     Delete a quote
// @Tags        Quotes
// @Produce     json
//
// @Param       id  path  int  true  "Quote id"  example(1)
//
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Quote not found"
// @Router      /quotes/{id} [delete]
func (h *Handlers) DeleteQuote(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "quote id must be an integer")
		return
	}
	if err := h.quotes.Delete(c.Request.Context(), id); err != nil {
		failErr(c, err)
		return
	}
	noContent(c)
}
