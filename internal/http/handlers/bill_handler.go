// Bill HTTP handlers.
//
// This file exposes REST endpoints for customer bills:
//   - GET    /bills             (list, ETag support)
//   - GET    /bills/{policyNo}  (bill number of the policy's completed bill)
//   - POST   /bills             (raise a bill against a certificate)
//   - PUT    /bills/{id}        (replace, optionally version-checked)
//   - DELETE /bills/{id}
//
// The billing flow upstream expects the -1 sentinel whenever there is no bill
// number to hand back, so lookups and creates answer 200 with -1 instead of
// an error status.
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/tbourn/vehicle-insurance-api/internal/domain"
	"github.com/tbourn/vehicle-insurance-api/internal/services"
	"github.com/tbourn/vehicle-insurance-api/internal/utils"
)

// noBillNo is returned on the wire when no bill number exists.
const noBillNo int64 = -1

//
// DTOs
//

// BillRequest is the JSON payload for creating or replacing a bill.
type BillRequest struct {
	// ID must equal the path id on PUT; ignored on POST.
	ID       int64           `json:"id" example:"7"`
	BillNo   int64           `json:"bill_no" binding:"min=0" example:"1001"`
	PolicyNo int64           `json:"policy_no" binding:"required" example:"555"`
	Status   string          `json:"status" binding:"max=32" example:"Completed"`
	Date     time.Time       `json:"date" example:"2024-05-01T00:00:00Z"`
	Amount   decimal.Decimal `json:"amount" swaggertype:"string" example:"125.50"`
	// Version is the version last read. On PUT a non-zero value makes the
	// replace conditional; zero replaces unconditionally.
	Version int64 `json:"version" binding:"min=0" example:"1"`
}

func (r BillRequest) toDomain() *domain.CustomerBill {
	return &domain.CustomerBill{
		ID:       r.ID,
		BillNo:   r.BillNo,
		PolicyNo: r.PolicyNo,
		Status:   r.Status,
		Date:     r.Date,
		Amount:   r.Amount,
		Version:  r.Version,
	}
}

//
// Handlers
//

// ListBills godoc
// @ID          listBills
// @Summary     List bills
// @Description Returns every customer bill. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Bills
// @Produce     json
//
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"  example(W/\"bills:3:1714521600000000000\")
//
// @Success     200  {array}   domain.CustomerBill
// @Header      200  {string}  ETag  "Weak ETag for current result"
// @Success     304  {string}  string "Not Modified"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /bills [get]
func (h *Handlers) ListBills(c *gin.Context) {
	if notModified(c, "bills", h.bills.Stats) {
		return
	}
	items, err := h.bills.List(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, items)
}

// GetBillNo godoc
// @ID          getBillNo
// @Summary     Bill number for a policy
// @Description Returns the bill number of the first bill with status "Completed" for the policy, or -1 when there is none.
// @Tags        Bills
// @Produce     json
//
// @Param       policyNo  path  int  true  "Policy number"  example(555)
//
// @Success     200  {integer} int64 "Bill number or -1"
// @Failure     400  {object}  handlers.ErrorResponse "Policy number is not numeric"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /bills/{policyNo} [get]
func (h *Handlers) GetBillNo(c *gin.Context) {
	policyNo, err := utils.ParseID(c.Param("policyNo"))
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "policy number must be an integer")
		return
	}

	billNo, found, err := h.bills.BillNoForPolicy(c.Request.Context(), policyNo)
	if err != nil {
		failErr(c, err)
		return
	}
	if !found {
		billNo = noBillNo
	}
	ok(c, http.StatusOK, billNo)
}

// CreateBill godoc
// @ID          createBill
// @Summary     Raise a bill
// @Description Looks up the certificate for policy_no, marks its warranty "Pending" and stores the bill, all in one transaction.
// @Description Answers 204 when no certificate exists (nothing is written) and -1 when the store wrote no row.
// @Description Supports idempotency via the Idempotency-Key header (same key → same bill number).
// @Tags        Bills
// @Accept      json
// @Produce     json
//
// @Param       Idempotency-Key  header  string  false "Idempotency key for safe retries"  example(7a8d9f4c-1b2a-4c3d-8e9f-0123456789ab)
// @Param       body             body    handlers.BillRequest  true  "Bill payload"
//
// @Success     200  {integer} int64 "Bill number or -1"
// @Header      200  {string}  Idempotency-Replayed  "true when served from a previous request"
// @Success     204  {string}  string "No certificate for the policy"
// @Failure     400  {object}  handlers.ErrorResponse "Bad request or create failure"
// @Router      /bills [post]
func (h *Handlers) CreateBill(c *gin.Context) {
	var req BillRequest
	if !bindJSON(c, &req) {
		return
	}

	if rec := h.storedOutcome(c); rec != nil {
		c.Header(headerReplayed, "true")
		ok(c, http.StatusOK, rec.ResourceID)
		return
	}

	billNo, persisted, err := h.bills.Create(c.Request.Context(), req.toDomain())
	switch {
	case errors.Is(err, services.ErrCertificateNotFound):
		noContent(c)
		return
	case err != nil:
		failErr(c, err)
		return
	case !persisted:
		ok(c, http.StatusOK, noBillNo)
		return
	}

	h.rememberOutcome(c, billNo, http.StatusOK)
	ok(c, http.StatusOK, billNo)
}

// UpdateBill godoc
// @ID          updateBill
// @Summary     Replace a bill
// @Description Replaces every field of the bill. The body id must equal the path id. A non-zero version must equal the stored version, otherwise 409.
// @Tags        Bills
// @Accept      json
// @Produce     json
//
// @Param       id    path  int  true  "Bill id"  example(7)
// @Param       body  body  handlers.BillRequest  true  "Bill payload"
//
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Bad request or id mismatch"
// @Failure     404  {object} handlers.ErrorResponse "Bill not found"
// @Failure     409  {object} handlers.ErrorResponse "Bill was modified concurrently"
// @Router      /bills/{id} [put]
func (h *Handlers) UpdateBill(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "bill id must be an integer")
		return
	}
	var req BillRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.bills.Update(c.Request.Context(), id, req.toDomain()); err != nil {
		failErr(c, err)
		return
	}
	noContent(c)
}

// DeleteBill godoc
// @ID          deleteBill
// @Summary     Delete a bill
// @Tags        Bills
// @Produce     json
//
// @Param       id  path  int  true  "Bill id"  example(7)
//
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Bill not found"
// @Router      /bills/{id} [delete]
func (h *Handlers) DeleteBill(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "bill id must be an integer")
		return
	}
	if err := h.bills.Delete(c.Request.Context(), id); err != nil {
		failErr(c, err)
		return
	}
	noContent(c)
}
