package controllers

import (
	"net/http"

	"lab_inventory_lending/models"

	"github.com/gin-gonic/gin"
)

type BorrowController struct{ *Srv }

func NewBorrowController(s *Srv) *BorrowController { return &BorrowController{Srv: s} }

type borrowInput struct {
	ItemID   string `json:"itemId" binding:"required"`
	Quantity int    `json:"quantity"`
}

// POST /api/v1/borrow creates a pending request. No stock is reserved here;
// reservation happens on approval.
func (bc *BorrowController) Borrow(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		respondErr(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var in borrowInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondErr(c, http.StatusBadRequest, err.Error())
		return
	}
	if in.Quantity == 0 {
		in.Quantity = 1
	}

	req, err := bc.Repo.SubmitRequest(c.Request.Context(), uid, in.ItemID, in.Quantity)
	if err != nil {
		respondDomainErr(c, err)
		return
	}
	respondOK(c, http.StatusCreated, req)
}

// POST /api/v1/borrow/:id/approve (admin)
func (bc *BorrowController) Approve(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		respondErr(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	req, err := bc.Repo.ApproveRequest(c.Request.Context(), c.Param("id"), uid)
	if err != nil {
		respondDomainErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, req)
}

// POST /api/v1/borrow/:id/reject (admin)
func (bc *BorrowController) Reject(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		respondErr(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	req, err := bc.Repo.RejectRequest(c.Request.Context(), c.Param("id"), uid)
	if err != nil {
		respondDomainErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, req)
}

// POST /api/v1/borrow/:id/return
func (bc *BorrowController) Return(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		respondErr(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	req, err := bc.Repo.ReturnRequest(c.Request.Context(), c.Param("id"), uid)
	if err != nil {
		respondDomainErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, req)
}

// GET /api/v1/borrow/mine
func (bc *BorrowController) Mine(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		respondErr(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	page, err := bc.Repo.ListMyRequests(c.Request.Context(), uid, pageFromQuery(c))
	if err != nil {
		respondDomainErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, page)
}

// GET /api/v1/borrow?status= (admin) — reviewer-side queue.
func (bc *BorrowController) ListAll(c *gin.Context) {
	status := models.RequestStatus(c.Query("status"))
	switch status {
	case "", models.StatusPending, models.StatusApproved, models.StatusRejected, models.StatusReturned:
	default:
		respondErr(c, http.StatusBadRequest, "unknown status filter")
		return
	}

	page, err := bc.Repo.ListRequests(c.Request.Context(), status, pageFromQuery(c))
	if err != nil {
		respondDomainErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, page)
}
