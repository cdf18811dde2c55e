package controllers

import (
	"net/http"

	"lab_inventory_lending/app"
	"lab_inventory_lending/db"
	"lab_inventory_lending/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type InventoryController struct{ *Srv }

func NewInventoryController(s *Srv) *InventoryController { return &InventoryController{Srv: s} }

// GET /api/v1/inventory
func (ic *InventoryController) List(c *gin.Context) {
	page, err := ic.Repo.ListItems(c.Request.Context(), pageFromQuery(c))
	if err != nil {
		respondDomainErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, page)
}

// GET /api/v1/inventory/:id
func (ic *InventoryController) Get(c *gin.Context) {
	it, err := ic.Repo.FindItemByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondDomainErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, it)
}

// GET /api/v1/inventory/qr/:code
func (ic *InventoryController) GetByQRCode(c *gin.Context) {
	it, err := ic.Repo.FindItemByQRCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondDomainErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, it)
}

type createItemInput struct {
	Name         string  `json:"name" binding:"required"`
	Description  string  `json:"description" binding:"required"`
	AssignedRole string  `json:"assignedRole"`
	Total        int     `json:"total" binding:"min=0"`
	Available    int     `json:"available" binding:"min=0"`
	Damaged      int     `json:"damaged" binding:"min=0"`
	InUse        int     `json:"inUse" binding:"min=0"`
	QRCode       *string `json:"qrCode"`
}

// POST /api/v1/inventory (admin)
func (ic *InventoryController) Create(c *gin.Context) {
	var in createItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondErr(c, http.StatusBadRequest, err.Error())
		return
	}
	if in.AssignedRole == "" {
		in.AssignedRole = models.RoleAdmin
	}

	it := &models.Item{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Description:  in.Description,
		AssignedRole: in.AssignedRole,
		Total:        in.Total,
		Available:    in.Available,
		Damaged:      in.Damaged,
		InUse:        in.InUse,
		QRCode:       in.QRCode,
	}
	if err := ic.Repo.CreateItem(c.Request.Context(), it); err != nil {
		respondDomainErr(c, err)
		return
	}

	ic.audit(c, models.AuditItemCreated, it.ID)
	respondOK(c, http.StatusCreated, it)
}

// PATCH /api/v1/inventory/:id (admin)
func (ic *InventoryController) Update(c *gin.Context) {
	var upd db.ItemUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		respondErr(c, http.StatusBadRequest, err.Error())
		return
	}

	it, err := ic.Repo.UpdateItem(c.Request.Context(), c.Param("id"), upd)
	if err != nil {
		respondDomainErr(c, err)
		return
	}

	ic.audit(c, models.AuditItemUpdated, it.ID)
	respondOK(c, http.StatusOK, it)
}

// DELETE /api/v1/inventory/:id (admin)
func (ic *InventoryController) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := ic.Repo.DeleteItem(c.Request.Context(), id); err != nil {
		respondDomainErr(c, err)
		return
	}

	ic.audit(c, models.AuditItemDeleted, id)
	respondOK(c, http.StatusOK, app.H{"id": id})
}

// audit records an administrative item mutation; failures are logged by the
// repo caller path and never fail the request that already committed.
func (ic *InventoryController) audit(c *gin.Context, action, itemID string) {
	uid, ok := callerID(c)
	if !ok {
		return
	}
	_ = ic.Repo.LogAction(c.Request.Context(), &models.AuditLog{
		ActorID: uid,
		Action:  action,
		ItemID:  &itemID,
	})
}
