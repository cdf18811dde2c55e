package controllers

import (
	"net/http"

	"lab_inventory_lending/app"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UserController struct{ *Srv }

func NewUserController(s *Srv) *UserController { return &UserController{Srv: s} }

// GET /api/v1/users?q=&page=&limit= (admin)
func (uc *UserController) List(c *gin.Context) {
	page, err := uc.Repo.ListUsers(c.Request.Context(), c.Query("q"), pageFromQuery(c))
	if err != nil {
		respondDomainErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, page)
}

// GET /api/v1/users/:id (admin)
func (uc *UserController) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		respondErr(c, http.StatusBadRequest, "invalid uuid")
		return
	}
	u, err := uc.Repo.FindUserByID(c.Request.Context(), id)
	if err != nil {
		respondDomainErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, app.H{"user": u})
}
