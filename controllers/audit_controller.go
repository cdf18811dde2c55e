package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type AuditController struct{ *Srv }

func NewAuditController(s *Srv) *AuditController { return &AuditController{Srv: s} }

// GET /api/v1/audit (admin) — newest-first trail of ledger-affecting and
// administrative actions.
func (ac *AuditController) List(c *gin.Context) {
	page, err := ac.Repo.ListAuditLogs(c.Request.Context(), pageFromQuery(c))
	if err != nil {
		respondDomainErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, page)
}
