package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"lab_inventory_lending/app"
	"lab_inventory_lending/db"
	"lab_inventory_lending/session"

	"github.com/gin-gonic/gin"
)

type Srv struct {
	Repo   *db.Repo
	Tokens *session.TokenStore
	Cfg    app.Config
}

func GetSrv(a *app.App) *Srv {
	return &Srv{
		Repo:   db.NewRepo(a.DB),
		Tokens: session.NewTokenStore(a.RDB),
		Cfg:    a.Config,
	}
}

// --- helpers ---

func respondOK(c *gin.Context, status int, data any) {
	c.JSON(status, app.H{"success": true, "data": data})
}

func respondErr(c *gin.Context, status int, msg string) {
	c.JSON(status, app.H{"success": false, "message": msg})
}

// respondDomainErr maps a repo error to the uniform envelope. Unrecognized
// errors are logged and hidden behind a generic 500 message.
func respondDomainErr(c *gin.Context, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		log.Printf("[ERR] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		respondErr(c, status, "Server error")
		return
	}
	respondErr(c, status, err.Error())
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, db.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, db.ErrInsufficientStock),
		errors.Is(err, db.ErrRequestNotPending),
		errors.Is(err, db.ErrRequestNotActive),
		db.IsValidationError(err):
		return http.StatusBadRequest
	case errors.Is(err, db.ErrActiveBorrowExists),
		errors.Is(err, db.ErrDuplicateEmail),
		errors.Is(err, db.ErrDuplicatePhone),
		errors.Is(err, db.ErrDuplicateQRCode):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// pageFromQuery reads ?page=&limit= with the shared clamping rules.
func pageFromQuery(c *gin.Context) db.PageParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	return db.ClampPage(page, limit)
}

// callerID returns the identity resolved by the auth middleware.
func callerID(c *gin.Context) (string, bool) {
	v, ok := c.Get("userID")
	if !ok {
		return "", false
	}
	uid, _ := v.(string)
	return uid, uid != ""
}
