package controllers

import (
	"net/http"

	"lab_inventory_lending/app"
	"lab_inventory_lending/auth"
	"lab_inventory_lending/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthController struct{ *Srv }

func NewAuthController(s *Srv) *AuthController { return &AuthController{Srv: s} }

type signupInput struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"required"`
	Password  string `json:"password" binding:"required,min=8"`
}

// POST /api/v1/auth/signup
func (ac *AuthController) Signup(c *gin.Context) {
	var in signupInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondErr(c, http.StatusBadRequest, err.Error())
		return
	}

	u := &models.User{
		ID:        uuid.NewString(),
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Phone:     in.Phone,
		Role:      models.RoleIntern,
		IsActive:  true,
	}
	if err := u.SetPassword(in.Password); err != nil {
		respondDomainErr(c, err)
		return
	}
	if err := ac.Repo.CreateUser(c.Request.Context(), u); err != nil {
		respondDomainErr(c, err)
		return
	}

	token, _, err := auth.GenerateToken(ac.Cfg.JWTSecret, u.ID, u.Role, ac.Cfg.TokenTTL)
	if err != nil {
		respondDomainErr(c, err)
		return
	}
	respondOK(c, http.StatusCreated, app.H{"user": u, "token": token})
}

type loginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// POST /api/v1/auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var in loginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondErr(c, http.StatusBadRequest, err.Error())
		return
	}

	u, err := ac.Repo.FindUserByEmail(c.Request.Context(), in.Email)
	if err != nil || !u.CheckPassword(in.Password) || !u.IsActive {
		// Same message whether the email or the password is wrong.
		respondErr(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, _, err := auth.GenerateToken(ac.Cfg.JWTSecret, u.ID, u.Role, ac.Cfg.TokenTTL)
	if err != nil {
		respondDomainErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, app.H{"user": u, "token": token})
}

// GET /api/v1/auth/me
func (ac *AuthController) Me(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		respondErr(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	u, err := ac.Repo.FindUserByID(c.Request.Context(), uid)
	if err != nil {
		respondErr(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	respondOK(c, http.StatusOK, app.H{"user": u})
}

// POST /api/v1/auth/logout revokes the presented token until it expires.
func (ac *AuthController) Logout(c *gin.Context) {
	jti := c.GetString("tokenJTI")
	if jti != "" {
		if err := ac.Tokens.Revoke(c.Request.Context(), jti, app.TokenExpiry(c)); err != nil {
			respondDomainErr(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, app.H{"success": true, "message": "Logged out"})
}
