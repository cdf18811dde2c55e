package routes

import (
	"time"

	"lab_inventory_lending/app"
	"lab_inventory_lending/controllers"
)

func RegisterRoutes(r *app.App) {
	s := controllers.GetSrv(r)
	authCtl := controllers.NewAuthController(s)
	invCtl := controllers.NewInventoryController(s)
	borrowCtl := controllers.NewBorrowController(s)
	userCtl := controllers.NewUserController(s)
	auditCtl := controllers.NewAuditController(s)

	authMW := app.AuthRequired(r.Config, s.Repo, s.Tokens)
	adminMW := app.AdminOnly()
	seenMW := app.TouchLastSeen(s.Repo, r.RDB, 5*time.Minute)

	api := r.Router.Group("/api/v1")

	// ------------------------------
	// Auth
	// ------------------------------
	auth := api.Group("/auth")
	{
		auth.POST("/signup", authCtl.Signup)
		auth.POST("/login", authCtl.Login)
		auth.GET("/me", authMW, seenMW, authCtl.Me)
		auth.POST("/logout", authMW, authCtl.Logout)
	}

	// ------------------------------
	// Inventory (reads are public, writes are admin)
	// ------------------------------
	inventory := api.Group("/inventory")
	{
		inventory.GET("", invCtl.List)
		inventory.GET("/qr/:code", invCtl.GetByQRCode)
		inventory.GET("/:id", invCtl.Get)

		inventory.POST("", authMW, adminMW, invCtl.Create)
		inventory.PATCH("/:id", authMW, adminMW, invCtl.Update)
		inventory.DELETE("/:id", authMW, adminMW, invCtl.Delete)
	}

	// ------------------------------
	// Borrow lifecycle
	// ------------------------------
	borrow := api.Group("/borrow", authMW, seenMW)
	{
		borrow.POST("", borrowCtl.Borrow)
		borrow.GET("/mine", borrowCtl.Mine)
		borrow.POST("/:id/return", borrowCtl.Return)

		borrow.GET("", adminMW, borrowCtl.ListAll)
		borrow.POST("/:id/approve", adminMW, borrowCtl.Approve)
		borrow.POST("/:id/reject", adminMW, borrowCtl.Reject)
	}

	// ------------------------------
	// Admin-only surfaces
	// ------------------------------
	users := api.Group("/users", authMW, adminMW)
	{
		users.GET("", userCtl.List)
		users.GET("/:id", userCtl.Get)
	}

	audit := api.Group("/audit", authMW, adminMW)
	{
		audit.GET("", auditCtl.List)
	}
}
