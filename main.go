package main

import (
	"context"
	"log"
	"os"

	"lab_inventory_lending/app"
	"lab_inventory_lending/config"
	"lab_inventory_lending/db"
	"lab_inventory_lending/routes"
)

func main() {
	config.LoadEnv()

	application := app.MustNew()
	defer application.Close()

	r := application.Router

	// Health
	r.GET("/health", func(c *app.Ctx) { c.JSON(200, app.H{"success": true, "message": "OK"}) })

	app.BootstrapFirstAdmin(context.Background(), application.Config, db.NewRepo(application.DB))

	routes.RegisterRoutes(application)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	log.Printf("listening on :%s", port)
	_ = r.Run(":" + port)
}
