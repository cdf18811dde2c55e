package app

import (
	"context"
	"errors"
	"log"

	"lab_inventory_lending/db"
	"lab_inventory_lending/models"

	"github.com/google/uuid"
)

// BootstrapFirstAdmin seeds an administrator account from the environment so
// a fresh deployment has someone who can approve requests and manage items.
func BootstrapFirstAdmin(ctx context.Context, cfg Config, repo *db.Repo) {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return
	}

	if _, err := repo.FindUserByEmail(ctx, cfg.AdminEmail); err == nil {
		return
	} else if !errors.Is(err, db.ErrNotFound) {
		log.Printf("bootstrap admin lookup failed: %v", err)
		return
	}

	u := &models.User{
		ID:        uuid.NewString(),
		FirstName: "Lab",
		LastName:  "Admin",
		Email:     cfg.AdminEmail,
		Phone:     "bootstrap-" + uuid.NewString()[:8],
		Role:      models.RoleAdmin,
		IsActive:  true,
	}
	if err := u.SetPassword(cfg.AdminPassword); err != nil {
		log.Printf("bootstrap admin password: %v", err)
		return
	}
	if err := repo.CreateUser(ctx, u); err != nil {
		log.Printf("bootstrap admin create failed: %v", err)
		return
	}
	log.Printf("[BOOTSTRAP] Created first admin account for %s", cfg.AdminEmail)
}
