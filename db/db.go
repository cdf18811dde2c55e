package db

import (
	"fmt"
	"log"
	"os"

	"lab_inventory_lending/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	var err error
	// No FK constraint on borrow_requests.item_id: deleting an item orphans
	// its historical requests, which keep the id for audit.
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatal("Failed to migrate models: ", err)
	}
	log.Println("Database connected")
	return DB
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Item{},
		&models.BorrowRequest{},
		&models.AuditLog{},
	); err != nil {
		return err
	}

	// A user may hold at most one active approved borrow per item.
	if err := db.Exec(fmt.Sprintf(`
	  CREATE UNIQUE INDEX IF NOT EXISTS %s_one_active_per_user_item
	  ON %s (user_id, item_id)
	  WHERE status = 'approved' AND returned_at IS NULL;
	`, models.RequestTable, models.RequestTable)).Error; err != nil {
		return err
	}

	// Listing a user's requests newest-first is the hot read path.
	if err := db.Exec(fmt.Sprintf(`
	  CREATE INDEX IF NOT EXISTS %s_user_createdat_desc
	  ON %s (user_id, created_at DESC);
	`, models.RequestTable, models.RequestTable)).Error; err != nil {
		return err
	}

	return nil
}
