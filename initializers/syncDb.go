package initializers

import (
	"log"

	"github.com/Kariqs/confectionary-api/models"
	"gorm.io/gorm"
)

func SyncDatabase(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Promotion{},
	)
	if err != nil {
		return err
	}
	log.Println("Database synced successfully.")
	return nil
}
