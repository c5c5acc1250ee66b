package profile

import (
	"log"

	"github.com/ContactDesk/CD-Backend/internal/db"
)

func Init() {
	if err := db.DB.AutoMigrate(&Address{}, &Phone{}); err != nil {
		log.Fatal("Failed to auto-migrate tables", err)
	}
}
