package auth

import (
	"log"
	"time"

	"github.com/ContactDesk/CD-Backend/internal/db"
)

var sessionTTL = time.Hour

func Init(ttl time.Duration) {
	if ttl > 0 {
		sessionTTL = ttl
	}

	if err := db.EnsureSchema(db.DB, "app"); err != nil {
		log.Fatal("Failed to ensure schema app: ", err)
	}

	if err := db.DB.AutoMigrate(&User{}, &Session{}); err != nil {
		log.Fatal("Failed to auto-migrate tables", err)
	}
}
