// Seeds a demo user with a couple of contacts for local development.
package main

import (
	"log"

	"github.com/ContactDesk/CD-Backend/internal/auth"
	"github.com/ContactDesk/CD-Backend/internal/config"
	"github.com/ContactDesk/CD-Backend/internal/contacts"
	"github.com/ContactDesk/CD-Backend/internal/db"
	"github.com/ContactDesk/CD-Backend/internal/profile"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	_ = godotenv.Load(".env.local")

	cfg := config.Load()
	db.Connect(cfg.DatabaseURL)

	auth.Init(cfg.SessionTTL)
	profile.Init()
	contacts.Init()

	hashed, err := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash demo password: ", err)
	}

	user := auth.User{
		UserID:         uuid.NewString(),
		Username:       "demo@example.com",
		HashedPassword: string(hashed),
		FName:          "Demo",
		LName:          "Agent",
		Bio:            "Seeded demo account",
		Email:          "demo@example.com",
	}
	if err := db.DB.Where("username = ?", user.Username).FirstOrCreate(&user).Error; err != nil {
		log.Fatal("Failed to seed demo user: ", err)
	}

	addr := profile.Address{UserID: &user.UserID, Address: "800 Granville St, Vancouver"}
	if err := db.DB.Create(&addr).Error; err != nil {
		log.Fatal("Failed to seed demo address: ", err)
	}

	for _, c := range []contacts.Contact{
		{UserID: user.UserID, FName: "Alice", LName: "Nguyen", Bio: "Regular caller"},
		{UserID: user.UserID, FName: "Marco", LName: "Silva", Bio: "Escalations"},
	} {
		cont := c
		if err := db.DB.Create(&cont).Error; err != nil {
			log.Fatal("Failed to seed demo contact: ", err)
		}
	}

	log.Println("Seed complete")
}
