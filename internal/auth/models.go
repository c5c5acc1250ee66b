package auth

import "time"

type Session struct {
	SessionID string    `gorm:"primaryKey" json:"-"`
	UserID    string    `gorm:"not null;unique" json:"-"`
	ExpiresAt time.Time `gorm:"not null"`
}

type User struct {
	UserID         string `gorm:"primaryKey" json:"user_id"`
	Username       string `gorm:"not null;uniqueIndex" json:"username"`
	Password       string `json:"password" gorm:"-"`
	HashedPassword string `json:"-"`
	FName          string `json:"fname"`
	LName          string `json:"lname"`
	// Bio length is checked at write time in the profile handlers, not here.
	Bio   string `json:"bio"`
	Email string `json:"email"`
}

func (Session) TableName() string { return "app.sessions" }
func (User) TableName() string    { return "app.users" }
