package profile

// Address and Phone rows belong to exactly one owner: either a user or a
// contact, never both.
type Address struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	UserID    *string `gorm:"index" json:"user_id,omitempty"`
	ContactID *uint   `gorm:"index" json:"contact_id,omitempty"`
	Address   string  `gorm:"not null" json:"address"`
}

type Phone struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	UserID    *string `gorm:"index" json:"user_id,omitempty"`
	ContactID *uint   `gorm:"index" json:"contact_id,omitempty"`
	Phone     string  `gorm:"not null" json:"phone"`
	Type      string  `json:"type"`
}

func (Address) TableName() string { return "app.addresses" }
func (Phone) TableName() string   { return "app.phones" }
