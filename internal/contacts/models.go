package contacts

type Contact struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID string `gorm:"not null;index" json:"user_id"`
	FName  string `json:"fname"`
	LName  string `json:"lname"`
	Bio    string `json:"bio"`
	// AccountID is set when the contact corresponds to a registered user.
	AccountID *string `gorm:"index" json:"account_id,omitempty"`
}

func (Contact) TableName() string { return "app.contacts" }

// ContactRef identifies a registered user in search results and in the
// add-with-account request body.
type ContactRef struct {
	ID    string `json:"id"`
	FName string `json:"fname"`
	LName string `json:"lname"`
}
