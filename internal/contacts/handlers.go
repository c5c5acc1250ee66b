package contacts

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ContactDesk/CD-Backend/internal/auth"
	"github.com/ContactDesk/CD-Backend/internal/db"
	"github.com/ContactDesk/CD-Backend/internal/httpx"
	"github.com/ContactDesk/CD-Backend/internal/profile"
	"github.com/ContactDesk/CD-Backend/internal/utils"
	"github.com/ContactDesk/CD-Backend/internal/views"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type contactItem struct {
	ID         uint
	FName      string
	LName      string
	Bio        string
	HasAccount bool
}

type contactsData struct {
	Contacts []contactItem
}

// ListHandler returns the contacts fragment for the signed-in user.
func ListHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: missing user ID in context", http.StatusUnauthorized)
		return
	}

	var conts []Contact
	if err := db.DB.Where("user_id = ?", userID).Order("id").Find(&conts).Error; err != nil {
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}

	items := make([]contactItem, 0, len(conts))
	for _, c := range conts {
		items = append(items, contactItem{
			ID:         c.ID,
			FName:      c.FName,
			LName:      c.LName,
			Bio:        c.Bio,
			HasAccount: c.AccountID != nil,
		})
	}

	layout, err := views.Render("contacts.tmpl", contactsData{Contacts: items})
	if err != nil {
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, httpx.Page{
		Script: "contacts.js",
		Style:  "contacts.css",
		Layout: layout,
	})
}

func AddContactHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: missing user ID in context", http.StatusUnauthorized)
		return
	}

	var req struct {
		FName string `json:"fname"`
		LName string `json:"lname"`
		Bio   string `json:"bio"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid Request Format", http.StatusBadRequest)
		return
	}

	cont := Contact{UserID: userID, FName: req.FName, LName: req.LName, Bio: req.Bio}
	if err := db.DB.Create(&cont).Error; err != nil {
		log.Error().Err(err).Msg("contacts: insert contact")
		httpx.NOK(w, "")
		return
	}

	httpx.OK(w, "/hub")
}

// ownedContact loads a contact only if it belongs to the given user, so
// sub-record routes can never write into another user's contact list.
func ownedContact(userID string, contID uint) (*Contact, error) {
	var cont Contact
	if err := db.DB.First(&cont, "id = ? AND user_id = ?", contID, userID).Error; err != nil {
		return nil, err
	}
	return &cont, nil
}

func AddContactAddressHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: missing user ID in context", http.StatusUnauthorized)
		return
	}

	var req struct {
		ContID  uint   `json:"cont_id"`
		Address string `json:"address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid Request Format", http.StatusBadRequest)
		return
	}

	cont, err := ownedContact(userID, req.ContID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Error().Err(err).Msg("contacts: look up contact")
		}
		httpx.NOK(w, "")
		return
	}

	addr := profile.Address{ContactID: &cont.ID, Address: req.Address}
	if err := db.DB.Create(&addr).Error; err != nil {
		log.Error().Err(err).Msg("contacts: insert address")
		httpx.NOK(w, "")
		return
	}

	httpx.OK(w, "/hub")
}

func AddContactPhoneHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: missing user ID in context", http.StatusUnauthorized)
		return
	}

	var req struct {
		ContID uint   `json:"cont_id"`
		Phone  string `json:"phone"`
		Type   string `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid Request Format", http.StatusBadRequest)
		return
	}

	cont, err := ownedContact(userID, req.ContID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Error().Err(err).Msg("contacts: look up contact")
		}
		httpx.NOK(w, "")
		return
	}

	phone := profile.Phone{ContactID: &cont.ID, Phone: req.Phone, Type: req.Type}
	if err := db.DB.Create(&phone).Error; err != nil {
		log.Error().Err(err).Msg("contacts: insert phone")
		httpx.NOK(w, "")
		return
	}

	httpx.OK(w, "/hub")
}

type searchResult struct {
	User  ContactRef `json:"user"`
	Name  string     `json:"name"`
	Email string     `json:"email"`
}

// SearchHandler matches registered users whose name or email contains the
// keyword, case-insensitively.
func SearchHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Keyword string `json:"keyword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid Request Format", http.StatusBadRequest)
		return
	}

	pattern := "%" + req.Keyword + "%"
	var users []auth.User
	err := db.DB.
		Where("fname ILIKE ? OR lname ILIKE ? OR email ILIKE ?", pattern, pattern, pattern).
		Order("fname").
		Find(&users).Error
	if err != nil {
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}

	results := make([]searchResult, 0, len(users))
	for _, u := range users {
		results = append(results, searchResult{
			User:  ContactRef{ID: u.UserID, FName: u.FName, LName: u.LName},
			Name:  u.FName + " " + u.LName,
			Email: u.Email,
		})
	}

	httpx.WriteJSON(w, http.StatusOK, results)
}

// AddWithAccountHandler adds a contact linked to a registered user picked
// from the search results.
func AddWithAccountHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: missing user ID in context", http.StatusUnauthorized)
		return
	}

	var req struct {
		ContInfo ContactRef `json:"cont_info"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid Request Format", http.StatusBadRequest)
		return
	}

	if req.ContInfo.ID == "" {
		httpx.NOK(w, "Missing account reference")
		return
	}

	cont := Contact{
		UserID:    userID,
		FName:     req.ContInfo.FName,
		LName:     req.ContInfo.LName,
		AccountID: &req.ContInfo.ID,
	}
	if err := db.DB.Create(&cont).Error; err != nil {
		log.Error().Err(err).Msg("contacts: insert linked contact")
		httpx.NOK(w, "")
		return
	}

	httpx.OK(w, "/hub")
}
