package profile

import (
	"encoding/json"
	"fmt"
	"net/http"
	"unicode/utf8"

	"github.com/ContactDesk/CD-Backend/internal/auth"
	"github.com/ContactDesk/CD-Backend/internal/db"
	"github.com/ContactDesk/CD-Backend/internal/httpx"
	"github.com/ContactDesk/CD-Backend/internal/utils"
	"github.com/ContactDesk/CD-Backend/internal/views"
	"github.com/rs/zerolog/log"
)

const maxBioLength = 500

type hubData struct {
	FName string
	LName string
}

type profileData struct {
	UserID    string
	FName     string
	LName     string
	Bio       string
	Email     string
	Phones    []Phone
	Addresses []Address
}

// HubHandler renders the landing page for the signed-in user.
func HubHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: missing user ID in context", http.StatusUnauthorized)
		return
	}

	var user auth.User
	if err := db.DB.First(&user, "user_id = ?", userID).Error; err != nil {
		http.Error(w, "Couldn't find user", http.StatusInternalServerError)
		return
	}

	page, err := views.Render("hub.tmpl", hubData{FName: user.FName, LName: user.LName})
	if err != nil {
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, page)
}

// ProfileHandler returns the profile fragment with the user's bio, phone
// numbers and addresses, plus the assets the client loads alongside it.
func ProfileHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: missing user ID in context", http.StatusUnauthorized)
		return
	}

	var user auth.User
	if err := db.DB.First(&user, "user_id = ?", userID).Error; err != nil {
		http.Error(w, "Couldn't find user", http.StatusInternalServerError)
		return
	}

	var phones []Phone
	if err := db.DB.Where("user_id = ?", userID).Order("id").Find(&phones).Error; err != nil {
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}

	var addresses []Address
	if err := db.DB.Where("user_id = ?", userID).Order("id").Find(&addresses).Error; err != nil {
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}

	layout, err := views.Render("profile.tmpl", profileData{
		UserID:    user.UserID,
		FName:     user.FName,
		LName:     user.LName,
		Bio:       user.Bio,
		Email:     user.Email,
		Phones:    phones,
		Addresses: addresses,
	})
	if err != nil {
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, httpx.Page{
		Script: "/profile.js",
		Style:  "/profile.css",
		Layout: layout,
	})
}

func AddAddressHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: missing user ID in context", http.StatusUnauthorized)
		return
	}

	var req struct {
		Address string `json:"address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid Request Format", http.StatusBadRequest)
		return
	}

	addr := Address{UserID: &userID, Address: req.Address}
	if err := db.DB.Create(&addr).Error; err != nil {
		log.Error().Err(err).Msg("profile: insert address")
		httpx.NOK(w, "")
		return
	}

	httpx.OK(w, "/hub")
}

func AddPhoneHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: missing user ID in context", http.StatusUnauthorized)
		return
	}

	var req struct {
		Phone string `json:"phone"`
		Type  string `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid Request Format", http.StatusBadRequest)
		return
	}

	phone := Phone{UserID: &userID, Phone: req.Phone, Type: req.Type}
	if err := db.DB.Create(&phone).Error; err != nil {
		log.Error().Err(err).Msg("profile: insert phone")
		httpx.NOK(w, "")
		return
	}

	httpx.OK(w, "/hub")
}

// EditBioHandler replaces the user's biography. Bios over the limit are an
// explicit failure, never a dropped request.
func EditBioHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: missing user ID in context", http.StatusUnauthorized)
		return
	}

	var req struct {
		Bio string `json:"bio"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid Request Format", http.StatusBadRequest)
		return
	}

	if utf8.RuneCountInString(req.Bio) > maxBioLength {
		httpx.NOK(w, "Bio must be 500 characters or fewer")
		return
	}

	if err := db.DB.Model(&auth.User{}).Where("user_id = ?", userID).Update("bio", req.Bio).Error; err != nil {
		log.Error().Err(err).Msg("profile: update bio")
		httpx.NOK(w, "")
		return
	}

	httpx.OK(w, "/hub")
}
