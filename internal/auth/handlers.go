package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/ContactDesk/CD-Backend/internal/db"
	"github.com/ContactDesk/CD-Backend/internal/httpx"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// establishSession creates (or replaces) the user's session row and sets the
// session_id cookie. One active session per user.
func establishSession(w http.ResponseWriter, userID string) error {
	id := uuid.NewString()
	expires := time.Now().Add(sessionTTL)

	var existing Session
	err := db.DB.First(&existing, "user_id = ?", userID).Error
	switch {
	case err == nil:
		if err := db.DB.Model(&existing).Updates(Session{SessionID: id, ExpiresAt: expires}).Error; err != nil {
			return err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		session := Session{SessionID: id, UserID: userID, ExpiresAt: expires}
		if err := db.DB.Create(&session).Error; err != nil {
			return err
		}
	default:
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "session_id",
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		User string `json:"user"`
		Pass string `json:"pass"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid Request Format", http.StatusBadRequest)
		return
	}

	var user User
	err := db.DB.First(&user, "username = ?", req.User).Error
	if err == nil {
		err = bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Pass))
	}
	if err != nil {
		httpx.WriteJSON(w, http.StatusOK, httpx.Envelope{Message: "Login Failed", URL: "Message Failed"})
		return
	}

	if err := establishSession(w, user.UserID); err != nil {
		log.Error().Err(err).Msg("login: failed to establish session")
		httpx.WriteJSON(w, http.StatusOK, httpx.Envelope{Message: "Login Failed", URL: "Message Failed"})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, httpx.Envelope{Message: "Login Successful", URL: "hub"})
}

func SignupHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FName string `json:"fname"`
		LName string `json:"lname"`
		User  string `json:"user"`
		Pass  string `json:"pass"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid Request Format", http.StatusBadRequest)
		return
	}

	if req.FName == "" || req.LName == "" || req.User == "" || req.Pass == "" {
		httpx.NOK(w, "Signup Failed: Failed to fill required fields")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Pass), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "Server error hashing password", http.StatusInternalServerError)
		return
	}

	// The ID is generated here, so one insert is enough; no re-query and no
	// race window between insert and lookup.
	user := User{
		UserID:         uuid.NewString(),
		Username:       req.User,
		HashedPassword: string(hashed),
		FName:          req.FName,
		LName:          req.LName,
		// The username doubles as the contact email shown in search results.
		Email: req.User,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		httpx.NOK(w, "Signup Failed: Username or Password already in use")
		return
	}

	if err := establishSession(w, user.UserID); err != nil {
		log.Error().Err(err).Msg("signup: failed to establish session")
		httpx.NOK(w, "Signup Failed: Username or Password already in use")
		return
	}

	httpx.OK(w, "hub")
}

// LogoutHandler destroys the current session if there is one. Logging out
// without a session still succeeds.
func LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("session_id"); err == nil {
		db.DB.Where("session_id = ?", cookie.Value).Delete(&Session{})

		http.SetCookie(w, &http.Cookie{
			Name:   "session_id",
			Value:  "",
			MaxAge: -1,
			Path:   "/",
		})
	}

	httpx.WriteJSON(w, http.StatusOK, httpx.Envelope{Status: "OK", Message: "Log out successfully"})
}
