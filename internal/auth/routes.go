package auth

import (
	"time"

	"github.com/ContactDesk/CD-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"
)

// RegisterRoutes mounts the credential routes on the shared router. Login and
// signup sit behind a per-IP limiter to slow down credential guessing.
func RegisterRoutes(r chi.Router) {
	limited := middleware.RateLimit(rate.Every(time.Second), 20)

	r.With(limited).Post("/login", LoginHandler)
	r.With(limited).Post("/signup", SignupHandler)
	r.Post("/logout", LogoutHandler)
}
