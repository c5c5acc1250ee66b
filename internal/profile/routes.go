package profile

import (
	"time"

	"github.com/ContactDesk/CD-Backend/internal/auth"
	"github.com/ContactDesk/CD-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, sessionTTL time.Duration) {
	sessionFetcher := auth.SessionInfo{}

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(sessionFetcher, sessionTTL))
		r.Get("/hub", HubHandler)
		r.Post("/profile", ProfileHandler)
		r.Post("/prof_address", AddAddressHandler)
		r.Post("/prof_phones", AddPhoneHandler)
		r.Post("/prof_bio", EditBioHandler)
	})
}
