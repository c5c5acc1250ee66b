package contacts

import (
	"time"

	"github.com/ContactDesk/CD-Backend/internal/auth"
	"github.com/ContactDesk/CD-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, sessionTTL time.Duration) {
	sessionFetcher := auth.SessionInfo{}

	// Search is open: the client uses it before a contact exists.
	r.Post("/cont_sendKeyword", SearchHandler)

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(sessionFetcher, sessionTTL))
		r.Post("/contacts", ListHandler)
		r.Post("/cont_addcontacts", AddContactHandler)
		r.Post("/cont_addaddress", AddContactAddressHandler)
		r.Post("/cont_addphone", AddContactPhoneHandler)
		r.Post("/cont_addcontactswithaccount", AddWithAccountHandler)
	})
}
