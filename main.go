package main

import (
	_ "embed"
	"net/http"

	"github.com/ContactDesk/CD-Backend/internal/auth"
	"github.com/ContactDesk/CD-Backend/internal/config"
	"github.com/ContactDesk/CD-Backend/internal/contacts"
	"github.com/ContactDesk/CD-Backend/internal/db"
	"github.com/ContactDesk/CD-Backend/internal/events"
	"github.com/ContactDesk/CD-Backend/internal/logging"
	"github.com/ContactDesk/CD-Backend/internal/middleware"
	"github.com/ContactDesk/CD-Backend/internal/profile"
	"github.com/ContactDesk/CD-Backend/internal/views"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

//go:embed static/index.html
var indexPage []byte

func RootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexPage)
}

func main() {
	_ = godotenv.Load(".env.local")

	cfg := config.Load()
	log.Logger = logging.New(cfg.Env)

	db.Connect(cfg.DatabaseURL)

	if err := views.Init(); err != nil {
		log.Fatal().Err(err).Msg("Failed to compile templates")
	}

	auth.Init(cfg.SessionTTL)
	profile.Init()
	contacts.Init()
	events.Init()

	r := chi.NewRouter()
	r.Use(middleware.RequestLogger(log.Logger))
	r.Use(middleware.CORSMiddleware)

	r.Get("/", RootHandler)
	auth.RegisterRoutes(r)
	profile.RegisterRoutes(r, cfg.SessionTTL)
	contacts.RegisterRoutes(r, cfg.SessionTTL)
	events.RegisterRoutes(r)

	log.Info().Str("port", cfg.Port).Msg("Server listening")
	if err := http.ListenAndServe("0.0.0.0:"+cfg.Port, r); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}
