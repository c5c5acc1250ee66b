// Package events serves the placeholder events page. It is not wired to
// persistence yet; every request gets the same sample payload.
package events

import (
	_ "embed"
	"log"
	"net/http"

	"github.com/ContactDesk/CD-Backend/internal/httpx"
	"github.com/ContactDesk/CD-Backend/internal/views"
	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-yaml"
)

//go:embed sample_events.yaml
var sampleYAML []byte

type eventItem struct {
	EventName string `yaml:"eventname"`
	FromTime  string `yaml:"fromtime"`
	EndTime   string `yaml:"endtime"`
	Location  string `yaml:"location"`
}

type eventsData struct {
	Name   string      `yaml:"name"`
	Events []eventItem `yaml:"events"`
}

var sample eventsData

func Init() {
	if err := yaml.Unmarshal(sampleYAML, &sample); err != nil {
		log.Fatal("Failed to parse sample events: ", err)
	}
}

func EventsHandler(w http.ResponseWriter, r *http.Request) {
	layout, err := views.Render("events.tmpl", sample)
	if err != nil {
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, httpx.Page{Layout: layout})
}

func RegisterRoutes(r chi.Router) {
	r.Post("/events", EventsHandler)
}
