// Package httpx holds the JSON response envelopes shared by every route.
package httpx

import (
	"encoding/json"
	"net/http"
)

// Envelope is the status/url/message body the client-side router expects
// from mutating and auth routes.
type Envelope struct {
	Status  string `json:"status,omitempty"`
	URL     string `json:"url,omitempty"`
	Message string `json:"message,omitempty"`
}

// Page carries a rendered HTML fragment plus the script and stylesheet the
// client loads alongside it.
type Page struct {
	Script string `json:"script"`
	Style  string `json:"style"`
	Layout string `json:"layout"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// OK reports a successful mutation and tells the client where to navigate.
func OK(w http.ResponseWriter, url string) {
	WriteJSON(w, http.StatusOK, Envelope{Status: "OK", URL: url})
}

// NOK reports a failed mutation. The message is optional; database errors
// are collapsed to a bare NOK and logged server-side instead.
func NOK(w http.ResponseWriter, message string) {
	WriteJSON(w, http.StatusOK, Envelope{Status: "NOK", Message: message})
}
