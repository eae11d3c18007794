// internal/api/handlers/ediktes.go
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/scubbx/edikt-scraper/internal/repositories"
)

// EdiktHandler serves the derived read views of the store and the manual
// review workflow, the only writer of the reviewed flag.
type EdiktHandler struct {
	repo repositories.EdiktRepository
}

func NewEdiktHandler(repo repositories.EdiktRepository) *EdiktHandler {
	return &EdiktHandler{repo: repo}
}

func (h *EdiktHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/ediktes/latest", h.HandleLatest).Methods("GET")
	r.HandleFunc("/api/ediktes/nearby", h.HandleNearby).Methods("GET")
	r.HandleFunc("/api/ediktes/{id:[0-9]+}/review", h.HandleReview).Methods("POST")
	r.HandleFunc("/api/runs", h.HandleRuns).Methods("GET")
}

// HandleLatest returns the latest observation per link.
func (h *EdiktHandler) HandleLatest(w http.ResponseWriter, r *http.Request) {
	ediktes, err := h.repo.LatestPerLink(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, ediktes)
}

// HandleNearby returns geocoded ediktes within ?radius meters of ?lat,?lon.
func (h *EdiktHandler) HandleNearby(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lat, errLat := strconv.ParseFloat(q.Get("lat"), 64)
	lon, errLon := strconv.ParseFloat(q.Get("lon"), 64)
	if errLat != nil || errLon != nil {
		http.Error(w, "lat and lon query parameters are required", http.StatusBadRequest)
		return
	}
	radius := 10000.0
	if v := q.Get("radius"); v != "" {
		var err error
		if radius, err = strconv.ParseFloat(v, 64); err != nil || radius <= 0 {
			http.Error(w, "radius must be a positive number of meters", http.StatusBadRequest)
			return
		}
	}

	ediktes, err := h.repo.Nearby(r.Context(), lat, lon, radius)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, ediktes)
}

// HandleReview sets or clears the manual review flag of one stored edikt.
func (h *EdiktHandler) HandleReview(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var body struct {
		Reviewed bool `json:"reviewed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.repo.SetReviewed(r.Context(), id, body.Reviewed); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleRuns returns the scrape-run bookkeeping, newest first.
func (h *EdiktHandler) HandleRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := h.repo.Runs(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, runs)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
