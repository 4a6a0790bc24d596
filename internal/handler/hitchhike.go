package handler

import (
	"errors"
	"net/http"

	"github.com/hitchlog/backend/internal/domain"
)

type personResponse struct {
	Name       string `json:"name"`
	Occupation string `json:"occupation"`
}

type hitchhikeResponse struct {
	ID       int64           `json:"id"`
	Title    string          `json:"title"`
	Summary  string          `json:"summary"`
	Story    string          `json:"story"`
	From     string          `json:"from"`
	To       string          `json:"to"`
	Date     string          `json:"date"`
	Distance *int            `json:"distance"`
	Username string          `json:"username"`
	Person   *personResponse `json:"person"`
	Next     int64           `json:"next"`
	Prev     int64           `json:"prev"`
}

// GetHitchhike handles GET /hitchhikes/{id}.
// The response carries the ids of the neighbouring hitchhikes for paging.
func (s *Server) GetHitchhike(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	detail, err := s.hitchhikes.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFound(w, "hitchhike not found")
			return
		}
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, hitchhikeToResponse(detail))
}

func hitchhikeToResponse(d domain.HitchhikeDetail) hitchhikeResponse {
	h := d.Hitchhike
	resp := hitchhikeResponse{
		ID:       h.ID,
		Title:    h.Title,
		Summary:  h.String(),
		Story:    h.Story,
		From:     h.From,
		To:       h.To,
		Distance: h.Distance,
		Username: h.Username,
		Next:     d.Next,
		Prev:     d.Prev,
	}
	if h.Departure != nil {
		resp.Date = h.Departure.Format("02. Jan 2006")
	}
	if h.Person != nil {
		resp.Person = &personResponse{Name: h.Person.Name, Occupation: h.Person.Occupation}
	}
	return resp
}
