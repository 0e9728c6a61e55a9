package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/reflink/giveaway/internal/services"
	"github.com/reflink/giveaway/internal/session"
)

// GET /{token}
//
// Counts the view and remembers the token in the session so a later
// registration credits the link's owner. Last click wins: a newer visit
// overwrites any earlier pending token.
func Visit(s *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := chi.URLParam(r, "token")

		_, err := services.RecordVisit(baseURL(r), token)
		if errors.Is(err, services.ErrLinkNotFound) {
			http.NotFound(w, r)
			return
		}
		if err != nil {
			http.Error(w, "db error", 500)
			return
		}

		sess := s.Load(r)
		sess.ReferralToken = token
		_ = s.Save(w, sess)

		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}
