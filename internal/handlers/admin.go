package handlers

import (
	"html/template"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/reflink/giveaway/internal/db"
	"github.com/reflink/giveaway/internal/models"
	"github.com/reflink/giveaway/internal/session"
)

// GET /dashboard
func Dashboard(t *template.Template, s *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := s.Load(r)
		_ = s.Save(w, sess)

		var regs []models.Registrant
		if err := db.Conn().Order("id asc").Find(&regs).Error; err != nil {
			http.Error(w, "db error", 500)
			return
		}

		render(w, t, "dashboard.tmpl", map[string]any{
			"Title":       "Admin Dashboard",
			"Registrants": regs,
			"CSRF":        sess.CSRF,
			"Flash":       MakeFlash(r, "", ""),
		})
	}
}

// POST /delete_user/{id}
func DeleteUser(s *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		if !s.Load(r).VerifyCSRF(r.FormValue("csrf_token")) {
			http.Redirect(w, r, "/dashboard?error=bad_token", http.StatusSeeOther)
			return
		}

		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil || id <= 0 {
			http.Redirect(w, r, "/dashboard?error=not_found", http.StatusSeeOther)
			return
		}

		res := db.Conn().Delete(&models.Registrant{}, id)
		if res.Error != nil {
			http.Error(w, "db error", 500)
			return
		}
		if res.RowsAffected == 0 {
			http.Redirect(w, r, "/dashboard?error=not_found", http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/dashboard?ok=deleted", http.StatusSeeOther)
	}
}

// POST /clear_database
func ClearDatabase(s *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		if !s.Load(r).VerifyCSRF(r.FormValue("csrf_token")) {
			http.Redirect(w, r, "/dashboard?error=bad_token", http.StatusSeeOther)
			return
		}

		if err := db.Conn().Where("1 = 1").Delete(&models.Registrant{}).Error; err != nil {
			http.Error(w, "db error", 500)
			return
		}
		http.Redirect(w, r, "/dashboard?ok=cleared", http.StatusSeeOther)
	}
}
