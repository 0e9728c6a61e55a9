package handlers

import (
	"crypto/subtle"
	"html/template"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/reflink/giveaway/internal/config"
	"github.com/reflink/giveaway/internal/session"
)

// RequireAdmin is middleware: blocks dashboard routes unless logged in.
func RequireAdmin(s *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !s.Load(r).Admin {
				http.Redirect(w, r, "/admin?error=login_first", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GET /admin
func AdminLoginForm(t *template.Template, s *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := s.Load(r)
		if sess.Admin {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
		_ = s.Save(w, sess)

		render(w, t, "admin_login.tmpl", map[string]any{
			"Title": "Admin Login",
			"CSRF":  sess.CSRF,
			"Flash": MakeFlash(r, "", ""),
		})
	}
}

// POST /admin
func AdminLoginSubmit(s *session.Manager, cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), 400)
			return
		}
		sess := s.Load(r)
		if !sess.VerifyCSRF(r.FormValue("csrf_token")) {
			http.Redirect(w, r, "/admin?error=bad_token", http.StatusSeeOther)
			return
		}
		if !checkPassword(cfg, r.FormValue("password")) {
			http.Redirect(w, r, "/admin?error=bad_password", http.StatusSeeOther)
			return
		}

		sess.Admin = true
		_ = s.Save(w, sess)
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
	}
}

// POST /logout
func AdminLogout(s *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		sess := s.Load(r)
		if !sess.VerifyCSRF(r.FormValue("csrf_token")) {
			http.Redirect(w, r, "/admin?error=bad_token", http.StatusSeeOther)
			return
		}
		sess.Admin = false
		_ = s.Save(w, sess)
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
	}
}

func checkPassword(cfg *config.Config, pw string) bool {
	if cfg.AdminPasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(cfg.AdminPasswordHash), []byte(pw)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(pw), []byte(cfg.AdminPassword)) == 1
}
