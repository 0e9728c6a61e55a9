package handlers

import (
	"errors"
	"html/template"
	"net/http"
	"path"

	"github.com/reflink/giveaway/internal/services"
	"github.com/reflink/giveaway/internal/session"
)

// GET /
func Home(t *template.Template, s *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := s.Load(r)
		// Persist the session before rendering so the form's CSRF token
		// matches the cookie on submit.
		_ = s.Save(w, sess)

		render(w, t, "home.tmpl", map[string]any{
			"Title": "Join the Giveaway",
			"CSRF":  sess.CSRF,
			"Flash": MakeFlash(r, "", ""),
		})
	}
}

// POST /
func RegisterSubmit(t *template.Template, s *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), 400)
			return
		}
		sess := s.Load(r)
		if !sess.VerifyCSRF(r.FormValue("csrf_token")) {
			http.Redirect(w, r, "/?error=bad_token", http.StatusSeeOther)
			return
		}

		res, err := services.Register(services.RegisterInput{
			Name:          r.FormValue("name"),
			Email:         r.FormValue("email"),
			Phone:         r.FormValue("phone"),
			BaseURL:       baseURL(r),
			ReferralToken: sess.ReferralToken,
		})
		switch {
		case errors.Is(err, services.ErrFieldsRequired):
			http.Redirect(w, r, "/?error=required", http.StatusSeeOther)
			return
		case errors.Is(err, services.ErrInvalidPhone):
			http.Redirect(w, r, "/?error=bad_phone", http.StatusSeeOther)
			return
		case err != nil:
			http.Redirect(w, r, "/?error=retry", http.StatusSeeOther)
			return
		}

		// The pending referral is consumed on the new-registrant path only;
		// duplicate submissions leave it intact and credit nobody.
		if !res.Existing && sess.ReferralToken != "" {
			sess.ReferralToken = ""
			_ = s.Save(w, sess)
		}

		token := path.Base(res.Registrant.Link)
		render(w, t, "link.tmpl", map[string]any{
			"Title":    "Thank You",
			"Link":     res.Registrant.Link,
			"QR":       "/qr/" + token + ".png",
			"Existing": res.Existing,
		})
	}
}
