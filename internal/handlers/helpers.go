package handlers

import (
	"html/template"
	"net/http"
)

// baseURL reconstructs the scheme+host the request arrived on, so generated
// links match whatever environment is serving the form.
func baseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if p := r.Header.Get("X-Forwarded-Proto"); p != "" {
		scheme = p
	}
	return scheme + "://" + r.Host
}

func render(w http.ResponseWriter, t *template.Template, name string, data map[string]any) {
	if err := t.ExecuteTemplate(w, name, data); err != nil {
		http.Error(w, err.Error(), 500)
	}
}

func Health(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte("ok"))
}
