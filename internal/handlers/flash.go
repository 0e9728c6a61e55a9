package handlers

import (
	"net/http"
	"strings"
)

type Flash struct {
	Kind string // "ok" or "error"
	Text string
}

var okText = map[string]string{
	"deleted": "Registrant deleted.",
	"cleared": "Database cleared.",
}

var errText = map[string]string{
	"required":     "All fields are required!",
	"bad_phone":    "Phone number must be 11-12 digits!",
	"bad_token":    "Security token invalid. Please try again.",
	"bad_password": "Invalid password!",
	"login_first":  "Please login first!",
	"not_found":    "Registrant not found.",
	"retry":        "Something went wrong. Please try again.",
}

// MakeFlash builds a Flash from ?ok= / ?error= query keys, falling back to
// explicit strings from the handler.
func MakeFlash(r *http.Request, errStr, msgStr string) *Flash {
	q := r.URL.Query()

	if raw := strings.TrimSpace(q.Get("error")); raw != "" {
		if t, ok := errText[strings.ToLower(raw)]; ok {
			return &Flash{Kind: "error", Text: t}
		}
		return &Flash{Kind: "error", Text: raw}
	}
	if raw := strings.TrimSpace(q.Get("ok")); raw != "" {
		if t, ok := okText[strings.ToLower(raw)]; ok {
			return &Flash{Kind: "ok", Text: t}
		}
		return &Flash{Kind: "ok", Text: raw}
	}

	if errStr != "" {
		return &Flash{Kind: "error", Text: errStr}
	}
	if msgStr != "" {
		return &Flash{Kind: "ok", Text: msgStr}
	}
	return nil
}
