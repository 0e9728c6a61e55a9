// Package session carries per-browser state in a signed cookie: the pending
// referral token, the admin flag, and the anti-forgery token.
package session

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const CookieName = "giveaway_session"

// TTL bounds both the cookie and the signature validity.
const TTL = 7 * 24 * time.Hour

var ErrInvalidSession = errors.New("invalid session")

// Session is the full per-browser state. Zero value plus a CSRF token is an
// anonymous session.
type Session struct {
	ReferralToken string // pending referral, set by link visits, consumed by registration
	Admin         bool
	CSRF          string
}

type claims struct {
	Ref   string `json:"ref,omitempty"`
	Admin bool   `json:"adm,omitempty"`
	CSRF  string `json:"csrf"`
	jwt.RegisteredClaims
}

// Manager signs and verifies session cookies with a single HMAC secret.
type Manager struct {
	secret []byte
}

func NewManager(secret string) *Manager {
	return &Manager{secret: []byte(secret)}
}

// Load returns the session carried by the request, or a fresh anonymous one
// when the cookie is missing, expired, or fails signature verification.
func (m *Manager) Load(r *http.Request) *Session {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return m.fresh()
	}
	tok, err := jwt.ParseWithClaims(c.Value, &claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSession
		}
		return m.secret, nil
	})
	if err != nil || !tok.Valid {
		return m.fresh()
	}
	cl, ok := tok.Claims.(*claims)
	if !ok {
		return m.fresh()
	}
	return &Session{ReferralToken: cl.Ref, Admin: cl.Admin, CSRF: cl.CSRF}
}

func (m *Manager) fresh() *Session {
	return &Session{CSRF: uuid.NewString()}
}

// Save signs the session and writes it back as the session cookie.
func (m *Manager) Save(w http.ResponseWriter, s *Session) error {
	now := time.Now()
	cl := claims{
		Ref:   s.ReferralToken,
		Admin: s.Admin,
		CSRF:  s.CSRF,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TTL)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, cl).SignedString(m.secret)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  now.Add(TTL),
	})
	return nil
}

// VerifyCSRF reports whether a submitted form token matches this session.
func (s *Session) VerifyCSRF(formToken string) bool {
	return formToken != "" &&
		subtle.ConstantTimeCompare([]byte(formToken), []byte(s.CSRF)) == 1
}
