// Package linkgen produces the short tokens behind shareable giveaway links.
package linkgen

import (
	"math/big"
	"strings"

	"github.com/google/uuid"
)

// Alphabet without 0/O/1/I/l so tokens survive being read aloud or
// hand-copied from a WhatsApp message.
const alphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// TokenLen is the fixed token length. 57^8 values; collisions are left to
// the store's unique constraint on link, not re-checked here.
const TokenLen = 8

// NewToken returns a fresh 8-character URL-safe token.
func NewToken() string {
	u := uuid.New()
	n := new(big.Int).SetBytes(u[:])
	base := big.NewInt(int64(len(alphabet)))
	mod := new(big.Int)

	b := make([]byte, TokenLen)
	for i := range b {
		n.DivMod(n, base, mod)
		b[i] = alphabet[mod.Int64()]
	}
	return string(b)
}

// Compose joins the request's base URL and a token into the full shareable
// link, the form stored on the registrant row.
func Compose(baseURL, token string) string {
	return strings.TrimRight(baseURL, "/") + "/" + token
}
