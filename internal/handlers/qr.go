package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/reflink/giveaway/internal/db"
	"github.com/reflink/giveaway/internal/linkgen"
	"github.com/reflink/giveaway/internal/models"
)

// GET /qr/{token}.png
func QR(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if token == "" {
		http.NotFound(w, r)
		return
	}

	var reg models.Registrant
	link := linkgen.Compose(baseURL(r), token)
	if err := db.Conn().Where("link = ?", link).First(&reg).Error; err != nil {
		http.NotFound(w, r)
		return
	}

	png, err := qrcode.Encode(reg.Link, qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "failed to generate qr", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
