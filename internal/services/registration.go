package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/reflink/giveaway/internal/db"
	"github.com/reflink/giveaway/internal/linkgen"
	"github.com/reflink/giveaway/internal/models"
)

var (
	ErrFieldsRequired = errors.New("all fields are required")
	ErrInvalidPhone   = errors.New("phone must be 11 or 12 digits")
	ErrLinkNotFound   = errors.New("link not found")
	// ErrRetry means repeated unique-constraint collisions; the caller should
	// ask the visitor to resubmit.
	ErrRetry = errors.New("could not complete registration")
)

// createAttempts bounds link-collision retries. Two collisions in a row over
// a 57^8 space means something else is wrong.
const createAttempts = 3

type RegisterInput struct {
	Name  string
	Email string
	Phone string

	// BaseURL is the scheme+host the request arrived on; links are
	// environment-relative, never hardcoded.
	BaseURL string
	// ReferralToken is the session's pending referral, if any.
	ReferralToken string
}

type RegisterResult struct {
	Registrant models.Registrant
	// Existing is true when the email or phone was already registered; the
	// returned registrant is that earlier row, untouched.
	Existing bool
}

// Register validates a submission, returns the existing registrant when the
// email or phone is already known, and otherwise creates a new row and
// credits the pending referrer. Uniqueness races are recovered by
// re-querying; link collisions by regenerating the token.
func Register(in RegisterInput) (*RegisterResult, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	phone := strings.TrimSpace(in.Phone)

	if name == "" || email == "" || phone == "" {
		return nil, ErrFieldsRequired
	}
	if !ValidPhone(phone) {
		return nil, ErrInvalidPhone
	}

	for attempt := 0; attempt < createAttempts; attempt++ {
		var existing models.Registrant
		err := db.Conn().
			Where("email = ? OR phone = ?", email, phone).
			First(&existing).Error
		if err == nil {
			return &RegisterResult{Registrant: existing, Existing: true}, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		reg := models.Registrant{
			Name:  name,
			Email: email,
			Phone: phone,
			Link:  linkgen.Compose(in.BaseURL, linkgen.NewToken()),
		}
		err = db.Conn().Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&reg).Error; err != nil {
				return err
			}
			if in.ReferralToken != "" {
				return creditReferrer(tx, in.BaseURL, in.ReferralToken)
			}
			return nil
		})
		if err == nil {
			return &RegisterResult{Registrant: reg}, nil
		}
		if isUniqueViolation(err) {
			// Either a concurrent duplicate submission (the re-query above
			// will return it) or a link collision (a fresh token is
			// generated next pass).
			continue
		}
		return nil, err
	}
	return nil, ErrRetry
}

// creditReferrer bumps referral_credits on the registrant owning the visited
// link. A stale or foreign token credits nobody and is not an error.
func creditReferrer(tx *gorm.DB, baseURL, token string) error {
	var referrer models.Registrant
	err := tx.Where("link = ?", linkgen.Compose(baseURL, token)).First(&referrer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return tx.Model(&referrer).
		UpdateColumn("referral_credits", gorm.Expr("referral_credits + 1")).Error
}

// RecordVisit resolves a token to its registrant and counts the view. The
// caller stores the token in the session afterwards.
func RecordVisit(baseURL, token string) (*models.Registrant, error) {
	var reg models.Registrant
	err := db.Conn().Where("link = ?", linkgen.Compose(baseURL, token)).First(&reg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrLinkNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := db.Conn().Model(&reg).
		UpdateColumn("views", gorm.Expr("views + 1")).Error; err != nil {
		return nil, err
	}
	reg.Views++
	return &reg, nil
}

// ValidPhone accepts exactly 11 or 12 characters, all digits. No leading
// '+', no separators.
func ValidPhone(p string) bool {
	if len(p) != 11 && len(p) != 12 {
		return false
	}
	for _, r := range p {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	le := strings.ToLower(err.Error())
	return strings.Contains(le, "unique") || strings.Contains(le, "duplicate key")
}
