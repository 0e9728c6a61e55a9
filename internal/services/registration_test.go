package services

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/reflink/giveaway/internal/db"
	"github.com/reflink/giveaway/internal/models"
)

const testBase = "http://example.com"

func initDB(t *testing.T) {
	t.Helper()
	if err := db.Init(filepath.Join(t.TempDir(), "test.db")); err != nil {
		t.Fatalf("db init: %v", err)
	}
}

func register(t *testing.T, name, email, phone, refToken string) *RegisterResult {
	t.Helper()
	res, err := Register(RegisterInput{
		Name: name, Email: email, Phone: phone,
		BaseURL: testBase, ReferralToken: refToken,
	})
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	return res
}

func TestRegister_NewRegistrant(t *testing.T) {
	initDB(t)

	res := register(t, "Alice", "alice@example.com", "08123456789", "")
	if res.Existing {
		t.Fatal("fresh registration reported as existing")
	}
	reg := res.Registrant
	if reg.ID == 0 {
		t.Error("registrant has no id")
	}
	if !strings.HasPrefix(reg.Link, testBase+"/") {
		t.Errorf("link %q missing base url", reg.Link)
	}
	if len(strings.TrimPrefix(reg.Link, testBase+"/")) != 8 {
		t.Errorf("link %q token is not 8 characters", reg.Link)
	}
	if reg.Views != 0 || reg.ReferralCredits != 0 {
		t.Errorf("counters not zero: views=%d credits=%d", reg.Views, reg.ReferralCredits)
	}
}

func TestRegister_DuplicateEmailOrPhoneIsIdempotent(t *testing.T) {
	initDB(t)

	first := register(t, "Alice", "alice@example.com", "08123456789", "")

	// Same email, different phone.
	byEmail := register(t, "Alice Again", "alice@example.com", "08999999999", "")
	if !byEmail.Existing || byEmail.Registrant.Link != first.Registrant.Link {
		t.Errorf("same-email resubmission did not return the original link")
	}

	// Same phone, different email.
	byPhone := register(t, "Someone", "other@example.com", "08123456789", "")
	if !byPhone.Existing || byPhone.Registrant.Link != first.Registrant.Link {
		t.Errorf("same-phone resubmission did not return the original link")
	}

	var count int64
	db.Conn().Model(&models.Registrant{}).Count(&count)
	if count != 1 {
		t.Errorf("expected 1 row, got %d", count)
	}
}

func TestRegister_Validation(t *testing.T) {
	initDB(t)

	cases := []struct {
		name, email, phone string
		want               error
	}{
		{"", "a@b.c", "08123456789", ErrFieldsRequired},
		{"A", "", "08123456789", ErrFieldsRequired},
		{"A", "a@b.c", "", ErrFieldsRequired},
		{"  ", " ", "  ", ErrFieldsRequired},
		{"A", "a@b.c", "0812345678", ErrInvalidPhone},    // 10 digits
		{"A", "a@b.c", "0812345678901", ErrInvalidPhone}, // 13 digits
		{"A", "a@b.c", "08123a56789", ErrInvalidPhone},   // non-digit
		{"A", "a@b.c", "+8123456789", ErrInvalidPhone},   // leading +
	}
	for _, c := range cases {
		_, err := Register(RegisterInput{Name: c.name, Email: c.email, Phone: c.phone, BaseURL: testBase})
		if !errors.Is(err, c.want) {
			t.Errorf("Register(%q,%q,%q) err = %v, want %v", c.name, c.email, c.phone, err, c.want)
		}
	}

	var count int64
	db.Conn().Model(&models.Registrant{}).Count(&count)
	if count != 0 {
		t.Errorf("rejected submissions created %d rows", count)
	}
}

func TestRecordVisit_IncrementsViews(t *testing.T) {
	initDB(t)

	reg := register(t, "Alice", "alice@example.com", "08123456789", "").Registrant
	token := strings.TrimPrefix(reg.Link, testBase+"/")

	for want := 1; want <= 3; want++ {
		got, err := RecordVisit(testBase, token)
		if err != nil {
			t.Fatalf("visit %d: %v", want, err)
		}
		if got.Views != want {
			t.Errorf("after visit %d views = %d", want, got.Views)
		}
	}
}

func TestRecordVisit_UnknownToken(t *testing.T) {
	initDB(t)

	if _, err := RecordVisit(testBase, "nosuchtok"); !errors.Is(err, ErrLinkNotFound) {
		t.Errorf("expected ErrLinkNotFound, got %v", err)
	}
}

func TestRegister_CreditsReferrer(t *testing.T) {
	initDB(t)

	referrer := register(t, "Alice", "alice@example.com", "08123456789", "").Registrant
	token := strings.TrimPrefix(referrer.Link, testBase+"/")

	register(t, "Bob", "bob@example.com", "08111111111", token)

	var got models.Registrant
	db.Conn().First(&got, referrer.ID)
	if got.ReferralCredits != 1 {
		t.Errorf("referral credits = %d, want 1", got.ReferralCredits)
	}
}

func TestRegister_StaleReferralTokenCreditsNobody(t *testing.T) {
	initDB(t)

	res := register(t, "Bob", "bob@example.com", "08111111111", "gonetoken")
	if res.Existing {
		t.Fatal("registration unexpectedly reported existing")
	}

	var count int64
	db.Conn().Model(&models.Registrant{}).Where("referral_credits > 0").Count(&count)
	if count != 0 {
		t.Errorf("stale token credited %d registrants", count)
	}
}

func TestRegister_DuplicateDoesNotCredit(t *testing.T) {
	initDB(t)

	referrer := register(t, "Alice", "alice@example.com", "08123456789", "").Registrant
	token := strings.TrimPrefix(referrer.Link, testBase+"/")
	register(t, "Bob", "bob@example.com", "08111111111", "")

	// Bob resubmits while a referral is pending; no new row, no credit.
	res := register(t, "Bob", "bob@example.com", "08111111111", token)
	if !res.Existing {
		t.Fatal("resubmission created a new row")
	}

	var got models.Registrant
	db.Conn().First(&got, referrer.ID)
	if got.ReferralCredits != 0 {
		t.Errorf("duplicate submission credited the referrer: %d", got.ReferralCredits)
	}
}

func TestValidPhone(t *testing.T) {
	valid := []string{"08123456789", "081234567890"}
	invalid := []string{"", "0812345678", "0812345678901", "08123a56789", "+8123456789", "08123 45678"}

	for _, p := range valid {
		if !ValidPhone(p) {
			t.Errorf("ValidPhone(%q) = false, want true", p)
		}
	}
	for _, p := range invalid {
		if ValidPhone(p) {
			t.Errorf("ValidPhone(%q) = true, want false", p)
		}
	}
}
