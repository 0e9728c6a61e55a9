package models

import "time"

// Registrant is the only persisted entity: one row per giveaway signup.
// Email, phone and the generated link are each globally unique; the store
// constraints (not the application checks) are the authority under
// concurrent inserts.
type Registrant struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Name  string `gorm:"size:100;not null"`
	Email string `gorm:"size:100;uniqueIndex;not null"`
	Phone string `gorm:"size:15;uniqueIndex;not null"`

	// Full shareable URL, e.g. https://host/Ab3kX9qT. Derived, never
	// user-supplied.
	Link string `gorm:"size:200;uniqueIndex;not null"`

	Views           int `gorm:"not null;default:0"` // link visits
	ReferralCredits int `gorm:"not null;default:0"` // registrations attributed to this link
}
