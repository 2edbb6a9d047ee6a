package models

import "time"

// ClickType is the contact channel a viewer engaged with.
type ClickType string

const (
	ClickEmail   ClickType = "email"
	ClickPhone   ClickType = "phone"
	ClickWebsite ClickType = "website"
)

// Valid reports whether the click type is one of the known channels.
func (t ClickType) Valid() bool {
	switch t {
	case ClickEmail, ClickPhone, ClickWebsite:
		return true
	}
	return false
}

// ContactClick records that a session engaged with a listing's contact info.
// At most one row exists per (session, listing) pair regardless of channel:
// the question answered is "did this viewer engage at all", not a per-channel
// counter.
type ContactClick struct {
	SessionID string    `json:"session_id"`
	ListingID string    `json:"listing_id"`
	ClickType ClickType `json:"click_type"`
	CreatedAt time.Time `json:"created_at"`
}
