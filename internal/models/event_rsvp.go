package models

import "time"

// RSVPStatus represents a user's attendance intent for an event.
type RSVPStatus string

const (
	RSVPStatusAttending RSVPStatus = "attending"
	RSVPStatusMaybe     RSVPStatus = "maybe"
	RSVPStatusDeclined  RSVPStatus = "declined"
)

// Valid reports whether the status is one of the three known values.
func (s RSVPStatus) Valid() bool {
	switch s {
	case RSVPStatusAttending, RSVPStatusMaybe, RSVPStatusDeclined:
		return true
	}
	return false
}

// EventRSVP records attendance intent. One row per (user, event) pair;
// no row means the user has not responded. Only "attending" rows ever
// count toward analytics.
type EventRSVP struct {
	Base
	UserID      uint       `gorm:"not null;uniqueIndex:idx_rsvp_user_event" json:"user_id"`
	EventID     uint       `gorm:"not null;uniqueIndex:idx_rsvp_user_event" json:"event_id"`
	Status      RSVPStatus `gorm:"size:50;not null" json:"status"`
	RespondedAt time.Time  `gorm:"not null" json:"responded_at"`

	User  User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Event Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
}
