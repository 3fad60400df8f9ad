package models

// InvitedGuest grants event visibility to whichever account holds the
// invited email, independent of group membership. Rows are immutable once
// created; there is no update path.
type InvitedGuest struct {
	Base
	EventID uint   `gorm:"not null;index" json:"event_id"`
	Email   string `gorm:"size:120;not null;index" json:"email"`
	Name    string `gorm:"size:120" json:"name"`

	Event Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
}
