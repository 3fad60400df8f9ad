package models

import "time"

// User represents the user model in the database. Email doubles as the
// matching key for event guest invitations.
type User struct {
	Base
	Username     string     `gorm:"size:64;uniqueIndex;not null" json:"username"`
	Email        string     `gorm:"size:120;uniqueIndex;not null" json:"email"`
	Password     string     `gorm:"not null" json:"-"`
	AboutMe      string     `gorm:"size:140" json:"about_me"`
	IsActive     bool       `gorm:"default:true" json:"is_active"`
	LastActiveAt *time.Time `json:"last_active_at,omitempty"`

	Memberships   []GroupMember  `gorm:"foreignKey:UserID" json:"memberships,omitempty"`
	RSVPs         []EventRSVP    `gorm:"foreignKey:UserID" json:"rsvps,omitempty"`
	InsightPanels []InsightPanel `gorm:"foreignKey:UserID" json:"insight_panels,omitempty"`
}
