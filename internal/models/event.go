package models

import "time"

// Event represents a calendar event. NodeID is nullable: an event without a
// node belongs to no group and is reachable only through guest invitations.
type Event struct {
	Base
	Title               string    `gorm:"size:120;not null" json:"title"`
	Date                time.Time `gorm:"not null;index" json:"date"`
	Location            string    `gorm:"size:120" json:"location"`
	LocationCoordinates string    `gorm:"size:120" json:"location_coordinates"`
	Description         string    `gorm:"size:240" json:"description"`
	ImageURL            string    `gorm:"size:255" json:"image_url"`

	// CostDisplay is the user-facing string; CostValue is the numeric cost
	// used by spending reports and may be absent.
	CostDisplay string   `gorm:"size:50" json:"cost_display"`
	CostValue   *float64 `json:"cost_value,omitempty"`
	IsCostSplit bool     `gorm:"default:false;not null" json:"is_cost_split"`

	NodeID    *uint `gorm:"index" json:"node_id,omitempty"`
	CreatorID *uint `gorm:"index" json:"creator_id,omitempty"`

	AllowOthersEditTitle   bool `gorm:"default:false;not null" json:"allow_others_edit_title"`
	AllowOthersEditDetails bool `gorm:"default:false;not null" json:"allow_others_edit_details"`

	Node      *Node          `gorm:"foreignKey:NodeID" json:"node,omitempty"`
	Creator   *User          `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Attendees []EventRSVP    `gorm:"foreignKey:EventID" json:"attendees,omitempty"`
	Guests    []InvitedGuest `gorm:"foreignKey:EventID" json:"guests,omitempty"`
}
