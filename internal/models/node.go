package models

// Node is a category within a group's planning board. Events attach to
// nodes, and node labels are the category dimension for spending reports.
type Node struct {
	Base
	Label   string  `gorm:"size:100;not null" json:"label"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	GroupID uint    `gorm:"not null;index" json:"group_id"`

	Group  Group   `gorm:"foreignKey:GroupID" json:"group,omitempty"`
	Events []Event `gorm:"foreignKey:NodeID" json:"events,omitempty"`
}
