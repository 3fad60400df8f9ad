package models

// Group represents a planning group. OwnerID is the authoritative owner
// reference; membership rows carry no ownership flag of their own.
type Group struct {
	Base
	Name      string `gorm:"size:100;not null" json:"name"`
	About     string `gorm:"size:255" json:"about"`
	AvatarURL string `gorm:"size:255" json:"avatar_url"`
	OwnerID   uint   `gorm:"not null;index" json:"owner_id"`

	AllowMemberEditName        bool `gorm:"default:false;not null" json:"allow_member_edit_name"`
	AllowMemberEditDescription bool `gorm:"default:false;not null" json:"allow_member_edit_description"`
	AllowMemberManageMembers   bool `gorm:"default:false;not null" json:"allow_member_manage_members"`

	Owner   User          `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Members []GroupMember `gorm:"foreignKey:GroupID" json:"members,omitempty"`
	Nodes   []Node        `gorm:"foreignKey:GroupID" json:"nodes,omitempty"`
}

// GroupMember links a user to a group. One row per (user, group) pair.
type GroupMember struct {
	Base
	UserID  uint `gorm:"not null;uniqueIndex:idx_group_member_user_group" json:"user_id"`
	GroupID uint `gorm:"not null;uniqueIndex:idx_group_member_user_group" json:"group_id"`

	User  User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Group Group `gorm:"foreignKey:GroupID" json:"group,omitempty"`
}
