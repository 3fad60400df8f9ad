package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "gatherly/internal/errors"
	"gatherly/internal/models"
	"gatherly/internal/pagination"
)

// groupService handles group and node management.
type groupService struct {
	db *gorm.DB
}

// NewGroupService creates a new GroupServicer.
func NewGroupService(db *gorm.DB) GroupServicer {
	return &groupService{db: db}
}

// CreateGroup creates a group owned by the caller, who also becomes its
// first member.
func (s *groupService) CreateGroup(ownerID uint, name, about, avatarURL string) (*models.Group, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "group name is required")
	}

	group := &models.Group{
		Name:      name,
		About:     about,
		AvatarURL: avatarURL,
		OwnerID:   ownerID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(group).Error; err != nil {
			return err
		}
		member := &models.GroupMember{UserID: ownerID, GroupID: group.ID}
		return tx.Create(member).Error
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return group, nil
}

// GetGroupByID returns a group with its nodes preloaded.
func (s *groupService) GetGroupByID(groupID uint) (*models.Group, error) {
	var group models.Group
	if err := s.db.Preload("Nodes").First(&group, groupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGroupNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &group, nil
}

// ListUserGroups returns a paginated list of the groups the user belongs to.
func (s *groupService) ListUserGroups(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Group], error) {
	page.Defaults()

	base := s.db.Model(&models.Group{}).
		Joins("JOIN group_members ON group_members.group_id = groups.id").
		Where("group_members.user_id = ? AND group_members.deleted_at IS NULL", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var groups []models.Group
	if err := base.Scopes(pagination.Paginate(page)).Find(&groups).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(groups, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// AddMember adds a user to a group. Only the owner may add members unless
// the group allows members to manage membership.
func (s *groupService) AddMember(actorID, groupID, userID uint) (*models.GroupMember, error) {
	var group models.Group
	if err := s.db.First(&group, groupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGroupNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if group.OwnerID != actorID {
		actorIsMember, err := s.IsMember(actorID, groupID)
		if err != nil {
			return nil, err
		}
		if !actorIsMember || !group.AllowMemberManageMembers {
			return nil, apperrors.ErrForbidden
		}
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	existing, err := s.IsMember(userID, groupID)
	if err != nil {
		return nil, err
	}
	if existing {
		return nil, apperrors.ErrAlreadyMember
	}

	member := &models.GroupMember{UserID: userID, GroupID: groupID}
	if err := s.db.Create(member).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return member, nil
}

// IsMember reports whether the user holds a membership record for the group.
func (s *groupService) IsMember(userID, groupID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.GroupMember{}).
		Where("user_id = ? AND group_id = ?", userID, groupID).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return count > 0, nil
}

// CreateNode adds a category node to a group. Any member may create nodes.
func (s *groupService) CreateNode(actorID, groupID uint, label string, x, y float64) (*models.Node, error) {
	isMember, err := s.IsMember(actorID, groupID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, apperrors.ErrNotGroupMember
	}

	if label == "" {
		label = "Untitled Node"
	}

	node := &models.Node{Label: label, X: x, Y: y, GroupID: groupID}
	if err := s.db.Create(node).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return node, nil
}

// UpdateNode updates a node's label or position.
func (s *groupService) UpdateNode(actorID, nodeID uint, label *string, x, y *float64) (*models.Node, error) {
	node, err := s.getMemberNode(actorID, nodeID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if label != nil && *label != "" {
		updates["label"] = *label
	}
	if x != nil {
		updates["x"] = *x
	}
	if y != nil {
		updates["y"] = *y
	}

	if len(updates) > 0 {
		if err := s.db.Model(node).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return node, nil
}

// DeleteNode removes a node and unassigns its events. Events survive with
// node_id cleared; they remain reachable through guest invitations.
func (s *groupService) DeleteNode(actorID, nodeID uint) error {
	node, err := s.getMemberNode(actorID, nodeID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Event{}).
			Where("node_id = ?", node.ID).
			Update("node_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(node).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// getMemberNode loads a node and verifies the actor belongs to its group.
func (s *groupService) getMemberNode(actorID, nodeID uint) (*models.Node, error) {
	var node models.Node
	if err := s.db.First(&node, nodeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNodeNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	isMember, err := s.IsMember(actorID, node.GroupID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, apperrors.ErrNotGroupMember
	}
	return &node, nil
}
