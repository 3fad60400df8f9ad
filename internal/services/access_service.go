package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "gatherly/internal/errors"
	"gatherly/internal/models"
)

// accessService resolves event visibility. Access is granted through
// exactly two paths: membership in the event's group, or a guest invitation
// matching the user's email.
type accessService struct {
	db *gorm.DB
}

// NewAccessService creates a new AccessServicer.
func NewAccessService(db *gorm.DB) AccessServicer {
	return &accessService{db: db}
}

// Authorize decides whether the user may see the event and why. A missing
// event or user is an error; a denial is a normal negative decision.
func (s *accessService) Authorize(userID, eventID uint) (*AccessDecision, error) {
	var event models.Event
	if err := s.db.First(&event, eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// Group path only applies when the event hangs off a node.
	if event.NodeID != nil {
		var node models.Node
		err := s.db.First(&node, *event.NodeID).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err == nil {
			var count int64
			err := s.db.Model(&models.GroupMember{}).
				Where("user_id = ? AND group_id = ?", userID, node.GroupID).
				Count(&count).Error
			if err != nil {
				return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			if count > 0 {
				return &AccessDecision{Allowed: true, Reason: AccessGroupMember}, nil
			}
		}
	}

	var invitations int64
	err := s.db.Model(&models.InvitedGuest{}).
		Where("event_id = ? AND email = ?", event.ID, user.Email).
		Count(&invitations).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if invitations > 0 {
		return &AccessDecision{Allowed: true, Reason: AccessInvitedGuest}, nil
	}

	return &AccessDecision{Allowed: false, Reason: AccessDenied}, nil
}
