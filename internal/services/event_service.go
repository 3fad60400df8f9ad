package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "gatherly/internal/errors"
	"gatherly/internal/models"
)

// eventService handles event lifecycle and guest invitations.
type eventService struct {
	db     *gorm.DB
	access AccessServicer
	groups GroupServicer
}

// NewEventService creates a new EventServicer.
func NewEventService(db *gorm.DB, access AccessServicer, groups GroupServicer) EventServicer {
	return &eventService{db: db, access: access, groups: groups}
}

// CreateEvent creates an event inside a group. The creator must be a
// member, and the supplied node (if any) must belong to that group.
func (s *eventService) CreateEvent(creatorID, groupID uint, input CreateEventInput) (*models.Event, error) {
	isMember, err := s.groups.IsMember(creatorID, groupID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, apperrors.ErrNotGroupMember
	}

	if input.NodeID != nil {
		var node models.Node
		if err := s.db.First(&node, *input.NodeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrNodeNotFound
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if node.GroupID != groupID {
			return nil, apperrors.ErrNodeGroupMismatch
		}
	}

	title := input.Title
	if title == "" {
		title = "Untitled Event"
	}

	event := &models.Event{
		Title:               title,
		Date:                input.Date,
		Location:            input.Location,
		LocationCoordinates: input.LocationCoordinates,
		Description:         input.Description,
		ImageURL:            input.ImageURL,
		CostDisplay:         input.CostDisplay,
		CostValue:           input.CostValue,
		IsCostSplit:         input.IsCostSplit,
		NodeID:              input.NodeID,
		CreatorID:           &creatorID,
	}
	if err := s.db.Create(event).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return event, nil
}

// GetEvent returns an event together with the access decision that
// granted it. Denied access surfaces as a forbidden error.
func (s *eventService) GetEvent(userID, eventID uint) (*models.Event, *AccessDecision, error) {
	decision, err := s.access.Authorize(userID, eventID)
	if err != nil {
		return nil, nil, err
	}
	if !decision.Allowed {
		return nil, nil, apperrors.ErrEventNotAuthorized
	}

	var event models.Event
	if err := s.db.Preload("Node").First(&event, eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperrors.ErrEventNotFound
		}
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &event, decision, nil
}

// UpdateEvent applies partial updates. The creator and the group owner may
// change anything; other group members only what the event's edit flags
// allow.
func (s *eventService) UpdateEvent(userID, eventID uint, input UpdateEventInput) (*models.Event, error) {
	event, role, err := s.loadEventWithRole(userID, eventID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if input.Title != nil {
		if role == eventRoleMember && !event.AllowOthersEditTitle {
			return nil, apperrors.ErrForbidden
		}
		updates["title"] = *input.Title
	}

	detailUpdates := make(map[string]interface{})
	if input.Date != nil {
		detailUpdates["date"] = *input.Date
	}
	if input.Location != nil {
		detailUpdates["location"] = *input.Location
	}
	if input.LocationCoordinates != nil {
		detailUpdates["location_coordinates"] = *input.LocationCoordinates
	}
	if input.Description != nil {
		detailUpdates["description"] = *input.Description
	}
	if input.CostDisplay != nil {
		detailUpdates["cost_display"] = *input.CostDisplay
	}
	if input.CostValue != nil {
		detailUpdates["cost_value"] = *input.CostValue
	}
	if len(detailUpdates) > 0 {
		if role == eventRoleMember && !event.AllowOthersEditDetails {
			return nil, apperrors.ErrForbidden
		}
		for k, v := range detailUpdates {
			updates[k] = v
		}
	}

	if len(updates) > 0 {
		if err := s.db.Model(event).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return event, nil
}

// DeleteEvent removes an event and its RSVP and invitation rows. Only the
// creator or the group owner may delete.
func (s *eventService) DeleteEvent(userID, eventID uint) error {
	event, role, err := s.loadEventWithRole(userID, eventID)
	if err != nil {
		return err
	}
	if role == eventRoleMember {
		return apperrors.ErrForbidden
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("event_id = ?", event.ID).Delete(&models.EventRSVP{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("event_id = ?", event.ID).Delete(&models.InvitedGuest{}).Error; err != nil {
			return err
		}
		return tx.Delete(event).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// InviteGuest invites an email address to an event. Invitations are
// immutable; re-inviting the same email is a no-op returning the existing
// row.
func (s *eventService) InviteGuest(userID, eventID uint, email, name string) (*models.InvitedGuest, error) {
	if email == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "guest email is required")
	}
	email = strings.ToLower(email)

	if _, _, err := s.loadEventWithRole(userID, eventID); err != nil {
		return nil, err
	}

	var existing models.InvitedGuest
	err := s.db.Where("event_id = ? AND email = ?", eventID, email).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	guest := &models.InvitedGuest{EventID: eventID, Email: email, Name: name}
	if err := s.db.Create(guest).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return guest, nil
}

// ListGuests lists an event's invitations.
func (s *eventService) ListGuests(userID, eventID uint) ([]models.InvitedGuest, error) {
	if _, _, err := s.loadEventWithRole(userID, eventID); err != nil {
		return nil, err
	}

	var guests []models.InvitedGuest
	err := s.db.Where("event_id = ?", eventID).Order("created_at ASC").Find(&guests).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return guests, nil
}

type eventRole int

const (
	eventRoleMember eventRole = iota
	eventRoleCreator
	eventRoleGroupOwner
)

// loadEventWithRole loads an event and classifies the caller's standing
// toward it. Non-members of the event's group (and strangers to orphan
// events) are rejected outright.
func (s *eventService) loadEventWithRole(userID, eventID uint) (*models.Event, eventRole, error) {
	var event models.Event
	if err := s.db.First(&event, eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, apperrors.ErrEventNotFound
		}
		return nil, 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if event.CreatorID != nil && *event.CreatorID == userID {
		return &event, eventRoleCreator, nil
	}

	// Orphan events have no group to grant member standing through.
	if event.NodeID == nil {
		return nil, 0, apperrors.ErrForbidden
	}

	var node models.Node
	if err := s.db.First(&node, *event.NodeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, apperrors.ErrForbidden
		}
		return nil, 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var group models.Group
	if err := s.db.First(&group, node.GroupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, apperrors.ErrGroupNotFound
		}
		return nil, 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if group.OwnerID == userID {
		return &event, eventRoleGroupOwner, nil
	}

	isMember, err := s.groups.IsMember(userID, node.GroupID)
	if err != nil {
		return nil, 0, err
	}
	if !isMember {
		return nil, 0, apperrors.ErrForbidden
	}
	return &event, eventRoleMember, nil
}
