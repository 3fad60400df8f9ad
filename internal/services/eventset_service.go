package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "gatherly/internal/errors"
	"gatherly/internal/logger"
	"gatherly/internal/models"
)

// eventSetService computes the exact set of event IDs a report may
// aggregate: events the user marked attending, narrowed to those the user
// can see (group membership or invitation), then narrowed by the effective
// configuration's group and date scope.
type eventSetService struct {
	db    *gorm.DB
	rsvps RSVPServicer
}

// NewEventSetService creates a new EventSetServicer.
func NewEventSetService(db *gorm.DB, rsvps RSVPServicer) EventSetServicer {
	return &eventSetService{db: db, rsvps: rsvps}
}

// BuildEventSet resolves the eligible event set for the given user under
// the given effective configuration. The user is the identity whose access
// rights apply; for shared views that is the sharer, not the viewer.
func (s *eventSetService) BuildEventSet(userID uint, cfg *EffectiveConfig) ([]uint, error) {
	attended, err := s.rsvps.AttendingEventIDs(userID)
	if err != nil {
		return nil, err
	}
	// Nothing attended means nothing to aggregate; skip all further queries.
	if len(attended) == 0 {
		return []uint{}, nil
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// A group filter is only honored when the user actually belongs to that
	// group. Anything else silently widens back to all groups.
	groupID := cfg.GroupID
	if groupID != nil {
		var memberCount int64
		err := s.db.Model(&models.GroupMember{}).
			Where("user_id = ? AND group_id = ?", userID, *groupID).
			Count(&memberCount).Error
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if memberCount == 0 {
			logger.Get().Warnw("group filter ignored: user is not a member",
				"user_id", userID, "group_id", *groupID)
			groupID = nil
		}
	}

	groupAccessible, err := s.groupAccessibleIDs(userID, attended, groupID)
	if err != nil {
		return nil, err
	}

	invitedAccessible, err := s.invitedAccessibleIDs(user.Email, attended, groupID)
	if err != nil {
		return nil, err
	}

	candidate := unionIDs(groupAccessible, invitedAccessible)
	if len(candidate) == 0 {
		return []uint{}, nil
	}

	return s.applyDateRange(candidate, cfg)
}

// groupAccessibleIDs returns the attended events whose node's group the
// user belongs to, optionally restricted to one group.
func (s *eventSetService) groupAccessibleIDs(userID uint, attended []uint, groupID *uint) ([]uint, error) {
	q := s.db.Model(&models.Event{}).
		Joins("JOIN nodes ON nodes.id = events.node_id AND nodes.deleted_at IS NULL").
		Joins("JOIN group_members ON group_members.group_id = nodes.group_id AND group_members.deleted_at IS NULL").
		Where("group_members.user_id = ?", userID).
		Where("events.id IN ?", attended)
	if groupID != nil {
		q = q.Where("nodes.group_id = ?", *groupID)
	}

	var ids []uint
	if err := q.Pluck("events.id", &ids).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return ids, nil
}

// invitedAccessibleIDs returns the attended events the user is invited to
// by email. An active group filter still applies: an invitation does not
// bypass the group scope, so the event's node must belong to that group.
func (s *eventSetService) invitedAccessibleIDs(email string, attended []uint, groupID *uint) ([]uint, error) {
	q := s.db.Model(&models.Event{}).
		Joins("JOIN invited_guests ON invited_guests.event_id = events.id AND invited_guests.deleted_at IS NULL").
		Where("invited_guests.email = ?", email).
		Where("events.id IN ?", attended)
	if groupID != nil {
		q = q.Joins("JOIN nodes ON nodes.id = events.node_id AND nodes.deleted_at IS NULL").
			Where("nodes.group_id = ?", *groupID)
	}

	var ids []uint
	if err := q.Pluck("events.id", &ids).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return ids, nil
}

// applyDateRange narrows the candidate set to the configured date window.
func (s *eventSetService) applyDateRange(candidate []uint, cfg *EffectiveConfig) ([]uint, error) {
	if cfg.StartDate == nil && cfg.EndDate == nil {
		return candidate, nil
	}

	q := s.db.Model(&models.Event{}).Where("id IN ?", candidate)
	if cfg.StartDate != nil {
		q = q.Where("date >= ?", *cfg.StartDate)
	}
	if cfg.EndDate != nil {
		q = q.Where("date <= ?", *cfg.EndDate)
	}

	var ids []uint
	if err := q.Pluck("id", &ids).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return ids, nil
}

// unionIDs merges two ID slices, dropping duplicates.
func unionIDs(a, b []uint) []uint {
	seen := make(map[uint]struct{}, len(a)+len(b))
	out := make([]uint, 0, len(a)+len(b))
	for _, ids := range [][]uint{a, b} {
		for _, id := range ids {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}
