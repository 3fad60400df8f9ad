package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "gatherly/internal/errors"
	"gatherly/internal/models"
	"gatherly/internal/pagination"
)

// rsvpService is the attendance-intent ledger. It deliberately performs no
// authorization: callers hold a positive access decision before mutating.
type rsvpService struct {
	db *gorm.DB
}

// NewRSVPService creates a new RSVPServicer.
func NewRSVPService(db *gorm.DB) RSVPServicer {
	return &rsvpService{db: db}
}

// GetStatus returns the user's RSVP status for an event, or nil when the
// user has not responded.
func (s *rsvpService) GetStatus(userID, eventID uint) (*models.RSVPStatus, error) {
	var rsvp models.EventRSVP
	err := s.db.Where("user_id = ? AND event_id = ?", userID, eventID).First(&rsvp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &rsvp.Status, nil
}

// SetStatus upserts the user's RSVP. Setting the status it already holds is
// reported as unchanged and does not refresh the response timestamp.
func (s *rsvpService) SetStatus(userID, eventID uint, status models.RSVPStatus) (RSVPOutcome, error) {
	if !status.Valid() {
		return "", apperrors.ErrInvalidRSVPStatus
	}

	var outcome RSVPOutcome
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var rsvp models.EventRSVP
		err := tx.Where("user_id = ? AND event_id = ?", userID, eventID).First(&rsvp).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			rsvp = models.EventRSVP{
				UserID:      userID,
				EventID:     eventID,
				Status:      status,
				RespondedAt: time.Now().UTC(),
			}
			outcome = RSVPCreated
			return tx.Create(&rsvp).Error
		case err != nil:
			return err
		case rsvp.Status == status:
			outcome = RSVPUnchanged
			return nil
		default:
			outcome = RSVPUpdated
			return tx.Model(&rsvp).Updates(map[string]interface{}{
				"status":       status,
				"responded_at": time.Now().UTC(),
			}).Error
		}
	})
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return outcome, nil
}

// ClearStatus deletes the user's RSVP row. Clearing an absent row is not an
// error; it just reports that there was nothing to clear.
func (s *rsvpService) ClearStatus(userID, eventID uint) (RSVPOutcome, error) {
	res := s.db.Unscoped().
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Delete(&models.EventRSVP{})
	if res.Error != nil {
		return "", apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return RSVPNothingToClear, nil
	}
	return RSVPCleared, nil
}

// AttendingEventIDs returns the IDs of every event the user has marked
// attending. This is the sole attendance gate for analytics.
func (s *rsvpService) AttendingEventIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := s.db.Model(&models.EventRSVP{}).
		Where("user_id = ? AND status = ?", userID, models.RSVPStatusAttending).
		Pluck("event_id", &ids).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return ids, nil
}

// ListAttendees returns an event's responses, newest first.
func (s *rsvpService) ListAttendees(eventID uint, page pagination.PageRequest) (*pagination.PageResponse[AttendeeEntry], error) {
	page.Defaults()

	base := s.db.Model(&models.EventRSVP{}).Where("event_id = ?", eventID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var rsvps []models.EventRSVP
	err := base.Preload("User").
		Order("responded_at DESC").
		Scopes(pagination.Paginate(page)).
		Find(&rsvps).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	entries := make([]AttendeeEntry, 0, len(rsvps))
	for _, r := range rsvps {
		entries = append(entries, AttendeeEntry{
			UserID:      r.UserID,
			Username:    r.User.Username,
			Status:      r.Status,
			RespondedAt: r.RespondedAt,
		})
	}

	result := pagination.NewPageResponse(entries, page.Page, page.PageSize, totalItems)
	return &result, nil
}
