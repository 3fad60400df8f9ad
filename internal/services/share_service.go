package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "gatherly/internal/errors"
	"gatherly/internal/models"
	"gatherly/internal/pagination"
)

// shareService manages shared insight panels.
type shareService struct {
	db *gorm.DB
}

// NewShareService creates a new ShareServicer.
func NewShareService(db *gorm.DB) ShareServicer {
	return &shareService{db: db}
}

// Share shares an owned panel with each recipient in turn. Recipients are
// processed independently: one rejection never rolls back or aborts the
// others, and the result reports successes and per-recipient failures side
// by side. Re-sharing to an existing recipient updates that share in place.
func (s *shareService) Share(ownerID, panelID uint, recipientIDs []uint, mode models.AccessMode, snapshot *models.PanelConfig) (*ShareResult, error) {
	if !mode.Valid() {
		return nil, apperrors.ErrInvalidAccessMode
	}
	if mode == models.AccessModeFixed && (snapshot == nil || snapshot.IsZero()) {
		return nil, apperrors.ErrMissingShareConfig
	}
	if len(recipientIDs) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "at least one recipient is required")
	}

	var panel models.InsightPanel
	err := s.db.Where("id = ? AND user_id = ?", panelID, ownerID).First(&panel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPanelNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	sharedConfig := models.PanelConfig{}
	if snapshot != nil {
		sharedConfig = *snapshot
	}

	result := &ShareResult{Failures: []ShareFailure{}}
	for _, recipientID := range recipientIDs {
		if reason := s.shareWithOne(&panel, ownerID, recipientID, mode, sharedConfig); reason != "" {
			result.Failures = append(result.Failures, ShareFailure{
				RecipientID: recipientID,
				Reason:      reason,
			})
			continue
		}
		result.SharedCount++
	}
	return result, nil
}

// shareWithOne shares the panel with a single recipient inside one
// transaction. It returns a human-readable reason on failure, empty on
// success.
func (s *shareService) shareWithOne(panel *models.InsightPanel, ownerID, recipientID uint, mode models.AccessMode, cfg models.PanelConfig) string {
	if recipientID == ownerID {
		return "cannot share a panel with yourself"
	}

	var recipient models.User
	if err := s.db.First(&recipient, recipientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "recipient not found"
		}
		return "internal error"
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var share models.SharedInsightPanel
		err := tx.Where("original_panel_id = ? AND recipient_id = ?", panel.ID, recipientID).
			First(&share).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			share = models.SharedInsightPanel{
				OriginalPanelID: panel.ID,
				SharerID:        ownerID,
				RecipientID:     recipientID,
				AccessMode:      mode,
				SharedConfig:    cfg,
				SharedAt:        time.Now().UTC(),
			}
			return tx.Create(&share).Error
		case err != nil:
			return err
		default:
			return tx.Model(&share).Updates(map[string]interface{}{
				"access_mode":   mode,
				"shared_config": cfg,
				"shared_at":     time.Now().UTC(),
			}).Error
		}
	})
	if err != nil {
		return "internal error"
	}
	return ""
}

// ListReceivedShares returns the shares addressed to a recipient, newest
// first, with the original panels preloaded.
func (s *shareService) ListReceivedShares(recipientID uint, page pagination.PageRequest) (*pagination.PageResponse[models.SharedInsightPanel], error) {
	page.Defaults()

	base := s.db.Model(&models.SharedInsightPanel{}).Where("recipient_id = ?", recipientID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var shares []models.SharedInsightPanel
	err := base.Preload("OriginalPanel").Preload("Sharer").
		Order("shared_at DESC").
		Scopes(pagination.Paginate(page)).
		Find(&shares).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(shares, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// RevokeShare deletes a share. Only the sharer may revoke.
func (s *shareService) RevokeShare(ownerID, shareID uint) error {
	var share models.SharedInsightPanel
	err := s.db.Where("id = ? AND sharer_id = ?", shareID, ownerID).First(&share).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrShareNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Unscoped().Delete(&share).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
