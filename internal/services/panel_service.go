package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "gatherly/internal/errors"
	"gatherly/internal/models"
)

// panelService manages saved insight panels.
type panelService struct {
	db *gorm.DB
}

// NewPanelService creates a new PanelServicer.
func NewPanelService(db *gorm.DB) PanelServicer {
	return &panelService{db: db}
}

// CreatePanel creates a panel at the end of the user's display order.
func (s *panelService) CreatePanel(userID uint, analysisType models.AnalysisType, title, description string, config models.PanelConfig) (*models.InsightPanel, error) {
	if !analysisType.Valid() {
		return nil, apperrors.ErrInvalidAnalysisType
	}
	if title == "" {
		title = ReportTitle(analysisType)
	}

	var maxOrder int64
	err := s.db.Model(&models.InsightPanel{}).
		Where("user_id = ?", userID).
		Select("COALESCE(MAX(display_order), -1)").
		Scan(&maxOrder).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	panel := &models.InsightPanel{
		UserID:        userID,
		AnalysisType:  analysisType,
		Title:         title,
		Description:   description,
		DisplayOrder:  int(maxOrder) + 1,
		Configuration: config,
	}
	if err := s.db.Create(panel).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return panel, nil
}

// GetPanelByID returns a panel if it belongs to the user.
func (s *panelService) GetPanelByID(userID, panelID uint) (*models.InsightPanel, error) {
	var panel models.InsightPanel
	err := s.db.Where("id = ? AND user_id = ?", panelID, userID).First(&panel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPanelNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &panel, nil
}

// ListUserPanels returns the user's panels in display order.
func (s *panelService) ListUserPanels(userID uint) ([]models.InsightPanel, error) {
	var panels []models.InsightPanel
	err := s.db.Where("user_id = ?", userID).
		Order("display_order ASC").
		Find(&panels).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return panels, nil
}

// UpdatePanel updates a panel's title, description, or configuration.
// Nil fields are left untouched; the stored configuration is replaced
// wholesale, never merged.
func (s *panelService) UpdatePanel(userID, panelID uint, title, description *string, config *models.PanelConfig) (*models.InsightPanel, error) {
	panel, err := s.GetPanelByID(userID, panelID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if title != nil && *title != "" {
		updates["title"] = *title
	}
	if description != nil {
		updates["description"] = *description
	}
	if config != nil {
		updates["configuration"] = *config
	}

	if len(updates) > 0 {
		if err := s.db.Model(panel).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return panel, nil
}

// ReorderPanels rewrites the display order of the user's panels to match
// the given ID order. Every listed panel must belong to the user.
func (s *panelService) ReorderPanels(userID uint, orderedIDs []uint) error {
	if len(orderedIDs) == 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "panel order is required")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for order, id := range orderedIDs {
			res := tx.Model(&models.InsightPanel{}).
				Where("id = ? AND user_id = ?", id, userID).
				Update("display_order", order)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return apperrors.ErrPanelNotFound
			}
		}
		return nil
	})
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// DeletePanel deletes a panel along with any shares pointing at it.
func (s *panelService) DeletePanel(userID, panelID uint) error {
	panel, err := s.GetPanelByID(userID, panelID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().
			Where("original_panel_id = ?", panel.ID).
			Delete(&models.SharedInsightPanel{}).Error; err != nil {
			return err
		}
		return tx.Delete(panel).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
