package services

import (
	"errors"
	"strconv"
	"time"

	"gorm.io/gorm"

	apperrors "gatherly/internal/errors"
	"gatherly/internal/logger"
	"gatherly/internal/models"
)

// configDateLayout is the date form used in panel configurations and
// query parameters.
const configDateLayout = "2006-01-02"

// configService merges analysis-type defaults, stored panel configuration,
// and share overrides into one effective configuration. It never mutates
// stored configuration; every call returns a fresh merge.
type configService struct {
	db *gorm.DB
}

// NewConfigService creates a new ConfigServicer.
func NewConfigService(db *gorm.DB) ConfigServicer {
	return &configService{db: db}
}

// DefaultConfig returns the registered default configuration for an
// analysis type.
func DefaultConfig(t models.AnalysisType) models.PanelConfig {
	switch t {
	case models.AnalysisSpendingByCategory:
		return models.PanelConfig{TimePeriod: string(models.TimePeriodAllTime), GroupID: models.GroupScopeAll}
	case models.AnalysisLocationHeatmap:
		return models.PanelConfig{TimePeriod: string(models.TimePeriodAllTime), GroupID: models.GroupScopeAll}
	case models.AnalysisRSVPDistribution:
		return models.PanelConfig{TimePeriod: string(models.TimePeriodAllTime), GroupID: models.GroupScopeAll}
	case models.AnalysisBusyPeriods:
		return models.PanelConfig{TimePeriod: string(models.TimePeriodLastYear), GroupID: models.GroupScopeAll}
	}
	return models.PanelConfig{TimePeriod: string(models.TimePeriodAllTime), GroupID: models.GroupScopeAll}
}

// ResolveDefault resolves a bare report request from the analysis type's
// registered defaults overlaid by the caller's query parameters.
func (s *configService) ResolveDefault(analysisType models.AnalysisType, params RequestParams) (*EffectiveConfig, error) {
	if !analysisType.Valid() {
		return nil, apperrors.ErrInvalidAnalysisType
	}
	merged := mergeConfig(DefaultConfig(analysisType), paramsConfig(params))
	return parseConfig(analysisType, merged), nil
}

// ResolveOwned resolves an owned panel: defaults overlaid by the panel's
// stored configuration. The owner's query-time parameters play no part;
// what the panel saved is what the panel shows.
func (s *configService) ResolveOwned(userID, panelID uint) (*models.InsightPanel, *EffectiveConfig, error) {
	var panel models.InsightPanel
	err := s.db.Where("id = ? AND user_id = ?", panelID, userID).First(&panel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperrors.ErrPanelNotFound
		}
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	merged := mergeConfig(DefaultConfig(panel.AnalysisType), panel.Configuration)
	return &panel, parseConfig(panel.AnalysisType, merged), nil
}

// ResolveShared resolves a shared instance for its recipient and returns
// the sharer's user ID as the identity reports must be computed under.
//
// Fixed mode replays the scope snapshotted at share time and ignores the
// recipient's parameters. Dynamic mode carries only the snapshot's group
// scope; the date range comes from the recipient's current request.
func (s *configService) ResolveShared(recipientID, sharedID uint, params RequestParams) (*models.SharedInsightPanel, *EffectiveConfig, uint, error) {
	var share models.SharedInsightPanel
	err := s.db.Preload("OriginalPanel").
		Where("id = ? AND recipient_id = ?", sharedID, recipientID).
		First(&share).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, 0, apperrors.ErrShareNotFound
		}
		return nil, nil, 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	analysisType := share.OriginalPanel.AnalysisType
	base := mergeConfig(DefaultConfig(analysisType), share.OriginalPanel.Configuration)

	var merged models.PanelConfig
	switch share.AccessMode {
	case models.AccessModeFixed:
		merged = mergeConfig(base, share.SharedConfig)
	case models.AccessModeDynamic:
		merged = base
		if share.SharedConfig.GroupID != "" {
			merged.GroupID = share.SharedConfig.GroupID
		}
		merged.StartDate = params.StartDate
		merged.EndDate = params.EndDate
		if params.StartDate == "" && params.EndDate == "" {
			merged.TimePeriod = string(models.TimePeriodAllTime)
		} else {
			merged.TimePeriod = string(models.TimePeriodCustom)
		}
	default:
		return nil, nil, 0, apperrors.ErrInvalidAccessMode
	}

	return &share, parseConfig(analysisType, merged), share.SharerID, nil
}

// mergeConfig overlays b onto a, key by key. Set keys win; empty keys keep
// the base value.
func mergeConfig(a, b models.PanelConfig) models.PanelConfig {
	out := a
	if b.TimePeriod != "" {
		out.TimePeriod = b.TimePeriod
	}
	if b.GroupID != "" {
		out.GroupID = b.GroupID
	}
	if b.StartDate != "" {
		out.StartDate = b.StartDate
	}
	if b.EndDate != "" {
		out.EndDate = b.EndDate
	}
	return out
}

// paramsConfig lifts query parameters into configuration form.
func paramsConfig(p RequestParams) models.PanelConfig {
	return models.PanelConfig{
		TimePeriod: p.TimePeriod,
		GroupID:    p.GroupID,
		StartDate:  p.StartDate,
		EndDate:    p.EndDate,
	}
}

// parseConfig turns a merged string configuration into typed values.
// Filter fields never fail the resolve: an unparsable group or date is
// logged and dropped, degrading to the unfiltered scope.
func parseConfig(analysisType models.AnalysisType, cfg models.PanelConfig) *EffectiveConfig {
	eff := &EffectiveConfig{AnalysisType: analysisType}

	if cfg.GroupID != "" && cfg.GroupID != models.GroupScopeAll {
		id, err := strconv.ParseUint(cfg.GroupID, 10, 32)
		if err != nil {
			logger.Get().Warnw("invalid group_id in config, falling back to all groups",
				"group_id", cfg.GroupID)
		} else {
			gid := uint(id)
			eff.GroupID = &gid
		}
	}

	eff.StartDate = parseConfigDate(cfg.StartDate, false)
	eff.EndDate = parseConfigDate(cfg.EndDate, true)

	// Explicit date bounds beat named period shortcuts.
	if eff.StartDate != nil || eff.EndDate != nil {
		eff.TimePeriod = models.TimePeriodCustom
		return eff
	}

	switch models.TimePeriod(cfg.TimePeriod) {
	case models.TimePeriodLastMonth:
		eff.TimePeriod = models.TimePeriodLastMonth
		start := time.Now().UTC().AddDate(0, 0, -30)
		eff.StartDate = &start
	case models.TimePeriodLastYear:
		eff.TimePeriod = models.TimePeriodLastYear
		start := time.Now().UTC().AddDate(0, 0, -365)
		eff.StartDate = &start
	case models.TimePeriodCustom, models.TimePeriodAllTime:
		// Custom without dates degenerates to all time.
		eff.TimePeriod = models.TimePeriodAllTime
	default:
		if cfg.TimePeriod != "" {
			logger.Get().Warnw("invalid time_period in config, falling back to all_time",
				"time_period", cfg.TimePeriod)
		}
		eff.TimePeriod = models.TimePeriodAllTime
	}
	return eff
}

// parseConfigDate parses a "2006-01-02" date. End dates are pushed to the
// last instant of their day so the bound is inclusive.
func parseConfigDate(s string, endOfDay bool) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(configDateLayout, s)
	if err != nil {
		logger.Get().Warnw("invalid date in config, ignoring bound", "date", s)
		return nil
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t
}
