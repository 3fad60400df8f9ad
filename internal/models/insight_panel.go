package models

import "time"

// AnalysisType identifies which report shape an insight panel computes.
// The set is closed: every switch over it handles all four values.
type AnalysisType string

const (
	AnalysisSpendingByCategory AnalysisType = "spending-by-category"
	AnalysisLocationHeatmap    AnalysisType = "event-location-heatmap"
	AnalysisRSVPDistribution   AnalysisType = "rsvp-distribution"
	AnalysisBusyPeriods        AnalysisType = "busy-periods"
)

// Valid reports whether the analysis type is one of the known values.
func (t AnalysisType) Valid() bool {
	switch t {
	case AnalysisSpendingByCategory, AnalysisLocationHeatmap,
		AnalysisRSVPDistribution, AnalysisBusyPeriods:
		return true
	}
	return false
}

// TimePeriod names a date-range shortcut in a panel configuration.
type TimePeriod string

const (
	TimePeriodAllTime   TimePeriod = "all_time"
	TimePeriodLastMonth TimePeriod = "last_month"
	TimePeriodLastYear  TimePeriod = "last_year"
	TimePeriodCustom    TimePeriod = "custom"
)

// GroupScopeAll is the group_id value meaning "no group filter".
const GroupScopeAll = "all"

// PanelConfig is the stored configuration of a panel. All fields are
// optional strings; dates are "2006-01-02". Parsing into typed values
// happens at resolve time, never here.
type PanelConfig struct {
	TimePeriod string `json:"time_period,omitempty"`
	GroupID    string `json:"group_id,omitempty"`
	StartDate  string `json:"startDate,omitempty"`
	EndDate    string `json:"endDate,omitempty"`
}

// IsZero reports whether no field of the configuration is set.
func (c PanelConfig) IsZero() bool {
	return c == PanelConfig{}
}

// InsightPanel is a saved analytics view owned by exactly one user.
type InsightPanel struct {
	Base
	UserID        uint         `gorm:"not null;index" json:"user_id"`
	AnalysisType  AnalysisType `gorm:"size:80;not null" json:"analysis_type"`
	Title         string       `gorm:"size:150;not null" json:"title"`
	Description   string       `json:"description"`
	DisplayOrder  int          `gorm:"not null;default:0" json:"display_order"`
	Configuration PanelConfig  `gorm:"serializer:json" json:"configuration"`

	User   User                 `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Shares []SharedInsightPanel `gorm:"foreignKey:OriginalPanelID" json:"shares,omitempty"`
}

// AccessMode controls how a shared panel resolves its configuration.
type AccessMode string

const (
	// AccessModeFixed freezes the group and date scope captured at share time.
	AccessModeFixed AccessMode = "fixed"
	// AccessModeDynamic keeps the sharer's group scope but lets the
	// recipient pick the date range at query time.
	AccessModeDynamic AccessMode = "dynamic"
)

// Valid reports whether the access mode is fixed or dynamic.
func (m AccessMode) Valid() bool {
	return m == AccessModeFixed || m == AccessModeDynamic
}

// SharedInsightPanel links a panel to a recipient. At most one row exists
// per (panel, recipient); re-sharing updates the row in place.
type SharedInsightPanel struct {
	Base
	OriginalPanelID uint        `gorm:"not null;uniqueIndex:idx_share_panel_recipient" json:"original_panel_id"`
	SharerID        uint        `gorm:"not null;index" json:"sharer_id"`
	RecipientID     uint        `gorm:"not null;uniqueIndex:idx_share_panel_recipient" json:"recipient_id"`
	AccessMode      AccessMode  `gorm:"size:20;not null" json:"access_mode"`
	SharedConfig    PanelConfig `gorm:"serializer:json" json:"shared_config"`
	SharedAt        time.Time   `gorm:"not null" json:"shared_at"`

	OriginalPanel InsightPanel `gorm:"foreignKey:OriginalPanelID" json:"original_panel,omitempty"`
	Sharer        User         `gorm:"foreignKey:SharerID" json:"sharer,omitempty"`
	Recipient     User         `gorm:"foreignKey:RecipientID" json:"recipient,omitempty"`
}
