package services

import (
	"time"

	"gatherly/internal/models"
	"gatherly/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(username, email, password, aboutMe string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
}

// GroupServicer defines the contract for group and node management.
type GroupServicer interface {
	CreateGroup(ownerID uint, name, about, avatarURL string) (*models.Group, error)
	GetGroupByID(groupID uint) (*models.Group, error)
	ListUserGroups(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Group], error)
	AddMember(actorID, groupID, userID uint) (*models.GroupMember, error)
	IsMember(userID, groupID uint) (bool, error)
	CreateNode(actorID, groupID uint, label string, x, y float64) (*models.Node, error)
	UpdateNode(actorID, nodeID uint, label *string, x, y *float64) (*models.Node, error)
	DeleteNode(actorID, nodeID uint) error
}

// CreateEventInput carries the optional fields of a new event.
type CreateEventInput struct {
	Title               string
	Date                time.Time
	Location            string
	LocationCoordinates string
	Description         string
	ImageURL            string
	CostDisplay         string
	CostValue           *float64
	IsCostSplit         bool
	NodeID              *uint
}

// UpdateEventInput carries optional event updates; nil fields are untouched.
type UpdateEventInput struct {
	Title               *string
	Date                *time.Time
	Location            *string
	LocationCoordinates *string
	Description         *string
	CostDisplay         *string
	CostValue           *float64
}

// EventServicer defines the contract for event lifecycle and invitations.
type EventServicer interface {
	CreateEvent(creatorID, groupID uint, input CreateEventInput) (*models.Event, error)
	GetEvent(userID, eventID uint) (*models.Event, *AccessDecision, error)
	UpdateEvent(userID, eventID uint, input UpdateEventInput) (*models.Event, error)
	DeleteEvent(userID, eventID uint) error
	InviteGuest(userID, eventID uint, email, name string) (*models.InvitedGuest, error)
	ListGuests(userID, eventID uint) ([]models.InvitedGuest, error)
}

// AccessReason explains why an event access decision came out the way it did.
type AccessReason string

const (
	AccessGroupMember  AccessReason = "group_member"
	AccessInvitedGuest AccessReason = "invited_guest"
	AccessDenied       AccessReason = "not_authorized"
)

// AccessDecision is the result of an event authorization check. A denial is
// a normal decision, not an error.
type AccessDecision struct {
	Allowed bool         `json:"allowed"`
	Reason  AccessReason `json:"reason"`
}

// AccessServicer decides whether a user may see an event.
type AccessServicer interface {
	Authorize(userID, eventID uint) (*AccessDecision, error)
}

// RSVPOutcome describes what a ledger mutation actually did.
type RSVPOutcome string

const (
	RSVPCreated        RSVPOutcome = "created"
	RSVPUpdated        RSVPOutcome = "updated"
	RSVPUnchanged      RSVPOutcome = "unchanged"
	RSVPCleared        RSVPOutcome = "cleared"
	RSVPNothingToClear RSVPOutcome = "nothing_to_clear"
)

// AttendeeEntry is one row of an event's attendee list.
type AttendeeEntry struct {
	UserID      uint              `json:"user_id"`
	Username    string            `json:"username"`
	Status      models.RSVPStatus `json:"status"`
	RespondedAt time.Time         `json:"responded_at"`
}

// RSVPServicer is the attendance-intent ledger. It performs no
// authorization; callers must hold a positive AccessDecision first.
type RSVPServicer interface {
	GetStatus(userID, eventID uint) (*models.RSVPStatus, error)
	SetStatus(userID, eventID uint, status models.RSVPStatus) (RSVPOutcome, error)
	ClearStatus(userID, eventID uint) (RSVPOutcome, error)
	AttendingEventIDs(userID uint) ([]uint, error)
	ListAttendees(eventID uint, page pagination.PageRequest) (*pagination.PageResponse[AttendeeEntry], error)
}

// RequestParams are the caller's query-time filter parameters. They only
// take effect for bare requests and dynamic shares; owned panels and fixed
// shares resolve entirely from stored configuration.
type RequestParams struct {
	TimePeriod string `form:"time_period" binding:"omitempty,time_period"`
	GroupID    string `form:"group_id"`
	StartDate  string `form:"startDate" binding:"omitempty,config_date"`
	EndDate    string `form:"endDate" binding:"omitempty,config_date"`
}

// EffectiveConfig is the fully merged, parsed configuration a report runs
// under. A nil GroupID means no group filter; nil date bounds mean
// unbounded.
type EffectiveConfig struct {
	AnalysisType models.AnalysisType
	TimePeriod   models.TimePeriod
	GroupID      *uint
	StartDate    *time.Time
	EndDate      *time.Time
}

// ConfigServicer merges registered defaults, stored panel configuration,
// and share overrides into one effective configuration per request.
type ConfigServicer interface {
	ResolveDefault(analysisType models.AnalysisType, params RequestParams) (*EffectiveConfig, error)
	ResolveOwned(userID, panelID uint) (*models.InsightPanel, *EffectiveConfig, error)
	// ResolveShared resolves a shared instance for its recipient. The
	// returned user ID is the sharer's: shared reports are computed under
	// the sharer's access rights, not the recipient's.
	ResolveShared(recipientID, sharedID uint, params RequestParams) (*models.SharedInsightPanel, *EffectiveConfig, uint, error)
}

// EventSetServicer computes the set of event IDs eligible for aggregation
// under a user's access rights and an effective configuration.
type EventSetServicer interface {
	BuildEventSet(userID uint, cfg *EffectiveConfig) ([]uint, error)
}

// CategoryTotal is one row of a spending-by-category report.
type CategoryTotal struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// Coordinate is one point of a location heatmap report.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// StatusCount is one row of an RSVP distribution report.
type StatusCount struct {
	Status models.RSVPStatus `json:"status"`
	Count  int64             `json:"count"`
}

// MonthCount is one row of a busy-periods report.
type MonthCount struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

// Report is a computed analytics result. Title is stable for a given
// analysis type regardless of whether any data rows exist.
type Report struct {
	AnalysisType models.AnalysisType `json:"analysis_type"`
	Title        string              `json:"title"`
	Data         interface{}         `json:"data"`
}

// AnalyticsServicer turns an event set into a report.
type AnalyticsServicer interface {
	ComputeReport(analysisType models.AnalysisType, eventIDs []uint) (*Report, error)
}

// ShareFailure records why one recipient of a share request was skipped.
type ShareFailure struct {
	RecipientID uint   `json:"recipient_id"`
	Reason      string `json:"reason"`
}

// ShareResult aggregates a multi-recipient share request. The operation is
// not atomic across recipients; failures do not roll back successes.
type ShareResult struct {
	SharedCount int            `json:"shared_count"`
	Failures    []ShareFailure `json:"failures"`
}

// ShareServicer manages shared insight panels.
type ShareServicer interface {
	Share(ownerID, panelID uint, recipientIDs []uint, mode models.AccessMode, snapshot *models.PanelConfig) (*ShareResult, error)
	ListReceivedShares(recipientID uint, page pagination.PageRequest) (*pagination.PageResponse[models.SharedInsightPanel], error)
	RevokeShare(ownerID, shareID uint) error
}

// PanelServicer manages a user's saved insight panels.
type PanelServicer interface {
	CreatePanel(userID uint, analysisType models.AnalysisType, title, description string, config models.PanelConfig) (*models.InsightPanel, error)
	GetPanelByID(userID, panelID uint) (*models.InsightPanel, error)
	ListUserPanels(userID uint) ([]models.InsightPanel, error)
	UpdatePanel(userID, panelID uint, title, description *string, config *models.PanelConfig) (*models.InsightPanel, error)
	ReorderPanels(userID uint, orderedIDs []uint) error
	DeletePanel(userID, panelID uint) error
}
