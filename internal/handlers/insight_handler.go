package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "gatherly/internal/errors"
	"gatherly/internal/models"
	"gatherly/internal/pagination"
	"gatherly/internal/services"
)

// InsightHandler handles insight panels, reports, and panel sharing
type InsightHandler struct {
	panelService     services.PanelServicer
	configService    services.ConfigServicer
	eventSetService  services.EventSetServicer
	analyticsService services.AnalyticsServicer
	shareService     services.ShareServicer
}

// NewInsightHandler creates a new InsightHandler
func NewInsightHandler(
	panelService services.PanelServicer,
	configService services.ConfigServicer,
	eventSetService services.EventSetServicer,
	analyticsService services.AnalyticsServicer,
	shareService services.ShareServicer,
) *InsightHandler {
	return &InsightHandler{
		panelService:     panelService,
		configService:    configService,
		eventSetService:  eventSetService,
		analyticsService: analyticsService,
		shareService:     shareService,
	}
}

// PanelConfigPayload mirrors the stored panel configuration on the wire
type PanelConfigPayload struct {
	TimePeriod string `json:"time_period" binding:"omitempty,time_period"`
	GroupID    string `json:"group_id"`
	StartDate  string `json:"startDate" binding:"omitempty,config_date"`
	EndDate    string `json:"endDate" binding:"omitempty,config_date"`
}

func (p *PanelConfigPayload) toModel() models.PanelConfig {
	if p == nil {
		return models.PanelConfig{}
	}
	return models.PanelConfig{
		TimePeriod: p.TimePeriod,
		GroupID:    p.GroupID,
		StartDate:  p.StartDate,
		EndDate:    p.EndDate,
	}
}

// CreatePanelRequest represents the request payload for creating a panel
type CreatePanelRequest struct {
	AnalysisType string              `json:"analysis_type" binding:"required,analysis_type"`
	Title        string              `json:"title" binding:"max=120"`
	Description  string              `json:"description" binding:"max=240"`
	Config       *PanelConfigPayload `json:"config"`
}

// UpdatePanelRequest represents the request payload for updating a panel
type UpdatePanelRequest struct {
	Title       *string             `json:"title" binding:"omitempty,max=120"`
	Description *string             `json:"description" binding:"omitempty,max=240"`
	Config      *PanelConfigPayload `json:"config"`
}

// ReorderPanelsRequest represents the request payload for reordering panels
type ReorderPanelsRequest struct {
	PanelIDs []uint `json:"panel_ids" binding:"required,min=1"`
}

// SharePanelRequest represents the request payload for sharing a panel
type SharePanelRequest struct {
	RecipientIDs []uint              `json:"recipient_ids" binding:"required,min=1"`
	AccessMode   string              `json:"access_mode" binding:"required,access_mode"`
	Config       *PanelConfigPayload `json:"config"`
}

// CreatePanel handles insight panel creation
// @Summary     Create an insight panel
// @Tags        insights
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreatePanelRequest true "Panel details"
// @Success     201 {object} map[string]interface{} "Panel created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /insights/panels [post]
func (h *InsightHandler) CreatePanel(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreatePanelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	panel, err := h.panelService.CreatePanel(userID, models.AnalysisType(req.AnalysisType), req.Title, req.Description, req.Config.toModel())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"panel": panel})
}

// ListPanels lists the caller's panels in display order
// @Summary     List insight panels
// @Tags        insights
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{} "Panels"
// @Router      /insights/panels [get]
func (h *InsightHandler) ListPanels(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	panels, err := h.panelService.ListUserPanels(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"panels": panels})
}

// GetPanel returns one of the caller's panels
// @Summary     Get an insight panel
// @Tags        insights
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Panel ID"
// @Success     200 {object} map[string]interface{} "Panel"
// @Failure     404 {object} ErrorResponse "Panel not found"
// @Router      /insights/panels/{id} [get]
func (h *InsightHandler) GetPanel(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	panelID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	panel, err := h.panelService.GetPanelByID(userID, panelID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"panel": panel})
}

// UpdatePanel applies partial updates to a panel
// @Summary     Update an insight panel
// @Tags        insights
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Panel ID"
// @Param       request body UpdatePanelRequest true "Panel updates"
// @Success     200 {object} map[string]interface{} "Panel updated"
// @Failure     404 {object} ErrorResponse "Panel not found"
// @Router      /insights/panels/{id} [patch]
func (h *InsightHandler) UpdatePanel(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	panelID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdatePanelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var config *models.PanelConfig
	if req.Config != nil {
		cfg := req.Config.toModel()
		config = &cfg
	}

	panel, err := h.panelService.UpdatePanel(userID, panelID, req.Title, req.Description, config)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"panel": panel})
}

// ReorderPanels rewrites the display order of the caller's panels
// @Summary     Reorder insight panels
// @Tags        insights
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ReorderPanelsRequest true "Panel IDs in display order"
// @Success     200 {object} map[string]interface{} "Order saved"
// @Failure     404 {object} ErrorResponse "Panel not found"
// @Router      /insights/panels/reorder [put]
func (h *InsightHandler) ReorderPanels(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ReorderPanelsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.panelService.ReorderPanels(userID, req.PanelIDs); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reordered": true})
}

// DeletePanel deletes a panel and every share derived from it
// @Summary     Delete an insight panel
// @Tags        insights
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Panel ID"
// @Success     200 {object} map[string]interface{} "Panel deleted"
// @Failure     404 {object} ErrorResponse "Panel not found"
// @Router      /insights/panels/{id} [delete]
func (h *InsightHandler) DeletePanel(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	panelID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.panelService.DeletePanel(userID, panelID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// runReport is the shared tail of every report endpoint: build the event
// set under the given identity and configuration, then aggregate it.
func (h *InsightHandler) runReport(c *gin.Context, identityID uint, cfg *services.EffectiveConfig) {
	eventIDs, err := h.eventSetService.BuildEventSet(identityID, cfg)
	if err != nil {
		respondWithError(c, err)
		return
	}

	report, err := h.analyticsService.ComputeReport(cfg.AnalysisType, eventIDs)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"report": report,
		"config": cfg,
	})
}

// GetReport computes a report for a bare analysis type. Query parameters
// overlay the registered defaults.
// @Summary     Compute an ad hoc report
// @Tags        insights
// @Produce     json
// @Security    BearerAuth
// @Param       type path string true "Analysis type"
// @Param       time_period query string false "all_time, last_month, last_year, or custom"
// @Param       group_id query string false "Group ID, or all"
// @Param       startDate query string false "Start date (YYYY-MM-DD)"
// @Param       endDate query string false "End date (YYYY-MM-DD)"
// @Success     200 {object} map[string]interface{} "Report"
// @Failure     400 {object} ErrorResponse "Unknown analysis type"
// @Router      /insights/reports/{type} [get]
func (h *InsightHandler) GetReport(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	analysisType := models.AnalysisType(c.Param("type"))
	if !analysisType.Valid() {
		respondWithError(c, apperrors.ErrInvalidAnalysisType)
		return
	}

	var params services.RequestParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	cfg, err := h.configService.ResolveDefault(analysisType, params)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.runReport(c, userID, cfg)
}

// GetPanelReport computes a report for an owned panel. The panel's stored
// configuration is authoritative; query parameters are ignored.
// @Summary     Compute a panel report
// @Tags        insights
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Panel ID"
// @Success     200 {object} map[string]interface{} "Report"
// @Failure     404 {object} ErrorResponse "Panel not found"
// @Router      /insights/panels/{id}/report [get]
func (h *InsightHandler) GetPanelReport(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	panelID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	_, cfg, err := h.configService.ResolveOwned(userID, panelID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.runReport(c, userID, cfg)
}

// GetSharedReport computes a report for a shared panel instance. The event
// set is built under the sharer's access rights, so the recipient sees the
// sharer's data, never their own.
// @Summary     Compute a shared panel report
// @Tags        insights
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Share ID"
// @Param       time_period query string false "Dynamic shares only"
// @Param       startDate query string false "Dynamic shares only (YYYY-MM-DD)"
// @Param       endDate query string false "Dynamic shares only (YYYY-MM-DD)"
// @Success     200 {object} map[string]interface{} "Report"
// @Failure     404 {object} ErrorResponse "Share not found"
// @Router      /insights/shares/{id}/report [get]
func (h *InsightHandler) GetSharedReport(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	shareID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var params services.RequestParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	_, cfg, sharerID, err := h.configService.ResolveShared(userID, shareID, params)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.runReport(c, sharerID, cfg)
}

// SharePanel shares a panel with one or more recipients
// @Summary     Share an insight panel
// @Tags        insights
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Panel ID"
// @Param       request body SharePanelRequest true "Recipients and access mode"
// @Success     200 {object} map[string]interface{} "Share result"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Panel not found"
// @Router      /insights/panels/{id}/share [post]
func (h *InsightHandler) SharePanel(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	panelID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SharePanelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var snapshot *models.PanelConfig
	if req.Config != nil {
		cfg := req.Config.toModel()
		snapshot = &cfg
	}

	result, err := h.shareService.Share(userID, panelID, req.RecipientIDs, models.AccessMode(req.AccessMode), snapshot)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// ListReceivedShares lists the panels shared with the caller
// @Summary     List received shares
// @Tags        insights
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} map[string]interface{} "Paginated shares"
// @Router      /insights/shares [get]
func (h *InsightHandler) ListReceivedShares(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.shareService.ListReceivedShares(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// RevokeShare withdraws a share the caller previously granted
// @Summary     Revoke a share
// @Tags        insights
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Share ID"
// @Success     200 {object} map[string]interface{} "Share revoked"
// @Failure     404 {object} ErrorResponse "Share not found"
// @Router      /insights/shares/{id} [delete]
func (h *InsightHandler) RevokeShare(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	shareID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.shareService.RevokeShare(userID, shareID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"revoked": true})
}
