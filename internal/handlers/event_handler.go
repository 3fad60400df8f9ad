package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "gatherly/internal/errors"
	"gatherly/internal/models"
	"gatherly/internal/pagination"
	"gatherly/internal/services"
)

// EventHandler handles event, invitation, and RSVP requests
type EventHandler struct {
	eventService  services.EventServicer
	accessService services.AccessServicer
	rsvpService   services.RSVPServicer
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(eventService services.EventServicer, accessService services.AccessServicer, rsvpService services.RSVPServicer) *EventHandler {
	return &EventHandler{
		eventService:  eventService,
		accessService: accessService,
		rsvpService:   rsvpService,
	}
}

// CreateEventRequest represents the request payload for creating an event
type CreateEventRequest struct {
	Title               string   `json:"title" binding:"max=120"`
	Date                string   `json:"date" binding:"required"`
	Location            string   `json:"location" binding:"max=120"`
	LocationCoordinates string   `json:"location_coordinates" binding:"omitempty,coordinates"`
	Description         string   `json:"description" binding:"max=240"`
	ImageURL            string   `json:"image_url" binding:"omitempty,url"`
	CostDisplay         string   `json:"cost_display" binding:"max=50"`
	CostValue           *float64 `json:"cost_value"`
	IsCostSplit         bool     `json:"is_cost_split"`
	NodeID              *uint    `json:"node_id"`
}

// UpdateEventRequest represents the request payload for updating an event
type UpdateEventRequest struct {
	Title               *string  `json:"title" binding:"omitempty,max=120"`
	Date                *string  `json:"date"`
	Location            *string  `json:"location" binding:"omitempty,max=120"`
	LocationCoordinates *string  `json:"location_coordinates" binding:"omitempty,coordinates"`
	Description         *string  `json:"description" binding:"omitempty,max=240"`
	CostDisplay         *string  `json:"cost_display" binding:"omitempty,max=50"`
	CostValue           *float64 `json:"cost_value"`
}

// RSVPRequest represents the request payload for responding to an event.
// Status "none" clears a previous response.
type RSVPRequest struct {
	Status string `json:"status" binding:"required"`
}

// InviteGuestRequest represents the request payload for inviting a guest
type InviteGuestRequest struct {
	Email string `json:"email" binding:"required,email,max=120"`
	Name  string `json:"name" binding:"max=120"`
}

// CreateEvent handles event creation inside a group
// @Summary     Create an event
// @Tags        events
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Group ID"
// @Param       request body CreateEventRequest true "Event details"
// @Success     201 {object} map[string]interface{} "Event created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Not a member"
// @Router      /groups/{id}/events [post]
func (h *EventHandler) CreateEvent(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	groupID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "date must be RFC 3339"))
		return
	}

	event, err := h.eventService.CreateEvent(userID, groupID, services.CreateEventInput{
		Title:               req.Title,
		Date:                date,
		Location:            req.Location,
		LocationCoordinates: req.LocationCoordinates,
		Description:         req.Description,
		ImageURL:            req.ImageURL,
		CostDisplay:         req.CostDisplay,
		CostValue:           req.CostValue,
		IsCostSplit:         req.IsCostSplit,
		NodeID:              req.NodeID,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"event": event})
}

// GetEvent returns an event if the caller may see it
// @Summary     Get an event
// @Tags        events
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Event ID"
// @Success     200 {object} map[string]interface{} "Event with access reason"
// @Failure     403 {object} ErrorResponse "No access"
// @Failure     404 {object} ErrorResponse "Event not found"
// @Router      /events/{id} [get]
func (h *EventHandler) GetEvent(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	eventID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	event, decision, err := h.eventService.GetEvent(userID, eventID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	myStatus, err := h.rsvpService.GetStatus(userID, eventID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"event":       event,
		"access":      decision,
		"rsvp_status": myStatus,
	})
}

// UpdateEvent applies partial updates to an event
// @Summary     Update an event
// @Tags        events
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Event ID"
// @Param       request body UpdateEventRequest true "Event updates"
// @Success     200 {object} map[string]interface{} "Event updated"
// @Failure     403 {object} ErrorResponse "Not allowed"
// @Router      /events/{id} [patch]
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	eventID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	input := services.UpdateEventInput{
		Title:               req.Title,
		Location:            req.Location,
		LocationCoordinates: req.LocationCoordinates,
		Description:         req.Description,
		CostDisplay:         req.CostDisplay,
		CostValue:           req.CostValue,
	}
	if req.Date != nil {
		date, err := time.Parse(time.RFC3339, *req.Date)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "date must be RFC 3339"))
			return
		}
		input.Date = &date
	}

	event, err := h.eventService.UpdateEvent(userID, eventID, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"event": event})
}

// DeleteEvent deletes an event with its RSVPs and invitations
// @Summary     Delete an event
// @Tags        events
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Event ID"
// @Success     200 {object} map[string]interface{} "Event deleted"
// @Failure     403 {object} ErrorResponse "Not allowed"
// @Router      /events/{id} [delete]
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	eventID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.eventService.DeleteEvent(userID, eventID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// SetRSVP records or clears the caller's attendance intent. The caller
// must be authorized on the event first; the ledger itself does not check.
// @Summary     Respond to an event
// @Tags        events
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Event ID"
// @Param       request body RSVPRequest true "Status: attending, maybe, declined, or none"
// @Success     200 {object} map[string]interface{} "Outcome"
// @Failure     400 {object} ErrorResponse "Invalid status"
// @Failure     403 {object} ErrorResponse "No access"
// @Router      /events/{id}/rsvp [put]
func (h *EventHandler) SetRSVP(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	eventID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RSVPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	decision, err := h.accessService.Authorize(userID, eventID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if !decision.Allowed {
		respondWithError(c, apperrors.ErrEventNotAuthorized)
		return
	}

	var outcome services.RSVPOutcome
	if req.Status == "none" {
		outcome, err = h.rsvpService.ClearStatus(userID, eventID)
	} else {
		outcome, err = h.rsvpService.SetStatus(userID, eventID, models.RSVPStatus(req.Status))
	}
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"outcome": outcome})
}

// ListAttendees lists an event's responses, newest first
// @Summary     List event attendees
// @Tags        events
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Event ID"
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} map[string]interface{} "Paginated attendees"
// @Failure     403 {object} ErrorResponse "No access"
// @Router      /events/{id}/attendees [get]
func (h *EventHandler) ListAttendees(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	eventID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	decision, err := h.accessService.Authorize(userID, eventID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if !decision.Allowed {
		respondWithError(c, apperrors.ErrEventNotAuthorized)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.rsvpService.ListAttendees(eventID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// InviteGuest invites an email address to an event
// @Summary     Invite a guest
// @Tags        events
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Event ID"
// @Param       request body InviteGuestRequest true "Guest details"
// @Success     201 {object} map[string]interface{} "Guest invited"
// @Failure     403 {object} ErrorResponse "Not allowed"
// @Router      /events/{id}/guests [post]
func (h *EventHandler) InviteGuest(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	eventID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req InviteGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	guest, err := h.eventService.InviteGuest(userID, eventID, req.Email, req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"guest": guest})
}

// ListGuests lists an event's invitations
// @Summary     List event guests
// @Tags        events
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Event ID"
// @Success     200 {object} map[string]interface{} "Guests"
// @Failure     403 {object} ErrorResponse "Not allowed"
// @Router      /events/{id}/guests [get]
func (h *EventHandler) ListGuests(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	eventID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	guests, err := h.eventService.ListGuests(userID, eventID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"guests": guests})
}
