package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "gatherly/internal/errors"
	"gatherly/internal/pagination"
	"gatherly/internal/services"
)

// GroupHandler handles group and node requests
type GroupHandler struct {
	groupService services.GroupServicer
}

// NewGroupHandler creates a new GroupHandler
func NewGroupHandler(groupService services.GroupServicer) *GroupHandler {
	return &GroupHandler{groupService: groupService}
}

// CreateGroupRequest represents the request payload for creating a group
type CreateGroupRequest struct {
	Name      string `json:"name" binding:"required,max=100"`
	About     string `json:"about" binding:"max=255"`
	AvatarURL string `json:"avatar_url" binding:"omitempty,url,max=255"`
}

// AddMemberRequest represents the request payload for adding a group member
type AddMemberRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

// CreateNodeRequest represents the request payload for creating a node
type CreateNodeRequest struct {
	Label string  `json:"label" binding:"max=100"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// UpdateNodeRequest represents the request payload for updating a node
type UpdateNodeRequest struct {
	Label *string  `json:"label" binding:"omitempty,max=100"`
	X     *float64 `json:"x"`
	Y     *float64 `json:"y"`
}

// CreateGroup handles group creation
// @Summary     Create a group
// @Tags        groups
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateGroupRequest true "Group details"
// @Success     201 {object} map[string]interface{} "Group created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /groups [post]
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	group, err := h.groupService.CreateGroup(userID, req.Name, req.About, req.AvatarURL)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"group": group})
}

// ListUserGroups lists the caller's groups
// @Summary     List my groups
// @Tags        groups
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} map[string]interface{} "Paginated groups"
// @Router      /groups [get]
func (h *GroupHandler) ListUserGroups(c *gin.Context) {
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

	result, err := h.groupService.ListUserGroups(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetGroup returns a group with its nodes
// @Summary     Get a group
// @Tags        groups
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Group ID"
// @Success     200 {object} map[string]interface{} "Group with nodes"
// @Failure     403 {object} ErrorResponse "Not a member"
// @Failure     404 {object} ErrorResponse "Group not found"
// @Router      /groups/{id} [get]
func (h *GroupHandler) GetGroup(c *gin.Context) {
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

	isMember, err := h.groupService.IsMember(userID, groupID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if !isMember {
		respondWithError(c, apperrors.ErrNotGroupMember)
		return
	}

	group, err := h.groupService.GetGroupByID(groupID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"group": group})
}

// AddMember adds a user to a group
// @Summary     Add a group member
// @Tags        groups
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Group ID"
// @Param       request body AddMemberRequest true "Member to add"
// @Success     201 {object} map[string]interface{} "Member added"
// @Failure     403 {object} ErrorResponse "Not allowed"
// @Failure     409 {object} ErrorResponse "Already a member"
// @Router      /groups/{id}/members [post]
func (h *GroupHandler) AddMember(c *gin.Context) {
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

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	member, err := h.groupService.AddMember(userID, groupID, req.UserID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"member": member})
}

// CreateNode adds a category node to a group
// @Summary     Create a node
// @Tags        groups
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Group ID"
// @Param       request body CreateNodeRequest true "Node details"
// @Success     201 {object} map[string]interface{} "Node created"
// @Failure     403 {object} ErrorResponse "Not a member"
// @Router      /groups/{id}/nodes [post]
func (h *GroupHandler) CreateNode(c *gin.Context) {
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

	var req CreateNodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	node, err := h.groupService.CreateNode(userID, groupID, req.Label, req.X, req.Y)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"node": node})
}

// UpdateNode updates a node's label or position
// @Summary     Update a node
// @Tags        groups
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Node ID"
// @Param       request body UpdateNodeRequest true "Node updates"
// @Success     200 {object} map[string]interface{} "Node updated"
// @Failure     404 {object} ErrorResponse "Node not found"
// @Router      /nodes/{id} [patch]
func (h *GroupHandler) UpdateNode(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	nodeID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateNodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	node, err := h.groupService.UpdateNode(userID, nodeID, req.Label, req.X, req.Y)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"node": node})
}

// DeleteNode deletes a node; its events survive unassigned
// @Summary     Delete a node
// @Tags        groups
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Node ID"
// @Success     200 {object} map[string]interface{} "Node deleted"
// @Failure     404 {object} ErrorResponse "Node not found"
// @Router      /nodes/{id} [delete]
func (h *GroupHandler) DeleteNode(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	nodeID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.groupService.DeleteNode(userID, nodeID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
