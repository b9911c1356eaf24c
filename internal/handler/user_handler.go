package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/khanonymous/relay-backend/internal/common"
	"github.com/khanonymous/relay-backend/internal/service"
)

// UserHandler serves user-facing reads and preference writes
type UserHandler struct {
	relay     service.RelayService
	directory service.DirectoryService
	stats     service.StatsService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(relay service.RelayService, directory service.DirectoryService, stats service.StatsService) *UserHandler {
	return &UserHandler{relay: relay, directory: directory, stats: stats}
}

// GetProfile handles GET /users/:id/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid user id", err)
		return
	}

	stats, err := h.stats.ProfileStats(c.Request.Context(), userID)
	if err != nil {
		relayErrorResponse(c, err)
		return
	}
	common.SuccessResponse(c, stats, nil)
}

// SetLanguageRequest is the language preference update payload
type SetLanguageRequest struct {
	Language string `json:"language" binding:"required"`
}

// SetLanguage handles PUT /users/:id/language
func (h *UserHandler) SetLanguage(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid user id", err)
		return
	}

	var req SetLanguageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "language required", err)
		return
	}

	if err := h.directory.SetLanguage(userID, req.Language); err != nil {
		relayErrorResponse(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"user_id": userID, "language": req.Language}, nil)
}

// LinkClickRequest identifies the visitor who opened an anonymous link
type LinkClickRequest struct {
	VisitorID int64 `json:"visitor_id" binding:"required"`
}

// PostLinkClick handles POST /links/:id/click
func (h *UserHandler) PostLinkClick(c *gin.Context) {
	receiverID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid link owner id", err)
		return
	}

	var req LinkClickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "visitor_id required", err)
		return
	}

	clickID, err := h.relay.HandleLinkClick(c.Request.Context(), receiverID, req.VisitorID)
	if err != nil {
		relayErrorResponse(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"click_id": clickID}, nil)
}
