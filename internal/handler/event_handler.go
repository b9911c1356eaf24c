package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/khanonymous/relay-backend/internal/common"
	"github.com/khanonymous/relay-backend/internal/middleware"
	"github.com/khanonymous/relay-backend/internal/service"
)

// EventHandler handles inbound events from the messaging gateway
type EventHandler struct {
	relay service.RelayService
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(relay service.RelayService) *EventHandler {
	return &EventHandler{relay: relay}
}

// MessageEvent is the inbound first-contact send
type MessageEvent struct {
	FromUser        int64  `json:"from_user" binding:"required"`
	ToUser          int64  `json:"to_user" binding:"required"`
	Content         string `json:"content" binding:"required"`
	SenderMessageID *int64 `json:"sender_message_id,omitempty"`
}

// ReplyEvent is an inbound reply to a forwarded copy
type ReplyEvent struct {
	FromUser          int64  `json:"from_user" binding:"required"`
	ReceiverMessageID int64  `json:"receiver_message_id" binding:"required"`
	Content           string `json:"content" binding:"required"`
	SenderMessageID   *int64 `json:"sender_message_id,omitempty"`
}

// BlockEvent is an inbound block command. Either the resolved target or the
// forwarded copy's id must be present.
type BlockEvent struct {
	Actor             int64 `json:"actor" binding:"required"`
	Target            int64 `json:"target,omitempty"`
	ReceiverMessageID int64 `json:"receiver_message_id,omitempty"`
}

// ReportEvent is an inbound report command with the content snapshot
type ReportEvent struct {
	Actor             int64  `json:"actor" binding:"required"`
	ReceiverMessageID int64  `json:"receiver_message_id" binding:"required"`
	MessageText       string `json:"message_text"`
}

// PostMessage handles POST /events/message
func (h *EventHandler) PostMessage(c *gin.Context) {
	var req MessageEvent
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid message event", err)
		return
	}

	corrID, err := h.relay.HandleMessage(c.Request.Context(), req.FromUser, req.ToUser, req.Content, req.SenderMessageID)
	if err != nil {
		relayErrorResponse(c, err)
		return
	}

	middleware.CountRelayed("message")
	common.SuccessResponse(c, gin.H{"correlation_id": corrID}, nil)
}

// PostReply handles POST /events/reply
func (h *EventHandler) PostReply(c *gin.Context) {
	var req ReplyEvent
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid reply event", err)
		return
	}

	corrID, err := h.relay.HandleReply(c.Request.Context(), req.FromUser, req.ReceiverMessageID, req.Content, req.SenderMessageID)
	if err != nil {
		relayErrorResponse(c, err)
		return
	}

	middleware.CountRelayed("reply")
	common.SuccessResponse(c, gin.H{"correlation_id": corrID}, nil)
}

// PostBlock handles POST /events/block
func (h *EventHandler) PostBlock(c *gin.Context) {
	var req BlockEvent
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid block event", err)
		return
	}

	var err error
	switch {
	case req.Target != 0:
		err = h.relay.HandleBlock(c.Request.Context(), req.Actor, req.Target)
	case req.ReceiverMessageID != 0:
		err = h.relay.HandleBlockByMessage(c.Request.Context(), req.Actor, req.ReceiverMessageID)
	default:
		common.ErrorResponse(c, http.StatusBadRequest, "target or receiver_message_id required", nil)
		return
	}
	if err != nil {
		relayErrorResponse(c, err)
		return
	}

	common.SuccessResponse(c, gin.H{"blocked": true}, nil)
}

// PostReport handles POST /events/report
func (h *EventHandler) PostReport(c *gin.Context) {
	var req ReportEvent
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid report event", err)
		return
	}

	reportID, err := h.relay.HandleReport(c.Request.Context(), req.Actor, req.ReceiverMessageID, req.MessageText)
	if err != nil {
		relayErrorResponse(c, err)
		return
	}

	common.SuccessResponse(c, gin.H{"report_id": reportID}, nil)
}

// relayErrorResponse maps relay errors onto HTTP statuses. Blocked and
// banned deliveries come back as denials to the calling gateway; the
// response body never names the blocking party.
func relayErrorResponse(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrBlocked):
		middleware.CountRefused("blocked")
		common.ErrorResponse(c, http.StatusForbidden, "delivery refused", err)
	case errors.Is(err, common.ErrBanned):
		middleware.CountRefused("banned")
		common.ErrorResponse(c, http.StatusForbidden, "sender is banned", err)
	case errors.Is(err, common.ErrNotFound):
		common.ErrorResponse(c, http.StatusNotFound, "no matching message", err)
	case errors.Is(err, common.ErrInvalidInput):
		common.ErrorResponse(c, http.StatusBadRequest, "invalid input", err)
	default:
		common.ErrorResponse(c, http.StatusInternalServerError, "relay failure", err)
	}
}
