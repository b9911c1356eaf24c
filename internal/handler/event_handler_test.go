package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/khanonymous/relay-backend/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockRelayService struct {
	mock.Mock
}

func (m *mockRelayService) HandleMessage(ctx context.Context, fromUser, toUser int64, content string, senderMessageID *int64) (int64, error) {
	args := m.Called(ctx, fromUser, toUser, content, senderMessageID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRelayService) HandleReply(ctx context.Context, fromUser, receiverMessageID int64, content string, senderMessageID *int64) (int64, error) {
	args := m.Called(ctx, fromUser, receiverMessageID, content, senderMessageID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRelayService) HandleBlock(ctx context.Context, actor, target int64) error {
	args := m.Called(ctx, actor, target)
	return args.Error(0)
}

func (m *mockRelayService) HandleBlockByMessage(ctx context.Context, actor, receiverMessageID int64) error {
	args := m.Called(ctx, actor, receiverMessageID)
	return args.Error(0)
}

func (m *mockRelayService) HandleReport(ctx context.Context, actor, receiverMessageID int64, messageText string) (int64, error) {
	args := m.Called(ctx, actor, receiverMessageID, messageText)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRelayService) HandleLinkClick(ctx context.Context, receiverID, visitorID int64) (int64, error) {
	args := m.Called(ctx, receiverID, visitorID)
	return args.Get(0).(int64), args.Error(1)
}

func setupEventRouter(relay *mockRelayService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewEventHandler(relay)
	r := gin.New()
	r.POST("/events/message", h.PostMessage)
	r.POST("/events/reply", h.PostReply)
	r.POST("/events/block", h.PostBlock)
	r.POST("/events/report", h.PostReport)
	return r
}

func postJSON(r *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPostMessage(t *testing.T) {
	t.Run("relayed", func(t *testing.T) {
		relay := new(mockRelayService)
		relay.On("HandleMessage", mock.Anything, int64(42), int64(7), "hello", (*int64)(nil)).Return(int64(1), nil)
		r := setupEventRouter(relay)

		w := postJSON(r, "/events/message", gin.H{"from_user": 42, "to_user": 7, "content": "hello"})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"correlation_id":1`)
	})

	t.Run("blocked returns 403", func(t *testing.T) {
		relay := new(mockRelayService)
		relay.On("HandleMessage", mock.Anything, int64(42), int64(7), "hello", (*int64)(nil)).Return(int64(0), common.ErrBlocked)
		r := setupEventRouter(relay)

		w := postJSON(r, "/events/message", gin.H{"from_user": 42, "to_user": 7, "content": "hello"})

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("banned returns 403", func(t *testing.T) {
		relay := new(mockRelayService)
		relay.On("HandleMessage", mock.Anything, int64(42), int64(7), "hello", (*int64)(nil)).Return(int64(0), common.ErrBanned)
		r := setupEventRouter(relay)

		w := postJSON(r, "/events/message", gin.H{"from_user": 42, "to_user": 7, "content": "hello"})

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		r := setupEventRouter(new(mockRelayService))

		w := postJSON(r, "/events/message", gin.H{"from_user": 42})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPostReply(t *testing.T) {
	t.Run("unknown correlation returns 404", func(t *testing.T) {
		relay := new(mockRelayService)
		relay.On("HandleReply", mock.Anything, int64(7), int64(555), "text", (*int64)(nil)).Return(int64(0), common.ErrNotFound)
		r := setupEventRouter(relay)

		w := postJSON(r, "/events/reply", gin.H{"from_user": 7, "receiver_message_id": 555, "content": "text"})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("relayed", func(t *testing.T) {
		relay := new(mockRelayService)
		relay.On("HandleReply", mock.Anything, int64(7), int64(555), "text", (*int64)(nil)).Return(int64(2), nil)
		r := setupEventRouter(relay)

		w := postJSON(r, "/events/reply", gin.H{"from_user": 7, "receiver_message_id": 555, "content": "text"})

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestPostBlock(t *testing.T) {
	t.Run("by target", func(t *testing.T) {
		relay := new(mockRelayService)
		relay.On("HandleBlock", mock.Anything, int64(7), int64(42)).Return(nil)
		r := setupEventRouter(relay)

		w := postJSON(r, "/events/block", gin.H{"actor": 7, "target": 42})

		assert.Equal(t, http.StatusOK, w.Code)
		relay.AssertExpectations(t)
	})

	t.Run("by message id", func(t *testing.T) {
		relay := new(mockRelayService)
		relay.On("HandleBlockByMessage", mock.Anything, int64(7), int64(555)).Return(nil)
		r := setupEventRouter(relay)

		w := postJSON(r, "/events/block", gin.H{"actor": 7, "receiver_message_id": 555})

		assert.Equal(t, http.StatusOK, w.Code)
		relay.AssertExpectations(t)
	})

	t.Run("neither target nor message id", func(t *testing.T) {
		r := setupEventRouter(new(mockRelayService))

		w := postJSON(r, "/events/block", gin.H{"actor": 7})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPostReport(t *testing.T) {
	relay := new(mockRelayService)
	relay.On("HandleReport", mock.Anything, int64(7), int64(555), "bad text").Return(int64(3), nil)
	r := setupEventRouter(relay)

	w := postJSON(r, "/events/report", gin.H{"actor": 7, "receiver_message_id": 555, "message_text": "bad text"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"report_id":3`)
}
