package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/smartedu-api/internal/dto"
	"github.com/noah-isme/smartedu-api/internal/models"
	"github.com/noah-isme/smartedu-api/internal/service"
	appErrors "github.com/noah-isme/smartedu-api/pkg/errors"
)

type fakeChatbot struct {
	reply      models.Reply
	err        error
	lastReq    dto.ChatbotRequest
	lastCaller *service.Caller
}

func (f *fakeChatbot) Respond(_ context.Context, req dto.ChatbotRequest, caller *service.Caller) (models.Reply, error) {
	f.lastReq = req
	f.lastCaller = caller
	return f.reply, f.err
}

type fakeChat struct {
	res        *dto.ChatResponse
	err        error
	history    []models.ChatLogEntry
	lastUserID int64
	lastCaller *service.Caller
}

func (f *fakeChat) Chat(_ context.Context, _ dto.ChatRequest, caller *service.Caller) (*dto.ChatResponse, error) {
	f.lastCaller = caller
	return f.res, f.err
}

func (f *fakeChat) History(_ context.Context, userID int64) ([]models.ChatLogEntry, error) {
	f.lastUserID = userID
	return f.history, f.err
}

func TestChatbotReturnsFlatReply(t *testing.T) {
	bot := &fakeChatbot{reply: models.Reply{
		Intent:     models.IntentGoodbye,
		Text:       "Goodbye!",
		Confidence: 1,
		Data:       map[string]interface{}{},
	}}
	handler := NewChatHandler(bot, &fakeChat{})

	c, rec := newTestContext(http.MethodPost, "/chatbot", map[string]interface{}{"message": "bye for now", "student_id": 7})
	handler.Chatbot(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	decode(t, rec, &body)
	assert.Equal(t, "goodbye", body["intent"])
	assert.Equal(t, "Goodbye!", body["response"])
	assert.Equal(t, 1.0, body["confidence"])
	assert.Equal(t, map[string]interface{}{}, body["data"])
	assert.Nil(t, bot.lastCaller)
	require.NotNil(t, bot.lastReq.StudentID)
	assert.Equal(t, int64(7), *bot.lastReq.StudentID)
}

func TestChatbotPassesClaims(t *testing.T) {
	bot := &fakeChatbot{reply: models.Reply{Intent: models.IntentUnknown}}
	handler := NewChatHandler(bot, &fakeChat{})

	c, _ := newTestContext(http.MethodPost, "/chatbot", map[string]interface{}{"message": "hello"})
	withClaims(c, 1, models.RoleAdmin)
	handler.Chatbot(c)

	require.NotNil(t, bot.lastCaller)
	assert.Equal(t, int64(1), bot.lastCaller.UserID)
	assert.Equal(t, models.RoleAdmin, bot.lastCaller.Role)
}

func TestChatbotEmptyMessageIsBadRequest(t *testing.T) {
	bot := &fakeChatbot{err: appErrors.Clone(appErrors.ErrValidation, "message is required")}
	handler := NewChatHandler(bot, &fakeChat{})

	c, rec := newTestContext(http.MethodPost, "/chatbot", map[string]interface{}{"message": ""})
	handler.Chatbot(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var envelope responseEnvelope
	decode(t, rec, &envelope)
	assert.Equal(t, appErrors.ErrValidation.Code, envelope.Error.Code)
}

func TestChatbotMalformedBody(t *testing.T) {
	handler := NewChatHandler(&fakeChatbot{}, &fakeChat{})

	c, rec := newTestContext(http.MethodPost, "/chatbot", "not-an-object")
	handler.Chatbot(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatbotStatus(t *testing.T) {
	handler := NewChatHandler(&fakeChatbot{}, &fakeChat{})

	c, rec := newTestContext(http.MethodGet, "/chatbot", nil)
	handler.ChatbotStatus(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	decode(t, rec, &body)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "/chatbot", body["endpoint"])
	assert.Equal(t, "POST", body["method"])
}

func TestChatReturnsResponse(t *testing.T) {
	chat := &fakeChat{res: &dto.ChatResponse{Response: "Hi", Intent: "greet", Confidence: 0.9, SessionID: "smartedu-session-107"}}
	handler := NewChatHandler(&fakeChatbot{}, chat)

	c, rec := newTestContext(http.MethodPost, "/chat", map[string]interface{}{"message": "hi"})
	withClaims(c, 107, models.RoleStudent)
	handler.Chat(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	decode(t, rec, &body)
	assert.Equal(t, "Hi", body["response"])
	assert.Equal(t, "greet", body["intent"])
	assert.Equal(t, "smartedu-session-107", body["session_id"])
	assert.NotContains(t, body, "table")
	require.NotNil(t, chat.lastCaller)
	assert.Equal(t, int64(107), chat.lastCaller.UserID)
}

func TestChatInternalError(t *testing.T) {
	chat := &fakeChat{err: appErrors.ErrInternal}
	handler := NewChatHandler(&fakeChatbot{}, chat)

	c, rec := newTestContext(http.MethodPost, "/chat", map[string]interface{}{"message": "hi"})
	handler.Chat(c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestChatHistory(t *testing.T) {
	uid := int64(107)
	chat := &fakeChat{history: []models.ChatLogEntry{{ID: 1, UserID: &uid, Message: "hi", Response: "Hello"}}}
	handler := NewChatHandler(&fakeChatbot{}, chat)

	c, rec := newTestContext(http.MethodGet, "/chat/107", nil)
	c.Params = gin.Params{{Key: "user_id", Value: "107"}}
	handler.History(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var envelope listEnvelope
	decode(t, rec, &envelope)
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "hi", envelope.Data[0]["message"])
	assert.Equal(t, int64(107), chat.lastUserID)
}

func TestChatHistoryInvalidID(t *testing.T) {
	handler := NewChatHandler(&fakeChatbot{}, &fakeChat{})

	c, rec := newTestContext(http.MethodGet, "/chat/abc", nil)
	c.Params = gin.Params{{Key: "user_id", Value: "abc"}}
	handler.History(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
