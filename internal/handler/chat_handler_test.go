package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"chatbot-go/internal/model"
	"chatbot-go/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// fakeChatService 是 service.ChatService 的可编程替身。
type fakeChatService struct {
	reply      string
	chatErr    error
	history    []model.ChatEntry
	historyErr error
	gotUser    string
	gotMessage string
}

func (s *fakeChatService) Chat(ctx context.Context, username, message string) (string, error) {
	s.gotUser = username
	s.gotMessage = message
	if s.chatErr != nil {
		return "", s.chatErr
	}
	return s.reply, nil
}

func (s *fakeChatService) History(ctx context.Context, username string) ([]model.ChatEntry, error) {
	if s.historyErr != nil {
		return nil, s.historyErr
	}
	if username == "" {
		return []model.ChatEntry{}, nil
	}
	return s.history, nil
}

func newChatRouter(svc service.ChatService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewChatHandler(svc)
	r.POST("/api/v1/chat", h.Chat)
	r.GET("/api/v1/chat/history", h.History)
	r.GET("/api/v1/health", NewHealthHandler().Check)
	return r
}

func TestChatEndpoint_Success(t *testing.T) {
	svc := &fakeChatService{reply: "hello back"}
	r := newChatRouter(svc)

	w := postJSON(t, r, "/api/v1/chat", map[string]string{
		"message": "hello", "username": "ab",
	})

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "hello back", decodeBody(t, w)["reply"])
	require.Equal(t, "ab", svc.gotUser)
	require.Equal(t, "hello", svc.gotMessage)
}

func TestChatEndpoint_MissingMessage(t *testing.T) {
	svc := &fakeChatService{reply: "hello back"}
	r := newChatRouter(svc)

	w := postJSON(t, r, "/api/v1/chat", map[string]string{"username": "ab"})

	require.Equal(t, http.StatusBadRequest, w.Code)
	// 校验失败时不触达 service（既不调上游也不落库）
	require.Empty(t, svc.gotMessage)
}

func TestChatEndpoint_AnonymousAllowed(t *testing.T) {
	svc := &fakeChatService{reply: "hi"}
	r := newChatRouter(svc)

	w := postJSON(t, r, "/api/v1/chat", map[string]string{"message": "hello"})

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "hi", decodeBody(t, w)["reply"])
	require.Empty(t, svc.gotUser)
}

func TestChatEndpoint_PersistenceFailure(t *testing.T) {
	svc := &fakeChatService{chatErr: errors.New("mongo unavailable")}
	r := newChatRouter(svc)

	w := postJSON(t, r, "/api/v1/chat", map[string]string{
		"message": "hello", "username": "ab",
	})

	require.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decodeBody(t, w)
	require.Equal(t, false, resp["success"])
	// 不泄露内部错误细节
	require.NotContains(t, resp["message"], "mongo")
}

func TestHistoryEndpoint(t *testing.T) {
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	entries := []model.ChatEntry{
		{Username: "ab", UserMessage: "q1", BotReply: "r1", CreatedAt: base},
		{Username: "ab", UserMessage: "q2", BotReply: "r2", CreatedAt: base.Add(time.Minute)},
		{Username: "ab", UserMessage: "q3", BotReply: "r3", CreatedAt: base.Add(2 * time.Minute)},
	}

	t.Run("returns entries in order", func(t *testing.T) {
		r := newChatRouter(&fakeChatService{history: entries})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/chat/history?username=ab", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var got []model.ChatEntry
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		require.Len(t, got, 3)
		for i, want := range []string{"q1", "q2", "q3"} {
			require.Equal(t, want, got[i].UserMessage)
		}
	})

	t.Run("missing username yields empty array", func(t *testing.T) {
		r := newChatRouter(&fakeChatService{history: entries})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/chat/history", nil))

		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, "[]", w.Body.String())
	})

	t.Run("storage failure is a 500", func(t *testing.T) {
		r := newChatRouter(&fakeChatService{historyErr: errors.New("mongo unavailable")})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/chat/history?username=ab", nil))

		require.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestHealthEndpoint(t *testing.T) {
	r := newChatRouter(&fakeChatService{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "API is running", decodeBody(t, w)["message"])
}
