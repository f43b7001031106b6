// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"net/http"

	"chatbot-go/internal/service"
	"chatbot-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// ChatHandler 负责处理聊天与历史记录相关的 API 请求。
type ChatHandler struct {
	chatService service.ChatService
}

// NewChatHandler 创建一个新的 ChatHandler 实例。
func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// ChatRequest 定义了聊天 API 的请求体结构。
// Username 可选：提供时本次交换会被持久化，且按来源系统的行为
// 直接信任客户端提交的用户名，不做校验。
type ChatRequest struct {
	Message  string `json:"message" binding:"required"`
	Username string `json:"username"`
}

// Chat 处理一次问答请求。
// 上游模型的失败不会产生 5xx——service 层已将其降级为固定文案；
// 这里出现的错误只可能是落库失败，按请求级失败返回。
func (h *ChatHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("Chat: Invalid request payload, error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Message is required",
		})
		return
	}

	reply, err := h.chatService.Chat(c.Request.Context(), req.Username, req.Message)
	if err != nil {
		// 回答此时已经计算出来，但无法随错误响应返回——这是已接受的局限
		log.Error("Chat: Failed to persist chat entry", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to save chat history",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

// History 返回指定用户的问答历史，按时间升序。
// username 缺失时返回空数组，不触发存储查询。
func (h *ChatHandler) History(c *gin.Context) {
	username := c.Query("username")

	entries, err := h.chatService.History(c.Request.Context(), username)
	if err != nil {
		log.Error("History: Failed to retrieve chat history", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to retrieve chat history",
		})
		return
	}

	c.JSON(http.StatusOK, entries)
}
