// Package service 包含了应用的业务逻辑层。
package service

import (
	"context"

	"chatbot-go/internal/model"
	"chatbot-go/internal/repository"
	"chatbot-go/pkg/llm"
	"chatbot-go/pkg/log"
)

// DegradedReply 是上游模型服务不可用时返回给用户的固定降级文案。
const DegradedReply = "Sorry, I'm having trouble responding right now. Please try again in a moment."

// EventPublisher 将完成的问答交换发布给下游消费者（如 Kafka）。
type EventPublisher interface {
	PublishChatEvent(ctx context.Context, entry model.ChatEntry) error
}

// ChatService 定义了聊天操作的接口。
type ChatService interface {
	// Chat 执行一次完整的问答流程并返回回答文本。
	// 上游模型失败会被降级吸收，持久化失败则作为错误返回。
	Chat(ctx context.Context, username, message string) (string, error)
	// History 返回指定用户的全部问答记录，按时间升序。
	History(ctx context.Context, username string) ([]model.ChatEntry, error)
}

type chatService struct {
	llmClient llm.Client
	chatRepo  repository.ChatRepository
	publisher EventPublisher
}

// NewChatService 创建一个新的 ChatService 实例。
// publisher 传 nil 时禁用事件发布。
func NewChatService(llmClient llm.Client, chatRepo repository.ChatRepository, publisher EventPublisher) ChatService {
	return &chatService{
		llmClient: llmClient,
		chatRepo:  chatRepo,
		publisher: publisher,
	}
}

// Chat 协调一次问答交互。
// 设计约定的不对称性：上游模型被认为不可靠且非关键，失败时静默降级；
// 数据库被认为可靠，落库失败是需要暴露的运维信号。
func (s *chatService) Chat(ctx context.Context, username, message string) (string, error) {
	// 1. 调用上游模型
	reply, err := s.llmClient.Complete(ctx, message)
	if err != nil {
		// 任何上游失败（非 2xx、空回答、网络异常）都替换为降级文案，
		// 原始错误只进日志，不透传给用户
		log.Errorf("[ChatService] LLM completion failed, degrading: %v", err)
		reply = DegradedReply
	}

	// 2. 若提供了用户名，持久化本次交换（无论回答是真实的还是降级的）
	if username != "" {
		entry := &model.ChatEntry{
			Username:    username,
			UserMessage: message,
			BotReply:    reply,
		}
		if err := s.chatRepo.Append(ctx, entry); err != nil {
			log.Errorf("[ChatService] Failed to save chat entry for '%s': %v", username, err)
			return "", err
		}

		// 3. 发布问答事件，失败只记录日志不影响响应
		if s.publisher != nil {
			if err := s.publisher.PublishChatEvent(ctx, *entry); err != nil {
				log.Warnf("[ChatService] Failed to publish chat event for '%s': %v", username, err)
			}
		}
	}

	return reply, nil
}

// History 获取用户的问答历史。用户名为空时直接返回空序列，不查询存储。
func (s *chatService) History(ctx context.Context, username string) ([]model.ChatEntry, error) {
	if username == "" {
		return []model.ChatEntry{}, nil
	}
	return s.chatRepo.FindByUsername(ctx, username)
}
