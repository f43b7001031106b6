// Package model 定义了与 MongoDB 集合对应的 Go 结构体。
package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChatEntry 代表一次单独的问答交互，对应 'chats' 集合。
// 记录一经写入即不可变，同一用户的记录按 CreatedAt 升序排列。
type ChatEntry struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	// Username 是记录归属用户的标识。不校验该用户是否真实存在，
	// 允许悬空引用（与来源系统行为保持一致）。
	Username string `bson:"username" json:"username"`
	// UserMessage 是用户提交的提问原文。
	UserMessage string `bson:"userMessage" json:"userMessage"`
	// BotReply 是模型返回的回答；当上游服务不可用时为固定的降级文案。
	BotReply string `bson:"botReply" json:"botReply"`
	// CreatedAt 在写入时取当前时间。
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// CollectionName 指定了此模型在数据库中对应的集合名。
func (ChatEntry) CollectionName() string {
	return "chats"
}
