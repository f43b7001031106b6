// Package repository 提供了数据访问层的实现。
package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"chatbot-go/internal/model"
	"chatbot-go/pkg/log"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// historyCacheTTL 是历史记录缓存的过期时间。
const historyCacheTTL = 10 * time.Minute

// ChatRepository 定义了问答记录的持久化操作接口。
// MongoDB 是权威存储，Redis 仅作为 history 查询的读穿缓存。
type ChatRepository interface {
	Append(ctx context.Context, entry *model.ChatEntry) error
	FindByUsername(ctx context.Context, username string) ([]model.ChatEntry, error)
}

type chatRepository struct {
	coll        *mongo.Collection
	redisClient *redis.Client
}

// NewChatRepository 创建一个新的 ChatRepository 实例。
// redisClient 传 nil 时禁用缓存，所有读取直达 MongoDB。
func NewChatRepository(db *mongo.Database, redisClient *redis.Client) ChatRepository {
	return &chatRepository{
		coll:        db.Collection(model.ChatEntry{}.CollectionName()),
		redisClient: redisClient,
	}
}

// Append 写入一条不可变的问答记录，写入时间取当前时间。
// 写入成功后使该用户的历史缓存失效，保证下次读取看到新记录。
func (r *chatRepository) Append(ctx context.Context, entry *model.ChatEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	if _, err := r.coll.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("failed to insert chat entry: %w", err)
	}

	if r.redisClient != nil {
		if err := r.redisClient.Del(ctx, historyCacheKey(entry.Username)).Err(); err != nil {
			// 缓存失效失败不影响写入结果，TTL 会兜底
			log.Warnf("Failed to invalidate history cache for '%s': %v", entry.Username, err)
		}
	}
	return nil
}

// FindByUsername 返回指定用户的全部问答记录，按 createdAt 升序排列。
// 没有记录时返回空切片而不是错误。
func (r *chatRepository) FindByUsername(ctx context.Context, username string) ([]model.ChatEntry, error) {
	if r.redisClient != nil {
		if entries, ok := r.historyFromCache(ctx, username); ok {
			return entries, nil
		}
	}

	findOpts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"username": username}, findOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to query chat entries: %w", err)
	}
	defer cursor.Close(ctx)

	entries := make([]model.ChatEntry, 0)
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode chat entries: %w", err)
	}

	if r.redisClient != nil {
		r.cacheHistory(ctx, username, entries)
	}
	return entries, nil
}

// historyFromCache 尝试从 Redis 读取历史记录，命中返回 (entries, true)。
func (r *chatRepository) historyFromCache(ctx context.Context, username string) ([]model.ChatEntry, bool) {
	jsonData, err := r.redisClient.Get(ctx, historyCacheKey(username)).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.Warnf("Failed to read history cache for '%s': %v", username, err)
		return nil, false
	}
	var entries []model.ChatEntry
	if err := json.Unmarshal([]byte(jsonData), &entries); err != nil {
		log.Warnf("Failed to unmarshal cached history for '%s': %v", username, err)
		return nil, false
	}
	return entries, true
}

// cacheHistory 将查询结果写入 Redis，失败只记录日志。
func (r *chatRepository) cacheHistory(ctx context.Context, username string, entries []model.ChatEntry) {
	jsonData, err := json.Marshal(entries)
	if err != nil {
		return
	}
	if err := r.redisClient.Set(ctx, historyCacheKey(username), jsonData, historyCacheTTL).Err(); err != nil {
		log.Warnf("Failed to cache history for '%s': %v", username, err)
	}
}

func historyCacheKey(username string) string {
	return fmt.Sprintf("history:%s", username)
}
