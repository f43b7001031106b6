// Package repository 定义了与数据库进行数据交换的接口和实现。
package repository

import (
	"context"
	"errors"

	"chatbot-go/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound 表示查询的记录不存在。
var ErrNotFound = errors.New("record not found")

// ErrDuplicate 表示写入违反了唯一索引约束。
var ErrDuplicate = errors.New("duplicate record")

// UserRepository 接口定义了用户数据的持久化操作。
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	EnsureIndexes(ctx context.Context) error
}

// userRepository 是 UserRepository 接口的 MongoDB 实现。
type userRepository struct {
	coll *mongo.Collection
}

// NewUserRepository 创建一个新的 UserRepository 实例。
func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepository{coll: db.Collection(model.User{}.CollectionName())}
}

// EnsureIndexes 创建 users 集合的索引：
// username 唯一索引是并发重复注册的最终防线（存在性预检查只是快速路径）；
// email 稀疏唯一索引允许任意数量的文档不带 email 字段。
func (r *userRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
	})
	return err
}

// Create 在数据库中创建一个新的用户记录。
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	_, err := r.coll.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

// FindByUsername 根据用户名从数据库中查找一个用户。
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
