// Package model 定义了与 MongoDB 集合对应的 Go 结构体。
package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User 对应于数据库中的 'users' 集合。
type User struct {
	// ID 是 MongoDB 自动生成的文档主键。
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	// FullName 是用户的显示名称，可以为空。
	FullName string `bson:"fullName,omitempty" json:"fullName"`
	// Username 是用户的唯一标识，作为登录键，由唯一索引保证不重复。
	Username string `bson:"username" json:"username"`
	// Email 是可选的邮箱地址。omitempty 保证未填写时字段不落库，
	// 配合稀疏唯一索引实现"填写即唯一、不填不限"的约束。
	Email string `bson:"email,omitempty" json:"email,omitempty"`
	// Password 只存储 bcrypt 哈希，绝不存储明文。序列化到 JSON 时始终忽略。
	Password string `bson:"password" json:"-"`
	// CreatedAt 记录用户创建时间。
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// CollectionName 指定了此模型在数据库中对应的集合名。
func (User) CollectionName() string {
	return "users"
}
