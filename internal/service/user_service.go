// Package service 包含了应用的业务逻辑层。
package service

import (
	"context"
	"errors"
	"time"

	"chatbot-go/internal/model"
	"chatbot-go/internal/repository"
	"chatbot-go/pkg/hash"
	"chatbot-go/pkg/log"
)

// 用户相关的业务错误，由 handler 层翻译成对外的状态码与文案。
var (
	ErrUserExists      = errors.New("user already exists")
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidPassword = errors.New("incorrect password")
)

// UserService 接口定义了所有与用户相关的业务操作。
type UserService interface {
	Register(ctx context.Context, fullName, username, password string) error
	Login(ctx context.Context, username, password string) (*model.User, error)
}

// userService 是 UserService 接口的实现。
type userService struct {
	userRepo repository.UserRepository
	hashCost int
}

// NewUserService 创建一个新的 UserService 实例。
func NewUserService(userRepo repository.UserRepository, hashCost int) UserService {
	return &userService{
		userRepo: userRepo,
		hashCost: hashCost,
	}
}

// Register 处理用户注册的业务逻辑。
func (s *userService) Register(ctx context.Context, fullName, username, password string) error {
	// 1. 检查用户名是否已存在（快速路径；最终由唯一索引保证）
	_, err := s.userRepo.FindByUsername(ctx, username)
	if err == nil {
		return ErrUserExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	// 2. 对密码进行哈希处理，绝不落库明文
	hashedPassword, err := hash.HashPassword(password, s.hashCost)
	if err != nil {
		return err
	}

	// 3. 创建新用户
	newUser := &model.User{
		FullName:  fullName,
		Username:  username,
		Password:  hashedPassword,
		CreatedAt: time.Now(),
	}

	// 4. 将用户存入数据库。并发下两个注册可能同时通过预检查，
	// 此时唯一索引会拒绝后写入的一方。
	err = s.userRepo.Create(ctx, newUser)
	if errors.Is(err, repository.ErrDuplicate) {
		return ErrUserExists
	}
	if err != nil {
		log.Errorf("[UserService] 创建用户失败, username: %s, error: %v", username, err)
		return err
	}

	return nil
}

// Login 处理用户登录的业务逻辑。
// 成功时返回用户对象；不签发任何 token，调用方仅将本次响应视为已认证。
func (s *userService) Login(ctx context.Context, username, password string) (*model.User, error) {
	// 1. 查找用户
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	// 2. 验证密码
	if !hash.CheckPasswordHash(password, user.Password) {
		return nil, ErrInvalidPassword
	}

	return user, nil
}
