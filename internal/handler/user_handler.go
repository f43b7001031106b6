// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"errors"
	"net/http"

	"chatbot-go/internal/service"
	"chatbot-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// UserHandler 负责处理所有与用户相关的 API 请求。
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler 创建一个新的 UserHandler 实例。
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRequest 定义了用户注册 API 的请求体结构。
type RegisterRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register 处理用户注册请求。
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	// 绑定并验证 JSON 请求体
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("Register: Invalid request payload, error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Full name, username and password are required",
		})
		return
	}

	// 调用 service 层执行注册逻辑
	err := h.userService.Register(c.Request.Context(), req.FullName, req.Username, req.Password)
	if errors.Is(err, service.ErrUserExists) {
		log.Warnf("Register: Username '%s' already taken", req.Username)
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"message": "User already exists",
		})
		return
	}
	if err != nil {
		// 存储层错误不向外泄露内部细节
		log.Error("Register: Failed to register user", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Registration failed, please try again later",
		})
		return
	}

	log.Infof("User '%s' registered successfully", req.Username)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User registered successfully",
	})
}

// LoginRequest 定义了用户登录 API 的请求体结构。
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login 处理用户登录请求。
// 设计上不签发 token 也不创建会话，成功响应只对本次请求有效。
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("Login: Invalid request payload, error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Username and password are required",
		})
		return
	}

	// 调用 service 层执行登录逻辑
	user, err := h.userService.Login(c.Request.Context(), req.Username, req.Password)
	if errors.Is(err, service.ErrUserNotFound) {
		log.Warnf("Login: Unknown username '%s'", req.Username)
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "User not found",
		})
		return
	}
	if errors.Is(err, service.ErrInvalidPassword) {
		log.Warnf("Login: Incorrect password for '%s'", req.Username)
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Incorrect password",
		})
		return
	}
	if err != nil {
		log.Error("Login: Failed to authenticate user", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Login failed, please try again later",
		})
		return
	}

	log.Infof("User '%s' logged in successfully", user.Username)
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Login successful",
		"username": user.Username,
	})
}
