// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler 提供健康探针接口。
type HealthHandler struct{}

// NewHealthHandler 创建一个新的 HealthHandler 实例。
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Check 返回固定的存活确认信息。
func (h *HealthHandler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "API is running"})
}
