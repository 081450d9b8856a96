package middleware

import (
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	resp "go-gin-gorm-blog/internal/transport/http/response"
)

// Recovery panic 记日志（含堆栈），响应统一 500
func Recovery(l *zap.Logger) gin.HandlerFunc {
	return ginzap.CustomRecoveryWithZap(l, true, func(c *gin.Context, _ any) {
		c.AbortWithStatusJSON(resp.CodeServerError, resp.Error(resp.CodeServerError, ""))
	})
}
