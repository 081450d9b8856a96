package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-gin-gorm-blog/internal/domain"
	mdw "go-gin-gorm-blog/internal/transport/http/middleware"
	resp "go-gin-gorm-blog/internal/transport/http/response"
)

// 绑定方式
type Binder string

const (
	BindJSON Binder = "json" // 从 JSON 绑定
	BindNone Binder = "none" // 不绑定，自己从 c.Param / c.Query 取
)

// Handle 绑定 → 执行 → 统一错误映射；成功按 status 返回。I 入参，O 出参
func Handle[I any, O any](l *zap.Logger, b Binder, status int, fn func(c *gin.Context, in *I) (O, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in I
		if b == BindJSON {
			if err := c.ShouldBindJSON(&in); err != nil {
				var tooLarge *http.MaxBytesError
				if errors.As(err, &tooLarge) {
					c.AbortWithStatusJSON(resp.CodeBodyTooLarge, resp.Error(resp.CodeBodyTooLarge, ""))
					return
				}
				c.AbortWithStatusJSON(resp.CodeBadRequest, resp.Error(resp.CodeBadRequest, "Invalid request body"))
				return
			}
		}
		out, err := fn(c, &in)
		if err != nil {
			Fail(c, l, err)
			return
		}
		c.JSON(status, resp.OK(out))
	}
}

// Fail 5xx 记录原因，响应里只有通用文案
func Fail(c *gin.Context, l *zap.Logger, err error) {
	status, body := resp.FromError(err)
	if status >= http.StatusInternalServerError {
		l.Error("request failed",
			zap.String("rid", c.GetString(mdw.KeyRequestID)),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	c.AbortWithStatusJSON(status, body)
}

// principal 只在 Authenticate 之后的路由上调用
func principal(c *gin.Context) (domain.Principal, error) {
	p, ok := mdw.CurrentPrincipal(c)
	if !ok {
		return domain.Principal{}, domain.Unauthorized("Access token required")
	}
	return p, nil
}

func pageOf(c *gin.Context) domain.PageRequest {
	return domain.ParsePage(c.Query("page"), c.Query("limit"))
}

type messageOut struct {
	Message string `json:"message"`
}

type none struct{}
