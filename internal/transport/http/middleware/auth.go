package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-gin-gorm-blog/internal/domain"
	resp "go-gin-gorm-blog/internal/transport/http/response"
)

const keyPrincipal = "principal"

// Resolver 由 service.AuthService 实现
type Resolver interface {
	Resolve(ctx context.Context, token string) (domain.Principal, error)
}

// Authenticate 校验 Bearer token，把 Principal 挂到请求上
func Authenticate(r Resolver, l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := r.Resolve(c.Request.Context(), bearer(c.GetHeader("Authorization")))
		if err != nil {
			status, body := resp.FromError(err)
			if status >= http.StatusInternalServerError {
				l.Error("resolve principal failed",
					zap.String("rid", c.GetString(KeyRequestID)),
					zap.String("path", c.FullPath()),
					zap.Error(err),
				)
			}
			c.AbortWithStatusJSON(status, body)
			return
		}
		SetPrincipal(c, p)
		c.Next()
	}
}

// RequireRole 必须在 Authenticate 之后
func RequireRole(role domain.Role) gin.HandlerFunc {
	msg := "Reader access required"
	if role == domain.RoleAuthor {
		msg = "Author access required"
	}
	return func(c *gin.Context) {
		p, ok := CurrentPrincipal(c)
		if !ok {
			c.AbortWithStatusJSON(resp.CodeUnauthorized, resp.Error(resp.CodeUnauthorized, "Access token required"))
			return
		}
		if !p.Is(role) {
			c.AbortWithStatusJSON(resp.CodeForbidden, resp.Error(resp.CodeForbidden, msg))
			return
		}
		c.Next()
	}
}

func SetPrincipal(c *gin.Context, p domain.Principal) { c.Set(keyPrincipal, p) }

func CurrentPrincipal(c *gin.Context) (domain.Principal, bool) {
	v, ok := c.Get(keyPrincipal)
	if !ok {
		return domain.Principal{}, false
	}
	p, ok := v.(domain.Principal)
	return p, ok
}

func bearer(h string) string {
	scheme, tok, ok := strings.Cut(strings.TrimSpace(h), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(tok)
}
