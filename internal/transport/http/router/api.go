package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"go-gin-gorm-blog/internal/core/auth"
	"go-gin-gorm-blog/internal/core/cache"
	"go-gin-gorm-blog/internal/core/config"
	"go-gin-gorm-blog/internal/core/server"
	"go-gin-gorm-blog/internal/domain"
	"go-gin-gorm-blog/internal/repo"
	"go-gin-gorm-blog/internal/service"
	"go-gin-gorm-blog/internal/transport/http/handler"
	mdw "go-gin-gorm-blog/internal/transport/http/middleware"
)

type Deps struct {
	Log    *zap.Logger
	DB     *gorm.DB
	JWT    *auth.JWTer
	Cache  *cache.Cache // 可为 nil
	Limits config.Limits
	Server server.Options

	PublicCacheTTL time.Duration
	// Registry 为 nil 时新建，并带上 Go/进程指标
	Registry *prometheus.Registry
}

func NewAPIEngine(d Deps) (*gin.Engine, error) {
	users := repo.NewUserRepo(d.DB)
	cats := repo.NewCategoryRepo(d.DB)
	blogs := repo.NewBlogRepo(d.DB)

	authSvc, err := service.NewAuthService(users, d.JWT, d.Log, service.WithBcryptCost(d.Limits.BcryptCost))
	if err != nil {
		return nil, err
	}
	blogSvc := service.NewBlogService(blogs, cats, d.Log)
	engagement := service.NewEngagementService(blogs, repo.NewLikeRepo(d.DB), repo.NewCommentRepo(d.DB), d.Log)

	authH := handler.NewAuthHandler(authSvc, d.Log)
	userH := handler.NewUserHandler(service.NewUserService(users), d.Log)
	catH := handler.NewCategoryHandler(service.NewCategoryService(cats, d.Cache, d.PublicCacheTTL, d.Log), d.Log)
	blogH := handler.NewBlogHandler(blogSvc, engagement, d.Log)

	reg := d.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}
	metrics := mdw.NewHTTPMetrics(reg)

	r := server.NewRouter(d.Server)
	r.Use(globalMiddleware(d.Log, d.Limits, metrics)...)

	r.GET("/health", health(d.DB))
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	authed := mdw.Authenticate(authSvc, d.Log)
	author := mdw.RequireRole(domain.RoleAuthor)

	a := api.Group("/auth")
	a.POST("/register", authH.Register())
	a.POST("/login", authH.Login())
	a.GET("/profile", authed, authH.Profile())

	// 读接口无需登录
	b := api.Group("/blogs")
	b.GET("", blogH.List())
	b.GET("/:id", blogH.Get())
	b.GET("/:id/comments", blogH.Comments())
	b.GET("/author/my-blogs", authed, author, blogH.Mine())
	b.POST("", authed, author, blogH.Create())
	b.PUT("/:id", authed, author, blogH.Update())
	b.DELETE("/:id", authed, author, blogH.Delete())
	b.POST("/:id/like", authed, blogH.ToggleLike())
	b.POST("/:id/comments", authed, blogH.AddComment())

	c := api.Group("/categories")
	c.GET("", catH.List())
	c.GET("/:id", catH.Get())
	c.POST("", authed, author, catH.Create())
	c.PUT("/:id", authed, author, catH.Update())
	c.DELETE("/:id", authed, author, catH.Delete())

	p := api.Group("/public")
	p.GET("/blogs", blogH.PublicList())
	p.GET("/blogs/:id", blogH.PublicGet())
	p.GET("/categories", catH.Public())

	u := api.Group("/users", authed)
	u.GET("", userH.List())
	u.GET("/:id", userH.Get())

	return r, nil
}

// globalMiddleware 顺序：请求 ID → 恢复 → 指标/日志 → 限流 → 并发 → 超时 → 请求体
func globalMiddleware(l *zap.Logger, lim config.Limits, m *mdw.HTTPMetrics) []gin.HandlerFunc {
	hs := []gin.HandlerFunc{
		mdw.RequestID(),
		mdw.Recovery(l),
		m.Middleware(),
		mdw.AccessLog(l),
	}
	if lim.RPS > 0 {
		hs = append(hs, mdw.RateLimit(rate.Limit(lim.RPS), max(lim.Burst, 1)))
	}
	if lim.PerIPRPS > 0 {
		hs = append(hs, mdw.RateLimitPerIP(rate.Limit(lim.PerIPRPS), max(lim.PerIPBurst, 1)))
	}
	return append(hs,
		mdw.ConcurrencyLimit(lim.MaxConcurrent),
		mdw.Timeout(time.Duration(lim.TimeoutSec)*time.Second),
		mdw.MaxBodyBytes(lim.MaxBodyBytes),
	)
}

func health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"ok": 0, "db": "down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": 1, "db": "up"})
	}
}
