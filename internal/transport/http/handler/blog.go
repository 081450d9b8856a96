package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-gin-gorm-blog/internal/domain"
	"go-gin-gorm-blog/internal/service"
)

type BlogHandler struct {
	blogs      *service.BlogService
	engagement *service.EngagementService
	log        *zap.Logger
}

func NewBlogHandler(blogs *service.BlogService, engagement *service.EngagementService, log *zap.Logger) *BlogHandler {
	return &BlogHandler{blogs: blogs, engagement: engagement, log: log}
}

func blogQuery(c *gin.Context) service.BlogQuery {
	return service.BlogQuery{
		Page:       pageOf(c),
		CategoryID: c.Query("categoryId"),
		Status:     c.Query("status"),
		Search:     c.Query("search"),
	}
}

func (h *BlogHandler) List() gin.HandlerFunc {
	return Handle(h.log, BindNone, http.StatusOK, func(c *gin.Context, _ *none) (domain.Page[domain.BlogView], error) {
		return h.blogs.List(c.Request.Context(), blogQuery(c))
	})
}

func (h *BlogHandler) PublicList() gin.HandlerFunc {
	return Handle(h.log, BindNone, http.StatusOK, func(c *gin.Context, _ *none) (domain.Page[domain.BlogView], error) {
		return h.blogs.ListPublic(c.Request.Context(), blogQuery(c))
	})
}

func (h *BlogHandler) Get() gin.HandlerFunc {
	return Handle(h.log, BindNone, http.StatusOK, func(c *gin.Context, _ *none) (gin.H, error) {
		d, err := h.blogs.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			return nil, err
		}
		return gin.H{"blog": d}, nil
	})
}

func (h *BlogHandler) PublicGet() gin.HandlerFunc {
	return Handle(h.log, BindNone, http.StatusOK, func(c *gin.Context, _ *none) (gin.H, error) {
		d, err := h.blogs.GetPublic(c.Request.Context(), c.Param("id"))
		if err != nil {
			return nil, err
		}
		return gin.H{"blog": d}, nil
	})
}

func (h *BlogHandler) Mine() gin.HandlerFunc {
	return Handle(h.log, BindNone, http.StatusOK, func(c *gin.Context, _ *none) (domain.Page[domain.BlogView], error) {
		p, err := principal(c)
		if err != nil {
			return domain.Page[domain.BlogView]{}, err
		}
		return h.blogs.ListMine(c.Request.Context(), p, service.MyBlogsQuery{
			Page:      pageOf(c),
			Status:    c.Query("status"),
			StartDate: c.Query("startDate"),
			EndDate:   c.Query("endDate"),
		})
	})
}

func (h *BlogHandler) Create() gin.HandlerFunc {
	return Handle(h.log, BindJSON, http.StatusCreated, func(c *gin.Context, in *service.BlogInput) (*service.BlogResult, error) {
		p, err := principal(c)
		if err != nil {
			return nil, err
		}
		return h.blogs.Create(c.Request.Context(), p, *in)
	})
}

func (h *BlogHandler) Update() gin.HandlerFunc {
	return Handle(h.log, BindJSON, http.StatusOK, func(c *gin.Context, in *service.BlogInput) (*service.BlogResult, error) {
		p, err := principal(c)
		if err != nil {
			return nil, err
		}
		return h.blogs.Update(c.Request.Context(), p, c.Param("id"), *in)
	})
}

func (h *BlogHandler) Delete() gin.HandlerFunc {
	return Handle(h.log, BindNone, http.StatusOK, func(c *gin.Context, _ *none) (messageOut, error) {
		p, err := principal(c)
		if err != nil {
			return messageOut{}, err
		}
		if err := h.blogs.Delete(c.Request.Context(), p, c.Param("id")); err != nil {
			return messageOut{}, err
		}
		return messageOut{Message: "Blog deleted successfully"}, nil
	})
}

func (h *BlogHandler) ToggleLike() gin.HandlerFunc {
	return Handle(h.log, BindNone, http.StatusOK, func(c *gin.Context, _ *none) (*service.LikeResult, error) {
		p, err := principal(c)
		if err != nil {
			return nil, err
		}
		return h.engagement.ToggleLike(c.Request.Context(), p, c.Param("id"))
	})
}

func (h *BlogHandler) AddComment() gin.HandlerFunc {
	return Handle(h.log, BindJSON, http.StatusCreated, func(c *gin.Context, in *service.CommentInput) (*service.CommentResult, error) {
		p, err := principal(c)
		if err != nil {
			return nil, err
		}
		return h.engagement.AddComment(c.Request.Context(), p, c.Param("id"), *in)
	})
}

func (h *BlogHandler) Comments() gin.HandlerFunc {
	return Handle(h.log, BindNone, http.StatusOK, func(c *gin.Context, _ *none) (domain.Page[domain.CommentView], error) {
		return h.engagement.ListComments(c.Request.Context(), c.Param("id"), pageOf(c))
	})
}
