package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-gin-gorm-blog/internal/domain"
	"go-gin-gorm-blog/internal/service"
)

type CategoryHandler struct {
	svc *service.CategoryService
	log *zap.Logger
}

func NewCategoryHandler(svc *service.CategoryService, log *zap.Logger) *CategoryHandler {
	return &CategoryHandler{svc: svc, log: log}
}

func (h *CategoryHandler) List() gin.HandlerFunc {
	return Handle(h.log, BindNone, http.StatusOK, func(c *gin.Context, _ *none) (domain.Page[domain.CategoryStats], error) {
		return h.svc.List(c.Request.Context(), pageOf(c))
	})
}

func (h *CategoryHandler) Get() gin.HandlerFunc {
	return Handle(h.log, BindNone, http.StatusOK, func(c *gin.Context, _ *none) (gin.H, error) {
		v, err := h.svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			return nil, err
		}
		return gin.H{"category": v}, nil
	})
}

func (h *CategoryHandler) Create() gin.HandlerFunc {
	return Handle(h.log, BindJSON, http.StatusCreated, func(c *gin.Context, in *service.CategoryInput) (*service.CategoryResult, error) {
		p, err := principal(c)
		if err != nil {
			return nil, err
		}
		return h.svc.Create(c.Request.Context(), p, *in)
	})
}

func (h *CategoryHandler) Update() gin.HandlerFunc {
	return Handle(h.log, BindJSON, http.StatusOK, func(c *gin.Context, in *service.CategoryInput) (*service.CategoryResult, error) {
		p, err := principal(c)
		if err != nil {
			return nil, err
		}
		return h.svc.Update(c.Request.Context(), p, c.Param("id"), *in)
	})
}

func (h *CategoryHandler) Delete() gin.HandlerFunc {
	return Handle(h.log, BindNone, http.StatusOK, func(c *gin.Context, _ *none) (messageOut, error) {
		p, err := principal(c)
		if err != nil {
			return messageOut{}, err
		}
		if err := h.svc.Delete(c.Request.Context(), p, c.Param("id")); err != nil {
			return messageOut{}, err
		}
		return messageOut{Message: "Category deleted successfully"}, nil
	})
}

// Public ACTIVE 分类及博客数，按名称排序
func (h *CategoryHandler) Public() gin.HandlerFunc {
	return Handle(h.log, BindNone, http.StatusOK, func(c *gin.Context, _ *none) (gin.H, error) {
		cats, err := h.svc.ListPublic(c.Request.Context())
		if err != nil {
			return nil, err
		}
		return gin.H{"categories": cats}, nil
	})
}
