package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-gin-gorm-blog/internal/domain"
	"go-gin-gorm-blog/internal/service"
)

type UserHandler struct {
	svc *service.UserService
	log *zap.Logger
}

func NewUserHandler(svc *service.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: log}
}

func (h *UserHandler) List() gin.HandlerFunc {
	return Handle(h.log, BindNone, http.StatusOK, func(c *gin.Context, _ *none) (domain.Page[domain.UserView], error) {
		return h.svc.List(c.Request.Context(), pageOf(c))
	})
}

func (h *UserHandler) Get() gin.HandlerFunc {
	return Handle(h.log, BindNone, http.StatusOK, func(c *gin.Context, _ *none) (gin.H, error) {
		u, err := h.svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			return nil, err
		}
		return gin.H{"user": u}, nil
	})
}
