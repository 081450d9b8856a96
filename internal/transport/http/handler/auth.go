package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-gin-gorm-blog/internal/service"
)

type AuthHandler struct {
	svc *service.AuthService
	log *zap.Logger
}

func NewAuthHandler(svc *service.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: log}
}

func (h *AuthHandler) Register() gin.HandlerFunc {
	return Handle(h.log, BindJSON, http.StatusCreated, func(c *gin.Context, in *service.RegisterInput) (*service.AuthResult, error) {
		return h.svc.Register(c.Request.Context(), *in)
	})
}

func (h *AuthHandler) Login() gin.HandlerFunc {
	return Handle(h.log, BindJSON, http.StatusOK, func(c *gin.Context, in *service.LoginInput) (*service.AuthResult, error) {
		return h.svc.Login(c.Request.Context(), *in)
	})
}

func (h *AuthHandler) Profile() gin.HandlerFunc {
	return Handle(h.log, BindNone, http.StatusOK, func(c *gin.Context, _ *none) (gin.H, error) {
		p, err := principal(c)
		if err != nil {
			return nil, err
		}
		return gin.H{"user": p}, nil
	})
}
