package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"go-gin-gorm-blog/internal/core/auth"
	"go-gin-gorm-blog/internal/domain"
	"go-gin-gorm-blog/pkg/utils"
)

const (
	msgTokenRequired = "Access token required"
	msgTokenInvalid  = "Invalid token"
	msgTokenExpired  = "Token expired"
	msgBadLogin      = "Invalid credentials"
)

type RegisterInput struct {
	FirstName  string `json:"firstName" validate:"required" msg:"First name is required"`
	MiddleName string `json:"middleName"`
	LastName   string `json:"lastName" validate:"required" msg:"Last name is required"`
	DOB        string `json:"dob" validate:"required,isodate" msg:"Valid date of birth is required"`
	Email      string `json:"email" validate:"required,email" msg:"Valid email is required"`
	PhoneNo    string `json:"phoneNo" validate:"required,min=10" msg:"Valid phone number is required"`
	Password   string `json:"password" validate:"required,min=6" msg:"Password must be at least 6 characters"`
	Role       string `json:"role" validate:"required,oneof=author reader" msg:"Role must be author or reader"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email" msg:"Valid email is required"`
	Password string `json:"password" validate:"required" msg:"Password is required"`
}

type AuthResult struct {
	Message string           `json:"message"`
	User    domain.Principal `json:"user"`
	Token   string           `json:"token"`
}

type AuthService struct {
	users domain.UserRepository
	jwt   *auth.JWTer
	cost  int
	log   *zap.Logger

	// dummyHash 用户不存在时也做一次比较，避免时序差异暴露邮箱是否注册
	dummyHash string
}

type AuthOption func(*AuthService)

// WithBcryptCost 测试里调低成本
func WithBcryptCost(cost int) AuthOption { return func(s *AuthService) { s.cost = cost } }

func NewAuthService(users domain.UserRepository, jwt *auth.JWTer, log *zap.Logger, opts ...AuthOption) (*AuthService, error) {
	s := &AuthService{users: users, jwt: jwt, cost: utils.DefaultCost, log: log}
	for _, o := range opts {
		o(s)
	}
	h, err := utils.HashPassword("not-a-real-password", s.cost)
	if err != nil {
		return nil, err
	}
	s.dummyHash = h
	return s, nil
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.MiddleName = strings.TrimSpace(in.MiddleName)
	in.PhoneNo = strings.TrimSpace(in.PhoneNo)
	in.Email = domain.NormalizeEmail(in.Email)
	if err := check(&in); err != nil {
		return nil, err
	}
	dob, _ := ParseDate(in.DOB)
	role, _ := domain.ParseRole(in.Role)

	existing, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, domain.Internal("Registration failed", err)
	}
	if existing != nil {
		return nil, domain.Conflict("User with this email already exists")
	}

	hash, err := utils.HashPassword(in.Password, s.cost)
	if err != nil {
		return nil, domain.Internal("Registration failed", err)
	}
	u := &domain.User{
		ID:           utils.NewID(),
		FirstName:    in.FirstName,
		MiddleName:   in.MiddleName,
		LastName:     in.LastName,
		DOB:          dob,
		Email:        in.Email,
		PhoneNo:      in.PhoneNo,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.Create(ctx, u); err != nil {
		// 并发注册同一邮箱时由唯一索引兜底
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.Conflict("User with this email already exists")
		}
		return nil, domain.Internal("Registration failed", err)
	}

	tok, err := s.jwt.Issue(u.ID)
	if err != nil {
		return nil, domain.Internal("Registration failed", err)
	}
	s.log.Info("user registered", zap.String("user_id", u.ID), zap.Stringer("role", u.Role))
	return &AuthResult{Message: "User registered successfully", User: u.Principal(), Token: tok}, nil
}

// Login 未知邮箱与错误密码返回完全相同的错误
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	in.Email = domain.NormalizeEmail(in.Email)
	if err := check(&in); err != nil {
		return nil, err
	}
	u, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, domain.Internal("Login failed", err)
	}
	hash := s.dummyHash
	if u != nil {
		hash = u.PasswordHash
	}
	ok := utils.CheckPassword(in.Password, hash)
	if u == nil || !ok {
		return nil, domain.Unauthorized(msgBadLogin)
	}

	tok, err := s.jwt.Issue(u.ID)
	if err != nil {
		return nil, domain.Internal("Login failed", err)
	}
	return &AuthResult{Message: "Login successful", User: u.Principal(), Token: tok}, nil
}

// Resolve 校验 token 并从库里取当前用户；角色以库为准
func (s *AuthService) Resolve(ctx context.Context, token string) (domain.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.Principal{}, domain.Unauthorized(msgTokenRequired)
	}
	claims, err := s.jwt.Parse(token)
	if errors.Is(err, auth.ErrExpired) {
		return domain.Principal{}, domain.Unauthorized(msgTokenExpired)
	}
	if err != nil {
		return domain.Principal{}, domain.Unauthorized(msgTokenInvalid)
	}
	u, err := s.users.FindByID(ctx, claims.UID)
	if err != nil {
		return domain.Principal{}, domain.Internal("Token verification failed", err)
	}
	if u == nil {
		return domain.Principal{}, domain.Unauthorized(msgTokenInvalid)
	}
	return u.Principal(), nil
}
