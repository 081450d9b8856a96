package service

import (
	"context"

	"go-gin-gorm-blog/internal/domain"
)

type UserService struct {
	users domain.UserRepository
}

func NewUserService(users domain.UserRepository) *UserService { return &UserService{users: users} }

func (s *UserService) List(ctx context.Context, p domain.PageRequest) (domain.Page[domain.UserView], error) {
	rows, total, err := s.users.List(ctx, p.Offset(), p.Limit)
	if err != nil {
		return domain.Page[domain.UserView]{}, domain.Internal("Failed to fetch users", err)
	}
	views := make([]domain.UserView, len(rows))
	for i := range rows {
		views[i] = rows[i].View()
	}
	return domain.NewPage("users", views, p, total), nil
}

func (s *UserService) Get(ctx context.Context, id string) (domain.UserView, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return domain.UserView{}, domain.Internal("Failed to fetch user", err)
	}
	if u == nil {
		return domain.UserView{}, domain.NotFound("User not found")
	}
	return u.View(), nil
}
