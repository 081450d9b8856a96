package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"go-gin-gorm-blog/internal/core/cache"
	"go-gin-gorm-blog/internal/domain"
	"go-gin-gorm-blog/pkg/utils"
)

const publicCategoriesKey = "public:categories"

type CategoryInput struct {
	Name   string `json:"name" validate:"required" msg:"Category name is required"`
	Status string `json:"status" validate:"oneof=ACTIVE INACTIVE" msg:"Status must be ACTIVE or INACTIVE"`
}

type CategoryResult struct {
	Message  string              `json:"message"`
	Category domain.CategoryView `json:"category"`
}

type CategoryService struct {
	cats      domain.CategoryRepository
	cache     *cache.Cache // 可为 nil
	publicTTL time.Duration
	log       *zap.Logger
}

func NewCategoryService(cats domain.CategoryRepository, c *cache.Cache, publicTTL time.Duration, log *zap.Logger) *CategoryService {
	if publicTTL <= 0 {
		publicTTL = time.Minute
	}
	return &CategoryService{cats: cats, cache: c, publicTTL: publicTTL, log: log}
}

func (s *CategoryService) Create(ctx context.Context, p domain.Principal, in CategoryInput) (*CategoryResult, error) {
	if !p.Is(domain.RoleAuthor) {
		return nil, domain.Forbidden(msgAuthorRequired)
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := check(&in); err != nil {
		return nil, err
	}
	if err := s.ensureNameFree(ctx, in.Name, ""); err != nil {
		return nil, err
	}
	c := &domain.Category{
		ID:        utils.NewID(),
		Name:      in.Name,
		Status:    domain.Status(in.Status),
		CreatedBy: p.ID,
	}
	if err := s.cats.Create(ctx, c); err != nil {
		return nil, s.writeErr("Failed to create category", err)
	}
	s.invalidate(ctx)
	s.log.Info("category created", zap.String("category_id", c.ID), zap.String("user_id", p.ID))
	return s.result(ctx, c.ID, "Category created successfully")
}

// Update 顺序：存在 → 归属 → 名称唯一
func (s *CategoryService) Update(ctx context.Context, p domain.Principal, id string, in CategoryInput) (*CategoryResult, error) {
	if !p.Is(domain.RoleAuthor) {
		return nil, domain.Forbidden(msgAuthorRequired)
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := check(&in); err != nil {
		return nil, err
	}
	c, err := s.owned(ctx, p, id, "You can only update your own categories")
	if err != nil {
		return nil, err
	}
	if err := s.ensureNameFree(ctx, in.Name, id); err != nil {
		return nil, err
	}
	c.Name = in.Name
	c.Status = domain.Status(in.Status)
	if err := s.cats.Update(ctx, c); err != nil {
		return nil, s.writeErr("Failed to update category", err)
	}
	s.invalidate(ctx)
	return s.result(ctx, id, "Category updated successfully")
}

func (s *CategoryService) Delete(ctx context.Context, p domain.Principal, id string) error {
	if !p.Is(domain.RoleAuthor) {
		return domain.Forbidden(msgAuthorRequired)
	}
	if _, err := s.owned(ctx, p, id, "You can only delete your own categories"); err != nil {
		return err
	}
	if err := s.cats.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrInUse) {
			return domain.Conflict("Cannot delete category that has blogs. Please delete or move the blogs first.")
		}
		return domain.Internal("Failed to delete category", err)
	}
	s.invalidate(ctx)
	s.log.Info("category deleted", zap.String("category_id", id), zap.String("user_id", p.ID))
	return nil
}

func (s *CategoryService) Get(ctx context.Context, id string) (domain.CategoryView, error) {
	c, err := s.cats.FindByID(ctx, id)
	if err != nil {
		return domain.CategoryView{}, domain.Internal("Failed to fetch category", err)
	}
	if c == nil {
		return domain.CategoryView{}, domain.NotFound(msgCategoryNotFound)
	}
	return c.View(), nil
}

func (s *CategoryService) List(ctx context.Context, p domain.PageRequest) (domain.Page[domain.CategoryStats], error) {
	rows, total, err := s.cats.ListWithStats(ctx, p.Offset(), p.Limit)
	if err != nil {
		return domain.Page[domain.CategoryStats]{}, domain.Internal("Failed to fetch categories", err)
	}
	return domain.NewPage("categories", rows, p, total), nil
}

// ListPublic 有缓存时走 redis，分类写操作后失效
func (s *CategoryService) ListPublic(ctx context.Context) ([]domain.PublicCategory, error) {
	out, err := cache.GetOrLoadJSON(s.cache, ctx, publicCategoriesKey, s.publicTTL, s.cats.ListPublic)
	if err != nil {
		return nil, domain.Internal("Failed to fetch categories", err)
	}
	return out, nil
}

func (s *CategoryService) owned(ctx context.Context, p domain.Principal, id, denied string) (*domain.Category, error) {
	c, err := s.cats.FindByID(ctx, id)
	if err != nil {
		return nil, domain.Internal("Failed to fetch category", err)
	}
	if c == nil {
		return nil, domain.NotFound(msgCategoryNotFound)
	}
	if c.CreatedBy != p.ID {
		return nil, domain.Forbidden(denied)
	}
	return c, nil
}

func (s *CategoryService) ensureNameFree(ctx context.Context, name, excludeID string) error {
	taken, err := s.cats.NameTaken(ctx, name, excludeID)
	if err != nil {
		return domain.Internal("Failed to check category name", err)
	}
	if taken {
		return domain.Conflict(msgCategoryExists)
	}
	return nil
}

func (s *CategoryService) writeErr(msg string, err error) error {
	if errors.Is(err, domain.ErrDuplicate) {
		return domain.Conflict(msgCategoryExists)
	}
	return domain.Internal(msg, err)
}

func (s *CategoryService) result(ctx context.Context, id, msg string) (*CategoryResult, error) {
	c, err := s.cats.FindByID(ctx, id)
	if err != nil || c == nil {
		return nil, domain.Internal("Failed to load category", err)
	}
	return &CategoryResult{Message: msg, Category: c.View()}, nil
}

func (s *CategoryService) invalidate(ctx context.Context) {
	if err := s.cache.Del(ctx, publicCategoriesKey); err != nil {
		s.log.Warn("cache invalidate failed", zap.String("key", publicCategoriesKey), zap.Error(err))
	}
}
