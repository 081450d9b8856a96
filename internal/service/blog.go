package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"go-gin-gorm-blog/internal/domain"
	"go-gin-gorm-blog/pkg/utils"
)

type BlogInput struct {
	Title      string `json:"title" validate:"required" msg:"Blog title is required"`
	Body       string `json:"body" validate:"min=10" msg:"Blog body must be at least 10 characters"`
	CategoryID string `json:"categoryId" validate:"required" msg:"Valid category ID is required"`
	Status     string `json:"status" validate:"oneof=ACTIVE INACTIVE" msg:"Status must be ACTIVE or INACTIVE"`
}

func (in *BlogInput) trim() {
	in.Title = strings.TrimSpace(in.Title)
	in.Body = strings.TrimSpace(in.Body)
	in.CategoryID = strings.TrimSpace(in.CategoryID)
}

// BlogQuery 列表查询参数，原样来自 query string
type BlogQuery struct {
	Page       domain.PageRequest
	CategoryID string
	Status     string
	Search     string
}

type MyBlogsQuery struct {
	Page      domain.PageRequest
	Status    string
	StartDate string
	EndDate   string
}

type BlogResult struct {
	Message string          `json:"message"`
	Blog    domain.BlogView `json:"blog"`
}

type BlogService struct {
	blogs domain.BlogRepository
	cats  domain.CategoryRepository
	log   *zap.Logger
}

func NewBlogService(blogs domain.BlogRepository, cats domain.CategoryRepository, log *zap.Logger) *BlogService {
	return &BlogService{blogs: blogs, cats: cats, log: log}
}

func (s *BlogService) Create(ctx context.Context, p domain.Principal, in BlogInput) (*BlogResult, error) {
	if !p.Is(domain.RoleAuthor) {
		return nil, domain.Forbidden(msgAuthorRequired)
	}
	in.trim()
	if err := check(&in); err != nil {
		return nil, err
	}
	if err := s.ensureCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}
	b := &domain.Blog{
		ID:         utils.NewID(),
		Title:      in.Title,
		Body:       in.Body,
		Status:     domain.Status(in.Status),
		CategoryID: in.CategoryID,
		CreatedBy:  p.ID,
	}
	if err := s.blogs.Create(ctx, b); err != nil {
		return nil, domain.Internal("Failed to create blog", err)
	}
	s.log.Info("blog created", zap.String("blog_id", b.ID), zap.String("user_id", p.ID))
	return s.result(ctx, b.ID, "Blog created successfully")
}

// Update 顺序：存在(404) → 归属(403) → 分类存在
func (s *BlogService) Update(ctx context.Context, p domain.Principal, id string, in BlogInput) (*BlogResult, error) {
	if !p.Is(domain.RoleAuthor) {
		return nil, domain.Forbidden(msgAuthorRequired)
	}
	in.trim()
	if err := check(&in); err != nil {
		return nil, err
	}
	b, err := s.owned(ctx, p, id, "You can only update your own blogs")
	if err != nil {
		return nil, err
	}
	if err := s.ensureCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}
	b.Title, b.Body, b.CategoryID, b.Status = in.Title, in.Body, in.CategoryID, domain.Status(in.Status)
	if err := s.blogs.Update(ctx, b); err != nil {
		return nil, domain.Internal("Failed to update blog", err)
	}
	return s.result(ctx, id, "Blog updated successfully")
}

func (s *BlogService) Delete(ctx context.Context, p domain.Principal, id string) error {
	if !p.Is(domain.RoleAuthor) {
		return domain.Forbidden(msgAuthorRequired)
	}
	if _, err := s.owned(ctx, p, id, "You can only delete your own blogs"); err != nil {
		return err
	}
	if err := s.blogs.Delete(ctx, id); err != nil {
		return domain.Internal("Failed to delete blog", err)
	}
	s.log.Info("blog deleted", zap.String("blog_id", id), zap.String("user_id", p.ID))
	return nil
}

// Get 任意状态
func (s *BlogService) Get(ctx context.Context, id string) (*domain.BlogDetail, error) {
	return s.detail(ctx, id, "")
}

// GetPublic 只返回 ACTIVE
func (s *BlogService) GetPublic(ctx context.Context, id string) (*domain.BlogDetail, error) {
	return s.detail(ctx, id, domain.StatusActive)
}

// List 默认只看 ACTIVE，status 参数可覆盖
func (s *BlogService) List(ctx context.Context, q BlogQuery) (domain.Page[domain.BlogView], error) {
	status := domain.StatusActive
	if q.Status != "" {
		st, err := parseStatus(q.Status)
		if err != nil {
			return domain.Page[domain.BlogView]{}, err
		}
		status = st
	}
	return s.list(ctx, domain.BlogFilter{
		Status:     status,
		CategoryID: strings.TrimSpace(q.CategoryID),
		Search:     strings.TrimSpace(q.Search),
	}, q.Page)
}

// ListPublic 固定 ACTIVE，忽略 status
func (s *BlogService) ListPublic(ctx context.Context, q BlogQuery) (domain.Page[domain.BlogView], error) {
	q.Status = ""
	return s.List(ctx, q)
}

// ListMine 起止日期各自独立生效；纯日期的 endDate 包含当天
func (s *BlogService) ListMine(ctx context.Context, p domain.Principal, q MyBlogsQuery) (domain.Page[domain.BlogView], error) {
	if !p.Is(domain.RoleAuthor) {
		return domain.Page[domain.BlogView]{}, domain.Forbidden(msgAuthorRequired)
	}
	f := domain.BlogFilter{CreatedBy: p.ID}
	if q.Status != "" {
		st, err := parseStatus(q.Status)
		if err != nil {
			return domain.Page[domain.BlogView]{}, err
		}
		f.Status = st
	}
	var fields []domain.FieldError
	if q.StartDate != "" {
		t, err := ParseDate(q.StartDate)
		if err != nil {
			fields = append(fields, domain.FieldError{Field: "startDate", Message: "startDate must be a valid date"})
		} else {
			f.From = &t
		}
	}
	if q.EndDate != "" {
		t, err := ParseDate(q.EndDate)
		if err != nil {
			fields = append(fields, domain.FieldError{Field: "endDate", Message: "endDate must be a valid date"})
		} else {
			if isDateOnly(q.EndDate) {
				t = t.Add(24*time.Hour - time.Nanosecond)
			}
			f.To = &t
		}
	}
	if len(fields) > 0 {
		return domain.Page[domain.BlogView]{}, domain.Validation("Invalid date range", fields...)
	}
	return s.list(ctx, f, q.Page)
}

func (s *BlogService) list(ctx context.Context, f domain.BlogFilter, p domain.PageRequest) (domain.Page[domain.BlogView], error) {
	rows, total, err := s.blogs.List(ctx, f, p.Offset(), p.Limit)
	if err != nil {
		return domain.Page[domain.BlogView]{}, domain.Internal("Failed to fetch blogs", err)
	}
	return domain.NewPage("blogs", rows, p, total), nil
}

func (s *BlogService) detail(ctx context.Context, id string, only domain.Status) (*domain.BlogDetail, error) {
	d, err := s.blogs.Detail(ctx, id, only)
	if err != nil {
		return nil, domain.Internal("Failed to fetch blog", err)
	}
	if d == nil {
		return nil, domain.NotFound(msgBlogNotFound)
	}
	return d, nil
}

func (s *BlogService) owned(ctx context.Context, p domain.Principal, id, denied string) (*domain.Blog, error) {
	b, err := s.blogs.FindByID(ctx, id)
	if err != nil {
		return nil, domain.Internal("Failed to fetch blog", err)
	}
	if b == nil {
		return nil, domain.NotFound(msgBlogNotFound)
	}
	if b.CreatedBy != p.ID {
		return nil, domain.Forbidden(denied)
	}
	return b, nil
}

func (s *BlogService) ensureCategory(ctx context.Context, id string) error {
	c, err := s.cats.FindByID(ctx, id)
	if err != nil {
		return domain.Internal("Failed to fetch category", err)
	}
	if c == nil {
		return domain.NotFound(msgCategoryNotFound)
	}
	return nil
}

func (s *BlogService) result(ctx context.Context, id, msg string) (*BlogResult, error) {
	v, err := s.blogs.View(ctx, id)
	if err != nil || v == nil {
		return nil, domain.Internal("Failed to load blog", err)
	}
	return &BlogResult{Message: msg, Blog: *v}, nil
}

func parseStatus(s string) (domain.Status, error) {
	st := domain.Status(strings.ToUpper(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", domain.Validation("Invalid status",
			domain.FieldError{Field: "status", Message: "Status must be ACTIVE or INACTIVE"})
	}
	return st, nil
}
