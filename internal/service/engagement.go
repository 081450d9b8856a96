package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"go-gin-gorm-blog/internal/domain"
	"go-gin-gorm-blog/pkg/utils"
)

type CommentInput struct {
	Content string `json:"content" validate:"required" msg:"Comment content is required"`
}

type LikeResult struct {
	Message   string `json:"message"`
	Liked     bool   `json:"liked"`
	LikeCount int64  `json:"likeCount"`
}

type CommentResult struct {
	Message string             `json:"message"`
	Comment domain.CommentView `json:"comment"`
}

// EngagementService 点赞与评论，任意登录用户可用
type EngagementService struct {
	blogs    domain.BlogRepository
	likes    domain.LikeRepository
	comments domain.CommentRepository
	log      *zap.Logger
}

func NewEngagementService(blogs domain.BlogRepository, likes domain.LikeRepository, comments domain.CommentRepository, log *zap.Logger) *EngagementService {
	return &EngagementService{blogs: blogs, likes: likes, comments: comments, log: log}
}

func (s *EngagementService) ToggleLike(ctx context.Context, p domain.Principal, blogID string) (*LikeResult, error) {
	if err := s.ensureBlog(ctx, blogID); err != nil {
		return nil, err
	}
	liked, err := s.likes.Toggle(ctx, p.ID, blogID)
	if err != nil {
		return nil, domain.Internal("Failed to toggle like", err)
	}
	n, err := s.likes.CountByBlog(ctx, blogID)
	if err != nil {
		return nil, domain.Internal("Failed to toggle like", err)
	}
	msg := "Blog unliked successfully"
	if liked {
		msg = "Blog liked successfully"
	}
	s.log.Debug("like toggled", zap.String("blog_id", blogID), zap.String("user_id", p.ID), zap.Bool("liked", liked))
	return &LikeResult{Message: msg, Liked: liked, LikeCount: n}, nil
}

func (s *EngagementService) AddComment(ctx context.Context, p domain.Principal, blogID string, in CommentInput) (*CommentResult, error) {
	in.Content = strings.TrimSpace(in.Content)
	if err := check(&in); err != nil {
		return nil, err
	}
	if err := s.ensureBlog(ctx, blogID); err != nil {
		return nil, err
	}
	c := &domain.Comment{ID: utils.NewID(), Content: in.Content, UserID: p.ID, BlogID: blogID}
	if err := s.comments.Create(ctx, c); err != nil {
		return nil, domain.Internal("Failed to add comment", err)
	}
	return &CommentResult{Message: "Comment added successfully", Comment: c.View()}, nil
}

func (s *EngagementService) ListComments(ctx context.Context, blogID string, p domain.PageRequest) (domain.Page[domain.CommentView], error) {
	if err := s.ensureBlog(ctx, blogID); err != nil {
		return domain.Page[domain.CommentView]{}, err
	}
	rows, total, err := s.comments.ListByBlog(ctx, blogID, p.Offset(), p.Limit)
	if err != nil {
		return domain.Page[domain.CommentView]{}, domain.Internal("Failed to fetch comments", err)
	}
	return domain.NewPage("comments", rows, p, total), nil
}

func (s *EngagementService) ensureBlog(ctx context.Context, id string) error {
	b, err := s.blogs.FindByID(ctx, id)
	if err != nil {
		return domain.Internal("Failed to fetch blog", err)
	}
	if b == nil {
		return domain.NotFound(msgBlogNotFound)
	}
	return nil
}
