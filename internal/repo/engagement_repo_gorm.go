package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"go-gin-gorm-blog/internal/domain"
)

type LikeRepo struct{ db *gorm.DB }

func NewLikeRepo(db *gorm.DB) *LikeRepo { return &LikeRepo{db: db} }

// Toggle 先删；没删到说明原本未点赞，再插入。唯一索引保证并发下至多一行
func (r *LikeRepo) Toggle(ctx context.Context, userID, blogID string) (bool, error) {
	var liked bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND blog_id = ?", userID, blogID).Delete(&domain.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			liked = false
			return nil
		}
		like := &domain.Like{ID: uuid.NewString(), UserID: userID, BlogID: blogID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(like).Error; err != nil {
			return err
		}
		liked = true
		return nil
	})
	if err != nil {
		return false, translate(err, "toggle like")
	}
	return liked, nil
}

func (r *LikeRepo) CountByBlog(ctx context.Context, blogID string) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&domain.Like{}).Where("blog_id = ?", blogID).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count likes: %w", err)
	}
	return n, nil
}

type CommentRepo struct{ db *gorm.DB }

func NewCommentRepo(db *gorm.DB) *CommentRepo { return &CommentRepo{db: db} }

// Create 写入后回填评论人姓名
func (r *CommentRepo) Create(ctx context.Context, c *domain.Comment) error {
	db := r.db.WithContext(ctx)
	if err := db.Create(c).Error; err != nil {
		return translate(err, "create comment")
	}
	var u domain.User
	if err := db.Select("id", "first_name", "last_name").First(&u, "id = ?", c.UserID).Error; err != nil {
		return fmt.Errorf("load commenter: %w", err)
	}
	c.User = &u
	return nil
}

func (r *CommentRepo) ListByBlog(ctx context.Context, blogID string, offset, limit int) ([]domain.CommentView, int64, error) {
	db := r.db.WithContext(ctx)
	var total int64
	if err := db.Model(&domain.Comment{}).Where("blog_id = ?", blogID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count comments: %w", err)
	}
	var rows []domain.Comment
	err := db.Preload("User", func(db *gorm.DB) *gorm.DB { return db.Select("id", "first_name", "last_name") }).
		Where("blog_id = ?", blogID).
		Order("created_at desc").Order("id").
		Offset(offset).Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list comments: %w", err)
	}
	out := make([]domain.CommentView, len(rows))
	for i := range rows {
		out[i] = rows[i].View()
	}
	return out, total, nil
}
