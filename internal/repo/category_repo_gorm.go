package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"go-gin-gorm-blog/internal/domain"
)

type CategoryRepo struct{ db *gorm.DB }

func NewCategoryRepo(db *gorm.DB) *CategoryRepo { return &CategoryRepo{db: db} }

func (r *CategoryRepo) Create(ctx context.Context, c *domain.Category) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return translate(err, "create category")
	}
	return nil
}

// FindByID 带上创建者，查不到返回 nil, nil
func (r *CategoryRepo) FindByID(ctx context.Context, id string) (*domain.Category, error) {
	var c domain.Category
	err := r.db.WithContext(ctx).Preload("Creator").First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category: %w", err)
	}
	return &c, nil
}

func (r *CategoryRepo) NameTaken(ctx context.Context, name, excludeID string) (bool, error) {
	q := r.db.WithContext(ctx).Model(&domain.Category{}).Where("name = ?", name)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, fmt.Errorf("check category name: %w", err)
	}
	return n > 0, nil
}

// Update 只写 name/status，其余字段不可改
func (r *CategoryRepo) Update(ctx context.Context, c *domain.Category) error {
	err := r.db.WithContext(ctx).Model(c).Select("name", "status", "updated_at").Updates(c).Error
	return translate(err, "update category")
}

func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&domain.Blog{}).Where("category_id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return domain.ErrInUse
		}
		return tx.Delete(&domain.Category{}, "id = ?", id).Error
	})
	if errors.Is(err, domain.ErrInUse) {
		return err
	}
	return translate(err, "delete category")
}

// ListWithStats 先取当前页，再按 category_id 分组统计点赞和评论
func (r *CategoryRepo) ListWithStats(ctx context.Context, offset, limit int) ([]domain.CategoryStats, int64, error) {
	db := r.db.WithContext(ctx)

	var total int64
	if err := db.Model(&domain.Category{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count categories: %w", err)
	}

	var cats []domain.Category
	err := db.Preload("Creator").
		Order("created_at desc").Order("id").
		Offset(offset).Limit(limit).
		Find(&cats).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list categories: %w", err)
	}
	if len(cats) == 0 {
		return []domain.CategoryStats{}, total, nil
	}

	ids := make([]string, len(cats))
	for i := range cats {
		ids[i] = cats[i].ID
	}
	likes, err := r.groupCount(db, "likes", ids)
	if err != nil {
		return nil, 0, err
	}
	comments, err := r.groupCount(db, "comments", ids)
	if err != nil {
		return nil, 0, err
	}

	out := make([]domain.CategoryStats, len(cats))
	for i, c := range cats {
		out[i] = domain.CategoryStats{
			ID:            c.ID,
			Name:          c.Name,
			Status:        c.Status,
			CreatedAt:     c.CreatedAt,
			CreatedBy:     c.CreatedBy,
			CreatorName:   c.Creator.Ref().FullName(),
			TotalLikes:    likes[c.ID],
			TotalComments: comments[c.ID],
		}
	}
	return out, total, nil
}

// groupCount table 只会是 likes 或 comments
func (r *CategoryRepo) groupCount(db *gorm.DB, table string, categoryIDs []string) (map[string]int64, error) {
	var rows []countRow
	err := db.Table(table).
		Select("blogs.category_id AS ref_id, COUNT(*) AS n").
		Joins("JOIN blogs ON blogs.id = " + table + ".blog_id").
		Where("blogs.category_id IN ?", categoryIDs).
		Group("blogs.category_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count %s per category: %w", table, err)
	}
	return toMap(rows), nil
}

// ListPublic 只含 ACTIVE 分类，blogCount 只算 ACTIVE 博客
func (r *CategoryRepo) ListPublic(ctx context.Context) ([]domain.PublicCategory, error) {
	out := []domain.PublicCategory{}
	err := r.db.WithContext(ctx).
		Table("categories").
		Select("categories.id, categories.name, COUNT(blogs.id) AS blog_count").
		Joins("LEFT JOIN blogs ON blogs.category_id = categories.id AND blogs.status = ?", domain.StatusActive).
		Where("categories.status = ?", domain.StatusActive).
		Group("categories.id, categories.name").
		Order("categories.name asc").
		Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list public categories: %w", err)
	}
	return out, nil
}
