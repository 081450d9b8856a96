package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"go-gin-gorm-blog/internal/domain"
)

type BlogRepo struct{ db *gorm.DB }

func NewBlogRepo(db *gorm.DB) *BlogRepo { return &BlogRepo{db: db} }

func (r *BlogRepo) Create(ctx context.Context, b *domain.Blog) error {
	if err := r.db.WithContext(ctx).Create(b).Error; err != nil {
		return translate(err, "create blog")
	}
	return nil
}

// FindByID 不带关联，给存在性/归属检查用；查不到返回 nil, nil
func (r *BlogRepo) FindByID(ctx context.Context, id string) (*domain.Blog, error) {
	var b domain.Blog
	err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find blog: %w", err)
	}
	return &b, nil
}

func (r *BlogRepo) Update(ctx context.Context, b *domain.Blog) error {
	err := r.db.WithContext(ctx).Model(b).
		Select("title", "body", "status", "category_id", "updated_at").
		Updates(b).Error
	return translate(err, "update blog")
}

// Delete 连同点赞、评论一起删
func (r *BlogRepo) Delete(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("blog_id = ?", id).Delete(&domain.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("blog_id = ?", id).Delete(&domain.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Blog{}, "id = ?", id).Error
	})
	return translate(err, "delete blog")
}

// withRefs 预加载分类(id,name)与作者(id,姓名)
func withRefs(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Category", func(db *gorm.DB) *gorm.DB { return db.Select("id", "name") }).
		Preload("Creator", func(db *gorm.DB) *gorm.DB { return db.Select("id", "first_name", "last_name") })
}

func (r *BlogRepo) View(ctx context.Context, id string) (*domain.BlogView, error) {
	db := r.db.WithContext(ctx)
	var b domain.Blog
	err := withRefs(db).First(&b, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load blog: %w", err)
	}
	counts, err := r.counts(db, []string{b.ID})
	if err != nil {
		return nil, err
	}
	v := b.View(counts[b.ID])
	return &v, nil
}

// Detail onlyStatus 非空时状态不符按不存在处理
func (r *BlogRepo) Detail(ctx context.Context, id string, onlyStatus domain.Status) (*domain.BlogDetail, error) {
	v, err := r.View(ctx, id)
	if err != nil || v == nil {
		return nil, err
	}
	if onlyStatus != "" && v.Status != onlyStatus {
		return nil, nil
	}

	db := r.db.WithContext(ctx)
	userCols := func(db *gorm.DB) *gorm.DB { return db.Select("id", "first_name", "last_name") }

	var likes []domain.Like
	if err := db.Preload("User", userCols).
		Where("blog_id = ?", id).Order("created_at asc").Order("id").
		Find(&likes).Error; err != nil {
		return nil, fmt.Errorf("load likes: %w", err)
	}
	var comments []domain.Comment
	if err := db.Preload("User", userCols).
		Where("blog_id = ?", id).Order("created_at desc").Order("id").
		Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("load comments: %w", err)
	}

	d := &domain.BlogDetail{
		BlogView: *v,
		Likes:    make([]domain.LikeView, len(likes)),
		Comments: make([]domain.CommentView, len(comments)),
	}
	for i, l := range likes {
		d.Likes[i] = domain.LikeView{ID: l.ID, UserID: l.UserID, BlogID: l.BlogID, CreatedAt: l.CreatedAt, User: l.User.Ref()}
	}
	for i := range comments {
		d.Comments[i] = comments[i].View()
	}
	return d, nil
}

func (r *BlogRepo) List(ctx context.Context, f domain.BlogFilter, offset, limit int) ([]domain.BlogView, int64, error) {
	db := r.db.WithContext(ctx)
	q := applyFilter(db.Model(&domain.Blog{}), f)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count blogs: %w", err)
	}

	var blogs []domain.Blog
	err := withRefs(applyFilter(db, f)).
		Order("created_at desc").Order("id").
		Offset(offset).Limit(limit).
		Find(&blogs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list blogs: %w", err)
	}
	out := make([]domain.BlogView, len(blogs))
	if len(blogs) == 0 {
		return out, total, nil
	}

	ids := make([]string, len(blogs))
	for i := range blogs {
		ids[i] = blogs[i].ID
	}
	counts, err := r.counts(db, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range blogs {
		out[i] = blogs[i].View(counts[blogs[i].ID])
	}
	return out, total, nil
}

func applyFilter(q *gorm.DB, f domain.BlogFilter) *gorm.DB {
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.CategoryID != "" {
		q = q.Where("category_id = ?", f.CategoryID)
	}
	if f.CreatedBy != "" {
		q = q.Where("created_by = ?", f.CreatedBy)
	}
	if f.Search != "" {
		q = q.Where(searchClause(q.Dialector.Name()), searchArgs(q.Dialector.Name(), f.Search)...)
	}
	// 与 gorm 写入 created_at 时的时区一致，sqlite 按字符串比较
	if f.From != nil {
		q = q.Where("created_at >= ?", f.From.Local())
	}
	if f.To != nil {
		q = q.Where("created_at <= ?", f.To.Local())
	}
	return q
}

// counts 一页博客的点赞/评论数，各一条分组查询
func (r *BlogRepo) counts(db *gorm.DB, blogIDs []string) (map[string]domain.Counts, error) {
	var likes, comments []countRow
	if err := db.Model(&domain.Like{}).
		Select("blog_id AS ref_id, COUNT(*) AS n").
		Where("blog_id IN ?", blogIDs).Group("blog_id").
		Scan(&likes).Error; err != nil {
		return nil, fmt.Errorf("count likes: %w", err)
	}
	if err := db.Model(&domain.Comment{}).
		Select("blog_id AS ref_id, COUNT(*) AS n").
		Where("blog_id IN ?", blogIDs).Group("blog_id").
		Scan(&comments).Error; err != nil {
		return nil, fmt.Errorf("count comments: %w", err)
	}
	out := make(map[string]domain.Counts, len(blogIDs))
	for _, row := range likes {
		c := out[row.RefID]
		c.Likes = row.N
		out[row.RefID] = c
	}
	for _, row := range comments {
		c := out[row.RefID]
		c.Comments = row.N
		out[row.RefID] = c
	}
	return out, nil
}
