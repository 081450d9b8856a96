package domain

import (
	"context"
	"time"
)

type Category struct {
	ID        string    `gorm:"primaryKey;size:36"`
	Name      string    `gorm:"uniqueIndex;size:191;not null"`
	Status    Status    `gorm:"size:16;not null;default:ACTIVE;index"`
	CreatedBy string    `gorm:"size:36;not null;index"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time

	Creator *User `gorm:"foreignKey:CreatedBy;constraint:OnDelete:RESTRICT"`
}

func (Category) TableName() string { return "categories" }

type Blog struct {
	ID         string    `gorm:"primaryKey;size:36"`
	Title      string    `gorm:"size:255;not null"`
	Body       string    `gorm:"type:text;not null"`
	Status     Status    `gorm:"size:16;not null;default:ACTIVE;index"`
	CategoryID string    `gorm:"size:36;not null;index"`
	CreatedBy  string    `gorm:"size:36;not null;index"`
	CreatedAt  time.Time `gorm:"index"`
	UpdatedAt  time.Time

	// 分类被引用时禁止删除，和应用层检查互为兜底
	Category *Category `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Creator  *User     `gorm:"foreignKey:CreatedBy;constraint:OnDelete:RESTRICT"`
}

func (Blog) TableName() string { return "blogs" }

// Like 是集合成员关系：(user, blog) 唯一，存在即已点赞
type Like struct {
	ID        string    `gorm:"primaryKey;size:36"`
	UserID    string    `gorm:"size:36;not null;uniqueIndex:idx_likes_user_blog"`
	BlogID    string    `gorm:"size:36;not null;uniqueIndex:idx_likes_user_blog;index"`
	CreatedAt time.Time

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Blog *Blog `gorm:"foreignKey:BlogID;constraint:OnDelete:CASCADE"`
}

func (Like) TableName() string { return "likes" }

type Comment struct {
	ID        string    `gorm:"primaryKey;size:36"`
	Content   string    `gorm:"type:text;not null"`
	UserID    string    `gorm:"size:36;not null;index"`
	BlogID    string    `gorm:"size:36;not null;index"`
	CreatedAt time.Time `gorm:"index"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Blog *Blog `gorm:"foreignKey:BlogID;constraint:OnDelete:CASCADE"`
}

func (Comment) TableName() string { return "comments" }

// Models 迁移顺序无关，gorm 会按依赖排序
func Models() []any {
	return []any{&User{}, &Category{}, &Blog{}, &Like{}, &Comment{}}
}

// ---------- 读模型 ----------

type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Counts struct {
	Likes    int64 `json:"likes"`
	Comments int64 `json:"comments"`
}

type CategoryView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Status    Status    `json:"status"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Creator   UserRef   `json:"creator"`
}

// CategoryStats 分类列表行，点赞/评论数按当前页分组统计
type CategoryStats struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Status        Status    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	CreatorName   string    `json:"creatorName"`
	TotalLikes    int64     `json:"totalLikes"`
	TotalComments int64     `json:"totalComments"`
}

type PublicCategory struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	BlogCount int64  `json:"blogCount"`
}

type BlogView struct {
	ID         string      `json:"id"`
	Title      string      `json:"title"`
	Body       string      `json:"body"`
	Status     Status      `json:"status"`
	CategoryID string      `json:"categoryId"`
	CreatedBy  string      `json:"createdBy"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
	Category   CategoryRef `json:"category"`
	Creator    UserRef     `json:"creator"`
	Count      Counts      `json:"_count"`
}

type BlogDetail struct {
	BlogView
	Likes    []LikeView    `json:"likes"`
	Comments []CommentView `json:"comments"`
}

type LikeView struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	BlogID    string    `json:"blogId"`
	CreatedAt time.Time `json:"createdAt"`
	User      UserRef   `json:"user"`
}

type CommentView struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	UserID    string    `json:"userId"`
	BlogID    string    `json:"blogId"`
	CreatedAt time.Time `json:"createdAt"`
	User      UserRef   `json:"user"`
}

func (c *Category) View() CategoryView {
	return CategoryView{
		ID:        c.ID,
		Name:      c.Name,
		Status:    c.Status,
		CreatedBy: c.CreatedBy,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Creator:   c.Creator.Ref(),
	}
}

func (b *Blog) View(cnt Counts) BlogView {
	v := BlogView{
		ID:         b.ID,
		Title:      b.Title,
		Body:       b.Body,
		Status:     b.Status,
		CategoryID: b.CategoryID,
		CreatedBy:  b.CreatedBy,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
		Creator:    b.Creator.Ref(),
		Count:      cnt,
	}
	if b.Category != nil {
		v.Category = CategoryRef{ID: b.Category.ID, Name: b.Category.Name}
	}
	return v
}

func (c *Comment) View() CommentView {
	return CommentView{
		ID:        c.ID,
		Content:   c.Content,
		UserID:    c.UserID,
		BlogID:    c.BlogID,
		CreatedAt: c.CreatedAt,
		User:      c.User.Ref(),
	}
}

// ---------- 查询条件 ----------

// BlogFilter 空字段表示不过滤
type BlogFilter struct {
	CategoryID string
	Status     Status
	Search     string
	CreatedBy  string
	From       *time.Time
	To         *time.Time
}

// ---------- 仓储接口 ----------

type CategoryRepository interface {
	Create(ctx context.Context, c *Category) error
	FindByID(ctx context.Context, id string) (*Category, error)
	// NameTaken 大小写敏感；excludeID 非空时排除自身
	NameTaken(ctx context.Context, name, excludeID string) (bool, error)
	Update(ctx context.Context, c *Category) error
	// Delete 在同一事务里检查引用再删除，被引用时返回 ErrInUse
	Delete(ctx context.Context, id string) error
	ListWithStats(ctx context.Context, offset, limit int) ([]CategoryStats, int64, error)
	ListPublic(ctx context.Context) ([]PublicCategory, error)
}

type BlogRepository interface {
	Create(ctx context.Context, b *Blog) error
	FindByID(ctx context.Context, id string) (*Blog, error)
	Update(ctx context.Context, b *Blog) error
	Delete(ctx context.Context, id string) error
	View(ctx context.Context, id string) (*BlogView, error)
	Detail(ctx context.Context, id string, onlyStatus Status) (*BlogDetail, error)
	List(ctx context.Context, f BlogFilter, offset, limit int) ([]BlogView, int64, error)
}

type LikeRepository interface {
	// Toggle 两态机：不存在则创建，存在则删除；返回切换后的状态
	Toggle(ctx context.Context, userID, blogID string) (liked bool, err error)
	CountByBlog(ctx context.Context, blogID string) (int64, error)
}

type CommentRepository interface {
	Create(ctx context.Context, c *Comment) error
	ListByBlog(ctx context.Context, blogID string, offset, limit int) ([]CommentView, int64, error)
}
