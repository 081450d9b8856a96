// Package seed 从 YAML 载入演示数据；按自然键去重，可重复执行
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"go-gin-gorm-blog/internal/domain"
	"go-gin-gorm-blog/internal/service"
	"go-gin-gorm-blog/pkg/utils"
)

type User struct {
	FirstName  string `yaml:"firstName"`
	MiddleName string `yaml:"middleName"`
	LastName   string `yaml:"lastName"`
	DOB        string `yaml:"dob"`
	Email      string `yaml:"email"`
	PhoneNo    string `yaml:"phoneNo"`
	Password   string `yaml:"password"`
	Role       string `yaml:"role"`
}

type Category struct {
	Name      string `yaml:"name"`
	Status    string `yaml:"status"`
	CreatedBy string `yaml:"createdBy"` // 用户邮箱
}

type Blog struct {
	Title     string `yaml:"title"`
	Body      string `yaml:"body"`
	Status    string `yaml:"status"`
	Category  string `yaml:"category"`  // 分类名
	CreatedBy string `yaml:"createdBy"` // 用户邮箱
}

type Comment struct {
	Blog    string `yaml:"blog"` // 博客标题
	User    string `yaml:"user"`
	Content string `yaml:"content"`
}

type Like struct {
	Blog string `yaml:"blog"`
	User string `yaml:"user"`
}

type Fixture struct {
	Users      []User     `yaml:"users"`
	Categories []Category `yaml:"categories"`
	Blogs      []Blog     `yaml:"blogs"`
	Comments   []Comment  `yaml:"comments"`
	Likes      []Like     `yaml:"likes"`
}

// Result 本次新写入的条数
type Result struct {
	Users, Categories, Blogs, Comments, Likes int
}

func Load(path string) (*Fixture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse 未知字段报错，避免拼错的 key 被静默忽略
func Parse(r io.Reader) (*Fixture, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var fx Fixture
	if err := dec.Decode(&fx); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	return &fx, nil
}

type applier struct {
	tx     *gorm.DB
	cost   int
	users  map[string]string // email → id
	cats   map[string]string // name → id
	blogs  map[string]string // title → id
	result Result
}

// Apply 单事务写入；任何一条失败整体回滚
func Apply(ctx context.Context, db *gorm.DB, fx *Fixture, bcryptCost int, log *zap.Logger) (Result, error) {
	var res Result
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		a := &applier{
			tx:    tx,
			cost:  bcryptCost,
			users: map[string]string{},
			cats:  map[string]string{},
			blogs: map[string]string{},
		}
		steps := []func(*Fixture) error{a.applyUsers, a.applyCategories, a.applyBlogs, a.applyComments, a.applyLikes}
		for _, step := range steps {
			if err := step(fx); err != nil {
				return err
			}
		}
		res = a.result
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	log.Info("seed applied",
		zap.Int("users", res.Users),
		zap.Int("categories", res.Categories),
		zap.Int("blogs", res.Blogs),
		zap.Int("comments", res.Comments),
		zap.Int("likes", res.Likes),
	)
	return res, nil
}

func (a *applier) applyUsers(fx *Fixture) error {
	for _, u := range fx.Users {
		email := domain.NormalizeEmail(u.Email)
		var existing domain.User
		err := a.tx.Select("id").Where("email = ?", email).Take(&existing).Error
		if err == nil {
			a.users[email] = existing.ID
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		role, err := domain.ParseRole(u.Role)
		if err != nil {
			return fmt.Errorf("user %s: %w", email, err)
		}
		dob, err := service.ParseDate(u.DOB)
		if err != nil {
			return fmt.Errorf("user %s: %w", email, err)
		}
		hash, err := utils.HashPassword(u.Password, a.cost)
		if err != nil {
			return err
		}
		row := &domain.User{
			ID:           utils.NewID(),
			FirstName:    u.FirstName,
			MiddleName:   u.MiddleName,
			LastName:     u.LastName,
			DOB:          dob,
			Email:        email,
			PhoneNo:      strings.TrimSpace(u.PhoneNo),
			PasswordHash: hash,
			Role:         role,
		}
		if err := a.tx.Create(row).Error; err != nil {
			return fmt.Errorf("user %s: %w", email, err)
		}
		a.users[email] = row.ID
		a.result.Users++
	}
	return nil
}

func (a *applier) applyCategories(fx *Fixture) error {
	for _, c := range fx.Categories {
		var existing domain.Category
		err := a.tx.Select("id").Where("name = ?", c.Name).Take(&existing).Error
		if err == nil {
			a.cats[c.Name] = existing.ID
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		owner, err := a.userID(c.CreatedBy)
		if err != nil {
			return fmt.Errorf("category %q: %w", c.Name, err)
		}
		status, err := parseStatus(c.Status)
		if err != nil {
			return fmt.Errorf("category %q: %w", c.Name, err)
		}
		row := &domain.Category{ID: utils.NewID(), Name: c.Name, Status: status, CreatedBy: owner}
		if err := a.tx.Create(row).Error; err != nil {
			return fmt.Errorf("category %q: %w", c.Name, err)
		}
		a.cats[c.Name] = row.ID
		a.result.Categories++
	}
	return nil
}

func (a *applier) applyBlogs(fx *Fixture) error {
	for _, b := range fx.Blogs {
		owner, err := a.userID(b.CreatedBy)
		if err != nil {
			return fmt.Errorf("blog %q: %w", b.Title, err)
		}
		var existing domain.Blog
		err = a.tx.Select("id").Where("title = ? AND created_by = ?", b.Title, owner).Take(&existing).Error
		if err == nil {
			a.blogs[b.Title] = existing.ID
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		catID, ok := a.cats[b.Category]
		if !ok {
			return fmt.Errorf("blog %q: unknown category %q", b.Title, b.Category)
		}
		status, err := parseStatus(b.Status)
		if err != nil {
			return fmt.Errorf("blog %q: %w", b.Title, err)
		}
		row := &domain.Blog{
			ID:         utils.NewID(),
			Title:      b.Title,
			Body:       b.Body,
			Status:     status,
			CategoryID: catID,
			CreatedBy:  owner,
		}
		if err := a.tx.Create(row).Error; err != nil {
			return fmt.Errorf("blog %q: %w", b.Title, err)
		}
		a.blogs[b.Title] = row.ID
		a.result.Blogs++
	}
	return nil
}

func (a *applier) applyComments(fx *Fixture) error {
	for _, c := range fx.Comments {
		blogID, userID, err := a.refs(c.Blog, c.User)
		if err != nil {
			return fmt.Errorf("comment: %w", err)
		}
		var n int64
		if err := a.tx.Model(&domain.Comment{}).
			Where("blog_id = ? AND user_id = ? AND content = ?", blogID, userID, c.Content).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			continue
		}
		row := &domain.Comment{ID: utils.NewID(), Content: c.Content, UserID: userID, BlogID: blogID}
		if err := a.tx.Create(row).Error; err != nil {
			return fmt.Errorf("comment: %w", err)
		}
		a.result.Comments++
	}
	return nil
}

func (a *applier) applyLikes(fx *Fixture) error {
	for _, l := range fx.Likes {
		blogID, userID, err := a.refs(l.Blog, l.User)
		if err != nil {
			return fmt.Errorf("like: %w", err)
		}
		res := a.tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&domain.Like{ID: utils.NewID(), UserID: userID, BlogID: blogID})
		if res.Error != nil {
			return fmt.Errorf("like: %w", res.Error)
		}
		a.result.Likes += int(res.RowsAffected)
	}
	return nil
}

func (a *applier) userID(email string) (string, error) {
	id, ok := a.users[domain.NormalizeEmail(email)]
	if !ok {
		return "", fmt.Errorf("unknown user %q", email)
	}
	return id, nil
}

func (a *applier) refs(blogTitle, email string) (blogID, userID string, err error) {
	blogID, ok := a.blogs[blogTitle]
	if !ok {
		return "", "", fmt.Errorf("unknown blog %q", blogTitle)
	}
	userID, err = a.userID(email)
	return blogID, userID, err
}

func parseStatus(s string) (domain.Status, error) {
	if s == "" {
		return domain.StatusActive, nil
	}
	st := domain.Status(strings.ToUpper(s))
	if !st.Valid() {
		return "", fmt.Errorf("invalid status %q", s)
	}
	return st, nil
}
