// Package testutil 测试共用：内存 sqlite 与造数函数
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-gin-gorm-blog/internal/core/database"
	"go-gin-gorm-blog/internal/domain"
)

// NewDB 每个测试一个独立的内存库；单连接，事务内不要再用外层 db 查询
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := database.NewGorm(database.Opts{
		Driver:       "sqlite",
		DSN:          "file:" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=1",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		LogLevel:     "silent",
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func NopLogger() *zap.Logger { return zap.NewNop() }

// MustUser 直接落库，密码哈希用占位串，需要登录的测试走 AuthService.Register
func MustUser(t testing.TB, db *gorm.DB, email string, role domain.Role) *domain.User {
	t.Helper()
	u := &domain.User{
		ID:           uuid.NewString(),
		FirstName:    "Test",
		LastName:     "User",
		DOB:          time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		Email:        email,
		PhoneNo:      "5551234567",
		PasswordHash: "x",
		Role:         role,
	}
	require.NoError(t, db.WithContext(context.Background()).Create(u).Error)
	return u
}

func MustCategory(t testing.TB, db *gorm.DB, name string, owner *domain.User) *domain.Category {
	t.Helper()
	c := &domain.Category{
		ID:        uuid.NewString(),
		Name:      name,
		Status:    domain.StatusActive,
		CreatedBy: owner.ID,
	}
	require.NoError(t, db.Create(c).Error)
	return c
}

func MustBlog(t testing.TB, db *gorm.DB, title string, cat *domain.Category, owner *domain.User, status domain.Status) *domain.Blog {
	t.Helper()
	b := &domain.Blog{
		ID:         uuid.NewString(),
		Title:      title,
		Body:       "body of " + title,
		Status:     status,
		CategoryID: cat.ID,
		CreatedBy:  owner.ID,
	}
	require.NoError(t, db.Create(b).Error)
	return b
}
