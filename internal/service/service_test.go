package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"go-gin-gorm-blog/internal/core/auth"
	"go-gin-gorm-blog/internal/core/cache"
	"go-gin-gorm-blog/internal/domain"
	"go-gin-gorm-blog/internal/repo"
	"go-gin-gorm-blog/internal/service"
	"go-gin-gorm-blog/internal/testutil"
)

type env struct {
	db         *gorm.DB
	jwt        *auth.JWTer
	users      *repo.UserRepo
	auth       *service.AuthService
	blogs      *service.BlogService
	cats       *service.CategoryService
	engagement *service.EngagementService
}

func newEnv(t *testing.T, c *cache.Cache) *env {
	t.Helper()
	db := testutil.NewDB(t)
	log := testutil.NopLogger()
	j := &auth.JWTer{Secret: []byte("test-secret"), Issuer: "blog-test", TTL: time.Hour}

	users := repo.NewUserRepo(db)
	blogRepo := repo.NewBlogRepo(db)
	catRepo := repo.NewCategoryRepo(db)

	authSvc, err := service.NewAuthService(users, j, log, service.WithBcryptCost(bcrypt.MinCost))
	require.NoError(t, err)
	return &env{
		db:         db,
		jwt:        j,
		users:      users,
		auth:       authSvc,
		blogs:      service.NewBlogService(blogRepo, catRepo, log),
		cats:       service.NewCategoryService(catRepo, c, time.Minute, log),
		engagement: service.NewEngagementService(blogRepo, repo.NewLikeRepo(db), repo.NewCommentRepo(db), log),
	}
}

func (e *env) principal(t *testing.T, email string, role domain.Role) domain.Principal {
	t.Helper()
	return testutil.MustUser(t, e.db, email, role).Principal()
}

func kindOf(t *testing.T, err error) domain.Kind {
	t.Helper()
	require.Error(t, err)
	return domain.KindOf(err)
}

func msgOf(t *testing.T, err error) string {
	t.Helper()
	var de *domain.Error
	require.ErrorAs(t, err, &de)
	return de.Msg
}

var bg = context.Background()
