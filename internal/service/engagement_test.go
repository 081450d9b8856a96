package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-gin-gorm-blog/internal/domain"
	"go-gin-gorm-blog/internal/service"
	"go-gin-gorm-blog/internal/testutil"
)

func TestToggleLike_NeverMoreThanOne(t *testing.T) {
	e := newEnv(t, nil)
	a := testutil.MustUser(t, e.db, "a@example.com", domain.RoleAuthor)
	reader := e.principal(t, "r@example.com", domain.RoleReader)
	cat := testutil.MustCategory(t, e.db, "Go", a)
	b := testutil.MustBlog(t, e.db, "post", cat, a, domain.StatusActive)

	want := []struct {
		liked bool
		count int64
		msg   string
	}{
		{true, 1, "Blog liked successfully"},
		{false, 0, "Blog unliked successfully"},
		{true, 1, "Blog liked successfully"},
	}
	for _, w := range want {
		res, err := e.engagement.ToggleLike(bg, reader, b.ID)
		require.NoError(t, err)
		assert.Equal(t, w.liked, res.Liked)
		assert.Equal(t, w.count, res.LikeCount)
		assert.Equal(t, w.msg, res.Message)
	}

	// 作者也能点赞
	res, err := e.engagement.ToggleLike(bg, a.Principal(), b.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, res.LikeCount)

	_, err = e.engagement.ToggleLike(bg, reader, "missing")
	assert.Equal(t, domain.KindNotFound, kindOf(t, err))
}

func TestComments(t *testing.T) {
	e := newEnv(t, nil)
	a := testutil.MustUser(t, e.db, "a@example.com", domain.RoleAuthor)
	reader := e.principal(t, "r@example.com", domain.RoleReader)
	cat := testutil.MustCategory(t, e.db, "Go", a)
	b := testutil.MustBlog(t, e.db, "post", cat, a, domain.StatusActive)

	_, err := e.engagement.AddComment(bg, reader, b.ID, service.CommentInput{Content: "   "})
	assert.Equal(t, domain.KindValidation, kindOf(t, err))

	_, err = e.engagement.AddComment(bg, reader, "missing", service.CommentInput{Content: "hi"})
	assert.Equal(t, domain.KindNotFound, kindOf(t, err))

	res, err := e.engagement.AddComment(bg, reader, b.ID, service.CommentInput{Content: "  great post "})
	require.NoError(t, err)
	assert.Equal(t, "great post", res.Comment.Content)
	assert.Equal(t, "Test", res.Comment.User.FirstName)
	assert.Equal(t, "User", res.Comment.User.LastName)

	page, err := e.engagement.ListComments(bg, b.ID, domain.NewPageRequest(1, 10))
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.EqualValues(t, 1, page.Pagination.Total)

	_, err = e.engagement.ListComments(bg, "missing", domain.NewPageRequest(1, 10))
	assert.Equal(t, domain.KindNotFound, kindOf(t, err))
}
