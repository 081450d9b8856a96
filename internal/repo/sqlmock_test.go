package repo

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"go-gin-gorm-blog/internal/domain"
)

func mockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB, PreferSimpleProtocol: true}), &gorm.Config{
		Logger:               logger.Default.LogMode(logger.Silent),
		DisableAutomaticPing: true,
		TranslateError:       true,
	})
	require.NoError(t, err)
	return db, mock
}

var errConnReset = errors.New("connection reset by peer")

func TestUserRepo_FindByIDStoreError(t *testing.T) {
	db, mock := mockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnError(errConnReset)

	u, err := NewUserRepo(db).FindByID(context.Background(), "u1")
	assert.Nil(t, u)
	assert.ErrorIs(t, err, errConnReset)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeRepo_ToggleRollsBack(t *testing.T) {
	db, mock := mockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "likes"`).WillReturnError(errConnReset)
	mock.ExpectRollback()

	_, err := NewLikeRepo(db).Toggle(context.Background(), "u1", "b1")
	assert.ErrorIs(t, err, errConnReset)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepo_DeleteInUseSkipsDelete(t *testing.T) {
	db, mock := mockDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "blogs"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectRollback()

	err := NewCategoryRepo(db).Delete(context.Background(), "c1")
	assert.ErrorIs(t, err, domain.ErrInUse)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil, "op"))
	assert.ErrorIs(t, translate(gorm.ErrDuplicatedKey, "op"), domain.ErrDuplicate)
	assert.ErrorIs(t, translate(errors.New(`pq: duplicate key value violates unique constraint "idx_users_email"`), "op"), domain.ErrDuplicate)
	assert.ErrorIs(t, translate(gorm.ErrForeignKeyViolated, "op"), domain.ErrInUse)
	assert.ErrorIs(t, translate(errConnReset, "op"), errConnReset)
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%go%", likePattern("go"))
	assert.Equal(t, "%100!%!_x!!%", likePattern("100%_x!"))
}

func TestSearchClause(t *testing.T) {
	tests := []struct {
		dialect  string
		contains string
		arg      any
	}{
		{dialect: "sqlite", contains: "instr(title, ?)", arg: "50%"},
		{dialect: "postgres", contains: "strpos(body, ?)", arg: "50%"},
		{dialect: "mysql", contains: "LIKE BINARY", arg: "%50!%%"},
		{dialect: "sqlserver", contains: "title LIKE ? ESCAPE", arg: "%50!%%"},
	}
	for _, tt := range tests {
		t.Run(tt.dialect, func(t *testing.T) {
			assert.Contains(t, searchClause(tt.dialect), tt.contains)
			assert.Equal(t, []any{tt.arg, tt.arg}, searchArgs(tt.dialect, "50%"))
		})
	}
}
