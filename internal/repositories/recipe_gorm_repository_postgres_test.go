package repositories_test

import (
	"testing"

	"foodgram/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockPostgres(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestGORMRecipeRepository_GetByIDReadsInOneTransaction(t *testing.T) {
	db, mock := newMockPostgres(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "recipes" WHERE recipes\.id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "author_id", "name"}))
	mock.ExpectRollback()

	_, err := repositories.NewGORMRecipeRepository(db).GetByID("missing")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGORMRecipeRepository_ListCountsInsideTheSameTransaction(t *testing.T) {
	db, mock := newMockPostgres(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "recipes" WHERE recipes\.author_id = \$1`).
		WithArgs("author-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectCommit()

	recipes, total, err := repositories.NewGORMRecipeRepository(db).List(
		repositories.RecipeFilter{AuthorID: "author-1"},
		repositories.Page{Number: 1, Size: 6},
	)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, recipes)
	assert.NoError(t, mock.ExpectationsWereMet())
}
