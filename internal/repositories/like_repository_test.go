package repositories

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	return db, mock
}

func TestToggleLikeUnlikeDecrementsCounter(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresLikeRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "likes"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "tweet_id"}).AddRow(3, 1, 9))
	mock.ExpectExec(`DELETE FROM "likes"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "tweets" SET "like_count"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT "id","like_count" FROM "tweets"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "like_count"}).AddRow(9, 4))
	mock.ExpectCommit()

	added, likeCount, err := repo.ToggleLike(context.Background(), 1, 9)

	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, 4, likeCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToggleLikeLostUnlikeRaceLeavesCounterAlone(t *testing.T) {
	// The row is visible to the initial read but a concurrent unlike wins
	// the race: the delete affects zero rows and the counter, already
	// stepped by the winner, must not move again.
	db, mock := newMockDB(t)
	repo := NewPostgresLikeRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "likes"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "tweet_id"}).AddRow(3, 1, 9))
	mock.ExpectExec(`DELETE FROM "likes"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	// No UPDATE here: the next statement is the fresh count read
	mock.ExpectQuery(`SELECT "id","like_count" FROM "tweets"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "like_count"}).AddRow(9, 4))
	mock.ExpectCommit()

	added, likeCount, err := repo.ToggleLike(context.Background(), 1, 9)

	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, 4, likeCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}
