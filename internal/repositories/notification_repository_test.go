package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetByRecipientIDPropagatesCountFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresNotificationRepository(db)

	countErr := errors.New("connection reset")
	mock.ExpectQuery(`SELECT count\(\*\) FROM "notifications"`).
		WillReturnError(countErr)

	notifications, total, err := repo.GetByRecipientID(context.Background(), 7, 1, 20)

	require.Error(t, err)
	assert.Nil(t, notifications)
	assert.Zero(t, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByRecipientIDReturnsPageAndTotal(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresNotificationRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "notifications"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`SELECT \* FROM "notifications"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "type", "actor_id", "recipient_id"}).
			AddRow(2, "like", 1, 7).
			AddRow(1, "follow", 3, 7))

	notifications, total, err := repo.GetByRecipientID(context.Background(), 7, 1, 20)

	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, notifications, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}
