package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mateen/socialnet/internal/model"
)

func newMockDB(t *testing.T) (*FriendRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewFriendRepo(db), mock
}

const (
	acceptUpdateSQL = "UPDATE friends SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE user_id = ? AND friend_id = ? AND status = ?"
	acceptInsertSQL = "INSERT INTO friends (user_id, friend_id, status) VALUES (?,?,?)"
	removeSQL       = "DELETE FROM friends WHERE (user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)"
)

func TestAcceptWritesBothEdges(t *testing.T) {
	repo, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(acceptUpdateSQL)).
		WithArgs(model.FriendStatusActive, uint64(2), uint64(1), model.FriendStatusPending).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(acceptInsertSQL)).
		WithArgs(uint64(1), uint64(2), model.FriendStatusActive).
		WillReturnResult(sqlmock.NewResult(10, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Accept(context.Background(), 2, 1))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAcceptNoPendingRollsBack(t *testing.T) {
	repo, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(acceptUpdateSQL)).
		WithArgs(model.FriendStatusActive, uint64(2), uint64(1), model.FriendStatusPending).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Accept(context.Background(), 2, 1)
	assert.ErrorIs(t, err, ErrFriendNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAcceptReverseInsertFailureRollsBack(t *testing.T) {
	// The graph must never be left with one active edge: a failing
	// reverse insert undoes the status update.
	repo, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(acceptUpdateSQL)).
		WithArgs(model.FriendStatusActive, uint64(2), uint64(1), model.FriendStatusPending).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(acceptInsertSQL)).
		WithArgs(uint64(1), uint64(2), model.FriendStatusActive).
		WillReturnError(errors.New("Error 1062: Duplicate entry '1-2' for key 'uk_friends'"))
	mock.ExpectRollback()

	err := repo.Accept(context.Background(), 2, 1)
	assert.ErrorIs(t, err, ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveBetweenDeletesBothDirections(t *testing.T) {
	repo, mock := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta(removeSQL)).
		WithArgs(uint64(1), uint64(2), uint64(2), uint64(1)).
		WillReturnResult(sqlmock.NewResult(0, 2))

	require.NoError(t, repo.RemoveBetween(context.Background(), 1, 2))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveBetweenHalfRemovedEdge(t *testing.T) {
	// One remaining direction is still a successful removal.
	repo, mock := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta(removeSQL)).
		WithArgs(uint64(1), uint64(2), uint64(2), uint64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.RemoveBetween(context.Background(), 1, 2))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveBetweenNoEdges(t *testing.T) {
	repo, mock := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta(removeSQL)).
		WithArgs(uint64(1), uint64(2), uint64(2), uint64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.RemoveBetween(context.Background(), 1, 2)
	assert.ErrorIs(t, err, ErrFriendNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePendingDuplicate(t *testing.T) {
	repo, mock := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta(acceptInsertSQL)).
		WithArgs(uint64(1), uint64(2), model.FriendStatusPending).
		WillReturnError(errors.New("Error 1062: Duplicate entry '1-2' for key 'uk_friends'"))

	err := repo.CreatePending(context.Background(), 1, 2)
	assert.ErrorIs(t, err, ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}
