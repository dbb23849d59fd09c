package handler

import (
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mateen/socialnet/internal/model"
	"github.com/mateen/socialnet/internal/repository"
)

func newRoomHandler() (*RoomHandler, *mockRoomStore, *mockMemberStore, *mockUserStore) {
	rooms := new(mockRoomStore)
	members := new(mockMemberStore)
	users := new(mockUserStore)
	return NewRoomHandler(rooms, members, users, new(mockFileSaver)), rooms, members, users
}

func TestRoomCreateNameTooShort(t *testing.T) {
	h, rooms, _, _ := newRoomHandler()

	c, rec := newFormContext(t, http.MethodPost, "/api/v1/rooms", url.Values{"name": {"ab"}})
	asUser(c, 1)
	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid Inputs")
	rooms.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRoomCreateSuccess(t *testing.T) {
	h, rooms, _, _ := newRoomHandler()
	rooms.On("Create", mock.Anything, mock.MatchedBy(func(rm *model.Room) bool {
		return rm.Name == "gophers" && rm.CreatedBy == uint64(1) &&
			rm.Description != nil && *rm.Description == "a room for gophers"
	})).Return(nil)

	c, rec := newFormContext(t, http.MethodPost, "/api/v1/rooms", url.Values{
		"name":        {"  gophers  "},
		"description": {"a room for gophers"},
	})
	asUser(c, 1)
	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Room is created successfully.")
	rooms.AssertExpectations(t)
}

func TestRoomGetNotFound(t *testing.T) {
	h, rooms, _, _ := newRoomHandler()
	rooms.On("GetByID", mock.Anything, uint64(5)).Return(nil, repository.ErrRoomNotFound)

	c, rec := newJSONContext(t, http.MethodGet, "/api/v1/rooms/5", "")
	asUser(c, 1)
	setParam(c, "id", "5")
	require.NoError(t, h.Get(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Room not found")
}

func TestRoomDeleteNotOwner(t *testing.T) {
	h, rooms, _, _ := newRoomHandler()
	rooms.On("GetByID", mock.Anything, uint64(5)).
		Return(&model.Room{ID: 5, Name: "theirs", CreatedBy: 99}, nil)

	c, rec := newJSONContext(t, http.MethodDelete, "/api/v1/rooms/5", "")
	asUser(c, 1)
	setParam(c, "id", "5")
	require.NoError(t, h.Delete(c))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "You are not authorized to delete this room")
	rooms.AssertNotCalled(t, "SoftDelete", mock.Anything, mock.Anything)
}

func TestRoomDeleteOwner(t *testing.T) {
	h, rooms, _, _ := newRoomHandler()
	rooms.On("GetByID", mock.Anything, uint64(5)).
		Return(&model.Room{ID: 5, Name: "mine", CreatedBy: 1}, nil)
	rooms.On("SoftDelete", mock.Anything, uint64(5)).Return(nil)

	c, rec := newJSONContext(t, http.MethodDelete, "/api/v1/rooms/5", "")
	asUser(c, 1)
	setParam(c, "id", "5")
	require.NoError(t, h.Delete(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Room is deleted successfully.")
	rooms.AssertExpectations(t)
}

func TestRoomMembersRequiresMembership(t *testing.T) {
	h, rooms, members, _ := newRoomHandler()
	rooms.On("GetByID", mock.Anything, uint64(5)).
		Return(&model.Room{ID: 5, CreatedBy: 99}, nil)
	members.On("GetByRoomAndUser", mock.Anything, uint64(5), uint64(1)).
		Return(nil, repository.ErrMemberNotFound)

	c, rec := newJSONContext(t, http.MethodGet, "/api/v1/rooms/5/members", "")
	asUser(c, 1)
	setParam(c, "id", "5")
	require.NoError(t, h.GetMembers(c))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "You are not authorized to view this room")
	members.AssertNotCalled(t, "ListByRoom", mock.Anything, mock.Anything)
}

func TestRoomMembersLookupError(t *testing.T) {
	// A failing membership lookup is a server error, not a 401.
	h, rooms, members, _ := newRoomHandler()
	rooms.On("GetByID", mock.Anything, uint64(5)).
		Return(&model.Room{ID: 5, CreatedBy: 99}, nil)
	members.On("GetByRoomAndUser", mock.Anything, uint64(5), uint64(1)).
		Return(nil, errors.New("connection reset"))

	c, rec := newJSONContext(t, http.MethodGet, "/api/v1/rooms/5/members", "")
	asUser(c, 1)
	setParam(c, "id", "5")
	require.NoError(t, h.GetMembers(c))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "not authorized")
}

func TestAddMemberDuplicate(t *testing.T) {
	h, rooms, members, users := newRoomHandler()
	rooms.On("GetByID", mock.Anything, uint64(5)).
		Return(&model.Room{ID: 5, CreatedBy: 1}, nil)
	users.On("GetByID", mock.Anything, uint64(3)).
		Return(&model.User{ID: 3, Status: model.UserStatusActive}, nil)
	members.On("GetByRoomAndUser", mock.Anything, uint64(5), uint64(3)).
		Return(&model.Member{ID: 11, RoomID: 5, UserID: 3}, nil)

	c, rec := newFormContext(t, http.MethodPost, "/api/v1/rooms/5/members", url.Values{"user_id": {"3"}})
	asUser(c, 1)
	setParam(c, "id", "5")
	require.NoError(t, h.AddMember(c))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "User is already a member of this room")
	members.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAddMemberSuccess(t *testing.T) {
	h, rooms, members, users := newRoomHandler()
	rooms.On("GetByID", mock.Anything, uint64(5)).
		Return(&model.Room{ID: 5, CreatedBy: 1}, nil)
	users.On("GetByID", mock.Anything, uint64(3)).
		Return(&model.User{ID: 3, Status: model.UserStatusActive}, nil)
	members.On("GetByRoomAndUser", mock.Anything, uint64(5), uint64(3)).
		Return(nil, repository.ErrMemberNotFound)
	members.On("Create", mock.Anything, mock.MatchedBy(func(m *model.Member) bool {
		return m.RoomID == 5 && m.UserID == 3 && m.CreatedBy == 1
	})).Return(nil)

	c, rec := newFormContext(t, http.MethodPost, "/api/v1/rooms/5/members", url.Values{"user_id": {"3"}})
	asUser(c, 1)
	setParam(c, "id", "5")
	require.NoError(t, h.AddMember(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Member is added successfully.")
	members.AssertExpectations(t)
}

func TestAddMemberInsertRace(t *testing.T) {
	// Two adds racing past the pre-check: the loser hits the unique
	// key and still answers 409.
	h, rooms, members, users := newRoomHandler()
	rooms.On("GetByID", mock.Anything, uint64(5)).
		Return(&model.Room{ID: 5, CreatedBy: 1}, nil)
	users.On("GetByID", mock.Anything, uint64(3)).
		Return(&model.User{ID: 3, Status: model.UserStatusActive}, nil)
	members.On("GetByRoomAndUser", mock.Anything, uint64(5), uint64(3)).
		Return(nil, repository.ErrMemberNotFound)
	members.On("Create", mock.Anything, mock.Anything).Return(repository.ErrConflict)

	c, rec := newFormContext(t, http.MethodPost, "/api/v1/rooms/5/members", url.Values{"user_id": {"3"}})
	asUser(c, 1)
	setParam(c, "id", "5")
	require.NoError(t, h.AddMember(c))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "User is already a member of this room")
}

func TestRemoveMemberNotMember(t *testing.T) {
	h, rooms, members, users := newRoomHandler()
	rooms.On("GetByID", mock.Anything, uint64(5)).
		Return(&model.Room{ID: 5, CreatedBy: 1}, nil)
	users.On("GetByID", mock.Anything, uint64(3)).
		Return(&model.User{ID: 3}, nil)
	members.On("GetByRoomAndUser", mock.Anything, uint64(5), uint64(3)).
		Return(nil, repository.ErrMemberNotFound)

	c, rec := newFormContext(t, http.MethodDelete, "/api/v1/rooms/5/members", url.Values{"user_id": {"3"}})
	asUser(c, 1)
	setParam(c, "id", "5")
	require.NoError(t, h.RemoveMember(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "User is not a member of this room")
}

func TestRemoveMemberSelf(t *testing.T) {
	// A member may leave a room they do not own.
	h, rooms, members, users := newRoomHandler()
	rooms.On("GetByID", mock.Anything, uint64(5)).
		Return(&model.Room{ID: 5, CreatedBy: 99}, nil)
	users.On("GetByID", mock.Anything, uint64(1)).
		Return(&model.User{ID: 1}, nil)
	members.On("GetByRoomAndUser", mock.Anything, uint64(5), uint64(1)).
		Return(&model.Member{ID: 12, RoomID: 5, UserID: 1}, nil)
	members.On("Delete", mock.Anything, uint64(12)).Return(nil)

	c, rec := newFormContext(t, http.MethodDelete, "/api/v1/rooms/5/members", url.Values{"user_id": {"1"}})
	asUser(c, 1)
	setParam(c, "id", "5")
	require.NoError(t, h.RemoveMember(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Member is removed successfully.")
	members.AssertExpectations(t)
}

func TestRemoveMemberUnauthorized(t *testing.T) {
	// Neither the owner nor the member themselves: rejected.
	h, rooms, members, users := newRoomHandler()
	rooms.On("GetByID", mock.Anything, uint64(5)).
		Return(&model.Room{ID: 5, CreatedBy: 99}, nil)
	users.On("GetByID", mock.Anything, uint64(3)).
		Return(&model.User{ID: 3}, nil)
	members.On("GetByRoomAndUser", mock.Anything, uint64(5), uint64(3)).
		Return(&model.Member{ID: 13, RoomID: 5, UserID: 3}, nil)

	c, rec := newFormContext(t, http.MethodDelete, "/api/v1/rooms/5/members", url.Values{"user_id": {"3"}})
	asUser(c, 1)
	setParam(c, "id", "5")
	require.NoError(t, h.RemoveMember(c))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	members.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
