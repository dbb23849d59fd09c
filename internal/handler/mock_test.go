package handler

import (
	"context"
	"mime/multipart"

	"github.com/stretchr/testify/mock"

	"github.com/mateen/socialnet/internal/model"
	"github.com/mateen/socialnet/internal/repository"
)

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) Create(ctx context.Context, u *model.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *mockUserStore) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *mockUserStore) ListAll(ctx context.Context) ([]*model.User, error) {
	args := m.Called(ctx)
	us, _ := args.Get(0).([]*model.User)
	return us, args.Error(1)
}

func (m *mockUserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserStore) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserStore) UpdatePassword(ctx context.Context, id uint64, hash string) error {
	args := m.Called(ctx, id, hash)
	return args.Error(0)
}

type mockFriendStore struct{ mock.Mock }

func (m *mockFriendStore) GetEdge(ctx context.Context, userID, friendID uint64) (*model.Friend, error) {
	args := m.Called(ctx, userID, friendID)
	f, _ := args.Get(0).(*model.Friend)
	return f, args.Error(1)
}

func (m *mockFriendStore) CreatePending(ctx context.Context, userID, friendID uint64) error {
	args := m.Called(ctx, userID, friendID)
	return args.Error(0)
}

func (m *mockFriendStore) Accept(ctx context.Context, requesterID, accepterID uint64) error {
	args := m.Called(ctx, requesterID, accepterID)
	return args.Error(0)
}

func (m *mockFriendStore) RemoveBetween(ctx context.Context, userID, otherID uint64) error {
	args := m.Called(ctx, userID, otherID)
	return args.Error(0)
}

func (m *mockFriendStore) ListFriends(ctx context.Context, userID uint64, limit, offset int) ([]*repository.FriendUser, error) {
	args := m.Called(ctx, userID, limit, offset)
	fs, _ := args.Get(0).([]*repository.FriendUser)
	return fs, args.Error(1)
}

func (m *mockFriendStore) ListPendingRequests(ctx context.Context, userID uint64) ([]*repository.FriendRequest, error) {
	args := m.Called(ctx, userID)
	rs, _ := args.Get(0).([]*repository.FriendRequest)
	return rs, args.Error(1)
}

type mockRoomStore struct{ mock.Mock }

func (m *mockRoomStore) Create(ctx context.Context, rm *model.Room) error {
	args := m.Called(ctx, rm)
	return args.Error(0)
}

func (m *mockRoomStore) GetByID(ctx context.Context, id uint64) (*model.Room, error) {
	args := m.Called(ctx, id)
	rm, _ := args.Get(0).(*model.Room)
	return rm, args.Error(1)
}

func (m *mockRoomStore) ListByOwner(ctx context.Context, ownerID uint64) ([]*model.Room, error) {
	args := m.Called(ctx, ownerID)
	rms, _ := args.Get(0).([]*model.Room)
	return rms, args.Error(1)
}

func (m *mockRoomStore) Update(ctx context.Context, id uint64, name string, description, thumbnail *string) error {
	args := m.Called(ctx, id, name, description, thumbnail)
	return args.Error(0)
}

func (m *mockRoomStore) SoftDelete(ctx context.Context, id uint64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockMemberStore struct{ mock.Mock }

func (m *mockMemberStore) GetByRoomAndUser(ctx context.Context, roomID, userID uint64) (*model.Member, error) {
	args := m.Called(ctx, roomID, userID)
	mem, _ := args.Get(0).(*model.Member)
	return mem, args.Error(1)
}

func (m *mockMemberStore) ListByRoom(ctx context.Context, roomID uint64) ([]*repository.RoomMember, error) {
	args := m.Called(ctx, roomID)
	ms, _ := args.Get(0).([]*repository.RoomMember)
	return ms, args.Error(1)
}

func (m *mockMemberStore) Create(ctx context.Context, mem *model.Member) error {
	args := m.Called(ctx, mem)
	return args.Error(0)
}

func (m *mockMemberStore) Delete(ctx context.Context, id uint64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockStoryStore struct{ mock.Mock }

func (m *mockStoryStore) Create(ctx context.Context, s *model.Story) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *mockStoryStore) GetByID(ctx context.Context, id uint64) (*model.Story, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*model.Story)
	return s, args.Error(1)
}

func (m *mockStoryStore) ListFeed(ctx context.Context, viewerID uint64) ([]*model.Story, error) {
	args := m.Called(ctx, viewerID)
	ss, _ := args.Get(0).([]*model.Story)
	return ss, args.Error(1)
}

func (m *mockStoryStore) ListByOwner(ctx context.Context, ownerID uint64) ([]*model.Story, error) {
	args := m.Called(ctx, ownerID)
	ss, _ := args.Get(0).([]*model.Story)
	return ss, args.Error(1)
}

func (m *mockStoryStore) Update(ctx context.Context, id uint64, body string, image *string) error {
	args := m.Called(ctx, id, body, image)
	return args.Error(0)
}

func (m *mockStoryStore) Delete(ctx context.Context, id uint64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockMessageStore struct{ mock.Mock }

func (m *mockMessageStore) Create(ctx context.Context, msg *model.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *mockMessageStore) ListByRoom(ctx context.Context, roomID uint64) ([]*model.Message, error) {
	args := m.Called(ctx, roomID)
	ms, _ := args.Get(0).([]*model.Message)
	return ms, args.Error(1)
}

type mockFileSaver struct{ mock.Mock }

func (m *mockFileSaver) Save(file *multipart.FileHeader, namespace string) (string, error) {
	args := m.Called(file, namespace)
	return args.String(0), args.Error(1)
}
