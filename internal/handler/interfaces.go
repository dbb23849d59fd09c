// Package handler implements the HTTP layer of the API. Handlers bind
// and validate request input, resolve the authenticated principal from
// context, authorize against the relevant store and translate
// repository errors into the JSON error envelope. Each handler struct
// depends on narrow store interfaces rather than concrete repositories
// so tests can substitute mocks.
package handler

import (
	"context"
	"mime/multipart"

	"github.com/mateen/socialnet/internal/model"
	"github.com/mateen/socialnet/internal/queue"
	"github.com/mateen/socialnet/internal/repository"
)

// UserStore is the subset of *repository.UserRepo the handlers need.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id uint64) (*model.User, error)
	ListAll(ctx context.Context) ([]*model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	UpdatePassword(ctx context.Context, id uint64, hash string) error
}

// FriendStore is the subset of *repository.FriendRepo the handlers need.
type FriendStore interface {
	GetEdge(ctx context.Context, userID, friendID uint64) (*model.Friend, error)
	CreatePending(ctx context.Context, userID, friendID uint64) error
	Accept(ctx context.Context, requesterID, accepterID uint64) error
	RemoveBetween(ctx context.Context, userID, otherID uint64) error
	ListFriends(ctx context.Context, userID uint64, limit, offset int) ([]*repository.FriendUser, error)
	ListPendingRequests(ctx context.Context, userID uint64) ([]*repository.FriendRequest, error)
}

// RoomStore is the subset of *repository.RoomRepo the handlers need.
type RoomStore interface {
	Create(ctx context.Context, rm *model.Room) error
	GetByID(ctx context.Context, id uint64) (*model.Room, error)
	ListByOwner(ctx context.Context, ownerID uint64) ([]*model.Room, error)
	Update(ctx context.Context, id uint64, name string, description, thumbnail *string) error
	SoftDelete(ctx context.Context, id uint64) error
}

// MemberStore is the subset of *repository.MemberRepo the handlers need.
type MemberStore interface {
	GetByRoomAndUser(ctx context.Context, roomID, userID uint64) (*model.Member, error)
	ListByRoom(ctx context.Context, roomID uint64) ([]*repository.RoomMember, error)
	Create(ctx context.Context, m *model.Member) error
	Delete(ctx context.Context, id uint64) error
}

// StoryStore is the subset of *repository.StoryRepo the handlers need.
type StoryStore interface {
	Create(ctx context.Context, s *model.Story) error
	GetByID(ctx context.Context, id uint64) (*model.Story, error)
	ListFeed(ctx context.Context, viewerID uint64) ([]*model.Story, error)
	ListByOwner(ctx context.Context, ownerID uint64) ([]*model.Story, error)
	Update(ctx context.Context, id uint64, body string, image *string) error
	Delete(ctx context.Context, id uint64) error
}

// MessageStore is the subset of *repository.MessageRepo the handlers need.
type MessageStore interface {
	Create(ctx context.Context, m *model.Message) error
	ListByRoom(ctx context.Context, roomID uint64) ([]*model.Message, error)
}

// FileSaver stores an uploaded file under a namespace ("rooms",
// "stories") and returns the relative path to persist on the entity.
// Satisfied by *storage.FileStore.
type FileSaver interface {
	Save(file *multipart.FileHeader, namespace string) (string, error)
}

// EventPublisher delivers domain events to the message broker.
// Satisfied by service.Publisher.
type EventPublisher interface {
	PublishFriendAccepted(ctx context.Context, ev queue.FriendAcceptedEvent) error
}
