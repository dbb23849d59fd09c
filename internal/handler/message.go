package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mateen/socialnet/internal/model"
	"github.com/mateen/socialnet/internal/repository"
)

// MessageHandler serves room messages. Posting requires being the room
// owner or a member; listing does not check membership.
type MessageHandler struct {
	Rooms    RoomStore
	Members  MemberStore
	Messages MessageStore
}

func NewMessageHandler(rooms RoomStore, members MemberStore, messages MessageStore) *MessageHandler {
	return &MessageHandler{Rooms: rooms, Members: members, Messages: messages}
}

type messageView struct {
	ID        uint64    `json:"id"`
	RoomID    uint64    `json:"room_id"`
	Message   string    `json:"message"`
	CreatedBy uint64    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// List handles GET /api/v1/messages/:roomId, oldest first.
func (h *MessageHandler) List(c echo.Context) error {
	roomID, err := pathID(c, "roomId")
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Room not found"})
	}
	msgs, err := h.Messages.ListByRoom(c.Request().Context(), roomID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	out := make([]messageView, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, messageView{
			ID:        m.ID,
			RoomID:    m.RoomID,
			Message:   m.Message,
			CreatedBy: m.CreatedBy,
			CreatedAt: m.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"messages": out})
}

type createMessageReq struct {
	Message string `json:"message" form:"message"`
}

// Create handles POST /api/v1/messages/:roomId. The author must be the
// room owner or hold a membership row.
func (h *MessageHandler) Create(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	roomID, err := pathID(c, "roomId")
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Room not found"})
	}
	var body createMessageReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	text := strings.TrimSpace(body.Message)
	if text == "" {
		return invalidInputs(c, http.StatusBadRequest, map[string]string{
			"message": "The message field is required.",
		})
	}
	ctx := c.Request().Context()

	rm, err := h.Rooms.GetByID(ctx, roomID)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Room not found"})
	}
	if rm.CreatedBy != p.ID {
		if _, err := h.Members.GetByRoomAndUser(ctx, roomID, p.ID); err != nil {
			if errors.Is(err, repository.ErrMemberNotFound) {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "You are not a member of this room"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
	}

	m := &model.Message{RoomID: roomID, Message: text, CreatedBy: p.ID}
	if err := h.Messages.Create(ctx, m); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Message created successfully"})
}
