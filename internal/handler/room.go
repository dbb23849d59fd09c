package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mateen/socialnet/internal/model"
	"github.com/mateen/socialnet/internal/repository"
)

// RoomHandler serves room CRUD and membership management. Ownership is
// rooms.created_by; owners never hold a member row.
type RoomHandler struct {
	Rooms   RoomStore
	Members MemberStore
	Users   UserStore
	Files   FileSaver
}

func NewRoomHandler(rooms RoomStore, members MemberStore, users UserStore, files FileSaver) *RoomHandler {
	return &RoomHandler{Rooms: rooms, Members: members, Users: users, Files: files}
}

// roomView is the JSON shape of a room.
type roomView struct {
	ID          uint64  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Thumbnail   *string `json:"thumbnail"`
	Status      string  `json:"status"`
	CreatedBy   uint64  `json:"created_by"`
}

func toRoomView(rm *model.Room) roomView {
	return roomView{
		ID:          rm.ID,
		Name:        rm.Name,
		Description: rm.Description,
		Thumbnail:   rm.Thumbnail,
		Status:      rm.Status,
		CreatedBy:   rm.CreatedBy,
	}
}

func validRoomName(name string) bool {
	return len(name) >= 3 && len(name) <= 255
}

// List handles GET /api/v1/rooms: the authenticated user's own
// non-deleted rooms.
func (h *RoomHandler) List(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	rooms, err := h.Rooms.ListByOwner(c.Request().Context(), p.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	out := make([]roomView, 0, len(rooms))
	for _, rm := range rooms {
		out = append(out, toRoomView(rm))
	}
	return c.JSON(http.StatusOK, echo.Map{"rooms": out})
}

// Get handles GET /api/v1/rooms/:id. Any authenticated user can fetch
// a room by id; only an absent row is a 404.
func (h *RoomHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Room not found"})
	}
	rm, err := h.Rooms.GetByID(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Room not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"room": toRoomView(rm)})
}

// Create handles POST /api/v1/rooms. Accepts multipart form data with
// an optional thumbnail upload.
func (h *RoomHandler) Create(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	name := strings.TrimSpace(c.FormValue("name"))
	if !validRoomName(name) {
		return invalidInputs(c, http.StatusBadRequest, map[string]string{
			"name": "The name field must be between 3 and 255 characters in length.",
		})
	}

	rm := &model.Room{Name: name, CreatedBy: p.ID}
	if desc := strings.TrimSpace(c.FormValue("description")); desc != "" {
		rm.Description = &desc
	}
	if f, err := c.FormFile("thumbnail"); err == nil {
		path, err := h.Files.Save(f, "rooms")
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not store thumbnail"})
		}
		rm.Thumbnail = &path
	}

	if err := h.Rooms.Create(c.Request().Context(), rm); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Room is created successfully."})
}

// Update handles PUT /api/v1/rooms/:id, owner only. An omitted
// thumbnail keeps the existing one.
func (h *RoomHandler) Update(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Room not found"})
	}
	ctx := c.Request().Context()
	rm, err := h.Rooms.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Room not found"})
	}
	if rm.CreatedBy != p.ID {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "You are not authorized to update this room"})
	}

	name := strings.TrimSpace(c.FormValue("name"))
	if !validRoomName(name) {
		return invalidInputs(c, http.StatusBadRequest, map[string]string{
			"name": "The name field must be between 3 and 255 characters in length.",
		})
	}
	description := rm.Description
	if desc := strings.TrimSpace(c.FormValue("description")); desc != "" {
		description = &desc
	}
	thumbnail := rm.Thumbnail
	if f, err := c.FormFile("thumbnail"); err == nil {
		path, err := h.Files.Save(f, "rooms")
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not store thumbnail"})
		}
		thumbnail = &path
	}

	if err := h.Rooms.Update(ctx, id, name, description, thumbnail); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Room is updated successfully."})
}

// Delete handles DELETE /api/v1/rooms/:id, owner only. Rooms are
// soft-deleted.
func (h *RoomHandler) Delete(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Room not found"})
	}
	ctx := c.Request().Context()
	rm, err := h.Rooms.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Room not found"})
	}
	if rm.CreatedBy != p.ID {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "You are not authorized to delete this room"})
	}
	if err := h.Rooms.SoftDelete(ctx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Room is deleted successfully."})
}

// Members handles GET /api/v1/rooms/:id/members. Visible to the owner
// and to members of the room.
func (h *RoomHandler) GetMembers(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Room not found"})
	}
	ctx := c.Request().Context()
	rm, err := h.Rooms.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Room not found"})
	}
	if rm.CreatedBy != p.ID {
		if _, err := h.Members.GetByRoomAndUser(ctx, id, p.ID); err != nil {
			if errors.Is(err, repository.ErrMemberNotFound) {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "You are not authorized to view this room"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
	}

	members, err := h.Members.ListByRoom(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if members == nil {
		members = []*repository.RoomMember{}
	}
	return c.JSON(http.StatusOK, echo.Map{"members": members})
}

// AddMember handles POST /api/v1/rooms/:id/members, owner only.
func (h *RoomHandler) AddMember(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Room not found"})
	}
	ctx := c.Request().Context()
	rm, err := h.Rooms.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Room not found"})
	}
	if rm.CreatedBy != p.ID {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "You are not authorized to update this room"})
	}

	userID, err := strconv.ParseUint(strings.TrimSpace(c.FormValue("user_id")), 10, 64)
	if err != nil || userID == 0 {
		return invalidInputs(c, http.StatusBadRequest, map[string]string{
			"user_id": "The user_id field is required.",
		})
	}
	if _, err := h.Users.GetByID(ctx, userID); err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
	}
	if _, err := h.Members.GetByRoomAndUser(ctx, id, userID); err == nil {
		return c.JSON(http.StatusConflict, echo.Map{"error": "User is already a member of this room"})
	} else if !errors.Is(err, repository.ErrMemberNotFound) {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	m := &model.Member{RoomID: id, UserID: userID, CreatedBy: p.ID}
	if err := h.Members.Create(ctx, m); err != nil {
		// Covers an add racing past the pre-check onto the unique key.
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "User is already a member of this room"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Member is added successfully."})
}

// RemoveMember handles DELETE /api/v1/rooms/:id/members. The owner can
// remove anyone; a member can remove themselves.
func (h *RoomHandler) RemoveMember(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Room not found"})
	}
	ctx := c.Request().Context()
	rm, err := h.Rooms.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Room not found"})
	}

	userID, err := strconv.ParseUint(strings.TrimSpace(c.FormValue("user_id")), 10, 64)
	if err != nil || userID == 0 {
		return invalidInputs(c, http.StatusBadRequest, map[string]string{
			"user_id": "The user_id field is required.",
		})
	}
	if _, err := h.Users.GetByID(ctx, userID); err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
	}

	member, err := h.Members.GetByRoomAndUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrMemberNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "User is not a member of this room"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if rm.CreatedBy != p.ID && userID != p.ID {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "You are not authorized to update this room"})
	}

	if err := h.Members.Delete(ctx, member.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Member is removed successfully."})
}
