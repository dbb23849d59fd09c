package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mateen/socialnet/internal/model"
)

// StoryHandler serves ephemeral stories: the friends feed, the owner's
// own stories and the create/update/remove lifecycle.
type StoryHandler struct {
	Stories StoryStore
	Files   FileSaver
}

func NewStoryHandler(stories StoryStore, files FileSaver) *StoryHandler {
	return &StoryHandler{Stories: stories, Files: files}
}

// storyView is the feed shape of a story: expiry is internal there.
type storyView struct {
	ID        uint64    `json:"id"`
	UserID    uint64    `json:"user_id"`
	Body      string    `json:"body"`
	Image     *string   `json:"image"`
	CreatedAt time.Time `json:"created_at"`
}

// ownStoryView adds the expiry so owners can see when each story
// leaves the feed.
type ownStoryView struct {
	storyView
	ExpiresAt time.Time `json:"expires_at"`
}

func toStoryView(s *model.Story) storyView {
	return storyView{ID: s.ID, UserID: s.UserID, Body: s.Body, Image: s.Image, CreatedAt: s.CreatedAt}
}

// Feed handles GET /api/v1/stories: unexpired stories of the
// authenticated user's active friends.
func (h *StoryHandler) Feed(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	stories, err := h.Stories.ListFeed(c.Request().Context(), p.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	out := make([]storyView, 0, len(stories))
	for _, s := range stories {
		out = append(out, toStoryView(s))
	}
	return c.JSON(http.StatusOK, echo.Map{"stories": out})
}

// Self handles GET /api/v1/stories/self: every story the user owns,
// expired ones included, with the expiry exposed.
func (h *StoryHandler) Self(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	stories, err := h.Stories.ListByOwner(c.Request().Context(), p.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	out := make([]ownStoryView, 0, len(stories))
	for _, s := range stories {
		out = append(out, ownStoryView{storyView: toStoryView(s), ExpiresAt: s.DeletedAt})
	}
	return c.JSON(http.StatusOK, echo.Map{"stories": out})
}

// Create handles POST /api/v1/stories. Multipart form with a required
// body and an optional image upload.
func (h *StoryHandler) Create(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	body := strings.TrimSpace(c.FormValue("body"))
	if body == "" {
		return invalidInputs(c, http.StatusBadRequest, map[string]string{
			"body": "The body field is required.",
		})
	}

	s := &model.Story{UserID: p.ID, Body: body}
	if f, err := c.FormFile("image"); err == nil {
		path, err := h.Files.Save(f, "stories")
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not store image"})
		}
		s.Image = &path
	}

	if err := h.Stories.Create(c.Request().Context(), s); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Story created successfully."})
}

// Update handles PUT /api/v1/stories/:id, owner only. An omitted image
// keeps the existing one; the expiry is never extended.
func (h *StoryHandler) Update(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Story not found."})
	}
	ctx := c.Request().Context()
	s, err := h.Stories.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Story not found."})
	}
	if s.UserID != p.ID {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "You are not authorized to update this story."})
	}

	body := strings.TrimSpace(c.FormValue("body"))
	if body == "" {
		return invalidInputs(c, http.StatusBadRequest, map[string]string{
			"body": "The body field is required.",
		})
	}
	image := s.Image
	if f, err := c.FormFile("image"); err == nil {
		path, err := h.Files.Save(f, "stories")
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not store image"})
		}
		image = &path
	}

	if err := h.Stories.Update(ctx, id, body, image); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Story updated successfully."})
}

// Remove handles DELETE /api/v1/stories/:id, owner only. Removal is a
// hard delete, unlike expiry.
func (h *StoryHandler) Remove(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Story not found."})
	}
	ctx := c.Request().Context()
	s, err := h.Stories.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Story not found."})
	}
	if s.UserID != p.ID {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "You are not authorized to remove this story."})
	}
	if err := h.Stories.Delete(ctx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Story removed successfully."})
}
