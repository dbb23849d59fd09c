package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mateen/socialnet/internal/model"
	"github.com/mateen/socialnet/internal/queue"
	"github.com/mateen/socialnet/internal/repository"
)

const defaultFriendsPerPage = 20

// FriendHandler serves the friend graph: listings, requests and the
// add/accept/remove lifecycle. Events may be nil; accepts then skip
// publishing.
type FriendHandler struct {
	Friends FriendStore
	Events  EventPublisher
}

func NewFriendHandler(friends FriendStore, events EventPublisher) *FriendHandler {
	return &FriendHandler{Friends: friends, Events: events}
}

// List handles GET /api/v1/friends with ?page and ?per_page paging.
func (h *FriendHandler) List(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(c.QueryParam("per_page"))
	if perPage < 1 || perPage > 100 {
		perPage = defaultFriendsPerPage
	}

	friends, err := h.Friends.ListFriends(c.Request().Context(), p.ID, perPage, (page-1)*perPage)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if friends == nil {
		friends = []*repository.FriendUser{}
	}
	return c.JSON(http.StatusOK, friends)
}

// Requests handles GET /api/v1/friends/requests: pending requests
// addressed to the authenticated user.
func (h *FriendHandler) Requests(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	reqs, err := h.Friends.ListPendingRequests(c.Request().Context(), p.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if reqs == nil {
		reqs = []*repository.FriendRequest{}
	}
	return c.JSON(http.StatusOK, reqs)
}

// Add handles POST /api/v1/friends/:id and creates a pending request
// toward the target user. The existing edge, whatever its status,
// blocks a new request.
func (h *FriendHandler) Add(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	targetID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	if targetID == p.ID {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "You cannot add yourself as a friend."})
	}
	ctx := c.Request().Context()

	if edge, err := h.Friends.GetEdge(ctx, p.ID, targetID); err == nil {
		switch edge.Status {
		case model.FriendStatusPending:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Friend request already sent."})
		case model.FriendStatusActive:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "You are already friends."})
		case model.FriendStatusBlocked:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "You are blocked by this user."})
		default:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Unable to send friend request."})
		}
	} else if !errors.Is(err, repository.ErrFriendNotFound) {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	if err := h.Friends.CreatePending(ctx, p.ID, targetID); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Unable to send friend request."})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Friend request sent."})
}

// Accept handles PUT /api/v1/friends/:id: accepts the pending request
// sent by :id to the authenticated user. On success a friend.accepted
// event is published best-effort in the background.
func (h *FriendHandler) Accept(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	requesterID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	if requesterID == p.ID {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "You cannot add yourself as a friend."})
	}

	if err := h.Friends.Accept(c.Request().Context(), requesterID, p.ID); err != nil {
		if errors.Is(err, repository.ErrFriendNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Friend request not found."})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	if h.Events != nil {
		go func(requesterID, accepterID uint64) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			ev := queue.FriendAcceptedEvent{
				RequesterID: requesterID,
				AccepterID:  accepterID,
				AcceptedAt:  time.Now().UTC().Format(time.RFC3339),
			}
			if err := h.Events.PublishFriendAccepted(ctx, ev); err != nil {
				log.Printf("friend accept: publish event failed: %v", err)
			}
		}(requesterID, p.ID)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Friend request accepted."})
}

// Remove handles DELETE /api/v1/friends/:id and deletes both
// directions of the relation with the target user.
func (h *FriendHandler) Remove(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	targetID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	if targetID == p.ID {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "You cannot remove yourself as a friend."})
	}

	if err := h.Friends.RemoveBetween(c.Request().Context(), p.ID, targetID); err != nil {
		if errors.Is(err, repository.ErrFriendNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Friend not found."})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Friend removed."})
}
