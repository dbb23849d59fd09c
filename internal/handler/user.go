package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mateen/socialnet/internal/utils"
)

// UserHandler serves the user directory and account-level operations.
type UserHandler struct {
	Users      UserStore
	BcryptCost int
}

func NewUserHandler(users UserStore, bcryptCost int) *UserHandler {
	return &UserHandler{Users: users, BcryptCost: bcryptCost}
}

// userSummary is the directory view of a user.
type userSummary struct {
	ID        uint64    `json:"id"`
	Username  *string   `json:"username"`
	Firstname string    `json:"firstname"`
	Lastname  string    `json:"lastname"`
	CreatedAt time.Time `json:"created_at"`
}

// userProfile is the full profile view, minus credentials.
type userProfile struct {
	ID        uint64     `json:"id"`
	Username  *string    `json:"username"`
	Firstname string     `json:"firstname"`
	Lastname  string     `json:"lastname"`
	Dob       *time.Time `json:"dob"`
	Address   *string    `json:"address"`
	City      *string    `json:"city"`
	State     *string    `json:"state"`
	Country   *string    `json:"country"`
	Zip       *string    `json:"zip"`
	Latitude  *float64   `json:"latitude"`
	Longitude *float64   `json:"longitude"`
	Mobile    *string    `json:"mobile"`
	Email     string     `json:"email"`
	CreatedAt time.Time  `json:"created_at"`
}

// List handles GET /api/v1/users and returns the whole directory.
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.Users.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	out := make([]userSummary, 0, len(users))
	for _, u := range users {
		out = append(out, userSummary{
			ID:        u.ID,
			Username:  u.Username,
			Firstname: u.Firstname,
			Lastname:  u.Lastname,
			CreatedAt: u.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"users": out})
}

// Get handles GET /api/v1/users/:id.
func (h *UserHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
	}
	u, err := h.Users.GetByID(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"user": userProfile{
		ID:        u.ID,
		Username:  u.Username,
		Firstname: u.Firstname,
		Lastname:  u.Lastname,
		Dob:       u.Dob,
		Address:   u.Address,
		City:      u.City,
		State:     u.State,
		Country:   u.Country,
		Zip:       u.Zip,
		Latitude:  u.Latitude,
		Longitude: u.Longitude,
		Mobile:    u.Mobile,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}})
}

type changePasswordReq struct {
	OldPassword     string `json:"old_password" form:"old_password"`
	NewPassword     string `json:"new_password" form:"new_password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
}

// ChangePassword handles POST /api/v1/users/change-password for the
// authenticated user.
func (h *UserHandler) ChangePassword(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var body changePasswordReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	errs := map[string]string{}
	if body.OldPassword == "" {
		errs["old_password"] = "The old password field is required."
	}
	switch {
	case body.NewPassword == "":
		errs["new_password"] = "The new password field is required."
	case len(body.NewPassword) < 8 || len(body.NewPassword) > 255:
		errs["new_password"] = "The new password field must be between 8 and 255 characters in length."
	}
	if body.ConfirmPassword != body.NewPassword {
		errs["confirm_password"] = "The confirm password field does not match the new password field."
	}
	if len(errs) > 0 {
		return invalidInputs(c, http.StatusBadRequest, errs)
	}

	ctx := c.Request().Context()
	u, err := h.Users.GetByID(ctx, p.ID)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
	}
	if !utils.VerifyPassword(u.Password, body.OldPassword) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Old password is incorrect"})
	}
	hash, err := utils.HashPassword(body.NewPassword, h.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not hash password"})
	}
	if err := h.Users.UpdatePassword(ctx, p.ID, hash); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Password Changed Successfully"})
}
