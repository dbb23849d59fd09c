package handler

import (
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mateen/socialnet/internal/config"
	"github.com/mateen/socialnet/internal/model"
	"github.com/mateen/socialnet/internal/repository"
	"github.com/mateen/socialnet/internal/utils"
)

// AuthHandler bundles dependencies for the unauthenticated endpoints
// (register, login).
type AuthHandler struct {
	Cfg   config.Config
	Users UserStore
}

func NewAuthHandler(cfg config.Config, users UserStore) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users}
}

// ----- DTOs -----

type registerReq struct {
	Firstname       string `json:"firstname" form:"firstname"`
	Lastname        string `json:"lastname" form:"lastname"`
	Username        string `json:"username" form:"username"`
	Email           string `json:"email" form:"email"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
}

type loginReq struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// Register handles POST /api/v1/register. Validation failures are
// reported per-field in one response; accounts start with active
// status set by the database default.
func (h *AuthHandler) Register(c echo.Context) error {
	var body registerReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	ctx := c.Request().Context()

	errs := map[string]string{}
	email := strings.ToLower(strings.TrimSpace(body.Email))
	switch {
	case email == "":
		errs["email"] = "The email field is required."
	case len(email) < 4 || len(email) > 255:
		errs["email"] = "The email field must be between 4 and 255 characters in length."
	default:
		if _, err := mail.ParseAddress(email); err != nil {
			errs["email"] = "The email field must contain a valid email address."
		} else if exists, err := h.Users.ExistsByEmail(ctx, email); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		} else if exists {
			errs["email"] = "Email already exists"
		}
	}

	switch {
	case body.Password == "":
		errs["password"] = "The password field is required."
	case len(body.Password) < 8 || len(body.Password) > 255:
		errs["password"] = "The password field must be between 8 and 255 characters in length."
	}
	if body.ConfirmPassword != body.Password {
		errs["confirm_password"] = "The confirm password field does not match the password field."
	}

	username := strings.TrimSpace(body.Username)
	if username != "" {
		if len(username) > 64 {
			errs["username"] = "The username field cannot exceed 64 characters in length."
		} else if exists, err := h.Users.ExistsByUsername(ctx, username); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		} else if exists {
			errs["username"] = "Username already exists"
		}
	}

	if len(errs) > 0 {
		return invalidInputs(c, http.StatusConflict, errs)
	}

	hash, err := utils.HashPassword(body.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not hash password"})
	}
	u := &model.User{
		Firstname: body.Firstname,
		Lastname:  body.Lastname,
		Email:     email,
		Password:  hash,
	}
	// Empty usernames are stored as NULL so the unique key ignores them.
	if username != "" {
		u.Username = &username
	}
	if err := h.Users.Create(ctx, u); err != nil {
		// Covers a register racing past the pre-check onto the unique key.
		if errors.Is(err, repository.ErrEmailExists) {
			return invalidInputs(c, http.StatusConflict, map[string]string{"email": "Email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Registered Successfully"})
}

// Login handles POST /api/v1/login. Unknown email, wrong password and
// non-active account all answer 401; the first two share one message
// so the response does not reveal which part was wrong.
func (h *AuthHandler) Login(c echo.Context) error {
	var body loginReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	ctx := c.Request().Context()

	u, err := h.Users.GetByEmail(ctx, body.Email)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid username or password."})
	}
	if u.Status != model.UserStatusActive {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "User is not active."})
	}
	if !utils.VerifyPassword(u.Password, body.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid username or password."})
	}

	tok, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.Email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not issue token"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Login Successful", "token": tok.Token})
}
