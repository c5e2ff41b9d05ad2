package handler

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gabrielAlencar33564/weather/internal/config"
	"github.com/gabrielAlencar33564/weather/internal/model"
	"github.com/gabrielAlencar33564/weather/internal/repository"
)

// Fixed user-facing messages and the status codes they ship with.
const (
	msgEmailExists      = "a user with this email already exists"
	msgUserNotFound     = "user not found"
	msgEmailInvalid     = "please provide a valid email address"
	msgPasswordTooShort = "password must be at least 6 characters long"
)

const passwordMinLength = 6

// emailPattern accepts addr-spec shaped input: something@domain.tld with
// no whitespace. Deliverability is not checked.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func validEmail(s string) bool { return emailPattern.MatchString(s) }

// UserHandler bundles dependencies for the account endpoints.
type UserHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewUserHandler(cfg config.Config, users *repository.UserRepo) *UserHandler {
	return &UserHandler{Cfg: cfg, Users: users}
}

// ----- DTOs -----

type createUserReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateUserReq struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// userResponse is the sanitized account view; the password hash never
// leaves the repository layer.
type userResponse struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func sanitizeUser(u model.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// pageMeta is the pagination envelope shared by list endpoints.
type pageMeta struct {
	Total       int `json:"total"`
	Offset      int `json:"offset"`
	Limit       int `json:"limit"`
	LastPage    int `json:"last_page"`
	CurrentPage int `json:"current_page"`
}

func buildMeta(total, limit, offset int) pageMeta {
	lastPage := (total + limit - 1) / limit
	return pageMeta{
		Total:       total,
		Offset:      offset,
		Limit:       limit,
		LastPage:    lastPage,
		CurrentPage: offset/limit + 1,
	}
}

// limitOffset parses the shared ?limit & ?offset query parameters with
// defaults and an upper bound on the page size.
func limitOffset(c echo.Context) (int, int) {
	limit := 10
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil && v > 0 {
		limit = v
	}
	if limit > 100 {
		limit = 100
	}
	offset := 0
	if v, err := strconv.Atoi(c.QueryParam("offset")); err == nil && v > 0 {
		offset = v
	}
	return limit, offset
}

// Create handles self-service signup.  The role is always USER; the only
// ADMIN account is seeded at startup.
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name/email/password required"})
	}
	if !validEmail(req.Email) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msgEmailInvalid})
	}
	if len(req.Password) < passwordMinLength {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msgPasswordTooShort})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	// Existence check first for the friendly 409; the unique index still
	// backstops concurrent signups racing this check.
	if _, err := h.Users.GetByEmail(ctx, req.Email); err == nil {
		return c.JSON(http.StatusConflict, echo.Map{"error": msgEmailExists})
	} else if !errors.Is(err, repository.ErrNotFound) {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	id, err := h.Users.Create(ctx, req.Name, req.Email, req.Password, model.RoleUser, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": msgEmailExists})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	}
	return c.JSON(http.StatusCreated, sanitizeUser(u))
}

// List returns all accounts, paginated.  Admin-only; the route applies
// the RequireAdmin middleware.
func (h *UserHandler) List(c echo.Context) error {
	limit, offset := limitOffset(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, total, err := h.Users.List(ctx, limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, sanitizeUser(u))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"data": out,
		"meta": buildMeta(total, limit, offset),
	})
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

// Get returns a single account.  Owner-or-admin; enforced by RequireOwner.
func (h *UserHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": msgUserNotFound})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, sanitizeUser(u))
}

// Update applies a partial profile update (name/email/password).
func (h *UserHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req updateUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Email != nil && !validEmail(strings.ToLower(strings.TrimSpace(*req.Email))) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msgEmailInvalid})
	}
	if req.Password != nil && len(*req.Password) < passwordMinLength {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msgPasswordTooShort})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.Update(ctx, id, repository.UserUpdate{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}, h.Cfg.BcryptCost)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": msgUserNotFound})
		case errors.Is(err, repository.ErrEmailExists):
			return c.JSON(http.StatusConflict, echo.Map{"error": msgEmailExists})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
		}
	}
	return c.JSON(http.StatusOK, sanitizeUser(u))
}

// Delete removes an account.
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": msgUserNotFound})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
