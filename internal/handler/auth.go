package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gabrielAlencar33564/weather/internal/config"
	"github.com/gabrielAlencar33564/weather/internal/middleware"
	"github.com/gabrielAlencar33564/weather/internal/repository"
	"github.com/gabrielAlencar33564/weather/internal/utils"
)

// msgInvalidCredentials is returned for both unknown emails and wrong
// passwords so the response does not leak which accounts exist.
const msgInvalidCredentials = "invalid email or password"

// AuthHandler bundles dependencies for the auth endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewAuthHandler(cfg config.Config, users *repository.UserRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users}
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResp struct {
	Token string       `json:"token"`
	Exp   time.Time    `json:"expires"`
	User  userResponse `json:"user"`
}

// Login verifies credentials and issues a signed access token embedding
// the session claim.  There is no refresh token and no session store;
// the token is valid until its expiry.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": msgInvalidCredentials})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": msgInvalidCredentials})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Email, u.Name, u.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}

	return c.JSON(http.StatusOK, loginResp{
		Token: access.Token,
		Exp:   access.Exp,
		User:  sanitizeUser(u),
	})
}

// Me echoes the verified session claim of the caller.
func (h *AuthHandler) Me(c echo.Context) error {
	claim := middleware.ClaimFrom(c)
	if claim == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"user_id": claim.Subject,
		"email":   claim.Email,
		"name":    claim.Name,
		"role":    claim.Role,
	})
}
