package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/minidocs/minidocs/internal/accounts"
	"github.com/minidocs/minidocs/internal/auth"
)

// AuthHandler issues access/refresh token pairs.
type AuthHandler struct {
	accounts   *accounts.Service
	jwtSecret  string
	accessTTL  time.Duration
	refreshTTL time.Duration
	logger     *slog.Logger
}

type TokenRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type TokenResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

func NewAuthHandler(log *slog.Logger, accountService *accounts.Service, jwtSecret string, accessTTL, refreshTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		accounts:   accountService,
		jwtSecret:  jwtSecret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		logger:     log.With(slog.String("handler", "auth")),
	}
}

func (h *AuthHandler) Register(e *echo.Echo) {
	group := e.Group("/api/auth")
	group.POST("/token", h.Token)
	group.POST("/refresh", h.Refresh)
	group.GET("/me", h.Me)
}

// Token godoc
// @Summary Obtain token pair
// @Tags auth
// @Param payload body TokenRequest true "Credentials"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/auth/token [post]
func (h *AuthHandler) Token(c echo.Context) error {
	var req TokenRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	account, err := h.accounts.Authenticate(c.Request().Context(), strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		if errors.Is(err, accounts.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusUnauthorized, "no active account found with the given credentials")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	access, _, err := auth.GenerateToken(account.ID, h.jwtSecret, h.accessTTL)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	refresh, _, err := auth.GenerateRefreshToken(account.ID, h.jwtSecret, h.refreshTTL)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	h.logger.Info("token issued", slog.String("user_id", account.ID))
	return c.JSON(http.StatusOK, TokenResponse{Access: access, Refresh: refresh})
}

// Refresh godoc
// @Summary Refresh access token
// @Tags auth
// @Param payload body RefreshRequest true "Refresh token"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req RefreshRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	userID, err := auth.ParseRefreshToken(req.Refresh, h.jwtSecret)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "token is invalid or expired")
	}
	if _, err := h.accounts.Get(c.Request().Context(), userID); err != nil {
		if errors.Is(err, accounts.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusUnauthorized, "user not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	access, _, err := auth.GenerateToken(userID, h.jwtSecret, h.accessTTL)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, TokenResponse{Access: access})
}

// Me godoc
// @Summary Current account
// @Tags auth
// @Success 200 {object} accounts.Account
// @Failure 401 {object} ErrorResponse
// @Router /api/auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	account, err := h.accounts.Get(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, accounts.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, account)
}
