package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/moritzgrimm/gigbook/internal/config"
	"github.com/moritzgrimm/gigbook/internal/repository"
	"github.com/moritzgrimm/gigbook/internal/utils"
)

// AuthHandler bundles dependencies for the auth endpoints. The tool knows a
// single staff account configured through the environment; refresh tokens
// live in redis and are unavailable (login-only sessions) without it.
type AuthHandler struct {
	Cfg    config.Config
	Tokens *repository.TokenRepo
}

func NewAuthHandler(cfg config.Config, t *repository.TokenRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Tokens: t}
}

// ----- DTOs -----

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}
type authResp struct {
	User    string     `json:"user"`
	Access  tokenPart  `json:"access"`
	Refresh *tokenPart `json:"refresh,omitempty"`
}

// Login verifies the staff credentials and returns a token pair. The
// refresh part is omitted when no token store is configured.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password required"})
	}
	if req.Username != h.Cfg.StaffUser || !utils.VerifyPassword(h.Cfg.StaffPassHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, req.Username, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}
	resp := authResp{
		User:   req.Username,
		Access: tokenPart{Token: access.Token, Expires: access.Exp},
	}

	refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
	if err == nil {
		err = h.Tokens.StoreRefresh(c.Request().Context(), req.Username,
			utils.HashRefreshRaw(refresh.Raw), refresh.Exp)
	}
	if err == nil {
		resp.Refresh = &tokenPart{Token: refresh.Raw, Expires: refresh.Exp}
	} else if !errors.Is(err, repository.ErrTokenStoreUnavailable) {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save refresh failed"})
	}
	return c.JSON(http.StatusOK, resp)
}

// Refresh exchanges a valid refresh token for a fresh access token. The
// refresh token itself is rotated: the old hash is revoked and a new raw
// token returned.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || req.RefreshToken == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
	}
	ctx := c.Request().Context()

	hash := utils.HashRefreshRaw(req.RefreshToken)
	subject, err := h.Tokens.ValidateRefresh(ctx, hash)
	if err != nil {
		if errors.Is(err, repository.ErrTokenInvalid) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
		}
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "token store unavailable"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, subject, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}
	next, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue refresh failed"})
	}
	if err := h.Tokens.StoreRefresh(ctx, subject, utils.HashRefreshRaw(next.Raw), next.Exp); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save refresh failed"})
	}
	_ = h.Tokens.RevokeByHash(ctx, hash)

	return c.JSON(http.StatusOK, authResp{
		User:    subject,
		Access:  tokenPart{Token: access.Token, Expires: access.Exp},
		Refresh: &tokenPart{Token: next.Raw, Expires: next.Exp},
	})
}

// Logout invalidates the presented refresh token. Returns 204 even for an
// already-unknown token; logout is idempotent.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || req.RefreshToken == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
	}
	if err := h.Tokens.RevokeByHash(c.Request().Context(), utils.HashRefreshRaw(req.RefreshToken)); err != nil &&
		!errors.Is(err, repository.ErrTokenStoreUnavailable) {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "revoke failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Me returns the authenticated staff identity from the token claims.
func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"user": c.Get("staff")})
}
