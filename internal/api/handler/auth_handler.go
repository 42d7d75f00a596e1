package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/soldiers/admin-gateway/internal/api/middleware"
	"github.com/soldiers/admin-gateway/internal/core/access"
	"github.com/soldiers/admin-gateway/internal/core/domain"
	"github.com/soldiers/admin-gateway/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	carts       middleware.CartDiscarder
	access      *access.Evaluator
	log         zerolog.Logger
}

func NewAuthHandler(authService ports.AuthService, carts middleware.CartDiscarder, ev *access.Evaluator, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, carts: carts, access: ev, log: log}
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type sessionResponse struct {
	User        domain.User     `json:"user"`
	AuthModel   string          `json:"authModel"` // "profile" or "legacy"
	Role        domain.Role     `json:"role,omitempty"`
	Profile     *domain.Profile `json:"profile,omitempty"`
	Permissions []string        `json:"permissions"`
	IsAdmin     bool            `json:"isAdmin"`
}

type loginResponse struct {
	Token   string          `json:"token"`
	Session sessionResponse `json:"session"`
}

type navigationResponse struct {
	Items  []access.MenuItem `json:"items"`
	Grants []access.Grant    `json:"grants"`
}

func (h *AuthHandler) toSessionResponse(s *domain.Session) sessionResponse {
	resp := sessionResponse{User: s.User, Permissions: []string{}, IsAdmin: h.access.IsAdmin(s)}
	switch m := s.Auth.(type) {
	case domain.ProfileBased:
		p := m.Profile
		resp.AuthModel = "profile"
		resp.Profile = &p
		resp.Permissions = m.Permissions.List()
	case domain.LegacyRole:
		resp.AuthModel = "legacy"
		resp.Role = m.Role
	}
	return resp
}

// Login signs the user in against the backend and opens a session.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /v1/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	res, err := h.authService.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, loginResponse{Token: res.Token, Session: h.toSessionResponse(res.Session)})
}

// Logout ends the session and drops its cart.
//
// @Summary      Sign out
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  errorResponse
// @Router       /v1/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}

	h.carts.Discard(s)
	if err := h.authService.SignOut(context.WithoutCancel(c.Request().Context()), s.ID); err != nil {
		return err
	}
	h.log.Info().Str("session_id", s.ID).Int64("user_id", s.User.ID).Msg("signed out")
	return c.NoContent(http.StatusNoContent)
}

// Me returns the current session.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.toSessionResponse(s))
}

// Navigation returns the menu entries and per-resource grants of the session.
//
// @Summary      Sidebar and grants
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  navigationResponse
// @Router       /v1/me/navigation [get]
func (h *AuthHandler) Navigation(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, navigationResponse{
		Items:  h.access.Navigation(s),
		Grants: h.access.Grants(s),
	})
}
