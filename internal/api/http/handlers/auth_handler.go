package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront-gateway/internal/api/dto"
	"github.com/spec-kit/storefront-gateway/internal/service"
	"github.com/spec-kit/storefront-gateway/internal/session"
)

// AuthHandler exposes the staff login/logout flow and session reads.
type AuthHandler struct {
	login   *service.LoginService
	session *session.Store
}

// NewAuthHandler constructs handler.
func NewAuthHandler(login *service.LoginService, sess *session.Store) *AuthHandler {
	return &AuthHandler{login: login, session: sess}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Usuario == "" || req.Clave == "" {
		return fiber.NewError(http.StatusBadRequest, "usuario and clave required")
	}

	res, err := h.login.Login(c.UserContext(), req.Usuario, req.Clave)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": res})
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	target, err := h.session.Logout(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.LogoutResponse{Redirect: target}})
}

// Session handles GET /session.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	current := h.session.Current()
	return c.JSON(fiber.Map{"data": dto.SessionResponse{
		Authenticated: current.Authenticated(),
		Usuario:       current.User,
		Rol:           current.Role,
		ReturnURL:     current.ReturnURL,
	}})
}
