package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/proxy"
	"go.uber.org/zap"
)

// PagesHandler serves the storefront's page routes by proxying to the
// frontend origin. Every page route sits behind the navigation guard;
// this handler only runs for allowed navigations.
type PagesHandler struct {
	frontendURL string
	logger      *zap.Logger
}

// NewPagesHandler constructs handler.
func NewPagesHandler(frontendURL string, logger *zap.Logger) *PagesHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PagesHandler{frontendURL: frontendURL, logger: logger}
}

// Serve forwards the navigation to the frontend origin.
func (h *PagesHandler) Serve(c *fiber.Ctx) error {
	if err := proxy.Do(c, h.frontendURL+c.OriginalURL()); err != nil {
		h.logger.Warn("frontend proxy failed", zap.String("path", c.Path()), zap.Error(err))
		return fiber.NewError(fiber.StatusBadGateway, "frontend unavailable")
	}
	return nil
}
