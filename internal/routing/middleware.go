package routing

import (
	"github.com/gofiber/fiber/v2"
)

// Middleware adapts the guard into a fiber pre-handler: denied
// navigations are redirected, allowed ones fall through to the page.
func (g *Guard) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		decision := g.Decide(c.UserContext(), c.Path())
		if !decision.Allowed {
			return c.Redirect(decision.RedirectTo, fiber.StatusFound)
		}
		return c.Next()
	}
}
