package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront-gateway/internal/api/http/handlers"
	"github.com/spec-kit/storefront-gateway/internal/config"
	"github.com/spec-kit/storefront-gateway/internal/routing"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health *handlers.HealthHandler
	Auth   *handlers.AuthHandler
	Cart   *handlers.CartHandler
	Pages  *handlers.PagesHandler
	Proxy  *handlers.ProxyHandler
	Guard  *routing.Guard
	Routes config.RoutesConfig
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Health.Metrics)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.Auth.Logout)
	app.Get("/session", cfg.Auth.Session)

	app.Get("/cart", cfg.Cart.List)
	app.Post("/cart/items", cfg.Cart.Add)
	app.Put("/cart/items/:id/cantidad", cfg.Cart.SetQuantity)
	app.Delete("/cart/items/:id", cfg.Cart.Remove)
	app.Delete("/cart", cfg.Cart.Clear)
	app.Post("/cart/close-sidebar", cfg.Cart.CloseSidebar)

	app.All("/api/*", cfg.Proxy.Forward)

	registerPageRoutes(app, cfg)
}

// registerPageRoutes puts every known page behind the navigation guard.
func registerPageRoutes(app *fiber.App, cfg RouteConfig) {
	guard := cfg.Guard.Middleware()

	seen := make(map[string]struct{})
	for _, table := range [][]string{cfg.Routes.Public, cfg.Routes.EmployeeOnly, cfg.Routes.ClientOnly} {
		for _, path := range table {
			if _, ok := seen[path]; ok {
				continue
			}
			seen[path] = struct{}{}
			app.Get(path, guard, cfg.Pages.Serve)
		}
	}
}
