package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront-gateway/internal/api/dto"
	"github.com/spec-kit/storefront-gateway/internal/cart"
)

// CartHandler exposes the cart state machine to the storefront UI.
type CartHandler struct {
	cart *cart.Store
}

// NewCartHandler constructs handler.
func NewCartHandler(store *cart.Store) *CartHandler {
	return &CartHandler{cart: store}
}

// List handles GET /cart.
func (h *CartHandler) List(c *fiber.Ctx) error {
	return h.respond(c)
}

// Add handles POST /cart/items.
func (h *CartHandler) Add(c *fiber.Ctx) error {
	var req dto.CartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Cantidad < 1 {
		return fiber.NewError(http.StatusBadRequest, "cantidad must be at least 1")
	}
	if req.Precio < 0 {
		return fiber.NewError(http.StatusBadRequest, "precio must not be negative")
	}

	h.cart.Add(c.UserContext(), req.ToDomain())
	return h.respond(c)
}

// SetQuantity handles PUT /cart/items/:id/cantidad. Invalid quantities
// are ignored by the store, so the response simply reflects whatever
// the cart still holds.
func (h *CartHandler) SetQuantity(c *fiber.Ctx) error {
	id, err := parseItemID(c)
	if err != nil {
		return err
	}

	var req dto.QuantityUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	h.cart.SetQuantity(c.UserContext(), id, req.Cantidad)
	return h.respond(c)
}

// Remove handles DELETE /cart/items/:id.
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	id, err := parseItemID(c)
	if err != nil {
		return err
	}

	h.cart.Remove(c.UserContext(), id)
	return h.respond(c)
}

// Clear handles DELETE /cart.
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	h.cart.Clear(c.UserContext())
	return h.respond(c)
}

// CloseSidebar handles POST /cart/close-sidebar.
func (h *CartHandler) CloseSidebar(c *fiber.Ctx) error {
	h.cart.CloseSidebar()
	return h.respond(c)
}

func (h *CartHandler) respond(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": dto.CartResponse{
		Items:          h.cart.Items(),
		ItemCount:      h.cart.ItemCount(),
		Total:          h.cart.Total(),
		SidebarAbierto: h.cart.SidebarOpen(),
	}})
}

func parseItemID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, fiber.NewError(http.StatusBadRequest, "invalid item id")
	}
	return id, nil
}
