package dto

import "github.com/spec-kit/storefront-gateway/internal/domain"

// CartItemRequest payload for adding a line to the cart.
type CartItemRequest struct {
	ID          int64   `json:"id"`
	Nombre      string  `json:"nombre"`
	Descripcion string  `json:"descripcion"`
	Precio      float64 `json:"precio"`
	Cantidad    int     `json:"cantidad"`
	Imagen      string  `json:"imagen"`
}

// ToDomain converts the request into a cart line.
func (r CartItemRequest) ToDomain() domain.CartItem {
	return domain.CartItem{
		ID:          r.ID,
		Name:        r.Nombre,
		Description: r.Descripcion,
		UnitPrice:   r.Precio,
		Quantity:    r.Cantidad,
		ImageRef:    r.Imagen,
	}
}

// QuantityUpdateRequest payload for changing a line quantity.
type QuantityUpdateRequest struct {
	Cantidad int `json:"cantidad"`
}

// CartResponse mirrors the cart state the storefront UI binds to.
type CartResponse struct {
	Items          []domain.CartItem `json:"items"`
	ItemCount      int               `json:"itemCount"`
	Total          float64           `json:"total"`
	SidebarAbierto bool              `json:"sidebarAbierto"`
}
