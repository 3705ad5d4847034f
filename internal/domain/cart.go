package domain

// CartItem is a single cart line. JSON tags match the storefront wire
// format.
type CartItem struct {
	ID          int64   `json:"id"`
	Name        string  `json:"nombre"`
	Description string  `json:"descripcion,omitempty"`
	UnitPrice   float64 `json:"precio"`
	Quantity    int     `json:"cantidad"`
	ImageRef    string  `json:"imagen,omitempty"`
}

// Subtotal is the line contribution to the cart total.
func (i CartItem) Subtotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}
