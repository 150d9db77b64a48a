package entity

// CartItem is one line of a cart: a weak reference into the catalog plus a
// quantity. Quantity is always >= 1 for a persisted line.
type CartItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Cart is the single per-owner cart aggregate. At most one item per distinct
// product id. Version guards read-modify-write cycles: a save only succeeds
// against the version it was loaded at.
type Cart struct {
	ID      string
	UserID  string
	Items   []CartItem
	Version int64
}

// Find returns the index of the item referencing productID, or -1.
func (c *Cart) Find(productID string) int {
	for i, it := range c.Items {
		if it.ProductID == productID {
			return i
		}
	}
	return -1
}

// SetQuantity applies the cart decision table: qty <= 0 removes the line,
// otherwise the line is inserted or its quantity overwritten (absolute set,
// not delta). Returns the resulting quantity for the product.
func (c *Cart) SetQuantity(productID string, qty int) int {
	idx := c.Find(productID)
	switch {
	case qty <= 0:
		if idx >= 0 {
			c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
		}
		return 0
	case idx < 0:
		c.Items = append(c.Items, CartItem{ProductID: productID, Quantity: qty})
	default:
		c.Items[idx].Quantity = qty
	}
	return qty
}
