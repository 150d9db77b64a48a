package entity

// WishlistItem is a boolean membership line: a weak product reference with no
// quantity.
type WishlistItem struct {
	ProductID string `json:"productId"`
}

// Wishlist is the single per-owner wishlist aggregate. Each product id
// appears at most once. Version has the same CAS role as on Cart.
type Wishlist struct {
	ID      string
	UserID  string
	Items   []WishlistItem
	Version int64
}

// Toggle flips membership of productID and reports whether the product is in
// the wishlist after the call. Applying it twice restores the original state.
func (w *Wishlist) Toggle(productID string) bool {
	for i, it := range w.Items {
		if it.ProductID == productID {
			w.Items = append(w.Items[:i], w.Items[i+1:]...)
			return false
		}
	}
	w.Items = append(w.Items, WishlistItem{ProductID: productID})
	return true
}
