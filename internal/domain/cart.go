package domain

import "github.com/google/uuid"

// Cart is the user's shopping cart, stored as a JSON document on the user
// record. New accounts start with an empty item list.
type Cart struct {
	Items []CartItem `json:"items"`
}

// CartItem references a product and a quantity.
type CartItem struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
}

// EmptyCart returns a cart with a non-nil, empty item list.
func EmptyCart() Cart {
	return Cart{Items: []CartItem{}}
}
