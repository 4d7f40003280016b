package models

import "strings"

// User represents a registered user of the store. The wishlist and orders
// live inside the user record, mirroring the persisted blob layout.
type User struct {
	Name     string   `json:"name" validate:"required,min=3"`
	Email    string   `json:"email" validate:"required"` // unique key, stored normalized
	Phone    string   `json:"phone" validate:"required"`
	Password string   `json:"password" validate:"required,min=6"` // plaintext, demo storage only
	Wishlist []string `json:"wishlist"`
	Orders   []Order  `json:"orders"`
}

// NormalizeEmail trims and lower-cases an email so it can serve as the
// case-insensitive unique key of the user collection.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// HasWished reports whether the product is already on the wishlist.
func (u *User) HasWished(productID string) bool {
	for _, id := range u.Wishlist {
		if id == productID {
			return true
		}
	}
	return false
}
