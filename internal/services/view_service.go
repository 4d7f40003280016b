package services

import (
	"fmt"

	"storefront/internal/catalog"
	"storefront/internal/models"
	"storefront/internal/repositories"
)

// View empty-state messages. "No session" and "empty collection" are
// distinct states with distinct wording.
const (
	MsgWishlistNoSession = "Please login to see wishlist"
	MsgWishlistEmpty     = "No items"
	MsgOrdersNoSession   = "Please login"
	MsgOrdersEmpty       = "No orders"
	MsgReviewsEmpty      = "No reviews yet"
)

// ProductCard is the view model for a single catalog entry.
type ProductCard struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int    `json:"price"`
	Image string `json:"img"`
}

// WishlistView is the fully regenerated wishlist view model.
type WishlistView struct {
	Message string        `json:"message,omitempty"`
	Items   []ProductCard `json:"items"`
}

// OrderLine is the view model for a single placed order.
type OrderLine struct {
	OrderID string `json:"orderId"`
	Name    string `json:"name"`
	Price   int    `json:"price"`
	Date    string `json:"date"`
}

// OrdersView is the fully regenerated orders view model.
type OrdersView struct {
	Message string      `json:"message,omitempty"`
	Items   []OrderLine `json:"items"`
}

// ReviewsView is the fully regenerated reviews view model. Reviews are
// global, so the view is session-independent.
type ReviewsView struct {
	Message string          `json:"message,omitempty"`
	Items   []models.Review `json:"items"`
}

// ViewService regenerates view models from current storage state. All
// methods are read-only and idempotent.
type ViewService struct {
	users   repositories.UserStore
	reviews repositories.ReviewLog
	catalog *catalog.Catalog
}

// NewViewService creates a new ViewService.
func NewViewService(users repositories.UserStore, reviews repositories.ReviewLog, cat *catalog.Catalog) *ViewService {
	return &ViewService{
		users:   users,
		reviews: reviews,
		catalog: cat,
	}
}

// Products returns the full catalog as product cards.
func (s *ViewService) Products() []ProductCard {
	products := s.catalog.All()
	cards := make([]ProductCard, 0, len(products))
	for _, p := range products {
		cards = append(cards, ProductCard{ID: p.ID, Name: p.Name, Price: p.Price, Image: p.ImagePath})
	}
	return cards
}

// Wishlist returns the current user's wishlist with product details
// resolved through the catalog.
func (s *ViewService) Wishlist() (*WishlistView, error) {
	user, err := s.users.Current()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve session: %w", err)
	}
	if user == nil {
		return &WishlistView{Message: MsgWishlistNoSession, Items: []ProductCard{}}, nil
	}
	if len(user.Wishlist) == 0 {
		return &WishlistView{Message: MsgWishlistEmpty, Items: []ProductCard{}}, nil
	}

	items := make([]ProductCard, 0, len(user.Wishlist))
	for _, id := range user.Wishlist {
		p, err := s.catalog.Get(id)
		if err != nil {
			// A wished id no longer in the catalog is skipped, not an error.
			continue
		}
		items = append(items, ProductCard{ID: p.ID, Name: p.Name, Price: p.Price, Image: p.ImagePath})
	}
	return &WishlistView{Items: items}, nil
}

// Orders returns the current user's order history.
func (s *ViewService) Orders() (*OrdersView, error) {
	user, err := s.users.Current()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve session: %w", err)
	}
	if user == nil {
		return &OrdersView{Message: MsgOrdersNoSession, Items: []OrderLine{}}, nil
	}
	if len(user.Orders) == 0 {
		return &OrdersView{Message: MsgOrdersEmpty, Items: []OrderLine{}}, nil
	}

	items := make([]OrderLine, 0, len(user.Orders))
	for _, o := range user.Orders {
		items = append(items, OrderLine{OrderID: o.OrderID, Name: o.Name, Price: o.Price, Date: o.Date})
	}
	return &OrdersView{Items: items}, nil
}

// Reviews returns all submitted reviews.
func (s *ViewService) Reviews() (*ReviewsView, error) {
	reviews, err := s.reviews.List()
	if err != nil {
		return nil, fmt.Errorf("failed to read reviews: %w", err)
	}
	if len(reviews) == 0 {
		return &ReviewsView{Message: MsgReviewsEmpty, Items: []models.Review{}}, nil
	}
	return &ReviewsView{Items: reviews}, nil
}
