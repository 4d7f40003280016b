package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"storefront/internal/catalog"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/pkg/rabbitmq"

	"github.com/google/uuid"
)

// ErrLoginRequired is returned by actions and views that need an active
// session. Handlers answer it with a redirect to the login view.
var ErrLoginRequired = errors.New("Please login")

// ActionService handles the wishlist and buy actions against the current
// user's record.
type ActionService struct {
	users    repositories.UserStore
	catalog  *catalog.Catalog
	mqClient *rabbitmq.Client
}

// NewActionService creates a new ActionService. The MQ client may be nil,
// in which case events are only logged.
func NewActionService(users repositories.UserStore, cat *catalog.Catalog, mqClient *rabbitmq.Client) *ActionService {
	return &ActionService{
		users:    users,
		catalog:  cat,
		mqClient: mqClient,
	}
}

// AddToWishlist appends the product to the current user's wishlist unless
// it is already there. Repeating the action is a no-op, not an error.
func (s *ActionService) AddToWishlist(productID string) error {
	user, err := s.users.Current()
	if err != nil {
		return fmt.Errorf("failed to resolve session: %w", err)
	}
	if user == nil {
		return ErrLoginRequired
	}

	if _, err := s.catalog.Get(productID); err != nil {
		return err
	}
	if !user.HasWished(productID) {
		user.Wishlist = append(user.Wishlist, productID)
		if err := s.users.Upsert(user); err != nil {
			return fmt.Errorf("failed to save wishlist: %w", err)
		}
	}

	log.Printf("Added %s to wishlist of %s", productID, user.Email)
	return nil
}

// PlaceOrder appends a new order for the product to the current user's
// record. Repeated buys create separate orders, each with its own id.
func (s *ActionService) PlaceOrder(productID string) (*models.Order, error) {
	user, err := s.users.Current()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve session: %w", err)
	}
	if user == nil {
		return nil, ErrLoginRequired
	}

	product, err := s.catalog.Get(productID)
	if err != nil {
		return nil, err
	}

	order := models.Order{
		OrderID:   "ORD-" + uuid.New().String(),
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Date:      models.DisplayTime(time.Now()),
	}
	user.Orders = append(user.Orders, order)
	if err := s.users.Upsert(user); err != nil {
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	s.publishEvent("order.placed", map[string]interface{}{
		"orderId":   order.OrderID,
		"productId": order.ProductID,
		"email":     user.Email,
		"price":     order.Price,
	})

	log.Printf("Order %s placed by %s", order.OrderID, user.Email)
	return &order, nil
}

// publishEvent pushes a storefront event to RabbitMQ when a client is
// configured. Publish failures are logged, never surfaced to the user.
func (s *ActionService) publishEvent(routingKey string, payload map[string]interface{}) {
	if s.mqClient == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := s.mqClient.Publish(routingKey, body); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", routingKey, err)
	}
}
