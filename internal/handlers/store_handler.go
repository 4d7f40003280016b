package handlers

import (
	"errors"
	"log"
	"strings"

	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// StoreHandler handles HTTP requests for the products grid, wishlist and
// orders.
type StoreHandler struct {
	actions *services.ActionService
	views   *services.ViewService
}

// NewStoreHandler creates a new StoreHandler.
func NewStoreHandler(actions *services.ActionService, views *services.ViewService) *StoreHandler {
	return &StoreHandler{
		actions: actions,
		views:   views,
	}
}

// RegisterRoutes registers the store routes with the Fiber app.
func (h *StoreHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/products", h.HandleProducts)
	router.Get("/wishlist", h.HandleWishlistView)
	router.Post("/wishlist/:id", h.HandleAddToWishlist)
	router.Get("/orders", h.HandleOrdersView)
	router.Post("/orders/:id", h.HandlePlaceOrder)
}

// HandleProducts returns the full products grid.
func (h *StoreHandler) HandleProducts(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"items": h.views.Products(),
	})
}

// HandleAddToWishlist adds a product to the current user's wishlist.
func (h *StoreHandler) HandleAddToWishlist(c *fiber.Ctx) error {
	productID := c.Params("id")
	if err := h.actions.AddToWishlist(productID); err != nil {
		return h.actionError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Added to wishlist",
	})
}

// HandlePlaceOrder places an order for a product.
func (h *StoreHandler) HandlePlaceOrder(c *fiber.Ctx) error {
	productID := c.Params("id")
	order, err := h.actions.PlaceOrder(productID)
	if err != nil {
		return h.actionError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Order placed",
		"order":   order,
	})
}

// HandleWishlistView returns the current user's wishlist view.
func (h *StoreHandler) HandleWishlistView(c *fiber.Ctx) error {
	view, err := h.views.Wishlist()
	if err != nil {
		log.Printf("Error rendering wishlist: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve wishlist",
			"error":   err.Error(),
		})
	}
	return c.JSON(view)
}

// HandleOrdersView returns the current user's orders view.
func (h *StoreHandler) HandleOrdersView(c *fiber.Ctx) error {
	view, err := h.views.Orders()
	if err != nil {
		log.Printf("Error rendering orders: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve orders",
			"error":   err.Error(),
		})
	}
	return c.JSON(view)
}

// actionError maps action failures onto HTTP responses: missing session
// redirects to login, unknown products are 404, anything else is a 500.
func (h *StoreHandler) actionError(c *fiber.Ctx, err error) error {
	if errors.Is(err, services.ErrLoginRequired) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message":  err.Error(),
			"redirect": "/login",
		})
	}
	if strings.Contains(err.Error(), "not found") {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": err.Error(),
		})
	}
	log.Printf("Store action failed: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Action failed",
		"error":   err.Error(),
	})
}
