package catalog

import (
	"fmt"

	"storefront/internal/models"
)

// products is the fixed, compile-time catalog. Prices are integer amounts
// in the store currency; image paths point into the static asset tree the
// rendering surface serves.
var products = []models.Product{
	{ID: "p1", Name: "Wireless Headphones", Price: 1999, ImagePath: "assets/images/headphone.jpg"},
	{ID: "p2", Name: "Smart Watch", Price: 2999, ImagePath: "assets/images/smartwatch.jpg"},
	{ID: "p3", Name: "Mechanical Keyboard", Price: 3499, ImagePath: "assets/images/mechanicalkeyboard.jpg"},
	{ID: "p4", Name: "USB-C Charger", Price: 599, ImagePath: "assets/images/charger.jpg"},
}

// Catalog provides read-only access to the static product list.
type Catalog struct {
	byID map[string]models.Product
	list []models.Product
}

// New creates a Catalog over the built-in product list.
func New() *Catalog {
	c := &Catalog{
		byID: make(map[string]models.Product, len(products)),
		list: products,
	}
	for _, p := range products {
		c.byID[p.ID] = p
	}
	return c
}

// All returns every product in catalog order.
func (c *Catalog) All() []models.Product {
	out := make([]models.Product, len(c.list))
	copy(out, c.list)
	return out
}

// Get returns the product with the given ID.
func (c *Catalog) Get(id string) (*models.Product, error) {
	p, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("product with ID %s not found", id)
	}
	return &p, nil
}
