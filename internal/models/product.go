package models

// Product represents a product in the store. Products are defined at
// compile time in the catalog and are never persisted.
type Product struct {
	ID        string `json:"id" validate:"required"`
	Name      string `json:"name" validate:"required,min=3,max=100"`
	Price     int    `json:"price" validate:"required,gt=0"`
	ImagePath string `json:"img" validate:"omitempty,max=255"`
}
