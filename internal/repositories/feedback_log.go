package repositories

import (
	"fmt"

	"storefront/internal/models"
	"storefront/internal/storage"
)

// SupportLog defines the interface for the append-only support ticket log.
type SupportLog interface {
	Append(ticket models.SupportTicket) error
	List() ([]models.SupportTicket, error)
}

// ReviewLog defines the interface for the append-only review log.
type ReviewLog interface {
	Append(review models.Review) error
	List() ([]models.Review, error)
}

// StorageSupportLog is a Store-backed implementation of SupportLog.
type StorageSupportLog struct {
	store storage.Store
}

// NewStorageSupportLog creates a new instance of StorageSupportLog.
func NewStorageSupportLog(store storage.Store) *StorageSupportLog {
	return &StorageSupportLog{store: store}
}

// List returns all support tickets in submission order.
func (r *StorageSupportLog) List() ([]models.SupportTicket, error) {
	raw, err := r.store.Get(storage.KeySupport)
	if err != nil {
		return nil, fmt.Errorf("failed to read support log: %w", err)
	}
	return decodeCollection[models.SupportTicket](raw), nil
}

// Append adds a ticket to the log and rewrites the whole collection.
func (r *StorageSupportLog) Append(ticket models.SupportTicket) error {
	tickets, err := r.List()
	if err != nil {
		return err
	}
	blob, err := encodeCollection(append(tickets, ticket))
	if err != nil {
		return fmt.Errorf("failed to encode support log: %w", err)
	}
	if err := r.store.Set(storage.KeySupport, blob); err != nil {
		return fmt.Errorf("failed to write support log: %w", err)
	}
	return nil
}

// StorageReviewLog is a Store-backed implementation of ReviewLog.
type StorageReviewLog struct {
	store storage.Store
}

// NewStorageReviewLog creates a new instance of StorageReviewLog.
func NewStorageReviewLog(store storage.Store) *StorageReviewLog {
	return &StorageReviewLog{store: store}
}

// List returns all reviews in submission order.
func (r *StorageReviewLog) List() ([]models.Review, error) {
	raw, err := r.store.Get(storage.KeyReviews)
	if err != nil {
		return nil, fmt.Errorf("failed to read reviews: %w", err)
	}
	return decodeCollection[models.Review](raw), nil
}

// Append adds a review to the log and rewrites the whole collection.
func (r *StorageReviewLog) Append(review models.Review) error {
	reviews, err := r.List()
	if err != nil {
		return err
	}
	blob, err := encodeCollection(append(reviews, review))
	if err != nil {
		return fmt.Errorf("failed to encode reviews: %w", err)
	}
	if err := r.store.Set(storage.KeyReviews, blob); err != nil {
		return fmt.Errorf("failed to write reviews: %w", err)
	}
	return nil
}
