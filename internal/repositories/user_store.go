package repositories

import (
	"encoding/json"
	"fmt"

	"storefront/internal/models"
	"storefront/internal/storage"
)

// UserStore defines the interface for user collection and session access.
type UserStore interface {
	List() ([]models.User, error)
	Save(users []models.User) error
	Current() (*models.User, error)
	SetCurrent(user *models.User) error
	Upsert(user *models.User) error
}

// currentRef is the persisted session pointer: a reference into the
// canonical user collection, not a copy of the record.
type currentRef struct {
	Schema int    `json:"schema"`
	Email  string `json:"email"`
}

// StorageUserStore is a Store-backed implementation of UserStore.
type StorageUserStore struct {
	store storage.Store
}

// NewStorageUserStore creates a new instance of StorageUserStore.
func NewStorageUserStore(store storage.Store) *StorageUserStore {
	return &StorageUserStore{
		store: store,
	}
}

// List returns all registered users. An absent or malformed blob is an
// empty collection, never an error surfaced to the caller.
func (r *StorageUserStore) List() ([]models.User, error) {
	raw, err := r.store.Get(storage.KeyUsers)
	if err != nil {
		return nil, fmt.Errorf("failed to read users: %w", err)
	}
	return decodeCollection[models.User](raw), nil
}

// Save overwrites the entire user collection.
func (r *StorageUserStore) Save(users []models.User) error {
	blob, err := encodeCollection(users)
	if err != nil {
		return fmt.Errorf("failed to encode users: %w", err)
	}
	if err := r.store.Set(storage.KeyUsers, blob); err != nil {
		return fmt.Errorf("failed to write users: %w", err)
	}
	return nil
}

// Current returns the active session user, resolved through the canonical
// collection, or nil when no session exists. Legacy blobs that hold a full
// user copy instead of a reference are resolved by their email.
func (r *StorageUserStore) Current() (*models.User, error) {
	raw, err := r.store.Get(storage.KeyCurrentUser)
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	if len(raw) == 0 {
		return nil, nil
	}

	var ref currentRef
	if err := json.Unmarshal(raw, &ref); err != nil || ref.Email == "" {
		return nil, nil
	}
	return r.findByEmail(ref.Email)
}

// SetCurrent overwrites the session pointer with a reference to the user.
func (r *StorageUserStore) SetCurrent(user *models.User) error {
	ref := currentRef{Schema: schemaVersion, Email: models.NormalizeEmail(user.Email)}
	blob, err := json.Marshal(ref)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := r.store.Set(storage.KeyCurrentUser, blob); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

// Upsert replaces the record with the same normalized email, or appends the
// user when none exists, then repoints the session at that record. All user
// mutations must go through here so the session pointer and the collection
// cannot diverge.
func (r *StorageUserStore) Upsert(user *models.User) error {
	users, err := r.List()
	if err != nil {
		return err
	}

	email := models.NormalizeEmail(user.Email)
	found := false
	for i := range users {
		if models.NormalizeEmail(users[i].Email) == email {
			users[i] = *user
			found = true
			break
		}
	}
	if !found {
		users = append(users, *user)
	}

	if err := r.Save(users); err != nil {
		return err
	}
	return r.SetCurrent(user)
}

func (r *StorageUserStore) findByEmail(email string) (*models.User, error) {
	users, err := r.List()
	if err != nil {
		return nil, err
	}
	email = models.NormalizeEmail(email)
	for i := range users {
		if models.NormalizeEmail(users[i].Email) == email {
			u := users[i]
			return &u, nil
		}
	}
	return nil, nil
}
