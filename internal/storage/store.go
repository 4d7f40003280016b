package storage

// Fixed storage keys. Every collection is persisted as a whole-document
// JSON blob under one of these keys.
const (
	KeyUsers       = "users"
	KeyCurrentUser = "currentUser"
	KeySupport     = "support"
	KeyReviews     = "reviews"
)

// Store is the key-value blob store all persistence goes through. Get
// returns nil for an absent key; callers treat absent or malformed blobs
// as empty collections.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}
