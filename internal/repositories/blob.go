package repositories

import "encoding/json"

// schemaVersion is the current on-disk schema of persisted collections.
const schemaVersion = 1

// collectionEnvelope wraps a persisted collection with its schema version.
type collectionEnvelope[T any] struct {
	Schema int `json:"schema"`
	Items  []T `json:"items"`
}

// decodeCollection reads a persisted collection blob. It accepts the
// current envelope format, migrates the legacy bare-array format on read,
// and treats absent or malformed content as an empty collection.
func decodeCollection[T any](raw []byte) []T {
	if len(raw) == 0 {
		return nil
	}
	var env collectionEnvelope[T]
	if err := json.Unmarshal(raw, &env); err == nil && env.Schema >= 1 {
		return env.Items
	}
	var legacy []T
	if err := json.Unmarshal(raw, &legacy); err == nil {
		return legacy
	}
	return nil
}

// encodeCollection writes a collection in the current envelope format.
func encodeCollection[T any](items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	return json.Marshal(collectionEnvelope[T]{Schema: schemaVersion, Items: items})
}
