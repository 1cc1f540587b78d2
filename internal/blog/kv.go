package blog

// KVStore is a durable key-value byte store. It stands in for the
// browser's local storage: values are opaque bytes written and read whole.
type KVStore interface {
	// Get returns the value stored under key. ok is false when the key is
	// absent; an absent key is not an error.
	Get(key string) (value []byte, ok bool, err error)

	// Set stores value under key, replacing any prior value.
	Set(key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error

	// Close releases any resources held by the store.
	Close() error
}
