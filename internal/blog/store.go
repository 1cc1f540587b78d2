package blog

import (
	"encoding/json"
	"fmt"
)

// DefaultStorageKey is the key the post collection is stored under.
const DefaultStorageKey = "blogPosts"

// PostStore loads and saves the whole post collection.
type PostStore interface {
	Load() ([]Post, error)
	Save(posts []Post) error
}

// DurableStore is the PostStore backed by a KVStore. The collection is
// stored as a single JSON array under one fixed key; there are no partial
// writes.
type DurableStore struct {
	kv     KVStore
	key    string
	logger Logger
}

var _ PostStore = (*DurableStore)(nil)

// NewDurableStore creates a DurableStore over kv. An empty key selects
// DefaultStorageKey.
func NewDurableStore(kv KVStore, key string, logger Logger) *DurableStore {
	if key == "" {
		key = DefaultStorageKey
	}
	return &DurableStore{kv: kv, key: key, logger: logger}
}

// Key returns the storage key.
func (s *DurableStore) Key() string { return s.key }

// Load reads the stored collection. An absent key yields an empty
// collection. A value that does not parse as a JSON array of complete posts is
// discarded (the key is removed) and an empty collection returned; only a
// failure to read from the backend is reported as an error.
func (s *DurableStore) Load() ([]Post, error) {
	data, ok, err := s.kv.Get(s.key)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", s.key, err)
	}
	if !ok {
		s.logger.Debug("no stored posts", "key", s.key)
		return []Post{}, nil
	}

	var posts []Post
	if err := json.Unmarshal(data, &posts); err != nil {
		s.discard(err)
		return []Post{}, nil
	}
	if err := checkStored(posts); err != nil {
		s.discard(err)
		return []Post{}, nil
	}
	if posts == nil {
		posts = []Post{}
	}

	s.logger.Debug("posts loaded", "key", s.key, "count", len(posts))
	return posts, nil
}

// checkStored rejects decoded entries that could never have been created:
// every post needs an id, a title and an excerpt.
func checkStored(posts []Post) error {
	for i, p := range posts {
		switch {
		case p.ID == 0:
			return fmt.Errorf("post %d: missing id", i)
		case p.Title == "":
			return fmt.Errorf("post %d: missing title", i)
		case p.Excerpt == "":
			return fmt.Errorf("post %d: missing excerpt", i)
		}
	}
	return nil
}

// discard removes a corrupted value. Failure to remove it is logged and
// otherwise ignored: the caller still starts from an empty collection.
func (s *DurableStore) discard(cause error) {
	s.logger.Warn("discarding corrupted post data", "key", s.key, "error", cause)
	if err := s.kv.Delete(s.key); err != nil {
		s.logger.Error("removing corrupted post data", "key", s.key, "error", err)
	}
}

// Save serializes posts and writes them under the storage key, replacing
// the previous value.
func (s *DurableStore) Save(posts []Post) error {
	if posts == nil {
		posts = []Post{}
	}

	data, err := json.Marshal(posts)
	if err != nil {
		return fmt.Errorf("encoding posts: %w", err)
	}

	if err := s.kv.Set(s.key, data); err != nil {
		return fmt.Errorf("writing %q: %w", s.key, err)
	}

	s.logger.Debug("posts saved", "key", s.key, "count", len(posts))
	return nil
}
