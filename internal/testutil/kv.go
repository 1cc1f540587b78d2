package testutil

import (
	"fmt"
	"sync"

	"blog-go/internal/blog"
	"blog-go/internal/kv"
)

// NewTestKV creates a new in-memory key-value store for testing.
func NewTestKV() *kv.MemoryStore {
	return kv.NewMemoryStore()
}

// RecordingKV wraps a KVStore, records every call as "get key", "set key"
// or "delete key", and can be told to fail reads or writes.
type RecordingKV struct {
	Inner blog.KVStore

	mu        sync.Mutex
	calls     []string
	getErr    error
	setErr    error
	deleteErr error
}

// NewRecordingKV wraps inner. A nil inner uses a fresh in-memory store.
func NewRecordingKV(inner blog.KVStore) *RecordingKV {
	if inner == nil {
		inner = kv.NewMemoryStore()
	}
	return &RecordingKV{Inner: inner}
}

// FailGet makes subsequent Get calls return err. A nil err clears it.
func (r *RecordingKV) FailGet(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.getErr = err
}

// FailSet makes subsequent Set calls return err. A nil err clears it.
func (r *RecordingKV) FailSet(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.setErr = err
}

// FailDelete makes subsequent Delete calls return err. A nil err clears it.
func (r *RecordingKV) FailDelete(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleteErr = err
}

// Calls returns the recorded calls in order.
func (r *RecordingKV) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.calls))
	copy(out, r.calls)
	return out
}

// Count returns how many recorded calls start with op ("get", "set", "delete").
func (r *RecordingKV) Count(op string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.calls {
		if len(c) > len(op) && c[:len(op)] == op && c[len(op)] == ' ' {
			n++
		}
	}
	return n
}

func (r *RecordingKV) record(op, key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, fmt.Sprintf("%s %s", op, key))
}

func (r *RecordingKV) Get(key string) ([]byte, bool, error) {
	r.record("get", key)
	r.mu.Lock()
	err := r.getErr
	r.mu.Unlock()
	if err != nil {
		return nil, false, err
	}
	return r.Inner.Get(key)
}

func (r *RecordingKV) Set(key string, value []byte) error {
	r.record("set", key)
	r.mu.Lock()
	err := r.setErr
	r.mu.Unlock()
	if err != nil {
		return err
	}
	return r.Inner.Set(key, value)
}

func (r *RecordingKV) Delete(key string) error {
	r.record("delete", key)
	r.mu.Lock()
	err := r.deleteErr
	r.mu.Unlock()
	if err != nil {
		return err
	}
	return r.Inner.Delete(key)
}

func (r *RecordingKV) Close() error {
	return r.Inner.Close()
}

var _ blog.KVStore = (*RecordingKV)(nil)
