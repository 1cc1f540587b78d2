package kv

import (
	"bytes"
	"fmt"

	"blog-go/internal/blog"
)

// PassphraseFunc supplies the passphrase that unlocks the private key.
type PassphraseFunc func() (string, error)

// SealedStore encrypts values before they reach the wrapped store and
// decrypts them on the way back. The private key is unlocked on the first
// read, so commands that only write never ask for a passphrase.
type SealedStore struct {
	inner      blog.KVStore
	enc        blog.Encryptor
	passphrase PassphraseFunc
	dec        blog.DecryptionContext
}

// NewSealedStore wraps inner with enc.
func NewSealedStore(inner blog.KVStore, enc blog.Encryptor, passphrase PassphraseFunc) *SealedStore {
	return &SealedStore{inner: inner, enc: enc, passphrase: passphrase}
}

func (s *SealedStore) unlock() (blog.DecryptionContext, error) {
	if s.dec != nil {
		return s.dec, nil
	}

	pass, err := s.passphrase()
	if err != nil {
		return nil, fmt.Errorf("reading passphrase: %w", err)
	}

	dec, err := s.enc.Unlock(pass)
	if err != nil {
		return nil, fmt.Errorf("unlocking private key: %w", err)
	}
	s.dec = dec
	return dec, nil
}

// Get reads and decrypts the value under key. A value that cannot be
// decrypted is an error, never an absent key.
func (s *SealedStore) Get(key string) ([]byte, bool, error) {
	data, ok, err := s.inner.Get(key)
	if err != nil || !ok {
		return nil, ok, err
	}

	dec, err := s.unlock()
	if err != nil {
		return nil, false, err
	}

	var plain bytes.Buffer
	if err := dec.Decrypt(bytes.NewReader(data), &plain); err != nil {
		return nil, false, fmt.Errorf("decrypting %q: %w", key, err)
	}
	return plain.Bytes(), true, nil
}

// Set encrypts value and writes the ciphertext under key.
func (s *SealedStore) Set(key string, value []byte) error {
	var sealed bytes.Buffer
	if err := s.enc.Encrypt(bytes.NewReader(value), &sealed); err != nil {
		return fmt.Errorf("encrypting %q: %w", key, err)
	}
	return s.inner.Set(key, sealed.Bytes())
}

func (s *SealedStore) Delete(key string) error { return s.inner.Delete(key) }

func (s *SealedStore) Close() error { return s.inner.Close() }

var _ blog.KVStore = (*SealedStore)(nil)
