package kv

import (
	"bytes"
	"errors"
	"testing"

	"blog-go/internal/encryption"
)

func staticPassphrase(p string) PassphraseFunc {
	return func() (string, error) { return p, nil }
}

func TestSealedStore(t *testing.T) {
	exerciseKVStore(t, NewSealedStore(NewMemoryStore(), encryption.NewTestEncryptor(), staticPassphrase("")))
}

func TestSealedStore_StoresCiphertext(t *testing.T) {
	inner := NewMemoryStore()
	s := NewSealedStore(inner, encryption.NewTestEncryptor(), staticPassphrase(""))

	plain := []byte(`[{"id":1,"title":"secret"}]`)
	if err := s.Set("blogPosts", plain); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	raw, ok, err := inner.Get("blogPosts")
	if err != nil || !ok {
		t.Fatalf("inner Get() = ok %v, err %v", ok, err)
	}
	if bytes.Equal(raw, plain) {
		t.Error("inner store holds plaintext")
	}
}

func TestSealedStore_UnlocksOnce(t *testing.T) {
	calls := 0
	pass := func() (string, error) {
		calls++
		return "", nil
	}
	s := NewSealedStore(NewMemoryStore(), encryption.NewTestEncryptor(), pass)

	if err := s.Set("k", []byte("v")); err != nil {
		t.Fatal(err)
	}
	if calls != 0 {
		t.Errorf("Set() asked for the passphrase %d times, want 0", calls)
	}

	for range 3 {
		if _, _, err := s.Get("k"); err != nil {
			t.Fatalf("Get() error = %v", err)
		}
	}
	if calls != 1 {
		t.Errorf("passphrase requested %d times, want 1", calls)
	}
}

func TestSealedStore_MissingKeySkipsUnlock(t *testing.T) {
	pass := func() (string, error) {
		t.Error("passphrase requested for a missing key")
		return "", nil
	}
	s := NewSealedStore(NewMemoryStore(), encryption.NewTestEncryptor(), pass)

	if _, ok, err := s.Get("missing"); ok || err != nil {
		t.Errorf("Get() = ok %v, err %v; want absent", ok, err)
	}
}

func TestSealedStore_DecryptFailureIsError(t *testing.T) {
	inner := NewMemoryStore()
	if err := inner.Set("blogPosts", []byte(`[]`)); err != nil {
		t.Fatal(err)
	}
	s := NewSealedStore(inner, encryption.NewTestEncryptor(), staticPassphrase(""))

	_, ok, err := s.Get("blogPosts")
	if err == nil {
		t.Fatal("Get() of plaintext value expected error")
	}
	if ok {
		t.Error("Get() reported the undecryptable value as present")
	}
}

func TestSealedStore_PassphraseErrors(t *testing.T) {
	enc := encryption.NewTestEncryptor()
	if err := enc.Setup("right"); err != nil {
		t.Fatal(err)
	}
	inner := NewMemoryStore()
	if err := NewSealedStore(inner, enc, staticPassphrase("right")).Set("k", []byte("v")); err != nil {
		t.Fatal(err)
	}

	t.Run("wrong passphrase", func(t *testing.T) {
		s := NewSealedStore(inner, enc, staticPassphrase("wrong"))
		if _, _, err := s.Get("k"); err == nil {
			t.Error("Get() with wrong passphrase expected error")
		}
	})

	t.Run("passphrase source fails", func(t *testing.T) {
		promptErr := errors.New("no terminal")
		s := NewSealedStore(inner, enc, func() (string, error) { return "", promptErr })
		if _, _, err := s.Get("k"); !errors.Is(err, promptErr) {
			t.Errorf("Get() error = %v, want wrapping %v", err, promptErr)
		}
	})
}
