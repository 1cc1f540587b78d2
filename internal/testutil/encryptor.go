package testutil

import (
	"blog-go/internal/blog"
	"blog-go/internal/encryption"
)

// NewTestEncryptor creates a new test encryptor for testing.
func NewTestEncryptor() blog.Encryptor {
	return encryption.NewTestEncryptor()
}
