package kv

import (
	"path/filepath"
	"testing"

	"blog-go/internal/config"
)

func TestNewStoreFromConfig(t *testing.T) {
	tmp := t.TempDir()

	tests := []struct {
		name    string
		cfg     config.StoreConfig
		wantErr bool
		wantNil bool
	}{
		{
			name: "memory store",
			cfg:  config.StoreConfig{Type: "memory"},
		},
		{
			name: "filesystem store",
			cfg:  config.StoreConfig{Type: "filesystem", FSRoot: filepath.Join(tmp, "fs")},
		},
		{
			name:    "filesystem store without root",
			cfg:     config.StoreConfig{Type: "filesystem"},
			wantErr: true,
			wantNil: true,
		},
		{
			name: "sqlite store",
			cfg:  config.StoreConfig{Type: "sqlite", DataDir: tmp},
		},
		{
			name:    "sqlite store without data dir",
			cfg:     config.StoreConfig{Type: "sqlite"},
			wantErr: true,
			wantNil: true,
		},
		{
			name:    "postgres store without dsn",
			cfg:     config.StoreConfig{Type: "postgres"},
			wantErr: true,
			wantNil: true,
		},
		{
			name: "redis store connects lazily",
			cfg:  config.StoreConfig{Type: "redis", RedisAddr: "127.0.0.1:1"},
		},
		{
			name:    "redis store without address",
			cfg:     config.StoreConfig{Type: "redis"},
			wantErr: true,
			wantNil: true,
		},
		{
			name: "s3 store",
			cfg: config.StoreConfig{
				Type:              "s3",
				S3Bucket:          "posts",
				S3Region:          "us-east-1",
				S3Endpoint:        "http://127.0.0.1:1",
				S3AccessKeyID:     "key",
				S3SecretAccessKey: "secret",
			},
		},
		{
			name:    "s3 store without bucket",
			cfg:     config.StoreConfig{Type: "s3"},
			wantErr: true,
			wantNil: true,
		},
		{
			name:    "unknown store type",
			cfg:     config.StoreConfig{Type: "etcd"},
			wantErr: true,
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewStoreFromConfig(tt.cfg, "instance-1")

			if (err != nil) != tt.wantErr {
				t.Errorf("NewStoreFromConfig() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if (got == nil) != tt.wantNil {
				t.Errorf("NewStoreFromConfig() returned nil = %v, wantNil %v", got == nil, tt.wantNil)
			}

			if got != nil {
				t.Cleanup(func() { got.Close() })
			}
		})
	}
}

func TestNewStoreFromConfig_LocalBackendsWork(t *testing.T) {
	tmp := t.TempDir()

	for _, cfg := range []config.StoreConfig{
		{Type: "memory"},
		{Type: "filesystem", FSRoot: filepath.Join(tmp, "fs")},
		{Type: "sqlite", DataDir: tmp},
	} {
		t.Run(cfg.Type, func(t *testing.T) {
			s, err := NewStoreFromConfig(cfg, "")
			if err != nil {
				t.Fatalf("NewStoreFromConfig() error = %v", err)
			}
			defer s.Close()
			exerciseKVStore(t, s)
		})
	}
}

func TestObjectPrefix(t *testing.T) {
	tests := []struct {
		prefix, instance, want string
	}{
		{"", "abc", "abc"},
		{"blog", "", "blog"},
		{"blog", "abc", "blog/abc"},
		{"", "", ""},
	}
	for _, tt := range tests {
		if got := objectPrefix(tt.prefix, tt.instance); got != tt.want {
			t.Errorf("objectPrefix(%q, %q) = %q, want %q", tt.prefix, tt.instance, got, tt.want)
		}
	}
}
