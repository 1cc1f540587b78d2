package app

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"blog-go/internal/blog"
	"blog-go/internal/config"
	"blog-go/internal/testutil"
)

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	return config.NewConfig("test-instance", t.TempDir())
}

func openTestApp(t *testing.T, cfg *config.Config, opts Options) *BlogApp {
	t.Helper()
	if opts.Clock == nil {
		opts.Clock = testutil.FixedClock()
	}
	if opts.Stderr == nil {
		opts.Stderr = &bytes.Buffer{}
	}
	a, err := NewBlogApp(cfg, opts)
	if err != nil {
		t.Fatalf("NewBlogApp() error = %v", err)
	}
	return a
}

func TestBlogApp_CreatePersistsAcrossRuns(t *testing.T) {
	cfg := newTestConfig(t)

	a := openTestApp(t, cfg, Options{Operation: "new"})
	p, err := a.CreatePost(blog.Draft{Title: "Hello", Excerpt: "First post"})
	if err != nil {
		t.Fatalf("CreatePost() error = %v", err)
	}
	if p.Date != "2024-01-15" {
		t.Errorf("Date = %q, want %q", p.Date, "2024-01-15")
	}
	if err := a.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(cfg.Store.FSRoot, "blogPosts.json")); err != nil {
		t.Errorf("store file not written: %v", err)
	}

	b := openTestApp(t, cfg, Options{Operation: "list"})
	defer b.Close()

	posts := b.list.Visible()
	if len(posts) != 1 || posts[0].ID != p.ID {
		t.Fatalf("Visible() = %+v, want the created post", posts)
	}
}

func TestBlogApp_DeletePost(t *testing.T) {
	cfg := newTestConfig(t)
	a := openTestApp(t, cfg, Options{Operation: "delete", IDs: testutil.NewStubIDGenerator()})
	defer a.Close()

	if _, err := a.CreatePost(blog.Draft{Title: "Doomed", Excerpt: "x"}); err != nil {
		t.Fatal(err)
	}

	removed, err := a.DeletePost(1, func(blog.Post) bool { return false })
	if err != nil || removed {
		t.Fatalf("declined DeletePost() = %v, %v; want false, nil", removed, err)
	}

	removed, err = a.DeletePost(1, func(blog.Post) bool { return true })
	if err != nil || !removed {
		t.Fatalf("DeletePost() = %v, %v; want true, nil", removed, err)
	}
	if a.PostCount() != 0 {
		t.Errorf("PostCount() = %d, want 0", a.PostCount())
	}
}

func TestBlogApp_RenderAndOpen(t *testing.T) {
	cfg := newTestConfig(t)
	a := openTestApp(t, cfg, Options{Operation: "open", IDs: testutil.NewStubIDGenerator()})
	defer a.Close()

	if _, err := a.CreatePost(blog.Draft{Title: "Hello", Excerpt: "Short", Content: "Long body"}); err != nil {
		t.Fatal(err)
	}

	var list bytes.Buffer
	if err := a.RenderList(&list, "", blog.DefaultSortState()); err != nil {
		t.Fatalf("RenderList() error = %v", err)
	}
	if !strings.Contains(list.String(), "[1] Hello") {
		t.Errorf("list missing post: %q", list.String())
	}

	var detail bytes.Buffer
	if err := a.Open(&detail, "/blog/1"); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if !strings.Contains(detail.String(), "Long body") {
		t.Errorf("detail missing body: %q", detail.String())
	}

	var missing bytes.Buffer
	if err := a.ShowPost(&missing, 2); err != nil {
		t.Fatalf("ShowPost() error = %v", err)
	}
	if !strings.Contains(missing.String(), "Post not found.") {
		t.Errorf("expected not-found page, got %q", missing.String())
	}
}

func TestBlogApp_Browse(t *testing.T) {
	cfg := newTestConfig(t)
	a := openTestApp(t, cfg, Options{Operation: "browse"})
	defer a.Close()

	var out bytes.Buffer
	if err := a.Browse(strings.NewReader("help\nquit\n"), &out); err != nil {
		t.Fatalf("Browse() error = %v", err)
	}
	if !strings.Contains(out.String(), "No posts found") {
		t.Errorf("expected empty list, got %q", out.String())
	}
}

func TestBlogApp_CheckStore(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Store = config.StoreConfig{Type: "sqlite", DataDir: cfg.BaseDir}

	a := openTestApp(t, cfg, Options{Operation: "store check"})
	defer a.Close()

	if err := a.CheckStore(); err != nil {
		t.Errorf("CheckStore() error = %v", err)
	}
}

func TestBlogApp_CorruptedStoreWarnsAndRecovers(t *testing.T) {
	cfg := newTestConfig(t)
	if err := os.MkdirAll(cfg.Store.FSRoot, 0700); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(cfg.Store.FSRoot, "blogPosts.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	var stderr bytes.Buffer
	a := openTestApp(t, cfg, Options{Operation: "list", Stderr: &stderr})
	defer a.Close()

	if a.PostCount() != 0 {
		t.Errorf("PostCount() = %d, want 0", a.PostCount())
	}
	if !strings.Contains(stderr.String(), "discarding corrupted post data") {
		t.Errorf("expected corruption warning on stderr, got %q", stderr.String())
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("corrupted file still present (stat err = %v)", err)
	}
}

func TestBlogApp_EncryptedStore(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Encryption.Type = "test"

	a := openTestApp(t, cfg, Options{Operation: "new"})
	if _, err := a.CreatePost(blog.Draft{Title: "Secret", Excerpt: "hidden"}); err != nil {
		t.Fatal(err)
	}
	a.Close()

	raw, err := os.ReadFile(filepath.Join(cfg.Store.FSRoot, "blogPosts.json"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(raw, []byte("BLOGENC1")) {
		t.Errorf("stored value not encrypted: %q", raw)
	}

	asked := 0
	b := openTestApp(t, cfg, Options{Operation: "list", Passphrase: func() (string, error) {
		asked++
		return "", nil
	}})
	defer b.Close()

	if b.PostCount() != 1 {
		t.Errorf("PostCount() = %d, want 1", b.PostCount())
	}
	if asked != 1 {
		t.Errorf("passphrase requested %d times, want 1", asked)
	}
}

func TestNewBlogApp_Errors(t *testing.T) {
	t.Run("age keys missing", func(t *testing.T) {
		cfg := newTestConfig(t)
		cfg.Encryption.Type = "age"

		_, err := NewBlogApp(cfg, Options{Stderr: &bytes.Buffer{}})
		if !errors.Is(err, ErrKeysNotInitialized) {
			t.Errorf("NewBlogApp() error = %v, want ErrKeysNotInitialized", err)
		}
	})

	t.Run("unknown store", func(t *testing.T) {
		cfg := newTestConfig(t)
		cfg.Store.Type = "floppy"

		if _, err := NewBlogApp(cfg, Options{Stderr: &bytes.Buffer{}}); err == nil {
			t.Error("NewBlogApp() expected error")
		}
	})

	t.Run("bad locale", func(t *testing.T) {
		cfg := newTestConfig(t)
		cfg.Locale = "not a locale!"

		if _, err := NewBlogApp(cfg, Options{Stderr: &bytes.Buffer{}}); err == nil {
			t.Error("NewBlogApp() expected error")
		}
	})
}

func TestInitKeys(t *testing.T) {
	cfg := newTestConfig(t)

	if _, err := InitKeys(cfg.Encryption, "pass"); err == nil {
		t.Error("InitKeys() with encryption type none expected error")
	}

	cfg.Encryption.Type = "age"
	recipient, err := InitKeys(cfg.Encryption, "pass")
	if err != nil {
		t.Fatalf("InitKeys() error = %v", err)
	}
	if !strings.HasPrefix(recipient, "age1") {
		t.Errorf("recipient = %q, want age1 prefix", recipient)
	}

	a := openTestApp(t, cfg, Options{Operation: "new", Passphrase: func() (string, error) { return "pass", nil }})
	if _, err := a.CreatePost(blog.Draft{Title: "Sealed", Excerpt: "age"}); err != nil {
		t.Fatalf("CreatePost() error = %v", err)
	}
	a.Close()

	b := openTestApp(t, cfg, Options{Operation: "list", Passphrase: func() (string, error) { return "pass", nil }})
	defer b.Close()
	if b.PostCount() != 1 {
		t.Errorf("PostCount() = %d, want 1", b.PostCount())
	}

	_, err = NewBlogApp(cfg, Options{Stderr: &bytes.Buffer{}, Passphrase: func() (string, error) { return "wrong", nil }})
	if err == nil {
		t.Error("NewBlogApp() with wrong passphrase expected error")
	}
}
