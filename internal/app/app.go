package app

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/text/language"

	"blog-go/internal/blog"
	"blog-go/internal/config"
	"blog-go/internal/encryption"
	"blog-go/internal/kv"
	"blog-go/internal/view"
)

// ErrKeysNotInitialized is returned when encryption is configured but no
// key pair has been created yet.
var ErrKeysNotInitialized = errors.New("encryption keys not initialized (run: blog key init)")

// Options carries the inputs to NewBlogApp that do not come from the config.
type Options struct {
	// Operation names the CLI command being run (e.g. "list", "new").
	Operation string
	// Args is a free-form description of the command's arguments, logged
	// with the operation.
	Args string
	// Passphrase supplies the private key passphrase when the store is
	// encrypted. It is only called when a stored value is read.
	Passphrase kv.PassphraseFunc
	// Stderr receives warnings and errors. Defaults to os.Stderr.
	Stderr io.Writer
	// Clock and IDs default to the real clock and millisecond identifiers.
	Clock blog.Clock
	IDs   blog.IDGenerator
}

// BlogApp is the application layer between the CLI and the post collection.
// It constructs all dependencies from config, loads the collection, and
// releases the store and log file on Close.
type BlogApp struct {
	cfg     *config.Config
	backend blog.KVStore
	posts   *blog.Collection
	list    *view.ListView
	clock   blog.Clock
	op      *Operation
	logger  *slog.Logger
	logFile *os.File
}

// NewBlogApp creates a fully wired BlogApp from the given config and loads
// the post collection. The caller must call Close when done.
func NewBlogApp(cfg *config.Config, opts Options) (*BlogApp, error) {
	clock := opts.Clock
	if clock == nil {
		clock = blog.RealClock{}
	}
	ids := opts.IDs
	if ids == nil {
		ids = blog.NewMillisIDGenerator(clock)
	}
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	tag, err := parseLocale(cfg.Locale)
	if err != nil {
		return nil, err
	}

	op := NewOperation(opts.Operation, opts.Args, clock)
	logger, logFile, err := newLogger(cfg.LogDir, op.ID, stderr)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	adapter := &slogAdapter{l: logger}

	backend, err := kv.NewStoreFromConfig(cfg.Store, cfg.InstanceID)
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("creating store: %w", err)
	}

	store, err := sealIfConfigured(backend, cfg.Encryption, opts.Passphrase)
	if err != nil {
		backend.Close()
		logFile.Close()
		return nil, err
	}

	durable := blog.NewDurableStore(store, cfg.Store.Key, adapter)
	posts := blog.NewCollection(durable, clock, ids, adapter)
	if err := posts.Load(); err != nil {
		backend.Close()
		logFile.Close()
		return nil, err
	}

	projector := blog.NewProjector(tag)
	logger.Info("operation started",
		"operation", op.Name,
		"args", op.Args,
		"store", cfg.Store.Type,
		"key", durable.Key(),
		"locale", projector.Locale().String(),
	)

	return &BlogApp{
		cfg:     cfg,
		backend: backend,
		posts:   posts,
		list:    view.NewListView(posts, projector),
		clock:   clock,
		op:      op,
		logger:  logger,
		logFile: logFile,
	}, nil
}

// sealIfConfigured wraps backend with at-rest encryption when the config
// asks for it.
func sealIfConfigured(backend blog.KVStore, cfg config.EncryptionConfig, passphrase kv.PassphraseFunc) (blog.KVStore, error) {
	enc, err := encryption.NewEncryptorFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating encryptor: %w", err)
	}
	if enc == nil {
		return backend, nil
	}
	if !enc.IsConfigured() {
		return nil, ErrKeysNotInitialized
	}
	if passphrase == nil {
		passphrase = func() (string, error) {
			return "", errors.New("no passphrase source configured")
		}
	}
	return kv.NewSealedStore(backend, enc, passphrase), nil
}

// parseLocale resolves the configured collation locale. Empty means English.
func parseLocale(s string) (language.Tag, error) {
	if s == "" {
		return language.English, nil
	}
	tag, err := language.Parse(s)
	if err != nil {
		return language.Und, fmt.Errorf("invalid locale %q: %w", s, err)
	}
	return tag, nil
}

// fail records err against the operation and passes it through.
func (a *BlogApp) fail(err error) error {
	if err != nil {
		a.op.Fail()
		a.logger.Error("operation failed", "operation", a.op.Name, "error", err)
	}
	return err
}

// RenderList writes the post list for search and sort to w.
func (a *BlogApp) RenderList(w io.Writer, search string, sort blog.SortState) error {
	a.list.SetSearch(search)
	a.list.SetSort(sort)
	return a.fail(view.RenderList(w, a.list.Page()))
}

// CreatePost adds a post and persists the collection.
func (a *BlogApp) CreatePost(d blog.Draft) (blog.Post, error) {
	p, err := a.list.Create(d)
	return p, a.fail(err)
}

// DeletePost removes the post with id once confirm approves it.
func (a *BlogApp) DeletePost(id int64, confirm func(blog.Post) bool) (bool, error) {
	removed, err := a.list.Delete(id, confirm)
	return removed, a.fail(err)
}

// ShowPost writes the detail page for id to w.
func (a *BlogApp) ShowPost(w io.Writer, id int64) error {
	return a.fail(view.RenderDetail(w, a.list.Detail(id)))
}

// Open writes the page that path routes to.
func (a *BlogApp) Open(w io.Writer, path string) error {
	return a.fail(view.Render(w, path, a.list))
}

// Browse runs an interactive session over in and out.
func (a *BlogApp) Browse(in io.Reader, out io.Writer) error {
	return a.fail(view.NewSession(a.list, in, out, &slogAdapter{l: a.logger}).Run())
}

// setupValidator is implemented by backends that can check their own
// reachability and schema.
type setupValidator interface {
	ValidateSetup() error
}

// CheckStore verifies the configured backend is reachable and ready.
// Backends without a check (memory) always pass.
func (a *BlogApp) CheckStore() error {
	v, ok := a.backend.(setupValidator)
	if !ok {
		return nil
	}
	if err := v.ValidateSetup(); err != nil {
		return a.fail(fmt.Errorf("%s store: %w", a.cfg.Store.Type, err))
	}
	return nil
}

// PostCount returns the number of stored posts.
func (a *BlogApp) PostCount() int {
	return a.posts.Len()
}

// Close logs the operation outcome and closes all resources.
func (a *BlogApp) Close() error {
	var firstErr error

	a.logger.Info("operation finished",
		"operation", a.op.Name,
		"status", a.op.Status,
		"elapsed", a.op.Elapsed(a.clock),
		"posts", a.posts.Len(),
	)

	if err := a.backend.Close(); err != nil {
		firstErr = fmt.Errorf("closing store: %w", err)
	}

	if a.logFile != nil {
		a.logFile.Close()
	}

	return firstErr
}

// InitKeys creates the encryption key pair named in cfg, protecting the
// private key with passphrase. It returns the public recipient string.
func InitKeys(cfg config.EncryptionConfig, passphrase string) (string, error) {
	if cfg.Type != "age" {
		return "", fmt.Errorf("encryption type %q has no keys to initialize (set [encryption] type = \"age\")", cfg.Type)
	}

	enc := encryption.NewAgeEncryptor(cfg)
	if err := enc.Setup(passphrase); err != nil {
		return "", fmt.Errorf("creating keys: %w", err)
	}
	return enc.Recipient()
}
