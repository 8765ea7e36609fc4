package markdown

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/vadimbarashkov/ngo-site/internal/entity"
)

const defaultDebounce = 500 * time.Millisecond

// ContentRepository serves posts from the current Index and can reload it when files change.
type ContentRepository struct {
	root          string
	includeDrafts bool
	debounce      time.Duration
	logger        *slog.Logger
	index         atomic.Pointer[Index]
}

type Option func(*ContentRepository)

func WithDrafts(include bool) Option {
	return func(r *ContentRepository) {
		r.includeDrafts = include
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *ContentRepository) {
		r.logger = logger
	}
}

func WithDebounce(d time.Duration) Option {
	return func(r *ContentRepository) {
		r.debounce = d
	}
}

// NewContentRepository loads root and returns a repository serving it.
func NewContentRepository(root string, opts ...Option) (*ContentRepository, error) {
	const op = "adapter.repository.markdown.NewContentRepository"

	r := &ContentRepository{
		root:     root,
		debounce: defaultDebounce,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(r)
	}

	if err := r.Reload(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return r, nil
}

// Reload rebuilds the index from disk. On failure the previous index stays in place.
func (r *ContentRepository) Reload() error {
	ix, err := Load(r.root, r.includeDrafts)
	if err != nil {
		return err
	}

	r.index.Store(ix)
	return nil
}

func (r *ContentRepository) Collections() []entity.CollectionInfo {
	return r.index.Load().Collections()
}

func (r *ContentRepository) ListByCollection(collection string) ([]*entity.Post, error) {
	const op = "adapter.repository.markdown.ContentRepository.ListByCollection"

	posts, ok := r.index.Load().Posts(collection)
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, entity.ErrCollectionNotFound)
	}

	return posts, nil
}

func (r *ContentRepository) FindBySlug(collection, slug string) (*entity.Post, error) {
	const op = "adapter.repository.markdown.ContentRepository.FindBySlug"

	ix := r.index.Load()

	if _, ok := ix.Posts(collection); !ok {
		return nil, fmt.Errorf("%s: %w", op, entity.ErrCollectionNotFound)
	}

	post, ok := ix.Post(collection, slug)
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, entity.ErrPostNotFound)
	}

	return post, nil
}

// Watch reloads the index whenever a file under the content root changes.
// Bursts of events are debounced. Watch blocks until ctx is done.
func (r *ContentRepository) Watch(ctx context.Context) error {
	const op = "adapter.repository.markdown.ContentRepository.Watch"

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("%s: failed to create watcher: %w", op, err)
	}
	defer watcher.Close()

	err = filepath.WalkDir(r.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: failed to watch %s: %w", op, r.root, err)
	}

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}

			if event.Has(fsnotify.Create) && isDir(event.Name) {
				if err := watcher.Add(event.Name); err != nil {
					r.logger.Warn("failed to watch new directory", slog.String("path", event.Name), slog.Any("err", err))
				}
			}

			if timer == nil {
				timer = time.NewTimer(r.debounce)
			} else {
				timer.Reset(r.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil

			if err := r.Reload(); err != nil {
				r.logger.Error("content reload failed, keeping previous index", slog.String("op", op), slog.Any("err", err))
				continue
			}

			r.logger.Info("content reloaded", slog.Int("posts", r.index.Load().Len()))

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.logger.Warn("content watcher error", slog.Any("err", err))
		}
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
