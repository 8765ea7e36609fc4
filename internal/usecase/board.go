package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/vadimbarashkov/ngo-site/internal/entity"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultBoardTTL     = 48 * time.Hour
	boardRefreshTimeout = 30 * time.Second
)

const (
	RefreshResultSuccess = "success"
	RefreshResultError   = "error"
)

type boardGateway interface {
	FetchBoard(ctx context.Context) (*entity.ProjectBoard, error)
}

// BoardUseCase serves the project board from an in-memory snapshot.
// The snapshot is refreshed once it is older than the TTL. If a refresh fails,
// the stale snapshot is served instead.
type BoardUseCase struct {
	gateway   boardGateway
	ttl       time.Duration
	logger    *slog.Logger
	now       func() time.Time
	onRefresh func(result string)

	group    singleflight.Group
	mu       sync.RWMutex
	snapshot *entity.ProjectBoard
}

type BoardOption func(*BoardUseCase)

func WithBoardLogger(logger *slog.Logger) BoardOption {
	return func(uc *BoardUseCase) {
		uc.logger = logger
	}
}

func WithBoardClock(now func() time.Time) BoardOption {
	return func(uc *BoardUseCase) {
		uc.now = now
	}
}

// WithRefreshObserver registers a callback receiving the outcome of every upstream refresh.
func WithRefreshObserver(fn func(result string)) BoardOption {
	return func(uc *BoardUseCase) {
		uc.onRefresh = fn
	}
}

func NewBoardUseCase(gateway boardGateway, ttl time.Duration, opts ...BoardOption) *BoardUseCase {
	if ttl <= 0 {
		ttl = DefaultBoardTTL
	}

	uc := &BoardUseCase{
		gateway:   gateway,
		ttl:       ttl,
		logger:    slog.Default(),
		now:       time.Now,
		onRefresh: func(string) {},
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

func (uc *BoardUseCase) GetBoard(ctx context.Context) (*entity.ProjectBoard, error) {
	const op = "usecase.BoardUseCase.GetBoard"

	snapshot := uc.current()
	if snapshot != nil && uc.now().Sub(snapshot.FetchedAt) < uc.ttl {
		return withStale(snapshot, false), nil
	}

	v, err, _ := uc.group.Do("board", func() (any, error) {
		if current := uc.current(); current != nil && uc.now().Sub(current.FetchedAt) < uc.ttl {
			return current, nil
		}

		// Shared by every waiting caller, so one caller's cancellation must not abort it.
		refreshCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), boardRefreshTimeout)
		defer cancel()

		return uc.refresh(refreshCtx)
	})
	if err != nil {
		if snapshot != nil {
			uc.logger.Warn("project board refresh failed, serving stale snapshot",
				slog.String("op", op),
				slog.Time("fetched_at", snapshot.FetchedAt),
				slog.Any("err", err),
			)
			return withStale(snapshot, true), nil
		}

		return nil, fmt.Errorf("%s: failed to fetch project board: %w", op, err)
	}

	return withStale(v.(*entity.ProjectBoard), false), nil
}

// Warm refreshes the snapshot now regardless of its age. A failure keeps the current snapshot.
// It runs in its own flight so it never joins a GetBoard call that skipped the fetch.
func (uc *BoardUseCase) Warm(ctx context.Context) error {
	const op = "usecase.BoardUseCase.Warm"

	_, err, _ := uc.group.Do("board-warm", func() (any, error) {
		refreshCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), boardRefreshTimeout)
		defer cancel()

		return uc.refresh(refreshCtx)
	})
	if err != nil {
		return fmt.Errorf("%s: failed to refresh project board: %w", op, err)
	}

	return nil
}

func (uc *BoardUseCase) refresh(ctx context.Context) (*entity.ProjectBoard, error) {
	board, err := uc.gateway.FetchBoard(ctx)
	if err != nil {
		uc.onRefresh(RefreshResultError)
		return nil, err
	}

	board.FetchedAt = uc.now()

	uc.mu.Lock()
	uc.snapshot = board
	uc.mu.Unlock()

	uc.onRefresh(RefreshResultSuccess)

	return board, nil
}

func (uc *BoardUseCase) current() *entity.ProjectBoard {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.snapshot
}

func withStale(board *entity.ProjectBoard, stale bool) *entity.ProjectBoard {
	b := *board
	b.Stale = stale
	return &b
}
