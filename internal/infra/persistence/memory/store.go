// Package memory holds the authoritative in-process copy of the pharmacy state.
// Every committed unit of work is written through to a SnapshotStore before it becomes visible.
package memory

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"novasalud/config"
	domainerrors "novasalud/internal/domain/errors"
	"novasalud/internal/domain/entity"
	"novasalud/internal/domain/lifecycle"
	"novasalud/internal/domain/repository"
	"novasalud/internal/errors"
	"novasalud/internal/infra/persistence/seed"

	"go.uber.org/fx"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config    *config.Config
	Logger    *slog.Logger
	Snapshots repository.SnapshotStore
}

// Options tunes a Store.
type Options struct {
	NotificationCapacity int
	SeedOnEmpty          bool
	Now                  func() time.Time
}

// Store serialises writers and lets readers see only committed state.
// Reads and writes fail with ErrStoreNotReady until Load has succeeded once.
type Store struct {
	mu        sync.RWMutex
	current   *state
	loaded    bool
	snapshots repository.SnapshotStore
	logger    *slog.Logger
	opts      Options
}

// New creates the store and loads the persisted snapshot when the application starts.
func New(params Params) *Store {
	store := NewStore(params.Snapshots, params.Logger, Options{
		NotificationCapacity: params.Config.Store.NotificationCapacity,
		SeedOnEmpty:          params.Config.Store.SeedOnEmpty,
	})

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			return store.Load(ctx)
		},
	})

	return store
}

// NewStore creates an empty store. Call Load to populate it.
func NewStore(snapshots repository.SnapshotStore, logger *slog.Logger, opts Options) *Store {
	if opts.NotificationCapacity <= 0 {
		opts.NotificationCapacity = 50
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Store{
		current:   newState(opts.NotificationCapacity),
		snapshots: snapshots,
		logger:    logger,
		opts:      opts,
	}
}

// Load replaces the in-memory state with the persisted snapshot.
// A missing snapshot is not an error; empty collections are seeded when SeedOnEmpty is set.
func (s *Store) Load(ctx context.Context) error {
	snap, err := s.snapshots.Load(ctx)
	switch {
	case errors.Is(err, repository.ErrSnapshotNotFound):
		s.logger.InfoContext(ctx, "No stored snapshot found, starting with an empty store")
		snap = &entity.Snapshot{}
	case err != nil:
		return errors.Wrap(err, "failed to load snapshot")
	}

	if s.opts.SeedOnEmpty {
		seeded := applySeed(snap, seed.Dataset(s.opts.Now()))
		if len(seeded) > 0 {
			s.logger.InfoContext(ctx, "Seeded empty collections", slog.Any("collections", seeded))
		}
	}

	loaded := stateFromSnapshot(snap, s.opts.NotificationCapacity)

	s.mu.Lock()
	s.current = loaded
	s.loaded = true
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Store loaded",
		slog.Int("products", len(loaded.products)),
		slog.Int("customers", len(loaded.customers)),
		slog.Int("sales", len(loaded.sales)),
		slog.Int("notifications", loaded.notifications.size),
	)

	return nil
}

// Snapshot returns a deep copy of the committed state.
func (s *Store) Snapshot() *entity.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.current.snapshot()
}

// execute runs fn against a private draft. The draft replaces the committed state
// only after fn succeeds and the snapshot is saved.
func (s *Store) execute(ctx context.Context, fn func(draft *state) error) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return errors.WithStack(domainerrors.ErrStoreNotReady)
	}

	draft := s.current.clone()
	if err := fn(draft); err != nil {
		return err
	}

	if err := s.snapshots.Save(ctx, draft.snapshot()); err != nil {
		s.logger.ErrorContext(ctx, "Failed to persist snapshot", slog.Any("error", err))

		return domainerrors.NewPersistenceError(err, "the change was not applied")
	}

	s.current = draft

	return nil
}

func (s *Store) read(ctx context.Context, fn func(committed *state) error) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return errors.WithStack(domainerrors.ErrStoreNotReady)
	}

	return fn(s.current)
}

// applySeed fills each empty collection from the dataset and returns the names of the seeded collections.
func applySeed(snap, dataset *entity.Snapshot) []string {
	var seeded []string
	if len(snap.Products) == 0 {
		snap.Products = dataset.Products
		snap.Counters.Product = max(snap.Counters.Product, dataset.Counters.Product)
		seeded = append(seeded, "products")
	}
	if len(snap.Customers) == 0 {
		snap.Customers = dataset.Customers
		snap.Counters.Customer = max(snap.Counters.Customer, dataset.Counters.Customer)
		seeded = append(seeded, "customers")
	}
	if len(snap.Sales) == 0 {
		snap.Sales = dataset.Sales
		snap.Counters.Sale = max(snap.Counters.Sale, dataset.Counters.Sale)
		seeded = append(seeded, "sales")
	}

	return seeded
}
