package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"finds/internal/domain"
	"finds/internal/github"
	"finds/internal/issueform"
)

// Source says where a load's products came from.
type Source string

const (
	// SourceCache means a fresh persisted snapshot was served without a
	// network call.
	SourceCache Source = "cache"
	// SourceLive means the issues were fetched and parsed just now.
	SourceLive Source = "live"
	// SourceFallback means live data was unavailable and the bundled
	// sample catalog is showing instead.
	SourceFallback Source = "fallback"
)

// LoadStatus describes the outcome of a Load in terms a UI can show
// verbatim. The catalog never renders an unexplained empty screen.
type LoadStatus struct {
	Source  Source
	Message string
	// Stale is true when a newer load started while this one was in
	// flight; its result was discarded and the snapshot is unchanged.
	Stale bool
}

// Options configures a Store.
type Options struct {
	Owner string
	Repo  string
	// Label marks product issues; also excluded from label-derived
	// categories.
	Label string
	// Freshness is the cache window; DefaultFreshness when zero.
	Freshness time.Duration
	// MaxItems bounds the issue listing (API-clamped to 100).
	MaxItems int
}

// DefaultFreshness is how long a cached snapshot is served without a
// refetch.
const DefaultFreshness = 10 * time.Minute

// Store owns the in-memory product snapshot for the session and the
// persisted cache behind it. All mutation goes through Load and Append.
type Store struct {
	gateway github.Gateway
	repo    Repository
	opts    Options
	log     logrus.FieldLogger

	mu         sync.Mutex
	products   []domain.Product
	generation uint64
}

// New builds a Store. repo may be nil, which disables persistence
// entirely (every load goes to the network).
func New(gateway github.Gateway, repo Repository, opts Options, logger logrus.FieldLogger) *Store {
	if opts.Freshness <= 0 {
		opts.Freshness = DefaultFreshness
	}
	if opts.Label == "" {
		opts.Label = "product"
	}
	return &Store{
		gateway: gateway,
		repo:    repo,
		opts:    opts,
		log:     logger.WithField("component", "store"),
	}
}

// Products returns a copy of the current snapshot.
func (s *Store) Products() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Load returns the catalog, serving a fresh cache entry unless force is
// set, refetching otherwise. Any failure on the way to live data
// degrades to the bundled sample catalog with an explanatory status.
// Overlapping loads are last-response-wins: a load that finishes after a
// newer one started leaves the snapshot alone and reports Stale.
func (s *Store) Load(ctx context.Context, force bool) ([]domain.Product, LoadStatus) {
	gen := s.nextGeneration()

	if !force {
		if entry := s.readCache(ctx); entry != nil && entry.Fresh(s.opts.Freshness) {
			return s.finish(gen, entry.Items, LoadStatus{
				Source:  SourceCache,
				Message: fmt.Sprintf("Showing %d cached products.", len(entry.Items)),
			})
		}
	}

	issues, err := s.gateway.ListIssues(ctx, github.ListOptions{
		Label:   s.opts.Label,
		State:   "all",
		PerPage: s.opts.MaxItems,
	})
	if err != nil {
		s.log.WithError(err).Warn("Live load failed, falling back to sample catalog")
		return s.finish(gen, SampleProducts(s.log), LoadStatus{
			Source:  SourceFallback,
			Message: fmt.Sprintf("Live data unavailable (%v) — showing sample products.", err),
		})
	}

	items := make([]domain.Product, 0, len(issues))
	for _, issue := range issues {
		if p, ok := issueform.MapIssue(issue, s.opts.Label); ok {
			items = append(items, p)
		}
	}
	s.writeCache(ctx, CacheEntry{FetchedAt: time.Now(), Items: items})

	s.log.WithFields(logrus.Fields{
		"issues":   len(issues),
		"products": len(items),
	}).Info("Catalog refreshed")

	return s.finish(gen, items, LoadStatus{
		Source:  SourceLive,
		Message: fmt.Sprintf("Showing %d products.", len(items)),
	})
}

// Append inserts a freshly created product at the head of the snapshot,
// the optimistic update after a successful write. The next full Load
// reconciles it with the source of truth.
func (s *Store) Append(p domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = append([]domain.Product{p}, s.products...)
}

func (s *Store) nextGeneration() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	return s.generation
}

// finish applies the empty-catalog fallback, then commits the result to
// the snapshot unless a newer load superseded this one.
func (s *Store) finish(gen uint64, items []domain.Product, status LoadStatus) ([]domain.Product, LoadStatus) {
	if len(items) == 0 && status.Source != SourceFallback {
		items = SampleProducts(s.log)
		status = LoadStatus{
			Source:  SourceFallback,
			Message: "No products published yet — showing sample products.",
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		status.Stale = true
		return items, status
	}
	s.products = items
	return items, status
}

// readCache swallows persistence failures: a broken cache is a miss,
// never an error the user sees.
func (s *Store) readCache(ctx context.Context) *CacheEntry {
	if s.repo == nil {
		return nil
	}
	entry, err := s.repo.ReadCache(ctx, s.opts.Owner, s.opts.Repo)
	if err != nil {
		s.log.WithError(err).Warn("Cache read failed, treating as miss")
		return nil
	}
	return entry
}

func (s *Store) writeCache(ctx context.Context, entry CacheEntry) {
	if s.repo == nil {
		return
	}
	if err := s.repo.WriteCache(ctx, s.opts.Owner, s.opts.Repo, entry); err != nil {
		s.log.WithError(err).Warn("Cache write failed, continuing without persistence")
	}
}
