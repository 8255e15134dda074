package docstore

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yomek/c7ctl/api/config"
	"github.com/yomek/c7ctl/api/context7"
	"github.com/yomek/c7ctl/log"
)

// refreshConcurrency bounds parallel library fetches. Each Context7 fetch
// spawns an npx subprocess, so this stays small.
const refreshConcurrency = 3

// Refresher rebuilds the documentation snapshot from Context7 and the
// configured docs sources
type Refresher struct {
	cfg    *config.Config
	client *context7.Client

	// SnapshotPath overrides the snapshot location, mainly for tests
	SnapshotPath string
}

// NewRefresher creates a refresher for the given configuration
func NewRefresher(cfg *config.Config) *Refresher {
	env := map[string]string{}
	if cfg.APIKey != "" {
		env["CONTEXT7_API_KEY"] = cfg.APIKey
	}
	if cfg.BaseURL != "" && cfg.BaseURL != config.DefaultBaseURL {
		env["CONTEXT7_BASE_URL"] = cfg.BaseURL
	}

	return &Refresher{
		cfg:    cfg,
		client: context7.NewClient(env),
	}
}

// Refresh probes Context7, pulls documentation for every tracked library and
// persists a new snapshot. When Context7 is unreachable the previous library
// entries are kept and only the availability flag and docs sources change.
func (r *Refresher) Refresh(ctx context.Context, forceUpdate bool) (*Snapshot, error) {
	prev, err := Load(r.SnapshotPath)
	if err != nil {
		log.Warn("Previous documentation cache unreadable, starting fresh", "error", err)
		prev = &Snapshot{Libraries: map[string]LibraryEntry{}}
	}

	snap := &Snapshot{
		LastRefresh: time.Now(),
		Libraries:   map[string]LibraryEntry{},
	}

	info, err := r.client.Probe(ctx)
	if err != nil {
		log.Warn("Context7 unavailable, keeping cached documentation", "error", err)
	} else {
		snap.Available = true
		snap.ServerTools = info.Tools
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(refreshConcurrency)

	for _, lib := range r.cfg.Libraries {
		g.Go(func() error {
			entry := r.refreshLibrary(gctx, lib, snap.Available, prev, forceUpdate)
			mu.Lock()
			snap.Libraries[lib.Name] = entry
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := snap.Save(r.SnapshotPath); err != nil {
		// The refreshed data is still returned even if persisting failed
		log.Error("Documentation cache could not be saved", "error", err)
		return snap, err
	}

	log.Info("Documentation cache refreshed",
		"libraries", len(snap.Libraries),
		"context7_available", snap.Available,
	)
	return snap, nil
}

func (r *Refresher) refreshLibrary(ctx context.Context, lib config.Library, available bool, prev *Snapshot, forceUpdate bool) LibraryEntry {
	entry := LibraryEntry{
		Name:      lib.Name,
		Topic:     lib.Topic,
		FetchedAt: time.Now(),
	}

	if available {
		docs, err := r.client.FetchDocs(ctx, lib.Name, lib.Topic)
		if err != nil {
			log.Warn("Documentation fetch failed", "library", lib.Name, "error", err)
			entry.FetchError = err.Error()
		} else {
			entry.LibraryID = docs.LibraryID
			entry.Content = docs.Content
		}
	}

	// Keep the previous content when this round produced none
	if entry.Content == "" {
		if old, ok := prev.Entry(lib.Name); ok && old.Content != "" {
			entry.LibraryID = old.LibraryID
			entry.Content = old.Content
			entry.FetchedAt = old.FetchedAt
		}
	}

	// Docs sources are plain web pages, reachable regardless of Context7
	for _, src := range lib.DocsSources {
		page, err := context7.FetchSourcePage(src, forceUpdate)
		if err != nil {
			log.Warn("Docs source fetch failed", "library", lib.Name, "url", src, "error", err)
			continue
		}
		entry.Sources = append(entry.Sources, SourceEntry{
			URL:     page.URL,
			Title:   page.Title,
			Content: page.Content,
		})
	}

	return entry
}
