package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/testgraph/pkg/cache"
	"github.com/matzehuels/testgraph/pkg/journey"
	"github.com/matzehuels/testgraph/pkg/observability"
	"github.com/matzehuels/testgraph/pkg/similarity"
)

const (
	keyTypeGraph = "graph"
	keyTypeTree  = "tree"
)

// Runner executes pipelines with caching.
//
// The Runner holds no per-run state. Multiple goroutines can share one
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides the default cache lifetime when non-zero.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// A nil keyer means [cache.DefaultKeyer]; a nil cache disables caching.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// BuildGraph decodes a similarity dataset, builds the multigraph, applies
// the filter in opts and encodes the result.
func (r *Runner) BuildGraph(ctx context.Context, input []byte, opts GraphOptions) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	start := time.Now()
	res := &Result{RunID: uuid.NewString(), Format: opts.Format}
	logger := opts.Logger.With("run", shortID(res.RunID))

	key := r.Keyer.GraphKey(cache.Hash(input), opts.KeyOpts())
	if !opts.Refresh {
		if c, ok := r.lookup(ctx, logger, keyTypeGraph, key); ok && c.GraphStats != nil {
			res.Artifact, res.GraphStats = c.Artifact, c.GraphStats
			res.CacheHit = true
			res.Duration = time.Since(start)
			logger.Debug("graph served from cache", "key", key)
			return res, nil
		}
	}

	ds, err := decodeDataset(ctx, input)
	if err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnBuildStart(ctx, ds.ComparisonCount())
	buildStart := time.Now()
	g, err := similarity.Build(ds)
	if err != nil {
		hooks.OnBuildComplete(ctx, 0, 0, time.Since(buildStart), err)
		return nil, err
	}
	hooks.OnBuildComplete(ctx, g.NodeCount(), g.EdgeCount(), time.Since(buildStart), nil)

	logger.Info("built similarity graph",
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"duration", time.Since(buildStart))

	filtered := g.Filter(opts.Filter())
	if dropped := g.EdgeCount() - filtered.EdgeCount(); dropped > 0 {
		kv := []any{"dropped", dropped, "metrics", opts.Metrics}
		if opts.MinWeight != nil {
			kv = append(kv, "min_weight", *opts.MinWeight)
		}
		logger.Debug("filtered edges", kv...)
	}

	artifact, err := RenderGraph(ctx, filtered, opts.Format)
	if err != nil {
		return nil, err
	}
	stats := filtered.Stats()
	res.Artifact, res.GraphStats = artifact, &stats
	res.Duration = time.Since(start)

	r.store(ctx, logger, keyTypeGraph, key, cached{Artifact: artifact, GraphStats: &stats}, cache.TTLGraph)
	return res, nil
}

// MergeJourneys decodes a journey tree, merges it in the mode given by opts,
// relabels the root and encodes the result.
func (r *Runner) MergeJourneys(ctx context.Context, input []byte, opts TreeOptions) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	start := time.Now()
	res := &Result{RunID: uuid.NewString(), Format: opts.Format}
	logger := opts.Logger.With("run", shortID(res.RunID))

	key := r.Keyer.TreeKey(cache.Hash(input), opts.KeyOpts())
	if !opts.Refresh {
		if c, ok := r.lookup(ctx, logger, keyTypeTree, key); ok && c.TreeStats != nil {
			res.Artifact, res.TreeStats = c.Artifact, c.TreeStats
			res.CacheHit = true
			res.Duration = time.Since(start)
			logger.Debug("tree served from cache", "key", key)
			return res, nil
		}
	}

	root, err := decodeTree(ctx, input)
	if err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnMergeStart(ctx, string(opts.Mode), root.Count())
	mergeStart := time.Now()
	merged := journey.Merge(root, opts.Mode)
	merged.Name = opts.RootLabel
	hooks.OnMergeComplete(ctx, string(opts.Mode), merged.Count(), time.Since(mergeStart))

	stats := &TreeStats{
		InputNodes:  root.Count(),
		OutputNodes: merged.Count(),
		Journeys:    merged.ChildCount(),
		Depth:       merged.Depth(),
	}
	logger.Info("merged journeys",
		"mode", opts.Mode,
		"journeys", stats.Journeys,
		"nodes", stats.OutputNodes,
		"merged", stats.InputNodes-stats.OutputNodes,
		"duration", time.Since(mergeStart))

	artifact, err := RenderTree(ctx, merged, opts.Format)
	if err != nil {
		return nil, err
	}
	res.Artifact, res.TreeStats = artifact, stats
	res.Duration = time.Since(start)

	r.store(ctx, logger, keyTypeTree, key, cached{Artifact: artifact, TreeStats: stats}, cache.TTLTree)
	return res, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// lookup reads a cached envelope. Backend and decode failures count as misses.
func (r *Runner) lookup(ctx context.Context, logger *log.Logger, keyType, key string) (cached, bool) {
	hooks := observability.Cache()
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		hooks.OnCacheError(ctx, keyType, err)
		logger.Warn("cache read failed", "err", err)
		return cached{}, false
	}
	if !hit {
		hooks.OnCacheMiss(ctx, keyType)
		return cached{}, false
	}
	var c cached
	if err := json.Unmarshal(data, &c); err != nil {
		hooks.OnCacheMiss(ctx, keyType)
		logger.Debug("discarding unreadable cache entry", "key", key, "err", err)
		return cached{}, false
	}
	hooks.OnCacheHit(ctx, keyType)
	return c, true
}

func (r *Runner) store(ctx context.Context, logger *log.Logger, keyType, key string, c cached, ttl time.Duration) {
	if r.TTL > 0 {
		ttl = r.TTL
	}
	data, err := json.Marshal(c)
	if err != nil {
		logger.Warn("cache encode failed", "err", err)
		return
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		observability.Cache().OnCacheError(ctx, keyType, err)
		logger.Warn("cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

func decodeDataset(ctx context.Context, input []byte) (similarity.Dataset, error) {
	hooks := observability.Pipeline()
	hooks.OnDecodeStart(ctx, "similarity", len(input))
	start := time.Now()
	ds, err := similarity.Decode(input)
	hooks.OnDecodeComplete(ctx, "similarity", time.Since(start), err)
	return ds, err
}

func decodeTree(ctx context.Context, input []byte) (journey.Node, error) {
	hooks := observability.Pipeline()
	hooks.OnDecodeStart(ctx, "journey", len(input))
	start := time.Now()
	root, err := journey.Decode(input)
	hooks.OnDecodeComplete(ctx, "journey", time.Since(start), err)
	return root, err
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
