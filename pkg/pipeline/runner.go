package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/drawspec/pkg/cache"
	"github.com/matzehuels/drawspec/pkg/compiler"
	dsio "github.com/matzehuels/drawspec/pkg/io"
	"github.com/matzehuels/drawspec/pkg/observability"
	"github.com/matzehuels/drawspec/pkg/scene"
)

// Cache key types reported to observability hooks.
const (
	keyTypeScene    = "scene"
	keyTypeArtifact = "artifact"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides cache.SceneTTL and cache.ArtifactTTL when non-zero.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
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

// Execute runs the complete decode → compile → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, raw []byte, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		DocHash:   cache.Hash(raw),
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Compile
	compileStart := time.Now()
	s, compileHit, err := r.CompileWithCacheInfo(ctx, raw, opts)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	result.Scene = s
	result.Stats.CompileTime = time.Since(compileStart)
	result.Stats.Shapes = len(s.Shapes())
	result.Stats.Ops = len(s.Ops)
	result.Stats.Warnings = len(s.Warnings)
	result.CacheInfo.CompileHit = compileHit

	r.Logger.Info("compiled diagram",
		"shapes", result.Stats.Shapes,
		"ops", result.Stats.Ops,
		"warnings", result.Stats.Warnings,
		"duration", result.Stats.CompileTime)
	for _, w := range s.Warnings {
		r.Logger.Warn(w.Message, "code", w.Code, "target", w.Target)
	}

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, sceneHash, renderHit, err := r.render(ctx, s, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.SceneHash = sceneHash
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// CompileWithCacheInfo decodes and compiles raw with caching and returns
// cache hit info.
func (r *Runner) CompileWithCacheInfo(ctx context.Context, raw []byte, opts Options) (*scene.Scene, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForCompile(); err != nil {
		return nil, false, err
	}

	docHash := cache.Hash(raw)
	cacheKey := r.Keyer.SceneKey(docHash, opts.SceneKeyOpts())

	// Try cache first (unless disabled)
	if !opts.NoCache {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if s, err := scene.Unmarshal(data); err == nil {
				observability.Cache().OnCacheHit(ctx, keyTypeScene)
				opts.Logger.Debug("scene cache hit", "doc", docHash[:12])
				return s, true, nil
			}
			// If deserialization fails, fall through to recompile
		}
		observability.Cache().OnCacheMiss(ctx, keyTypeScene)
	}

	hooks := observability.Pipeline()
	hooks.OnCompileStart(ctx, docHash)
	start := time.Now()
	s, err := Compile(raw, opts)
	if err != nil {
		hooks.OnCompileComplete(ctx, docHash, 0, 0, time.Since(start), err)
		return nil, false, err
	}
	hooks.OnCompileComplete(ctx, docHash, len(s.Ops), len(s.Warnings), time.Since(start), nil)

	// Cache the result
	if !opts.NoCache {
		if data, err := scene.Marshal(s); err == nil {
			if err := r.Cache.Set(ctx, cacheKey, data, r.ttl(cache.SceneTTL)); err == nil {
				observability.Cache().OnCacheSet(ctx, keyTypeScene, len(data))
			} else {
				opts.Logger.Debug("scene cache write failed", "error", err)
			}
		}
	}

	return s, false, nil
}

// Compile is a convenience wrapper that calls CompileWithCacheInfo and discards the cache hit info.
func (r *Runner) Compile(ctx context.Context, raw []byte, opts Options) (*scene.Scene, error) {
	s, _, err := r.CompileWithCacheInfo(ctx, raw, opts)
	return s, err
}

// RenderWithCacheInfo renders s into every requested format with caching
// and returns cache hit info. The hit is true only when every format came
// from cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, s *scene.Scene, opts Options) (map[string][]byte, bool, error) {
	artifacts, _, hit, err := r.render(ctx, s, opts)
	return artifacts, hit, err
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, s *scene.Scene, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, s, opts)
	return artifacts, err
}

func (r *Runner) render(ctx context.Context, s *scene.Scene, opts Options) (map[string][]byte, string, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, "", false, err
	}

	sceneData, err := scene.Marshal(s)
	if err != nil {
		return nil, "", false, fmt.Errorf("serialize scene for cache key: %w", err)
	}
	sceneHash := cache.Hash(sceneData)

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		if opts.NoCache {
			missing = append(missing, format)
			continue
		}
		cacheKey := r.Keyer.ArtifactKey(sceneHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, keyTypeArtifact)
			artifacts[format] = data
			continue
		}
		observability.Cache().OnCacheMiss(ctx, keyTypeArtifact)
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, sceneHash, true, nil // All artifacts from cache
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, missing)
	start := time.Now()
	rendered, err := Render(ctx, s, missing, opts)
	hooks.OnRenderComplete(ctx, missing, time.Since(start), err)
	if err != nil {
		return nil, "", false, err
	}

	for format, data := range rendered {
		artifacts[format] = data
		if opts.NoCache {
			continue
		}
		cacheKey := r.Keyer.ArtifactKey(sceneHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, r.ttl(cache.ArtifactTTL)); err == nil {
			observability.Cache().OnCacheSet(ctx, keyTypeArtifact, len(data))
		}
	}

	return artifacts, sceneHash, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) ttl(def time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return def
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// Compile decodes raw and compiles it without caching.
func Compile(raw []byte, opts Options) (*scene.Scene, error) {
	if err := opts.ValidateForCompile(); err != nil {
		return nil, err
	}
	doc, err := dsio.Read(bytes.NewReader(raw), opts.DocFormat)
	if err != nil {
		return nil, err
	}
	opts.Logger.Debug("decoded document",
		"schema", doc.Schema,
		"shapes", len(doc.Shapes),
		"connectors", len(doc.Connectors))
	return compiler.Compile(doc, opts.CompilerOptions())
}
