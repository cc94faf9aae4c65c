// Package pipeline provides the decode → compile → render pipeline for
// drawspec.
//
// The CLI and the API server both drive documents through a [Runner] so
// that caching, defaults and logging behave the same at every entry point.
//
// # Stages
//
//  1. Decode: parse a JSON (schema v1 or v2) or TOML document
//  2. Compile: resolve the document into a [scene.Scene] of primitive ops
//  3. Render: replay the scene into one or more output formats
//
// Compiled scenes are cached by the hash of the raw document plus the
// compile options; artifacts by the hash of the scene plus the render
// options.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, raw, pipeline.Options{
//	    Formats: []string{"svg", "png"},
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
//
// [Runner.CompileAll] compiles independent documents in parallel.
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/drawspec/pkg/cache"
	"github.com/matzehuels/drawspec/pkg/compiler"
	"github.com/matzehuels/drawspec/pkg/errors"
	"github.com/matzehuels/drawspec/pkg/geom"
	dsio "github.com/matzehuels/drawspec/pkg/io"
	"github.com/matzehuels/drawspec/pkg/render/sink"
	"github.com/matzehuels/drawspec/pkg/scene"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// DefaultConcurrency bounds parallel compilation in CompileAll.
const DefaultConcurrency = 4

// DefaultFormats are rendered when no format is requested.
var DefaultFormats = []string{sink.FormatSVG}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Decode options
	DocFormat dsio.Format `json:"doc_format,omitempty"` // json (default) or toml

	// Compile options. Nil or empty fields keep the document's own setting.
	Margin  *float64 `json:"margin,omitempty"`
	AutoFit *bool    `json:"auto_fit,omitempty"`
	Anchor  string   `json:"anchor,omitempty"` // top-left or center
	YAxis   string   `json:"y_axis,omitempty"` // down or up

	// Render options
	Formats []string `json:"formats,omitempty"`
	Scale   float64  `json:"scale,omitempty"` // zero keeps each sink's default
	Title   bool     `json:"title,omitempty"`
	RSVG    bool     `json:"rsvg,omitempty"` // rasterize PNG through rsvg-convert

	// Runtime options (not serialized)
	NoCache bool        `json:"-"`
	Logger  *log.Logger `json:"-"`

	anchor    *geom.Anchor
	yAxis     *geom.YAxis
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Scene is the compiled diagram.
	Scene *scene.Scene

	// DocHash is the content hash of the raw document.
	DocHash string

	// SceneHash is the content hash of the encoded scene.
	SceneHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Shapes      int
	Ops         int
	Warnings    int
	CompileTime time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	CompileHit bool // Whether the scene came from cache
	RenderHit  bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation
// =============================================================================

// ValidateFormats checks that all formats are supported output formats.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := errors.ValidateFormat(f, sink.Formats); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks the options and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForCompile(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForCompile parses the convention overrides and checks the margin.
// Anchor and YAxis each replace only their half of the document convention.
func (o *Options) ValidateForCompile() error {
	if o.Margin != nil && *o.Margin < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "margin must not be negative")
	}
	if o.DocFormat != "" && o.DocFormat != dsio.FormatJSON && o.DocFormat != dsio.FormatTOML {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid document format: %q (must be json or toml)", o.DocFormat)
	}
	o.anchor, o.yAxis = nil, nil
	if o.Anchor != "" {
		a, err := geom.ParseAnchor(o.Anchor)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "anchor")
		}
		o.anchor = &a
	}
	if o.YAxis != "" {
		y, err := geom.ParseYAxis(o.YAxis)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "y axis")
		}
		o.yAxis = &y
	}
	o.setLogger()
	return nil
}

// ValidateForRender checks formats and sets render defaults.
func (o *Options) ValidateForRender() error {
	if len(o.Formats) == 0 {
		o.Formats = append([]string(nil), DefaultFormats...)
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must not be negative")
	}
	o.setLogger()
	return ValidateFormats(o.Formats)
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// CompilerOptions returns the options passed to the scene compiler.
func (o *Options) CompilerOptions() compiler.Options {
	return compiler.Options{
		Margin:  o.Margin,
		AutoFit: o.AutoFit,
		Anchor:  o.anchor,
		YAxis:   o.yAxis,
		Logger:  o.Logger,
	}
}

// SceneKeyOpts returns cache key options for compilation.
func (o *Options) SceneKeyOpts() cache.SceneKeyOpts {
	opts := cache.SceneKeyOpts{Margin: o.Margin, AutoFit: o.AutoFit}
	if o.anchor != nil {
		opts.Anchor = o.anchor.String()
	}
	if o.yAxis != nil {
		opts.YAxis = o.yAxis.String()
	}
	return opts
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: format,
		Scale:  o.Scale,
		Title:  o.Title,
		RSVG:   o.RSVG,
	}
}

// SinkOptions returns the options passed to the output sinks.
func (o *Options) SinkOptions() sink.Options {
	return sink.Options{Scale: o.Scale, Title: o.Title, RSVG: o.RSVG}
}
