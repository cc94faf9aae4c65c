package compiler

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/drawspec/pkg/diagram"
	"github.com/matzehuels/drawspec/pkg/errors"
	"github.com/matzehuels/drawspec/pkg/geom"
	"github.com/matzehuels/drawspec/pkg/layout"
	"github.com/matzehuels/drawspec/pkg/scene"
	"github.com/matzehuels/drawspec/pkg/style"
	"github.com/matzehuels/drawspec/pkg/units"
)

// State is a compilation stage.
type State int

const (
	StateEmpty State = iota
	StateShapesEmitted
	StateConnectorsEmitted
	StateCompiled
)

func (s State) String() string {
	switch s {
	case StateShapesEmitted:
		return "shapes-emitted"
	case StateConnectorsEmitted:
		return "connectors-emitted"
	case StateCompiled:
		return "compiled"
	default:
		return "empty"
	}
}

// Options override document settings. Nil fields keep the document's
// value, falling back to the schema default.
type Options struct {
	Margin  *float64     // auto-fit margin in inches
	AutoFit *bool        // fit the canvas to the shapes
	Anchor  *geom.Anchor // replaces the document anchor only
	YAxis   *geom.YAxis  // replaces the document y axis only
	Logger  *log.Logger
}

// Compiler compiles one document. Use [Compile] unless the stages need
// to be driven individually.
type Compiler struct {
	doc      *diagram.Document
	logger   *log.Logger
	tf       geom.Transformer
	page     scene.Page
	margin   float64
	autoFit  bool
	state    State
	err      error
	placed   map[string]geom.Rect
	bounds   []geom.Rect
	ops      []scene.Op
	warnings []errors.Warning
}

// Compile runs all stages and returns the compiled scene.
func Compile(doc *diagram.Document, opts Options) (*scene.Scene, error) {
	c, err := New(doc, opts)
	if err != nil {
		return nil, err
	}
	if err := c.EmitShapes(); err != nil {
		return nil, err
	}
	if err := c.EmitConnectors(); err != nil {
		return nil, err
	}
	return c.Finish()
}

// New validates doc and resolves its page.
func New(doc *diagram.Document, opts Options) (*Compiler, error) {
	if doc == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nil document")
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	width, err := doc.Page.Width.Length(diagram.DefaultPageWidth)
	if err != nil {
		return nil, field(err, "page", "width")
	}
	height, err := doc.Page.Height.Length(diagram.DefaultPageHeight)
	if err != nil {
		return nil, field(err, "page", "height")
	}
	page := scene.Page{Name: doc.Page.Name, Width: width, Height: height}
	if doc.Page.Background != "" {
		bg, err := units.ParseColor(doc.Page.Background)
		if err != nil {
			return nil, field(err, "page", "background")
		}
		page.Background = &bg
	}

	margin := layout.DefaultMargin
	switch {
	case opts.Margin != nil:
		margin = *opts.Margin
	case !doc.Page.Margin.IsZero():
		if margin, err = doc.Page.Margin.Length(""); err != nil {
			return nil, field(err, "page", "margin")
		}
	}

	autoFit := doc.Schema.AutoFit()
	switch {
	case opts.AutoFit != nil:
		autoFit = *opts.AutoFit
	case doc.Page.AutoFit != nil:
		autoFit = *doc.Page.AutoFit
	}

	conv := doc.Convention
	if opts.Anchor != nil {
		conv.Anchor = *opts.Anchor
	}
	if opts.YAxis != nil {
		conv.YAxis = *opts.YAxis
	}

	return &Compiler{
		doc:     doc,
		logger:  logger,
		tf:      geom.Transformer{PageHeight: height, Convention: conv},
		page:    page,
		margin:  margin,
		autoFit: autoFit,
		placed:  make(map[string]geom.Rect, len(doc.Shapes)),
	}, nil
}

// State returns the current stage.
func (c *Compiler) State() State { return c.state }

// EmitShapes places every shape and emits its creation, style and
// stacking ops.
func (c *Compiler) EmitShapes() error {
	if err := c.advance(StateEmpty, StateShapesEmitted); err != nil {
		return err
	}
	items := make([]layout.ZItem, 0, len(c.doc.Shapes))
	for _, s := range c.doc.Shapes {
		if err := c.emitShape(s); err != nil {
			return c.fail(err)
		}
		items = append(items, layout.ZItem{ID: s.ID, ZIndex: s.ZIndex})
	}
	for rank, it := range layout.ZOrder(items) {
		c.ops = append(c.ops, scene.SetZOrder{Target: it.ID, Rank: rank})
	}
	c.logger.Debug("emitted shapes", "shapes", len(c.doc.Shapes), "convention", c.tf.Convention)
	return nil
}

// EmitConnectors emits every connector. Shape references resolve to the
// centers of the placed shapes.
func (c *Compiler) EmitConnectors() error {
	if err := c.advance(StateShapesEmitted, StateConnectorsEmitted); err != nil {
		return err
	}
	for _, conn := range c.doc.Connectors {
		if err := c.emitConnector(conn); err != nil {
			return c.fail(err)
		}
	}
	c.logger.Debug("emitted connectors", "connectors", len(c.doc.Connectors))
	return nil
}

// Finish fits the canvas when enabled and returns the scene.
func (c *Compiler) Finish() (*scene.Scene, error) {
	if err := c.advance(StateConnectorsEmitted, StateCompiled); err != nil {
		return nil, err
	}
	if c.autoFit {
		if canvas, ok := layout.AutoFit(c.bounds, c.margin); ok {
			c.ops = append(c.ops, scene.ResizeCanvas{
				Width:  canvas.Width,
				Height: canvas.Height,
				Origin: canvas.Origin,
			})
		}
	}
	c.logger.Debug("compiled scene", "page", c.page.Name, "ops", len(c.ops), "warnings", len(c.warnings))
	return &scene.Scene{Page: c.page, Ops: c.ops, Warnings: c.warnings}, nil
}

func (c *Compiler) advance(from, to State) error {
	if c.err != nil {
		return c.err
	}
	if c.state != from {
		return errors.New(errors.ErrCodeInternal, "cannot move to %s from %s", to, c.state)
	}
	c.state = to
	return nil
}

func (c *Compiler) fail(err error) error {
	c.err = err
	c.ops = nil
	return err
}

func (c *Compiler) emitShape(s diagram.Shape) error {
	x, err := s.X.Length("0")
	if err != nil {
		return field(err, s.ID, "x")
	}
	y, err := s.Y.Length("0")
	if err != nil {
		return field(err, s.ID, "y")
	}
	w, err := s.Width.Length("")
	if err != nil {
		return field(err, s.ID, "width")
	}
	h, err := s.Height.Length("")
	if err != nil {
		return field(err, s.ID, "height")
	}

	anchor := c.tf.Convention.Anchor
	if s.Anchor != "" {
		if anchor, err = geom.ParseAnchor(s.Anchor); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidDocument, err, "%s.anchor", s.ID)
		}
	}
	rect := c.tf.PlaceAs(anchor, x, y, w, h)
	c.placed[s.ID] = rect
	c.bounds = append(c.bounds, rect)
	c.ops = append(c.ops, scene.CreateRectangle{ID: s.ID, Rect: rect, RotationDeg: style.Degrees(s.Rotation)})

	if !style.Suppressed(s.Type) {
		fillValue := s.Fill
		if fillValue == "" {
			fillValue = style.DefaultFill
		}
		fill, warns, err := style.ResolveFill(s.ID, fillValue)
		if err != nil {
			return field(err, s.ID, "fill")
		}
		c.warn(warns)

		stroke, warns, err := style.ResolveStroke(s.ID, style.Stroke{
			Color:   s.Stroke,
			Width:   string(s.StrokeWidth),
			Dashed:  s.Dashed,
			Pattern: s.Pattern,
		})
		if err != nil {
			return field(err, s.ID, "stroke")
		}
		c.warn(warns)
		c.ops = append(c.ops, fill, stroke)
	}

	if s.Text != "" {
		label, err := style.ResolveLabel(s.ID, s.Text, style.TextStyle{
			Color:  s.TextColor,
			Size:   string(s.FontSize),
			Hidden: s.TextHidden,
		})
		if err != nil {
			return field(err, s.ID, "text")
		}
		c.ops = append(c.ops, label)
	}
	return nil
}

func (c *Compiler) emitConnector(conn diagram.Connector) error {
	var points []geom.Point
	if conn.Anchored() {
		from, ok := c.placed[conn.From]
		if !ok {
			return errors.New(errors.ErrCodeUnknownShapeReference, "connector %q references unknown shape %q", conn.ID, conn.From)
		}
		to, ok := c.placed[conn.To]
		if !ok {
			return errors.New(errors.ErrCodeUnknownShapeReference, "connector %q references unknown shape %q", conn.ID, conn.To)
		}
		points = []geom.Point{from.Center(), to.Center()}
	} else {
		for i, p := range conn.Points {
			x, err := p.X.Length("")
			if err != nil {
				return field(err, conn.ID, fmt.Sprintf("points[%d].x", i))
			}
			y, err := p.Y.Length("")
			if err != nil {
				return field(err, conn.ID, fmt.Sprintf("points[%d].y", i))
			}
			points = append(points, c.tf.Point(x, y))
		}
	}

	stroke, warns, err := style.ResolveStroke(conn.ID, style.Stroke{
		Color:   conn.Stroke,
		Width:   string(conn.StrokeWidth),
		Dashed:  conn.Dashed,
		Pattern: conn.Pattern,
		Arrow:   conn.Arrow,
	})
	if err != nil {
		return field(err, conn.ID, "stroke")
	}
	c.warn(warns)
	c.ops = append(c.ops, scene.CreatePolyline{ID: conn.ID, Points: points}, stroke)

	if conn.Text != "" {
		label, err := style.ResolveLabel(conn.ID, conn.Text, style.TextStyle{
			Color:  conn.TextColor,
			Size:   string(conn.FontSize),
			Hidden: conn.TextHidden,
		})
		if err != nil {
			return field(err, conn.ID, "text")
		}
		c.ops = append(c.ops, label)
	}
	return nil
}

func (c *Compiler) warn(ws []errors.Warning) {
	for _, w := range ws {
		c.logger.Debug("style fallback", "target", w.Target, "reason", w.Message)
	}
	c.warnings = append(c.warnings, ws...)
}

// field annotates err with the offending target and field, keeping its code.
func field(err error, target, name string) error {
	return errors.Annotate(err, "%s.%s", target, name)
}
