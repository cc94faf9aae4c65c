package diagram

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/matzehuels/drawspec/pkg/errors"
	"github.com/matzehuels/drawspec/pkg/geom"
)

// Schema identifies the input layout a document was decoded from.
type Schema int

const (
	SchemaV1 Schema = 1 // shapes / connectors, top-left anchored
	SchemaV2 Schema = 2 // flowData / graphData, center anchored
)

// Convention returns the coordinate convention of the schema.
func (s Schema) Convention() geom.Convention {
	if s == SchemaV2 {
		return geom.Convention{Anchor: geom.AnchorCenter, YAxis: geom.YDown}
	}
	return geom.Convention{Anchor: geom.AnchorTopLeft, YAxis: geom.YDown}
}

// AutoFit reports whether documents of the schema fit the canvas to their
// shapes unless told otherwise.
func (s Schema) AutoFit() bool {
	return s == SchemaV1
}

// Default page size, US Letter.
const (
	DefaultPageWidth  Value = "8.5in"
	DefaultPageHeight Value = "11in"
)

// Document is a parsed diagram.
type Document struct {
	Schema     Schema
	Convention geom.Convention
	Page       Page
	Shapes     []Shape
	Connectors []Connector
}

// Page holds page metadata. Width and Height default to US Letter.
// A nil AutoFit follows the schema default.
type Page struct {
	Name       string
	Width      Value
	Height     Value
	Background string
	AutoFit    *bool
	Margin     Value
}

// Shape is a rectangle-like node.
type Shape struct {
	ID       string
	Type     string
	X, Y     Value
	Width    Value
	Height   Value
	ZIndex   int
	Rotation float64 // radians
	Anchor   string  // overrides the document anchor when set

	Text       string
	TextColor  string
	FontSize   Value
	TextHidden bool

	Fill        string
	Stroke      string
	StrokeWidth Value
	Dashed      bool
	Pattern     string
}

// Point is a raw polyline vertex.
type Point struct {
	X, Y Value
}

// Connector joins two shapes by their centers or follows explicit points.
type Connector struct {
	ID     string
	From   string
	To     string
	Points []Point

	Stroke      string
	StrokeWidth Value
	Dashed      bool
	Pattern     string
	Arrow       string

	Text       string
	TextColor  string
	FontSize   Value
	TextHidden bool
}

// Anchored reports whether the connector references shapes rather than
// explicit points.
func (c Connector) Anchored() bool {
	return c.From != "" || c.To != ""
}

// connectorSpace namespaces generated connector IDs.
var connectorSpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("drawspec:connector"))

// Normalize assigns IDs to connectors declared without one. The ID is
// derived from the page name, declaration index and endpoints, so the
// same document always yields the same IDs.
func (d *Document) Normalize() {
	for i := range d.Connectors {
		c := &d.Connectors[i]
		if c.ID != "" {
			continue
		}
		name := fmt.Sprintf("%s/%d/%s/%s", d.Page.Name, i, c.From, c.To)
		c.ID = "connector-" + uuid.NewSHA1(connectorSpace, []byte(name)).String()
	}
}

// Validate checks structural integrity: identifiers are well formed and
// unique across shapes and connectors, and every connector has either a
// complete shape pair or at least two points. Shape references are
// resolved at compile time.
func (d *Document) Validate() error {
	if err := errors.ValidatePageName(d.Page.Name); err != nil {
		return err
	}

	seen := make(map[string]bool, len(d.Shapes)+len(d.Connectors))
	check := func(id string) error {
		if err := errors.ValidateShapeID(id); err != nil {
			return err
		}
		if seen[id] {
			return errors.New(errors.ErrCodeDuplicateShapeID, "duplicate id %q", id)
		}
		seen[id] = true
		return nil
	}

	for _, s := range d.Shapes {
		if err := check(s.ID); err != nil {
			return err
		}
	}
	for _, c := range d.Connectors {
		if err := check(c.ID); err != nil {
			return err
		}
		switch {
		case c.Anchored() && len(c.Points) > 0:
			return errors.New(errors.ErrCodeInvalidDocument, "connector %q has both shape references and points", c.ID)
		case c.Anchored() && (c.From == "" || c.To == ""):
			return errors.New(errors.ErrCodeInvalidDocument, "connector %q needs both from and to", c.ID)
		case !c.Anchored() && len(c.Points) < 2:
			return errors.New(errors.ErrCodeInvalidDocument, "connector %q needs from/to or at least 2 points", c.ID)
		}
	}
	return nil
}
