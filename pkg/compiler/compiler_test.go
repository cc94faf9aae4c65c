package compiler

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/matzehuels/drawspec/pkg/diagram"
	"github.com/matzehuels/drawspec/pkg/errors"
	"github.com/matzehuels/drawspec/pkg/geom"
	"github.com/matzehuels/drawspec/pkg/scene"
	"github.com/matzehuels/drawspec/pkg/style"
	"github.com/matzehuels/drawspec/pkg/units"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func boolPtr(b bool) *bool { return &b }

func sampleDoc() *diagram.Document {
	return &diagram.Document{
		Schema:     diagram.SchemaV1,
		Convention: diagram.SchemaV1.Convention(),
		Page:       diagram.Page{Name: "flow", Height: "11in"},
		Shapes: []diagram.Shape{
			{ID: "a", X: "96", Y: "96", Width: "96", Height: "48", ZIndex: 1, Text: "A"},
			{ID: "b", Type: "text", X: "2in", Y: "1in", Width: "1in", Height: "1in", Fill: "#FF0000", Text: "B"},
		},
		Connectors: []diagram.Connector{
			{ID: "c", From: "a", To: "b", Dashed: true, Arrow: "arrow"},
		},
	}
}

func TestCompile(t *testing.T) {
	got, err := Compile(sampleDoc(), Options{})
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	solid := int(style.PatternSolid)
	want := []scene.Op{
		scene.CreateRectangle{ID: "a", Rect: geom.Rect{Min: geom.Point{X: 1, Y: 9.5}, Max: geom.Point{X: 2, Y: 10}}},
		scene.SetFillStyle{Target: "a", Fill: scene.FillSolid, Color: units.White},
		scene.SetStrokeStyle{Target: "a", Color: units.Black, WeightPt: 1, Pattern: solid},
		scene.SetTextLabel{Target: "a", Text: "A", Color: units.Black, SizePt: 10},
		scene.CreateRectangle{ID: "b", Rect: geom.Rect{Min: geom.Point{X: 2, Y: 9}, Max: geom.Point{X: 3, Y: 10}}},
		scene.SetTextLabel{Target: "b", Text: "B", Color: units.Black, SizePt: 10},
		scene.SetZOrder{Target: "b", Rank: 0},
		scene.SetZOrder{Target: "a", Rank: 1},
		scene.CreatePolyline{ID: "c", Points: []geom.Point{{X: 1.5, Y: 9.75}, {X: 2.5, Y: 9.5}}},
		scene.SetStrokeStyle{Target: "c", Color: units.Black, WeightPt: 1, Pattern: int(style.PatternDashed), EndArrow: int(style.ArrowArrow)},
		scene.ResizeCanvas{Width: 3, Height: 2, Origin: geom.Point{X: 0.5, Y: 8.5}},
	}
	if diff := cmp.Diff(want, got.Ops, approx); diff != "" {
		t.Errorf("Compile() ops mismatch (-want +got):\n%s", diff)
	}
	if got.Page.Width != 8.5 || got.Page.Height != 11 || got.Page.Name != "flow" {
		t.Errorf("Page = %+v", got.Page)
	}
	if len(got.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", got.Warnings)
	}
}

func TestCompileTextShapeHasNoFillOrStroke(t *testing.T) {
	doc := &diagram.Document{
		Shapes: []diagram.Shape{{
			ID: "t", Type: "text", Width: "10", Height: "10",
			Fill: "#FF0000-#00FF00", Stroke: "#0000FF", StrokeWidth: "3pt", Dashed: true,
		}},
	}
	got, err := Compile(doc, Options{})
	if err != nil {
		t.Fatal(err)
	}
	stats := got.Stats()
	if stats[scene.KindSetFillStyle] != 0 || stats[scene.KindSetStrokeStyle] != 0 {
		t.Errorf("text shape emitted style ops: %v", stats)
	}
	if stats[scene.KindCreateRectangle] != 1 || stats[scene.KindSetZOrder] != 1 {
		t.Errorf("stats = %v", stats)
	}
}

func TestCompileUnknownReference(t *testing.T) {
	doc := sampleDoc()
	doc.Connectors = append(doc.Connectors, diagram.Connector{ID: "bad", From: "a", To: "ghost"})

	got, err := Compile(doc, Options{})
	if !errors.Is(err, errors.ErrCodeUnknownShapeReference) {
		t.Fatalf("Compile() error = %v, want UNKNOWN_SHAPE_REFERENCE", err)
	}
	if got != nil {
		t.Error("Compile() returned a scene for a broken document")
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(d *diagram.Document)
		wantCode errors.Code
	}{
		{
			name:     "duplicate shape id",
			mutate:   func(d *diagram.Document) { d.Shapes[1].ID = "a" },
			wantCode: errors.ErrCodeDuplicateShapeID,
		},
		{
			name:     "bad width",
			mutate:   func(d *diagram.Document) { d.Shapes[0].Width = "wide" },
			wantCode: errors.ErrCodeInvalidQuantity,
		},
		{
			name:     "missing height",
			mutate:   func(d *diagram.Document) { d.Shapes[0].Height = "" },
			wantCode: errors.ErrCodeInvalidQuantity,
		},
		{
			name:     "bad fill",
			mutate:   func(d *diagram.Document) { d.Shapes[0].Fill = "blue" },
			wantCode: errors.ErrCodeInvalidColor,
		},
		{
			name:     "bad background",
			mutate:   func(d *diagram.Document) { d.Page.Background = "#GGG" },
			wantCode: errors.ErrCodeInvalidColor,
		},
		{
			name:     "bad stroke width",
			mutate:   func(d *diagram.Document) { d.Connectors[0].StrokeWidth = "1in" },
			wantCode: errors.ErrCodeInvalidQuantity,
		},
		{
			name:     "bad anchor",
			mutate:   func(d *diagram.Document) { d.Shapes[0].Anchor = "bottom" },
			wantCode: errors.ErrCodeInvalidDocument,
		},
		{
			name: "bad point",
			mutate: func(d *diagram.Document) {
				d.Connectors[0] = diagram.Connector{ID: "c", Points: []diagram.Point{{X: "0", Y: "0"}, {X: "x", Y: "0"}}}
			},
			wantCode: errors.ErrCodeInvalidQuantity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := sampleDoc()
			tt.mutate(doc)
			got, err := Compile(doc, Options{})
			if !errors.Is(err, tt.wantCode) {
				t.Fatalf("Compile() error = %v, want code %s", err, tt.wantCode)
			}
			if n := strings.Count(err.Error(), string(tt.wantCode)); n != 1 {
				t.Errorf("Compile() error = %q, code appears %d times", err, n)
			}
			if got != nil {
				t.Error("Compile() returned a scene on error")
			}
		})
	}
}

func TestCompileWarnings(t *testing.T) {
	doc := sampleDoc()
	doc.Shapes[0].Fill = "#FF0000-oops"
	doc.Connectors[0].Pattern = "wiggly"
	doc.Connectors[0].Arrow = "harpoon"

	got, err := Compile(doc, Options{})
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if len(got.Warnings) != 4 {
		t.Fatalf("got %d warnings, want 4: %v", len(got.Warnings), got.Warnings)
	}
	for _, w := range got.Warnings {
		if w.Code != errors.ErrCodeStyleFallback {
			t.Errorf("warning code = %s", w.Code)
		}
	}
	fill := got.Ops[1].(scene.SetFillStyle)
	if fill.Fill != scene.FillSolid || fill.Color != (units.Color{R: 255}) {
		t.Errorf("fallback fill = %+v", fill)
	}
}

func TestCompileZOrderStable(t *testing.T) {
	doc := &diagram.Document{
		Shapes: []diagram.Shape{
			{ID: "a", Width: "1", Height: "1", ZIndex: 5},
			{ID: "b", Width: "1", Height: "1"},
			{ID: "c", Width: "1", Height: "1", ZIndex: 5},
			{ID: "d", Width: "1", Height: "1"},
		},
	}
	got, err := Compile(doc, Options{})
	if err != nil {
		t.Fatal(err)
	}
	var order []string
	for _, op := range got.Ops {
		if z, ok := op.(scene.SetZOrder); ok {
			order = append(order, z.Target)
		}
	}
	if diff := cmp.Diff([]string{"b", "d", "a", "c"}, order); diff != "" {
		t.Errorf("z-order mismatch (-want +got):\n%s", diff)
	}
}

func TestCompileAutoFitCentered(t *testing.T) {
	doc := &diagram.Document{
		Schema:     diagram.SchemaV2,
		Convention: diagram.SchemaV2.Convention(),
		Page:       diagram.Page{Width: "800", Height: "600"},
		Shapes:     []diagram.Shape{{ID: "n", X: "100px", Y: "100px", Width: "50px", Height: "50px"}},
	}
	got, err := Compile(doc, Options{AutoFit: boolPtr(true)})
	if err != nil {
		t.Fatal(err)
	}
	last, ok := got.Ops[len(got.Ops)-1].(scene.ResizeCanvas)
	if !ok {
		t.Fatalf("last op = %T, want ResizeCanvas", got.Ops[len(got.Ops)-1])
	}
	side := 50.0 / 96
	want := scene.ResizeCanvas{
		Width:  side + 1,
		Height: side + 1,
		Origin: geom.Point{X: 100.0/96 - side/2 - 0.5, Y: 600.0/96 - 100.0/96 - side/2 - 0.5},
	}
	if diff := cmp.Diff(want, last, approx); diff != "" {
		t.Errorf("ResizeCanvas mismatch (-want +got):\n%s", diff)
	}
}

func TestCompileAutoFitOptions(t *testing.T) {
	margin := 0.0
	got, err := Compile(sampleDoc(), Options{Margin: &margin})
	if err != nil {
		t.Fatal(err)
	}
	w, h := got.Canvas()
	if w != 2 || h != 1 {
		t.Errorf("Canvas() = %v x %v, want 2 x 1", w, h)
	}

	got, err = Compile(sampleDoc(), Options{AutoFit: boolPtr(false)})
	if err != nil {
		t.Fatal(err)
	}
	if n := got.Stats()[scene.KindResizeCanvas]; n != 0 {
		t.Errorf("got %d ResizeCanvas ops with auto-fit disabled", n)
	}

	empty := &diagram.Document{Page: diagram.Page{Width: "4in", Height: "3in"}}
	got, err = Compile(empty, Options{AutoFit: boolPtr(true)})
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Ops) != 0 {
		t.Errorf("empty document compiled to %d ops", len(got.Ops))
	}
	if w, h := got.Canvas(); w != 4 || h != 3 {
		t.Errorf("Canvas() = %v x %v, want configured 4 x 3", w, h)
	}
}

func TestCompileConventionOverride(t *testing.T) {
	doc := &diagram.Document{
		Page:   diagram.Page{Height: "10in"},
		Shapes: []diagram.Shape{{ID: "a", X: "1in", Y: "2in", Width: "1in", Height: "1in"}},
	}
	center, up := geom.AnchorCenter, geom.YUp
	got, err := Compile(doc, Options{Anchor: &center, YAxis: &up})
	if err != nil {
		t.Fatal(err)
	}
	rect := got.Ops[0].(scene.CreateRectangle).Rect
	want := geom.RectFromCenter(1, 2, 1, 1)
	if diff := cmp.Diff(want, rect, approx); diff != "" {
		t.Errorf("rect mismatch (-want +got):\n%s", diff)
	}
}

func TestCompilePartialConventionOverride(t *testing.T) {
	doc := &diagram.Document{
		Page:       diagram.Page{Height: "10in"},
		Convention: geom.Convention{Anchor: geom.AnchorTopLeft, YAxis: geom.YUp},
		Shapes:     []diagram.Shape{{ID: "a", X: "1in", Y: "2in", Width: "1in", Height: "1in"}},
	}
	center := geom.AnchorCenter
	got, err := Compile(doc, Options{Anchor: &center})
	if err != nil {
		t.Fatal(err)
	}
	// y-up keeps y = 2; a reset to y-down would give 10 - 2 = 8.
	want := geom.RectFromCenter(1, 2, 1, 1)
	rect := got.Ops[0].(scene.CreateRectangle).Rect
	if diff := cmp.Diff(want, rect, approx); diff != "" {
		t.Errorf("document y axis should survive an anchor override (-want +got):\n%s", diff)
	}
}

func TestCompileRotationAndPoints(t *testing.T) {
	doc := &diagram.Document{
		Page:   diagram.Page{Height: "10in"},
		Shapes: []diagram.Shape{{ID: "a", Width: "1in", Height: "1in", Rotation: 3.141592653589793}},
		Connectors: []diagram.Connector{
			{ID: "p", Points: []diagram.Point{{X: "0", Y: "0"}, {X: "1in", Y: "1in"}}, Text: "edge", TextHidden: true},
		},
	}
	got, err := Compile(doc, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if rot := got.Ops[0].(scene.CreateRectangle).RotationDeg; rot < 179.999 || rot > 180.001 {
		t.Errorf("RotationDeg = %v, want 180", rot)
	}
	var poly scene.CreatePolyline
	var label scene.SetTextLabel
	for _, op := range got.Ops {
		switch o := op.(type) {
		case scene.CreatePolyline:
			poly = o
		case scene.SetTextLabel:
			label = o
		}
	}
	wantPts := []geom.Point{{X: 0, Y: 10}, {X: 1, Y: 9}}
	if diff := cmp.Diff(wantPts, poly.Points, approx); diff != "" {
		t.Errorf("points mismatch (-want +got):\n%s", diff)
	}
	if label.Target != "p" || label.Transparency != style.Invisible {
		t.Errorf("label = %+v", label)
	}
}

func TestCompilerStates(t *testing.T) {
	c, err := New(sampleDoc(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if c.State() != StateEmpty {
		t.Fatalf("State() = %v", c.State())
	}
	if err := c.EmitConnectors(); !errors.Is(err, errors.ErrCodeInternal) {
		t.Errorf("EmitConnectors() before shapes: error = %v, want INTERNAL_ERROR", err)
	}
	if _, err := c.Finish(); !errors.Is(err, errors.ErrCodeInternal) {
		t.Errorf("Finish() before connectors: error = %v, want INTERNAL_ERROR", err)
	}
	if err := c.EmitShapes(); err != nil {
		t.Fatal(err)
	}
	if err := c.EmitShapes(); !errors.Is(err, errors.ErrCodeInternal) {
		t.Errorf("second EmitShapes(): error = %v", err)
	}
	if err := c.EmitConnectors(); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Finish(); err != nil {
		t.Fatal(err)
	}
	if c.State() != StateCompiled {
		t.Errorf("State() = %v, want compiled", c.State())
	}
}

func TestCompileNil(t *testing.T) {
	if _, err := Compile(nil, Options{}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Compile(nil) error = %v", err)
	}
}
