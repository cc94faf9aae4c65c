package io

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/matzehuels/drawspec/pkg/diagram"
)

type conventionSpec struct {
	Anchor string `json:"anchor" toml:"anchor"`
	YAxis  string `json:"yAxis" toml:"y_axis"`
}

type pageSpec struct {
	Name       string        `json:"name" toml:"name"`
	Width      diagram.Value `json:"width" toml:"width"`
	Height     diagram.Value `json:"height" toml:"height"`
	Background string        `json:"background" toml:"background"`
	AutoFit    *bool         `json:"autoFit" toml:"auto_fit"`
	Margin     diagram.Value `json:"margin" toml:"margin"`
}

// flowSpec is the v2 page block.
type flowSpec struct {
	Name            string        `json:"name"`
	Width           diagram.Value `json:"width"`
	Height          diagram.Value `json:"height"`
	BackgroundColor string        `json:"backgroundColor"`
	AutoFit         *bool         `json:"autoFit"`
	Margin          diagram.Value `json:"margin"`
}

type labelSpec struct {
	Text       string        `json:"text" toml:"text"`
	TextColor  string        `json:"textColor" toml:"text_color"`
	FontSize   diagram.Value `json:"fontSize" toml:"font_size"`
	TextHidden bool          `json:"textHidden" toml:"text_hidden"`
}

type strokeSpec struct {
	Stroke      string        `json:"stroke" toml:"stroke"`
	StrokeWidth diagram.Value `json:"strokeWidth" toml:"stroke_width"`
	Dashed      bool          `json:"dashed" toml:"dashed"`
	Pattern     string        `json:"pattern" toml:"pattern"`
	LineStyle   string        `json:"line_style" toml:"line_style"`
}

func (s strokeSpec) pattern() string {
	if s.Pattern != "" {
		return s.Pattern
	}
	return s.LineStyle
}

type shapeSpec struct {
	ID       string        `json:"id" toml:"id"`
	Type     string        `json:"type" toml:"type"`
	X        diagram.Value `json:"x" toml:"x"`
	Y        diagram.Value `json:"y" toml:"y"`
	Width    diagram.Value `json:"width" toml:"width"`
	Height   diagram.Value `json:"height" toml:"height"`
	ZIndex   int           `json:"zIndex" toml:"z_index"`
	Rotation float64       `json:"rotation" toml:"rotation"`
	Anchor   string        `json:"anchor" toml:"anchor"`
	Fill     string        `json:"fill" toml:"fill"`
	labelSpec
	strokeSpec
}

func (s shapeSpec) shape() diagram.Shape {
	return diagram.Shape{
		ID:          s.ID,
		Type:        s.Type,
		X:           s.X,
		Y:           s.Y,
		Width:       s.Width,
		Height:      s.Height,
		ZIndex:      s.ZIndex,
		Rotation:    s.Rotation,
		Anchor:      s.Anchor,
		Text:        s.Text,
		TextColor:   s.TextColor,
		FontSize:    s.FontSize,
		TextHidden:  s.TextHidden,
		Fill:        s.Fill,
		Stroke:      s.Stroke,
		StrokeWidth: s.StrokeWidth,
		Dashed:      s.Dashed,
		Pattern:     s.pattern(),
	}
}

// pointSpec accepts {"x": .., "y": ..} or a two element array.
type pointSpec struct {
	X diagram.Value `json:"x" toml:"x"`
	Y diagram.Value `json:"y" toml:"y"`
}

func (p *pointSpec) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		var xy []diagram.Value
		if err := json.Unmarshal(b, &xy); err != nil {
			return err
		}
		if len(xy) != 2 {
			return fmt.Errorf("point must have 2 coordinates, got %d", len(xy))
		}
		p.X, p.Y = xy[0], xy[1]
		return nil
	}
	type plain pointSpec
	return json.Unmarshal(b, (*plain)(p))
}

// connectorSpec accepts the endpoint spellings found in both schemas.
type connectorSpec struct {
	ID        string      `json:"id" toml:"id"`
	From      string      `json:"from" toml:"from"`
	To        string      `json:"to" toml:"to"`
	FromShape string      `json:"from_shape" toml:"from_shape"`
	ToShape   string      `json:"to_shape" toml:"to_shape"`
	Source    string      `json:"source" toml:"source"`
	Target    string      `json:"target" toml:"target"`
	Points    []pointSpec `json:"points" toml:"points"`
	Arrow     string      `json:"arrow" toml:"arrow"`
	EndArrow  string      `json:"endArrow" toml:"end_arrow"`
	labelSpec
	strokeSpec
}

func (c connectorSpec) connector() diagram.Connector {
	out := diagram.Connector{
		ID:          c.ID,
		From:        firstOf(c.From, c.FromShape, c.Source),
		To:          firstOf(c.To, c.ToShape, c.Target),
		Stroke:      c.Stroke,
		StrokeWidth: c.StrokeWidth,
		Dashed:      c.Dashed,
		Pattern:     c.pattern(),
		Arrow:       firstOf(c.Arrow, c.EndArrow),
		Text:        c.Text,
		TextColor:   c.TextColor,
		FontSize:    c.FontSize,
		TextHidden:  c.TextHidden,
	}
	for _, p := range c.Points {
		out.Points = append(out.Points, diagram.Point{X: p.X, Y: p.Y})
	}
	return out
}

func firstOf(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// documentV1 is the shapes/connectors layout, shared by JSON and TOML.
type documentV1 struct {
	Page       pageSpec        `json:"page" toml:"page"`
	Convention *conventionSpec `json:"convention" toml:"convention"`
	Shapes     []shapeSpec     `json:"shapes" toml:"shapes"`
	Connectors []connectorSpec `json:"connectors" toml:"connectors"`
}

type documentV2 struct {
	FlowData   flowSpec        `json:"flowData"`
	Convention *conventionSpec `json:"convention"`
	GraphData  struct {
		Nodes []shapeSpec     `json:"nodes"`
		Edges []connectorSpec `json:"edges"`
	} `json:"graphData"`
}
