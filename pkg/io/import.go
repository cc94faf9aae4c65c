package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/drawspec/pkg/diagram"
	"github.com/matzehuels/drawspec/pkg/errors"
	"github.com/matzehuels/drawspec/pkg/geom"
)

// Format is a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatFromPath infers the document format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported document extension %q (must be .json or .toml)", filepath.Ext(path))
}

// Read decodes a document in the given format.
func Read(r io.Reader, f Format) (*diagram.Document, error) {
	switch f {
	case FormatJSON, "":
		return ReadJSON(r)
	case FormatTOML:
		return ReadTOML(r)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported document format %q", f)
}

// ReadJSON decodes a schema v1 or v2 JSON document from r.
//
// The returned document is normalized (connectors without an id get a
// generated one) and structurally validated.
func ReadJSON(r io.Reader) (*diagram.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode json")
	}

	_, hasFlow := keys["flowData"]
	_, hasGraph := keys["graphData"]
	if hasFlow || hasGraph {
		var raw documentV2
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode schema v2")
		}
		return fromV2(raw)
	}

	_, hasShapes := keys["shapes"]
	_, hasConnectors := keys["connectors"]
	_, hasPage := keys["page"]
	if !hasShapes && !hasConnectors && !hasPage {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "document has neither shapes/connectors nor flowData/graphData")
	}
	var raw documentV1
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode schema v1")
	}
	return fromV1(raw)
}

// ReadTOML decodes a schema v1 TOML document from r.
func ReadTOML(r io.Reader) (*diagram.Document, error) {
	var raw documentV1
	if _, err := toml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode toml")
	}
	return fromV1(raw)
}

// ImportDocument reads a document from path, choosing the format by
// extension.
func ImportDocument(path string) (*diagram.Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	doc, err := Read(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

func fromV1(raw documentV1) (*diagram.Document, error) {
	doc := &diagram.Document{
		Schema: diagram.SchemaV1,
		Page: diagram.Page{
			Name:       raw.Page.Name,
			Width:      raw.Page.Width,
			Height:     raw.Page.Height,
			Background: raw.Page.Background,
			AutoFit:    raw.Page.AutoFit,
			Margin:     raw.Page.Margin,
		},
	}
	for _, s := range raw.Shapes {
		doc.Shapes = append(doc.Shapes, s.shape())
	}
	for _, c := range raw.Connectors {
		doc.Connectors = append(doc.Connectors, c.connector())
	}
	return finish(doc, raw.Convention)
}

func fromV2(raw documentV2) (*diagram.Document, error) {
	doc := &diagram.Document{
		Schema: diagram.SchemaV2,
		Page: diagram.Page{
			Name:       raw.FlowData.Name,
			Width:      raw.FlowData.Width,
			Height:     raw.FlowData.Height,
			Background: raw.FlowData.BackgroundColor,
			AutoFit:    raw.FlowData.AutoFit,
			Margin:     raw.FlowData.Margin,
		},
	}
	for _, n := range raw.GraphData.Nodes {
		doc.Shapes = append(doc.Shapes, n.shape())
	}
	for _, e := range raw.GraphData.Edges {
		doc.Connectors = append(doc.Connectors, e.connector())
	}
	return finish(doc, raw.Convention)
}

func finish(doc *diagram.Document, conv *conventionSpec) (*diagram.Document, error) {
	doc.Convention = doc.Schema.Convention()
	if conv != nil {
		if conv.Anchor != "" {
			a, err := geom.ParseAnchor(conv.Anchor)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "convention")
			}
			doc.Convention.Anchor = a
		}
		if conv.YAxis != "" {
			y, err := geom.ParseYAxis(conv.YAxis)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "convention")
			}
			doc.Convention.YAxis = y
		}
	}
	doc.Normalize()
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}
