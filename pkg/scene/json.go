package scene

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/drawspec/pkg/errors"
)

type envelope struct {
	Op   Kind            `json:"op"`
	Data json.RawMessage `json:"data"`
}

type wireScene struct {
	Page     Page            `json:"page"`
	Ops      []envelope      `json:"ops"`
	Warnings []errors.Warning `json:"warnings,omitempty"`
}

// MarshalJSON encodes ops as {"op": kind, "data": {...}} envelopes.
func (s Scene) MarshalJSON() ([]byte, error) {
	w := wireScene{Page: s.Page, Ops: make([]envelope, len(s.Ops)), Warnings: s.Warnings}
	for i, op := range s.Ops {
		data, err := json.Marshal(op)
		if err != nil {
			return nil, fmt.Errorf("op %d: %w", i, err)
		}
		w.Ops[i] = envelope{Op: op.Kind(), Data: data}
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes the envelope format written by MarshalJSON.
func (s *Scene) UnmarshalJSON(b []byte) error {
	var w wireScene
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	s.Page = w.Page
	s.Ops = make([]Op, len(w.Ops))
	for i, e := range w.Ops {
		op, err := decodeOp(e)
		if err != nil {
			return fmt.Errorf("op %d: %w", i, err)
		}
		s.Ops[i] = op
	}
	s.Warnings = w.Warnings
	return nil
}

func decodeOp(e envelope) (Op, error) {
	switch e.Op {
	case KindCreateRectangle:
		return decodeAs[CreateRectangle](e.Data)
	case KindCreatePolyline:
		return decodeAs[CreatePolyline](e.Data)
	case KindSetTextLabel:
		return decodeAs[SetTextLabel](e.Data)
	case KindSetFillStyle:
		return decodeAs[SetFillStyle](e.Data)
	case KindSetStrokeStyle:
		return decodeAs[SetStrokeStyle](e.Data)
	case KindSetZOrder:
		return decodeAs[SetZOrder](e.Data)
	case KindResizeCanvas:
		return decodeAs[ResizeCanvas](e.Data)
	default:
		return nil, fmt.Errorf("unknown op %q", e.Op)
	}
}

func decodeAs[T Op](data []byte) (Op, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// Marshal encodes s as indented JSON.
func Marshal(s *Scene) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// Unmarshal decodes a scene written by [Marshal].
func Unmarshal(data []byte) (*Scene, error) {
	var s Scene
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
