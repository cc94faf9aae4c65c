package scene

import (
	"github.com/matzehuels/drawspec/pkg/errors"
	"github.com/matzehuels/drawspec/pkg/units"
)

// Page is the page geometry the adapter creates before replaying ops.
type Page struct {
	Name       string       `json:"name,omitempty"`
	Width      float64      `json:"width"`
	Height     float64      `json:"height"`
	Background *units.Color `json:"background,omitempty"`
}

// Scene is a compiled diagram.
type Scene struct {
	Page     Page             `json:"page"`
	Ops      []Op             `json:"ops"`
	Warnings []errors.Warning `json:"warnings,omitempty"`
}

// Stats counts operations per kind.
func (s *Scene) Stats() map[Kind]int {
	out := make(map[Kind]int, len(Kinds))
	for _, op := range s.Ops {
		out[op.Kind()]++
	}
	return out
}

// Shapes returns the IDs of created rectangles in creation order.
func (s *Scene) Shapes() []string {
	var ids []string
	for _, op := range s.Ops {
		if r, ok := op.(CreateRectangle); ok {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

// Canvas returns the final page size, taking a trailing ResizeCanvas into
// account.
func (s *Scene) Canvas() (w, h float64) {
	w, h = s.Page.Width, s.Page.Height
	for _, op := range s.Ops {
		if rc, ok := op.(ResizeCanvas); ok {
			w, h = rc.Width, rc.Height
		}
	}
	return w, h
}
