package render

import (
	"context"
	"fmt"

	"github.com/matzehuels/drawspec/pkg/errors"
	"github.com/matzehuels/drawspec/pkg/scene"
)

// Backend receives primitive operations. Implementations are not expected
// to be safe for concurrent use.
type Backend interface {
	CreatePage(p scene.Page) error
	CreateRectangle(op scene.CreateRectangle) error
	CreatePolyline(op scene.CreatePolyline) error
	SetTextLabel(op scene.SetTextLabel) error
	SetFillStyle(op scene.SetFillStyle) error
	SetStrokeStyle(op scene.SetStrokeStyle) error
	SetZOrder(op scene.SetZOrder) error
	ResizeCanvas(op scene.ResizeCanvas) error
}

// Replay creates the page and applies every op of s to b in order.
// It stops at the first backend error or when ctx is done.
func Replay(ctx context.Context, b Backend, s *scene.Scene) error {
	if s == nil {
		return errors.New(errors.ErrCodeInvalidInput, "nil scene")
	}
	if err := b.CreatePage(s.Page); err != nil {
		return fmt.Errorf("create page: %w", err)
	}
	for i, op := range s.Ops {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := Apply(b, op); err != nil {
			return fmt.Errorf("op %d (%s): %w", i, op.Kind(), err)
		}
	}
	return nil
}

// Apply dispatches a single op to the matching backend method.
func Apply(b Backend, op scene.Op) error {
	switch o := op.(type) {
	case scene.CreateRectangle:
		return b.CreateRectangle(o)
	case scene.CreatePolyline:
		return b.CreatePolyline(o)
	case scene.SetTextLabel:
		return b.SetTextLabel(o)
	case scene.SetFillStyle:
		return b.SetFillStyle(o)
	case scene.SetStrokeStyle:
		return b.SetStrokeStyle(o)
	case scene.SetZOrder:
		return b.SetZOrder(o)
	case scene.ResizeCanvas:
		return b.ResizeCanvas(o)
	default:
		return errors.New(errors.ErrCodeUnsupported, "unsupported op %T", op)
	}
}

// Build replays s into a new [Page].
func Build(ctx context.Context, s *scene.Scene) (*Page, error) {
	p := NewPage()
	if err := Replay(ctx, p, s); err != nil {
		return nil, err
	}
	return p, nil
}
