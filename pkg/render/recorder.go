package render

import "github.com/matzehuels/drawspec/pkg/scene"

// Recorder is a [Backend] that records everything it receives.
type Recorder struct {
	Page scene.Page
	Ops  []scene.Op
}

func (r *Recorder) CreatePage(p scene.Page) error { r.Page = p; return nil }

func (r *Recorder) CreateRectangle(op scene.CreateRectangle) error { return r.record(op) }
func (r *Recorder) CreatePolyline(op scene.CreatePolyline) error   { return r.record(op) }
func (r *Recorder) SetTextLabel(op scene.SetTextLabel) error       { return r.record(op) }
func (r *Recorder) SetFillStyle(op scene.SetFillStyle) error       { return r.record(op) }
func (r *Recorder) SetStrokeStyle(op scene.SetStrokeStyle) error   { return r.record(op) }
func (r *Recorder) SetZOrder(op scene.SetZOrder) error             { return r.record(op) }
func (r *Recorder) ResizeCanvas(op scene.ResizeCanvas) error       { return r.record(op) }

func (r *Recorder) record(op scene.Op) error {
	r.Ops = append(r.Ops, op)
	return nil
}
