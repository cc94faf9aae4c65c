package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/drawspec/pkg/render/sink"
	"github.com/matzehuels/drawspec/pkg/scene"
)

// Render generates output artifacts in the given formats without caching.
func Render(ctx context.Context, s *scene.Scene, formats []string, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(formats))
	for _, format := range formats {
		data, err := sink.Render(ctx, s, format, opts.SinkOptions())
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
