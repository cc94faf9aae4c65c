package sink

import (
	"fmt"

	"github.com/matzehuels/drawspec/pkg/scene"
)

// RenderJSON encodes the compiled op stream as indented JSON.
func RenderJSON(s *scene.Scene) ([]byte, error) {
	data, err := scene.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode scene: %w", err)
	}
	return data, nil
}
