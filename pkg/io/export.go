package io

import (
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/drawspec/pkg/scene"
)

// WriteScene encodes a compiled scene as indented JSON and writes it to w.
// The output can be re-read with [ReadScene].
func WriteScene(s *scene.Scene, w io.Writer) error {
	data, err := scene.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// ExportScene writes a compiled scene to a JSON file at path.
func ExportScene(s *scene.Scene, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteScene(s, f)
}

// ReadScene decodes a scene previously written by [WriteScene].
func ReadScene(r io.Reader) (*scene.Scene, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return scene.Unmarshal(data)
}
