package cache

// Keyer derives cache keys.
type Keyer interface {
	SceneKey(docHash string, opts SceneKeyOpts) string
	ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string
}

// SceneKeyOpts are the compile options that change a scene.
type SceneKeyOpts struct {
	Margin     *float64 `json:"margin,omitempty"`
	AutoFit    *bool    `json:"auto_fit,omitempty"`
	Anchor     string   `json:"anchor,omitempty"`
	YAxis      string   `json:"y_axis,omitempty"`
}

// ArtifactKeyOpts are the render options that change an artifact.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Scale  float64 `json:"scale,omitempty"`
	Title  bool    `json:"title,omitempty"`
	RSVG   bool    `json:"rsvg,omitempty"`
}

// DefaultKeyer hashes the content hash together with the options.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// SceneKey returns "scene:<hash>".
func (DefaultKeyer) SceneKey(docHash string, opts SceneKeyOpts) string {
	return hashKey("scene", docHash, opts)
}

// ArtifactKey returns "artifact:<hash>".
func (DefaultKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", sceneHash, opts)
}
