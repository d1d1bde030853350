package cache

import "fmt"

// Keyer derives cache keys.
type Keyer interface {
	// ArtifactKey returns the key for one rendered format of a configuration.
	ArtifactKey(configHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render options that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format      string `json:"format"`
	ClassPrefix string `json:"class_prefix,omitempty"`
	Animation   bool   `json:"animation,omitempty"`
	Template    string `json:"template,omitempty"` // hash of a custom HTML template
}

// DefaultKeyer produces keys of the form "artifact:<format>:<hash>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(configHash string, opts ArtifactKeyOpts) string {
	return hashKey(fmt.Sprintf("artifact:%s", opts.Format), configHash, opts)
}
