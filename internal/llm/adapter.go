package llm

import (
	"modelguard/internal/modelpath"
)

// Adapter loads model weights through an inference runtime.
type Adapter interface {
	// Load initializes the runtime with the weights at path.
	Load(path string) (Model, error)
}

// Model is a loaded model owned by the runtime.
type Model interface {
	// Close releases resources associated with the model.
	Close() error
}

// Options tunes the llama adapter. Zero values leave runtime defaults.
type Options struct {
	ContextSize int
	GPULayers   int
}

// Gate validates loc and only then passes its path to a. The adapter is never
// called for a path that fails validation.
func Gate(a Adapter, loc modelpath.Location) (Model, error) {
	if err := loc.Validate(); err != nil {
		return nil, err
	}
	return a.Load(loc.Path)
}
