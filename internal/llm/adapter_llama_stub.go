//go:build !llama

package llm

// llamaBuilt indicates this binary was compiled with real llama support.
const llamaBuilt = false

const stubMsg = "llama support not built (missing 'llama' build tag)"

type llamaAdapter struct {
	opts Options
}

// NewLlamaAdapter returns an adapter that refuses to load anything in builds
// without the 'llama' tag.
func NewLlamaAdapter(opts Options) Adapter {
	return &llamaAdapter{opts: opts}
}

func (a *llamaAdapter) Load(path string) (Model, error) {
	return nil, ErrDependencyUnavailable(stubMsg)
}
