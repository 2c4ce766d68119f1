//go:build llama

package llm

import (
	"errors"
	"strings"

	llama "github.com/go-skynet/go-llama.cpp"
)

// llamaBuilt indicates this binary was compiled with real llama support.
const llamaBuilt = true

type llamaAdapter struct {
	opts Options
}

// NewLlamaAdapter returns the go-llama.cpp backed adapter.
func NewLlamaAdapter(opts Options) Adapter {
	return &llamaAdapter{opts: opts}
}

type llamaModel struct {
	model *llama.LLama
}

func (a *llamaAdapter) Load(path string) (Model, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("model path is empty")
	}
	var mo []llama.ModelOption
	if a.opts.ContextSize > 0 {
		mo = append(mo, llama.SetContext(a.opts.ContextSize))
	}
	if a.opts.GPULayers > 0 {
		mo = append(mo, llama.SetGPULayers(a.opts.GPULayers))
	}
	m, err := llama.New(path, mo...)
	if err != nil {
		return nil, err
	}
	return &llamaModel{model: m}, nil
}

func (m *llamaModel) Close() error {
	if m.model != nil {
		m.model.Free()
		m.model = nil
	}
	return nil
}
