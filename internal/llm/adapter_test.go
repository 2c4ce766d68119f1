package llm

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"modelguard/internal/modelpath"
)

type mockAdapter struct{ mock.Mock }

func (m *mockAdapter) Load(path string) (Model, error) {
	args := m.Called(path)
	if mdl, ok := args.Get(0).(Model); ok {
		return mdl, args.Error(1)
	}
	return nil, args.Error(1)
}

type fakeModel struct{ closed bool }

func (f *fakeModel) Close() error { f.closed = true; return nil }

func TestGate_MissingPathSkipsAdapter(t *testing.T) {
	a := new(mockAdapter)
	p := filepath.Join(t.TempDir(), "missing.gguf")

	m, err := Gate(a, modelpath.Location{Path: p})
	assert.Nil(t, m)
	require.Error(t, err)
	assert.True(t, modelpath.IsConfigurationError(err))
	assert.Contains(t, err.Error(), p)
	a.AssertNotCalled(t, "Load", mock.Anything)
}

func TestGate_ExistingPathDelegates(t *testing.T) {
	p := filepath.Join(t.TempDir(), "m.gguf")
	require.NoError(t, os.WriteFile(p, []byte("GGUF"), 0o644))

	fm := &fakeModel{}
	a := new(mockAdapter)
	a.On("Load", p).Return(fm, nil).Once()

	m, err := Gate(a, modelpath.Location{Path: p})
	require.NoError(t, err)
	assert.Same(t, fm, m)
	require.NoError(t, m.Close())
	assert.True(t, fm.closed)
	a.AssertExpectations(t)
}

func TestGate_AdapterErrorPropagates(t *testing.T) {
	p := filepath.Join(t.TempDir(), "m.gguf")
	require.NoError(t, os.WriteFile(p, []byte("GGUF"), 0o644))
	boom := errors.New("bad magic")
	a := new(mockAdapter)
	a.On("Load", p).Return(nil, boom)

	_, err := Gate(a, modelpath.Location{Path: p})
	assert.ErrorIs(t, err, boom)
	assert.False(t, modelpath.IsConfigurationError(err))
}

func TestIsDependencyUnavailable(t *testing.T) {
	assert.True(t, IsDependencyUnavailable(ErrDependencyUnavailable("x")))
	assert.False(t, IsDependencyUnavailable(errors.New("x")))
	assert.True(t, IsDependencyUnavailable(fmt.Errorf("load: %w", ErrDependencyUnavailable("x"))))
}
