package modelpath

import (
	"time"

	"modelguard/internal/common/fsutil"
)

// State is the lifecycle of a single check.
type State string

const (
	StateUnchecked State = "unchecked"
	StateOK        State = "checked-ok"
	StateFailed    State = "checked-failed"
)

// Location is the configured path of a model-weights file.
type Location struct {
	Path string
}

// Validate checks l.Path.
func (l Location) Validate() error { return Validate(l.Path) }

// Result is the outcome of one Check.
type Result struct {
	Path      string
	State     State
	Err       error
	CheckedAt time.Time
}

// OK reports whether the check passed.
func (r Result) OK() bool { return r.State == StateOK }

// Validate returns nil when a filesystem entry exists at path and a
// *ConfigurationError naming path otherwise. The empty string never exists.
func Validate(path string) error {
	if path == "" {
		return ErrModelPathMissing(path, nil)
	}
	if ok, err := fsutil.Exists(path); !ok {
		return ErrModelPathMissing(path, err)
	}
	return nil
}

// Check runs Validate and records the outcome.
func Check(path string) Result {
	r := Result{Path: path, State: StateOK, CheckedAt: time.Now()}
	if err := Validate(path); err != nil {
		r.State = StateFailed
		r.Err = err
	}
	return r
}
