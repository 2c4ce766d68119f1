// Package watch re-runs the model path check whenever the model's directory
// or the config file changes.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"modelguard/internal/modelpath"
)

const defaultDebounce = 500 * time.Millisecond

// Options configures a Watcher.
type Options struct {
	ModelPath string

	// ConfigFile, when set, is watched too. A change to it calls Resolve to
	// obtain the new model path.
	ConfigFile string
	Resolve    func() (string, error)
	Debounce   time.Duration

	// OnResult is called after every check, including the initial one.
	OnResult func(modelpath.Result)
	Logger   zerolog.Logger
}

// Watcher tracks the latest check outcome for a model path.
type Watcher struct {
	opts   Options
	mu     sync.RWMutex
	path   string
	latest modelpath.Result
	checks atomic.Uint32
}

// New runs the initial check and returns a Watcher ready to Run.
func New(opts Options) *Watcher {
	if opts.Debounce <= 0 {
		opts.Debounce = defaultDebounce
	}
	w := &Watcher{opts: opts, path: opts.ModelPath}
	w.check()
	return w
}

// Latest returns the outcome of the most recent check.
func (w *Watcher) Latest() modelpath.Result {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.latest
}

// Checks returns how many checks have run.
func (w *Watcher) Checks() uint32 { return w.checks.Load() }

// Path returns the model path currently being watched.
func (w *Watcher) Path() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.path
}

// Run watches until ctx is done. It fails if the model's directory (or the
// config file's directory) cannot be watched at startup. A watched directory
// that is later removed or renamed is watched again once it reappears.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer fw.Close()

	dirs := newDirSet(fw)
	if err := dirs.track(filepath.Dir(w.Path())); err != nil {
		return err
	}
	cfgFile, cfgDir := "", ""
	if w.opts.ConfigFile != "" {
		cfgFile = filepath.Clean(w.opts.ConfigFile)
		cfgDir = filepath.Dir(cfgFile)
		if err := dirs.track(cfgDir); err != nil {
			return err
		}
	}

	var (
		timer    *time.Timer
		timerC   <-chan time.Time
		cfgDirty bool
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			name := filepath.Clean(ev.Name)
			isCfg := cfgFile != "" && name == cfgFile
			relevant := isCfg || name == filepath.Clean(w.Path())

			if (ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename)) && dirs.watched[name] {
				dirs.lost(name)
				w.opts.Logger.Warn().Str("dir", name).Msg("watched directory went away; waiting for it to reappear")
				relevant = true
			}
			if dirs.waiting() && (relevant || ev.Has(fsnotify.Create)) {
				restored, err := dirs.rearm()
				if err != nil {
					w.opts.Logger.Error().Err(err).Msg("re-arming directory watch failed")
				}
				for _, d := range restored {
					w.opts.Logger.Info().Str("dir", d).Msg("watching directory again")
					relevant = true
					isCfg = isCfg || d == cfgDir
				}
			}
			if !relevant {
				continue
			}
			w.opts.Logger.Debug().Str("event", ev.Op.String()).Str("name", ev.Name).Msg("watch event")
			cfgDirty = cfgDirty || isCfg
			if timer == nil {
				timer = time.NewTimer(w.opts.Debounce)
			} else {
				timer.Reset(w.opts.Debounce)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			if cfgDirty && w.opts.Resolve != nil {
				cfgDirty = false
				if err := w.reresolve(dirs); err != nil {
					w.opts.Logger.Error().Err(err).Str("config", cfgFile).Msg("config reload failed; keeping previous model path")
				}
			}
			w.check()

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.opts.Logger.Error().Err(err).Msg("watcher error")
		}
	}
}

func (w *Watcher) reresolve(dirs *dirSet) error {
	p, err := w.opts.Resolve()
	if err != nil {
		return err
	}
	if p == w.Path() {
		return nil
	}
	if _, err := dirs.arm(filepath.Dir(p)); err != nil {
		return err
	}
	w.opts.Logger.Info().Str("old", w.Path()).Str("new", p).Msg("model path changed")
	w.mu.Lock()
	w.path = p
	w.mu.Unlock()
	return nil
}

func (w *Watcher) check() {
	r := modelpath.Check(w.Path())
	w.checks.Add(1)
	w.mu.Lock()
	w.latest = r
	w.mu.Unlock()
	if w.opts.OnResult != nil {
		w.opts.OnResult(r)
	}
}
