package watch

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"modelguard/internal/common/fsutil"
)

// dirSet tracks the directories registered with an fsnotify watcher. Each
// target directory has an anchor: the target itself while it exists,
// otherwise its nearest existing ancestor.
type dirSet struct {
	fw      *fsnotify.Watcher
	watched map[string]bool
	anchors map[string]string
}

func newDirSet(fw *fsnotify.Watcher) *dirSet {
	return &dirSet{fw: fw, watched: map[string]bool{}, anchors: map[string]string{}}
}

func (s *dirSet) add(dir string) error {
	if s.watched[dir] {
		return nil
	}
	if err := s.fw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	s.watched[dir] = true
	return nil
}

func (s *dirSet) drop(dir string) {
	// the kernel may already have removed the watch
	_ = s.fw.Remove(dir)
	delete(s.watched, dir)
}

func (s *dirSet) inUse(dir string) bool {
	for _, a := range s.anchors {
		if a == dir {
			return true
		}
	}
	return false
}

func (s *dirSet) setAnchor(target, dir string) {
	old := s.anchors[target]
	s.anchors[target] = dir
	if old != "" && old != dir && !s.inUse(old) {
		s.drop(old)
	}
}

// track watches target, which must exist.
func (s *dirSet) track(target string) error {
	if err := s.add(target); err != nil {
		return err
	}
	s.setAnchor(target, target)
	return nil
}

// arm watches target, or its nearest existing ancestor when target is gone.
// It descends one level at a time after each watch is in place, so a
// directory created in between is not missed. It reports whether target
// itself is now watched.
func (s *dirSet) arm(target string) (bool, error) {
	d := target
	for !fsutil.PathExists(d) && d != filepath.Dir(d) {
		d = filepath.Dir(d)
	}
	for {
		if err := s.add(d); err != nil {
			if fsutil.PathExists(d) || d == filepath.Dir(d) {
				return false, err
			}
			// removed since the stat
			d = filepath.Dir(d)
			continue
		}
		s.setAnchor(target, d)
		if d == target {
			return true, nil
		}
		next := childToward(d, target)
		if !fsutil.PathExists(next) {
			return false, nil
		}
		d = next
	}
}

// lost records that a watched directory was removed or renamed. It reports
// whether any target was anchored there.
func (s *dirSet) lost(dir string) bool {
	hit := false
	for t, a := range s.anchors {
		if a == dir {
			s.anchors[t] = ""
			hit = true
		}
	}
	s.drop(dir)
	return hit
}

// waiting reports whether some target is not watched directly.
func (s *dirSet) waiting() bool {
	for t, a := range s.anchors {
		if a != t {
			return true
		}
	}
	return false
}

// rearm retries every target that is not watched directly and returns the
// ones that are watched again.
func (s *dirSet) rearm() ([]string, error) {
	var restored []string
	var firstErr error
	for t, a := range s.anchors {
		if a == t {
			continue
		}
		ok, err := s.arm(t)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		if ok {
			restored = append(restored, t)
		}
	}
	return restored, firstErr
}

func childToward(dir, target string) string {
	rel, err := filepath.Rel(dir, target)
	if err != nil {
		return target
	}
	first, _, _ := strings.Cut(rel, string(filepath.Separator))
	return filepath.Join(dir, first)
}
