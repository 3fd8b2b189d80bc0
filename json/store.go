package json

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fwojciec/eventchat"
)

// Interface compliance check.
var _ eventchat.SessionStore = (*Store)(nil)

const sessionPattern = "*.json"

// Store keeps one file per session in a directory.
type Store struct {
	Dir    string
	Logger *slog.Logger
}

// Path returns the file path for session id.
func (s *Store) Path(id string) string {
	return filepath.Join(s.Dir, id+".json")
}

// Save writes sess to its file.
func (s *Store) Save(sess eventchat.Session) error {
	if sess.ID == "" {
		return fmt.Errorf("save session: %w", eventchat.ErrValidation)
	}
	return Save(s.Path(sess.ID), sess)
}

// List returns every readable session, most recently updated first.
// Unreadable files are skipped and logged.
func (s *Store) List() ([]eventchat.Session, error) {
	paths, err := s.glob()
	if err != nil {
		return nil, err
	}
	sessions := make([]eventchat.Session, 0, len(paths))
	for _, p := range paths {
		sess, err := Load(p)
		if err != nil {
			s.logger().Warn("skipping session file", "path", p, "err", err)
			continue
		}
		sessions = append(sessions, sess)
	}
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].UpdatedAt.After(sessions[j].UpdatedAt)
	})
	return sessions, nil
}

// Latest returns the most recently updated session that has not expired.
func (s *Store) Latest(now time.Time) (eventchat.Session, bool, error) {
	sessions, err := s.List()
	if err != nil {
		return eventchat.Session{}, false, err
	}
	for _, sess := range sessions {
		if !sess.Expired(now) {
			return sess, true, nil
		}
	}
	return eventchat.Session{}, false, nil
}

// Prune deletes sessions that have expired at now and returns how many were
// removed.
func (s *Store) Prune(now time.Time) (int, error) {
	paths, err := s.glob()
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, p := range paths {
		sess, err := Load(p)
		if err != nil {
			s.logger().Warn("skipping session file", "path", p, "err", err)
			continue
		}
		if !sess.Expired(now) {
			continue
		}
		if err := os.Remove(p); err != nil {
			return removed, fmt.Errorf("remove %s: %w", p, err)
		}
		s.logger().Debug("pruned session", "id", sess.ID, "updated_at", sess.UpdatedAt)
		removed++
	}
	return removed, nil
}

func (s *Store) glob() ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(s.Dir), sessionPattern)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	paths := make([]string, len(matches))
	for i, m := range matches {
		paths[i] = filepath.Join(s.Dir, filepath.FromSlash(m))
	}
	return paths, nil
}

func (s *Store) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.New(slog.DiscardHandler)
}
