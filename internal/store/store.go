package store

import (
	"errors"
	"io/fs"
	"os"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/flintbrowser/flint/internal/config"
	"github.com/flintbrowser/flint/internal/logging"
)

// Bookmark is one saved page: a title and the URL it opens.
type Bookmark struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Session is the ordered set of tab URLs open when the application last
// closed.
type Session struct {
	Tabs []string `json:"tabs"`
}

// Store reads and writes the persisted documents.
type Store struct {
	cfg *config.Config
	log *logging.Logger
}

// New creates a Store and makes sure the data directory exists.
func New(cfg *config.Config, log *logging.Logger) (*Store, error) {
	if err := cfg.EnsureDataDir(); err != nil {
		return nil, err
	}
	return &Store{cfg: cfg, log: log.Named("store")}, nil
}

// LoadBookmarks returns the saved bookmark list, or an empty list when the
// document is missing or unreadable.
func (s *Store) LoadBookmarks() []Bookmark {
	var list []Bookmark
	if !s.loadJSON(s.cfg.BookmarksPath(), &list) {
		return nil
	}
	return list
}

// SaveBookmarks overwrites the bookmark document.
func (s *Store) SaveBookmarks(list []Bookmark) {
	if list == nil {
		// nil marshals to null; the document is defined as an array.
		list = []Bookmark{}
	}
	s.saveJSON(s.cfg.BookmarksPath(), list)
}

// LoadSession returns the last session snapshot, or an empty snapshot when
// none was saved.
func (s *Store) LoadSession() Session {
	var snap Session
	if !s.loadJSON(s.cfg.SessionPath(), &snap) {
		return Session{}
	}
	return snap
}

// SaveSession overwrites the session document unconditionally.
func (s *Store) SaveSession(snap Session) {
	if snap.Tabs == nil {
		snap.Tabs = []string{}
	}
	s.saveJSON(s.cfg.SessionPath(), snap)
}

// LoadUserCSS returns the user stylesheet text. The second return is false
// when no stylesheet file exists.
func (s *Store) LoadUserCSS() (string, bool) {
	data, err := os.ReadFile(s.cfg.UserCSSPath())
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.Debug("user stylesheet unreadable", zap.Error(err))
		}
		return "", false
	}
	return string(data), true
}

// SaveUserCSS overwrites the user stylesheet file.
func (s *Store) SaveUserCSS(css string) {
	if err := os.WriteFile(s.cfg.UserCSSPath(), []byte(css), 0o644); err != nil {
		s.log.Warn("failed to save user stylesheet", zap.Error(err))
	}
}

// loadJSON decodes path into v, reporting whether a document was decoded.
func (s *Store) loadJSON(path string, v any) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.Debug("document unreadable, using defaults",
				zap.String("path", path), zap.Error(err))
		}
		return false
	}
	if err := sonic.Unmarshal(data, v); err != nil {
		s.log.Debug("document malformed, using defaults",
			zap.String("path", path), zap.Error(err))
		return false
	}
	return true
}

// saveJSON overwrites path with an indented encoding of v.
func (s *Store) saveJSON(path string, v any) {
	data, err := sonic.MarshalIndent(v, "", "  ")
	if err != nil {
		s.log.Warn("failed to encode document", zap.String("path", path), zap.Error(err))
		return
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		s.log.Warn("failed to write document", zap.String("path", path), zap.Error(err))
	}
}
