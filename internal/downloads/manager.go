// Package downloads routes engine download requests through a save dialog
// and tracks transfer progress for the downloads panel.
package downloads

import (
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/flintbrowser/flint/internal/engine"
	"github.com/flintbrowser/flint/internal/logging"
)

// PathChooser asks the user where to save a download. ok is false when the
// dialog was dismissed.
type PathChooser interface {
	ChooseSavePath(suggested string) (path string, ok bool)
}

// Panel renders download progress rows.
type Panel interface {
	Show()
	Add(id, label string)
	Update(id, label string)
}

// State is a download's lifecycle stage.
type State int

const (
	StateActive State = iota
	StateDone
	StateFailed
)

// Entry is one tracked download.
type Entry struct {
	ID        string
	Path      string
	Suggested string
	State     State
	Kind      string
}

// Manager accepts or cancels download requests and keeps the panel current.
type Manager struct {
	chooser PathChooser
	panel   Panel
	log     *logging.Logger

	order   []string
	entries map[string]*Entry
}

// NewManager returns a download manager over the given dialog and panel.
func NewManager(chooser PathChooser, panel Panel, log *logging.Logger) *Manager {
	return &Manager{
		chooser: chooser,
		panel:   panel,
		log:     log.Named("downloads"),
		entries: map[string]*Entry{},
	}
}

// HandleRequest services one engine download request: prompt for a
// destination, cancel the transfer if the dialog is dismissed, otherwise
// accept it and track it to completion.
func (m *Manager) HandleRequest(d engine.Download) {
	suggested := d.SuggestedFilename()
	if suggested == "" {
		suggested = "download"
	}

	path, ok := m.chooser.ChooseSavePath(suggested)
	if !ok {
		d.Cancel()
		m.log.Debug("download dismissed", zap.String("suggested", suggested))
		return
	}

	if err := d.AcceptTo(path); err != nil {
		m.log.Warn("download could not start",
			zap.String("path", path),
			zap.Error(err))
		return
	}

	entry := &Entry{
		ID:        uuid.NewString(),
		Path:      path,
		Suggested: suggested,
		State:     StateActive,
	}
	m.order = append(m.order, entry.ID)
	m.entries[entry.ID] = entry

	m.panel.Show()
	m.panel.Add(entry.ID, "Downloading: "+filepath.Base(path))
	d.OnFinished(func(err error) { m.finish(entry, err) })

	m.log.Info("download started", zap.String("path", path))
}

func (m *Manager) finish(entry *Entry, err error) {
	name := filepath.Base(entry.Path)
	if err != nil {
		entry.State = StateFailed
		m.panel.Update(entry.ID, "Failed: "+name)
		m.log.Warn("download failed", zap.String("path", entry.Path), zap.Error(err))
		return
	}

	entry.State = StateDone
	if kind, derr := mimetype.DetectFile(entry.Path); derr == nil {
		entry.Kind = kind.String()
	}
	m.panel.Update(entry.ID, "Completed: "+name)
	m.log.Info("download completed",
		zap.String("path", entry.Path),
		zap.String("kind", entry.Kind))
}

// Entries returns tracked downloads in start order.
func (m *Manager) Entries() []Entry {
	out := make([]Entry, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, *m.entries[id])
	}
	return out
}
