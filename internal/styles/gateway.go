// Package styles injects the user stylesheet into every page through an
// engine user script and keeps it in sync with the on-disk copy.
package styles

import (
	"fmt"
	"path/filepath"

	"github.com/bytedance/sonic"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/flintbrowser/flint/internal/config"
	"github.com/flintbrowser/flint/internal/engine"
	"github.com/flintbrowser/flint/internal/logging"
	"github.com/flintbrowser/flint/internal/store"
)

// scriptName identifies the injected user script in the engine profile so a
// reinstall replaces the previous copy instead of stacking a second one.
const scriptName = "flint-user-css"

// styleElementID is the id of the <style> element the script maintains in
// each page, making repeat injection idempotent.
const styleElementID = "flint-user-css"

// DefaultCSS ships as the stylesheet until the user saves their own.
const DefaultCSS = `/* flint user stylesheet */
::selection {
  background: #3b4252;
}

::-webkit-scrollbar {
  width: 10px;
  height: 10px;
}

::-webkit-scrollbar-track {
  background: #2e3440;
}

::-webkit-scrollbar-thumb {
  background: #4c566a;
  border-radius: 5px;
}
`

// Gateway owns the current user CSS and its installation into the engine.
type Gateway struct {
	cfg     *config.Config
	store   *store.Store
	factory engine.Factory
	log     *logging.Logger

	css      string
	watcher  *fsnotify.Watcher
	onChange func()
}

// NewGateway loads the persisted stylesheet, falling back to DefaultCSS.
func NewGateway(cfg *config.Config, st *store.Store, factory engine.Factory, log *logging.Logger) *Gateway {
	g := &Gateway{
		cfg:     cfg,
		store:   st,
		factory: factory,
		log:     log.Named("styles"),
	}
	if css, ok := st.LoadUserCSS(); ok {
		g.css = css
	} else {
		g.css = DefaultCSS
	}
	return g
}

// CSS returns the current stylesheet text.
func (g *Gateway) CSS() string { return g.css }

// Set replaces the stylesheet and, when persistence is enabled, writes it
// through to disk. The engine copy is untouched until the next Install.
func (g *Gateway) Set(css string) {
	g.css = css
	if g.cfg.Styles.Persist {
		g.store.SaveUserCSS(css)
	}
}

// Install replaces the profile's injected script with one carrying the
// current stylesheet. The script runs at document creation in every frame,
// so pages loaded afterwards pick it up without a reload.
func (g *Gateway) Install(p engine.Profile) error {
	p.RemoveScript(scriptName)
	err := p.InstallScript(scriptName, BuildScript(g.css), engine.ScriptOptions{
		AtDocumentCreation: true,
		AllFrames:          true,
		IsolatedWorld:      true,
	})
	if err != nil {
		return fmt.Errorf("install user stylesheet: %w", err)
	}
	return nil
}

// BuildScript renders the injection script for css. The stylesheet rides
// inside the script as a JSON string literal, so arbitrary CSS, including
// text that looks like script terminators, cannot escape it. Injection
// failures stay inside the script; a page must never break because its
// document rejected the style element.
func BuildScript(css string) string {
	literal, err := sonic.Marshal(css)
	if err != nil {
		literal = []byte(`""`)
	}
	return fmt.Sprintf(`(function() {
  try {
    var css = %s;
    var el = document.getElementById(%q);
    if (!el) {
      el = document.createElement("style");
      el.id = %q;
      (document.head || document.documentElement).appendChild(el);
    }
    el.textContent = css;
  } catch (e) {}
})();`, literal, styleElementID, styleElementID)
}

// Watch starts monitoring the on-disk stylesheet for external edits. On a
// change the gateway reloads the file on the UI loop and invokes onChange,
// which should reinstall and refresh open pages. A no-op when live reload
// is disabled or persistence is off.
func (g *Gateway) Watch(onChange func()) error {
	if !g.cfg.Styles.LiveReload || !g.cfg.Styles.Persist {
		return nil
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch user stylesheet: %w", err)
	}
	// Watch the directory rather than the file so editors that replace the
	// file on save keep being observed.
	if err := w.Add(g.cfg.Data.Dir); err != nil {
		w.Close()
		return fmt.Errorf("watch user stylesheet: %w", err)
	}

	g.watcher = w
	g.onChange = onChange
	target := filepath.Clean(g.cfg.UserCSSPath())

	go func() {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target {
					continue
				}
				if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) {
					continue
				}
				g.factory.Dispatch(g.reloadFromDisk)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				g.log.Warn("stylesheet watcher error", zap.Error(err))
			}
		}
	}()
	return nil
}

// Close stops the stylesheet watcher.
func (g *Gateway) Close() {
	if g.watcher != nil {
		g.watcher.Close()
		g.watcher = nil
	}
}

func (g *Gateway) reloadFromDisk() {
	css, ok := g.store.LoadUserCSS()
	if !ok {
		return
	}
	if css == g.css {
		return
	}
	g.css = css
	g.log.Info("user stylesheet reloaded from disk")
	if g.onChange != nil {
		g.onChange()
	}
}
