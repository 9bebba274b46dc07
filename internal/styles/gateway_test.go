package styles

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flintbrowser/flint/internal/config"
	"github.com/flintbrowser/flint/internal/engine/enginetest"
	"github.com/flintbrowser/flint/internal/logging"
	"github.com/flintbrowser/flint/internal/store"
)

func newTestGateway(t *testing.T) (*Gateway, *enginetest.Factory, *store.Store, *config.Config) {
	t.Helper()
	cfg := config.Default()
	cfg.Data.Dir = t.TempDir()
	st, err := store.New(cfg, logging.NewDefault())
	require.NoError(t, err)
	factory := enginetest.NewFactory()
	return NewGateway(cfg, st, factory, logging.NewDefault()), factory, st, cfg
}

func TestNewGatewayDefaultsWhenUnsaved(t *testing.T) {
	g, _, _, _ := newTestGateway(t)
	assert.Equal(t, DefaultCSS, g.CSS())
}

func TestNewGatewayLoadsPersistedSheet(t *testing.T) {
	cfg := config.Default()
	cfg.Data.Dir = t.TempDir()
	st, err := store.New(cfg, logging.NewDefault())
	require.NoError(t, err)
	st.SaveUserCSS("body { background: black }")

	g := NewGateway(cfg, st, enginetest.NewFactory(), logging.NewDefault())
	assert.Equal(t, "body { background: black }", g.CSS())
}

func TestSetPersists(t *testing.T) {
	g, _, st, _ := newTestGateway(t)

	g.Set("a { color: red }")

	css, ok := st.LoadUserCSS()
	require.True(t, ok)
	assert.Equal(t, "a { color: red }", css)
}

func TestSetWithoutPersistence(t *testing.T) {
	g, _, st, cfg := newTestGateway(t)
	cfg.Styles.Persist = false

	g.Set("a { color: red }")

	assert.Equal(t, "a { color: red }", g.CSS())
	_, ok := st.LoadUserCSS()
	assert.False(t, ok)
}

func TestInstallReplacesPreviousScript(t *testing.T) {
	g, factory, _, _ := newTestGateway(t)
	profile := factory.DefaultProfile().(*enginetest.Profile)

	require.NoError(t, g.Install(profile))
	g.Set("a { color: red }")
	require.NoError(t, g.Install(profile))

	assert.Len(t, profile.Scripts, 1)
	script, ok := profile.Script(scriptName)
	require.True(t, ok)
	assert.Contains(t, script.Source, `a { color: red }`)
	assert.True(t, script.Options.AtDocumentCreation)
	assert.True(t, script.Options.AllFrames)
}

func TestBuildScriptEscapesStylesheetText(t *testing.T) {
	hostile := "body::after { content: \"quote\" }\n@import 'x';"

	script := BuildScript(hostile)

	// The stylesheet rides as a JSON string literal: quotes escaped, raw
	// newlines never split the literal.
	assert.Contains(t, script, `\"quote\"`)
	assert.Contains(t, script, `\n@import`)
	assert.False(t, strings.Contains(script, "\n@import"))
}

func TestBuildScriptSwallowsInjectionFailures(t *testing.T) {
	script := BuildScript("a { color: red }")

	assert.Contains(t, script, "try {")
	assert.Contains(t, script, "catch (e)")
	assert.Contains(t, script, "document.head || document.documentElement",
		"headless documents fall back to the root element")
}

func TestWatchReloadsExternalEdits(t *testing.T) {
	g, _, _, cfg := newTestGateway(t)
	g.Set(DefaultCSS)

	changed := make(chan struct{}, 1)
	require.NoError(t, g.Watch(func() { changed <- struct{}{} }))
	defer g.Close()

	require.NoError(t, os.WriteFile(cfg.UserCSSPath(), []byte("p { margin: 0 }"), 0o644))

	select {
	case <-changed:
	case <-time.After(3 * time.Second):
		t.Fatal("stylesheet edit was not observed")
	}
	assert.Equal(t, "p { margin: 0 }", g.CSS())
}

func TestWatchDisabled(t *testing.T) {
	g, _, _, cfg := newTestGateway(t)
	cfg.Styles.LiveReload = false

	require.NoError(t, g.Watch(func() { t.Fatal("unexpected reload") }))
	assert.Nil(t, g.watcher)
}
