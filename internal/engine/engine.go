package engine

import "errors"

// ErrUnavailable is returned by Factory.Available when the browsing engine
// cannot be initialized. It is the one fatal startup condition.
var ErrUnavailable = errors.New("browsing engine unavailable")

// View is one browsing surface. Navigation, script execution and load
// outcomes are asynchronous: operations return immediately and results
// arrive through the registered change handlers on the UI loop.
type View interface {
	// Load starts navigation to url. A new Load supersedes a pending one.
	Load(url string)
	// LoadHTML displays inline markup under the given base URL.
	LoadHTML(html, baseURL string)

	URL() string
	Title() string
	IconURI() string

	GoBack()
	GoForward()
	Reload()
	CanGoBack() bool
	CanGoForward() bool

	// RunScript executes JavaScript against the loaded document. Failures
	// are the script's problem; no result is reported back.
	RunScript(js string)

	// Change handlers fire on the UI loop. Registering replaces any
	// previously registered handler.
	OnTitleChanged(func(title string))
	OnURLChanged(func(url string))
	OnIconChanged(func(iconURI string))
	OnLoadFinished(func(ok bool))

	// Profile returns the profile this view renders under.
	Profile() Profile

	// Native exposes the underlying widget handle for embedding in chrome.
	Native() uintptr

	// Destroy releases the view and its engine resources.
	Destroy()
}

// ScriptOptions controls how an installed script is delivered to documents.
type ScriptOptions struct {
	// AtDocumentCreation injects before page content is parsed.
	AtDocumentCreation bool
	// AllFrames applies the script to sub-frames as well as the main document.
	AllFrames bool
	// IsolatedWorld runs the script in a privileged context separate from
	// page scripts.
	IsolatedWorld bool
}

// Profile is the per-profile script-injection registry plus download
// notification. Installed scripts apply to every document loaded by views
// of the profile.
type Profile interface {
	// InstallScript registers source under a logical name. Installing an
	// already-present name without removing it first duplicates the script.
	InstallScript(name, source string, o ScriptOptions) error
	// RemoveScript drops the script registered under name, if any.
	RemoveScript(name string)
	// OnDownload registers the handler for engine-initiated downloads.
	OnDownload(func(Download))
}

// Download is one engine-managed transfer awaiting a destination.
type Download interface {
	SuggestedFilename() string
	// AcceptTo starts the transfer into path.
	AcceptTo(path string) error
	// Cancel abandons the transfer; no partial file is retained.
	Cancel()
	// OnFinished registers the completion callback; err is nil on success.
	OnFinished(func(err error))
}

// Factory creates views and owns the default profile.
type Factory interface {
	// Available probes the engine; a non-nil error means no window can open.
	Available() error
	// NewView creates a view. After a successful Available check this does
	// not fail.
	NewView() View
	DefaultProfile() Profile
	// Dispatch runs fn on the UI loop. Used by the few callers that act
	// from outside it, such as file watchers.
	Dispatch(fn func())
}
