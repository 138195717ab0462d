// Package app holds the application-wide viewer state shared across
// windows: the global fullscreen policy, the accelerator policy and the
// identity strings used in titles.
package app

const defaultName = "Guest Viewer"

// App is the cross-window application context. It is only touched from
// the event loop goroutine, so it carries no locking.
type App struct {
	name               string
	fullscreen         bool
	accelsEnabled      bool
	releaseCursorAccel string

	onFullscreenChange func(fullscreen bool)
}

// Option configures an App.
type Option func(*App)

// WithName overrides the application name shown in window titles.
func WithName(name string) Option {
	return func(a *App) { a.name = name }
}

// WithAccels keeps the designated accelerator group active even while
// display grabs disable the other modifiers.
func WithAccels(enabled bool) Option {
	return func(a *App) { a.accelsEnabled = enabled }
}

// WithReleaseCursorAccel sets the human-readable label of the
// release-pointer shortcut, e.g. "Ctrl+Alt".
func WithReleaseCursorAccel(label string) Option {
	return func(a *App) { a.releaseCursorAccel = label }
}

// WithFullscreen starts the application in global fullscreen.
func WithFullscreen(fullscreen bool) Option {
	return func(a *App) { a.fullscreen = fullscreen }
}

func New(opts ...Option) *App {
	a := &App{name: defaultName}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *App) Name() string { return a.name }

func (a *App) GlobalFullscreen() bool { return a.fullscreen }

// SetGlobalFullscreen records the application-level fullscreen policy and
// notifies the registered observer when it changes.
func (a *App) SetGlobalFullscreen(fullscreen bool) {
	if a.fullscreen == fullscreen {
		return
	}
	a.fullscreen = fullscreen
	if a.onFullscreenChange != nil {
		a.onFullscreenChange(fullscreen)
	}
}

func (a *App) AccelsEnabled() bool { return a.accelsEnabled }

func (a *App) ReleaseCursorAccel() string { return a.releaseCursorAccel }

// OnFullscreenChange registers the observer invoked whenever the global
// fullscreen policy flips. At most one observer is supported.
func (a *App) OnFullscreenChange(fn func(fullscreen bool)) {
	a.onFullscreenChange = fn
}
