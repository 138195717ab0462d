package display

import "sync"

// Base holds the bookkeeping every display backend needs: desktop size,
// zoom, fullscreen/monitor directives, enabled flag, show hint and the
// subscriber registry. Backends embed it and call the Set*/Emit* methods
// when their transport reports changes.
//
// Base is safe for concurrent use; transports typically emit from their
// own goroutine while the controller reads from the event loop.
type Base struct {
	mu         sync.Mutex
	desktopW   int
	desktopH   int
	zoom       int
	monitor    int
	fullscreen bool
	enabled    bool
	hint       Hint

	nextID int
	subs   map[int]Handlers
}

// NewBase returns a Base with the given initial desktop size, zoom at 100
// and the monitor unset (-1).
func NewBase(desktopWidth, desktopHeight int) *Base {
	return &Base{
		desktopW: desktopWidth,
		desktopH: desktopHeight,
		zoom:     100,
		monitor:  -1,
		subs:     make(map[int]Handlers),
	}
}

func (b *Base) DesktopSize() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.desktopW, b.desktopH
}

// SetDesktopSize records a new guest desktop size and emits desktop-resize
// if it changed.
func (b *Base) SetDesktopSize(width, height int) {
	b.mu.Lock()
	changed := width != b.desktopW || height != b.desktopH
	b.desktopW, b.desktopH = width, height
	b.mu.Unlock()
	if changed {
		b.emit(func(h Handlers) func() { return h.DesktopResize })
	}
}

func (b *Base) ZoomLevel() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.zoom
}

func (b *Base) SetZoomLevel(level int) {
	b.mu.Lock()
	b.zoom = level
	b.mu.Unlock()
}

func (b *Base) Fullscreen() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.fullscreen
}

func (b *Base) SetFullscreen(fullscreen bool) {
	b.mu.Lock()
	b.fullscreen = fullscreen
	b.mu.Unlock()
}

func (b *Base) Monitor() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.monitor
}

func (b *Base) SetMonitor(monitor int) {
	b.mu.Lock()
	b.monitor = monitor
	b.mu.Unlock()
}

func (b *Base) Enabled() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.enabled
}

func (b *Base) Enable() {
	b.mu.Lock()
	b.enabled = true
	b.mu.Unlock()
}

func (b *Base) Disable() {
	b.mu.Lock()
	b.enabled = false
	b.mu.Unlock()
}

func (b *Base) ShowHint() Hint {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hint
}

// SetShowHint replaces the hint bitmask and emits show-hint-changed if it
// differs from the previous value.
func (b *Base) SetShowHint(hint Hint) {
	b.mu.Lock()
	changed := hint != b.hint
	b.hint = hint
	b.mu.Unlock()
	if changed {
		b.emit(func(h Handlers) func() { return h.ShowHintChanged })
	}
}

func (b *Base) EmitPointerGrab() {
	b.emit(func(h Handlers) func() { return h.PointerGrab })
}

func (b *Base) EmitPointerUngrab() {
	b.emit(func(h Handlers) func() { return h.PointerUngrab })
}

func (b *Base) EmitKeyboardGrab() {
	b.emit(func(h Handlers) func() { return h.KeyboardGrab })
}

func (b *Base) EmitKeyboardUngrab() {
	b.emit(func(h Handlers) func() { return h.KeyboardUngrab })
}

func (b *Base) Subscribe(h Handlers) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = h
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
		})
	}
}

// emit snapshots the subscriber list under the lock, then invokes the
// selected callback outside it so handlers may call back into the Base.
func (b *Base) emit(pick func(Handlers) func()) {
	b.mu.Lock()
	fns := make([]func(), 0, len(b.subs))
	for _, h := range b.subs {
		if fn := pick(h); fn != nil {
			fns = append(fns, fn)
		}
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
