package router

import (
	"sync"

	"github.com/dmitrijs2005/socconsole/internal/console/session"
)

const maxRedirects = 4

// SessionState is the part of *session.Store the navigator reads.
type SessionState interface {
	Loaded() bool
	Authenticated() bool
	Subscribe(fn func(session.State)) (cancel func())
}

type Navigator struct {
	guard *Guard
	store SessionState

	mu        sync.Mutex
	requested string
	current   Decision
	listeners []func(Decision)
	cancel    func()
}

// NewNavigator starts at location and re-resolves it on every session
// change. Call Close to unsubscribe.
func NewNavigator(guard *Guard, store SessionState, location string) *Navigator {
	n := &Navigator{guard: guard, store: store, requested: Clean(location)}
	n.current = n.resolve(n.requested, store.Loaded(), store.Authenticated())
	n.cancel = store.Subscribe(func(st session.State) {
		n.refresh(true, st.Authenticated())
	})
	return n
}

// resolve follows redirects until a view renders.
func (n *Navigator) resolve(path string, loaded, authenticated bool) Decision {
	if !loaded {
		return Decision{Outcome: Pending, Location: path}
	}
	d := n.guard.Resolve(path, authenticated)
	for i := 0; d.Outcome == Redirect && i < maxRedirects; i++ {
		d = n.guard.Resolve(d.Location, authenticated)
	}
	return d
}

// Navigate moves to path and returns what to show.
func (n *Navigator) Navigate(path string) Decision {
	n.mu.Lock()
	n.requested = Clean(path)
	n.mu.Unlock()
	return n.refresh(n.store.Loaded(), n.store.Authenticated())
}

// Refresh re-resolves the current location against the store.
func (n *Navigator) Refresh() Decision {
	return n.refresh(n.store.Loaded(), n.store.Authenticated())
}

func (n *Navigator) refresh(loaded, authenticated bool) Decision {
	n.mu.Lock()
	prev := n.current
	d := n.resolve(n.requested, loaded, authenticated)
	n.current = d
	if d.Outcome == Render {
		n.requested = d.Location
	}
	ls := append([]func(Decision){}, n.listeners...)
	n.mu.Unlock()

	if !sameDecision(prev, d) {
		for _, fn := range ls {
			fn(d)
		}
	}
	return d
}

func (n *Navigator) Current() Decision {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// OnChange calls fn whenever the rendered view or location changes.
func (n *Navigator) OnChange(fn func(Decision)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.listeners = append(n.listeners, fn)
}

func (n *Navigator) Close() {
	if n.cancel != nil {
		n.cancel()
	}
}

func sameDecision(a, b Decision) bool {
	return a.Outcome == b.Outcome && a.View == b.View && a.Location == b.Location
}
