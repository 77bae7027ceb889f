package mutationform

import "sync"

// Guard tracks in-flight submissions by key across controllers.
//
// Each HTTP request builds its own Controller, so per-controller state alone
// cannot stop two overlapping posts of the same form. Controllers that share
// a Guard and a key are mutually exclusive.
type Guard struct {
	mu     sync.Mutex
	active map[string]struct{}
}

// NewGuard returns an empty guard.
func NewGuard() *Guard {
	return &Guard{active: map[string]struct{}{}}
}

// TryAcquire marks key as in flight. It reports false, and returns a no-op
// release, when key is already held.
func (g *Guard) TryAcquire(key string) (release func(), ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.active == nil {
		g.active = map[string]struct{}{}
	}
	if _, held := g.active[key]; held {
		return func() {}, false
	}
	g.active[key] = struct{}{}
	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.active, key)
			g.mu.Unlock()
		})
	}, true
}

// Active reports whether key is currently held.
func (g *Guard) Active(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, held := g.active[key]
	return held
}
