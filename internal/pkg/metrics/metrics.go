package metrics

import "sync"

// Recorder counts named events. It is injected into services instead of
// living as a process-wide singleton, so tests can assert on it and callers
// can swap implementations.
type Recorder interface {
	Inc(name string)
	Add(name string, delta int64)
}

// Registry is an in-memory Recorder backed by a mutex-guarded map.
type Registry struct {
	mu       sync.Mutex
	counters map[string]int64
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{counters: make(map[string]int64)}
}

func (r *Registry) Inc(name string) {
	r.Add(name, 1)
}

func (r *Registry) Add(name string, delta int64) {
	r.mu.Lock()
	r.counters[name] += delta
	r.mu.Unlock()
}

// Snapshot returns a copy of all counters.
func (r *Registry) Snapshot() map[string]int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]int64, len(r.counters))
	for k, v := range r.counters {
		out[k] = v
	}
	return out
}

// Nop is a Recorder that discards everything.
type Nop struct{}

func (Nop) Inc(string)        {}
func (Nop) Add(string, int64) {}
