// Package proxy provides a recording Sink implementation that stands in for
// the real ProxyServer/ProxyClient collaborators, which live outside this
// module. It is used by the hopperd bootstrap before real proxies are wired
// up, and its recorded history supports assertions on exactly what Hopper
// dispatched.
package proxy

import (
	"sync"

	"github.com/substratum-net/hopper/hopper"
)

// Recorder is a hopper.Sink that appends every package it receives to an
// in-memory, mutex-guarded slice, for test assertions on both the content
// and the arrival order of dispatched packages.
type Recorder struct {
	mu       sync.Mutex
	received []hopper.ExpiredCoresPackage
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Send appends pkg to the recorder's history. It never fails.
func (r *Recorder) Send(pkg hopper.ExpiredCoresPackage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.received = append(r.received, pkg)

	return nil
}

// Received returns a copy of every package sent to this recorder so far, in
// arrival order.
func (r *Recorder) Received() []hopper.ExpiredCoresPackage {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]hopper.ExpiredCoresPackage, len(r.received))
	copy(out, r.received)

	return out
}

// Len reports how many packages this recorder has received.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.received)
}
