// Package schedule batches redraw requests into frames. Callers that want a
// redraw register a callback under a stable id; repeated requests for the
// same id within one frame collapse into a single run, and the whole pending
// set executes together when the frame fires.
package schedule

import (
	"fmt"
	"log"
	"sync"
)

// Callback is one deferred unit of work. A non-nil error is reported to the
// scheduler's error handler without affecting sibling callbacks.
type Callback func() error

// RequestFunc asks the host environment for one frame and invokes run when it
// arrives. The Fyne canvas passes its own driver hook here; tests leave it
// nil and pump frames with Flush.
type RequestFunc func(run func())

// ErrorFunc receives the id and error of a callback that failed or panicked.
type ErrorFunc func(id string, err error)

// Scheduler holds the pending callback set and at most one outstanding frame
// request. Safe for concurrent use.
type Scheduler struct {
	mu        sync.Mutex
	pending   map[string]Callback
	order     []string
	requested bool

	request RequestFunc
	onError ErrorFunc
}

// New creates a scheduler. A nil request function puts the scheduler in
// manual mode where only Flush runs callbacks. A nil error handler logs.
func New(request RequestFunc, onError ErrorFunc) *Scheduler {
	if onError == nil {
		onError = func(id string, err error) {
			log.Printf("scheduled callback %q: %v", id, err)
		}
	}
	return &Scheduler{
		pending: make(map[string]Callback),
		request: request,
		onError: onError,
	}
}

// Request queues cb to run on the next frame. A second request under the
// same id before the frame fires replaces the callback but runs it once.
// The first request of a frame asks the host for one; later requests ride
// along on the outstanding one.
func (s *Scheduler) Request(id string, cb Callback) {
	s.mu.Lock()
	if _, ok := s.pending[id]; !ok {
		s.order = append(s.order, id)
	}
	s.pending[id] = cb

	fire := s.request != nil && !s.requested
	if fire {
		s.requested = true
	}
	s.mu.Unlock()

	if fire {
		s.request(s.Flush)
	}
}

// Cancel drops a pending callback without running it.
func (s *Scheduler) Cancel(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pending[id]; !ok {
		return
	}
	delete(s.pending, id)
	for i, o := range s.order {
		if o == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Len reports how many callbacks are waiting for the next frame.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Flush runs every pending callback in request order and clears the set.
// Callbacks queued during a flush land in the next frame, not this one. A
// callback that errors or panics is reported and its siblings still run.
func (s *Scheduler) Flush() {
	s.mu.Lock()
	pending := s.pending
	order := s.order
	s.pending = make(map[string]Callback)
	s.order = nil
	s.requested = false
	s.mu.Unlock()

	for _, id := range order {
		s.run(id, pending[id])
	}
}

func (s *Scheduler) run(id string, cb Callback) {
	defer func() {
		if r := recover(); r != nil {
			s.onError(id, fmt.Errorf("panic: %v", r))
		}
	}()
	if err := cb(); err != nil {
		s.onError(id, err)
	}
}
