package main

import (
	"sync"

	"github.com/vancomm/minesweeper-solver/internal/mines"
)

// frame is one websocket message: the board as it looks after a turn,
// plus the outcome once the run has ended.
type frame struct {
	Turn     int            `json:"turn"`
	Snapshot mines.Snapshot `json:"snapshot"`
	Outcome  string         `json:"outcome,omitempty"`
}

// liveRun fans per-turn frames out to any number of watchers. Slow
// watchers miss frames rather than stall the run.
type liveRun struct {
	mu   sync.Mutex
	subs map[chan frame]struct{}
	last frame
	done bool
}

func newLiveRun() *liveRun {
	return &liveRun{subs: make(map[chan frame]struct{})}
}

func (lr *liveRun) subscribe() (<-chan frame, func()) {
	ch := make(chan frame, 64)

	lr.mu.Lock()
	defer lr.mu.Unlock()

	if lr.done {
		ch <- lr.last
		close(ch)
		return ch, func() {}
	}

	lr.subs[ch] = struct{}{}
	cancel := func() {
		lr.mu.Lock()
		defer lr.mu.Unlock()
		if _, ok := lr.subs[ch]; ok {
			delete(lr.subs, ch)
			close(ch)
		}
	}
	return ch, cancel
}

func (lr *liveRun) publish(f frame) {
	lr.mu.Lock()
	defer lr.mu.Unlock()
	if lr.done {
		return
	}
	lr.last = f
	for ch := range lr.subs {
		select {
		case ch <- f:
		default:
		}
	}
}

func (lr *liveRun) finish(f frame) {
	lr.mu.Lock()
	defer lr.mu.Unlock()
	if lr.done {
		return
	}
	lr.done = true
	lr.last = f
	for ch := range lr.subs {
		select {
		case ch <- f:
		default:
		}
		close(ch)
		delete(lr.subs, ch)
	}
}

type registry struct {
	mu   sync.Mutex
	runs map[int64]*liveRun
}

func newRegistry() *registry {
	return &registry{runs: make(map[int64]*liveRun)}
}

func (r *registry) add(id int64) *liveRun {
	r.mu.Lock()
	defer r.mu.Unlock()
	lr := newLiveRun()
	r.runs[id] = lr
	return lr
}

func (r *registry) get(id int64) (*liveRun, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lr, ok := r.runs[id]
	return lr, ok
}

func (r *registry) remove(id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.runs, id)
}
