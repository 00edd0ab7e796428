package store

import (
	"sort"
	"sync"
	"time"
)

// PendingWrites coalesces rapid edits into one delayed write per key.
// Only the last function scheduled for a key runs.
type PendingWrites struct {
	mu      sync.Mutex
	delay   time.Duration
	pending map[string]*pendingWrite
	seq     uint64
}

type pendingWrite struct {
	seq   uint64
	fn    func()
	timer *time.Timer
}

// NewPendingWrites returns a scheduler that commits writes after delay
func NewPendingWrites(delay time.Duration) *PendingWrites {
	return &PendingWrites{
		delay:   delay,
		pending: make(map[string]*pendingWrite),
	}
}

// Schedule replaces any pending write for key with fn
func (p *PendingWrites) Schedule(key string, fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if prev, ok := p.pending[key]; ok {
		prev.timer.Stop()
	}
	p.seq++
	seq := p.seq
	w := &pendingWrite{seq: seq, fn: fn}
	w.timer = time.AfterFunc(p.delay, func() { p.fire(key, seq) })
	p.pending[key] = w
}

func (p *PendingWrites) fire(key string, seq uint64) {
	p.mu.Lock()
	w, ok := p.pending[key]
	if !ok || w.seq != seq {
		p.mu.Unlock()
		return
	}
	delete(p.pending, key)
	p.mu.Unlock()
	w.fn()
}

// Flush runs every pending write now, in scheduling order
func (p *PendingWrites) Flush() {
	p.mu.Lock()
	writes := make([]*pendingWrite, 0, len(p.pending))
	for key, w := range p.pending {
		w.timer.Stop()
		writes = append(writes, w)
		delete(p.pending, key)
	}
	p.mu.Unlock()

	sort.Slice(writes, func(i, j int) bool { return writes[i].seq < writes[j].seq })
	for _, w := range writes {
		w.fn()
	}
}

// Cancel drops every pending write
func (p *PendingWrites) Cancel() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for key, w := range p.pending {
		w.timer.Stop()
		delete(p.pending, key)
	}
}

// Len returns the number of writes waiting to run
func (p *PendingWrites) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pending)
}
