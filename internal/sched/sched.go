// Package sched provides a tick-driven queue of deferred actions keyed by a
// monotonic game clock. Actions never run on their own goroutine: the owner
// calls Advance once per tick and due actions run inline, in fire order.
package sched

import (
	"container/heap"
	"time"
)

// Action is a deferred callback. now is the tick time at which it fired.
type Action func(now time.Duration)

// Timer is the cancel token returned by At and After.
type Timer struct {
	fireAt    time.Duration
	seq       uint64
	action    Action
	cancelled bool
	fired     bool
}

// Cancel prevents the timer from firing. Cancelling a fired timer is a no-op.
func (t *Timer) Cancel() {
	if t != nil {
		t.cancelled = true
	}
}

// Pending reports whether the timer will still fire.
func (t *Timer) Pending() bool {
	return t != nil && !t.cancelled && !t.fired
}

// Queue holds timers ordered by fire time, ties broken by scheduling order.
type Queue struct {
	items timerHeap
	seq   uint64
	now   time.Duration
}

// NewQueue creates an empty queue at clock time zero.
func NewQueue() *Queue {
	return &Queue{}
}

// Now returns the time of the last Advance.
func (q *Queue) Now() time.Duration {
	return q.now
}

// At schedules action to fire at the absolute clock time fireAt.
func (q *Queue) At(fireAt time.Duration, action Action) *Timer {
	t := &Timer{fireAt: fireAt, seq: q.seq, action: action}
	q.seq++
	heap.Push(&q.items, t)
	return t
}

// After schedules action to fire delay after the last Advance time.
func (q *Queue) After(delay time.Duration, action Action) *Timer {
	return q.At(q.now+delay, action)
}

// Advance moves the clock to now and runs every due timer. Timers scheduled by
// a running action that are already due fire during the same call.
func (q *Queue) Advance(now time.Duration) int {
	if now > q.now {
		q.now = now
	}
	fired := 0
	for len(q.items) > 0 && q.items[0].fireAt <= q.now {
		t := heap.Pop(&q.items).(*Timer)
		if t.cancelled {
			continue
		}
		t.fired = true
		fired++
		t.action(t.fireAt)
	}
	return fired
}

// Len returns the number of queued timers, including cancelled ones not yet popped.
func (q *Queue) Len() int {
	return len(q.items)
}

// Pending returns the number of timers that will still fire.
func (q *Queue) Pending() int {
	n := 0
	for _, t := range q.items {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// Group tracks timers created through it so they can be cancelled together,
// e.g. every deferred action belonging to one boss phase.
type Group struct {
	q      *Queue
	timers []*Timer
}

// NewGroup creates a group that schedules on q.
func (q *Queue) NewGroup() *Group {
	return &Group{q: q}
}

// After schedules action on the underlying queue and tracks the timer.
func (g *Group) After(delay time.Duration, action Action) *Timer {
	g.compact()
	t := g.q.After(delay, action)
	g.timers = append(g.timers, t)
	return t
}

// At schedules action at an absolute time and tracks the timer.
func (g *Group) At(fireAt time.Duration, action Action) *Timer {
	g.compact()
	t := g.q.At(fireAt, action)
	g.timers = append(g.timers, t)
	return t
}

// Cancel cancels every pending timer of the group.
func (g *Group) Cancel() {
	for _, t := range g.timers {
		t.Cancel()
	}
	g.timers = g.timers[:0]
}

// Pending returns the number of group timers that will still fire.
func (g *Group) Pending() int {
	n := 0
	for _, t := range g.timers {
		if t.Pending() {
			n++
		}
	}
	return n
}

// compact drops fired and cancelled timers so long-lived groups stay small.
func (g *Group) compact() {
	live := g.timers[:0]
	for _, t := range g.timers {
		if t.Pending() {
			live = append(live, t)
		}
	}
	clear(g.timers[len(live):])
	g.timers = live
}

type timerHeap []*Timer

func (h timerHeap) Len() int { return len(h) }
func (h timerHeap) Less(i, j int) bool {
	if h[i].fireAt == h[j].fireAt {
		return h[i].seq < h[j].seq
	}
	return h[i].fireAt < h[j].fireAt
}
func (h timerHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *timerHeap) Push(x any) {
	*h = append(*h, x.(*Timer))
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return t
}
