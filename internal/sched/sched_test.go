package sched

import (
	"reflect"
	"testing"
	"time"
)

func TestQueueFiresInOrder(t *testing.T) {
	q := NewQueue()
	var got []string
	q.At(300*time.Millisecond, func(time.Duration) { got = append(got, "c") })
	q.At(100*time.Millisecond, func(time.Duration) { got = append(got, "a") })
	q.At(200*time.Millisecond, func(time.Duration) { got = append(got, "b1") })
	q.At(200*time.Millisecond, func(time.Duration) { got = append(got, "b2") })

	if n := q.Advance(50 * time.Millisecond); n != 0 {
		t.Fatalf("Advance(50ms) fired %d, want 0", n)
	}
	q.Advance(250 * time.Millisecond)
	if want := []string{"a", "b1", "b2"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("fired %v, want %v", got, want)
	}
	q.Advance(time.Second)
	if want := []string{"a", "b1", "b2", "c"}; !reflect.DeepEqual(got, want) {
		t.Errorf("fired %v, want %v", got, want)
	}
}

func TestQueueActionReceivesFireTime(t *testing.T) {
	q := NewQueue()
	var at time.Duration
	q.At(120*time.Millisecond, func(now time.Duration) { at = now })
	q.Advance(500 * time.Millisecond)
	if at != 120*time.Millisecond {
		t.Errorf("action time = %v, want 120ms", at)
	}
}

func TestQueueChainedDueActions(t *testing.T) {
	q := NewQueue()
	count := 0
	q.At(10*time.Millisecond, func(now time.Duration) {
		count++
		q.At(now, func(time.Duration) { count++ })
		q.At(now+time.Hour, func(time.Duration) { count++ })
	})
	q.Advance(20 * time.Millisecond)
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
	if q.Pending() != 1 {
		t.Errorf("Pending = %d, want 1", q.Pending())
	}
}

func TestAfterIsRelativeToLastAdvance(t *testing.T) {
	q := NewQueue()
	q.Advance(time.Second)
	tm := q.After(500*time.Millisecond, func(time.Duration) {})
	if tm.fireAt != 1500*time.Millisecond {
		t.Errorf("fireAt = %v, want 1.5s", tm.fireAt)
	}
}

func TestTimerCancel(t *testing.T) {
	q := NewQueue()
	fired := false
	tm := q.After(time.Millisecond, func(time.Duration) { fired = true })
	tm.Cancel()
	if tm.Pending() {
		t.Error("cancelled timer reports pending")
	}
	q.Advance(time.Second)
	if fired {
		t.Error("cancelled timer fired")
	}
	var nilTimer *Timer
	nilTimer.Cancel()
}

func TestGroupCancel(t *testing.T) {
	q := NewQueue()
	g := q.NewGroup()
	other := 0
	grouped := 0
	g.After(10*time.Millisecond, func(time.Duration) { grouped++ })
	g.At(20*time.Millisecond, func(time.Duration) { grouped++ })
	q.After(15*time.Millisecond, func(time.Duration) { other++ })

	if g.Pending() != 2 {
		t.Fatalf("group Pending = %d, want 2", g.Pending())
	}
	g.Cancel()
	q.Advance(time.Second)

	if grouped != 0 {
		t.Errorf("grouped fired %d times after cancel, want 0", grouped)
	}
	if other != 1 {
		t.Errorf("ungrouped fired %d times, want 1", other)
	}

	// The group is reusable after cancel.
	g.After(time.Millisecond, func(time.Duration) { grouped++ })
	q.Advance(2 * time.Second)
	if grouped != 1 {
		t.Errorf("grouped after reuse = %d, want 1", grouped)
	}
}
