package runtime

import (
	"fmt"
	"sync"

	"github.com/emirpasic/gods/trees/binaryheap"
	"github.com/emirpasic/gods/utils"
)

// Timer is a one-shot timer, created by `create_timer`.
type Timer struct {
	ID       int
	Duration float64
	Start    float64
	Callback Value
	stopped  bool
	fired    bool
	rt       *Runtime
}

var _ Object = (*Timer)(nil)

// Deadline returns the runtime time at which the timer fires.
func (t *Timer) Deadline() float64 {
	return t.Start + t.Duration
}

// Fired is true after the timer's callback has been invoked.
func (t *Timer) Fired() bool {
	return t.fired
}

func (t *Timer) String() string {
	return fmt.Sprintf("<timer #%d %gs>", t.ID, t.Duration)
}

// TypeName is used by `typeof`.
func (t *Timer) TypeName() string {
	return "Timer"
}

// GetMember is part of interface Object.
func (t *Timer) GetMember(name string) (Value, bool) {
	switch name {
	case "duration", "wait_time":
		return t.Duration, true
	case "time_left":
		left := t.Deadline() - t.rt.Time()
		if left < 0 || t.fired || t.stopped {
			left = 0
		}
		return left, true
	case "stop":
		return method("Timer", name, 0, 0, func([]Value) (Value, error) {
			t.stopped = true
			return nil, nil
		}), true
	case "is_stopped":
		return method("Timer", name, 0, 0, func([]Value) (Value, error) {
			return t.stopped || t.fired, nil
		}), true
	}
	return nil, false
}

// SetMember is part of interface Object.
func (t *Timer) SetMember(string, Value) bool {
	return false
}

// timerQueue orders pending timers by deadline, then by creation.
type timerQueue struct {
	mu   sync.Mutex
	heap *binaryheap.Heap
	seq  int
}

var _ utils.Comparator = byDeadline

func byDeadline(a, b interface{}) int {
	ta, tb := a.(*Timer), b.(*Timer)
	if c := utils.Float64Comparator(ta.Deadline(), tb.Deadline()); c != 0 {
		return c
	}
	return utils.IntComparator(ta.ID, tb.ID)
}

func newTimerQueue() *timerQueue {
	return &timerQueue{heap: binaryheap.NewWith(byDeadline)}
}

// CreateTimer creates a timer which will invoke a callback after the given
// number of seconds. The callback may be nil.
func (rt *Runtime) CreateTimer(seconds float64, callback Value) *Timer {
	q := rt.timers
	q.mu.Lock()
	defer q.mu.Unlock()
	q.seq++
	t := &Timer{ID: q.seq, Duration: seconds, Start: rt.Time(), Callback: callback, rt: rt}
	q.heap.Push(t)
	tracer().Debugf("created timer #%d, fires at %.3f", t.ID, t.Deadline())
	return t
}

// PendingTimers returns the number of timers which have not fired yet.
func (rt *Runtime) PendingTimers() int {
	rt.timers.mu.Lock()
	defer rt.timers.mu.Unlock()
	return rt.timers.heap.Size()
}

// UpdateTimers fires all timers which are due, in deadline order, and
// returns the number of callbacks invoked. Callbacks run without holding
// the timer lock, so they may create new timers.
func (rt *Runtime) UpdateTimers() int {
	now := rt.Time()
	q := rt.timers
	var due []*Timer
	q.mu.Lock()
	for {
		top, ok := q.heap.Peek()
		if !ok || top.(*Timer).Deadline() > now {
			break
		}
		q.heap.Pop()
		due = append(due, top.(*Timer))
	}
	q.mu.Unlock()
	n := 0
	for _, t := range due {
		if t.stopped {
			continue
		}
		t.fired = true
		if t.Callback == nil {
			continue
		}
		n++
		if _, err := rt.safeCall(t.Callback, nil); err != nil {
			tracer().Errorf("timer #%d: callback failed: %v", t.ID, err)
		}
	}
	return n
}

// safeCall calls a value and converts panics into errors.
func (rt *Runtime) safeCall(fn Value, args []Value) (v Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = Recovered(r)
		}
	}()
	return Call(fn, args...)
}
