package evaluator

import "context"

// Slot is a counting semaphore bounding how many evaluator processes may run
// at once. The Extractor uses a capacity of one.
type Slot struct {
	ch chan struct{}
}

// NewSlot creates a slot with the given capacity. n <= 0 is treated as 1.
func NewSlot(n int) *Slot {
	if n <= 0 {
		n = 1
	}
	return &Slot{ch: make(chan struct{}, n)}
}

// Acquire blocks until the slot is free or ctx is done.
// Returns true if acquired, false if ctx was cancelled first.
func (s *Slot) Acquire(ctx context.Context) bool {
	select {
	case s.ch <- struct{}{}:
		return true
	case <-ctx.Done():
		return false
	}
}

// Release frees the slot.
func (s *Slot) Release() {
	<-s.ch
}

// Capacity returns the slot capacity.
func (s *Slot) Capacity() int {
	return cap(s.ch)
}

// InUse returns the number of holders.
func (s *Slot) InUse() int {
	return len(s.ch)
}
