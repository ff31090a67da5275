package hashtable

import "time"

// DefaultRehashDelay is the pause interactive front ends leave between
// laying out the grown table and showing it
const DefaultRehashDelay = 1500 * time.Millisecond

// Pacer is called during a rehash, after the new layout of capacity
// to has been computed from the from buckets and before it replaces
// them. Pace always returns; it cannot abort the rehash.
type Pacer interface {
	Pace(from, to int)
}

// PacerFunc adapts a function to a Pacer
type PacerFunc func(from, to int)

func (f PacerFunc) Pace(from, to int) {
	f(from, to)
}

type noPacing struct{}

func (noPacing) Pace(int, int) {}

// NoPacing commits a rehash immediately
var NoPacing Pacer = noPacing{}

// Delay returns a Pacer that sleeps for d, suspending only
// the calling goroutine
func Delay(d time.Duration) Pacer {
	if d <= 0 {
		return NoPacing
	}
	return PacerFunc(func(int, int) {
		time.Sleep(d)
	})
}
