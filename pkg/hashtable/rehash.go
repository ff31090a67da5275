package hashtable

import (
	"github.com/optable/hashviz/pkg/eventlog"
)

// rehash doubles the capacity and redistributes every entry using
// its stored hash. Buckets and capacity are replaced together once
// the pacer returns; the size never changes.
func (t *Table) rehash() {
	t.rehashing = true
	defer func() {
		t.rehashing = false
	}()

	oldCapacity := len(t.buckets)
	newCapacity := oldCapacity * 2
	t.event(eventlog.Warning, "load factor threshold reached (%.2f > %.2f), growing to %d",
		t.LoadFactor(), LoadFactorThreshold, newCapacity)

	next, moved := redistribute(t.buckets, newCapacity)
	t.pacer.Pace(oldCapacity, newCapacity)

	t.buckets = next
	t.metrics.Rehash(moved)
	t.metrics.Observe(len(t.buckets), t.size)
	t.event(eventlog.Success, "rehash complete, moved %d entries, new capacity: %d", moved, newCapacity)
}

// redistribute walks buckets in index order and chains in chain order,
// appending each entry to its bucket in a fresh array of capacity buckets.
func redistribute(buckets []Bucket, capacity int) ([]Bucket, int) {
	next := newBuckets(capacity)
	moved := 0
	for _, b := range buckets {
		for _, e := range b.Entries {
			idx := BucketIndex(e.Hash, capacity)
			next[idx].Entries = append(next[idx].Entries, e)
			moved++
		}
	}
	return next, moved
}
