package hashtable

import (
	"github.com/optable/hashviz/internal/metrics"
	"github.com/optable/hashviz/pkg/eventlog"
)

// Outcome is what a Put did to the table
type Outcome int

const (
	Rejected Outcome = iota
	Inserted
	Updated
)

func (o Outcome) String() string {
	switch o {
	case Inserted:
		return metrics.OutcomeInserted
	case Updated:
		return metrics.OutcomeUpdated
	case Rejected:
		return metrics.OutcomeRejected
	default:
		return "undefined"
	}
}

// Result reports the effect of a Put. Err is set only when the
// put was rejected, in which case the table is unchanged.
type Result struct {
	Outcome  Outcome
	Hash     uint64
	Index    int
	Rehashed bool
	Err      error
}

// Put inserts key with value, or replaces the value of an existing key
// in place. An insertion that pushes the load factor strictly above
// LoadFactorThreshold doubles the capacity before Put returns.
// Failures never panic: they are recorded as error events and
// returned in the Result.
func (t *Table) Put(key, value string) Result {
	if t.rehashing {
		return t.reject(ErrRehashing)
	}
	if err := validate(key, value); err != nil {
		return t.reject(err)
	}

	h := t.Hash(key)
	idx := BucketIndex(h, len(t.buckets))
	t.event(eventlog.Info, "put(%q, %q) -> hash: %d -> index: %d", key, value, h, idx)

	b := &t.buckets[idx]
	if i := b.find(key); i >= 0 {
		// the entry keeps its hash and its place in the chain
		b.Entries[i].Value = value
		t.event(eventlog.Success, "key %q exists, value updated to %q", key, value)
		t.metrics.Put(metrics.OutcomeUpdated)
		return Result{Outcome: Updated, Hash: b.Entries[i].Hash, Index: idx}
	}

	b.Entries = append(b.Entries, Entry{Key: key, Value: value, Hash: h})
	t.size++
	t.filter.AddString(key)
	t.event(eventlog.Success, "inserted %q into bucket %d, load: %.2f", key, idx, t.LoadFactor())
	t.metrics.Put(metrics.OutcomeInserted)
	t.metrics.Observe(len(t.buckets), t.size)

	res := Result{Outcome: Inserted, Hash: h, Index: idx}
	if overloaded(t.size, len(t.buckets)) {
		t.rehash()
		res.Rehashed = true
	}
	return res
}

func (t *Table) reject(err error) Result {
	t.fail(err, "put rejected")
	t.metrics.Put(metrics.OutcomeRejected)
	return Result{Outcome: Rejected, Err: err}
}

// overloaded reports size/capacity > LoadFactorThreshold without
// going through floating point
func overloaded(size, capacity int) bool {
	return 4*size > 3*capacity
}
