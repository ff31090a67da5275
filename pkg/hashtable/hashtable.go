package hashtable

import (
	"context"
	"time"

	bloom "github.com/bits-and-blooms/bloom/v3"
	"github.com/go-logr/logr"
	"github.com/optable/hashviz/internal/hash"
	"github.com/optable/hashviz/internal/metrics"
	"github.com/optable/hashviz/pkg/eventlog"
	"github.com/optable/hashviz/pkg/log"
)

const (
	// InitialCapacity is the bucket count of a new or cleared table
	InitialCapacity = 4
	// LoadFactorThreshold is the load factor that, once strictly
	// exceeded by an insertion, doubles the capacity
	LoadFactorThreshold = 0.75

	// expected number of keys and false positive rate of the key filter
	filterEstimate      = 1024
	filterFalsePositive = 0.01
)

// Entry is a key/value pair along with the hash computed when
// the key was first inserted
type Entry struct {
	Key   string
	Value string
	Hash  uint64
}

// Bucket is a chain of entries in insertion order
type Bucket struct {
	Index   int
	Entries []Entry
}

// Table is a separately chained hash table that doubles its capacity
// when the load factor exceeds LoadFactorThreshold, and records every
// operation in a bounded event log.
// A Table is meant to be driven by a single goroutine.
type Table struct {
	buckets   []Bucket
	size      int
	rehashing bool

	hasher  hash.Hasher
	pacer   Pacer
	logs    *eventlog.Log
	filter  *bloom.BloomFilter
	metrics *metrics.Collector
	logger  logr.Logger

	logCapacity int
	now         func() time.Time
}

// Option configures a Table
type Option func(*Table)

// WithHasher replaces the character sum hasher
func WithHasher(h hash.Hasher) Option {
	return func(t *Table) {
		t.hasher = h
	}
}

// WithPacer sets the hook called between computing a rehash layout
// and committing it
func WithPacer(p Pacer) Option {
	return func(t *Table) {
		t.pacer = p
	}
}

// WithLogCapacity bounds the event log to n events
func WithLogCapacity(n int) Option {
	return func(t *Table) {
		t.logCapacity = n
	}
}

// WithClock sets the timestamp source of the event log
func WithClock(now func() time.Time) Option {
	return func(t *Table) {
		t.now = now
	}
}

// WithMetrics records the table activity in c
func WithMetrics(c *metrics.Collector) Option {
	return func(t *Table) {
		t.metrics = c
	}
}

// New creates an empty table with InitialCapacity buckets.
// The logger is picked from ctx if present.
func New(ctx context.Context, opts ...Option) *Table {
	t := &Table{
		buckets: newBuckets(InitialCapacity),
		hasher:  hash.NewCharSumHasher(),
		pacer:   NoPacing,
		filter:  bloom.NewWithEstimates(filterEstimate, filterFalsePositive),
		metrics: metrics.New(),
		logger:  log.GetLoggerFromContextWithName(ctx, "hashtable"),

		logCapacity: eventlog.DefaultCapacity,
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(t)
	}
	t.logs = eventlog.New(t.logCapacity).WithClock(t.now)
	t.metrics.Observe(len(t.buckets), t.size)

	return t
}

// BucketIndex maps a hash to a bucket of a table with the given capacity
func BucketIndex(h uint64, capacity int) int {
	return int(h % uint64(capacity))
}

// Hash returns the hash the table assigns to key
func (t *Table) Hash(key string) uint64 {
	return hash.String(t.hasher, key)
}

// Buckets returns a copy of the buckets in index order
func (t *Table) Buckets() []Bucket {
	buckets := make([]Bucket, len(t.buckets))
	for i, b := range t.buckets {
		buckets[i] = Bucket{Index: b.Index, Entries: append([]Entry(nil), b.Entries...)}
	}
	return buckets
}

// Capacity returns the number of buckets
func (t *Table) Capacity() int {
	return len(t.buckets)
}

// Size returns the number of distinct keys
func (t *Table) Size() int {
	return t.size
}

// LoadFactor returns size / capacity
func (t *Table) LoadFactor() float64 {
	return float64(t.size) / float64(len(t.buckets))
}

// IsRehashing reports whether a rehash is in flight. Put and Clear
// are rejected while it is true.
func (t *Table) IsRehashing() bool {
	return t.rehashing
}

// Logs returns the retained events, newest first
func (t *Table) Logs() []eventlog.Event {
	return t.logs.Events()
}

// Metrics returns the collector the table reports to
func (t *Table) Metrics() *metrics.Collector {
	return t.metrics
}

// Get returns the value stored for key
func (t *Table) Get(key string) (string, bool) {
	if !t.filter.TestString(key) {
		return "", false
	}

	b := t.buckets[BucketIndex(t.Hash(key), len(t.buckets))]
	if i := b.find(key); i >= 0 {
		return b.Entries[i].Value, true
	}
	return "", false
}

// Contains reports whether key has been inserted
func (t *Table) Contains(key string) bool {
	_, ok := t.Get(key)
	return ok
}

// Clear resets the table to InitialCapacity empty buckets and
// empties the log, leaving a single warning event behind.
func (t *Table) Clear() error {
	if t.rehashing {
		t.fail(ErrRehashing, "clear rejected")
		return ErrRehashing
	}

	t.buckets = newBuckets(InitialCapacity)
	t.size = 0
	t.filter.ClearAll()
	t.logs.Reset()
	t.metrics.Observe(len(t.buckets), t.size)
	t.event(eventlog.Warning, "table cleared")

	return nil
}

// find returns the position of key in the chain or -1
func (b *Bucket) find(key string) int {
	for i := range b.Entries {
		if b.Entries[i].Key == key {
			return i
		}
	}
	return -1
}

func newBuckets(capacity int) []Bucket {
	buckets := make([]Bucket, capacity)
	for i := range buckets {
		buckets[i].Index = i
	}
	return buckets
}

// event appends to the event log and mirrors the event to the logger
func (t *Table) event(severity eventlog.Severity, format string, args ...interface{}) {
	e := t.logs.Appendf(severity, format, args...)
	if severity == eventlog.Warning {
		t.logger.Info(e.Message, "severity", severity.String())
		return
	}
	t.logger.V(1).Info(e.Message, "severity", severity.String())
}

// fail appends an error event and reports err to the logger
func (t *Table) fail(err error, msg string) {
	e := t.logs.Appendf(eventlog.Error, "%s: %v", msg, err)
	t.logger.Error(err, msg, "event", e.ID)
}
