package hashtable

import (
	"encoding/binary"
	"sort"

	"github.com/bits-and-blooms/bitset"
	"github.com/zeebo/blake3"
)

// Stats summarizes the shape of the table
type Stats struct {
	Capacity        int
	Size            int
	LoadFactor      float64
	OccupiedBuckets int
	LongestChain    int
	// Collisions counts entries that share their bucket with
	// an earlier entry of the chain
	Collisions int
}

// Occupancy returns a bitset with bit i set when bucket i holds
// at least one entry
func (t *Table) Occupancy() *bitset.BitSet {
	occupied := bitset.New(uint(len(t.buckets)))
	for i, b := range t.buckets {
		if len(b.Entries) > 0 {
			occupied.Set(uint(i))
		}
	}
	return occupied
}

// Stats computes the current Stats
func (t *Table) Stats() Stats {
	occupied := t.Occupancy()
	s := Stats{
		Capacity:        len(t.buckets),
		Size:            t.size,
		LoadFactor:      t.LoadFactor(),
		OccupiedBuckets: int(occupied.Count()),
	}
	for _, b := range t.buckets {
		if len(b.Entries) > s.LongestChain {
			s.LongestChain = len(b.Entries)
		}
	}
	s.Collisions = s.Size - s.OccupiedBuckets

	return s
}

// Fingerprint digests the (key, value, hash) triples of the table
// independently of their placement: a rehash leaves it unchanged,
// any insertion or value update changes it.
func (t *Table) Fingerprint() [32]byte {
	entries := make([]Entry, 0, t.size)
	for _, b := range t.buckets {
		entries = append(entries, b.Entries...)
	}
	// keys are unique
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Key < entries[j].Key
	})

	h := blake3.New()
	var n [8]byte
	for _, e := range entries {
		binary.BigEndian.PutUint64(n[:], uint64(len(e.Key)))
		h.Write(n[:])
		h.Write([]byte(e.Key))
		binary.BigEndian.PutUint64(n[:], uint64(len(e.Value)))
		h.Write(n[:])
		h.Write([]byte(e.Value))
		binary.BigEndian.PutUint64(n[:], e.Hash)
		h.Write(n[:])
	}

	var sum [32]byte
	copy(sum[:], h.Sum(nil))
	return sum
}
