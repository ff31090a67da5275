package hash

import (
	"fmt"
	"log"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/alecthomas/unsafeslice"
	"github.com/cespare/xxhash/v2"
	gometro "github.com/dgryski/go-metro"
	"github.com/minio/highwayhash"
	"github.com/shivakar/metrohash"
	"github.com/twmb/murmur3"
)

const (
	SaltLength = 32

	CharSum = iota
	Murmur3
	Metro
	GoMetro
	Highway
	XXHash
)

var (
	ErrUnknownHash        = fmt.Errorf("cannot create a hasher of unknown hash type")
	ErrSaltLengthMismatch = fmt.Errorf("provided salt is not %d length", SaltLength)
)

func init() {
	if SaltLength != 32 {
		log.Fatalf("SaltLength has to be fixed to 32 and is set to %d", SaltLength)
	}
}

// Hasher turns the bytes of a key into a bucket-independent hash value
type Hasher interface {
	Hash64([]byte) uint64
}

// New creates a hasher of type t. The salt is ignored by the
// character sum hasher.
func New(t int, salt []byte) (Hasher, error) {
	switch t {
	case CharSum:
		return NewCharSumHasher(), nil
	case Murmur3:
		return NewMurmur3Hasher(salt)
	case Metro:
		return NewMetroHasher(salt)
	case GoMetro:
		return NewGoMetroHasher(salt)
	case Highway:
		return NewHighwayHasher(salt)
	case XXHash:
		return NewXXHasher(salt)
	default:
		return nil, ErrUnknownHash
	}
}

// Parse maps a hasher name as given on the command line to its type
func Parse(name string) (int, error) {
	switch name {
	case "charsum", "":
		return CharSum, nil
	case "murmur3":
		return Murmur3, nil
	case "metro":
		return Metro, nil
	case "gometro":
		return GoMetro, nil
	case "highway":
		return Highway, nil
	case "xxhash":
		return XXHash, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownHash, name)
	}
}

// String hashes s with h without copying it
func String(h Hasher, s string) uint64 {
	if len(s) == 0 {
		return h.Hash64(nil)
	}
	return h.Hash64(unsafeslice.ByteSliceFromString(s))
}

// character code sum implementation of Hasher
type charSum struct{}

// NewCharSumHasher returns the visualizer hasher: the sum of the
// UTF-16 code units of the key. Anagrams always collide.
func NewCharSumHasher() charSum {
	return charSum{}
}

func (charSum) Hash64(p []byte) uint64 {
	var sum uint64
	for len(p) > 0 {
		r, size := utf8.DecodeRune(p)
		p = p[size:]
		if r1, r2 := utf16.EncodeRune(r); r1 != utf8.RuneError {
			sum += uint64(r1) + uint64(r2)
			continue
		}
		sum += uint64(r)
	}
	return sum
}

// Murmur3 implementation of Hasher
type murmur64 struct {
	salt []byte
}

// NewMurmur3Hasher returns a Murmur3 hasher that uses salt as a prefix to the
// bytes being summed
func NewMurmur3Hasher(salt []byte) (murmur64, error) {
	if len(salt) != SaltLength {
		return murmur64{}, ErrSaltLengthMismatch
	}

	return murmur64{salt: salt}, nil
}

func (t murmur64) Hash64(p []byte) uint64 {
	h := murmur3.New64()
	h.Write(t.salt)
	h.Write(p)
	return h.Sum64()
}

// Metro Hash implementation of Hasher
type metro struct {
	salt []byte
}

// NewMetroHasher returns a metro64 hasher that uses salt as a
// prefix to the bytes being summed
func NewMetroHasher(salt []byte) (metro, error) {
	if len(salt) != SaltLength {
		return metro{}, ErrSaltLengthMismatch
	}

	return metro{salt: salt}, nil
}

func (m metro) Hash64(p []byte) uint64 {
	h := metrohash.NewMetroHash64()
	h.Write(m.salt)
	h.Write(p)
	return h.Sum64()
}

// dgryski metro implementation of Hasher, seeded
// with the first 8 bytes of the salt
type goMetro struct {
	seed uint64
}

// NewGoMetroHasher returns a seeded metro hasher
func NewGoMetroHasher(salt []byte) (goMetro, error) {
	if len(salt) != SaltLength {
		return goMetro{}, ErrSaltLengthMismatch
	}

	var seed uint64
	for _, b := range salt[:8] {
		seed = seed<<8 | uint64(b)
	}
	return goMetro{seed: seed}, nil
}

func (g goMetro) Hash64(p []byte) uint64 {
	return gometro.Hash64(p, g.seed)
}

// HighwayHash implementation of Hasher, keyed with the salt
type highway struct {
	key []byte
}

// NewHighwayHasher returns a highwayhash hasher keyed with salt
func NewHighwayHasher(salt []byte) (highway, error) {
	if len(salt) != SaltLength {
		return highway{}, ErrSaltLengthMismatch
	}

	return highway{key: salt}, nil
}

func (h highway) Hash64(p []byte) uint64 {
	return highwayhash.Sum64(p, h.key)
}

// xxhash implementation of Hasher
type xxHasher struct {
	salt []byte
}

// NewXXHasher returns a xxhash hasher that uses salt as a prefix
// to the bytes being summed
func NewXXHasher(salt []byte) (xxHasher, error) {
	if len(salt) != SaltLength {
		return xxHasher{}, ErrSaltLengthMismatch
	}

	return xxHasher{salt: salt}, nil
}

func (x xxHasher) Hash64(p []byte) uint64 {
	d := xxhash.New()
	d.Write(x.salt)
	d.Write(p)
	return d.Sum64()
}
