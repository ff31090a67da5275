package keys

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"sort"
	"sync"
)

// keys look like
//  k:0e1f461bbefa6e07
//  k:59245d7c68b28404
// and anagram groups like
//  listen silent enlist tinsel
// where every member of a group lands in the same bucket
// under the character sum hash.

const (
	Prefix = "k:"
	KeyLen = 8
)

// Fresh returns n random keys
func Fresh(n int) []string {
	b := make([]byte, n*KeyLen)
	if _, err := rand.Read(b); err != nil {
		log.Fatalf("could not generate %d random keys", n)
	}

	keys := make([]string, n)
	for i := range keys {
		keys[i] = Prefix + hex.EncodeToString(b[i*KeyLen:(i+1)*KeyLen])
	}
	return keys
}

// Anagrams returns up to n distinct permutations of word in
// lexicographic order, starting with the smallest one.
func Anagrams(word string, n int) []string {
	letters := []rune(word)
	sort.Slice(letters, func(i, j int) bool { return letters[i] < letters[j] })

	var out []string
	for len(out) < n {
		out = append(out, string(letters))
		if !nextPermutation(letters) {
			break
		}
	}
	return out
}

// nextPermutation rearranges r into its lexicographic successor,
// returning false once r is the last permutation
func nextPermutation(r []rune) bool {
	i := len(r) - 2
	for i >= 0 && r[i] >= r[i+1] {
		i--
	}
	if i < 0 {
		return false
	}
	j := len(r) - 1
	for r[j] <= r[i] {
		j--
	}
	r[i], r[j] = r[j], r[i]
	for a, b := i+1, len(r)-1; a < b; a, b = a+1, b-1 {
		r[a], r[b] = r[b], r[a]
	}
	return true
}

// Mix fans in the colliding keys with n fresh keys. The relative
// order of each source is kept but their interleaving is not.
func Mix(colliding []string, n int) <-chan string {
	return mixes(emit(colliding), emit(Fresh(n)))
}

// emit writes every key of s to a channel and then closes it
func emit(s []string) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)
		for _, k := range s {
			out <- k
		}
	}()
	return out
}

// mixes will read c1 & c2 to exhaustion, write the output
// to a channel and then close it
func mixes(c1, c2 <-chan string) <-chan string {
	var ws sync.WaitGroup
	out := make(chan string)
	ws.Add(2)
	f := func(c <-chan string) {
		defer ws.Done()
		for k := range c {
			out <- k
		}
	}
	// fan in c1 & c2
	go f(c1)
	go f(c2)
	// and wait so we can close the out channel
	go func() {
		ws.Wait()
		close(out)
	}()

	return out
}
