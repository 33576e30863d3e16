// Package pump reconstructs a full k-mer set from a sparse decoded seed set and a recovered
// hash set, by walking rolling-hash extensions constrained to membership in that hash set.
// The hash-set idiom itself (a plain map used as a mutable membership set, drained as items
// are consumed) is grounded on will-rowe/baby-groot's src/lshForest/lshForest.go
// (`seens := make(map[string]bool)`).
package pump

import (
	"github.com/cairn-bio/kiblt/src/kmer"
	"github.com/cairn-bio/kiblt/src/kmerdata"
	"github.com/cairn-bio/kiblt/src/tabhash"
)

// HashSet is a mutable set of recovered 64-bit hashes. Pump consumes from it: every hash it
// matches to a reconstructed k-mer is removed, so a HashSet reflects "still unaccounted for"
// after a Pump call returns.
type HashSet map[uint64]struct{}

// NewHashSet builds a HashSet from a slice of hashes.
func NewHashSet(hashes []uint64) HashSet {
	s := make(HashSet, len(hashes))
	for _, h := range hashes {
		s[h] = struct{}{}
	}
	return s
}

// Pump performs the DFS reconstruction: starting from every seed whose hash is present in
// hashes, it walks forward and reverse rolling-hash extensions, taking the first matching
// nucleotide (in A, C, G, T order) at each step, independently for each direction, and stops
// extending a branch once neither direction finds a hit. hashes is mutated in place: every
// hash consumed by a reconstructed k-mer is removed from it.
func Pump(seeds []kmerdata.KmerData, hashes HashSet, table *tabhash.Table) []kmerdata.KmerData {
	reconstructed := make([]kmerdata.KmerData, 0, len(seeds))
	seen := make(map[uint64]struct{}, len(seeds))
	stack := make([]kmerdata.KmerData, 0, len(seeds))

	push := func(item kmerdata.KmerData) {
		if _, ok := seen[item.H]; ok {
			return
		}
		seen[item.H] = struct{}{}
		reconstructed = append(reconstructed, item)
		stack = append(stack, item)
	}

	for _, s := range seeds {
		if _, ok := hashes[s.H]; !ok {
			continue
		}
		delete(hashes, s.H)
		push(s)
	}

	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if next, ok := tryExtend(c, hashes, table, forward); ok {
			delete(hashes, next.H)
			push(next)
		}
		if next, ok := tryExtend(c, hashes, table, reverse); ok {
			delete(hashes, next.H)
			push(next)
		}
	}

	return reconstructed
}

type rollDirection int

const (
	forward rollDirection = iota
	reverse
)

// tryExtend tries each nucleotide in A, C, G, T order and returns the first roll whose
// resulting hash is present in hashes.
func tryExtend(c kmerdata.KmerData, hashes HashSet, table *tabhash.Table, dir rollDirection) (kmerdata.KmerData, bool) {
	for _, n := range kmer.Nucleotides {
		candidate := c.Kmer.Clone()
		roller := tabhash.NewRollerWithHash(candidate, table, c.H)

		var h uint64
		var err error
		if dir == forward {
			h, err = roller.ForwardRoll(n)
		} else {
			h, err = roller.ReverseRoll(n)
		}
		if err != nil {
			continue
		}
		if _, ok := hashes[h]; ok {
			return kmerdata.New(roller.Kmer(), h, c.Meta), true
		}
	}
	return kmerdata.KmerData{}, false
}
