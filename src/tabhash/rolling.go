package tabhash

import (
	"math/bits"

	"github.com/pkg/errors"

	"github.com/cairn-bio/kiblt/src/kmer"
)

// Roller couples a packed Kmer with its tabulation hash and updates both together in O(1)
// per nucleotide, without allocating. It is the hot path every other component in this
// module drives through.
type Roller struct {
	table *Table
	k     *kmer.Kmer
	hash  uint64
}

// NewRoller computes the from-scratch hash of k and wraps it for O(1) updates. k is not
// copied; callers that need the original untouched should Clone it first.
func NewRoller(k *kmer.Kmer, table *Table) *Roller {
	return &Roller{table: table, k: k, hash: Hash(k, table)}
}

// NewRollerWithHash wraps k for O(1) updates using a hash the caller already knows is
// correct for k under table, skipping the from-scratch recompute NewRoller always does. The
// caller is responsible for the invariant hash == Hash(k, table); passing a stale or wrong
// hash silently corrupts every subsequent roll.
func NewRollerWithHash(k *kmer.Kmer, table *Table, hash uint64) *Roller {
	return &Roller{table: table, k: k, hash: hash}
}

// Kmer returns the Roller's current packed k-mer. Callers must not mutate it directly.
func (r *Roller) Kmer() *kmer.Kmer { return r.k }

// Hash returns the Roller's current tabulation hash.
func (r *Roller) Hash() uint64 { return r.hash }

// ForwardRoll drops the first nucleotide, appends next, and updates the hash in O(1).
func (r *Roller) ForwardRoll(next kmer.Nucleotide) (uint64, error) {
	l := r.k.Len()
	if l < 4 {
		if err := r.k.ShiftLeft(next); err != nil {
			return 0, errors.Wrap(err, "forward roll")
		}
		return r.hash, nil
	}
	bFirst := window(r.k, 0)
	h := bits.RotateLeft64(r.hash^r.table.entries[bFirst], -1)
	if err := r.k.ShiftLeft(next); err != nil {
		return 0, errors.Wrap(err, "forward roll")
	}
	bLastNew := window(r.k, l-4)
	h ^= bits.RotateLeft64(r.table.entries[bLastNew], l-4)
	r.hash = h
	return h, nil
}

// ReverseRoll drops the last nucleotide, prepends next, and updates the hash in O(1).
func (r *Roller) ReverseRoll(next kmer.Nucleotide) (uint64, error) {
	l := r.k.Len()
	if l < 4 {
		if err := r.k.ShiftRight(next); err != nil {
			return 0, errors.Wrap(err, "reverse roll")
		}
		return r.hash, nil
	}
	bLastOld := window(r.k, l-4)
	h := bits.RotateLeft64(r.hash^bits.RotateLeft64(r.table.entries[bLastOld], l-4), 1)
	if err := r.k.ShiftRight(next); err != nil {
		return 0, errors.Wrap(err, "reverse roll")
	}
	bFirstNew := window(r.k, 0)
	h ^= r.table.entries[bFirstNew]
	r.hash = h
	return h, nil
}

// Substitute replaces the nucleotide at position pos with next and updates the hash in O(1)
// by recomputing only the (at most four) windows that position touches.
func (r *Roller) Substitute(pos int, next kmer.Nucleotide) (uint64, error) {
	l := r.k.Len()
	if pos < 0 || pos >= l {
		return 0, errors.Errorf("substitute: position %d out of range [0, %d)", pos, l)
	}
	lo := pos - 3
	if lo < 0 {
		lo = 0
	}
	hi := pos
	if hi > l-4 {
		hi = l - 4
	}
	if hi < lo {
		// no window touches this position (kmer shorter than 4 nucleotides)
		if err := r.k.Set(pos, next); err != nil {
			return 0, errors.Wrap(err, "substitute")
		}
		return r.hash, nil
	}
	oldWindows := make(map[int]byte, hi-lo+1)
	for w := lo; w <= hi; w++ {
		oldWindows[w] = window(r.k, w)
	}
	if err := r.k.Set(pos, next); err != nil {
		return 0, errors.Wrap(err, "substitute")
	}
	h := r.hash
	for w := lo; w <= hi; w++ {
		newWindow := window(r.k, w)
		h ^= bits.RotateLeft64(r.table.entries[oldWindows[w]]^r.table.entries[newWindow], w)
	}
	r.hash = h
	return h, nil
}
