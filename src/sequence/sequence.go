// Package sequence generates DNA sequences and streams fixed-length k-mers out of them with
// their rolling tabulation hash already maintained, following the Add(sequence []byte) loop
// shape of will-rowe/baby-groot's src/minhash/bottomk.go and src/minhash/kmv.go (decompose a
// read into k-mers over a rolling hasher, evaluate each one as it comes off the roll)
// generalized from ntHash's channel-of-hashes to an iterator of full KmerData, since downstream
// sketches need the packed k-mer and its source metadata, not just its hash.
package sequence

import (
	"math/rand/v2"

	"github.com/cairn-bio/kiblt/src/kmer"
	"github.com/cairn-bio/kiblt/src/kmerdata"
	"github.com/cairn-bio/kiblt/src/tabhash"
)

// Sequence is an ordered run of nucleotides carrying the metadata k-mers cut from it should
// inherit: where in some larger coordinate system it starts, and which logical input set it
// belongs to.
type Sequence struct {
	Nucleotides []kmer.Nucleotide
	BaseOffset  uint64
	SetID       uint64
}

// New wraps a slice of nucleotides as a Sequence at the given offset and set ID.
func New(nts []kmer.Nucleotide, baseOffset, setID uint64) Sequence {
	return Sequence{Nucleotides: nts, BaseOffset: baseOffset, SetID: setID}
}

// Len returns the number of nucleotides in the sequence.
func (s Sequence) Len() int { return len(s.Nucleotides) }

// GetKmers yields every length-L window of s, in order, each carrying its rolling tabulation
// hash under table and metadata {Index: BaseOffset+i, SetID: s.SetID}. It is a one-shot,
// lazy, finite iterator: if s.Len() < L it yields nothing. The rolling hash is updated in
// O(1) between consecutive windows via a tabhash.Roller, rather than recomputed from scratch.
func (s Sequence) GetKmers(l int, table *tabhash.Table) func(func(kmerdata.KmerData) bool) {
	return func(yield func(kmerdata.KmerData) bool) {
		if s.Len() < l {
			return
		}
		first, err := kmer.FromNucleotides(s.Nucleotides[:l])
		if err != nil {
			return
		}
		roller := tabhash.NewRoller(first, table)
		emit := func(i int) bool {
			meta := kmerdata.Metadata{Index: s.BaseOffset + uint64(i), SetID: s.SetID}
			return yield(kmerdata.New(roller.Kmer().Clone(), roller.Hash(), meta))
		}
		if !emit(0) {
			return
		}
		for i := 1; i+l <= s.Len(); i++ {
			if _, err := roller.ForwardRoll(s.Nucleotides[i+l-1]); err != nil {
				return
			}
			if !emit(i) {
				return
			}
		}
	}
}

// DoubleSequence is a pair of sequences used to seed the mutation-detection pipeline: base
// and a clone identical to it except at one recorded position, where the nucleotide has been
// advanced cyclically by one (A->C->G->T->A).
type DoubleSequence struct {
	Base          Sequence
	Mutant        Sequence
	MutationIndex int
	MutationValue kmer.Nucleotide
}

// NewDoubleSequence draws a random DNA sequence of length n (using rng, seeded by the
// caller for reproducibility - no package-level randomness is ever consulted) and a clone
// that differs at position n/2 by one cyclic nucleotide substitution.
func NewDoubleSequence(n int, setID uint64, rng *rand.Rand) DoubleSequence {
	base := make([]kmer.Nucleotide, n)
	for i := range base {
		base[i] = kmer.Nucleotides[rng.IntN(len(kmer.Nucleotides))]
	}
	mutant := make([]kmer.Nucleotide, n)
	copy(mutant, base)
	pos := n / 2
	mutant[pos] = (base[pos] + 1) % kmer.Nucleotide(len(kmer.Nucleotides))

	return DoubleSequence{
		Base:          New(base, 0, setID),
		Mutant:        New(mutant, 0, setID),
		MutationIndex: pos,
		MutationValue: mutant[pos],
	}
}
