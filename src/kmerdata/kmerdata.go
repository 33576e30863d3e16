// Package kmerdata defines the XOR-closed (Kmer, hash, metadata) tuple that IBLT cells
// aggregate. See MichaelMure-go-iblite's bucket fields (idSum/hashSum/count) for the shape
// this generalizes: a cell-friendly value that is "the XOR of everything inserted into it".
package kmerdata

import "github.com/cairn-bio/kiblt/src/kmer"

// Metadata carries the small integer fields that XOR-close alongside a Kmer and its hash:
// the k-mer's position in the source sequence coordinates, the originating set ID, and a mutation locator for
// the mutation-detection pipeline. Every field is XORed independently, so a cell holding
// exactly one inserted item can always recover that item's metadata by XORing against zero.
type Metadata struct {
	Index         uint64
	SetID         uint64
	MutationIndex uint64
	MutationValue uint64
}

// XOR returns the field-wise XOR of m and other.
func (m Metadata) XOR(other Metadata) Metadata {
	return Metadata{
		Index:         m.Index ^ other.Index,
		SetID:         m.SetID ^ other.SetID,
		MutationIndex: m.MutationIndex ^ other.MutationIndex,
		MutationValue: m.MutationValue ^ other.MutationValue,
	}
}

// KmerData is the tuple (Kmer, hash, Metadata) that a k-mer sketch's cells aggregate.
// Equality for sketch purposes is hash-only, which accepts that two distinct k-mers with
// colliding hashes are treated as one; Equals below additionally compares packed bytes for callers that want true
// equality rather than sketch-style dedup.
type KmerData struct {
	Kmer *kmer.Kmer
	H    uint64
	Meta Metadata
}

// New builds a KmerData from its three constituent fields.
func New(k *kmer.Kmer, hash uint64, meta Metadata) KmerData {
	return KmerData{Kmer: k, H: hash, Meta: meta}
}

// Zero returns the neutral element for a sketch of k-mers with the given fixed length: an
// all-zero-byte Kmer (which happens to print as a run of "A"s - its content is never
// inspected unless the cell is pure), hash 0, and zero metadata.
func Zero(length int) KmerData {
	z, err := kmer.New(length)
	if err != nil {
		panic(err)
	}
	return KmerData{Kmer: z, H: 0, Meta: Metadata{}}
}

// Hash returns the item's hash - its identity for sketch purity checks and set membership.
func (d KmerData) Hash() uint64 { return d.H }

// IsZero reports whether d is the neutral element a cell starts from, i.e. whether its hash
// is zero. A cell is pure, not empty, when its hash is nonzero and self-consistent (see the
// sketch package); this method only distinguishes "definitely empty" from "might hold data".
func (d KmerData) IsZero() bool { return d.H == 0 }

// XOR returns the field-wise XOR of d and other: their packed Kmer bytes, their hashes, and
// their metadata. Both operands must carry Kmers of the same length - every item inserted
// into a single k-mer sketch does, by construction, so a mismatch here is an internal
// invariant violation rather than a recoverable input error.
func (d KmerData) XOR(other KmerData) KmerData {
	k, err := d.Kmer.XOR(other.Kmer)
	if err != nil {
		panic(err)
	}
	return KmerData{
		Kmer: k,
		H:    d.H ^ other.H,
		Meta: d.Meta.XOR(other.Meta),
	}
}

// Equals reports true equality: same hash AND same packed bytes. Use this (rather than
// comparing Hash() alone) whenever a true hash collision - not just sketch-level dedup -
// would matter to the caller.
func (d KmerData) Equals(other KmerData) bool {
	return d.H == other.H && d.Kmer.Equals(other.Kmer)
}
