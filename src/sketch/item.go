// Package sketch implements the Invertible Bloom Lookup Table: a fixed-size, XOR-aggregating
// cell table with peeling decode, and a multi-table coordinator that cross-peels between
// tables until a tabu controller calls a halt. The bucket layout and peeling loop are
// grounded on other_examples/MichaelMure-go-iblite__ktable.go (idSum/hashSum/count buckets,
// isPure, double-hashed indices, a Peel that drains a queue of pure indices) and
// other_examples/yangl1996-rateless-set-reconcile__sketch.go (apply/XOR, Subtract) - read as
// algorithm references, since neither library's concrete uint64-only payload supports this
// package's generic KmerData cells.
package sketch

// Item is the constraint every sketch cell payload must satisfy: XOR-closed, with an
// identity element and an identity-deriving hash used to index and purity-check a cell.
// kmerdata.KmerData and this package's own HashItem both satisfy it.
type Item[T any] interface {
	// XOR returns the result of combining the receiver with other.
	XOR(other T) T
	// IsZero reports whether the receiver is the neutral (never-inserted-into) element.
	IsZero() bool
	// Hash returns the item's identity - used both to place it in a cell and, for a pure
	// cell, to double-check that the cell's current index matches where this hash belongs.
	Hash() uint64
}

// HashItem is the sketch payload used by a hash-only sketch (spec §4 component C6): the
// item and its own identity are the same 64-bit value.
type HashItem uint64

// XOR returns h XOR other.
func (h HashItem) XOR(other HashItem) HashItem { return h ^ other }

// IsZero reports whether h is the neutral element.
func (h HashItem) IsZero() bool { return h == 0 }

// Hash returns h itself.
func (h HashItem) Hash() uint64 { return uint64(h) }

// ZeroHashItem is HashItem's neutral element, exposed for callers that build a Sketch[HashItem].
func ZeroHashItem() HashItem { return HashItem(0) }
