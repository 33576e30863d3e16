package sketch

import (
	"github.com/cairn-bio/kiblt/src/tabhash"
)

// Table is a single fixed-size IBLT: M cells, each the XOR of every item routed to it.
// Insertion index and the purity double-check both come from the same generic tabulation
// hash of an item's own Hash(), following other_examples/MichaelMure-go-iblite__ktable.go's
// isPure (a cell is readable exactly when its content hashes back to the slot it sits in).
//
// A Table is not safe for concurrent encode/decode calls against itself; the Sketch
// coordinator gives each Table its own goroutine per round so this never matters in practice.
type Table[T Item[T]] struct {
	cells    []T
	modified map[int]struct{}
	idx      *tabhash.GenericTable
	zero     func() T
	decoded  *Pool[T]
}

// NewTable allocates a Table with the given number of cells. idx is the per-table generic
// tabulation hash used both to place items and to purity-check a cell's content; zero
// returns T's neutral element (needed because T is a generic type parameter, not a concrete
// struct this package can zero-value-construct on its own, e.g. kmerdata.KmerData's zero
// value carries a nil *kmer.Kmer rather than an all-zero packed one).
func NewTable[T Item[T]](cells int, idx *tabhash.GenericTable, zero func() T) *Table[T] {
	t := &Table[T]{
		cells:    make([]T, cells),
		modified: make(map[int]struct{}),
		idx:      idx,
		zero:     zero,
		decoded:  NewPool[T](16),
	}
	for i := range t.cells {
		t.cells[i] = zero()
	}
	return t
}

// Len returns the number of cells in the table.
func (t *Table[T]) Len() int { return len(t.cells) }

func (t *Table[T]) index(item T) int {
	return int(t.idx.Hash(item.Hash()) % uint64(len(t.cells)))
}

// Encode XORs every item in items into its cell, marking that cell modified. Encode is the
// only way a cell's content changes other than Decode resetting a peeled cell to zero.
func (t *Table[T]) Encode(items []T) {
	for _, item := range items {
		i := t.index(item)
		t.cells[i] = t.cells[i].XOR(item)
		t.modified[i] = struct{}{}
	}
}

// isPure reports whether the cell at i currently holds exactly one item's worth of content:
// nonzero, and its hash routes back to i under this table's own index function.
func (t *Table[T]) isPure(i int) bool {
	c := t.cells[i]
	if c.IsZero() {
		return false
	}
	return t.index(c) == i
}

// Decode makes one pass over the cells touched since the last Decode call, emitting and
// resetting every pure one, then unconditionally clears the modified-index set. Impure
// cells are not tracked as modified again until some later Encode (from cross-peeling
// another table's emitted items into this one) touches them - that's what lets iterative
// peeling across a multi-table Sketch converge without rescanning untouched cells.
//
// The returned slice is pooled; the caller must Release it via ReleaseDecoded.
func (t *Table[T]) Decode() []T {
	out := t.decoded.Get()
	for i := range t.modified {
		if t.isPure(i) {
			out = append(out, t.cells[i])
			t.cells[i] = t.zero()
		}
	}
	t.modified = make(map[int]struct{})
	return out
}

// ReleaseDecoded returns a slice obtained from Decode to its pool.
func (t *Table[T]) ReleaseDecoded(s []T) { t.decoded.Put(s) }

// Snapshot returns a pooled copy of every nonzero cell currently in the table, regardless of
// purity or modified status. Sketch.Residual builds its snapshot from it.
func (t *Table[T]) Snapshot() []T {
	out := t.decoded.Get()
	for _, c := range t.cells {
		if !c.IsZero() {
			out = append(out, c)
		}
	}
	return out
}
