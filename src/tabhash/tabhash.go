// Package tabhash implements the tabulation hash used to index and identify packed k-mers,
// along with O(1) rolling and single-position-substitution updates of that hash.
package tabhash

import (
	"encoding/binary"
	"math/bits"

	"github.com/cespare/xxhash/v2"
	"github.com/twmb/murmur3"

	"github.com/cairn-bio/kiblt/src/kmer"
)

// Table is a 256-entry tabulation table indexed by an 8-bit, byte-aligned window of a
// packed k-mer (4 nucleotides).
type Table struct {
	entries [256]uint64
}

// NewTable builds a deterministic Table from seed. Entries are derived with
// cespare/xxhash/v2 rather than a PRNG so construction needs no mutable generator state and
// stays trivially reproducible across runs - any pairwise-distinct per-table seeding scheme
// is sufficient (see DESIGN.md), and hashing seed‖index is the simplest one available from
// the stack already in use elsewhere in this module.
func NewTable(seed uint64) *Table {
	t := &Table{}
	var buf [9]byte
	binary.LittleEndian.PutUint64(buf[:8], seed)
	for i := 0; i < 256; i++ {
		buf[8] = byte(i)
		t.entries[i] = xxhash.Sum64(buf[:])
	}
	return t
}

// DeriveSeed produces a seed that is pairwise-independent (with high probability) from
// baseSeed, for use as the per-table seed in a multi-table sketch (spec §4.4's "indexer
// independence"). It uses a different hash family (murmur3) to the one Table itself uses
// (xxhash), so the two constructions don't correlate.
func DeriveSeed(baseSeed uint64, tableIndex int) uint64 {
	var buf [9]byte
	binary.LittleEndian.PutUint64(buf[:8], baseSeed)
	buf[8] = byte(tableIndex)
	return murmur3.SeedSum64(uint64(tableIndex)+1, buf[:])
}

// window extracts the 8-bit, byte-aligned window of k starting at bit offset 2*pos,
// assembled from at most two consecutive bytes of the packed representation.
func window(k *kmer.Kmer, pos int) byte {
	b := k.Bytes()
	byteIdx := pos / 4
	bitWithinByte := uint(2 * (pos % 4))
	var b0, b1 byte
	b0 = b[byteIdx]
	if byteIdx+1 < len(b) {
		b1 = b[byteIdx+1]
	}
	combined := uint16(b0)<<8 | uint16(b1)
	return byte((combined >> (8 - bitWithinByte)) & 0xff)
}

// Hash computes the tabulation hash of k from scratch: the XOR, over every byte-aligned
// window k=0..L-4, of table[window(k)] rotated left by k bits. A Kmer shorter than 4
// nucleotides hashes to 0.
func Hash(k *kmer.Kmer, table *Table) uint64 {
	l := k.Len()
	if l < 4 {
		return 0
	}
	var h uint64
	for pos := 0; pos <= l-4; pos++ {
		h ^= bits.RotateLeft64(table.entries[window(k, pos)], pos)
	}
	return h
}

// GenericTable is the byte-wise tabulation hash u64 -> u64 used by the sketch package's
// purity predicate (spec §4.2's "separate generic tabulation hash"): eight 256-entry tables,
// one per input byte, XORed together.
type GenericTable struct {
	tables [8][256]uint64
}

// NewGenericTable builds a deterministic GenericTable from seed.
func NewGenericTable(seed uint64) *GenericTable {
	g := &GenericTable{}
	var buf [10]byte
	binary.LittleEndian.PutUint64(buf[:8], seed)
	for byteIdx := 0; byteIdx < 8; byteIdx++ {
		buf[8] = byte(byteIdx)
		for row := 0; row < 256; row++ {
			buf[9] = byte(row)
			g.tables[byteIdx][row] = xxhash.Sum64(buf[:])
		}
	}
	return g
}

// Hash returns the tabulation hash of x.
func (g *GenericTable) Hash(x uint64) uint64 {
	var h uint64
	for i := 0; i < 8; i++ {
		h ^= g.tables[i][byte(x>>(8*i))]
	}
	return h
}
