package kmerdata

import (
	"testing"

	"github.com/cairn-bio/kiblt/src/kmer"
)

func build(s string, hash uint64, idx uint64) KmerData {
	k, err := kmer.FromString(s)
	if err != nil {
		panic(err)
	}
	return New(k, hash, Metadata{Index: idx})
}

func TestXORIsItsOwnInverse(t *testing.T) {
	x := build("ACGT", 111, 1)
	y := build("TTTT", 222, 2)
	xy := x.XOR(y)
	back := xy.XOR(y)
	if !back.Equals(x) {
		t.Fatalf("xor is not self-inverse: got %+v, want %+v", back, x)
	}
}

func TestXORCommutative(t *testing.T) {
	x := build("ACGT", 111, 1)
	y := build("TTTT", 222, 2)
	if !x.XOR(y).Equals(y.XOR(x)) {
		t.Fatalf("xor is not commutative")
	}
}

func TestXORAssociative(t *testing.T) {
	x := build("ACGT", 111, 1)
	y := build("TTTT", 222, 2)
	z := build("GGGG", 333, 3)
	left := x.XOR(y).XOR(z)
	right := x.XOR(y.XOR(z))
	if !left.Equals(right) {
		t.Fatalf("xor is not associative: %+v != %+v", left, right)
	}
}

func TestZeroIsIdentity(t *testing.T) {
	x := build("ACGT", 111, 1)
	zero := Zero(4)
	if !x.XOR(zero).Equals(x) {
		t.Fatal("zero value is not an identity element for xor")
	}
	if !zero.IsZero() {
		t.Fatal("Zero() should report IsZero() true")
	}
}
