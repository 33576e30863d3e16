package kmer

import "testing"

func TestFromStringRoundTrip(t *testing.T) {
	seqs := []string{"A", "ACGT", "ACGTACGT", "GATTACA", "TTTTTTTTTTTTTTTTTTTTTTTTTTTTTTTT"}
	for _, s := range seqs {
		k, err := FromString(s)
		if err != nil {
			t.Fatalf("FromString(%q) failed: %v", s, err)
		}
		if k.String() != s {
			t.Fatalf("round trip mismatch: got %q, want %q", k.String(), s)
		}
		// the final byte's unused low bits must always be zero
		if k.length%4 != 0 {
			lastByte := k.bytes[len(k.bytes)-1]
			usedBits := uint(2 * (k.length % 4))
			mask := byte(0xff) >> usedBits
			if lastByte&mask != 0 {
				t.Fatalf("unused trailing bits not zero in %q: %08b", s, lastByte)
			}
		}
	}
}

func TestFromStringInvalid(t *testing.T) {
	if _, err := FromString(""); err == nil {
		t.Fatal("expected error for empty string")
	}
	if _, err := FromString("ACGTN"); err == nil {
		t.Fatal("expected error for non-ACGT character")
	}
}

func TestGetSet(t *testing.T) {
	k, err := New(4)
	if err != nil {
		t.Fatal(err)
	}
	if err := k.Set(0, A); err != nil {
		t.Fatal(err)
	}
	if err := k.Set(1, C); err != nil {
		t.Fatal(err)
	}
	if err := k.Set(2, G); err != nil {
		t.Fatal(err)
	}
	if err := k.Set(3, T); err != nil {
		t.Fatal(err)
	}
	if k.String() != "ACGT" {
		t.Fatalf("got %q, want ACGT", k.String())
	}
	if _, err := k.Get(4); err == nil {
		t.Fatal("expected out of bounds error")
	}
}

func TestShiftLeft(t *testing.T) {
	k, err := FromString("ACGTACGT")
	if err != nil {
		t.Fatal(err)
	}
	if err := k.ShiftLeft(A); err != nil {
		t.Fatal(err)
	}
	if k.String() != "CGTACGTA" {
		t.Fatalf("got %q, want CGTACGTA", k.String())
	}
}

func TestShiftRight(t *testing.T) {
	k, err := FromString("ACGTACGT")
	if err != nil {
		t.Fatal(err)
	}
	if err := k.ShiftRight(T); err != nil {
		t.Fatal(err)
	}
	if k.String() != "TACGTACG" {
		t.Fatalf("got %q, want TACGTACG", k.String())
	}
}

func TestXORInverse(t *testing.T) {
	a, _ := FromString("ACGTACGT")
	b, _ := FromString("TTTTGGGG")
	ab, err := a.XOR(b)
	if err != nil {
		t.Fatal(err)
	}
	back, err := ab.XOR(b)
	if err != nil {
		t.Fatal(err)
	}
	if !back.Equals(a) {
		t.Fatalf("xor is not its own inverse: got %q, want %q", back.String(), a.String())
	}
}

func TestXORLengthMismatch(t *testing.T) {
	a, _ := FromString("ACGT")
	b, _ := FromString("ACG")
	if _, err := a.XOR(b); err == nil {
		t.Fatal("expected length mismatch error")
	}
}

func TestSlice(t *testing.T) {
	k, err := FromString("ACGTACGT")
	if err != nil {
		t.Fatal(err)
	}
	sub, err := k.Slice(2, 4)
	if err != nil {
		t.Fatal(err)
	}
	if sub.String() != "GTAC" {
		t.Fatalf("got %q, want GTAC", sub.String())
	}
	if _, err := k.Slice(6, 4); err == nil {
		t.Fatal("expected out of bounds error for a slice past the end")
	}
}

func TestEquals(t *testing.T) {
	a, _ := FromString("ACGTACGT")
	b, _ := FromString("ACGTACGT")
	c, _ := FromString("ACGTACGA")
	if !a.Equals(b) {
		t.Fatal("expected equal kmers to compare equal")
	}
	if a.Equals(c) {
		t.Fatal("expected different kmers to compare unequal")
	}
}
