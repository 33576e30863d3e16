package sequence

import (
	"math/rand/v2"
	"testing"

	"github.com/cairn-bio/kiblt/src/kmer"
	"github.com/cairn-bio/kiblt/src/tabhash"
)

func nts(s string) []kmer.Nucleotide {
	k, err := kmer.FromString(s)
	if err != nil {
		panic(err)
	}
	out := make([]kmer.Nucleotide, k.Len())
	for i := range out {
		out[i], _ = k.Get(i)
	}
	return out
}

func TestGetKmersWindowsAndMetadata(t *testing.T) {
	table := tabhash.NewTable(1)
	seq := New(nts("ACGTACGTAC"), 100, 7)

	var windows []string
	var indices []uint64
	for kd := range seq.GetKmers(4, table) {
		windows = append(windows, kd.Kmer.String())
		indices = append(indices, kd.Meta.Index)
		if kd.Meta.SetID != 7 {
			t.Fatalf("expected SetID 7, got %d", kd.Meta.SetID)
		}
		want := tabhash.Hash(kd.Kmer, table)
		if kd.H != want {
			t.Fatalf("rolling hash mismatch for %s: got %d, want %d", kd.Kmer.String(), kd.H, want)
		}
	}

	wantWindows := []string{"ACGT", "CGTA", "GTAC", "TACG", "ACGT", "CGTA", "GTAC"}
	if len(windows) != len(wantWindows) {
		t.Fatalf("got %d windows, want %d", len(windows), len(wantWindows))
	}
	for i, w := range wantWindows {
		if windows[i] != w {
			t.Fatalf("window %d: got %q, want %q", i, windows[i], w)
		}
		if indices[i] != 100+uint64(i) {
			t.Fatalf("window %d: got index %d, want %d", i, indices[i], 100+uint64(i))
		}
	}
}

func TestGetKmersShorterThanLYieldsNothing(t *testing.T) {
	table := tabhash.NewTable(1)
	seq := New(nts("ACG"), 0, 0)
	count := 0
	for range seq.GetKmers(4, table) {
		count++
	}
	if count != 0 {
		t.Fatalf("expected no windows for a sequence shorter than L, got %d", count)
	}
}

func TestGetKmersStopsWhenConsumerBreaksEarly(t *testing.T) {
	table := tabhash.NewTable(1)
	seq := New(nts("ACGTACGTAC"), 0, 0)
	count := 0
	for range seq.GetKmers(4, table) {
		count++
		if count == 2 {
			break
		}
	}
	if count != 2 {
		t.Fatalf("expected exactly 2 windows before breaking, got %d", count)
	}
}

func TestDoubleSequenceDiffersAtExactlyOnePosition(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	ds := NewDoubleSequence(20, 3, rng)

	if ds.Base.Len() != 20 || ds.Mutant.Len() != 20 {
		t.Fatalf("expected both sequences to have length 20")
	}
	if ds.MutationIndex != 10 {
		t.Fatalf("expected mutation at index len/2=10, got %d", ds.MutationIndex)
	}
	diffs := 0
	for i := range ds.Base.Nucleotides {
		if ds.Base.Nucleotides[i] != ds.Mutant.Nucleotides[i] {
			diffs++
			if i != ds.MutationIndex {
				t.Fatalf("unexpected difference at position %d", i)
			}
		}
	}
	if diffs != 1 {
		t.Fatalf("expected exactly 1 differing position, got %d", diffs)
	}
	want := (ds.Base.Nucleotides[ds.MutationIndex] + 1) % kmer.Nucleotide(len(kmer.Nucleotides))
	if ds.MutationValue != want {
		t.Fatalf("mutation value mismatch: got %v, want %v", ds.MutationValue, want)
	}
}
