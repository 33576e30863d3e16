package pump

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cairn-bio/kiblt/src/kmer"
	"github.com/cairn-bio/kiblt/src/kmerdata"
	"github.com/cairn-bio/kiblt/src/sequence"
	"github.com/cairn-bio/kiblt/src/tabhash"
)

func kmersOf(s string, l int, table *tabhash.Table) []kmerdata.KmerData {
	seq := sequence.New(mustNts(s), 0, 0)
	var out []kmerdata.KmerData
	for kd := range seq.GetKmers(l, table) {
		out = append(out, kd)
	}
	return out
}

func mustNts(s string) []kmer.Nucleotide {
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

func TestPumpReconstructsAllKmersFromFirstSeed(t *testing.T) {
	table := tabhash.NewTable(1)
	allKmers := kmersOf("ACGTACGTACGTACGT", 4, table)

	hashes := make(HashSet, len(allKmers))
	for _, kd := range allKmers {
		hashes[kd.H] = struct{}{}
	}

	seed := []kmerdata.KmerData{allKmers[0]}
	got := Pump(seed, hashes, table)

	gotStrs := make(map[string]bool, len(got))
	for _, kd := range got {
		gotStrs[kd.Kmer.String()] = true
	}
	for _, kd := range allKmers {
		assert.Truef(t, gotStrs[kd.Kmer.String()], "expected pump to reconstruct %q, but it was missing", kd.Kmer.String())
	}
	assert.Empty(t, hashes, "expected pump to drain every hash it consumed")
}

func TestPumpStopsAtHashSetBoundary(t *testing.T) {
	table := tabhash.NewTable(1)
	allKmers := kmersOf("ACGTACGTAC", 4, table)
	require.GreaterOrEqual(t, len(allKmers), 3, "test fixture too short")

	// Only hash the first three k-mers: the walk from seed 0 should stop once it runs past them.
	hashes := make(HashSet, 3)
	for i := 0; i < 3; i++ {
		hashes[allKmers[i].H] = struct{}{}
	}

	got := Pump([]kmerdata.KmerData{allKmers[0]}, hashes, table)
	assert.Len(t, got, 3)
}

func TestProbeMutationFindsKnownSubstitution(t *testing.T) {
	hmerTable := tabhash.NewTable(5)
	// a non-periodic base, so that no single substitution of an earlier window reproduces
	// some other window of the mutated sequence
	base, err := kmer.FromString("GATTCAGCTAAC")
	require.NoError(t, err)
	mutated := base.Clone()
	require.NoError(t, mutated.Set(6, kmer.T)) // base[6] is 'G' -> mutate to 'T'

	hmerLen := 6
	hashes := make(HashSet)
	for start := 0; start+hmerLen <= mutated.Len(); start++ {
		window, err := mutated.Slice(start, hmerLen)
		require.NoError(t, err)
		hashes[tabhash.Hash(window, hmerTable)] = struct{}{}
	}

	idx, val, found := ProbeMutation(base, hmerLen, hashes, hmerTable)
	require.True(t, found, "expected to find the substitution")
	assert.Equal(t, 6, idx)
	assert.Equal(t, kmer.T, val)
}

func TestProbeMutationNoMatchAgainstEmptyHashSet(t *testing.T) {
	hmerTable := tabhash.NewTable(5)
	base, err := kmer.FromString("ACGTACGTACGT")
	require.NoError(t, err)
	hmerLen := 6
	// deliberately leave the hash set empty: no window's hash, substituted or not, should match
	hashes := make(HashSet)

	_, _, found := ProbeMutation(base, hmerLen, hashes, hmerTable)
	assert.False(t, found, "expected no match against an empty hash set")
}

func TestSampleIntervalGeometricGrowth(t *testing.T) {
	i0 := SampleInterval(15, 1.5, 0)
	i1 := SampleInterval(15, 1.5, 1)
	i2 := SampleInterval(15, 1.5, 2)
	assert.EqualValues(t, 15, i0)
	assert.Greater(t, i1, i0)
	assert.Greater(t, i2, i1)
}

func TestSampledIsDeterministicMod(t *testing.T) {
	assert.True(t, Sampled(100, 10), "100 mod 10 == 0, expected sampled")
	assert.False(t, Sampled(101, 10), "101 mod 10 != 0, expected not sampled")
}
