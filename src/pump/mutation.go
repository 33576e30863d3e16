package pump

import (
	"github.com/cairn-bio/kiblt/src/kmer"
	"github.com/cairn-bio/kiblt/src/tabhash"
)

// ProbeMutation locates a single-nucleotide substitution inside k by sliding an hmerLen
// window across every position, and at every position inside that window trying every
// non-identity nucleotide substitution (via C3's O(1) Substitute), checking the resulting
// h-mer hash against hmerHashes. The first hit wins; ties are broken by window order, then
// position within the window, then nucleotide order (A, C, G, T), all deterministic. Returns found=false if no substitution
// anywhere in k produces an h-mer hash present in hmerHashes.
func ProbeMutation(k *kmer.Kmer, hmerLen int, hmerHashes HashSet, hmerTable *tabhash.Table) (index int, value kmer.Nucleotide, found bool) {
	kl := k.Len()
	for start := 0; start+hmerLen <= kl; start++ {
		window, err := k.Slice(start, hmerLen)
		if err != nil {
			continue
		}
		for local := 0; local < hmerLen; local++ {
			orig, err := window.Get(local)
			if err != nil {
				continue
			}
			for _, n := range kmer.Nucleotides {
				if n == orig {
					continue
				}
				probe := window.Clone()
				roller := tabhash.NewRoller(probe, hmerTable)
				h, err := roller.Substitute(local, n)
				if err != nil {
					continue
				}
				if _, ok := hmerHashes[h]; ok {
					return start + local, n, true
				}
			}
		}
	}
	return 0, 0, false
}
