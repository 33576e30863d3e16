package pump

import (
	"github.com/cairn-bio/kiblt/src/kmerdata"
	"github.com/cairn-bio/kiblt/src/sketch"
	"github.com/cairn-bio/kiblt/src/tabhash"
)

// IteratedPump drives the "kmer" pipeline's reconstruction loop: run Pump, re-encode what it
// found back into sk (the set-difference trick - XOR is its own inverse, so this cancels
// those items out of the sketch), decode the result to get leftovers, and run Pump again on
// the leftovers as new seeds against the still-shrinking hashes set. It stops once a Pump
// call finds nothing new.
func IteratedPump(sk *sketch.Sketch[kmerdata.KmerData], seeds []kmerdata.KmerData, hashes HashSet, table *tabhash.Table, controller sketch.Controller) []kmerdata.KmerData {
	var all []kmerdata.KmerData
	currentSeeds := seeds

	for {
		pumped := Pump(currentSeeds, hashes, table)
		if len(pumped) == 0 {
			return all
		}
		all = append(all, pumped...)

		sk.Encode(pumped)
		leftovers := sk.Decode(controller)
		currentSeeds = append([]kmerdata.KmerData(nil), leftovers...)
		sk.Release(leftovers)

		if len(currentSeeds) == 0 {
			return all
		}
	}
}
