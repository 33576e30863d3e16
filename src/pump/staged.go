package pump

import (
	"math"

	"github.com/cairn-bio/kiblt/src/kmerdata"
	"github.com/cairn-bio/kiblt/src/sketch"
	"github.com/cairn-bio/kiblt/src/tabhash"
)

// SampleInterval returns the geometrically growing sampling interval for stage i of a
// staged pump: ceil(k * shrink^i). Stage 0 samples the densest (smallest interval); later
// stages sample sparser subsets of the same k-mers, which are cheaper to encode.
func SampleInterval(k int, shrink float64, stage int) uint64 {
	return uint64(math.Ceil(float64(k) * math.Pow(shrink, float64(stage))))
}

// Sampled reports whether an item with the given hash belongs in a sketch built at the
// given interval: hash mod interval == 0.
func Sampled(hash, interval uint64) bool {
	if interval == 0 {
		return false
	}
	return hash%interval == 0
}

// StagedPump drives the "hashset-extended" pipeline's reconstruction: decode each stage in
// order, Pump its seeds, and before the next stage decodes, encode this stage's newly pumped
// items into it. Pumped items that the next stage also sampled cancel out of it
// (set-difference); pumped items it did not sample are added to it instead, and items pumped
// by earlier stages are not encoded into it, so its decode can yield already reconstructed
// k-mers as well as missing ones. Pump skips those, since their hashes are already consumed.
// residual is a final separate sketch whose decode is pumped last, to catch anything the
// rolling walks could not reach from any stage's seeds.
func StagedPump(stages []*sketch.Sketch[kmerdata.KmerData], residual *sketch.Sketch[kmerdata.KmerData], hashes HashSet, table *tabhash.Table, controller sketch.Controller) []kmerdata.KmerData {
	var all []kmerdata.KmerData

	for i, stage := range stages {
		seeds := stage.Decode(controller)
		seedsCopy := append([]kmerdata.KmerData(nil), seeds...)
		stage.Release(seeds)

		pumped := Pump(seedsCopy, hashes, table)
		all = append(all, pumped...)

		if i+1 < len(stages) {
			stages[i+1].Encode(pumped)
		}
	}

	leftovers := residual.Decode(controller)
	leftoverSeeds := append([]kmerdata.KmerData(nil), leftovers...)
	residual.Release(leftovers)
	all = append(all, Pump(leftoverSeeds, hashes, table)...)

	return all
}
