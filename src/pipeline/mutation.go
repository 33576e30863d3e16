package pipeline

import (
	"math/rand/v2"
	"time"

	"github.com/cairn-bio/kiblt/src/kmer"
	"github.com/cairn-bio/kiblt/src/kmerdata"
	"github.com/cairn-bio/kiblt/src/pump"
	"github.com/cairn-bio/kiblt/src/sequence"
	"github.com/cairn-bio/kiblt/src/sketch"
	"github.com/cairn-bio/kiblt/src/tabhash"
)

// RunMutationPipeline generates cfg.NumSequences double-sequences (a base sequence and a
// one-nucleotide mutant clone), encodes the base sequence's k-mers into a main sketch
// tagging each one with the sequence's recorded mutation position, and encodes the mutant
// sequence's half-length h-mers into a hash-only sketch. After decoding both, every
// recovered k-mer whose window straddles its sequence's mutation is probed (C3's
// Substitute, via pump.ProbeMutation) against the recovered h-mer hash set.
func RunMutationPipeline(info *Info, cfg *MutationPipelineConfig) (*RunReport, error) {
	started := time.Now()
	info.Mutation = cfg

	kmerTable := tabhash.NewTable(cfg.Seed)
	hmerTable := tabhash.NewTable(cfg.Seed ^ 0xA5A5A5A5A5A5A5A5)
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9E3779B97F4A7C15))

	type mutationRecord struct {
		globalMutationIndex uint64
		mutationValue       kmer.Nucleotide
	}

	var baseSeqs, mutantSeqs []sequence.Sequence
	records := make(map[uint64]mutationRecord, cfg.NumSequences)
	offset := uint64(0)
	for i := 0; i < cfg.NumSequences; i++ {
		ds := sequence.NewDoubleSequence(cfg.SequenceLen, uint64(i), rng)
		baseSeqs = append(baseSeqs, sequence.New(ds.Base.Nucleotides, offset, uint64(i)))
		mutantSeqs = append(mutantSeqs, sequence.New(ds.Mutant.Nucleotides, offset, uint64(i)))
		records[uint64(i)] = mutationRecord{
			globalMutationIndex: offset + uint64(ds.MutationIndex),
			mutationValue:       ds.MutationValue,
		}
		offset += uint64(cfg.SequenceLen)
	}

	baseKmers := IngestSequences(baseSeqs, cfg.KmerLen, kmerTable, info.NumProc)
	for i := range baseKmers {
		rec := records[baseKmers[i].Meta.SetID]
		baseKmers[i].Meta.MutationIndex = rec.globalMutationIndex
		baseKmers[i].Meta.MutationValue = uint64(rec.mutationValue)
	}

	mutantHmers := IngestSequences(mutantSeqs, cfg.HmerLen, hmerTable, info.NumProc)

	mainSketch, err := sketch.NewSketch[kmerdata.KmerData](cfg.NumTables, cfg.TotalCells, cfg.Seed,
		func() kmerdata.KmerData { return kmerdata.Zero(cfg.KmerLen) })
	if err != nil {
		return nil, err
	}
	hmerSketch, err := sketch.NewSketch[sketch.HashItem](cfg.NumTables, cfg.TotalCells, cfg.Seed^1, sketch.ZeroHashItem)
	if err != nil {
		return nil, err
	}

	mainSketch.Encode(baseKmers)
	hmerHashItems := make([]sketch.HashItem, len(mutantHmers))
	for i, hm := range mutantHmers {
		hmerHashItems[i] = sketch.HashItem(hm.H)
	}
	hmerSketch.Encode(hmerHashItems)

	recoveredKmers := mainSketch.Decode(sketch.NewTabuController(cfg.TabuLimit))
	defer mainSketch.Release(recoveredKmers)
	recoveredHmerHashes := hmerSketch.Decode(sketch.NewTabuController(cfg.TabuLimit))
	defer hmerSketch.Release(recoveredHmerHashes)

	hashSet := make(pump.HashSet, len(recoveredHmerHashes))
	for _, h := range recoveredHmerHashes {
		hashSet[h.Hash()] = struct{}{}
	}

	mutationsFound := 0
	for _, kd := range recoveredKmers {
		m := kd.Meta.MutationIndex
		i := kd.Meta.Index
		if m < i || m >= i+uint64(cfg.KmerLen) {
			continue // this k-mer's window doesn't straddle its sequence's mutation
		}
		wantPos := int(m - i)
		wantVal := kmer.Nucleotide(kd.Meta.MutationValue)

		gotPos, gotVal, found := pump.ProbeMutation(kd.Kmer, cfg.HmerLen, hashSet, hmerTable)
		if found && gotPos == wantPos && gotVal == wantVal {
			mutationsFound++
		}
	}

	return &RunReport{
		RunID:          info.RunID,
		Pipeline:       "mutation",
		StartedAt:      started,
		Duration:       time.Since(started),
		InputCount:     len(baseKmers),
		RecoveredCount: len(recoveredKmers),
		MutationsFound: mutationsFound,
		Config:         info,
	}, nil
}
