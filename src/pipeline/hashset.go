package pipeline

import (
	"math/rand/v2"
	"time"

	"github.com/cairn-bio/kiblt/src/kmerdata"
	"github.com/cairn-bio/kiblt/src/pump"
	"github.com/cairn-bio/kiblt/src/sequence"
	"github.com/cairn-bio/kiblt/src/sketch"
	"github.com/cairn-bio/kiblt/src/tabhash"
)

// RunHashsetExtendedPipeline builds a hash-only sketch over every k-mer plus cfg.Stages
// k-mer sketches, each sampled at a geometrically growing interval, and a final residual
// sketch catching what the staged rolling walks can't reach. It decodes the hash sketch once
// for the membership set every stage's Pump call probes against, then runs StagedPump.
func RunHashsetExtendedPipeline(info *Info, cfg *HashsetPipelineConfig) (*RunReport, error) {
	started := time.Now()
	info.Hashset = cfg

	table := tabhash.NewTable(cfg.Seed)
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9E3779B97F4A7C15))

	seqs := make([]sequence.Sequence, cfg.NumSequences)
	offset := uint64(0)
	for i := range seqs {
		ds := sequence.NewDoubleSequence(cfg.SequenceLen, uint64(i), rng)
		seqs[i] = sequence.New(ds.Base.Nucleotides, offset, uint64(i))
		offset += uint64(cfg.SequenceLen)
	}

	items := IngestSequences(seqs, cfg.KmerLen, table, info.NumProc)

	hashSketch, err := sketch.NewSketch[sketch.HashItem](cfg.NumTables, cfg.TotalCells, cfg.Seed^1, sketch.ZeroHashItem)
	if err != nil {
		return nil, err
	}
	hashItems := make([]sketch.HashItem, len(items))
	for i, it := range items {
		hashItems[i] = sketch.HashItem(it.H)
	}
	hashSketch.Encode(hashItems)
	recoveredHashes := hashSketch.Decode(sketch.NewTabuController(cfg.TabuLimit))
	defer hashSketch.Release(recoveredHashes)

	hashSet := make(pump.HashSet, len(recoveredHashes))
	for _, h := range recoveredHashes {
		hashSet[h.Hash()] = struct{}{}
	}

	stages := make([]*sketch.Sketch[kmerdata.KmerData], cfg.Stages)
	for i := range stages {
		stages[i], err = sketch.NewSketch[kmerdata.KmerData](cfg.NumTables, cfg.TotalCells, cfg.Seed+uint64(i)+2,
			func() kmerdata.KmerData { return kmerdata.Zero(cfg.KmerLen) })
		if err != nil {
			return nil, err
		}
		interval := pump.SampleInterval(cfg.KmerLen, cfg.Shrink, i)
		var sampled []kmerdata.KmerData
		for _, it := range items {
			if pump.Sampled(it.H, interval) {
				sampled = append(sampled, it)
			}
		}
		stages[i].Encode(sampled)
	}

	residual, err := sketch.NewSketch[kmerdata.KmerData](cfg.NumTables, cfg.TotalCells, cfg.Seed+uint64(cfg.Stages)+2,
		func() kmerdata.KmerData { return kmerdata.Zero(cfg.KmerLen) })
	if err != nil {
		return nil, err
	}
	residual.Encode(items)

	reconstructed := pump.StagedPump(stages, residual, hashSet, table, sketch.NewTabuController(cfg.TabuLimit))

	return &RunReport{
		RunID:          info.RunID,
		Pipeline:       "hashset-extended",
		StartedAt:      started,
		Duration:       time.Since(started),
		InputCount:     len(items),
		RecoveredCount: len(reconstructed),
		Config:         info,
	}, nil
}
