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

// RunKmerPipeline generates cfg.NumSequences random sequences, cuts them into k-mers,
// encodes every k-mer into both a k-mer sketch and a hash-only sketch, decodes both, and
// runs an iterated Pump to reconstruct the full input set from the two decoded results.
func RunKmerPipeline(info *Info, cfg *KmerPipelineConfig) (*RunReport, error) {
	started := time.Now()
	info.Kmer = cfg

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

	kmerSketch, err := sketch.NewSketch[kmerdata.KmerData](cfg.NumTables, cfg.TotalCells, cfg.Seed,
		func() kmerdata.KmerData { return kmerdata.Zero(cfg.KmerLen) })
	if err != nil {
		return nil, err
	}
	hashSketch, err := sketch.NewSketch[sketch.HashItem](cfg.NumTables, cfg.TotalCells, cfg.Seed^1, sketch.ZeroHashItem)
	if err != nil {
		return nil, err
	}

	hashItems := make([]sketch.HashItem, len(items))
	for i, it := range items {
		hashItems[i] = sketch.HashItem(it.H)
	}

	kmerSketch.Encode(items)
	hashSketch.Encode(hashItems)

	seeds := kmerSketch.Decode(sketch.NewTabuController(cfg.TabuLimit))
	defer kmerSketch.Release(seeds)

	recoveredHashes := hashSketch.Decode(sketch.NewTabuController(cfg.TabuLimit))
	defer hashSketch.Release(recoveredHashes)

	hashSet := make(pump.HashSet, len(recoveredHashes))
	for _, h := range recoveredHashes {
		hashSet[h.Hash()] = struct{}{}
	}

	reconstructed := pump.IteratedPump(kmerSketch, seeds, hashSet, table, sketch.NewTabuController(cfg.TabuLimit))

	return &RunReport{
		RunID:          info.RunID,
		Pipeline:       "kmer",
		StartedAt:      started,
		Duration:       time.Since(started),
		InputCount:     len(items),
		RecoveredCount: len(reconstructed),
		Config:         info,
	}, nil
}
