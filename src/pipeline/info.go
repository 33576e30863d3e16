// Package pipeline composes the k-mer codec, tabulation hash, sketch and pump packages into
// three end-to-end experiment drivers - "kmer", "hashset-extended" and "mutation" - and
// records what each run did. Grounded on will-rowe/baby-groot's src/pipeline/pipeline.go
// (the Info struct and its Dump/Load via segmentio/objconv/msgpack) and src/pipeline/boss.go
// + src/pipeline/minion.go (the worker-pool idiom for the outer "many sequences" loop).
package pipeline

import (
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/objconv/msgpack"
)

// BUFFERSIZE is the channel buffer size used throughout this package's worker pools, same
// role as baby-groot's BUFFERSIZE constant in src/pipeline/pipeline.go.
const BUFFERSIZE int = 64

// Info holds the configuration a pipeline run was invoked with: how many workers to use,
// which seeds and sizes to build sketches with, and which of the three pipelines to run.
// It is the ambient counterpart to baby-groot's Info (NumProc/Version/Profiling carried
// over verbatim in spirit; Index/Sketch/Haplotype replaced with this module's own Kmer/
// Hashset/Mutation config blocks).
type Info struct {
	RunID     string
	Version   string
	NumProc   int
	Profiling bool

	Kmer     *KmerPipelineConfig     `msgpack:",omitempty"`
	Hashset  *HashsetPipelineConfig  `msgpack:",omitempty"`
	Mutation *MutationPipelineConfig `msgpack:",omitempty"`
}

// NewInfo stamps a fresh Info with a new run ID, the way baby-groot's cmd/*.go construct a
// new *Info per invocation rather than reusing one across runs.
func NewInfo(version string, numProc int, profiling bool) *Info {
	return &Info{
		RunID:     uuid.New().String(),
		Version:   version,
		NumProc:   numProc,
		Profiling: profiling,
	}
}

// KmerPipelineConfig resolves the parameters of a "kmer" (iterated pump) pipeline run.
type KmerPipelineConfig struct {
	Seed          uint64
	KmerLen       int
	NumTables     int
	TotalCells    int
	TabuLimit     int
	NumSequences  int
	SequenceLen   int
}

// HashsetPipelineConfig resolves the parameters of a "hashset-extended" (staged pump)
// pipeline run.
type HashsetPipelineConfig struct {
	Seed         uint64
	KmerLen      int
	NumTables    int
	TotalCells   int
	TabuLimit    int
	Stages       int
	Shrink       float64
	NumSequences int
	SequenceLen  int
}

// MutationPipelineConfig resolves the parameters of a "mutation" pipeline run.
type MutationPipelineConfig struct {
	Seed         uint64
	KmerLen      int
	HmerLen      int
	NumTables    int
	TotalCells   int
	TabuLimit    int
	NumSequences int
	SequenceLen  int
}

// RunReport is the result of a pipeline run: counts and timings, never the sketches or
// reconstructed k-mers themselves. Dump and Load serialize it with msgpack, mirroring
// baby-groot's Info.Dump/Info.Load but scoped to metadata only - this module never persists
// sketches or reconstructed sets. The CLI commands log its fields rather than dumping it.
type RunReport struct {
	RunID          string
	Pipeline       string
	StartedAt      time.Time
	Duration       time.Duration
	InputCount     int
	RecoveredCount int
	FalsePositives int
	MutationsFound int
	Config         *Info
}

// Dump marshals the report with segmentio/objconv/msgpack and writes it to path, exactly the
// serialization baby-groot's Info.Dump uses.
func (r *RunReport) Dump(path string) error {
	b, err := msgpack.Marshal(r)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// Load reads a RunReport previously written by Dump.
func (r *RunReport) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return msgpack.Unmarshal(data, r)
}
