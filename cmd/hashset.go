// Copyright © 2017 Will Rowe <will.rowe@stfc.ac.uk>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package cmd

import (
	"log"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/cairn-bio/kiblt/src/misc"
	"github.com/cairn-bio/kiblt/src/pipeline"
	"github.com/cairn-bio/kiblt/src/version"
)

var (
	hashsetSeed         *uint64
	hashsetKmerLen      *int
	hashsetNumTables    *int
	hashsetTotalCells   *int
	hashsetTabuLimit    *int
	hashsetStages       *int
	hashsetShrink       *float64
	hashsetNumSequences *int
	hashsetSequenceLen  *int
)

var hashsetCmd = &cobra.Command{
	Use:   "hashset",
	Short: "Run the hashset-extended pipeline: staged sketches, a hash sketch, and staged pumping",
	Long:  `Run the hashset-extended pipeline: decode a hash-only sketch for membership, decode a series of geometrically sampled k-mer sketches stage by stage, and pump each stage's seeds.`,
	Run: func(cmd *cobra.Command, args []string) {
		runHashset()
	},
}

func init() {
	hashsetSeed = hashsetCmd.Flags().Uint64("seed", 0, "tabulation hash seed")
	hashsetKmerLen = hashsetCmd.Flags().IntP("kmerLen", "k", 31, "k-mer length")
	hashsetNumTables = hashsetCmd.Flags().Int("tables", 3, "number of sketch tables")
	hashsetTotalCells = hashsetCmd.Flags().Int("cells", 100000, "total cells across all tables, per sketch")
	hashsetTabuLimit = hashsetCmd.Flags().Int("tabuLimit", 3, "tabu controller empty-step limit")
	hashsetStages = hashsetCmd.Flags().Int("stages", 3, "number of geometrically sampled k-mer sketch stages")
	hashsetShrink = hashsetCmd.Flags().Float64("shrink", 1.5, "sampling interval growth factor between stages")
	hashsetNumSequences = hashsetCmd.Flags().Int("sequences", 200, "number of random sequences to generate")
	hashsetSequenceLen = hashsetCmd.Flags().Int("sequenceLen", 100, "length of each generated sequence")
	RootCmd.AddCommand(hashsetCmd)
}

func runHashset() {
	if *profiling {
		defer profile.Start(profile.ProfilePath(".")).Stop()
	}
	logFH := misc.StartLogging(*logFile)
	if *logFile != "" {
		defer logFH.Close()
	}
	log.SetOutput(logFH)

	info := pipeline.NewInfo(version.VERSION, *proc, *profiling)
	cfg := &pipeline.HashsetPipelineConfig{
		Seed:         *hashsetSeed,
		KmerLen:      *hashsetKmerLen,
		NumTables:    *hashsetNumTables,
		TotalCells:   *hashsetTotalCells,
		TabuLimit:    *hashsetTabuLimit,
		Stages:       *hashsetStages,
		Shrink:       *hashsetShrink,
		NumSequences: *hashsetNumSequences,
		SequenceLen:  *hashsetSequenceLen,
	}

	report, err := pipeline.RunHashsetExtendedPipeline(info, cfg)
	misc.ErrorCheck(err)

	log.Printf("run: %s", report.RunID)
	log.Printf("input k-mers: %d", report.InputCount)
	log.Printf("recovered k-mers: %d", report.RecoveredCount)
	log.Printf("duration: %s", report.Duration)
}
