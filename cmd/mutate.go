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
	mutateSeed         *uint64
	mutateKmerLen      *int
	mutateHmerLen      *int
	mutateNumTables    *int
	mutateTotalCells   *int
	mutateTabuLimit    *int
	mutateNumSequences *int
	mutateSequenceLen  *int
)

var mutateCmd = &cobra.Command{
	Use:   "mutate",
	Short: "Run the mutation-detection pipeline over random double-sequences",
	Long:  `Run the mutation-detection pipeline: generate double-sequences with a single known substitution, and locate it by probing a recovered h-mer hash set.`,
	Run: func(cmd *cobra.Command, args []string) {
		runMutate()
	},
}

func init() {
	mutateSeed = mutateCmd.Flags().Uint64("seed", 0, "tabulation hash seed")
	mutateKmerLen = mutateCmd.Flags().IntP("kmerLen", "k", 31, "k-mer length")
	mutateHmerLen = mutateCmd.Flags().Int("hmerLen", 15, "h-mer (half-length window) length")
	mutateNumTables = mutateCmd.Flags().Int("tables", 3, "number of sketch tables")
	mutateTotalCells = mutateCmd.Flags().Int("cells", 100000, "total cells across all tables, per sketch")
	mutateTabuLimit = mutateCmd.Flags().Int("tabuLimit", 3, "tabu controller empty-step limit")
	mutateNumSequences = mutateCmd.Flags().Int("sequences", 200, "number of double-sequences to generate")
	mutateSequenceLen = mutateCmd.Flags().Int("sequenceLen", 100, "length of each generated sequence")
	RootCmd.AddCommand(mutateCmd)
}

func runMutate() {
	if *profiling {
		defer profile.Start(profile.ProfilePath(".")).Stop()
	}
	logFH := misc.StartLogging(*logFile)
	if *logFile != "" {
		defer logFH.Close()
	}
	log.SetOutput(logFH)

	info := pipeline.NewInfo(version.VERSION, *proc, *profiling)
	cfg := &pipeline.MutationPipelineConfig{
		Seed:         *mutateSeed,
		KmerLen:      *mutateKmerLen,
		HmerLen:      *mutateHmerLen,
		NumTables:    *mutateNumTables,
		TotalCells:   *mutateTotalCells,
		TabuLimit:    *mutateTabuLimit,
		NumSequences: *mutateNumSequences,
		SequenceLen:  *mutateSequenceLen,
	}

	report, err := pipeline.RunMutationPipeline(info, cfg)
	misc.ErrorCheck(err)

	log.Printf("run: %s", report.RunID)
	log.Printf("input k-mers: %d", report.InputCount)
	log.Printf("recovered k-mers: %d", report.RecoveredCount)
	log.Printf("mutations correctly located: %d", report.MutationsFound)
	log.Printf("duration: %s", report.Duration)
}
