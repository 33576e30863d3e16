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
	reconstructSeed         *uint64
	reconstructKmerLen      *int
	reconstructNumTables    *int
	reconstructTotalCells   *int
	reconstructTabuLimit    *int
	reconstructNumSequences *int
	reconstructSequenceLen  *int
)

var reconstructCmd = &cobra.Command{
	Use:   "reconstruct",
	Short: "Run the kmer pipeline: encode, decode, and iteratively pump a k-mer set",
	Long:  `Run the kmer pipeline: encode, decode, and iteratively pump a k-mer set back from a compressed sketch representation.`,
	Run: func(cmd *cobra.Command, args []string) {
		runReconstruct()
	},
}

func init() {
	reconstructSeed = reconstructCmd.Flags().Uint64("seed", 0, "tabulation hash seed")
	reconstructKmerLen = reconstructCmd.Flags().IntP("kmerLen", "k", 31, "k-mer length")
	reconstructNumTables = reconstructCmd.Flags().Int("tables", 3, "number of sketch tables")
	reconstructTotalCells = reconstructCmd.Flags().Int("cells", 100000, "total cells across all tables")
	reconstructTabuLimit = reconstructCmd.Flags().Int("tabuLimit", 3, "tabu controller empty-step limit")
	reconstructNumSequences = reconstructCmd.Flags().Int("sequences", 200, "number of random sequences to generate")
	reconstructSequenceLen = reconstructCmd.Flags().Int("sequenceLen", 100, "length of each generated sequence")
	RootCmd.AddCommand(reconstructCmd)
}

func runReconstruct() {
	if *profiling {
		defer profile.Start(profile.ProfilePath(".")).Stop()
	}
	logFH := misc.StartLogging(*logFile)
	if *logFile != "" {
		defer logFH.Close()
	}
	log.SetOutput(logFH)

	info := pipeline.NewInfo(version.VERSION, *proc, *profiling)
	cfg := &pipeline.KmerPipelineConfig{
		Seed:         *reconstructSeed,
		KmerLen:      *reconstructKmerLen,
		NumTables:    *reconstructNumTables,
		TotalCells:   *reconstructTotalCells,
		TabuLimit:    *reconstructTabuLimit,
		NumSequences: *reconstructNumSequences,
		SequenceLen:  *reconstructSequenceLen,
	}

	report, err := pipeline.RunKmerPipeline(info, cfg)
	misc.ErrorCheck(err)

	log.Printf("run: %s", report.RunID)
	log.Printf("input k-mers: %d", report.InputCount)
	log.Printf("recovered k-mers: %d", report.RecoveredCount)
	log.Printf("duration: %s", report.Duration)
}
