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
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

// persistent flags, shared by every sub-command
var (
	proc      *int
	profiling *bool
	logFile   *string
)

// RootCmd is the entry point for the CLI
var RootCmd = &cobra.Command{
	Use:   "kiblt",
	Short: "DNA k-mer set reconciliation and reconstruction via Invertible Bloom Lookup Tables",
	Long: `kiblt encodes DNA k-mers into XOR-aggregating sketches, peels them back out by
iterative decode, and pumps the decoded seeds through rolling-hash extensions to
reconstruct a full input set from a compressed representation of it.`,
}

func init() {
	proc = RootCmd.PersistentFlags().IntP("processors", "p", runtime.NumCPU(), "number of processors to use")
	profiling = RootCmd.PersistentFlags().Bool("profiling", false, "if set, CPU and memory profiles are written to the current directory")
	logFile = RootCmd.PersistentFlags().StringP("log", "l", "", "log to this file rather than stderr")
}

// Execute adds all child commands to the root command and runs it. Called once by main.main.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
