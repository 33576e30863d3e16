package pipeline

import (
	"sync"

	"github.com/cairn-bio/kiblt/src/kmerdata"
	"github.com/cairn-bio/kiblt/src/sequence"
	"github.com/cairn-bio/kiblt/src/tabhash"
)

// IngestSequences cuts k-mers out of every sequence in seqs using numWorkers minion
// goroutines pulling from a shared job queue, the same boss/minion worker pool shape as
// will-rowe/baby-groot's src/pipeline/boss.go (wg.Add(NumProc) + per-worker loop) and
// src/pipeline/minion.go (pull-until-closed worker body), generalized from "reads mapped
// against an LSH forest" to "sequences cut into k-mers". Each minion computes its own batch
// independently and sends it back on a channel; nothing downstream needs the per-minion
// assignment, so results are simply concatenated once every minion's channel send has
// completed.
func IngestSequences(seqs []sequence.Sequence, kmerLen int, table *tabhash.Table, numWorkers int) []kmerdata.KmerData {
	if numWorkers < 1 {
		numWorkers = 1
	}

	jobs := make(chan sequence.Sequence, BUFFERSIZE)
	results := make(chan []kmerdata.KmerData, BUFFERSIZE)

	var wg sync.WaitGroup
	wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go func() {
			defer wg.Done()
			for seq := range jobs {
				var batch []kmerdata.KmerData
				for kd := range seq.GetKmers(kmerLen, table) {
					batch = append(batch, kd)
				}
				results <- batch
			}
		}()
	}

	go func() {
		for _, s := range seqs {
			jobs <- s
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var all []kmerdata.KmerData
	for batch := range results {
		all = append(all, batch...)
	}
	return all
}
