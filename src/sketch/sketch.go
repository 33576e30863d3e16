package sketch

import (
	"golang.org/x/sync/errgroup"

	"github.com/cairn-bio/kiblt/src/tabhash"
)

// minCellsPerTable is the smallest per-table cell count NewSketch accepts; below it (totalCells
// spread across nTables) NewSketch returns an error. 100 is a floor, not tuned to any particular
// workload - just enough that a decode round's purity check isn't dominated by hash
// collisions on a near-empty table.
const minCellsPerTable = 100

// Sketch coordinates N independent IBLT Tables built over the same baseSeed (one derived
// seed per table, via tabhash.DeriveSeed) so that Encode fans the same input out to every
// table and Decode cross-peels between them until a Controller calls a halt. The fan-out and
// fan-in shape is grounded on will-rowe/baby-groot's boss/minion worker pool
// (src/pipeline/boss.go, src/pipeline/minion.go: a fixed set of workers each handed the same
// job, joined with a WaitGroup) and on its src/lshForest/lshForest.go's concurrent
// multi-table query idiom, generalized here to golang.org/x/sync/errgroup since none of this
// package's per-table work can fail.
type Sketch[T Item[T]] struct {
	tables  []*Table[T]
	current int
	pool    *Pool[T]
}

// NewSketch builds a Sketch with nTables tables sharing totalCells cells between them.
// zero must return T's neutral (never-inserted-into) element.
func NewSketch[T Item[T]](nTables, totalCells int, baseSeed uint64, zero func() T) (*Sketch[T], error) {
	if nTables < 1 {
		return nil, errTooFewTables(nTables)
	}
	cellsPerTable := totalCells / nTables
	if cellsPerTable < minCellsPerTable {
		return nil, errTooFewCells(cellsPerTable)
	}
	tables := make([]*Table[T], nTables)
	for i := range tables {
		seed := tabhash.DeriveSeed(baseSeed, i)
		tables[i] = NewTable[T](cellsPerTable, tabhash.NewGenericTable(seed), zero)
	}
	return &Sketch[T]{tables: tables, pool: NewPool[T](64)}, nil
}

// NumTables returns how many tables the sketch spreads its cells across.
func (s *Sketch[T]) NumTables() int { return len(s.tables) }

// Encode XORs every item in items into all N tables in parallel. The same input buffer is
// read by every table's goroutine; none of them write to it, so no synchronization beyond
// the join at the end is needed.
func (s *Sketch[T]) Encode(items []T) {
	var g errgroup.Group
	for _, tbl := range s.tables {
		tbl := tbl
		g.Go(func() error {
			tbl.Encode(items)
			return nil
		})
	}
	_ = g.Wait()
}

// decodeStep runs one Decode pass on the current round-robin table, cross-peels whatever it
// emitted into every other table in parallel, advances the round robin, and returns the
// emitted items (pooled; caller releases via Release).
func (s *Sketch[T]) decodeStep() []T {
	cur := s.tables[s.current]
	emitted := cur.Decode()
	if len(emitted) > 0 {
		var g errgroup.Group
		for i, tbl := range s.tables {
			if i == s.current {
				continue
			}
			tbl := tbl
			g.Go(func() error {
				tbl.Encode(emitted)
				return nil
			})
		}
		_ = g.Wait()
	}
	s.current = (s.current + 1) % len(s.tables)
	return emitted
}

// Decode runs repeated decodeStep rounds, cross-peeling between tables, until controller
// reports a halt. It returns every item recovered across all rounds, in emission order.
// The returned slice is pooled; the caller must call Release when done with it.
func (s *Sketch[T]) Decode(controller Controller) []T {
	controller.Reset()
	result := s.pool.Get()
	hashes := make([]uint64, 0, 16)
	for {
		emitted := s.decodeStep()
		hashes = hashes[:0]
		for _, e := range emitted {
			hashes = append(hashes, e.Hash())
			result = append(result, e)
		}
		stop := controller.Step(hashes)
		s.tables[(s.current+len(s.tables)-1)%len(s.tables)].ReleaseDecoded(emitted)
		if stop {
			break
		}
	}
	return result
}

// Release returns a slice obtained from Decode to the sketch's pool.
func (s *Sketch[T]) Release(items []T) { s.pool.Put(items) }

// Residual returns a pooled snapshot of every nonzero cell still held across all tables,
// regardless of purity - the content that Decode was unable to peel out.
func (s *Sketch[T]) Residual() []T {
	out := s.pool.Get()
	for _, tbl := range s.tables {
		snap := tbl.Snapshot()
		out = append(out, snap...)
		tbl.ReleaseDecoded(snap)
	}
	return out
}
