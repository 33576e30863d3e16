package sketch

import "github.com/pkg/errors"

func errTooFewTables(n int) error {
	return errors.Errorf("sketch: need at least 1 table, got %d", n)
}

func errTooFewCells(cellsPerTable int) error {
	return errors.Errorf("sketch: %d cells per table is below the minimum of %d", cellsPerTable, minCellsPerTable)
}
