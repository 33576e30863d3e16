package sketch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cairn-bio/kiblt/src/tabhash"
)

func collectHashes(items []HashItem) map[uint64]bool {
	out := make(map[uint64]bool, len(items))
	for _, it := range items {
		out[it.Hash()] = true
	}
	return out
}

func TestTableSinglePureCellDecodes(t *testing.T) {
	tbl := NewTable[HashItem](200, tabhash.NewGenericTable(1), ZeroHashItem)
	item := HashItem(0xdeadbeef)
	tbl.Encode([]HashItem{item})
	decoded := tbl.Decode()
	defer tbl.ReleaseDecoded(decoded)
	require.Len(t, decoded, 1)
	assert.Equal(t, item, decoded[0])
}

func TestTableEmptyCellsNeverDecode(t *testing.T) {
	tbl := NewTable[HashItem](200, tabhash.NewGenericTable(2), ZeroHashItem)
	decoded := tbl.Decode()
	defer tbl.ReleaseDecoded(decoded)
	assert.Empty(t, decoded)
}

func TestSketchRecoversAllInsertedItems(t *testing.T) {
	s, err := NewSketch[HashItem](3, 900, 42, ZeroHashItem)
	require.NoError(t, err)

	items := make([]HashItem, 0, 12)
	for i := uint64(1); i <= 12; i++ {
		items = append(items, HashItem(i*0x9E3779B97F4A7C15+1))
	}
	s.Encode(items)

	recovered := s.Decode(NewSimpleController(3))
	defer s.Release(recovered)

	want := collectHashes(items)
	got := collectHashes(recovered)
	assert.Len(t, got, len(want), "recovered=%v", recovered)
	for h := range want {
		assert.Truef(t, got[h], "item with hash %d was not recovered", h)
	}
}

func TestSketchSymmetricDifferenceOfTwoEncodes(t *testing.T) {
	s, err := NewSketch[HashItem](3, 900, 7, ZeroHashItem)
	require.NoError(t, err)

	shared := HashItem(0x1111111111111111)
	onlyA := HashItem(0x2222222222222222)
	onlyB := HashItem(0x3333333333333333)

	s.Encode([]HashItem{shared, onlyA})
	s.Encode([]HashItem{shared, onlyB})

	recovered := s.Decode(NewSimpleController(3))
	defer s.Release(recovered)

	got := collectHashes(recovered)
	assert.Falsef(t, got[shared.Hash()], "shared item should have cancelled out of the symmetric difference, recovered=%v", recovered)
	assert.True(t, got[onlyA.Hash()], "expected onlyA in the symmetric difference, recovered=%v", recovered)
	assert.True(t, got[onlyB.Hash()], "expected onlyB in the symmetric difference, recovered=%v", recovered)
}

func TestNewSketchRejectsTooFewCellsPerTable(t *testing.T) {
	_, err := NewSketch[HashItem](4, 100, 1, ZeroHashItem)
	assert.Error(t, err)
}

func TestNewSketchRejectsZeroTables(t *testing.T) {
	_, err := NewSketch[HashItem](0, 1000, 1, ZeroHashItem)
	assert.Error(t, err)
}

func TestSimpleControllerStopsAfterConsecutiveEmptyRounds(t *testing.T) {
	c := NewSimpleController(2)
	c.Reset()
	assert.False(t, c.Step([]uint64{1, 2}), "should not stop on a non-empty round")
	assert.False(t, c.Step(nil), "should not stop after only one empty round when limit is 2")
	assert.True(t, c.Step(nil), "should stop after two consecutive empty rounds")
}

func TestTabuControllerDetectsRollingCycle(t *testing.T) {
	c := NewTabuController(5)
	c.Reset()
	// Round 1: rolling goes 0 -> 10^20.
	assert.False(t, c.Step([]uint64{10, 20}), "first round should never stop")
	// Round 2: the same batch XORs rolling back to 0, a value not seen before either.
	assert.False(t, c.Step([]uint64{10, 20}), "second round should not stop: rolling value 0 has not been seen yet")
	// Round 3: rolling returns to 10^20, which round 1 already recorded - a cycle.
	assert.True(t, c.Step([]uint64{10, 20}), "expected a cycle to be detected once the rolling xor repeats a seen value")
}
