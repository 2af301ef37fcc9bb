package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable_KeepsInsertionOrder(t *testing.T) {
	tbl := newTable[string, int]()
	tbl.set("a", 1)
	tbl.set("b", 2)
	tbl.set("c", 3)
	tbl.set("a", 10)

	assert.Equal(t, []int{10, 2, 3}, tbl.filter(func(int) bool { return true }))

	assert.True(t, tbl.delete("b"))
	assert.False(t, tbl.delete("b"))
	assert.Equal(t, []int{10, 3}, tbl.filter(func(int) bool { return true }))
}

func TestTable_DeleteWhere(t *testing.T) {
	tbl := newTable[int, int]()
	for i := range 6 {
		tbl.set(i, i)
	}

	removed := tbl.deleteWhere(func(v int) bool { return v%2 == 0 })

	assert.Equal(t, int64(3), removed)
	assert.Equal(t, 3, tbl.count())
	assert.Equal(t, []int{1, 3, 5}, tbl.filter(func(int) bool { return true }))
}
