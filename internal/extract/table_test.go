package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConcatUnionsColumns(t *testing.T) {
	a := Table{
		Columns: []string{"id", "hours"},
		Rows:    [][]string{{"E001", "8.0"}},
	}
	b := Table{
		Columns: []string{"id", "pay_code", "hours"},
		Rows:    [][]string{{"E002", "Normal", "7.5"}},
	}

	merged := Concat(a, b)

	// First file's order wins; new columns append.
	assert.Equal(t, []string{"id", "hours", "pay_code"}, merged.Columns)
	require.Len(t, merged.Rows, 2)
	assert.Equal(t, []string{"E001", "8.0", ""}, merged.Rows[0])
	assert.Equal(t, []string{"E002", "7.5", "Normal"}, merged.Rows[1])
}

func TestColumnIndexAndCell(t *testing.T) {
	table := Table{
		Columns: []string{"id", "name"},
		Rows:    [][]string{{"E001", "Alice"}},
	}

	assert.Equal(t, 1, table.ColumnIndex("name"))
	assert.Equal(t, -1, table.ColumnIndex("missing"))
	assert.Equal(t, "Alice", table.Cell(0, "name"))
	assert.Equal(t, "", table.Cell(0, "missing"))
	assert.Equal(t, "", table.Cell(5, "name"))
}
