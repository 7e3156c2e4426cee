package selection

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/settleops/disburse/pkg/prompt"
	"github.com/settleops/disburse/pkg/sheet"
)

// testTable loads a sheet with settlement rows on spreadsheet rows 2-5.
func testTable(t *testing.T) *sheet.Table {
	t.Helper()

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "Settlements2024"))
	rows := [][]any{
		{"NAME", "IOLTA to Business", "MKT ACCT", "CASH'S LOAN", "BUILDING BONUS"},
		{"Client Two", 100, 10, 1, 5},
		{"Client Three", 200, 20, 2, 5},
		{"Client Four", 300, 30, 3, 5},
		{"Client Five", 400, 40, 4, 5},
	}
	for ri, cells := range rows {
		for ci, v := range cells {
			cell, err := excelize.CoordinatesToCellName(ci+1, ri+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Settlements2024", cell, v))
		}
	}
	path := filepath.Join(t.TempDir(), "settlements.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	wb, err := sheet.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { wb.Close() })

	table, err := sheet.Load(wb, "Settlements2024", log.Default())
	require.NoError(t, err)
	return table
}

func newSelector(t *testing.T, input string) (*Selector, *bytes.Buffer) {
	out := &bytes.Buffer{}
	prompts := prompt.New(strings.NewReader(input), out)
	return New(log.Default(), testTable(t), prompts, out), out
}

func TestSelectConfirmedRows(t *testing.T) {
	s, out := newSelector(t, "2,3\nyes\n")

	sel, err := s.Select()
	require.NoError(t, err)
	require.Equal(t, 2, sel.Len())
	assert.Equal(t, "Client Two", sel.Rows()[0].ClientName)
	assert.Equal(t, "Client Three", sel.Rows()[1].ClientName)
	assert.Contains(t, out.String(), "Are these the correct rows?")
}

func TestSelectUnavailableRowReprompts(t *testing.T) {
	s, out := newSelector(t, "10\n3\nyes\n")

	sel, err := s.Select()
	require.NoError(t, err)
	require.Equal(t, 1, sel.Len())
	assert.Equal(t, "Client Three", sel.Rows()[0].ClientName)
	assert.Contains(t, out.String(), "Row unavailable for transfer")
}

func TestSelectDeclinedTwiceReturnsEmpty(t *testing.T) {
	// Wrong rows, and the operator does not want to try again.
	s, out := newSelector(t, "2\nno\nno\n")

	sel, err := s.Select()
	require.NoError(t, err)
	assert.Equal(t, 0, sel.Len())
	assert.Contains(t, out.String(), "No rows selected")
}

func TestSelectRejectedThenRetried(t *testing.T) {
	s, _ := newSelector(t, "2\nno\nyes\n3,4\nyes\n")

	sel, err := s.Select()
	require.NoError(t, err)
	require.Equal(t, 2, sel.Len())
	assert.Equal(t, "Client Three", sel.Rows()[0].ClientName)
	assert.Equal(t, "Client Four", sel.Rows()[1].ClientName)
}

func TestAppendMergesConfirmedRows(t *testing.T) {
	s, _ := newSelector(t, "2\nyes\n3\nyes\nyes\n")

	sel, err := s.Select()
	require.NoError(t, err)
	require.Equal(t, 1, sel.Len())

	require.NoError(t, s.Append(sel))
	require.Equal(t, 2, sel.Len())
	assert.Equal(t, "Client Three", sel.Rows()[1].ClientName)
}

func TestAppendDeclinedAddsNothing(t *testing.T) {
	s, out := newSelector(t, "2\nyes\n3\nyes\nno\n")

	sel, err := s.Select()
	require.NoError(t, err)

	require.NoError(t, s.Append(sel))
	assert.Equal(t, 1, sel.Len())
	assert.Contains(t, out.String(), "No additional settlements added")
}

func TestRenderShowsRowNumbersAndAmounts(t *testing.T) {
	table := testTable(t)
	rows, err := table.RowsByNumber([]int{2, 5})
	require.NoError(t, err)

	rendered := Render(rows)
	assert.Contains(t, rendered, "NAME")
	assert.Contains(t, rendered, "Client Two")
	assert.Contains(t, rendered, "100.00")
	assert.Contains(t, rendered, "Client Five")
	assert.Contains(t, rendered, "400.00")
}
