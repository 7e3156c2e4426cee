package sheet

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// Workbook reads raw cell data out of a settlement spreadsheet. XLSX files go
// through excelize; legacy XLS files go through the BIFF reader.
type Workbook struct {
	path string
	xlsx *excelize.File
	xls  *xls.WorkBook
}

// Open opens the workbook at path, picking the reader by file extension.
func Open(path string) (*Workbook, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		f, err := excelize.OpenFile(path)
		if err != nil {
			return nil, fmt.Errorf("opening workbook: %w", err)
		}
		return &Workbook{path: path, xlsx: f}, nil
	case ".xls":
		wb, err := xls.Open(path, "cp1252")
		if err != nil {
			return nil, fmt.Errorf("opening workbook: %w", err)
		}
		return &Workbook{path: path, xls: wb}, nil
	default:
		return nil, fmt.Errorf("unsupported spreadsheet type: %s", filepath.Ext(path))
	}
}

// SheetNames lists the sheets in the workbook, in workbook order.
func (w *Workbook) SheetNames() []string {
	if w.xlsx != nil {
		return w.xlsx.GetSheetList()
	}
	names := make([]string, 0, w.xls.NumSheets())
	for i := 0; i < w.xls.NumSheets(); i++ {
		names = append(names, w.xls.GetSheet(i).Name)
	}
	return names
}

// Rows returns all cell values of the named sheet as strings, row-major.
func (w *Workbook) Rows(sheetName string) ([][]string, error) {
	if w.xlsx != nil {
		rows, err := w.xlsx.GetRows(sheetName)
		if err != nil {
			return nil, fmt.Errorf("reading sheet %q: %w", sheetName, err)
		}
		return rows, nil
	}
	return w.xlsRows(sheetName)
}

func (w *Workbook) xlsRows(sheetName string) ([][]string, error) {
	var ws *xls.WorkSheet
	for i := 0; i < w.xls.NumSheets(); i++ {
		if s := w.xls.GetSheet(i); s != nil && s.Name == sheetName {
			ws = s
			break
		}
	}
	if ws == nil {
		return nil, fmt.Errorf("sheet %q not found in %s", sheetName, w.path)
	}

	var rows [][]string
	for ri := 0; ri <= int(ws.MaxRow); ri++ {
		row := ws.Row(ri)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		var cells []string
		for ci := 0; ci <= row.LastCol(); ci++ {
			cells = append(cells, row.Col(ci))
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

// Close releases the underlying file handles.
func (w *Workbook) Close() error {
	if w.xlsx != nil {
		return w.xlsx.Close()
	}
	return nil
}
