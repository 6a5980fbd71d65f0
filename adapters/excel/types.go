package excel

// RawRowData represents a row of raw spreadsheet data as string key-value pairs
type RawRowData map[string]string

// TableData represents the complete input dataset
type TableData struct {
	Headers []string     // Column headers, in sheet order
	Rows    []RawRowData // Data rows
}

// RowSlice returns the row's cells in header order, for verbatim re-emission.
func (t *TableData) RowSlice(i int) []string {
	cells := make([]string, len(t.Headers))
	for j, header := range t.Headers {
		cells[j] = t.Rows[i][header]
	}
	return cells
}
