package sheets

import "fmt"

// ColumnName converts a zero-based column index into its A1-notation
// letters: 0 -> "A", 25 -> "Z", 26 -> "AA". Multi-letter columns are
// supported, so leagues are not capped at 25 teams.
func ColumnName(index int) string {
	var name []byte
	for index >= 0 {
		name = append([]byte{byte('A' + index%26)}, name...)
		index = index/26 - 1
	}
	return string(name)
}

// CellRef resolves a zero-based column index and a 1-based row number
// to an A1-style cell reference.
func CellRef(column, row int) string {
	return fmt.Sprintf("%s%d", ColumnName(column), row)
}
