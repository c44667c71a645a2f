package sheets

import "testing"

func TestColumnName(t *testing.T) {
	tests := []struct {
		index int
		want  string
	}{
		{0, "A"},
		{1, "B"},
		{25, "Z"},
		{26, "AA"},
		{27, "AB"},
		{51, "AZ"},
		{52, "BA"},
		{701, "ZZ"},
		{702, "AAA"},
	}

	for _, tt := range tests {
		if got := ColumnName(tt.index); got != tt.want {
			t.Errorf("ColumnName(%d) = %q; want %q", tt.index, got, tt.want)
		}
	}
}

func TestCellRef(t *testing.T) {
	// A team with column index 1 lands in column B; index 25 in Z;
	// index 26 rolls into AA instead of truncating.
	tests := []struct {
		column int
		row    int
		want   string
	}{
		{0, 1, "A1"},
		{1, 2, "B2"},
		{25, 16, "Z16"},
		{26, 33, "AA33"},
	}

	for _, tt := range tests {
		if got := CellRef(tt.column, tt.row); got != tt.want {
			t.Errorf("CellRef(%d, %d) = %q; want %q", tt.column, tt.row, got, tt.want)
		}
	}
}
