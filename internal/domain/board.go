package domain

// Board is a rows x columns grid. Row 0 is the top, so pieces fall toward
// the largest row index.
type Board struct {
	rows    int
	columns int
	cells   [][]PlayerID
}

func NewBoard(rows, columns int) *Board {
	if rows < 1 {
		rows = 1
	}
	if columns < 1 {
		columns = 1
	}

	cells := make([][]PlayerID, rows)
	for i := range cells {
		cells[i] = make([]PlayerID, columns)
	}
	return &Board{rows: rows, columns: columns, cells: cells}
}

func (b *Board) Rows() int    { return b.rows }
func (b *Board) Columns() int { return b.columns }

func (b *Board) inBounds(row, column int) bool {
	return row >= 0 && row < b.rows && column >= 0 && column < b.columns
}

// LandingRow returns the row a piece dropped into column would occupy.
// ok is false when the column is full.
func (b *Board) LandingRow(column int) (row int, ok bool, err error) {
	if column < 0 || column >= b.columns {
		return -1, false, ErrInvalidColumn
	}

	for row := b.rows - 1; row >= 0; row-- {
		if b.cells[row][column] == Empty {
			return row, true, nil
		}
	}
	return -1, false, nil
}

// Place occupies an empty cell. The caller gets row from LandingRow.
func (b *Board) Place(row, column int, player PlayerID) error {
	if !b.inBounds(row, column) {
		return ErrOutOfBounds
	}
	if b.cells[row][column] != Empty {
		return ErrCellOccupied
	}
	b.cells[row][column] = player
	return nil
}

// CellAt returns Empty for coordinates outside the grid.
func (b *Board) CellAt(row, column int) PlayerID {
	if !b.inBounds(row, column) {
		return Empty
	}
	return b.cells[row][column]
}

func (b *Board) IsFull() bool {
	for _, row := range b.cells {
		for _, cell := range row {
			if cell == Empty {
				return false
			}
		}
	}
	return true
}

// ValidColumns lists the columns that still accept a piece.
func (b *Board) ValidColumns() []int {
	cols := []int{}
	for c := 0; c < b.columns; c++ {
		if b.cells[0][c] == Empty {
			cols = append(cols, c)
		}
	}
	return cols
}

// Snapshot is a deep copy of the grid, 0 for empty cells.
func (b *Board) Snapshot() [][]int {
	out := make([][]int, b.rows)
	for i := range b.cells {
		out[i] = make([]int, b.columns)
		for j, cell := range b.cells[i] {
			out[i][j] = int(cell)
		}
	}
	return out
}
