package domain

// directions a run can extend in from its origin cell
var runDirections = [4][2]int{
	{0, 1},  // horizontal
	{1, 0},  // vertical
	{1, 1},  // diagonal down-right
	{1, -1}, // diagonal down-left
}

// HasFourInARow reports whether player owns ToWin consecutive cells along
// any axis. Every cell is tried as the origin of a run in every direction.
func HasFourInARow(b *Board, player PlayerID) bool {
	if b == nil || !player.Valid() {
		return false
	}

	for y := 0; y < b.rows; y++ {
		for x := 0; x < b.columns; x++ {
			for _, d := range runDirections {
				if ownsRun(b, y, x, d[0], d[1], player) {
					return true
				}
			}
		}
	}
	return false
}

func ownsRun(b *Board, row, column, deltaRow, deltaCol int, player PlayerID) bool {
	for i := 0; i < ToWin; i++ {
		r, c := row+i*deltaRow, column+i*deltaCol
		if !b.inBounds(r, c) || b.cells[r][c] != player {
			return false
		}
	}
	return true
}
