package model

// CellStatus is the publicly known state of a cell
type CellStatus string

const (
	CellUnknown CellStatus = ""
	CellHit     CellStatus = "hit"
	CellMiss    CellStatus = "miss"
)

// Board is the 10x10 firing grid. Only resolved cells are stored.
type Board struct {
	Cells map[Coordinate]CellStatus `json:"cells"`
}

// NewBoard creates an empty board
func NewBoard() Board {
	return Board{Cells: make(map[Coordinate]CellStatus)}
}

// Get returns the status of the cell, CellUnknown if it has not been fired at
func (b *Board) Get(c Coordinate) CellStatus {
	if b.Cells == nil {
		return CellUnknown
	}
	return b.Cells[c]
}

// IsResolved returns true if the cell has been fired at
func (b *Board) IsResolved(c Coordinate) bool {
	return b.Get(c) != CellUnknown
}

// Resolve marks an unknown cell as hit or miss.
// Resolved cells are immutable: ErrAlreadyPlayed is returned if the cell is
// already set, ErrOutOfBounds if the coordinate is off the board.
func (b *Board) Resolve(c Coordinate, status CellStatus) error {
	if !c.IsValid() {
		return ErrOutOfBounds
	}
	if b.IsResolved(c) {
		return ErrAlreadyPlayed
	}
	if b.Cells == nil {
		b.Cells = make(map[Coordinate]CellStatus)
	}
	b.Cells[c] = status
	return nil
}

// Count returns the number of cells with the given status
func (b *Board) Count(status CellStatus) int {
	if status == CellUnknown {
		return BoardSize*BoardSize - len(b.Cells)
	}
	count := 0
	for _, s := range b.Cells {
		if s == status {
			count++
		}
	}
	return count
}

// ResolvedCount returns the number of cells fired at
func (b *Board) ResolvedCount() int {
	return len(b.Cells)
}
