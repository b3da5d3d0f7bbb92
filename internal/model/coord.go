package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Board geometry
const (
	BoardSize = 10
	RowLabels = "ABCDEFGHIJ"
)

// Coordinate identifies a cell on the board
type Coordinate struct {
	Row int // 0-indexed, A=0
	Col int // 0-indexed, column 1=0
}

// ParseCoordinate parses a coordinate such as "B4" or "j10".
// Returns ErrInvalidFormat if the text is not a letter followed by digits and
// ErrOutOfBounds if it names a cell outside A-J / 1-10.
func ParseCoordinate(s string) (Coordinate, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return Coordinate{}, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}

	letter := s[0]
	if !isASCIILetter(letter) {
		return Coordinate{}, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}

	col, err := strconv.Atoi(s[1:])
	if err != nil || strings.ContainsAny(s[1:], "+-") {
		return Coordinate{}, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}

	row := strings.IndexByte(RowLabels, upper(letter))
	if row < 0 || col < 1 || col > BoardSize {
		return Coordinate{}, fmt.Errorf("%w: %q", ErrOutOfBounds, s)
	}

	return Coordinate{Row: row, Col: col - 1}, nil
}

// MustParseCoordinate is ParseCoordinate that panics on error. Test and fixture use only.
func MustParseCoordinate(s string) Coordinate {
	c, err := ParseCoordinate(s)
	if err != nil {
		panic(err)
	}
	return c
}

// IsValid returns true if the coordinate is on the board
func (c Coordinate) IsValid() bool {
	return c.Row >= 0 && c.Row < BoardSize && c.Col >= 0 && c.Col < BoardSize
}

// RowLabel returns the row letter
func (c Coordinate) RowLabel() byte {
	return RowLabels[c.Row]
}

// String returns the canonical form, e.g. "B4"
func (c Coordinate) String() string {
	if !c.IsValid() {
		return fmt.Sprintf("?%d:%d", c.Row, c.Col)
	}
	return string(c.RowLabel()) + strconv.Itoa(c.Col+1)
}

// MarshalText encodes the coordinate as "B4" so it can key JSON maps
func (c Coordinate) MarshalText() ([]byte, error) {
	if !c.IsValid() {
		return nil, fmt.Errorf("%w: row=%d col=%d", ErrOutOfBounds, c.Row, c.Col)
	}
	return []byte(c.String()), nil
}

// UnmarshalText decodes "B4"
func (c *Coordinate) UnmarshalText(text []byte) error {
	parsed, err := ParseCoordinate(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// AllCoordinates returns every cell in row-major order
func AllCoordinates() []Coordinate {
	coords := make([]Coordinate, 0, BoardSize*BoardSize)
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			coords = append(coords, Coordinate{Row: row, Col: col})
		}
	}
	return coords
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}
