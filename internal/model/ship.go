package model

// ShipName identifies a ship class
type ShipName string

const (
	ShipCarrier    ShipName = "carrier"
	ShipBattleship ShipName = "battleship"
	ShipSubmarine  ShipName = "submarine"
	ShipDestroyer  ShipName = "destroyer"
	ShipPatrol     ShipName = "patrol"
)

// ShipClass is a ship name with its length
type ShipClass struct {
	Name   ShipName
	Length int
}

// TotalShipCells is the number of cells occupied by the standard fleet
const TotalShipCells = 16

// Fleet returns the standard fleet in placement order
func Fleet() []ShipClass {
	return []ShipClass{
		{Name: ShipCarrier, Length: 5},
		{Name: ShipBattleship, Length: 4},
		{Name: ShipSubmarine, Length: 3},
		{Name: ShipDestroyer, Length: 2},
		{Name: ShipPatrol, Length: 2},
	}
}

// Ship is a placed ship and its damage
type Ship struct {
	Name   ShipName     `json:"name"`
	Length int          `json:"length"`
	Cells  []Coordinate `json:"cells"`
	Hits   int          `json:"hits"`
	Sunk   bool         `json:"sunk"`
}

// NewShip creates an undamaged ship occupying the given cells
func NewShip(name ShipName, cells []Coordinate) *Ship {
	return &Ship{
		Name:   name,
		Length: len(cells),
		Cells:  cells,
	}
}

// Occupies returns true if the ship covers the coordinate
func (s *Ship) Occupies(c Coordinate) bool {
	for _, cell := range s.Cells {
		if cell == c {
			return true
		}
	}
	return false
}

// RegisterHit records a hit and returns true if this hit sank the ship
func (s *Ship) RegisterHit() bool {
	if s.Sunk {
		return false
	}
	s.Hits++
	if s.Hits >= s.Length {
		s.Hits = s.Length
		s.Sunk = true
		return true
	}
	return false
}

// IsDamaged returns true if the ship has been hit but is still afloat
func (s *Ship) IsDamaged() bool {
	return s.Hits > 0 && !s.Sunk
}
