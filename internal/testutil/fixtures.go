package testutil

import (
	"time"

	"github.com/mcoot/issue-battleships/internal/model"
)

// FixedLayout returns a known fleet:
//
//	carrier    A1-A5
//	battleship C1-C4
//	submarine  F8-H8
//	destroyer  D4-D5
//	patrol     J1-J2
func FixedLayout() []*model.Ship {
	return []*model.Ship{
		model.NewShip(model.ShipCarrier, coords("A1", "A2", "A3", "A4", "A5")),
		model.NewShip(model.ShipBattleship, coords("C1", "C2", "C3", "C4")),
		model.NewShip(model.ShipSubmarine, coords("F8", "G8", "H8")),
		model.NewShip(model.ShipDestroyer, coords("D4", "D5")),
		model.NewShip(model.ShipPatrol, coords("J1", "J2")),
	}
}

// NewSession returns an active round 1 session using FixedLayout
func NewSession(now time.Time) *model.Session {
	return model.NewSession("session-1", 1, FixedLayout(), 7, now)
}

// ShipCells returns every ship cell of FixedLayout in fleet order
func ShipCells() []model.Coordinate {
	var cells []model.Coordinate
	for _, ship := range FixedLayout() {
		cells = append(cells, ship.Cells...)
	}
	return cells
}

func coords(labels ...string) []model.Coordinate {
	out := make([]model.Coordinate, len(labels))
	for i, l := range labels {
		out[i] = model.MustParseCoordinate(l)
	}
	return out
}
