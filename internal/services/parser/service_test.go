package parser

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/issue-battleships/internal/model"
)

type ServiceSuite struct {
	suite.Suite
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.service = New()
}

// ParseMove tests

func (s *ServiceSuite) TestParseMoveAcceptsBothSyntaxes() {
	cases := map[string]string{
		"Move: B4":      "B4",
		"move: b4":      "B4",
		"/move J10":     "J10",
		"/MOVE a1":      "A1",
		"MOVE:C7":       "C7",
		"Move: (D5)":    "D5",
		"  /move  e3  ": "E3",
	}
	for title, want := range cases {
		coord, err := s.service.ParseMove(title, "")
		s.Require().NoError(err, title)
		s.Equal(want, coord.String(), title)
	}
}

func (s *ServiceSuite) TestParseMoveFallsBackToBody() {
	coord, err := s.service.ParseMove("My turn!", "Here goes\n/move F6\nwish me luck")
	s.Require().NoError(err)
	s.Equal("F6", coord.String())
}

func (s *ServiceSuite) TestParseMovePrefersTitle() {
	coord, err := s.service.ParseMove("Move: A1", "/move B2")
	s.Require().NoError(err)
	s.Equal("A1", coord.String())
}

func (s *ServiceSuite) TestParseMoveOutOfBoundsRow() {
	_, err := s.service.ParseMove("Move: Z9", "")
	s.ErrorIs(err, model.ErrOutOfBounds)
}

func (s *ServiceSuite) TestParseMoveOutOfBoundsColumn() {
	_, err := s.service.ParseMove("/move A11", "")
	s.ErrorIs(err, model.ErrOutOfBounds)

	_, err = s.service.ParseMove("/move A0", "")
	s.ErrorIs(err, model.ErrOutOfBounds)
}

func (s *ServiceSuite) TestParseMoveMultipleCoordinates() {
	_, err := s.service.ParseMove("Move B4 B5", "")
	s.ErrorIs(err, model.ErrInvalidFormat)

	_, err = s.service.ParseMove("Move: B4 B5", "")
	s.ErrorIs(err, model.ErrInvalidFormat)
}

func (s *ServiceSuite) TestParseMoveMultipleCommands() {
	_, err := s.service.ParseMove("", "/move A1\n/move A2")
	s.ErrorIs(err, model.ErrInvalidFormat)
}

func (s *ServiceSuite) TestParseMoveNoCoordinate() {
	_, err := s.service.ParseMove("Move: somewhere", "")
	s.ErrorIs(err, model.ErrInvalidFormat)

	_, err = s.service.ParseMove("Move: B123", "")
	s.ErrorIs(err, model.ErrInvalidFormat)
}

func (s *ServiceSuite) TestParseMoveNoCommand() {
	_, err := s.service.ParseMove("B4", "I'd like to fire at B4")
	s.ErrorIs(err, model.ErrInvalidFormat)
}

func (s *ServiceSuite) TestParseMoveIgnoresLaterLines() {
	coord, err := s.service.ParseMove("", "Move: C3\nalso tried C4 last time")
	s.Require().NoError(err)
	s.Equal("C3", coord.String())
}

// Parse tests

func (s *ServiceSuite) TestParseReset() {
	cmd, err := s.service.Parse("  reset GAME ", "")
	s.Require().NoError(err)
	s.Equal(model.CommandReset, cmd.Type)
}

func (s *ServiceSuite) TestParseMoveCommand() {
	cmd, err := s.service.Parse("Move: H8", "")
	s.Require().NoError(err)
	s.Equal(model.CommandMove, cmd.Type)
	s.Equal(model.Coordinate{Row: 7, Col: 7}, cmd.Coordinate)
}

func (s *ServiceSuite) TestParseInvalid() {
	_, err := s.service.Parse("Hello", "")
	s.ErrorIs(err, model.ErrInvalidFormat)
}
