package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mcoot/issue-battleships/internal/model"
)

// ResetTitle is the issue title that requests a game reset
const ResetTitle = "reset game"

var (
	// Either "/move" or "move:" followed by the rest of the line
	commandPattern = regexp.MustCompile(`(?im)(?:/move\b|\bmove:)([^\r\n]*)`)
	// One letter followed by one or two digits, standing alone
	tokenPattern = regexp.MustCompile(`^[A-Za-z][0-9]{1,2}$`)
)

// Service parses issue text into commands
type Service struct{}

// New creates a new parser Service
func New() *Service {
	return &Service{}
}

// Parse interprets an issue as either a reset request or a move
func (s *Service) Parse(title, body string) (model.Command, error) {
	if IsReset(title) {
		return model.Command{Type: model.CommandReset}, nil
	}
	coord, err := s.ParseMove(title, body)
	if err != nil {
		return model.Command{}, err
	}
	return model.Command{Type: model.CommandMove, Coordinate: coord}, nil
}

// ParseMove extracts exactly one coordinate from the issue text.
// The title is searched first; the body is only used if the title holds no
// move command.
func (s *Service) ParseMove(title, body string) (model.Coordinate, error) {
	text := title
	matches := commandPattern.FindAllStringSubmatch(title, -1)
	if len(matches) == 0 {
		text = body
		matches = commandPattern.FindAllStringSubmatch(body, -1)
	}

	switch len(matches) {
	case 0:
		return model.Coordinate{}, fmt.Errorf("%w: no move command in %q", model.ErrInvalidFormat, summarize(text))
	case 1:
	default:
		return model.Coordinate{}, fmt.Errorf("%w: %d move commands", model.ErrInvalidFormat, len(matches))
	}

	tokens := coordinateTokens(matches[0][1])
	switch len(tokens) {
	case 0:
		return model.Coordinate{}, fmt.Errorf("%w: no coordinate in %q", model.ErrInvalidFormat, strings.TrimSpace(matches[0][1]))
	case 1:
		return model.ParseCoordinate(tokens[0])
	default:
		return model.Coordinate{}, fmt.Errorf("%w: multiple coordinates %v", model.ErrInvalidFormat, tokens)
	}
}

// IsReset returns true if the title is the reset command
func IsReset(title string) bool {
	return strings.EqualFold(strings.TrimSpace(title), ResetTitle)
}

// coordinateTokens splits the command argument on whitespace and punctuation
// and returns the tokens shaped like a coordinate
func coordinateTokens(arg string) []string {
	fields := strings.FieldsFunc(arg, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9')
	})
	var tokens []string
	for _, f := range fields {
		if tokenPattern.MatchString(f) {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

func summarize(text string) string {
	text = strings.TrimSpace(text)
	if len(text) > 40 {
		return text[:40] + "..."
	}
	return text
}

// Interface for dependency injection
type ServiceInterface interface {
	Parse(title, body string) (model.Command, error)
	ParseMove(title, body string) (model.Coordinate, error)
}

var _ ServiceInterface = (*Service)(nil)
