package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mcoot/issue-battleships/internal/api/response"
	"github.com/mcoot/issue-battleships/internal/model"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	out    io.Writer
	errOut io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, out, errOut io.Writer) *Output {
	return &Output{format: format, out: out, errOut: errOut}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		_, _ = fmt.Fprintln(o.errOut, string(data))
	} else {
		_, _ = fmt.Fprintf(o.errOut, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		_, _ = fmt.Fprintln(o.out, string(data))
	} else {
		_, _ = fmt.Fprintln(o.out, msg)
	}
}

func (o *Output) printJSON(data any) {
	if m, ok := data.(Markdown); ok {
		data = m.Data
	}
	enc := json.NewEncoder(o.out)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Reply:
		_, _ = fmt.Fprintln(o.out, v.Reply)
	case Markdown:
		_, _ = fmt.Fprintln(o.out, v.Text)
	case TokenResult:
		o.printTokenResult(v)
	case Suggestion:
		_, _ = fmt.Fprintf(o.out, "Target (%s): %s\n", v.Strategy, v.Coordinate)
	case response.Health:
		_, _ = fmt.Fprintf(o.out, "Status: %s\n", v.Status)
	case response.MoveResponse:
		_, _ = fmt.Fprintln(o.out, v.Reply)
	case response.ResetResponse:
		_, _ = fmt.Fprintln(o.out, v.Reply)
	case response.EventResponse:
		_, _ = fmt.Fprintln(o.out, v.Reply)
	case response.GameResponse:
		o.printGame(v)
	case response.LeaderboardResponse:
		o.printLeaderboard(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Reply is the outcome of a move or reset: the text posted back to the
// issue plus the structured result
type Reply struct {
	Command model.CommandType  `json:"command,omitempty"`
	Reply   string             `json:"reply"`
	Error   string             `json:"error,omitempty"` // Set when the command was rejected
	Move    *model.MoveResult  `json:"move,omitempty"`
	Reset   *model.ResetResult `json:"reset,omitempty"`
}

// Markdown is printed as text in text mode and as Data in JSON mode
type Markdown struct {
	Text string
	Data any
}

// TokenResult is the output of hash-token
type TokenResult struct {
	Token string `json:"token,omitempty"` // Only set when generated
	Hash  string `json:"hash"`
}

// Suggestion is the autopilot's chosen target in a dry run
type Suggestion struct {
	Strategy   string           `json:"strategy"`
	Coordinate model.Coordinate `json:"coordinate"`
}

func (o *Output) printTokenResult(t TokenResult) {
	if t.Token != "" {
		_, _ = fmt.Fprintf(o.out, "Token: %s\n", t.Token)
	}
	_, _ = fmt.Fprintf(o.out, "Hash: %s\n", t.Hash)
}

func (o *Output) printGame(g response.GameResponse) {
	if g.Game == nil {
		_, _ = fmt.Fprintln(o.out, "No game in progress")
		return
	}
	_, _ = fmt.Fprintf(o.out, "Round: %03d\n", g.Game.Round)
	_, _ = fmt.Fprintf(o.out, "Status: %s\n", g.Game.Status)
	_, _ = fmt.Fprintf(o.out, "Moves: %d (%d hits, %d misses)\n", g.Game.TotalMoves, g.Game.Hits, g.Game.Misses)
	_, _ = fmt.Fprintf(o.out, "Remaining: %d\n", g.Game.Remaining)
	if g.Game.Winner != "" {
		_, _ = fmt.Fprintf(o.out, "Winner: @%s\n", g.Game.Winner)
	}
	_, _ = fmt.Fprintln(o.out)
	for _, row := range g.Game.Board {
		_, _ = fmt.Fprintln(o.out, row)
	}
}

func (o *Output) printLeaderboard(l response.LeaderboardResponse) {
	if len(l.Entries) == 0 {
		_, _ = fmt.Fprintln(o.out, "No players yet")
		return
	}
	for _, e := range l.Entries {
		_, _ = fmt.Fprintf(o.out, "%d. @%s  %d hits  %d misses  %.0f%%\n",
			e.Rank, e.Handle, e.Hits, e.Misses, e.Accuracy*100)
	}
}
