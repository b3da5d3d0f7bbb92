package model_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/issue-battleships/internal/model"
)

func TestParseCoordinate(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr error
	}{
		{in: "B4", want: "B4"},
		{in: "j10", want: "J10"},
		{in: "  a1 ", want: "A1"},
		{in: "K1", wantErr: model.ErrOutOfBounds},
		{in: "A0", wantErr: model.ErrOutOfBounds},
		{in: "A11", wantErr: model.ErrOutOfBounds},
		{in: "A", wantErr: model.ErrInvalidFormat},
		{in: "4B", wantErr: model.ErrInvalidFormat},
		{in: "B+4", wantErr: model.ErrInvalidFormat},
		{in: "B4 B5", wantErr: model.ErrInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := model.ParseCoordinate(tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.String())
			assert.True(t, c.IsValid())
		})
	}
}

func TestCoordinateAsMapKey(t *testing.T) {
	board := model.NewBoard()
	require.NoError(t, board.Resolve(model.MustParseCoordinate("C7"), model.CellHit))

	data, err := json.Marshal(board)
	require.NoError(t, err)
	assert.JSONEq(t, `{"cells":{"C7":"hit"}}`, string(data))

	var decoded model.Board
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, model.CellHit, decoded.Get(model.MustParseCoordinate("C7")))
}

func TestAllCoordinates(t *testing.T) {
	all := model.AllCoordinates()
	require.Len(t, all, model.BoardSize*model.BoardSize)
	assert.Equal(t, "A1", all[0].String())
	assert.Equal(t, "A10", all[9].String())
	assert.Equal(t, "J10", all[len(all)-1].String())
}
