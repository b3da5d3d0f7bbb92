package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mcoot/issue-battleships/internal/model"
)

func TestPlayerHandleNormalize(t *testing.T) {
	tests := []struct {
		in   model.PlayerHandle
		want model.PlayerHandle
	}{
		{"alice", "alice"},
		{"Alice", "alice"},
		{"@Alice", "alice"},
		{"  @bob ", "bob"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}

func TestPlayerHandleIs(t *testing.T) {
	assert.True(t, model.PlayerHandle("@Alice").Is("alice"))
	assert.True(t, model.PlayerHandle("alice").Is(" ALICE"))
	assert.False(t, model.PlayerHandle("alice").Is("alicia"))
}

func TestRejectionReasonFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want model.RejectionReason
		ok   bool
	}{
		{"already played", &model.AlreadyPlayedError{Coordinate: model.MustParseCoordinate("B4"), Status: model.CellHit}, model.RejectedAlreadyPlayed, true},
		{"cooldown", &model.CooldownError{Player: "alice", Remaining: time.Hour}, model.RejectedCooldown, true},
		{"game over", model.ErrGameOver, model.RejectedGameOver, true},
		{"bad format", model.ErrInvalidFormat, "", false},
		{"storage", model.ErrConcurrencyConflict, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := model.RejectionReasonFor(tt.err)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTrimRejectionsKeepsNewest(t *testing.T) {
	log := make([]model.Rejection, model.MaxRejections+3)
	for i := range log {
		log[i].Coordinate = model.Coordinate{Row: i % model.BoardSize, Col: 0}
		log[i].At = now.Add(time.Duration(i) * time.Second)
	}

	trimmed := model.TrimRejections(log)
	assert.Len(t, trimmed, model.MaxRejections)
	assert.True(t, trimmed[0].At.Equal(now.Add(3*time.Second)))
	assert.Len(t, model.TrimRejections(log[:2]), 2)
}
