package response

import (
	"encoding/json"
	"net/http"

	"github.com/mcoot/issue-battleships/internal/model"
)

// JSON writes a JSON response. Game state changes with every move, so no
// response may be cached.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// Move writes a resolved move with the reply text posted back to the player
func Move(w http.ResponseWriter, result *model.MoveResult, reply string) {
	JSON(w, http.StatusOK, MoveResponse{Result: result, Reply: reply})
}
