package middleware

import (
	"context"
	"net/http"

	"github.com/mcoot/battleship-go2/internal/model"
)

const (
	activeGameIDContextKey contextKey = "activeGameID"
)

// ActiveGameFinder looks up a player's current game
type ActiveGameFinder interface {
	GetActiveGame(ctx context.Context, playerID model.PlayerID) (*model.Game, error)
}

// GetActiveGameID retrieves the active game ID from the request context
// Returns empty string if the player has no game
func GetActiveGameID(ctx context.Context) model.GameID {
	id, _ := ctx.Value(activeGameIDContextKey).(model.GameID)
	return id
}

// ActiveGame returns middleware that looks up the player's active game
// and adds its ID to the context. Requires auth middleware to be applied first.
func ActiveGame(games ActiveGameFinder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			player := GetPlayer(r.Context())
			ctx := r.Context()

			if player != nil {
				if g, err := games.GetActiveGame(ctx, player.ID); err == nil {
					ctx = context.WithValue(ctx, activeGameIDContextKey, g.ID)
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
