package redis

import (
	"fmt"

	"github.com/mcoot/battleship-go2/internal/model"
)

const keyPrefix = "bsgame"

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// registeredPlayerKey returns the Redis key for a RegisteredPlayer
func registeredPlayerKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:registered_player:%s", keyPrefix, playerID)
}

// usernameIndexKey returns the Redis key for the username -> player_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// gameKey returns the Redis key for a Game
func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}

// activeGameKey returns the Redis key for the player_id -> game_id index
func activeGameKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:idx:active_game:%s", keyPrefix, playerID)
}
