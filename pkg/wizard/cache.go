package wizard

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// gameCacheKey identifies the derived, immutable Game metadata for one
// parameter combination: action-space size, utility bounds, and both
// tensor shapes all depend only on (players, round, reward_mode), so a
// rollout worker that repeatedly builds a Game for the same
// combination — e.g. one CFR run sweeping many episodes at a fixed
// table size — need not repay that computation each time.
type gameCacheKey struct {
	players    int
	round      int
	rewardMode RewardMode
}

// gameCache memoizes Game construction the way pkg/buncache memoizes
// row lookups: an expirable LRU rather than an unbounded map, so a
// caller sweeping many distinct (N, R) combinations cannot grow this
// cache without bound.
var gameCache = expirable.NewLRU[gameCacheKey, *Game](256, nil, 10*time.Minute)

// CachedGame returns a Game for params, reusing a previously built one
// for the same (players, round, reward_mode) regardless of
// start_player, since start_player does not affect any of the
// memoized metadata. The returned Game must not be mutated by the
// caller; Game has no exported mutators, so this holds by
// construction.
func CachedGame(params GameParams) (*Game, error) {
	key := gameCacheKey{players: params.Players, round: params.Round, rewardMode: params.RewardMode}
	if g, ok := gameCache.Get(key); ok {
		if g.params.StartPlayer == params.StartPlayer {
			return g, nil
		}
		clone := *g
		clone.params = params
		return &clone, nil
	}
	g, err := NewGame(params)
	if err != nil {
		return nil, err
	}
	gameCache.Add(key, g)
	return g, nil
}
