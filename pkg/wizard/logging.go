package wizard

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// logParamsLoaded traces a resolved GameParams through the ambient
// github.com/rs/zerolog/log singleton, gated by the same
// viper.GetBool("log.traced") check pkg/logger/bunlog's AfterQuery and
// pkg/logger/otellog's Info consult on the package-level default viper
// instance. The teacher's core game state machine (pkg/guandan's
// GameRound.Play and its callees) never logs at all; only its
// service/infra layer reaches for zerolog, and always through this
// ambient global rather than an injected logger instance. Config
// loading is the closest thing this engine has to that layer, so that
// is where the one log line lives; pkg/wizard/round.go stays silent,
// matching GameRound.Play.
func logParamsLoaded(params GameParams) {
	if !viper.GetBool("log.traced") {
		return
	}
	log.Info().
		Int("players", params.Players).
		Int("round", params.Round).
		Int("start_player", params.StartPlayer).
		Int("reward_mode", int(params.RewardMode)).
		Msg("wizard: game params loaded")
}
