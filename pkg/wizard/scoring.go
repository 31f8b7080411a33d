package wizard

// Returns computes the terminal reward vector for a completed round
// under its configured RewardMode (§4.5). It returns an all-zero
// vector of length NumPlayers for a non-terminal round (§7).
func (r *Round) Returns() []float64 {
	out := make([]float64, r.numPlayers)
	if !r.IsTerminal() {
		return out
	}
	for p := 0; p < r.numPlayers; p++ {
		out[p] = scoreFor(r.tricks[p], r.guessed[p], r.rewardMode)
	}
	return out
}

func scoreFor(tricksWon, guessed int, mode RewardMode) float64 {
	diff := tricksWon - guessed
	if diff < 0 {
		diff = -diff
	}
	normal := -10.0 * float64(diff)
	if diff == 0 {
		normal = 20 + 10*float64(tricksWon)
	}
	if mode == NormalReward {
		return normal
	}
	if normal > 0 {
		return 1
	}
	return -1
}

// MinUtility and MaxUtility are the componentwise bounds on Returns
// for a game with the given number of players and reward mode (§4.5).
func MinUtility(numPlayers int, mode RewardMode) float64 {
	if mode == BinaryReward {
		return -1
	}
	total := 0.0
	for k := 1; k <= MaxRoundFor(numPlayers); k++ {
		total += -10 * float64(k)
	}
	return total
}

func MaxUtility(numPlayers int, mode RewardMode) float64 {
	if mode == BinaryReward {
		return 1
	}
	total := 0.0
	for k := 1; k <= MaxRoundFor(numPlayers); k++ {
		total += 20 + 10*float64(k)
	}
	return total
}
