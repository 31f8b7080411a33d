package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dealExact feeds r the given sequence of card indices as chance
// actions, requiring r to still be in Dealing before each one.
func dealExact(t *testing.T, r *Round, order []int) {
	t.Helper()
	for _, idx := range order {
		require.Equal(t, Dealing, r.Phase())
		require.NoError(t, r.ApplyAction(idx))
	}
}

func TestNewRoundValidatesBounds(t *testing.T) {
	_, err := NewRound(2, 1, 0, NormalReward)
	assert.Error(t, err)
	_, err = NewRound(4, 0, 0, NormalReward)
	assert.Error(t, err)
	_, err = NewRound(4, 1, 4, NormalReward)
	assert.Error(t, err)
}

func TestRoundDealingTransitionsToGuessing(t *testing.T) {
	r, err := NewRound(3, 1, 0, NormalReward)
	require.NoError(t, err)

	// One card per seat (indices 2,3,4 are B1,B2,B3), then trump B4.
	dealExact(t, r, []int{2, 3, 4, 5})

	assert.Equal(t, Guessing, r.Phase())
	assert.Equal(t, 0, r.Turn())
	assert.Equal(t, 2, r.StopTurn())
	trump, ok := r.Trump()
	require.True(t, ok)
	assert.Equal(t, Card{Blue, 4}, trump)
}

func TestHookRuleForbidsSumEqualToRoundNr(t *testing.T) {
	r, err := NewRound(3, 1, 0, NormalReward)
	require.NoError(t, err)
	dealExact(t, r, []int{2, 3, 4, 5})

	require.NoError(t, r.ApplyAction(1)) // seat 0 bids 1
	require.NoError(t, r.ApplyAction(0)) // seat 1 bids 0
	// seat 2 is stopTurn; sum so far is 1, so bidding 0 would make sum==R(1).
	legal := r.LegalActions()
	assert.NotContains(t, legal, 0)
	assert.Contains(t, legal, 1)
	err = r.ApplyAction(0)
	assert.ErrorIs(t, err, ErrIllegalGuess)
}

func TestScenarioThreePlayersWizardWinsHookRule(t *testing.T) {
	// N=3, R=1, S=0, Normal. Seat 0 gets the Wizard.
	r, err := NewRound(3, 1, 0, NormalReward)
	require.NoError(t, err)

	wizardIdx := Card{White, 14}.ToIndex()
	seat1Card := Card{Red, 5}.ToIndex()
	seat2Card := Card{Green, 7}.ToIndex()
	trumpIdx := Card{Blue, 2}.ToIndex()
	dealExact(t, r, []int{wizardIdx, seat1Card, seat2Card, trumpIdx})

	require.Equal(t, Guessing, r.Phase())
	require.NoError(t, r.ApplyAction(1)) // seat 0 bids 1
	require.NoError(t, r.ApplyAction(0)) // seat 1 bids 0
	// seat 2 (stopTurn) cannot bid 0 (sum would be 1 == R); force 1.
	require.NoError(t, r.ApplyAction(1))

	require.Equal(t, Tricking, r.Phase())
	require.NoError(t, r.ApplyAction(wizardIdx+r.ActionOffset()))
	require.NoError(t, r.ApplyAction(seat1Card+r.ActionOffset()))
	require.NoError(t, r.ApplyAction(seat2Card+r.ActionOffset()))

	require.True(t, r.IsTerminal())
	assert.Equal(t, 1, r.TricksWon(0))
	assert.Equal(t, 0, r.TricksWon(1))
	assert.Equal(t, 0, r.TricksWon(2))

	returns := r.Returns()
	assert.Equal(t, []float64{30, 20, -10}, returns)
}

func TestScenarioJesterLeadEstablishesFollowerColor(t *testing.T) {
	r, err := NewRound(4, 3, 0, NormalReward)
	require.NoError(t, err)

	// Deal 3 cards to each of 4 seats (12 total) plus a trump.
	order := make([]int, 0, 13)
	// Give seat 0 a Jester among its cards, seat 2 a Red card, others filler.
	hands := [][]Card{
		{{White, 0}, {Blue, 2}, {Blue, 3}},
		{{Red, 5}, {Green, 9}, {Green, 10}},
		{{Red, 8}, {Yellow, 4}, {Yellow, 5}},
		{{Green, 2}, {Green, 3}, {Green, 4}},
	}
	for round := 0; round < 3; round++ {
		for seat := 0; seat < 4; seat++ {
			order = append(order, hands[seat][round].ToIndex())
		}
	}
	order = append(order, Card{Blue, 9}.ToIndex())
	dealExact(t, r, order)

	for seat := 0; seat < 4; seat++ {
		require.NoError(t, r.ApplyAction(0))
	}
	require.Equal(t, Tricking, r.Phase())

	require.NoError(t, r.ApplyAction(Card{White, 0}.ToIndex()+r.ActionOffset())) // seat 0 leads Jester
	require.NoError(t, r.ApplyAction(Card{Red, 5}.ToIndex()+r.ActionOffset()))   // seat 1 sets lead color to Red

	legal := r.LegalActions() // seat 2's turn, holds a Red card
	for _, idx := range legal {
		card, err := FromIndex(idx - r.ActionOffset())
		require.NoError(t, err)
		assert.True(t, card.Color == Red || card.Color == White, "seat 2 must follow Red or play White, got %s", card)
	}
}

func TestScenarioWizardAfterLeadAlwaysWinsTrick(t *testing.T) {
	r, err := NewRound(4, 1, 0, NormalReward)
	require.NoError(t, err)

	seat0 := Card{Blue, 3}
	seat1 := Card{Blue, 5}
	seat2 := Card{White, 14} // Wizard
	seat3 := Card{Blue, 13}  // higher trump, still loses
	dealExact(t, r, []int{
		seat0.ToIndex(), seat1.ToIndex(), seat2.ToIndex(), seat3.ToIndex(),
		Card{Blue, 1}.ToIndex(),
	})
	for seat := 0; seat < 4; seat++ {
		require.NoError(t, r.ApplyAction(0))
	}
	require.NoError(t, r.ApplyAction(seat0.ToIndex()+r.ActionOffset()))
	require.NoError(t, r.ApplyAction(seat1.ToIndex()+r.ActionOffset()))
	require.NoError(t, r.ApplyAction(seat2.ToIndex()+r.ActionOffset()))
	require.NoError(t, r.ApplyAction(seat3.ToIndex()+r.ActionOffset()))

	assert.Equal(t, 1, r.TricksWon(2))
	assert.Equal(t, 0, r.TricksWon(3))
}

func TestScenarioNoTrumpFinalRound(t *testing.T) {
	numPlayers := 3
	maxRound := MaxRoundFor(numPlayers) // 20
	r, err := NewRound(numPlayers, maxRound, 0, NormalReward)
	require.NoError(t, err)

	for r.deck.Remaining() > 0 || r.CardsDealt() < numPlayers*maxRound {
		legal := r.LegalActions()
		require.NoError(t, r.ApplyAction(legal[0]))
	}
	// The next (forced) chance action deals the no-trump Jester.
	require.Equal(t, Dealing, r.Phase())
	require.Equal(t, 0, r.deck.Remaining())
	require.NoError(t, r.ApplyAction(0))

	assert.Equal(t, Guessing, r.Phase())
	assert.True(t, r.IsNoTrump())
	trump, _ := r.Trump()
	for _, c := range []Color{Blue, Red, Green, Yellow} {
		card := Card{c, 5}
		assert.False(t, card.IsTrump(trump.Color))
	}
}

func TestScenarioBinaryRewardMode(t *testing.T) {
	r, err := NewRound(3, 1, 0, BinaryReward)
	require.NoError(t, err)

	wizardIdx := Card{White, 14}.ToIndex()
	seat1Card := Card{Red, 5}.ToIndex()
	seat2Card := Card{Green, 7}.ToIndex()
	trumpIdx := Card{Blue, 2}.ToIndex()
	dealExact(t, r, []int{wizardIdx, seat1Card, seat2Card, trumpIdx})

	require.NoError(t, r.ApplyAction(1))
	require.NoError(t, r.ApplyAction(0))
	require.NoError(t, r.ApplyAction(1))

	require.NoError(t, r.ApplyAction(wizardIdx+r.ActionOffset()))
	require.NoError(t, r.ApplyAction(seat1Card+r.ActionOffset()))
	require.NoError(t, r.ApplyAction(seat2Card+r.ActionOffset()))

	for _, v := range r.Returns() {
		assert.Contains(t, []float64{-1, 1}, v)
	}
}

func TestCardConservationInvariant(t *testing.T) {
	r, err := NewRound(4, 2, 1, NormalReward)
	require.NoError(t, err)

	for !r.IsTerminal() {
		legal := r.LegalActions()
		require.NotEmpty(t, legal)
		require.NoError(t, r.ApplyAction(legal[0]))

		total := r.deck.Remaining()
		for p := 0; p < r.NumPlayers(); p++ {
			total += len(r.Hand(p))
		}
		total += len(r.Table())
		total += len(r.HistoryPlayed())
		if _, ok := r.Trump(); ok {
			total++
		}
		assert.Equal(t, DeckSize, total)
	}
}

func TestTrickInvariantsAfterResolution(t *testing.T) {
	r, err := NewRound(3, 1, 0, NormalReward)
	require.NoError(t, err)
	dealExact(t, r, []int{2, 3, 4, 5})
	require.NoError(t, r.ApplyAction(0))
	require.NoError(t, r.ApplyAction(0))
	require.NoError(t, r.ApplyAction(0)) // stopTurn seat2: only 0 avoids sum==R

	before := r.TricksWon(0) + r.TricksWon(1) + r.TricksWon(2)
	legal := r.LegalActions()
	require.NoError(t, r.ApplyAction(legal[0]))
	legal = r.LegalActions()
	require.NoError(t, r.ApplyAction(legal[0]))
	legal = r.LegalActions()
	require.NoError(t, r.ApplyAction(legal[0]))

	after := r.TricksWon(0) + r.TricksWon(1) + r.TricksWon(2)
	assert.Equal(t, before+1, after)
	assert.Equal(t, mod(r.Turn()-1, 3), r.StopTurn())
}

func TestApplyActionAfterTerminalErrors(t *testing.T) {
	numPlayers := 3
	r, err := NewRound(numPlayers, 1, 0, NormalReward)
	require.NoError(t, err)
	dealExact(t, r, []int{2, 3, 4, 5})
	require.NoError(t, r.ApplyAction(0))
	require.NoError(t, r.ApplyAction(0))
	require.NoError(t, r.ApplyAction(0))
	for !r.IsTerminal() {
		require.NoError(t, r.ApplyAction(r.LegalActions()[0]))
	}
	err = r.ApplyAction(0)
	assert.ErrorIs(t, err, ErrTerminal)
}

func TestCloneIsIndependent(t *testing.T) {
	r, err := NewRound(3, 1, 0, NormalReward)
	require.NoError(t, err)
	dealExact(t, r, []int{2, 3, 4, 5})

	clone := r.Clone()
	require.NoError(t, r.ApplyAction(0))
	assert.Equal(t, Guessing, r.Phase())
	assert.Equal(t, Guessing, clone.Phase())
	assert.Equal(t, -1, clone.Guessed(0))
	assert.Equal(t, 0, r.Guessed(0))
}

func TestDeterminismReplayingSameActions(t *testing.T) {
	actions := func() []int {
		return []int{2, 3, 4, 5, 0, 0, 0}
	}
	r1, err := NewRound(3, 1, 0, NormalReward)
	require.NoError(t, err)
	r2, err := NewRound(3, 1, 0, NormalReward)
	require.NoError(t, err)
	for _, a := range actions() {
		require.NoError(t, r1.ApplyAction(a))
		require.NoError(t, r2.ApplyAction(a))
	}
	assert.Equal(t, r1.Phase(), r2.Phase())
	assert.Equal(t, r1.Hand(0), r2.Hand(0))
	assert.Equal(t, r1.Guessed(1), r2.Guessed(1))
}
