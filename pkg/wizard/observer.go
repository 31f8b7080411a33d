package wizard

import (
	"fmt"
	"strconv"
	"strings"
)

// numHandFeatures is the width of a card count vector: one slot per
// distinct card identity, holding how many copies are present.
const numHandFeatures = NumDistinctCards

// Observer renders a State from one player's viewpoint, either as a
// human-readable symbolic string or as a dense float tensor. The two
// modes of §4.6 — Markov observation and perfect-recall information
// state — are the same Observer with perfectRecall toggled; a Game
// builds one of each in its constructor and never mutates them after
// (§9's "no global mutable state" note), the way original_source's
// WizardObserver is parameterized by an IIGObservationType flag set
// rather than subclassed per mode.
type Observer struct {
	perfectRecall bool
}

// Shape returns the fixed-length tensor shape this Observer produces
// for a game of the given size, per §4.6.
func (o *Observer) Shape(numPlayers, roundNr int) []int {
	if o.perfectRecall {
		return []int{2*numPlayers + numHandFeatures + NumColors + 2 + numPlayers*roundNr*numHandFeatures}
	}
	return []int{numPlayers*(numHandFeatures+3) + numHandFeatures + NumColors + 1}
}

// StringFrom renders the symbolic observation string for player as
// seen from state s. This is the supplemented debug-dump feature of
// §4.9, following original_source's WizardObserver::StringFrom line
// for line but rendered as a Go strings.Builder rather than an
// absl::StrCat chain.
func (o *Observer) StringFrom(s *State, player int) string {
	r := s.round
	if r.Phase() == Dealing {
		return "dealing cards"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "playerNr\t%d\n", player)
	fmt.Fprintf(&b, "currentPlayer\t%d\n", r.Turn())
	fmt.Fprintf(&b, "round\t%d\n", r.RoundNr())
	fmt.Fprintf(&b, "numPlayers\t%d\n", r.NumPlayers())
	fmt.Fprintf(&b, "guessedTricks\t%s\n", joinInts(allGuessed(r)))
	fmt.Fprintf(&b, "tricks\t%s\n", joinInts(allTricks(r)))
	fmt.Fprintf(&b, "gamePhase\t%s\n", r.Phase().String())

	table := r.Table()
	fmt.Fprintf(&b, "cardsPlayedOnTable\t%s\n", joinCards(tableCards(table)))
	fmt.Fprintf(&b, "playedByOnTable\t%s\n", joinInts(tablePlayers(table)))
	fmt.Fprintf(&b, "hand\t%s\n", joinCards(r.Hand(player)))
	trump, _ := r.Trump()
	fmt.Fprintf(&b, "trump\t%s\n", trump.String())
	fmt.Fprintf(&b, "legalActions\t%s\n", joinInts(r.LegalActionsForPlayer(player)))

	if o.perfectRecall {
		history := r.HistoryPlayed()
		fmt.Fprintf(&b, "cardsPlayed\t%s\n", joinCards(tableCards(history)))
		fmt.Fprintf(&b, "playedBy\t%s\n", joinInts(tablePlayers(history)))
	}
	return b.String()
}

// Tensor renders the dense numeric observation for player as seen from
// state s, matching the layout of Shape.
func (o *Observer) Tensor(s *State, player int) []float32 {
	r := s.round
	n := r.NumPlayers()
	out := make([]float32, o.Shape(n, r.RoundNr())[0])
	pos := 0

	// seat one-hot
	out[pos+player] = 1
	pos += n

	// private hand: card-index counts
	for _, c := range r.Hand(player) {
		out[pos+c.ToIndex()]++
	}
	pos += numHandFeatures

	// round number
	out[pos] = float32(r.RoundNr())
	pos++

	if o.perfectRecall {
		out[pos] = float32(s.moveNumber)
		pos++
	}

	// trump one-hot over the four playable suits
	if trump, ok := r.Trump(); ok && trump.Color != White {
		out[pos+int(trump.Color)] = 1
	}
	pos += NumColors

	// guessed tricks
	for p, g := range allGuessed(r) {
		out[pos+p] = float32(g)
	}
	pos += n

	if o.perfectRecall {
		history := r.HistoryPlayed()
		table := r.Table()
		row := 0
		for _, tp := range history {
			out[pos+row*numHandFeatures+tp.Card.ToIndex()] = 1
			row++
		}
		for _, tp := range table {
			out[pos+row*numHandFeatures+tp.Card.ToIndex()] = 1
			row++
		}
		return out
	}

	// tricks won so far
	for p, t := range allTricks(r) {
		out[pos+p] = float32(t)
	}
	pos += n

	// card played on the table this trick, one row per seat
	for _, tp := range r.Table() {
		out[pos+tp.Player*numHandFeatures+tp.Card.ToIndex()] = 1
	}
	return out
}

func allGuessed(r *Round) []int {
	out := make([]int, r.NumPlayers())
	for p := range out {
		if g := r.Guessed(p); g >= 0 {
			out[p] = g
		}
	}
	return out
}

func allTricks(r *Round) []int {
	out := make([]int, r.NumPlayers())
	for p := range out {
		out[p] = r.TricksWon(p)
	}
	return out
}

func tableCards(plays []TablePlay) Cards {
	out := make(Cards, len(plays))
	for i, tp := range plays {
		out[i] = tp.Card
	}
	return out
}

func tablePlayers(plays []TablePlay) []int {
	out := make([]int, len(plays))
	for i, tp := range plays {
		out[i] = tp.Player
	}
	return out
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, ",")
}

func joinCards(cs Cards) string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}
	return strings.Join(parts, ",")
}
