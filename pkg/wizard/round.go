package wizard

import (
	"fmt"
)

// TablePlay records one player's card play, in play order.
type TablePlay struct {
	Player int
	Card   Card
}

// Round is the Wizard state machine: Dealing -> Guessing -> Tricking,
// looping Tricking once per trick until roundNr tricks complete, then
// Final. All mutation happens through ApplyAction; every other method
// is a read of the current state.
//
// Phase is tracked as a discriminant rather than as separate phase
// structs (§9's "tagged variant" note): hands, deck, and trump persist
// across phase boundaries by the invariants of §3, so splitting them
// into per-phase types would just duplicate the shared fields. Illegal
// queries are guarded instead — e.g. Trump's second return value is
// false until Dealing has set it — which gives the same "can't observe
// an illegal state" guarantee without the duplication.
type Round struct {
	numPlayers  int
	roundNr     int
	startPlayer int
	rewardMode  RewardMode

	phase Phase

	deck  *Deck
	hands []Cards

	trump    Card
	trumpSet bool

	guessed []int
	tricks  []int

	table         []TablePlay
	historyPlayed []TablePlay

	turn     int
	stopTurn int
	lead     int

	dealTo          int
	cardsDealt      int
	tricksCompleted int
}

// MaxRoundFor returns 60/numPlayers, the largest legal round size.
func MaxRoundFor(numPlayers int) int {
	return DeckSize / numPlayers
}

// NewRound constructs a fresh Round in the Dealing phase. It validates
// numPlayers, roundNr and startPlayer against §3's ranges.
func NewRound(numPlayers, roundNr, startPlayer int, rewardMode RewardMode) (*Round, error) {
	if numPlayers < MinPlayers || numPlayers > MaxPlayers {
		return nil, fmt.Errorf("wizard: players %d out of range [%d,%d]", numPlayers, MinPlayers, MaxPlayers)
	}
	maxRound := MaxRoundFor(numPlayers)
	if roundNr < 1 || roundNr > maxRound {
		return nil, fmt.Errorf("wizard: round %d out of range [1,%d]", roundNr, maxRound)
	}
	if startPlayer < 0 || startPlayer >= numPlayers {
		return nil, fmt.Errorf("wizard: start_player %d out of range [0,%d)", startPlayer, numPlayers)
	}
	return &Round{
		numPlayers:  numPlayers,
		roundNr:     roundNr,
		startPlayer: startPlayer,
		rewardMode:  rewardMode,
		phase:       Dealing,
		deck:        NewDeck(),
		hands:       make([]Cards, numPlayers),
		guessed:     make([]int, numPlayers),
		tricks:      make([]int, numPlayers),
		turn:        ChancePlayer,
		dealTo:      startPlayer,
		lead:        startPlayer,
	}, nil
}

// GuessCount is R+1, the number of distinct bid values a player may
// choose among this round.
func (r *Round) GuessCount() int { return r.roundNr + 1 }

// ActionOffset is the constant added to a card index to obtain its
// play action (§4.2). It is fixed at floor(60/N)+1 for the lifetime of
// the round rather than tracking the actual round_nr, so that the
// action space a Game advertises does not shift between rounds of
// differing size for the same seat count.
func (r *Round) ActionOffset() int { return MaxRoundFor(r.numPlayers) + 1 }

func (r *Round) Phase() Phase          { return r.phase }
func (r *Round) NumPlayers() int       { return r.numPlayers }
func (r *Round) RoundNr() int          { return r.roundNr }
func (r *Round) StartPlayer() int      { return r.startPlayer }
func (r *Round) RewardMode() RewardMode { return r.rewardMode }
func (r *Round) StopTurn() int         { return r.stopTurn }
func (r *Round) Lead() int             { return r.lead }
func (r *Round) CardsDealt() int       { return r.cardsDealt }
func (r *Round) TricksCompleted() int  { return r.tricksCompleted }
func (r *Round) IsTerminal() bool      { return r.phase == Final }

// Turn returns the seat to act, or ChancePlayer during Dealing.
func (r *Round) Turn() int {
	if r.phase == Dealing {
		return ChancePlayer
	}
	return r.turn
}

// Trump returns the trump card and whether it has been set yet. Once
// set, a White trump card means "no trump" for the remainder of the
// round.
func (r *Round) Trump() (Card, bool) {
	return r.trump, r.trumpSet
}

// IsNoTrump reports whether the round has no trump suit. It is only
// meaningful once Trump's second return value is true.
func (r *Round) IsNoTrump() bool {
	return r.trumpSet && r.trump.Color == White
}

// Hand returns player's current hand. The returned slice must not be
// mutated by the caller.
func (r *Round) Hand(player int) Cards { return r.hands[player] }

// Guessed returns player's bid, or -1 if not yet guessed this round.
func (r *Round) Guessed(player int) int {
	if r.hasGuessed(player) {
		return r.guessed[player]
	}
	return -1
}

// hasGuessed reports whether player has already submitted a bid this
// round, based on turn order rather than a sentinel value so that a
// genuine bid of 0 is not confused with "unset".
func (r *Round) hasGuessed(player int) bool {
	switch r.phase {
	case Dealing:
		return false
	case Guessing:
		distPlayer := mod(player-r.startPlayer, r.numPlayers)
		distTurn := mod(r.turn-r.startPlayer, r.numPlayers)
		return distPlayer < distTurn
	default:
		return true
	}
}

// TricksWon returns player's completed trick count so far.
func (r *Round) TricksWon(player int) int { return r.tricks[player] }

// Table returns the plays made so far in the current trick, in order.
func (r *Round) Table() []TablePlay { return r.table }

// HistoryPlayed returns all plays from completed tricks, in play order.
func (r *Round) HistoryPlayed() []TablePlay { return r.historyPlayed }

// LegalActions returns the legal actions for the seat to act (or the
// chance actor during Dealing), sorted ascending.
func (r *Round) LegalActions() []int {
	switch r.phase {
	case Dealing:
		return r.deck.LegalDeals()
	case Guessing:
		return r.legalGuesses()
	case Tricking:
		return r.legalPlays(r.turn)
	default:
		return nil
	}
}

// LegalActionsForPlayer returns LegalActions() when player is the seat
// (or chance actor) to act, and nil otherwise — grounded on
// original_source's GetLegalGuessActions/GetLegalCardActions, which
// both short-circuit to empty for any seat other than the one on turn.
func (r *Round) LegalActionsForPlayer(player int) []int {
	if r.Turn() != player {
		return nil
	}
	return r.LegalActions()
}

func (r *Round) legalGuesses() []int {
	sum := 0
	for _, g := range r.guessed {
		sum += g
	}
	out := make([]int, 0, r.roundNr+1)
	for n := 0; n <= r.roundNr; n++ {
		if r.turn == r.stopTurn && sum+n == r.roundNr {
			continue
		}
		out = append(out, n)
	}
	return out
}

// legalPlays implements §4.3's lead-color rule, resolved against
// original_source/open_spiel/games/wizard.h's GetLegalCardActions: a
// leading Wizard (like an empty table or an all-Jester table) puts no
// restriction on the follow, since only a leading *colored* card
// defines a lead color to follow.
func (r *Round) legalPlays(player int) []int {
	hand := r.hands[player]
	leadColor, freeForAll := r.leadColor()

	candidates := hand
	if !freeForAll && hand.hasColor(leadColor) {
		candidates = hand.withColor(leadColor, White)
	}

	offset := r.ActionOffset()
	indices := candidates.SortedDistinctIndices()
	out := make([]int, len(indices))
	for i, idx := range indices {
		out[i] = idx + offset
	}
	return out
}

// leadColor returns the color of the first non-Jester card on the
// table. freeForAll is true when there is no such card (empty table,
// or every play so far is a Jester) or when that card is a Wizard.
func (r *Round) leadColor() (color Color, freeForAll bool) {
	for _, tp := range r.table {
		if tp.Card.IsJester() {
			continue
		}
		if tp.Card.IsWizard() {
			return 0, true
		}
		return tp.Card.Color, false
	}
	return 0, true
}

// ApplyAction mutates the round according to its current phase. It
// returns ErrTerminal if the round is already Final.
func (r *Round) ApplyAction(action int) error {
	switch r.phase {
	case Dealing:
		return r.applyDeal(action)
	case Guessing:
		return r.applyGuess(action)
	case Tricking:
		return r.applyPlay(action)
	default:
		return ErrTerminal
	}
}

func (r *Round) applyDeal(action int) error {
	if r.cardsDealt < r.numPlayers*r.roundNr {
		card, err := r.dealChecked(action)
		if err != nil {
			return err
		}
		r.hands[r.dealTo] = append(r.hands[r.dealTo], card)
		r.cardsDealt++
		r.dealTo = (r.dealTo + 1) % r.numPlayers
		return nil
	}

	if r.deck.Remaining() == 0 {
		if action != 0 {
			return fmt.Errorf("%w: forced no-trump jester expected, got %d", ErrIllegalPlay, action)
		}
		r.trump = Card{Color: White, Value: jesterValue}
	} else {
		card, err := r.dealChecked(action)
		if err != nil {
			return err
		}
		r.trump = card
	}
	r.trumpSet = true
	r.phase = Guessing
	r.turn = r.startPlayer
	r.stopTurn = mod(r.startPlayer-1, r.numPlayers)
	return nil
}

func (r *Round) dealChecked(action int) (Card, error) {
	if !containsInt(r.deck.LegalDeals(), action) {
		return Card{}, fmt.Errorf("%w: action %d", ErrIllegalPlay, action)
	}
	return r.deck.Deal(action)
}

func (r *Round) applyGuess(action int) error {
	if !containsInt(r.legalGuesses(), action) {
		return fmt.Errorf("%w: %d by seat %d", ErrIllegalGuess, action, r.turn)
	}
	r.guessed[r.turn] = action
	if r.turn == r.stopTurn {
		r.phase = Tricking
		r.turn = r.startPlayer
		r.lead = r.startPlayer
		r.stopTurn = mod(r.startPlayer-1, r.numPlayers)
		return nil
	}
	r.turn = (r.turn + 1) % r.numPlayers
	return nil
}

func (r *Round) applyPlay(action int) error {
	if !containsInt(r.legalPlays(r.turn), action) {
		return fmt.Errorf("%w: action %d by seat %d", ErrIllegalPlay, action, r.turn)
	}
	cardIdx := action - r.ActionOffset()
	hand, ok := r.hands[r.turn].Remove(cardIdx)
	if !ok {
		return fmt.Errorf("%w: card index %d not held by seat %d", ErrIllegalPlay, cardIdx, r.turn)
	}
	r.hands[r.turn] = hand
	card, err := FromIndex(cardIdx)
	if err != nil {
		return err
	}
	r.table = append(r.table, TablePlay{Player: r.turn, Card: card})
	if r.turn == r.stopTurn {
		r.resolveTrick()
		return nil
	}
	r.turn = (r.turn + 1) % r.numPlayers
	return nil
}

// resolveTrick folds Compare across the table left to right to find
// the winner, per §4.1.
func (r *Round) resolveTrick() {
	best := r.table[0]
	trumpColor := r.trump.Color
	if r.IsNoTrump() {
		trumpColor = White
	}
	for _, tp := range r.table[1:] {
		if best.Card == tp.Card && !best.Card.IsWizard() && !best.Card.IsJester() {
			// Unreachable in legal play: each non-special card exists
			// once. Duplicate Wizards or Jesters are legal (four copies
			// each) and Compare keeps the earlier one (§9 open question).
			panic(fmt.Errorf("%w: identical cards %s on table", ErrInvariant, best.Card))
		}
		if !Compare(best.Card, tp.Card, trumpColor) {
			best = tp
		}
	}
	winner := best.Player
	r.tricks[winner]++
	r.historyPlayed = append(r.historyPlayed, r.table...)
	r.table = nil
	r.lead = winner
	r.turn = winner
	r.stopTurn = mod(winner-1, r.numPlayers)
	r.tricksCompleted++
	if r.tricksCompleted == r.roundNr {
		r.phase = Final
	}
}

// Clone returns an independent deep copy of r.
func (r *Round) Clone() *Round {
	clone := *r
	clone.deck = r.deck.Clone()
	clone.hands = make([]Cards, len(r.hands))
	for i, h := range r.hands {
		clone.hands[i] = h.Clone()
	}
	clone.guessed = append([]int(nil), r.guessed...)
	clone.tricks = append([]int(nil), r.tricks...)
	clone.table = append([]TablePlay(nil), r.table...)
	clone.historyPlayed = append([]TablePlay(nil), r.historyPlayed...)
	return &clone
}

func mod(x, n int) int {
	return ((x % n) + n) % n
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}
