package wizard

import "errors"

// Color is a card's suit. There are four playable suits plus the
// special White suit shared by the Jester and the Wizard.
type Color uint8

const (
	Blue Color = iota
	Red
	Green
	Yellow
	White
)

func (c Color) String() string {
	switch c {
	case Blue:
		return "B"
	case Red:
		return "R"
	case Green:
		return "G"
	case Yellow:
		return "Y"
	case White:
		return "W"
	default:
		return "?"
	}
}

const (
	// NumColors counts the four ordinary trump-bearing suits (White does
	// not carry trump and is excluded from tensor one-hot encodings).
	NumColors = 4
	// MaxCardValue is the highest value of a normal card.
	MaxCardValue = 13
	// NumSpecials counts the Jester and the Wizard.
	NumSpecials = 2
	// DeckSize is the total number of physical cards: 4 copies each of
	// Jester and Wizard, plus one copy of each of the 52 normal cards.
	DeckSize = 60
	// NumDistinctCards is the number of distinct card identities.
	NumDistinctCards = NumSpecials + NumColors*MaxCardValue

	jesterValue = 0
	wizardValue = 14
)

// Phase is the round's current sub-machine. It strictly progresses
// Dealing -> Guessing -> Tricking -> Final and never regresses.
type Phase uint8

const (
	Dealing Phase = iota
	Guessing
	Tricking
	Final
)

func (p Phase) String() string {
	switch p {
	case Dealing:
		return "dealing"
	case Guessing:
		return "guessing"
	case Tricking:
		return "tricking"
	case Final:
		return "final"
	default:
		return "unknown"
	}
}

// RewardMode selects between the two scoring regimes of §4.5.
type RewardMode uint8

const (
	NormalReward RewardMode = iota
	BinaryReward
)

// ChancePlayer is the special "current player" value reported while the
// round is in the Dealing phase and the next action is a chance outcome.
const ChancePlayer = -1

// TerminalPlayer is the special "current player" value reported once a
// State has reached Final.
const TerminalPlayer = -4

var (
	// ErrCardExhausted is returned when dealing a card whose remaining
	// count in the deck is zero.
	ErrCardExhausted = errors.New("wizard: card exhausted in deck")
	// ErrBadCardIndex is returned by FromIndex for an index outside [0,54).
	ErrBadCardIndex = errors.New("wizard: card index out of range")
	// ErrBadCardLabel is returned when parsing a card label with a bad
	// color or an out-of-range value.
	ErrBadCardLabel = errors.New("wizard: malformed card label")
	// ErrIllegalGuess is returned for a guess outside the legal set,
	// including a hook-rule violation by the stop-turn bidder.
	ErrIllegalGuess = errors.New("wizard: illegal guess")
	// ErrIllegalPlay is returned for playing a card not held, or not
	// legal under the lead-color rule.
	ErrIllegalPlay = errors.New("wizard: illegal card play")
	// ErrWrongPhase is returned when an action class is applied in a
	// phase that does not accept it.
	ErrWrongPhase = errors.New("wizard: action not legal in current phase")
	// ErrTerminal is returned when applying any action to a Final round.
	ErrTerminal = errors.New("wizard: round is already terminal")
	// ErrInvariant flags a detected violation of an engine invariant
	// (§9 open question on the compare() identity case), never a
	// legitimate game rule outcome.
	ErrInvariant = errors.New("wizard: internal invariant violated")
)

// Player-count bounds (§6).
const (
	MinPlayers = 3
	MaxPlayers = 6
)
