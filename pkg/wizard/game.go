package wizard

import (
	"fmt"
	"strconv"
)

// ActionProb pairs a chance action with its probability, the shape
// ChanceOutcomes reports to a host framework's chance sampler.
type ActionProb struct {
	Action int
	Prob   float64
}

// Game is the framework-facing description of a fixed-size Wizard
// instance (§6): the parameters that do not change across a State's
// lifetime, plus the two observers built once and shared by every
// State it produces. It plays the non-owning-backreference role of
// §9's design note — a State holds a *Game but never outlives it, and
// never mutates it.
type Game struct {
	params GameParams

	numDistinctActions int
	maxGameLength      int
	minUtility         float64
	maxUtility         float64

	observationObserver     *Observer
	informationStateObserver *Observer
}

// NewGame validates params and constructs a Game, building both
// observers once (§9: "populated in the Game constructor").
func NewGame(params GameParams) (*Game, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	maxRound := MaxRoundFor(params.Players)
	return &Game{
		params:                   params,
		numDistinctActions:       NumDistinctCards + maxRound + 1,
		maxGameLength:            params.Players*params.Round + params.Players,
		minUtility:               MinUtility(params.Players, params.RewardMode),
		maxUtility:               MaxUtility(params.Players, params.RewardMode),
		observationObserver:      &Observer{perfectRecall: false},
		informationStateObserver: &Observer{perfectRecall: true},
	}, nil
}

func (g *Game) NumPlayers() int             { return g.params.Players }
func (g *Game) NumDistinctActions() int     { return g.numDistinctActions }
func (g *Game) MaxChanceOutcomes() int      { return NumDistinctCards }
func (g *Game) MaxGameLength() int          { return g.maxGameLength }
func (g *Game) MinUtility() float64         { return g.minUtility }
func (g *Game) MaxUtility() float64         { return g.maxUtility }
func (g *Game) Params() GameParams          { return g.params }

// InformationStateTensorShape and ObservationTensorShape report the
// fixed tensor lengths a host allocator must reserve, per §4.6.
func (g *Game) InformationStateTensorShape() []int {
	return g.informationStateObserver.Shape(g.params.Players, g.params.Round)
}

func (g *Game) ObservationTensorShape() []int {
	return g.observationObserver.Shape(g.params.Players, g.params.Round)
}

// NewInitialState returns a fresh State in the Dealing phase.
func (g *Game) NewInitialState() (*State, error) {
	round, err := NewRound(g.params.Players, g.params.Round, g.params.StartPlayer, g.params.RewardMode)
	if err != nil {
		return nil, err
	}
	return &State{game: g, round: round}, nil
}

// State adapts a Round to the operations a host framework calls
// (§6). Per §3's "Ownership" note, it owns the Round plus an
// auxiliary parallel vector recording which seat performed each
// historical action — the Round itself has no notion of "who acted",
// only "whose turn is next".
type State struct {
	game *Game
	round *Round

	history      []int
	historyBy    []int
	moveNumber   int
}

// CurrentPlayer returns the seat to act, ChancePlayer during Dealing,
// or TerminalPlayer once the round is Final.
func (s *State) CurrentPlayer() int {
	if s.round.IsTerminal() {
		return TerminalPlayer
	}
	return s.round.Turn()
}

// LegalActions returns the actions the current player may take,
// sorted ascending, or nil once terminal.
func (s *State) LegalActions() []int {
	if s.round.IsTerminal() {
		return nil
	}
	return s.round.LegalActions()
}

// ActionToString renders action_id under the current phase's label
// convention (§6): a card label during Dealing or Tricking, a decimal
// integer during Guessing.
func (s *State) ActionToString(action int) string {
	switch s.round.Phase() {
	case Dealing:
		card, err := FromIndex(action)
		if err != nil {
			return fmt.Sprintf("<bad-card:%d>", action)
		}
		return card.String()
	case Guessing:
		return strconv.Itoa(action)
	default:
		card, err := FromIndex(action - s.round.ActionOffset())
		if err != nil {
			return fmt.Sprintf("<bad-card:%d>", action)
		}
		return card.String()
	}
}

// String renders the full action history as "(seat, action)" pairs in
// play order, following original_source's WizardState::ToString.
func (s *State) String() string {
	out := ""
	for i, action := range s.history {
		if out != "" {
			out += ","
		}
		out += fmt.Sprintf("(%d, %d)", s.historyBy[i], action)
	}
	return out
}

func (s *State) IsTerminal() bool { return s.round.IsTerminal() }

// Returns reports the terminal reward vector, or an all-zero vector of
// length NumPlayers before termination (§7).
func (s *State) Returns() []float64 { return s.round.Returns() }

// ChanceOutcomes enumerates the legal chance actions with their deal
// probability, weighted by remaining multiplicity.
func (s *State) ChanceOutcomes() ([]ActionProb, error) {
	if s.round.Phase() != Dealing {
		return nil, fmt.Errorf("%w: ChanceOutcomes called outside Dealing", ErrWrongPhase)
	}
	remaining := s.round.deck.Remaining()
	legal := s.round.LegalActions()
	if remaining == 0 {
		return []ActionProb{{Action: legal[0], Prob: 1}}, nil
	}
	out := make([]ActionProb, len(legal))
	for i, idx := range legal {
		out[i] = ActionProb{Action: idx, Prob: float64(s.round.deck.Count(idx)) / float64(remaining)}
	}
	return out, nil
}

// ApplyAction mutates s according to action, recording the acting seat
// in the auxiliary history vector before delegating to the Round.
func (s *State) ApplyAction(action int) error {
	actor := s.CurrentPlayer()
	if err := s.round.ApplyAction(action); err != nil {
		return err
	}
	s.history = append(s.history, action)
	s.historyBy = append(s.historyBy, actor)
	s.moveNumber++
	return nil
}

// InformationStateString and InformationStateTensor render the
// perfect-recall view of s for player.
func (s *State) InformationStateString(player int) string {
	return s.game.informationStateObserver.StringFrom(s, player)
}

func (s *State) InformationStateTensor(player int) []float32 {
	return s.game.informationStateObserver.Tensor(s, player)
}

// ObservationString and ObservationTensor render the Markov view of s
// for player.
func (s *State) ObservationString(player int) string {
	return s.game.observationObserver.StringFrom(s, player)
}

func (s *State) ObservationTensor(player int) []float32 {
	return s.game.observationObserver.Tensor(s, player)
}

// Clone returns an independent deep copy of s.
func (s *State) Clone() *State {
	clone := &State{
		game:       s.game,
		round:      s.round.Clone(),
		history:    append([]int(nil), s.history...),
		historyBy:  append([]int(nil), s.historyBy...),
		moveNumber: s.moveNumber,
	}
	return clone
}
