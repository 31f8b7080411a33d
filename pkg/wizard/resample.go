package wizard

import "fmt"

// ResampleFromInfostate draws a State uniformly from the worlds
// consistent with viewpoint's information in s (§4.7): its own hand,
// the public trump, all public bids, and every card publicly played
// and by whom. rng must return independent uniform samples in [0,1);
// unlike original_source's ResampleFromInfostate, which seeds a
// std::default_random_engine off the wall clock on every call, rng is
// a caller-supplied collaborator (§9's "RNG as a collaborator" note)
// so the operation is reproducible under a seeded caller and safe to
// call from concurrent rollout workers without a shared clock.
func (s *State) ResampleFromInfostate(viewpoint int, rng func() float64) (*State, error) {
	n := s.round.NumPlayers()
	if viewpoint < 0 || viewpoint >= n {
		return nil, fmt.Errorf("%w: viewpoint %d out of range [0,%d)", ErrInvariant, viewpoint, n)
	}

	clone, err := s.game.NewInitialState()
	if err != nil {
		return nil, err
	}

	pool := make([]int, NumDistinctCards)
	for idx := 0; idx < NumDistinctCards; idx++ {
		pool[idx] = s.round.deck.Count(idx)
	}
	for p := 0; p < n; p++ {
		if p == viewpoint {
			continue
		}
		for _, c := range s.round.Hand(p) {
			pool[c.ToIndex()]++
		}
	}

	// cardsPlayedBy holds, per seat, the cards it is publicly known to
	// have played so far, in play order. The earliest cards dealt to
	// that seat must be exactly these cards (they had to be in its
	// hand to be played), so the dealing replay below pops them off
	// the back — i.e. in reverse-play order — leaving the seat's
	// unplayed hand to be filled from the pool.
	cardsPlayedBy := make([][]int, n)
	for _, tp := range s.round.HistoryPlayed() {
		cardsPlayedBy[tp.Player] = append(cardsPlayedBy[tp.Player], tp.Card.ToIndex())
	}
	for _, tp := range s.round.Table() {
		cardsPlayedBy[tp.Player] = append(cardsPlayedBy[tp.Player], tp.Card.ToIndex())
	}

	dealtCount := s.round.CardsDealt()
	dealTo := s.round.StartPlayer()
	for i := 0; i < dealtCount; i++ {
		var idx int
		switch {
		case dealTo == viewpoint:
			idx = s.history[i]
		case len(cardsPlayedBy[dealTo]) > 0:
			last := len(cardsPlayedBy[dealTo]) - 1
			idx = cardsPlayedBy[dealTo][last]
			cardsPlayedBy[dealTo] = cardsPlayedBy[dealTo][:last]
		default:
			idx = drawFromPool(pool, rng)
			pool[idx]--
		}
		if err := clone.ApplyAction(idx); err != nil {
			return nil, err
		}
		dealTo = (dealTo + 1) % n
	}

	// The trump card is public once dealt: replay it verbatim.
	if _, ok := s.round.Trump(); ok {
		if err := clone.ApplyAction(s.history[dealtCount]); err != nil {
			return nil, err
		}
	}

	// Guesses and card plays are entirely public; replay verbatim.
	rest := dealtCount
	if _, ok := s.round.Trump(); ok {
		rest++
	}
	for i := rest; i < len(s.history); i++ {
		if err := clone.ApplyAction(s.history[i]); err != nil {
			return nil, err
		}
	}
	return clone, nil
}

// drawFromPool draws a card index weighted by its remaining
// multiplicity in pool using a single rng() sample.
func drawFromPool(pool []int, rng func() float64) int {
	total := 0
	for _, c := range pool {
		total += c
	}
	if total == 0 {
		return 0
	}
	target := rng() * float64(total)
	cum := 0.0
	for idx, c := range pool {
		if c <= 0 {
			continue
		}
		cum += float64(c)
		if target < cum {
			return idx
		}
	}
	for idx := len(pool) - 1; idx >= 0; idx-- {
		if pool[idx] > 0 {
			return idx
		}
	}
	return 0
}
