package agent

import "tarot/game"

// Action space: 5 bid actions (pass + four contracts) followed by one
// action per card of the deck.
const (
	NumCards      = game.DeckSize
	NumBidActions = 5
	NumActions    = NumBidActions + NumCards // 83

	// BiddingObsSize = 78 hand bits + 5×5 best-bid one-hots + 5 spoken
	// flags + 5 seat one-hot + 3 player-count one-hot.
	BiddingObsSize = 116
)

// CardIndex returns the stable index 0..77 of a card, matching the
// MakeDeck ordering: suited cards suit-major (0..55), trumps 1..21
// (56..76), Excuse last (77).
func CardIndex(c game.Card) int {
	switch c.Kind {
	case game.KindSuited:
		return int(c.Suit)*14 + (c.Rank - 1)
	case game.KindTrump:
		return 56 + (c.Trump - 1)
	}
	return 77
}

// EncodeCardSet returns a 78-dim binary vector with a 1 for each card
// present.
func EncodeCardSet(cards []game.Card) []float64 {
	vec := make([]float64, NumCards)
	for _, c := range cards {
		vec[CardIndex(c)] = 1
	}
	return vec
}

func oneHot(index, size int) []float64 {
	vec := make([]float64, size)
	if index >= 0 && index < size {
		vec[index] = 1
	}
	return vec
}

// EncodeBiddingObservation builds the bidding-phase observation for a seat:
// the hand, each seat's best bid so far (0 = no bid yet), who has spoken,
// the observing seat, and the table size.
func EncodeBiddingObservation(hand []game.Card, history []game.Bid, seat, players int) []float64 {
	obs := make([]float64, 0, BiddingObsSize)
	obs = append(obs, EncodeCardSet(hand)...)

	bestBid := make([]int, 5)
	spoken := make([]float64, 5)
	for _, b := range history {
		if b.Seat < 0 || b.Seat >= 5 {
			continue
		}
		spoken[b.Seat] = 1
		if !b.Pass && int(b.Contract) > bestBid[b.Seat] {
			bestBid[b.Seat] = int(b.Contract)
		}
	}
	for p := 0; p < 5; p++ {
		obs = append(obs, oneHot(bestBid[p], 5)...)
	}
	obs = append(obs, spoken...)
	obs = append(obs, oneHot(seat, 5)...)
	obs = append(obs, oneHot(players-3, 3)...)
	return obs
}

// EncodePlayObservation builds the play-phase observation for a seat: the
// hand, the cards on the table this trick, both camps' won cards, the chien
// still set aside (empty once the taker absorbed it), taker and partner
// seat one-hots, the contract, the observing seat and the table size. The
// layout is fixed-size across variants.
func EncodePlayObservation(state *game.DealState, seat int) []float64 {
	var obs []float64
	obs = append(obs, EncodeCardSet(state.Hands[seat])...)

	trick := make([]game.Card, 0, len(state.CurrentTrick))
	for _, pc := range state.CurrentTrick {
		trick = append(trick, pc.Card)
	}
	obs = append(obs, EncodeCardSet(trick)...)
	obs = append(obs, EncodeCardSet(state.TakerTricks)...)
	obs = append(obs, EncodeCardSet(state.DefenseTricks)...)
	obs = append(obs, EncodeCardSet(state.Chien)...)

	obs = append(obs, oneHot(state.Taker, 5)...)
	partner := state.Partner
	obs = append(obs, oneHot(partner, 5)...) // all-zero when NoSeat
	obs = append(obs, oneHot(int(state.Contract)-1, 4)...)
	obs = append(obs, oneHot(seat, 5)...)
	obs = append(obs, oneHot(state.Variant.Players-3, 3)...)
	return obs
}

// BiddingActionMask marks pass and the four contracts as legal. The engine
// accepts any of the four levels from any seat (it tracks the running
// maximum itself), so the whole bid range stays open.
func BiddingActionMask() []bool {
	mask := make([]bool, NumActions)
	for i := 0; i < NumBidActions; i++ {
		mask[i] = true
	}
	return mask
}

// PlayActionMask marks the card actions for the legal plays of a hand.
func PlayActionMask(legal []game.Card) []bool {
	mask := make([]bool, NumActions)
	for _, c := range legal {
		mask[NumBidActions+CardIndex(c)] = true
	}
	return mask
}

// ActionToCard resolves a card action back to the card instance in hand, or
// ok=false when the action is a bid action or the card is not held.
func ActionToCard(action int, hand []game.Card) (game.Card, bool) {
	if action < NumBidActions || action >= NumActions {
		return game.Card{}, false
	}
	idx := action - NumBidActions
	for _, c := range hand {
		if CardIndex(c) == idx {
			return c, true
		}
	}
	return game.Card{}, false
}
