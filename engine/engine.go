// Package engine orchestrates full deals and matches: deal, bidding, chien
// exchange, announcements, trick play and settlement. Decisions come from
// external callbacks; the engine validates plays against the legal-move
// rules and fails fast on an illegal one.
package engine

import (
	"fmt"

	"tarot/game"
)

// PlayFunc supplies the card a seat plays. The returned card must be in the
// seat's hand and in the current legal set; anything else is a caller bug
// and aborts the deal.
type PlayFunc func(state *game.DealState, seat int) game.Card

// PoigneeFunc lets a seat announce a poignée before the first card. Return
// ok=false to decline. Seats are consulted taker-first; the first
// announcement wins. numTrumps is the count shown, points one of 20/30/40
// (thresholds are the caller's concern, as the shown cards are).
type PoigneeFunc func(state *game.DealState, seat int) (numTrumps, points int, ok bool)

// ChelemFunc lets a seat announce a chelem before play; the announcer leads
// the first trick. Return ok=false for no announcement.
type ChelemFunc func(deal game.Deal, bidding game.BiddingResult) (seat int, ok bool)

// PartnerFunc picks the taker's partner in a 5-player deal, or game.NoSeat
// for the taker to play alone. Ignored for 3/4 players.
type PartnerFunc func(deal game.Deal, bidding game.BiddingResult) int

// Callbacks bundles the external decision suppliers for a deal or match.
// Bid and Play are required; the rest are optional.
type Callbacks struct {
	Bid     game.BidFunc
	Play    PlayFunc
	Partner PartnerFunc
	Poignee PoigneeFunc
	Chelem  ChelemFunc
}

// RunDeal plays out one deal after bidding resolved: chien exchange,
// announcements, all tricks, Excuse resolution, scoring. Returns the
// per-seat settlement, which sums to zero.
func RunDeal(deal game.Deal, bidding game.BiddingResult, partner int, cb Callbacks) ([]int, error) {
	v := deal.Variant
	state := game.NewDealState(deal, bidding, partner)

	if bidding.Contract.TakesChien() {
		takeChienAndDiscard(state)
	}

	if cb.Poignee != nil {
		runPoignee(state, cb.Poignee)
	}

	if cb.Chelem != nil {
		if seat, ok := cb.Chelem(deal, bidding); ok {
			state.ChelemAnnouncer = seat
			state.Leader = seat
		}
	}

	for t := 0; t < v.Tricks; t++ {
		for i := 0; i < v.Players; i++ {
			seat := state.CurrentPlayer()
			legal := state.LegalCards(seat)
			card := cb.Play(state, seat)
			if !contains(legal, card) {
				return nil, fmt.Errorf("seat %d played illegal card %v (legal: %v)", seat, card, legal)
			}
			if err := state.PlayCard(seat, card); err != nil {
				return nil, err
			}
		}
	}

	state.ResolvePendingExcuse()

	return settle(state), nil
}

// takeChienAndDiscard merges the chien into the taker's hand and discards
// back down to hand size. Discards avoid bouts and kings; only a hand of
// nothing but bouts and kings forces discarding from the top.
func takeChienAndDiscard(state *game.DealState) {
	taker := state.Taker
	n := len(state.Chien)
	state.Hands[taker] = append(state.Hands[taker], state.Chien...)
	state.Chien = nil
	hand := state.Hands[taker]

	var discardable []game.Card
	for _, c := range hand {
		if c.IsBout() || (c.IsSuited() && c.Rank == game.RankKing) {
			continue
		}
		discardable = append(discardable, c)
	}
	if len(discardable) >= n {
		for _, c := range discardable[:n] {
			hand = remove(hand, c)
		}
	} else {
		hand = hand[:len(hand)-n]
	}
	state.Hands[taker] = hand
}

// runPoignee consults seats taker-first until one announces.
func runPoignee(state *game.DealState, poignee PoigneeFunc) {
	v := state.Variant
	for i := 0; i < v.Players; i++ {
		seat := (state.Taker + i) % v.Players
		if _, points, ok := poignee(state, seat); ok && points > 0 {
			state.PoigneePoints = points
			state.PoigneeAttackSide = state.IsAttackSide(seat)
			return
		}
	}
}

// settle counts the camps, applies base score and primes, and spreads the
// deal score over the seats.
func settle(state *game.DealState) []int {
	v := state.Variant

	takerFinal := append([]game.Card(nil), state.TakerTricks...)
	defenseFinal := append([]game.Card(nil), state.DefenseTricks...)
	switch {
	case state.Contract == game.GardeSans:
		takerFinal = append(takerFinal, state.Chien...)
	case state.Contract.ChienToDefense():
		defenseFinal = append(defenseFinal, state.Chien...)
	}

	// Chelem is judged on won tricks, not card counts: the Excuse exchange
	// and the chien make pile sizes unreliable.
	if state.TakerTrickCount == v.Tricks {
		if state.ChelemAnnouncer != game.NoSeat {
			state.ChelemPoints = game.ChelemAnnounced
		} else {
			state.ChelemPoints = game.ChelemNotAnnounced
		}
	} else if state.DefenseTrickCount == v.Tricks {
		state.ChelemPoints = -game.ChelemDefense
	} else if state.ChelemAnnouncer != game.NoSeat {
		state.ChelemPoints = game.ChelemAnnouncedFailed
	}

	numBouts := game.CountBouts(takerFinal)
	var base int
	if v.HalfPoints {
		base = game.BaseScoreHalf(game.PointsHalf(takerFinal), numBouts, state.Contract)
	} else {
		base = game.BaseScore(game.PointsRounded(takerFinal), numBouts, state.Contract)
	}

	// The announcing side keeps the poignée prime only if it also wins the
	// deal; otherwise the prime flips against it.
	poigneeShown := state.PoigneePoints > 0
	announcerWon := false
	if poigneeShown {
		announcerWon = (state.PoigneeAttackSide && base > 0) || (!state.PoigneeAttackSide && base < 0)
	}

	final := game.ApplyPrimes(base, state.PetitAuBoutSet, state.PetitAuBout,
		state.PoigneePoints, poigneeShown, announcerWon,
		state.ChelemPoints, state.Contract)

	return game.SettleScores(v, final, state.Taker, state.Partner)
}

func contains(cards []game.Card, c game.Card) bool {
	for _, x := range cards {
		if x == c {
			return true
		}
	}
	return false
}

func remove(cards []game.Card, c game.Card) []game.Card {
	for i, x := range cards {
		if x == c {
			return append(cards[:i], cards[i+1:]...)
		}
	}
	return cards
}
