package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"tarot/agent"
	"tarot/game"
)

func randomCallbacks(rng *rand.Rand) Callbacks {
	return Callbacks{
		Bid:  agent.RandomBid(rng),
		Play: agent.RandomPlay(rng),
	}
}

func TestRunDeal(t *testing.T) {
	t.Run("settlement sums to zero across variants", func(t *testing.T) {
		for _, players := range []int{3, 4, 5} {
			v, _ := game.VariantFor(players)
			rng := rand.New(rand.NewSource(11))
			cb := randomCallbacks(rng)

			for attempt := 0; attempt < 20; attempt++ {
				result, err := PlayOneDeal(v, attempt%v.Players, rng, cb)

				require.NoError(t, err)
				require.Equal(t, v.Players, len(result.Scores))
				require.Equal(t, 0, sum(result.Scores), "Deal scores must sum to zero for %d players", players)
			}
		}
	})

	t.Run("illegal play aborts the deal", func(t *testing.T) {
		v := game.FourPlayers
		rng := rand.New(rand.NewSource(3))
		deal := game.DealCards(v, 0, rng)
		bidding := game.BiddingResult{Taker: 1, Contract: game.GardeSans}

		cb := Callbacks{
			Bid: agent.RandomBid(rng),
			// A card from another seat's hand is never legal for this seat.
			Play: func(state *game.DealState, seat int) game.Card {
				other := (seat + 1) % v.Players
				return state.Hands[other][0]
			},
		}

		_, err := RunDeal(deal, bidding, game.NoSeat, cb)
		require.Error(t, err, "An out-of-hand card should abort")
	})

	t.Run("chien discard keeps hand sizes playable", func(t *testing.T) {
		v := game.FourPlayers
		rng := rand.New(rand.NewSource(9))
		deal := game.DealCards(v, 0, rng)
		bidding := game.BiddingResult{Taker: 2, Contract: game.Prise}

		scores, err := RunDeal(deal, bidding, game.NoSeat, randomCallbacks(rng))

		require.NoError(t, err, "Every seat must hold exactly 18 cards after the exchange")
		require.Equal(t, 0, sum(scores))
	})
}

// scriptedDeal is a hand-crafted 3-seat deal small enough to walk by hand:
// two tricks, seat 1 takes on a Garde and wins every trick.
func scriptedDeal() (game.Deal, game.BiddingResult) {
	v := game.Variant{Players: 3, HandSize: 2, Tricks: 2, HalfPoints: true}
	deal := game.Deal{
		Variant: v,
		Hands: [][]game.Card{
			{game.TrumpCard(5), game.SuitedCard(game.Spades, 2)},
			{game.TrumpCard(21), game.TrumpCard(15)},
			{game.TrumpCard(9), game.SuitedCard(game.Spades, 3)},
		},
		Dealer: 2,
	}
	return deal, game.BiddingResult{Taker: 1, Contract: game.Garde}
}

// scriptedPlay plays each seat's cards in hand order.
func scriptedPlay() PlayFunc {
	return func(state *game.DealState, seat int) game.Card {
		return state.Hands[seat][0]
	}
}

func TestAnnouncements(t *testing.T) {
	// Taker pile holds all 6 cards: 7.0 half-points, 1 bout, minimum 51.
	// Base: -(51-6+25)×2 = -140. Chelem announced and achieved: +400.
	deal, bidding := scriptedDeal()

	t.Run("chelem announcer leads the first trick", func(t *testing.T) {
		firstSeat := -1
		play := scriptedPlay()
		cb := Callbacks{
			Bid: func(seat int, history []game.Bid) (game.Contract, bool) { return 0, false },
			Play: func(state *game.DealState, seat int) game.Card {
				if firstSeat < 0 {
					firstSeat = seat
				}
				return play(state, seat)
			},
			Chelem: func(d game.Deal, b game.BiddingResult) (int, bool) { return 1, true },
		}

		scores, err := RunDeal(deal, bidding, game.NoSeat, cb)

		require.NoError(t, err)
		require.Equal(t, 1, firstSeat, "The announcer leads, not the seat right of the dealer")
		require.Equal(t, []int{-260, 520, -260}, scores, "Base -140 plus announced chelem 400")
	})

	t.Run("poignée consultation stops at the first announcement", func(t *testing.T) {
		var consulted []int
		cb := Callbacks{
			Bid:  func(seat int, history []game.Bid) (game.Contract, bool) { return 0, false },
			Play: scriptedPlay(),
			Poignee: func(state *game.DealState, seat int) (int, int, bool) {
				consulted = append(consulted, seat)
				if seat == 2 {
					return 10, game.PoigneeDouble, true
				}
				return 0, 0, false
			},
			Chelem: func(d game.Deal, b game.BiddingResult) (int, bool) { return 1, true },
		}

		scores, err := RunDeal(deal, bidding, game.NoSeat, cb)

		require.NoError(t, err)
		require.Equal(t, []int{1, 2}, consulted, "Taker first, then stop once seat 2 announces")
		// Seat 2's camp wins the deal (base is negative), so the 30-point
		// prime lands on its announcer's side of the ledger: -140+30+400.
		require.Equal(t, []int{-290, 580, -290}, scores)
	})
}

func TestPlayOneDeal(t *testing.T) {
	t.Run("all-pass cancels the deal", func(t *testing.T) {
		rng := rand.New(rand.NewSource(5))
		cb := Callbacks{
			Bid:  func(seat int, history []game.Bid) (game.Contract, bool) { return 0, false },
			Play: agent.RandomPlay(rng),
		}

		result, err := PlayOneDeal(game.FourPlayers, 0, rng, cb)

		require.NoError(t, err)
		require.Nil(t, result.Bidding, "A cancelled deal carries no bidding result")
		require.Equal(t, []int{0, 0, 0, 0}, result.Scores, "A cancelled deal scores zero")
	})

	t.Run("missing callbacks error", func(t *testing.T) {
		rng := rand.New(rand.NewSource(5))
		_, err := PlayOneDeal(game.FourPlayers, 0, rng, Callbacks{})
		require.Error(t, err)
	})

	t.Run("5p partner seat is recorded", func(t *testing.T) {
		rng := rand.New(rand.NewSource(8))
		cb := randomCallbacks(rng)
		cb.Partner = func(deal game.Deal, bidding game.BiddingResult) int {
			return (bidding.Taker + 2) % 5
		}

		var result DealResult
		var err error
		for {
			result, err = PlayOneDeal(game.FivePlayers, 0, rng, cb)
			require.NoError(t, err)
			if result.Bidding != nil {
				break
			}
		}

		require.Equal(t, (result.Bidding.Taker+2)%5, result.Partner)
		require.Equal(t, 0, sum(result.Scores))
	})
}

func TestRunMatch(t *testing.T) {
	t.Run("fixed-seed 4p match is zero-sum", func(t *testing.T) {
		rng := rand.New(rand.NewSource(1))
		totals, perDeal, err := RunMatch(game.FourPlayers, 5, rng, randomCallbacks(rng))

		require.NoError(t, err)
		require.Equal(t, 5, len(perDeal), "Exactly 5 counted deals")
		for i, scores := range perDeal {
			require.Equal(t, 0, sum(scores), "Deal %d must sum to zero", i)
		}
		require.Equal(t, 0, sum(totals), "Match totals must sum to zero")
	})

	t.Run("matches replay under the same seed", func(t *testing.T) {
		run := func() []int {
			rng := rand.New(rand.NewSource(77))
			totals, _, err := RunMatch(game.ThreePlayers, 3, rng, randomCallbacks(rng))
			require.NoError(t, err)
			return totals
		}

		require.Equal(t, run(), run(), "Same seed should reproduce the match")
	})
}

func sum(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}
