package engine

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"tarot/game"
)

// DealResult describes one attempted deal in a match.
type DealResult struct {
	Scores  []int
	Deal    game.Deal
	Bidding *game.BiddingResult // nil when everyone passed or Petit sec cancelled
	Partner int
}

// PlayOneDeal deals, bids and plays a single deal. When every seat passes,
// or a 4p hand shows Petit sec, the deal is cancelled: Bidding stays nil
// and the scores are all zero.
func PlayOneDeal(v game.Variant, dealer int, rng *rand.Rand, cb Callbacks) (DealResult, error) {
	if cb.Bid == nil || cb.Play == nil {
		return DealResult{}, fmt.Errorf("bid and play callbacks are required")
	}

	deal := game.DealCards(v, dealer, rng)
	result := DealResult{Scores: make([]int, v.Players), Deal: deal, Partner: game.NoSeat}

	if v.PetitSecRedeal {
		for seat, hand := range deal.Hands {
			if game.PetitSec(hand) {
				log.Debug().Int("seat", seat).Msg("petit sec, deal cancelled")
				return result, nil
			}
		}
	}

	bidding, err := game.RunBidding(v, dealer, cb.Bid)
	if err != nil {
		return DealResult{}, err
	}
	if bidding == nil {
		return result, nil
	}

	partner := game.NoSeat
	if v.Players == 5 && cb.Partner != nil {
		partner = cb.Partner(deal, *bidding)
	}

	scores, err := RunDeal(deal, *bidding, partner, cb)
	if err != nil {
		return DealResult{}, err
	}
	result.Scores = scores
	result.Bidding = bidding
	result.Partner = partner
	return result, nil
}

// RunMatch plays numDeals counted deals, rotating the dealer each attempt.
// Cancelled deals (all-pass, Petit sec) are redealt and do not count.
// Returns per-seat totals and the per-deal score rows; each row and the
// totals sum to zero.
func RunMatch(v game.Variant, numDeals int, rng *rand.Rand, cb Callbacks) ([]int, [][]int, error) {
	totals := make([]int, v.Players)
	perDeal := make([][]int, 0, numDeals)

	dealer := 0
	for played := 0; played < numDeals; {
		result, err := PlayOneDeal(v, dealer, rng, cb)
		if err != nil {
			return nil, nil, err
		}
		dealer = v.NextDealer(dealer)
		if result.Bidding == nil {
			continue
		}
		perDeal = append(perDeal, result.Scores)
		for i, s := range result.Scores {
			totals[i] += s
		}
		played++

		log.Debug().
			Int("deal", played).
			Str("contract", result.Bidding.Contract.String()).
			Int("taker", result.Bidding.Taker).
			Ints("scores", result.Scores).
			Msg("deal settled")
	}
	return totals, perDeal, nil
}
