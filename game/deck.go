package game

import "math"

// DeckSize is the number of cards in a tarot deck.
const DeckSize = 78

// TotalPointsHalf is the sum of PointValueHalf over the full deck.
const TotalPointsHalf = 91.0

// MakeDeck builds the full 78-card deck in its canonical order: the four
// suits (each ace..king), trumps 1..21, then the Excuse. Chien index
// selection during the deal depends on positions in this ordering, so it
// must stay deterministic.
func MakeDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for s := Spades; s <= Clubs; s++ {
		for rank := 1; rank <= 14; rank++ {
			deck = append(deck, SuitedCard(s, rank))
		}
	}
	for n := 1; n <= MaxTrump; n++ {
		deck = append(deck, TrumpCard(n))
	}
	deck = append(deck, Excuse)
	return deck
}

// PointsHalf sums the half-point values of cards.
func PointsHalf(cards []Card) float64 {
	var total float64
	for _, c := range cards {
		total += c.PointValueHalf()
	}
	return total
}

// PointsRounded sums card points and rounds half to even. Used for 4p
// counting: the FFT counts cards in pairs so camp totals are whole, but an
// odd pile (the Excuse exchange can leave one) lands on x.5 and must not be
// biased toward either camp.
func PointsRounded(cards []Card) int {
	return int(math.RoundToEven(PointsHalf(cards)))
}

// CountBouts returns the number of bouts among cards.
func CountBouts(cards []Card) int {
	n := 0
	for _, c := range cards {
		if c.IsBout() {
			n++
		}
	}
	return n
}

// MinimumPoints is the score the taker's camp must reach, keyed by the
// number of bouts it holds: 0→56, 1→51, 2→41, 3→36.
func MinimumPoints(numBouts int) int {
	switch numBouts {
	case 0:
		return 56
	case 1:
		return 51
	case 2:
		return 41
	default:
		return 36
	}
}
