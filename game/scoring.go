package game

// Prime values (FFT). Poignée and Chelem are flat; Petit au Bout scales
// with the contract multiplier.
const (
	PoigneeSimple = 20
	PoigneeDouble = 30
	PoigneeTriple = 40

	PetitAuBoutPrime = 10

	ChelemAnnounced       = 400
	ChelemNotAnnounced    = 200
	ChelemAnnouncedFailed = -200
	ChelemDefense         = 200
)

// BaseScore computes the deal's base score on the integer path (4p):
// (diff + 25) × multiplier, positive when the taker reached the minimum for
// their bout count, negative otherwise. A just-made Prise scores +25.
func BaseScore(takerPoints int, numBouts int, contract Contract) int {
	minimum := MinimumPoints(numBouts)
	diff := takerPoints - minimum
	raw := (diff + 25) * contract.Multiplier()
	if diff < 0 {
		return -raw
	}
	return raw
}

// BaseScoreHalf computes the base score on the half-point path (3p/5p).
// The 0.5 remainder rounds toward the winning camp: up when the taker made
// the contract, down when they did not.
func BaseScoreHalf(takerPointsHalf float64, numBouts int, contract Contract) int {
	minimum := MinimumPoints(numBouts)
	mult := contract.Multiplier()
	if takerPointsHalf >= float64(minimum) {
		pts := int(takerPointsHalf + 0.5)
		return (pts - minimum + 25) * mult
	}
	pts := int(takerPointsHalf - 0.5)
	diff := minimum - pts // > 0
	return -(diff + 25) * mult
}

// ApplyPrimes adds the deal's primes to a base score.
//
// petitSet/petitAttack: whether the Petit was in the last trick and which
// camp took that trick. poigneeShown/poigneeAnnouncerWon: whether a poignée
// was announced and whether the announcing side won the deal; the prime is
// added when it did and subtracted when it did not. chelemPoints is one of
// the Chelem constants, already signed, or 0.
func ApplyPrimes(base int, petitSet, petitAttack bool, poigneePoints int, poigneeShown, poigneeAnnouncerWon bool, chelemPoints int, contract Contract) int {
	score := base
	if petitSet {
		prime := PetitAuBoutPrime * contract.Multiplier()
		if petitAttack {
			score += prime
		} else {
			score -= prime
		}
	}
	if poigneePoints > 0 && poigneeShown {
		if poigneeAnnouncerWon {
			score += poigneePoints
		} else {
			score -= poigneePoints
		}
	}
	return score + chelemPoints
}

// SettleScores spreads a deal score over the table. The defense always pays
// (or collects) one share per seat; the attack side balances it: 3× for the
// 4p taker, 2× for the 3p taker, 4× for a lone 5p taker, 2×+1× for a 5p
// taker with a partner. The result always sums to zero.
func SettleScores(v Variant, dealScore, taker, partner int) []int {
	if partner == taker {
		// A taker who calls their own king plays alone.
		partner = NoSeat
	}
	scores := make([]int, v.Players)
	for i := range scores {
		scores[i] = -dealScore
	}
	if partner != NoSeat {
		scores[taker] = 2 * dealScore
		scores[partner] = dealScore
		return scores
	}
	scores[taker] = (v.Players - 1) * dealScore
	return scores
}
