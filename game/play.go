package game

// PlayedCard is one entry of a trick in play order.
type PlayedCard struct {
	Seat int
	Card Card
}

// ledKind classifies what the trick effectively led: a plain suit, trump,
// or nothing yet (only the Excuse has been played so far).
type ledKind int

const (
	ledNothing ledKind = iota
	ledSuit
	ledTrump
)

// trickLead scans the trick in order, skipping the Excuse, and returns the
// effective lead plus the led suit (when ledSuit) and the highest trump
// number seen so far (0 if none).
func trickLead(trick []PlayedCard) (ledKind, Suit, int) {
	kind := ledNothing
	var led Suit
	highest := 0
	for _, pc := range trick {
		c := pc.Card
		if c.IsExcuse() {
			continue
		}
		if c.IsTrump() {
			if kind == ledNothing {
				kind = ledTrump
			}
			if c.Trump > highest {
				highest = c.Trump
			}
			continue
		}
		if kind == ledNothing {
			kind = ledSuit
			led = c.Suit
		}
	}
	return kind, led, highest
}

func hasSuit(hand []Card, s Suit) bool {
	for _, c := range hand {
		if c.IsSuited() && c.Suit == s {
			return true
		}
	}
	return false
}

func hasTrump(hand []Card) bool {
	for _, c := range hand {
		if c.IsTrump() {
			return true
		}
	}
	return false
}

// withExcuse appends the Excuse to a constrained result set when the hand
// holds it. The Excuse is exempt from follow-suit and overtrump obligations
// and may be played on any turn.
func withExcuse(plays []Card, hand []Card) []Card {
	for _, c := range hand {
		if c.IsExcuse() {
			return append(plays, c)
		}
	}
	return plays
}

// LegalPlays returns the cards in hand that may legally be played onto the
// current trick:
//
//   - empty trick, or only the Excuse so far: anything;
//   - trump led: overtrump the highest trump if possible, else any trump,
//     else discard anything;
//   - suit led: follow suit if possible; else cut with a trump, overtrumping
//     any trump already in the trick if possible; else discard anything.
//
// The Excuse is always legal and is added to every constrained set.
func LegalPlays(hand []Card, trick []PlayedCard) []Card {
	if len(trick) == 0 {
		return append([]Card(nil), hand...)
	}

	kind, led, highest := trickLead(trick)
	if kind == ledNothing {
		return append([]Card(nil), hand...)
	}

	if kind == ledTrump {
		if !hasTrump(hand) {
			return append([]Card(nil), hand...)
		}
		return withExcuse(trumpPlays(hand, highest), hand)
	}

	// A plain suit was led.
	if hasSuit(hand, led) {
		var plays []Card
		for _, c := range hand {
			if c.IsSuited() && c.Suit == led {
				plays = append(plays, c)
			}
		}
		return withExcuse(plays, hand)
	}
	if hasTrump(hand) {
		return withExcuse(trumpPlays(hand, highest), hand)
	}
	return append([]Card(nil), hand...)
}

// trumpPlays returns the trumps that may be played against the current
// highest trump: all overtrumps if any exist, otherwise every trump
// (undertrumping is then forced). Callers ensure the hand has a trump.
func trumpPlays(hand []Card, highest int) []Card {
	var trumps, over []Card
	for _, c := range hand {
		if !c.IsTrump() {
			continue
		}
		trumps = append(trumps, c)
		if c.Trump > highest {
			over = append(over, c)
		}
	}
	if len(over) > 0 {
		return over
	}
	return trumps
}

// beats reports whether c beats best given the trick's effective lead.
// The Excuse never becomes the current best.
func beats(c, best Card, led Suit, kind ledKind) bool {
	if best.IsExcuse() {
		return true
	}
	if c.IsExcuse() {
		return false
	}
	if c.IsTrump() {
		return !best.IsTrump() || c.Trump > best.Trump
	}
	if best.IsTrump() {
		return false
	}
	if kind == ledTrump {
		return false
	}
	if c.Suit == led && best.Suit == led {
		return c.Rank > best.Rank
	}
	return c.Suit == led
}

// TrickWinner returns the seat that wins a completed trick: highest trump
// if any was played, else highest card of the led suit. The Excuse never
// wins a trick.
func TrickWinner(trick []PlayedCard) int {
	kind, led, _ := trickLead(trick)
	if kind == ledNothing {
		return trick[0].Seat
	}
	best := trick[0]
	for _, pc := range trick[1:] {
		if pc.Card.IsExcuse() {
			continue
		}
		if beats(pc.Card, best.Card, led, kind) {
			best = pc
		}
	}
	return best.Seat
}
