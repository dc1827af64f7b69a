package game

import "fmt"

// Suit is one of the four plain suits. The order matters: MakeDeck lays
// suited cards out suit-major in this order.
type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	}
	return "?"
}

// Ranks within a suit: 1 = ace (lowest), 11..14 = jack, knight, queen, king.
const (
	RankAce    = 1
	RankJack   = 11
	RankKnight = 12
	RankQueen  = 13
	RankKing   = 14
)

// The Petit (trump 1) and the 21 are bouts together with the Excuse.
const (
	PetitTrump = 1
	MaxTrump   = 21
)

// Kind discriminates the three card families of the 78-card deck.
type Kind int

const (
	KindSuited Kind = iota
	KindTrump
	KindExcuse
)

// Card is an immutable card value. Every one of the 78 cards has a distinct
// value, so value equality is identity.
//
// Suited cards have Kind=KindSuited, Suit and Rank set, Trump=0.
// Trumps have Kind=KindTrump and Trump in 1..21.
// The Excuse has Kind=KindExcuse and all other fields zero.
type Card struct {
	Kind  Kind
	Suit  Suit
	Rank  int
	Trump int
}

// Excuse is the single Excuse card.
var Excuse = Card{Kind: KindExcuse}

// SuitedCard builds a suited card. Rank must be in 1..14.
func SuitedCard(s Suit, rank int) Card {
	if rank < 1 || rank > 14 {
		panic(fmt.Sprintf("invalid rank %d", rank))
	}
	return Card{Kind: KindSuited, Suit: s, Rank: rank}
}

// TrumpCard builds a trump. Number must be in 1..21.
func TrumpCard(number int) Card {
	if number < 1 || number > MaxTrump {
		panic(fmt.Sprintf("invalid trump %d", number))
	}
	return Card{Kind: KindTrump, Trump: number}
}

func (c Card) IsExcuse() bool { return c.Kind == KindExcuse }
func (c Card) IsTrump() bool  { return c.Kind == KindTrump }
func (c Card) IsSuited() bool { return c.Kind == KindSuited }

// IsBout reports whether c is one of the three bouts (Excuse, Petit, 21).
func (c Card) IsBout() bool {
	if c.Kind == KindExcuse {
		return true
	}
	return c.Kind == KindTrump && (c.Trump == PetitTrump || c.Trump == MaxTrump)
}

// IsPetit reports whether c is the Petit (trump 1).
func (c Card) IsPetit() bool {
	return c.Kind == KindTrump && c.Trump == PetitTrump
}

// PointValueHalf returns the card's counting value in half-point units:
// bouts and kings 4.5, queen 3.5, knight 2.5, jack 1.5, everything else 0.5.
// The whole deck sums to 91.
func (c Card) PointValueHalf() float64 {
	switch c.Kind {
	case KindExcuse:
		return 4.5
	case KindTrump:
		if c.Trump == PetitTrump || c.Trump == MaxTrump {
			return 4.5
		}
		return 0.5
	}
	switch c.Rank {
	case RankKing:
		return 4.5
	case RankQueen:
		return 3.5
	case RankKnight:
		return 2.5
	case RankJack:
		return 1.5
	}
	return 0.5
}

func (c Card) String() string {
	switch c.Kind {
	case KindExcuse:
		return "Excuse"
	case KindTrump:
		return fmt.Sprintf("Atout-%d", c.Trump)
	}
	var r string
	switch c.Rank {
	case RankAce:
		r = "A"
	case RankJack:
		r = "V"
	case RankKnight:
		r = "C"
	case RankQueen:
		r = "D"
	case RankKing:
		r = "R"
	default:
		r = fmt.Sprintf("%d", c.Rank)
	}
	return r + c.Suit.String()
}
