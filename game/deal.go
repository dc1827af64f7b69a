package game

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// Deal is the result of one distribution: one hand per seat plus the chien.
// Immutable after construction; play happens on a DealState copy.
type Deal struct {
	Variant Variant
	Hands   [][]Card
	Chien   []Card
	Dealer  int
}

// DealCards shuffles a full deck and distributes it for the given variant.
// Cards are handed out by absolute deck position: positions in the variant's
// chien index set go to the chien, every other position goes to seats in
// rotation starting from the dealer's right.
//
// The rng is mandatory; deals are replayable given the same seed.
func DealCards(v Variant, dealer int, rng *rand.Rand) Deal {
	if rng == nil {
		panic("DealCards requires an explicit rng")
	}
	if dealer < 0 || dealer >= v.Players {
		panic(fmt.Sprintf("dealer seat %d out of range for %d players", dealer, v.Players))
	}

	deck := MakeDeck()
	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})

	chienSet := make(map[int]bool, len(v.ChienIndices))
	for _, i := range v.ChienIndices {
		chienSet[i] = true
	}

	hands := make([][]Card, v.Players)
	for i := range hands {
		hands[i] = make([]Card, 0, v.HandSize)
	}
	chien := make([]Card, 0, v.ChienSize)

	first := v.FirstToBid(dealer)
	dealt := 0
	for i, card := range deck {
		if chienSet[i] {
			chien = append(chien, card)
			continue
		}
		seat := (first + dealt%v.Players) % v.Players
		hands[seat] = append(hands[seat], card)
		dealt++
	}

	d := Deal{Variant: v, Hands: hands, Chien: chien, Dealer: dealer}
	if err := d.validate(); err != nil {
		panic(err)
	}
	return d
}

// validate checks card conservation: every hand has the variant's hand size,
// the chien has the chien size, and the 78 cards are pairwise distinct.
func (d Deal) validate() error {
	seen := make(map[Card]bool, DeckSize)
	total := 0
	add := func(c Card) error {
		if seen[c] {
			return fmt.Errorf("duplicate card %v in deal", c)
		}
		seen[c] = true
		total++
		return nil
	}
	for seat, hand := range d.Hands {
		if len(hand) != d.Variant.HandSize {
			return fmt.Errorf("seat %d has %d cards, want %d", seat, len(hand), d.Variant.HandSize)
		}
		for _, c := range hand {
			if err := add(c); err != nil {
				return err
			}
		}
	}
	if len(d.Chien) != d.Variant.ChienSize {
		return fmt.Errorf("chien has %d cards, want %d", len(d.Chien), d.Variant.ChienSize)
	}
	for _, c := range d.Chien {
		if err := add(c); err != nil {
			return err
		}
	}
	if total != DeckSize {
		return fmt.Errorf("deal holds %d cards, want %d", total, DeckSize)
	}
	return nil
}

// PetitSec reports whether a hand holds exactly one trump, that trump is the
// Petit, and no Excuse. Such a hand cancels the deal in variants with
// PetitSecRedeal set.
func PetitSec(hand []Card) bool {
	trumps := 0
	petit := false
	for _, c := range hand {
		if c.IsExcuse() {
			return false
		}
		if c.IsTrump() {
			trumps++
			if c.IsPetit() {
				petit = true
			}
		}
	}
	return trumps == 1 && petit
}
