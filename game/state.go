package game

import "fmt"

// NoSeat marks an unset seat field (5p partner, chelem announcer).
const NoSeat = -1

// DealState is the mutable state of one deal in play. It is owned by the
// orchestrator and mutated only through PlayCard; trick piles and the
// pending-Excuse slot are never touched from outside.
type DealState struct {
	Variant  Variant
	Hands    [][]Card
	Chien    []Card
	Dealer   int
	Taker    int
	Partner  int // NoSeat for 3p/4p and for a 5p taker playing alone
	Contract Contract

	TakerTricks   []Card
	DefenseTricks []Card
	CurrentTrick  []PlayedCard
	Leader        int

	TrickCount        int
	TakerTrickCount   int
	DefenseTrickCount int

	// PetitAuBout: set after the last trick if the Petit appeared in it.
	// True means the attack camp won that trick.
	PetitAuBout    bool
	PetitAuBoutSet bool

	// pendingExcuse defers the Excuse exchange until the owner's camp has
	// won at least one trick.
	pendingExcuse     bool
	pendingExcuseSide bool // true = attack camp

	PoigneePoints     int
	PoigneeAttackSide bool

	ChelemAnnouncer int // NoSeat if not announced
	ChelemPoints    int
}

// NewDealState builds the play state after bidding resolved.
func NewDealState(deal Deal, bidding BiddingResult, partner int) *DealState {
	hands := make([][]Card, len(deal.Hands))
	for i, h := range deal.Hands {
		hands[i] = append([]Card(nil), h...)
	}
	return &DealState{
		Variant:         deal.Variant,
		Hands:           hands,
		Chien:           append([]Card(nil), deal.Chien...),
		Dealer:          deal.Dealer,
		Taker:           bidding.Taker,
		Partner:         partner,
		Contract:        bidding.Contract,
		Leader:          deal.Variant.FirstToPlay(deal.Dealer),
		ChelemAnnouncer: NoSeat,
	}
}

// CurrentPlayer is the seat whose turn it is within the current trick.
func (s *DealState) CurrentPlayer() int {
	return (s.Leader + len(s.CurrentTrick)) % s.Variant.Players
}

// IsAttackSide reports whether a seat belongs to the taker's camp (the
// taker, plus the partner in a 5p deal with one).
func (s *DealState) IsAttackSide(seat int) bool {
	return seat == s.Taker || (s.Partner != NoSeat && seat == s.Partner)
}

// LegalCards returns the legal plays for a seat given the current trick.
func (s *DealState) LegalCards(seat int) []Card {
	return LegalPlays(s.Hands[seat], s.CurrentTrick)
}

// PlayCard removes the card from the seat's hand and adds it to the current
// trick. When the trick completes it resolves the winner, attributes cards
// to camps, handles the Excuse exchange and Petit au Bout, and sets the
// winner as next leader. This is the single mutation entry point for a deal
// in play; it does not re-check legality (the orchestrator validates plays
// against LegalCards before calling).
func (s *DealState) PlayCard(seat int, card Card) error {
	hand := s.Hands[seat]
	found := -1
	for i, c := range hand {
		if c == card {
			found = i
			break
		}
	}
	if found < 0 {
		return fmt.Errorf("card %v not in seat %d hand", card, seat)
	}
	s.Hands[seat] = append(hand[:found], hand[found+1:]...)
	s.CurrentTrick = append(s.CurrentTrick, PlayedCard{Seat: seat, Card: card})

	if len(s.CurrentTrick) < s.Variant.Players {
		return nil
	}

	winner := TrickWinner(s.CurrentTrick)
	trick := s.CurrentTrick
	winnerAttack := s.IsAttackSide(winner)

	s.TrickCount++
	if winnerAttack {
		s.TakerTrickCount++
	} else {
		s.DefenseTrickCount++
	}

	excuseSeat := NoSeat
	for _, pc := range trick {
		if pc.Card.IsExcuse() {
			excuseSeat = pc.Seat
			break
		}
	}

	// Non-Excuse cards go to the winning camp.
	for _, pc := range trick {
		if pc.Card.IsExcuse() {
			continue
		}
		if winnerAttack {
			s.TakerTricks = append(s.TakerTricks, pc.Card)
		} else {
			s.DefenseTricks = append(s.DefenseTricks, pc.Card)
		}
	}

	// The Excuse stays with its owner's camp. If that camp already has
	// cards, exchange it now against the lowest card of the pile; otherwise
	// defer until the camp wins a trick.
	if excuseSeat != NoSeat {
		side := s.IsAttackSide(excuseSeat)
		if len(*s.campPile(side)) > 0 {
			s.exchangeExcuse(side)
		} else {
			s.pendingExcuse = true
			s.pendingExcuseSide = side
		}
	} else if s.pendingExcuse && winnerAttack == s.pendingExcuseSide {
		s.exchangeExcuse(s.pendingExcuseSide)
		s.pendingExcuse = false
	}

	// Petit au Bout: the Petit in the final trick credits whichever camp
	// takes that trick.
	if s.TrickCount == s.Variant.Tricks {
		for _, pc := range trick {
			if pc.Card.IsPetit() {
				s.PetitAuBout = winnerAttack
				s.PetitAuBoutSet = true
				break
			}
		}
	}

	s.CurrentTrick = nil
	s.Leader = winner
	return nil
}

func (s *DealState) campPile(attack bool) *[]Card {
	if attack {
		return &s.TakerTricks
	}
	return &s.DefenseTricks
}

// exchangeExcuse inserts the Excuse into its owner camp's pile and moves the
// lowest-value non-Excuse card of that pile to the opposing camp.
func (s *DealState) exchangeExcuse(attackSide bool) {
	from := s.campPile(attackSide)
	to := s.campPile(!attackSide)

	*from = append(*from, Excuse)
	lowIdx := -1
	for i, c := range *from {
		if c.IsExcuse() {
			continue
		}
		if lowIdx < 0 || lessForExchange(c, (*from)[lowIdx]) {
			lowIdx = i
		}
	}
	if lowIdx < 0 {
		return
	}
	low := (*from)[lowIdx]
	*from = append((*from)[:lowIdx], (*from)[lowIdx+1:]...)
	*to = append(*to, low)
}

// lessForExchange orders candidates for the Excuse swap: lowest point value
// first, card name as a deterministic tie-break.
func lessForExchange(a, b Card) bool {
	av, bv := a.PointValueHalf(), b.PointValueHalf()
	if av != bv {
		return av < bv
	}
	return a.String() < b.String()
}

// ResolvePendingExcuse settles an exchange still pending after the last
// trick: the Excuse is granted outright to its owner's camp, no swap.
func (s *DealState) ResolvePendingExcuse() {
	if !s.pendingExcuse {
		return
	}
	pile := s.campPile(s.pendingExcuseSide)
	*pile = append(*pile, Excuse)
	s.pendingExcuse = false
}

// ExcusePending reports whether an Excuse exchange is still deferred.
func (s *DealState) ExcusePending() bool { return s.pendingExcuse }
