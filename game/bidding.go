package game

import "fmt"

// Contract is a bid level. Levels are totally ordered; a higher value
// outbids a lower one.
type Contract int

const (
	Prise Contract = iota + 1
	Garde
	GardeSans
	GardeContre
)

func (c Contract) String() string {
	switch c {
	case Prise:
		return "Prise"
	case Garde:
		return "Garde"
	case GardeSans:
		return "Garde sans le Chien"
	case GardeContre:
		return "Garde contre le Chien"
	}
	return fmt.Sprintf("Contract(%d)", int(c))
}

// Valid reports whether c is one of the four bid levels.
func (c Contract) Valid() bool {
	return c >= Prise && c <= GardeContre
}

// Multiplier is the score coefficient of the contract: 1, 2, 4 or 6.
func (c Contract) Multiplier() int {
	switch c {
	case Prise:
		return 1
	case Garde:
		return 2
	case GardeSans:
		return 4
	case GardeContre:
		return 6
	}
	return 0
}

// TakesChien reports whether the taker receives the chien into hand
// (Prise and Garde only).
func (c Contract) TakesChien() bool {
	return c == Prise || c == Garde
}

// ChienToDefense reports whether the chien counts with the defense at
// settlement (Garde contre only).
func (c Contract) ChienToDefense() bool {
	return c == GardeContre
}

// Bid is one entry of the bidding log. Pass is true when the seat passed;
// Contract is meaningful only when Pass is false.
type Bid struct {
	Seat     int
	Contract Contract
	Pass     bool
}

// BidFunc supplies one seat's bid given the log so far. Return ok=false to
// pass. The callback need not enforce monotonic bidding; the engine keeps
// the running maximum itself.
type BidFunc func(seat int, history []Bid) (Contract, bool)

// BiddingResult is the outcome of a completed bidding round.
type BiddingResult struct {
	Taker    int
	Contract Contract
	Bids     []Bid
}

// RunBidding visits each seat exactly once, starting right of the dealer.
// The taker is the first seat to establish each new strict maximum; a later
// seat takes over only with a strictly greater bid. Returns nil if every
// seat passed. A bid outside the four contract levels is a caller bug.
func RunBidding(v Variant, dealer int, getBid BidFunc) (*BiddingResult, error) {
	first := v.FirstToBid(dealer)
	history := make([]Bid, 0, v.Players)

	var taker int
	var high Contract
	found := false

	for i := 0; i < v.Players; i++ {
		seat := (first + i) % v.Players
		c, ok := getBid(seat, append([]Bid(nil), history...))
		if !ok {
			history = append(history, Bid{Seat: seat, Pass: true})
			continue
		}
		if !c.Valid() {
			return nil, fmt.Errorf("seat %d bid invalid contract %d", seat, int(c))
		}
		history = append(history, Bid{Seat: seat, Contract: c})
		if !found || c > high {
			high = c
			taker = seat
			found = true
		}
	}

	if !found {
		return nil, nil
	}
	return &BiddingResult{Taker: taker, Contract: high, Bids: history}, nil
}
