package game

// Variant bundles the per-player-count constants of the FFT rules. The rest
// of the engine is generic over a Variant: 3, 4, and 5 players share one
// deal distributor, one bidding loop, one trick engine and one scoring path.
type Variant struct {
	Players   int
	HandSize  int
	ChienSize int
	Tricks    int
	// ChienIndices are the absolute deck positions (post-shuffle) earmarked
	// for the chien. They never include 0 or 77: the first and last card of
	// the pack must go to players.
	ChienIndices []int
	// HalfPoints selects the half-point scoring path (3p/5p): camp totals
	// keep their 0.5 remainder and it rounds toward the winning camp.
	HalfPoints bool
	// PetitSecRedeal: only the 4-player rules cancel and redeal on Petit
	// sec. 3p/5p leave this unset (per-variant FFT policy, not a default).
	PetitSecRedeal bool
}

var (
	ThreePlayers = Variant{
		Players:      3,
		HandSize:     24,
		ChienSize:    6,
		Tricks:       24,
		ChienIndices: []int{10, 22, 34, 46, 58, 70},
		HalfPoints:   true,
	}

	FourPlayers = Variant{
		Players:        4,
		HandSize:       18,
		ChienSize:      6,
		Tricks:         18,
		ChienIndices:   []int{11, 23, 35, 47, 59, 71},
		PetitSecRedeal: true,
	}

	FivePlayers = Variant{
		Players:      5,
		HandSize:     15,
		ChienSize:    3,
		Tricks:       15,
		ChienIndices: []int{13, 39, 65},
		HalfPoints:   true,
	}
)

// VariantFor returns the Variant for a player count of 3, 4 or 5.
func VariantFor(players int) (Variant, bool) {
	switch players {
	case 3:
		return ThreePlayers, true
	case 4:
		return FourPlayers, true
	case 5:
		return FivePlayers, true
	}
	return Variant{}, false
}

// NextDealer rotates the dealer seat in play direction.
func (v Variant) NextDealer(dealer int) int {
	return (dealer + 1) % v.Players
}

// FirstToBid is the seat to the dealer's right, who speaks first.
func (v Variant) FirstToBid(dealer int) int {
	return (dealer + 1) % v.Players
}

// FirstToPlay is the seat to the dealer's right, who leads the first trick.
func (v Variant) FirstToPlay(dealer int) int {
	return (dealer + 1) % v.Players
}
