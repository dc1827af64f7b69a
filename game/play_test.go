package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLegalPlays(t *testing.T) {
	hand := []Card{
		SuitedCard(Spades, 3),
		SuitedCard(Spades, RankKing),
		SuitedCard(Hearts, 7),
		TrumpCard(5),
		TrumpCard(12),
		Excuse,
	}

	t.Run("leading allows anything", func(t *testing.T) {
		plays := LegalPlays(hand, nil)
		require.ElementsMatch(t, hand, plays, "Empty trick should allow the whole hand")
	})

	t.Run("Excuse alone in the trick allows anything", func(t *testing.T) {
		trick := []PlayedCard{{Seat: 0, Card: Excuse}}
		plays := LegalPlays(hand, trick)
		require.ElementsMatch(t, hand, plays, "An Excuse lead sets no constraint")
	})

	t.Run("following suit", func(t *testing.T) {
		trick := []PlayedCard{{Seat: 0, Card: SuitedCard(Spades, 10)}}
		plays := LegalPlays(hand, trick)
		require.ElementsMatch(t, []Card{
			SuitedCard(Spades, 3),
			SuitedCard(Spades, RankKing),
			Excuse,
		}, plays, "Must follow spades, Excuse stays legal")
	})

	t.Run("void in suit must cut", func(t *testing.T) {
		trick := []PlayedCard{{Seat: 0, Card: SuitedCard(Clubs, 9)}}
		plays := LegalPlays(hand, trick)
		require.ElementsMatch(t, []Card{
			TrumpCard(5),
			TrumpCard(12),
			Excuse,
		}, plays, "Void in clubs forces a trump or the Excuse")
	})

	t.Run("cutting must overtrump a trump already in the trick", func(t *testing.T) {
		trick := []PlayedCard{
			{Seat: 0, Card: SuitedCard(Clubs, 9)},
			{Seat: 1, Card: TrumpCard(8)},
		}
		plays := LegalPlays(hand, trick)
		require.ElementsMatch(t, []Card{
			TrumpCard(12),
			Excuse,
		}, plays, "Only the overtrump and the Excuse remain")
	})

	t.Run("trump led must overtrump", func(t *testing.T) {
		trick := []PlayedCard{{Seat: 0, Card: TrumpCard(10)}}
		plays := LegalPlays(hand, trick)
		require.ElementsMatch(t, []Card{
			TrumpCard(12),
			Excuse,
		}, plays, "Trump 12 overtrumps the 10")
	})

	t.Run("undertrump when no overtrump exists", func(t *testing.T) {
		trick := []PlayedCard{{Seat: 0, Card: TrumpCard(20)}}
		plays := LegalPlays(hand, trick)
		require.ElementsMatch(t, []Card{
			TrumpCard(5),
			TrumpCard(12),
			Excuse,
		}, plays, "With no overtrump any trump must be shed")
	})

	t.Run("no suit and no trump discards anything", func(t *testing.T) {
		bare := []Card{SuitedCard(Hearts, 2), SuitedCard(Diamonds, RankQueen)}
		trick := []PlayedCard{{Seat: 0, Card: SuitedCard(Clubs, 9)}}
		plays := LegalPlays(bare, trick)
		require.ElementsMatch(t, bare, plays, "No constraint applies to a void hand")
	})

	t.Run("trump led without any trump discards anything", func(t *testing.T) {
		bare := []Card{SuitedCard(Hearts, 2), SuitedCard(Diamonds, RankQueen)}
		trick := []PlayedCard{{Seat: 0, Card: TrumpCard(3)}}
		plays := LegalPlays(bare, trick)
		require.ElementsMatch(t, bare, plays, "No trump in hand means any discard")
	})
}

func TestTrickWinner(t *testing.T) {
	t.Run("highest of led suit wins", func(t *testing.T) {
		trick := []PlayedCard{
			{Seat: 0, Card: SuitedCard(Hearts, 10)},
			{Seat: 1, Card: SuitedCard(Hearts, RankKing)},
			{Seat: 2, Card: SuitedCard(Hearts, 4)},
			{Seat: 3, Card: SuitedCard(Spades, RankKing)},
		}
		require.Equal(t, 1, TrickWinner(trick), "The heart king should win; off-suit king is a discard")
	})

	t.Run("any trump beats the led suit", func(t *testing.T) {
		trick := []PlayedCard{
			{Seat: 0, Card: SuitedCard(Hearts, RankKing)},
			{Seat: 1, Card: TrumpCard(2)},
			{Seat: 2, Card: SuitedCard(Hearts, RankQueen)},
		}
		require.Equal(t, 1, TrickWinner(trick), "A small trump still takes the trick")
	})

	t.Run("highest trump wins", func(t *testing.T) {
		trick := []PlayedCard{
			{Seat: 0, Card: TrumpCard(5)},
			{Seat: 1, Card: TrumpCard(21)},
			{Seat: 2, Card: TrumpCard(13)},
		}
		require.Equal(t, 1, TrickWinner(trick), "The 21 should win")
	})

	t.Run("Excuse never wins", func(t *testing.T) {
		trick := []PlayedCard{
			{Seat: 0, Card: Excuse},
			{Seat: 1, Card: SuitedCard(Clubs, 2)},
			{Seat: 2, Card: SuitedCard(Clubs, 5)},
		}
		require.Equal(t, 2, TrickWinner(trick), "The lead passes to the first real card's suit")
	})
}
