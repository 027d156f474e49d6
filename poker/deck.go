package poker

import (
	"fmt"
	rand "math/rand/v2"
)

// DeckSize is the number of cards in a standard deck
const DeckSize = 52

// Deck represents a standard 52-card deck consumed from the top
type Deck struct {
	cards [DeckSize]Card // Fixed size array
	next  int
	rng   *rand.Rand // Random source for deterministic shuffling
}

// NewDeck creates a new shuffled deck with explicit RNG
func NewDeck(rng *rand.Rand) *Deck {
	if rng == nil {
		panic("poker: rng is required for deck creation")
	}
	d := &Deck{rng: rng}
	d.fillCanonical()
	d.Shuffle()
	return d
}

// NewStackedDeck returns an unshuffled deck with the given cards on top, in
// order, followed by the remaining cards in canonical order. Intended for
// replaying a known deal.
func NewStackedDeck(top ...Card) (*Deck, error) {
	if len(top) > DeckSize {
		return nil, fmt.Errorf("stacked deck: %d cards exceeds deck size", len(top))
	}

	var seen [DeckSize]bool
	d := &Deck{}
	for i, c := range top {
		if !c.Valid() {
			return nil, fmt.Errorf("stacked deck: invalid card at position %d", i)
		}
		if seen[c.index()] {
			return nil, fmt.Errorf("stacked deck: duplicate card %s", c)
		}
		seen[c.index()] = true
		d.cards[i] = c
	}

	i := len(top)
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			c := NewCard(rank, suit)
			if seen[c.index()] {
				continue
			}
			d.cards[i] = c
			i++
		}
	}
	return d, nil
}

func (d *Deck) fillCanonical() {
	i := 0
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards[i] = NewCard(rank, suit)
			i++
		}
	}
	d.next = 0
}

// Shuffle puts every card back and shuffles using Fisher-Yates. A stacked
// deck (no RNG) is only rewound.
func (d *Deck) Shuffle() {
	d.next = 0
	if d.rng == nil {
		return
	}
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal deals n cards from the top of the deck. Dealing past the end of the
// deck is a programming error and panics.
func (d *Deck) Deal(n int) []Card {
	if n < 0 || d.next+n > len(d.cards) {
		panic(fmt.Sprintf("poker: deck exhausted: %d requested, %d remaining", n, d.Remaining()))
	}
	cards := make([]Card, n)
	copy(cards, d.cards[d.next:d.next+n])
	d.next += n
	return cards
}

// DealOne deals a single card from the deck
func (d *Deck) DealOne() Card {
	return d.Deal(1)[0]
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.cards) - d.next
}
