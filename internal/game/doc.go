// Package game implements a single hand of No-Limit Texas Hold'em between
// pluggable participants.
//
// The main type is Engine. It owns all per-hand state, asks each Participant
// for a decision in fixed seat order and interprets whatever comes back.
//
// # Basic Usage
//
//	eng, err := game.NewEngine([]game.Participant{alice, bob, carol}, 1000,
//	    game.WithBlinds(50, 100),
//	    game.WithRNG(randutil.New(42)),
//	)
//	if err != nil {
//	    return err
//	}
//	result, err := eng.Play()
//
// Play is NewGame followed by RunGame. The engine can be reused: each call to
// NewGame starts a new hand with the stacks left by the previous one.
//
// # Decisions
//
// A participant answers every street with its absolute target commitment for
// that street, never an increment. The engine normalizes the value:
//
//   - at or above stack plus commitment: all-in for exactly that amount
//   - below the running maximum, zero or negative: check if nothing is owed,
//     fold otherwise
//   - equal to the running maximum: call
//   - above the running maximum: raise
//
// Malformed decisions are never errors. A participant that panics is logged
// and treated as having returned zero.
//
// # Deterministic Testing
//
// Use WithRNG with a fixed seed, or WithDeckSource with poker.NewStackedDeck
// to control every card dealt:
//
//	deck, _ := poker.NewStackedDeck(poker.MustParseCards("As Ah Kd Kc 2c 7d 9h Js 3c")...)
//	eng, _ := game.NewEngine(players, 1000, game.WithDeckSource(func() *poker.Deck {
//	    deck.Shuffle()
//	    return deck
//	}))
//
// # Settlement
//
// A hand ends when one seat remains or after the river. At showdown the
// Evaluator scores each remaining seat, lower is stronger and ties go to the
// lowest seat index. The whole pot goes to the winner; there are no side pots.
// Every participant then receives EndGame exactly once.
package game
