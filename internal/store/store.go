// Package store keeps settled hands in SQLite.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite3 driver

	"github.com/lox/holdemsim/internal/game"
	"github.com/lox/holdemsim/poker"
)

// ErrHandNotFound is returned by Hand for an unknown id
var ErrHandNotFound = errors.New("hand not found")

// Store is a SQLite hand store. It implements game.Recorder and is safe for
// concurrent use.
type Store struct {
	db *sql.DB
}

// Seat is one player's part in a stored hand
type Seat struct {
	Seat          int
	Name          string
	StartingStack int
	FinalStack    int
	Hole          string
	Won           bool
}

// Hand is a stored hand
type Hand struct {
	ID         string
	StartedAt  time.Time
	SmallBlind int
	BigBlind   int
	Pot        int
	Winner     int
	Showdown   bool
	Board      string
	History    game.BetHistory
	Seats      []Seat
}

// NetResult aggregates a player's hands
type NetResult struct {
	Name  string
	Hands int
	Wins  int
	Net   int
}

// Open opens or creates the database at path
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// One writer at a time, and one shared database for ":memory:"
	db.SetMaxOpenConns(1)

	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return &Store{db: db}, nil
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS hands (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			small_blind INTEGER NOT NULL,
			big_blind INTEGER NOT NULL,
			pot INTEGER NOT NULL,
			winner_seat INTEGER NOT NULL,
			showdown INTEGER NOT NULL,
			board TEXT NOT NULL,
			history TEXT NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS hand_seats (
			hand_id TEXT NOT NULL,
			seat INTEGER NOT NULL,
			name TEXT NOT NULL,
			starting_stack INTEGER NOT NULL,
			final_stack INTEGER NOT NULL,
			hole TEXT NOT NULL,
			won INTEGER NOT NULL,
			PRIMARY KEY (hand_id, seat),
			FOREIGN KEY (hand_id) REFERENCES hands(id)
		)
	`)
	return err
}

// RecordHand stores a settled hand and its seats in one transaction
func (s *Store) RecordHand(r *game.HandResult) error {
	history, err := json.Marshal(r.History)
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO hands (id, started_at, small_blind, big_blind, pot, winner_seat, showdown, board, history)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, r.HandID, r.StartedAt.UTC().Format(time.RFC3339Nano), r.SmallBlind, r.BigBlind, r.Pot,
		r.Winner, r.Showdown, poker.FormatCards(r.Board), string(history))
	if err != nil {
		return fmt.Errorf("failed to insert hand %s: %w", r.HandID, err)
	}

	for seat, name := range r.Names {
		hole := ""
		if h, ok := r.Hole[seat]; ok {
			hole = poker.FormatCards(h[:])
		}
		_, err = tx.Exec(`
			INSERT INTO hand_seats (hand_id, seat, name, starting_stack, final_stack, hole, won)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, r.HandID, seat, name, r.StartingStacks[seat], r.FinalStacks[seat], hole, seat == r.Winner)
		if err != nil {
			return fmt.Errorf("failed to insert seat %d of hand %s: %w", seat, r.HandID, err)
		}
	}

	return tx.Commit()
}

// Hands returns how many hands are stored
func (s *Store) Hands() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM hands").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count hands: %w", err)
	}
	return n, nil
}

// Hand loads a stored hand by id
func (s *Store) Hand(id string) (*Hand, error) {
	h := &Hand{ID: id}
	var startedAt, history string
	err := s.db.QueryRow(`
		SELECT started_at, small_blind, big_blind, pot, winner_seat, showdown, board, history
		FROM hands WHERE id = ?
	`, id).Scan(&startedAt, &h.SmallBlind, &h.BigBlind, &h.Pot, &h.Winner, &h.Showdown, &h.Board, &history)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrHandNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load hand %s: %w", id, err)
	}

	if h.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
		return nil, fmt.Errorf("hand %s: bad timestamp: %w", id, err)
	}
	if err := json.Unmarshal([]byte(history), &h.History); err != nil {
		return nil, fmt.Errorf("hand %s: bad history: %w", id, err)
	}

	rows, err := s.db.Query(`
		SELECT seat, name, starting_stack, final_stack, hole, won
		FROM hand_seats WHERE hand_id = ? ORDER BY seat
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load seats of hand %s: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var seat Seat
		if err := rows.Scan(&seat.Seat, &seat.Name, &seat.StartingStack, &seat.FinalStack, &seat.Hole, &seat.Won); err != nil {
			return nil, err
		}
		h.Seats = append(h.Seats, seat)
	}
	return h, rows.Err()
}

// NetResults sums every player's hands, best first
func (s *Store) NetResults() ([]NetResult, error) {
	rows, err := s.db.Query(`
		SELECT name, COUNT(*), SUM(won), SUM(final_stack - starting_stack) AS net
		FROM hand_seats
		GROUP BY name
		ORDER BY net DESC, name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	var results []NetResult
	for rows.Next() {
		var r NetResult
		if err := rows.Scan(&r.Name, &r.Hands, &r.Wins, &r.Net); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}
