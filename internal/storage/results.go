package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrResultNotFound is returned when a result ID does not exist.
var ErrResultNotFound = errors.New("storage: result not found")

// Offer is one banker offer made during a stored game.
type Offer struct {
	Round  int
	Amount float64
}

// Result is one finished game.
type Result struct {
	ID          string
	GameID      string
	Personality string
	PlayerCase  int // 0-based
	CaseValue   float64
	Winnings    float64
	Outcome     string // "deal" or "no_deal"
	Rounds      int
	OfferCount  int
	BestOffer   float64
	Risk        string
	Offers      []Offer // Only filled by SaveResult input and ResultOffers
	CreatedAt   time.Time
}

const resultColumns = `id, game_id, personality, player_case, case_value, winnings,
		        outcome, rounds, offers, best_offer, risk, created_at`

// SaveResult stores a finished game with its offer history in one
// transaction and returns the generated result ID.
func (s *Store) SaveResult(r Result) (string, error) {
	id := uuid.NewString()
	createdAt := s.clock.Now().UTC().Format(timeLayout)

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after commit

	_, err = tx.Exec(
		`INSERT INTO results
		 (id, game_id, personality, player_case, case_value, winnings, outcome, rounds, offers, best_offer, risk, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, r.GameID, r.Personality, r.PlayerCase, r.CaseValue, r.Winnings,
		r.Outcome, r.Rounds, len(r.Offers), r.BestOffer, r.Risk, createdAt,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save result: %w", err)
	}

	for i, o := range r.Offers {
		if _, err := tx.Exec(
			"INSERT INTO result_offers (result_id, seq, round, amount) VALUES (?, ?, ?, ?)",
			id, i, o.Round, o.Amount,
		); err != nil {
			return "", fmt.Errorf("storage: cannot save offer %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("storage: cannot commit result: %w", err)
	}
	return id, nil
}

// TopResults retrieves the best N results for the given game, highest
// winnings first.
func (s *Store) TopResults(gameID string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+resultColumns+`
		 FROM results
		 WHERE game_id = ?
		 ORDER BY winnings DESC, created_at ASC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	return scanResults(rows)
}

// RecentResults retrieves the most recent results across all games.
func (s *Store) RecentResults(limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+resultColumns+`
		 FROM results
		 ORDER BY created_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query recent results: %w", err)
	}
	return scanResults(rows)
}

// ResultByID retrieves one result including its offer history.
func (s *Store) ResultByID(id string) (Result, error) {
	row := s.db.QueryRow(`SELECT `+resultColumns+` FROM results WHERE id = ?`, id)

	r, err := scanResult(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Result{}, fmt.Errorf("%w: %s", ErrResultNotFound, id)
	}
	if err != nil {
		return Result{}, fmt.Errorf("storage: cannot query result: %w", err)
	}

	r.Offers, err = s.ResultOffers(id)
	if err != nil {
		return Result{}, err
	}
	return r, nil
}

// ResultOffers returns the offers of a stored game in the order they were made.
func (s *Store) ResultOffers(id string) ([]Offer, error) {
	rows, err := s.db.Query(
		`SELECT round, amount FROM result_offers WHERE result_id = ? ORDER BY seq`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query offers: %w", err)
	}
	defer rows.Close()

	var offers []Offer
	for rows.Next() {
		var o Offer
		if err := rows.Scan(&o.Round, &o.Amount); err != nil {
			return nil, fmt.Errorf("storage: cannot scan offer: %w", err)
		}
		offers = append(offers, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return offers, nil
}

// BestWinnings returns the highest winnings for the given game, or 0 if
// nothing has been played.
func (s *Store) BestWinnings(gameID string) (float64, error) {
	var best sql.NullFloat64
	err := s.db.QueryRow(
		"SELECT MAX(winnings) FROM results WHERE game_id = ?",
		gameID,
	).Scan(&best)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best winnings: %w", err)
	}
	if !best.Valid {
		return 0, nil
	}
	return best.Float64, nil
}

// ClearResults deletes all results for the given game.
func (s *Store) ClearResults(gameID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after commit

	if _, err := tx.Exec(
		"DELETE FROM result_offers WHERE result_id IN (SELECT id FROM results WHERE game_id = ?)",
		gameID,
	); err != nil {
		return fmt.Errorf("storage: cannot clear offers: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM results WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit clear: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanResult(row scanner) (Result, error) {
	var r Result
	var createdAt any
	err := row.Scan(
		&r.ID,
		&r.GameID,
		&r.Personality,
		&r.PlayerCase,
		&r.CaseValue,
		&r.Winnings,
		&r.Outcome,
		&r.Rounds,
		&r.OfferCount,
		&r.BestOffer,
		&r.Risk,
		&createdAt,
	)
	if err != nil {
		return Result{}, err
	}
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

func scanResults(rows *sql.Rows) ([]Result, error) {
	defer rows.Close()

	var results []Result
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return results, nil
}
