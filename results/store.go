package results

import (
	"context"
	"fmt"
	"time"

	"github.com/tifye/haunted/assert"
	"github.com/tifye/haunted/simulation"
	"github.com/tifye/haunted/storage"
)

type Store struct {
	db storage.DuckDB
}

func NewStore(db storage.DuckDB) *Store {
	assert.AssertNotNil(db)
	return &Store{
		db: db,
	}
}

// Insert records a finished game together with its hunters
// and the clues they collected.
func (s *Store) Insert(ctx context.Context, o simulation.Outcome) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %s", err)
	}
	defer func() { _ = tx.Rollback() }()

	gameID := o.GameID.String()
	_, err = tx.ExecContext(ctx, `
	insert into games (
		id,
		seed1,
		seed2,
		duration_ms,
		ghost_won,
		fear_departures,
		boredom_departures,
		guess,
		actual,
		correct,
		finished_at
	)
	values (?,?,?,?,?,?,?,?,?,?,?)
	`,
		gameID,
		int64(o.Seed1),
		int64(o.Seed2),
		o.Duration.Milliseconds(),
		o.GhostWon,
		o.FearDepartures,
		o.BoredomDepartures,
		o.Guess.String(),
		o.Actual.String(),
		o.Correct,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert game: %s", err)
	}

	for _, h := range o.Hunters {
		_, err = tx.ExecContext(ctx, `
		insert into game_hunters (game_id, name, specialty, fear, boredom, reason)
		values (?,?,?,?,?,?)
		`, gameID, h.Name, h.Specialty.String(), h.Fear, h.Boredom, string(h.Reason))
		if err != nil {
			return fmt.Errorf("insert hunter %s: %s", h.Name, err)
		}
	}

	for i, k := range o.Evidence {
		_, err = tx.ExecContext(ctx, `
		insert into game_evidence (game_id, position, kind)
		values (?,?,?)
		`, gameID, i, k.String())
		if err != nil {
			return fmt.Errorf("insert evidence: %s", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %s", err)
	}
	return nil
}

type ClassTally struct {
	Class   string `db:"actual" json:"class"`
	Games   int    `db:"games" json:"games"`
	Correct int    `db:"correct" json:"correct"`
}

type Tally struct {
	Games          int          `db:"games" json:"games"`
	GhostWins      int          `db:"ghost_wins" json:"ghostWins"`
	CorrectGuesses int          `db:"correct_guesses" json:"correctGuesses"`
	ByClass        []ClassTally `db:"-" json:"byClass"`
}

func (s *Store) Tally(ctx context.Context) (Tally, error) {
	var t Tally
	err := s.db.GetContext(ctx, &t, `
	select count(*) as games,
		count(*) filter (where ghost_won) as ghost_wins,
		count(*) filter (where correct) as correct_guesses
	from games
	`)
	if err != nil {
		return Tally{}, fmt.Errorf("select totals: %s", err)
	}

	err = s.db.SelectContext(ctx, &t.ByClass, `
	select actual,
		count(*) as games,
		count(*) filter (where correct) as correct
	from games
	group by actual
	order by actual
	`)
	if err != nil {
		return Tally{}, fmt.Errorf("select by class: %s", err)
	}

	return t, nil
}

type StoredGame struct {
	ID         string    `db:"id" json:"id"`
	Seed1      uint64    `db:"-" json:"seed1"`
	Seed2      uint64    `db:"-" json:"seed2"`
	GhostWon   bool      `db:"ghost_won" json:"ghostWon"`
	Guess      string    `db:"guess" json:"guess"`
	Actual     string    `db:"actual" json:"actual"`
	Correct    bool      `db:"correct" json:"correct"`
	FinishedAt time.Time `db:"finished_at" json:"finishedAt"`
	Evidence   []string  `db:"-" json:"evidence"`
}

// Recent lists the most recently finished games first.
func (s *Store) Recent(ctx context.Context, limit uint) ([]StoredGame, error) {
	assert.Assert(limit < 100, "limit too large")

	// Seeds are stored bit for bit in signed columns, the sql
	// package rejects uint64 values with the high bit set.
	var rows []struct {
		StoredGame
		RawSeed1 int64 `db:"seed1"`
		RawSeed2 int64 `db:"seed2"`
	}
	err := s.db.SelectContext(ctx, &rows, `
	select id, seed1, seed2, ghost_won, guess, actual, correct, finished_at
	from games
	order by finished_at desc
	limit ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("select games: %s", err)
	}

	games := make([]StoredGame, len(rows))
	for i, row := range rows {
		games[i] = row.StoredGame
		games[i].Seed1 = uint64(row.RawSeed1)
		games[i].Seed2 = uint64(row.RawSeed2)
	}

	for i := range games {
		err := s.db.SelectContext(ctx, &games[i].Evidence, `
		select kind from game_evidence
		where game_id = ?
		order by position
		`, games[i].ID)
		if err != nil {
			return nil, fmt.Errorf("select evidence for %s: %s", games[i].ID, err)
		}
	}

	return games, nil
}
