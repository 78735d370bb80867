package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/iamasit07/connect-four/internal/domain"
)

type GameRepo struct {
	DB *sql.DB
}

func NewGameRepo(db *sql.DB) *GameRepo {
	return &GameRepo{DB: db}
}

// SaveGame upserts the record of a finished game.
func (r *GameRepo) SaveGame(ctx context.Context, rec domain.GameRecord) error {
	boardJSON, err := json.Marshal(rec.Board)
	if err != nil {
		return fmt.Errorf("failed to marshal board state: %w", err)
	}

	var winner sql.NullInt16
	if rec.Winner.Valid() {
		winner = sql.NullInt16{Int16: int16(rec.Winner), Valid: true}
	}

	query := `
	INSERT INTO game (game_id, player1_color, player2_color, outcome, winner, total_moves, duration_seconds, board_rows, board_columns, board_state, created_at, finished_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	ON CONFLICT (game_id) DO UPDATE SET
		player1_color = EXCLUDED.player1_color,
		player2_color = EXCLUDED.player2_color,
		outcome = EXCLUDED.outcome,
		winner = EXCLUDED.winner,
		total_moves = EXCLUDED.total_moves,
		duration_seconds = EXCLUDED.duration_seconds,
		board_state = EXCLUDED.board_state,
		created_at = EXCLUDED.created_at,
		finished_at = EXCLUDED.finished_at;
	`

	_, err = r.DB.ExecContext(ctx, query, rec.GameID, rec.Player1Color, rec.Player2Color, string(rec.Outcome), winner,
		rec.TotalMoves, rec.DurationSeconds, rec.Rows, rec.Columns, boardJSON, rec.CreatedAt, rec.FinishedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert game record: %w", err)
	}
	return nil
}

const selectGame = `
	SELECT game_id, player1_color, player2_color, outcome, winner, total_moves,
	       duration_seconds, board_rows, board_columns, board_state, created_at, finished_at
	FROM game`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGame(row rowScanner) (domain.GameRecord, error) {
	var rec domain.GameRecord
	var outcome string
	var winner sql.NullInt16
	var boardJSON []byte

	err := row.Scan(
		&rec.GameID,
		&rec.Player1Color,
		&rec.Player2Color,
		&outcome,
		&winner,
		&rec.TotalMoves,
		&rec.DurationSeconds,
		&rec.Rows,
		&rec.Columns,
		&boardJSON,
		&rec.CreatedAt,
		&rec.FinishedAt,
	)
	if err != nil {
		return rec, err
	}

	rec.Outcome = domain.Outcome(outcome)
	if winner.Valid {
		rec.Winner = domain.PlayerID(winner.Int16)
	}
	if boardJSON != nil {
		if err := json.Unmarshal(boardJSON, &rec.Board); err != nil {
			return rec, fmt.Errorf("failed to unmarshal board state: %w", err)
		}
	}
	return rec, nil
}

// GetGameByID returns nil, nil when the game was never archived.
func (r *GameRepo) GetGameByID(ctx context.Context, gameID string) (*domain.GameRecord, error) {
	rec, err := scanGame(r.DB.QueryRowContext(ctx, selectGame+` WHERE game_id = $1;`, gameID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game by ID: %w", err)
	}
	return &rec, nil
}

// ListRecentGames returns up to limit games, newest first.
func (r *GameRepo) ListRecentGames(ctx context.Context, limit int) ([]domain.GameRecord, error) {
	rows, err := r.DB.QueryContext(ctx, selectGame+` ORDER BY finished_at DESC LIMIT $1;`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query game history: %w", err)
	}
	defer rows.Close()

	games := []domain.GameRecord{}
	for rows.Next() {
		rec, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game row: %w", err)
		}
		games = append(games, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate game rows: %w", err)
	}
	return games, nil
}
