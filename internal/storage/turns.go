package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/SeamusWaldron/cube3d"
)

// TurnRecord is a completed quarter turn in the database.
type TurnRecord struct {
	TurnID    int64
	SessionID string
	TurnIndex int
	TsMs      int64
	Axis      string
	Layer     float64
	Direction int
	Notation  string
}

// Rotation converts the record back into a rotation request.
func (t TurnRecord) Rotation() (cube3d.Rotation, error) {
	axis, err := cube3d.ParseAxis(t.Axis)
	if err != nil {
		return cube3d.Rotation{}, err
	}
	return cube3d.Rotation{Axis: axis, Layer: t.Layer, Direction: cube3d.Direction(t.Direction)}, nil
}

// Time returns the completion time of the turn.
func (t TurnRecord) Time() time.Time {
	return time.UnixMilli(t.TsMs)
}

// TurnRepository provides CRUD operations for turns.
type TurnRepository struct {
	db *DB
}

// NewTurnRepository creates a new turn repository.
func NewTurnRepository(db *DB) *TurnRepository {
	return &TurnRepository{db: db}
}

const insertTurn = `
	INSERT INTO turns (session_id, turn_index, ts_ms, axis, layer, direction, notation)
	VALUES (?, ?, ?, ?, ?, ?, ?)
`

// Create stores a completed turn and returns its ID. notation may be
// empty for rotations no key produces.
func (r *TurnRepository) Create(sessionID string, index int, at time.Time, rot cube3d.Rotation, notation string) (int64, error) {
	result, err := r.db.Exec(insertTurn,
		sessionID, index, at.UnixMilli(), rot.Axis.String(), rot.Layer, int(rot.Direction), notation)
	if err != nil {
		return 0, fmt.Errorf("failed to create turn: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get turn ID: %w", err)
	}
	return id, nil
}

// CreateBatch stores moves as consecutive turns in a single transaction,
// starting at startIndex. Double moves become two turns.
func (r *TurnRepository) CreateBatch(sessionID string, moves []cube3d.Move, offset float64, startIndex int) (int, error) {
	index := startIndex
	err := r.db.Transaction(func(tx *sql.Tx) error {
		for _, m := range moves {
			at := m.Time
			if at.IsZero() {
				at = time.Now()
			}
			for _, rot := range m.Rotations(offset) {
				_, err := tx.Exec(insertTurn,
					sessionID, index, at.UnixMilli(), rot.Axis.String(), rot.Layer, int(rot.Direction), rot.Notation(offset))
				if err != nil {
					return fmt.Errorf("failed to create turn %d: %w", index, err)
				}
				index++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return index - startIndex, nil
}

// ListBySession retrieves all turns of a session in order.
func (r *TurnRepository) ListBySession(sessionID string) ([]TurnRecord, error) {
	rows, err := r.db.Query(`
		SELECT turn_id, session_id, turn_index, ts_ms, axis, layer, direction, notation
		FROM turns
		WHERE session_id = ?
		ORDER BY turn_index
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list turns: %w", err)
	}
	defer rows.Close()

	var turns []TurnRecord
	for rows.Next() {
		var t TurnRecord
		err := rows.Scan(&t.TurnID, &t.SessionID, &t.TurnIndex, &t.TsMs, &t.Axis, &t.Layer, &t.Direction, &t.Notation)
		if err != nil {
			return nil, fmt.Errorf("failed to scan turn: %w", err)
		}
		turns = append(turns, t)
	}
	return turns, rows.Err()
}

// Count returns the number of turns in a session.
func (r *TurnRepository) Count(sessionID string) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM turns WHERE session_id = ?", sessionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count turns: %w", err)
	}
	return count, nil
}
