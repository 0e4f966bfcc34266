package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/banshee-data/ballistics/internal/trajectory"
)

// ErrNotFound is returned when a run id does not exist.
var ErrNotFound = errors.New("run not found")

// Run is one zeroed configuration. Angles are in radians.
type Run struct {
	ID          string          `json:"run_id"`
	Label       string          `json:"label"`
	Config      json.RawMessage `json:"config"`
	Pitch       float64         `json:"zero_pitch"`
	Yaw         float64         `json:"zero_yaw"`
	Iterations  int             `json:"iterations"`
	CreatedUnix float64         `json:"created_unix"`
}

// RecordRun stores run and its range card in one transaction. An empty ID
// is filled with a new UUID and CreatedUnix with the current time.
func (db *DB) RecordRun(run *Run, rows []trajectory.Measurement) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedUnix == 0 {
		run.CreatedUnix = float64(db.clock.Now().UnixNano()) / 1e9
	}
	if len(run.Config) == 0 {
		run.Config = json.RawMessage("{}")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO runs (
			run_id, label, config_json, zero_pitch, zero_yaw, iterations, created_unix
		) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Label, string(run.Config), run.Pitch, run.Yaw, run.Iterations, run.CreatedUnix,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO range_rows (
			run_id, row_index, time_s, distance_m, elevation_m, windage_m,
			elevation_moa, windage_moa, velocity_mps, mach, energy_j
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("failed to prepare range row insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range rows {
		if _, err := stmt.Exec(
			run.ID, i, r.Time, r.Distance, r.Elevation, r.Windage,
			r.ElevationMOA, r.WindageMOA, r.Velocity, r.Mach, r.Energy,
		); err != nil {
			return fmt.Errorf("failed to insert range row %d: %w", i, err)
		}
	}

	return tx.Commit()
}

const runColumns = `run_id, label, config_json, zero_pitch, zero_yaw, iterations, created_unix`

func scanRun(row interface{ Scan(...any) error }) (Run, error) {
	var r Run
	var cfg string
	if err := row.Scan(&r.ID, &r.Label, &cfg, &r.Pitch, &r.Yaw, &r.Iterations, &r.CreatedUnix); err != nil {
		return Run{}, err
	}
	r.Config = json.RawMessage(cfg)
	return r, nil
}

// Runs returns up to limit runs, newest first.
func (db *DB) Runs(limit int) ([]Run, error) {
	rows, err := db.Query(
		`SELECT `+runColumns+` FROM runs ORDER BY created_unix DESC, run_id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Run returns a single run or ErrNotFound.
func (db *DB) Run(id string) (*Run, error) {
	r, err := scanRun(db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE run_id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query run: %w", err)
	}
	return &r, nil
}

// RangeRows returns the stored range card of a run in row order.
func (db *DB) RangeRows(id string) ([]trajectory.Measurement, error) {
	if _, err := db.Run(id); err != nil {
		return nil, err
	}

	rows, err := db.Query(
		`SELECT time_s, distance_m, elevation_m, windage_m, elevation_moa,
			windage_moa, velocity_mps, mach, energy_j
		FROM range_rows WHERE run_id = ? ORDER BY row_index`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query range rows: %w", err)
	}
	defer rows.Close()

	out := []trajectory.Measurement{}
	for rows.Next() {
		var m trajectory.Measurement
		if err := rows.Scan(&m.Time, &m.Distance, &m.Elevation, &m.Windage, &m.ElevationMOA,
			&m.WindageMOA, &m.Velocity, &m.Mach, &m.Energy); err != nil {
			return nil, fmt.Errorf("failed to scan range row: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// DeleteRun removes a run and its range card.
func (db *DB) DeleteRun(id string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM range_rows WHERE run_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete range rows: %w", err)
	}
	res, err := tx.Exec(`DELETE FROM runs WHERE run_id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return tx.Commit()
}
