package trainlog

import "database/sql"
import "encoding/json"

import "github.com/google/uuid"
import "github.com/pkg/errors"
import _ "modernc.org/sqlite"

// Store keeps metrics of many runs in a sqlite database.
type Store struct {
	*sql.DB
}

// OpenStore opens or creates the database at path. Use ":memory:" for a throwaway store.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open metrics db")
	}
	if path == ":memory:" {
		// every pooled connection would get its own empty database
		db.SetMaxOpenConns(1)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			run_id            TEXT PRIMARY KEY,
			hyperparameters   TEXT,
			timestamp         TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		CREATE TABLE IF NOT EXISTS epochs (
			run_id            TEXT,
			epoch             BIGINT,
			seconds           DOUBLE,
			reconstruction    DOUBLE,
			kld               DOUBLE,
			voxel_diff        DOUBLE,
			inception         DOUBLE,
			timestamp         TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY(run_id, epoch),
			FOREIGN KEY(run_id) REFERENCES runs(run_id)
		);
	`)
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to create metrics schema")
	}
	return &Store{db}, nil
}

// StartRun registers a new run with its hyperparameters serialized as JSON.
func (s *Store) StartRun(hyper any) (uuid.UUID, error) {
	data, err := json.Marshal(hyper)
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "failed to encode hyperparameters")
	}
	id := uuid.New()
	if _, err := s.Exec(`INSERT INTO runs (run_id, hyperparameters) VALUES (?, ?)`, id.String(), string(data)); err != nil {
		return uuid.Nil, errors.Wrap(err, "failed to insert run")
	}
	return id, nil
}

// RecordEpoch stores m for the run, replacing an earlier record of the same epoch.
func (s *Store) RecordEpoch(run uuid.UUID, m Metrics) error {
	_, err := s.Exec(`
		INSERT OR REPLACE INTO epochs (run_id, epoch, seconds, reconstruction, kld, voxel_diff, inception)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.String(), m.Epoch, m.Seconds, m.Reconstruction, m.KLD, m.VoxelDiff, m.Inception)
	return errors.Wrap(err, "failed to record epoch")
}

// Epochs lists the recorded epochs of a run in order.
func (s *Store) Epochs(run uuid.UUID) ([]Metrics, error) {
	rows, err := s.Query(`
		SELECT epoch, seconds, reconstruction, kld, voxel_diff, inception
		FROM epochs WHERE run_id = ? ORDER BY epoch`, run.String())
	if err != nil {
		return nil, errors.Wrap(err, "failed to query epochs")
	}
	defer rows.Close()

	var out []Metrics
	for rows.Next() {
		var m Metrics
		if err := rows.Scan(&m.Epoch, &m.Seconds, &m.Reconstruction, &m.KLD, &m.VoxelDiff, &m.Inception); err != nil {
			return nil, errors.Wrap(err, "failed to scan epoch")
		}
		out = append(out, m)
	}
	return out, errors.Wrap(rows.Err(), "failed to read epochs")
}

// Runs lists run ids, oldest first.
func (s *Store) Runs() ([]uuid.UUID, error) {
	rows, err := s.Query(`SELECT run_id FROM runs ORDER BY timestamp, rowid`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query runs")
	}
	defer rows.Close()

	var out []uuid.UUID
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, errors.Wrap(err, "failed to scan run")
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "bad run id %q", raw)
		}
		out = append(out, id)
	}
	return out, errors.Wrap(rows.Err(), "failed to read runs")
}
