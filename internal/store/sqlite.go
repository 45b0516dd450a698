package store

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/ecoffset/greensim/internal/montecarlo"
)

// DBFileName is the name of the run archive inside the output directory.
const DBFileName = "greensim.db"

// RunStore archives simulation runs in a SQLite database so past runs can
// be listed and re-exported. The database is an output artifact like the
// PNGs and the PDF; nothing reads it back during a simulation.
type RunStore struct {
	mu     sync.RWMutex
	db     *sql.DB
	dbPath string
}

// RunMeta describes one archived run.
type RunMeta struct {
	ID        int64     `json:"id"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"created_at"`
}

// Run is a fully loaded archived run: both scenario results in order.
type Run struct {
	Meta      RunMeta
	Scenarios []*montecarlo.ScenarioResult
}

// Open opens (creating if needed) the run archive in dir.
func Open(dir string) (*RunStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	dbPath := filepath.Join(dir, DBFileName)
	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite works best with a single writer
	db.SetMaxOpenConns(1)

	ctx := context.Background()
	if err := InitSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &RunStore{db: db, dbPath: dbPath}, nil
}

// Close closes the underlying database.
func (s *RunStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// SaveRun archives a dual-scenario run under label and returns its id.
// Scenario numbering follows slice order starting at 1.
func (s *RunStore) SaveRun(ctx context.Context, label string, results ...*montecarlo.ScenarioResult) (int64, error) {
	if len(results) == 0 {
		return 0, fmt.Errorf("no scenario results to save")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (label, created_at) VALUES (?, ?)`,
		label, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run id: %w", err)
	}

	for i, sr := range results {
		scenario := i + 1
		p := sr.Params
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO scenarios (
				run_id, scenario, trials, area_m2, device_count, plant_count,
				leaf_area_index, light_interception,
				photosynthetic_rate_mean, photosynthetic_rate_sigma,
				device_emission_mean_kg, device_emission_sigma_kg, random_seed,
				median_sequestration, median_offset_ratio, median_credit_yield
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, scenario, p.Trials, p.AreaM2, p.DeviceCount, p.PlantCount,
			p.LeafAreaIndex, p.LightInterception,
			p.PhotosyntheticRateMean, p.PhotosyntheticRateSigma,
			p.DeviceEmissionMeanKg, p.DeviceEmissionSigmaKg, p.RandomSeed,
			nullNaN(sr.Sequestration.Median), nullNaN(sr.OffsetRatio.Median), nullNaN(sr.CreditYield.Median),
		); err != nil {
			return 0, fmt.Errorf("failed to insert scenario %d: %w", scenario, err)
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO samples (run_id, scenario, trial, sequestration, offset_ratio, credit_yield)
			VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return 0, fmt.Errorf("failed to prepare sample insert: %w", err)
		}
		for trial, sample := range sr.Samples {
			if _, err := stmt.ExecContext(ctx, runID, scenario, trial,
				sample.Sequestration, nullNaN(sample.OffsetRatio), sample.CreditYield); err != nil {
				stmt.Close()
				return 0, fmt.Errorf("failed to insert sample %d/%d: %w", scenario, trial, err)
			}
		}
		stmt.Close()
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}

// ListRuns returns all archived runs, newest first.
func (s *RunStore) ListRuns(ctx context.Context) ([]RunMeta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, label, created_at FROM runs ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var metas []RunMeta
	for rows.Next() {
		var m RunMeta
		var created string
		if err := rows.Scan(&m.ID, &m.Label, &created); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		m.CreatedAt, _ = time.Parse(time.RFC3339, created)
		metas = append(metas, m)
	}
	return metas, rows.Err()
}

// GetRun loads one archived run with its scenarios and raw samples.
func (s *RunStore) GetRun(ctx context.Context, id int64) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run := &Run{}
	var created string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, label, created_at FROM runs WHERE id = ?`, id).
		Scan(&run.Meta.ID, &run.Meta.Label, &created)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load run %d: %w", id, err)
	}
	run.Meta.CreatedAt, _ = time.Parse(time.RFC3339, created)

	scenRows, err := s.db.QueryContext(ctx, `
		SELECT scenario, trials, area_m2, device_count, plant_count,
		       leaf_area_index, light_interception,
		       photosynthetic_rate_mean, photosynthetic_rate_sigma,
		       device_emission_mean_kg, device_emission_sigma_kg, random_seed
		FROM scenarios WHERE run_id = ? ORDER BY scenario`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query scenarios: %w", err)
	}
	defer scenRows.Close()

	for scenRows.Next() {
		var scenario int
		var p montecarlo.ScenarioParameters
		if err := scenRows.Scan(&scenario, &p.Trials, &p.AreaM2, &p.DeviceCount, &p.PlantCount,
			&p.LeafAreaIndex, &p.LightInterception,
			&p.PhotosyntheticRateMean, &p.PhotosyntheticRateSigma,
			&p.DeviceEmissionMeanKg, &p.DeviceEmissionSigmaKg, &p.RandomSeed); err != nil {
			return nil, fmt.Errorf("failed to scan scenario: %w", err)
		}

		samples, err := s.loadSamples(ctx, id, scenario)
		if err != nil {
			return nil, err
		}
		run.Scenarios = append(run.Scenarios, montecarlo.NewResult(p, samples))
	}
	if err := scenRows.Err(); err != nil {
		return nil, err
	}

	if len(run.Scenarios) == 0 {
		return nil, fmt.Errorf("run %d has no scenarios", id)
	}
	return run, nil
}

func (s *RunStore) loadSamples(ctx context.Context, runID int64, scenario int) ([]montecarlo.TrialSample, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT sequestration, offset_ratio, credit_yield
		FROM samples WHERE run_id = ? AND scenario = ? ORDER BY trial`,
		runID, scenario)
	if err != nil {
		return nil, fmt.Errorf("failed to query samples: %w", err)
	}
	defer rows.Close()

	var samples []montecarlo.TrialSample
	for rows.Next() {
		var sample montecarlo.TrialSample
		var offset sql.NullFloat64
		if err := rows.Scan(&sample.Sequestration, &offset, &sample.CreditYield); err != nil {
			return nil, fmt.Errorf("failed to scan sample: %w", err)
		}
		if offset.Valid {
			sample.OffsetRatio = offset.Float64
		} else {
			sample.OffsetRatio = math.NaN()
		}
		samples = append(samples, sample)
	}
	return samples, rows.Err()
}

// nullNaN maps the NaN sentinel to SQL NULL so it round-trips cleanly.
func nullNaN(v float64) any {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}
