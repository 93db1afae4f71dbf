package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	logger "github.com/multiversx/mx-chain-logger-go"

	"github.com/hwpaige/launchboard/common"
)

var log = logger.GetOrCreate("storage")

// sqliteArchive persists every normalized launch record ever fetched, keyed by
// the upstream identifier. It outlives the live cache window: the upstream only
// returns a bounded slice of launches, the archive keeps accumulating them.
type sqliteArchive struct {
	db               *sql.DB
	retentionSeconds int
	cancelFunc       context.CancelFunc
	wg               sync.WaitGroup
}

// NewSQLiteArchive creates the database, schema, and starts the retention
// cleaner when a retention horizon is configured (0 keeps records forever)
func NewSQLiteArchive(dbPath string, retentionSeconds int) (*sqliteArchive, error) {
	err := prepareDirectories(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = createSchema(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &sqliteArchive{
		db:               db,
		retentionSeconds: retentionSeconds,
		cancelFunc:       cancel,
	}

	if retentionSeconds > 0 {
		s.startRetentionCleaner(ctx)
	}

	return s, nil
}

func prepareDirectories(dbPath string) error {
	if dbPath == ":memory:" {
		return nil
	}
	return os.MkdirAll(filepath.Dir(dbPath), os.ModePerm)
}

func createSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS launches (
		id               TEXT    NOT NULL PRIMARY KEY,
		name             TEXT    NOT NULL DEFAULT '',
		rocket           TEXT    NOT NULL DEFAULT '',
		orbit            TEXT    NOT NULL DEFAULT '',
		pad              TEXT    NOT NULL DEFAULT '',
		net              INTEGER NOT NULL,
		status           TEXT    NOT NULL DEFAULT 'TBD',
		landing_type     TEXT    NOT NULL DEFAULT '',
		landing_location TEXT    NOT NULL DEFAULT '',
		video_url        TEXT    NOT NULL DEFAULT '',
		category         TEXT    NOT NULL DEFAULT '',
		archived_at      INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_launches_net ON launches(net);
	CREATE INDEX IF NOT EXISTS idx_launches_rocket ON launches(rocket);
	`

	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// SaveRecords upserts a batch of records in one transaction. A newer fetch
// supersedes the stored row for the same identifier.
func (s *sqliteArchive) SaveRecords(ctx context.Context, category common.Category, records []common.LaunchRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO launches (id, name, rocket, orbit, pad, net, status, landing_type, landing_location, video_url, category, archived_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name=excluded.name,
			rocket=excluded.rocket,
			orbit=excluded.orbit,
			pad=excluded.pad,
			net=excluded.net,
			status=excluded.status,
			landing_type=excluded.landing_type,
			landing_location=excluded.landing_location,
			video_url=excluded.video_url,
			category=excluded.category,
			archived_at=excluded.archived_at
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	archivedAt := time.Now().Unix()
	for _, r := range records {
		_, err = stmt.ExecContext(ctx,
			r.ID, r.Name, r.Rocket, r.Orbit, r.Pad, r.Net.UTC().Unix(),
			r.Status, r.LandingType, r.LandingLocation, r.VideoURL,
			string(category), archivedAt)
		if err != nil {
			return fmt.Errorf("failed to upsert launch '%s': %w", r.ID, err)
		}
	}

	return tx.Commit()
}

// GetYear returns all archived records with a launch date inside the given
// calendar year (UTC), ordered by date then identifier
func (s *sqliteArchive) GetYear(ctx context.Context, year int) ([]common.LaunchRecord, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).Unix()
	end := time.Date(year+1, time.January, 1, 0, 0, 0, 0, time.UTC).Unix()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, rocket, orbit, pad, net, status, landing_type, landing_location, video_url
		FROM launches
		WHERE net >= ? AND net < ?
		ORDER BY net ASC, id ASC
	`, start, end)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var records []common.LaunchRecord
	for rows.Next() {
		var r common.LaunchRecord
		var netUnix int64

		err = rows.Scan(&r.ID, &r.Name, &r.Rocket, &r.Orbit, &r.Pad, &netUnix,
			&r.Status, &r.LandingType, &r.LandingLocation, &r.VideoURL)
		if err != nil {
			return nil, err
		}

		r.Net = time.Unix(netUnix, 0).UTC()
		records = append(records, r)
	}

	return records, rows.Err()
}

// CountByRocket returns the number of archived launches per vehicle for the
// given calendar year (UTC); a zero year counts across the whole archive
func (s *sqliteArchive) CountByRocket(ctx context.Context, year int) (map[string]int, error) {
	query := "SELECT rocket, COUNT(*) FROM launches"
	var args []interface{}
	if year != 0 {
		start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).Unix()
		end := time.Date(year+1, time.January, 1, 0, 0, 0, 0, time.UTC).Unix()
		query += " WHERE net >= ? AND net < ?"
		args = append(args, start, end)
	}
	query += " GROUP BY rocket"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	res := make(map[string]int)
	for rows.Next() {
		var rocket string
		var count int
		if err := rows.Scan(&rocket, &count); err != nil {
			return nil, err
		}
		res[rocket] = count
	}
	return res, rows.Err()
}

func (s *sqliteArchive) cleanRetainedLaunches(ctx context.Context) error {
	cutoff := time.Now().Unix() - int64(s.retentionSeconds)
	_, err := s.db.ExecContext(ctx, "DELETE FROM launches WHERE net < ?", cutoff)
	return err
}

func (s *sqliteArchive) startRetentionCleaner(ctx context.Context) {
	s.wg.Add(1)

	// max(retentionSeconds/10, 60)
	intervalSec := s.retentionSeconds / 10
	if intervalSec < 60 {
		intervalSec = 60
	}

	ticker := time.NewTicker(time.Duration(intervalSec) * time.Second)

	go func() {
		defer s.wg.Done()
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				log.Debug("running retention cleanup")

				err := s.cleanRetainedLaunches(ctx)
				if err != nil {
					log.Warn("failed to cleanup retained launches", "error", err)
				}
			}
		}
	}()
}

// Close closes the database and stops background routines
func (s *sqliteArchive) Close() error {
	s.cancelFunc()
	s.wg.Wait()
	return s.db.Close()
}

// IsInterfaceNil returns true if the value under the interface is nil
func (s *sqliteArchive) IsInterfaceNil() bool {
	return s == nil
}
