package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"queuectl/internal/model"

	_ "github.com/mattn/go-sqlite3"
)

var (
	// ErrNotFound is returned when a job id does not exist in the store.
	ErrNotFound = errors.New("job not found")
	// ErrDuplicateID is returned when an enqueued job's id already exists
	// in the queue or in the dead letter queue.
	ErrDuplicateID = errors.New("duplicate job id")
)

const (
	tableJobs = "jobs"
	tableDead = "dead_jobs"
)

const jobColumns = "id, command, state, attempts, max_retries, created_at, updated_at, next_run_at, output"

// Store holds the two job collections: the live queue ("jobs") and the
// dead letter queue ("dead_jobs"). Both support whole-collection Load
// and Replace; multi-step mutations run inside a single transaction so
// readers never observe a half-written collection and a dead job is
// never visible in both tables (or neither) at once.
type Store struct {
	db *sql.DB
}

func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	s := &Store{db: db}
	if err := s.init(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	for _, table := range []string{tableJobs, tableDead} {
		schema := `create table if not exists ` + table + `(
			id text primary key,
			command text not null,
			state text not null default 'pending',
			attempts integer not null default 0,
			max_retries integer not null default 3,
			created_at datetime not null,
			updated_at datetime not null,
			next_run_at datetime not null,
			output text not null default ''
		);`
		if _, err := s.db.Exec(schema); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// LoadJobs returns every job in the queue, in insertion order.
func (s *Store) LoadJobs() ([]model.Job, error) {
	return s.load(tableJobs)
}

// LoadDead returns every job in the dead letter queue, in insertion order.
func (s *Store) LoadDead() ([]model.Job, error) {
	return s.load(tableDead)
}

// ReplaceJobs atomically swaps the queue contents for the given set.
func (s *Store) ReplaceJobs(jobs []model.Job) error {
	return s.replace(tableJobs, jobs)
}

// ReplaceDead atomically swaps the dead letter queue contents for the given set.
func (s *Store) ReplaceDead(jobs []model.Job) error {
	return s.replace(tableDead, jobs)
}

func (s *Store) load(table string) ([]model.Job, error) {
	rows, err := s.db.Query(`select ` + jobColumns + ` from ` + table + ` order by rowid asc`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanJobs(rows)
}

func (s *Store) replace(table string, jobs []model.Job) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`delete from ` + table); err != nil {
		return err
	}
	for _, job := range jobs {
		if err := insertJob(tx, table, job); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Enqueue appends a fully-initialized job to the queue. The id must not
// already exist in either collection; on collision nothing is written.
func (s *Store) Enqueue(job *model.Job) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var n int
	err = tx.QueryRow(
		`select (select count(*) from jobs where id = ?) + (select count(*) from dead_jobs where id = ?)`,
		job.ID, job.ID,
	).Scan(&n)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("job %q: %w", job.ID, ErrDuplicateID)
	}
	if err := insertJob(tx, tableJobs, *job); err != nil {
		return err
	}
	return tx.Commit()
}

// UpdateJobs writes the given jobs back to the queue by id in one
// transaction, leaving every row it doesn't name untouched. A worker
// cycle persists its outcome through this so jobs enqueued while the
// cycle held its snapshot survive. Ids that no longer exist are skipped.
func (s *Store) UpdateJobs(jobs []model.Job) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, job := range jobs {
		_, err := tx.Exec(
			`update jobs set state = ?, attempts = ?, max_retries = ?, updated_at = ?, next_run_at = ?, output = ? where id = ?`,
			job.State, job.Attempts, job.MaxRetries,
			job.UpdatedAt, job.NextRunAt, job.Output, job.ID,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// MoveDead relocates every job with state 'dead' from the queue into the
// dead letter queue in one transaction, so no observer can see a dead job
// in both collections or in neither. It returns the number of jobs moved.
func (s *Store) MoveDead() (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`insert into dead_jobs (`+jobColumns+`) select `+jobColumns+` from jobs where state = ?`,
		model.StateDead,
	)
	if err != nil {
		return 0, err
	}
	moved, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if _, err := tx.Exec(`delete from jobs where state = ?`, model.StateDead); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return int(moved), nil
}

// Requeue moves one job out of the dead letter queue and back into the
// queue with its attempts reset, ready for re-selection.
func (s *Store) Requeue(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	row := tx.QueryRow(`select `+jobColumns+` from dead_jobs where id = ?`, id)
	var job model.Job
	if err := scanJob(row, &job); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("job %q: %w", id, ErrNotFound)
		}
		return err
	}
	if _, err := tx.Exec(`delete from dead_jobs where id = ?`, id); err != nil {
		return err
	}

	now := time.Now().UTC()
	job.State = model.StatePending
	job.Attempts = 0
	job.UpdatedAt = now
	job.NextRunAt = now
	if err := insertJob(tx, tableJobs, job); err != nil {
		return err
	}
	return tx.Commit()
}

// PurgeDead empties the dead letter queue and returns how many jobs it held.
func (s *Store) PurgeDead() (int, error) {
	res, err := s.db.Exec(`delete from dead_jobs`)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

// ListByState returns jobs in the given state. Dead jobs live in the
// dead letter queue, everything else in the main queue.
func (s *Store) ListByState(state string) ([]model.Job, error) {
	if state == model.StateDead {
		return s.LoadDead()
	}
	rows, err := s.db.Query(`select `+jobColumns+` from jobs where state = ? order by rowid asc`, state)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanJobs(rows)
}

// CountByState returns a state -> count summary of the main queue.
func (s *Store) CountByState() (map[string]int, error) {
	rows, err := s.db.Query(`select state, count(*) from jobs group by state`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var state string
		var count int
		if err := rows.Scan(&state, &count); err != nil {
			return nil, err
		}
		counts[state] = count
	}
	return counts, rows.Err()
}

// CountDead returns the size of the dead letter queue.
func (s *Store) CountDead() (int, error) {
	var n int
	err := s.db.QueryRow(`select count(*) from dead_jobs`).Scan(&n)
	return n, err
}

func insertJob(tx *sql.Tx, table string, job model.Job) error {
	_, err := tx.Exec(
		`insert into `+table+` (`+jobColumns+`) values (?,?,?,?,?,?,?,?,?)`,
		job.ID, job.Command, job.State, job.Attempts, job.MaxRetries,
		job.CreatedAt, job.UpdatedAt, job.NextRunAt, job.Output,
	)
	return err
}

func scanJobs(rows *sql.Rows) ([]model.Job, error) {
	var jobs []model.Job
	for rows.Next() {
		var job model.Job
		if err := rows.Scan(
			&job.ID,
			&job.Command,
			&job.State,
			&job.Attempts,
			&job.MaxRetries,
			&job.CreatedAt,
			&job.UpdatedAt,
			&job.NextRunAt,
			&job.Output,
		); err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

func scanJob(row *sql.Row, job *model.Job) error {
	return row.Scan(
		&job.ID,
		&job.Command,
		&job.State,
		&job.Attempts,
		&job.MaxRetries,
		&job.CreatedAt,
		&job.UpdatedAt,
		&job.NextRunAt,
		&job.Output,
	)
}
