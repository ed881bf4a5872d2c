package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/hims-api/internal/repository"
	"github.com/jwalitptl/hims-api/pkg/metrics"
)

// Store owns the connection pool and hands out repositories bound either to
// the pool or to one transaction.
type Store struct {
	db      *sqlx.DB
	metrics *metrics.Metrics
}

var _ repository.UnitOfWork = (*Store)(nil)

func NewStore(db *sqlx.DB, m *metrics.Metrics) *Store {
	return &Store{db: db, metrics: m}
}

// GetDB returns the database instance
func (s *Store) GetDB() *sqlx.DB {
	return s.db
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Repositories returns repositories running each statement on the pool.
func (s *Store) Repositories() repository.Repositories {
	return s.bind(s.db, nil)
}

// WithTx executes fn within a transaction
func (s *Store) WithTx(ctx context.Context, fn func(repository.Repositories) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(s.bind(tx, tx)); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *Store) bind(ext sqlx.ExtContext, tx *sqlx.Tx) repository.Repositories {
	base := baseRepository{ext: ext, metrics: s.metrics}
	return repository.Repositories{
		Departments:   &departmentRepository{base},
		Doctors:       &doctorRepository{base},
		Patients:      &patientRepository{base},
		Prescriptions: &prescriptionRepository{base},
		MedicalTests:  &medicalTestRepository{base},
		Audit:         &auditRepository{base},
		References:    &referenceValidator{db: s.db, tx: tx, metrics: s.metrics},
	}
}

// baseRepository provides common functionality for all repositories
type baseRepository struct {
	ext     sqlx.ExtContext
	metrics *metrics.Metrics
}

// get loads at most one row into dest and reports whether it was found.
func (r baseRepository) get(ctx context.Context, op string, dest interface{}, query string, args ...interface{}) (bool, error) {
	start := time.Now()
	err := sqlx.GetContext(ctx, r.ext, dest, r.ext.Rebind(query), args...)
	if isNoRows(err) {
		r.metrics.ObserveDB(op, start, nil)
		return false, nil
	}
	r.metrics.ObserveDB(op, start, err)
	return err == nil, err
}

func (r baseRepository) selectAll(ctx context.Context, op string, dest interface{}, query string, args ...interface{}) error {
	start := time.Now()
	err := sqlx.SelectContext(ctx, r.ext, dest, r.ext.Rebind(query), args...)
	r.metrics.ObserveDB(op, start, err)
	return err
}

// namedExec runs a :name bound statement and fails with ErrNotFound when
// no row was touched.
func (r baseRepository) namedExec(ctx context.Context, op, query string, arg interface{}) error {
	start := time.Now()
	res, err := sqlx.NamedExecContext(ctx, r.ext, query, arg)
	err = classify(err)
	r.metrics.ObserveDB(op, start, err)
	if err != nil {
		return err
	}
	return requireRow(res.RowsAffected())
}

func (r baseRepository) deleteByID(ctx context.Context, op, table, id string) error {
	start := time.Now()
	res, err := r.ext.ExecContext(ctx, r.ext.Rebind("DELETE FROM "+table+" WHERE id = ?"), id)
	err = classify(err)
	r.metrics.ObserveDB(op, start, err)
	if err != nil {
		return err
	}
	return requireRow(res.RowsAffected())
}

func requireRow(n int64, err error) error {
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
