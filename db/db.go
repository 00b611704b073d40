package db

import (
	"context"
	"database/sql"
	"time"

	"coderr/models"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
)

// Коды PostgreSQL: нарушение уникальности и CHECK-ограничения
const (
	uniqueViolation = "23505"
	checkViolation  = "23514"
)

type Storage struct {
	db *sqlx.DB
}

func NewStorage(db *sqlx.DB) *Storage {
	return &Storage{db: db}
}

// PoolConfig - настройки пула соединений
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Connect открывает пул и проверяет соединение
func Connect(ctx context.Context, dsn string, pool PoolConfig) (*sqlx.DB, error) {
	conn, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "connect to postgres")
	}
	conn.SetMaxOpenConns(pool.MaxOpenConns)
	conn.SetMaxIdleConns(pool.MaxIdleConns)
	conn.SetConnMaxLifetime(pool.ConnMaxLifetime)
	return conn, nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return errors.Wrap(s.db.PingContext(ctx), "ping postgres")
}

func (s *Storage) Close() error {
	return s.db.Close()
}

// inTx выполняет fn в транзакции; ошибка fn откатывает все изменения
func (s *Storage) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return errors.Wrap(tx.Commit(), "commit transaction")
}

// translate приводит ошибки драйвера к ошибкам хранилища
func translate(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return models.ErrRecordNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case uniqueViolation:
			return &models.DuplicateError{Constraint: pqErr.Constraint}
		case checkViolation:
			return models.NewValidationError("non_field_errors", "value violates constraint "+pqErr.Constraint)
		}
	}
	return errors.Wrap(err, op)
}

// requireAffected возвращает ErrRecordNotFound, если запрос не затронул строк
func requireAffected(res sql.Result, err error, op string) error {
	if err != nil {
		return translate(err, op)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, op)
	}
	if n == 0 {
		return models.ErrRecordNotFound
	}
	return nil
}
