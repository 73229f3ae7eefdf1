package database

import (
	"context"
	"database/sql/driver"
	"errors"
	"log/slog"
	"time"

	"github.com/avast/retry-go"
	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"modernc.org/sqlite"

	"github.com/at-ishikawa/flashrev/internal/config"
)

const (
	mysqlLockWaitTimeout = 1205
	mysqlDeadlock        = 1213

	pqSerializationFailure = "40001"
	pqDeadlockDetected     = "40P01"

	sqliteBusy   = 5
	sqliteLocked = 6
)

// IsTransient reports whether err is worth retrying: deadlocks, lock timeouts,
// serialization failures and dropped connections.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, mysql.ErrInvalidConn) {
		return true
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlLockWaitTimeout || mysqlErr.Number == mysqlDeadlock
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqSerializationFailure || pqErr.Code == pqDeadlockDetected
	}
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		code := sqliteErr.Code() & 0xff
		return code == sqliteBusy || code == sqliteLocked
	}
	return false
}

// WithRetry runs fn until it succeeds, fails with a non-transient error, or attempts run out.
// The returned error is the last one fn returned.
func WithRetry(ctx context.Context, cfg config.RetryConfig, fn func(ctx context.Context) error) error {
	attempts := cfg.Attempts
	if attempts == 0 {
		attempts = 1
	}

	return retry.Do(
		func() error {
			err := fn(ctx)
			if err != nil && !IsTransient(err) {
				return retry.Unrecoverable(err)
			}
			return err
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(time.Duration(cfg.InitialDelayMs)*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			slog.Default().Warn("retrying transient database error",
				"attempt", n+1,
				"error", err)
		}),
	)
}
