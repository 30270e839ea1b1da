package logging

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

const (
	componentResources = "resource_management"
	componentDatabase  = "database"
	componentCleanup   = "deferred_cleanup"
)

func logCleanupFailure(logger *slog.Logger, msg string, err error, operation, component string) {
	LogError(logger, msg, err,
		slog.String("operation", operation),
		slog.String("component", component))
}

// SafeCloseWithLogging closes a statement, result set or response body and
// logs a failed close under operation.
func SafeCloseWithLogging(closer io.Closer, logger *slog.Logger, operation string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logCleanupFailure(logger, "failed to close resource", err, operation, componentResources)
	}
}

// SafeRollbackWithLogging is deferred right after BeginTx. Once the batch has
// been committed the rollback reports sql.ErrTxDone, which is not logged.
func SafeRollbackWithLogging(tx interface{ Rollback() error }, logger *slog.Logger, operation string) {
	if tx == nil {
		return
	}
	err := tx.Rollback()
	if err == nil || errors.Is(err, sql.ErrTxDone) {
		return
	}
	logCleanupFailure(logger, "failed to rollback transaction", err, operation, componentDatabase)
}

// HandleDeferredError runs cleanup, typically closing the pulse store or a
// result set, and logs its failure. The failure is stored in *errp only when
// the surrounding function is about to return nil.
func HandleDeferredError(errp *error, cleanup func() error, logger *slog.Logger, operation string) {
	if cleanup == nil {
		return
	}
	err := cleanup()
	if err == nil {
		return
	}
	logCleanupFailure(logger, "deferred operation failed", err, operation, componentCleanup)
	if errp != nil && *errp == nil {
		*errp = fmt.Errorf("%s failed: %w", operation, err)
	}
}
