// Package garage implements the record services for cars, services, service
// records and payments. Managers validate requests, enforce uniqueness and
// cross-entity existence, and run multi-step writes in one transaction.
package garage

import (
	"context"
	"errors"

	"github.com/ukydev/garage/internal/apperror"
	"github.com/ukydev/garage/internal/db"
	"github.com/ukydev/garage/internal/validation"
)

func validate(req any) error {
	if err := validation.Struct(req); err != nil {
		return &apperror.Error{Kind: apperror.KindValidation, Message: err.Error(), Err: err}
	}
	return nil
}

// storeErr maps a collection error onto the application taxonomy.
func storeErr(err error, notFound string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, db.ErrNotFound):
		return apperror.NotFound(notFound)
	}
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperror.Internal("store error", err)
}

// runTx runs fn in a transaction. Application errors returned by fn pass
// through unchanged; anything else becomes a TransactionError.
func runTx(ctx context.Context, tx db.Transactor, fn func(ctx context.Context) error) error {
	err := tx.WithTransaction(ctx, fn)
	if err == nil {
		return nil
	}
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperror.Transaction(err)
}

func strOr(v *string, fallback string) string {
	if v == nil {
		return fallback
	}
	return *v
}
