// Package storage is the boundary to PostgreSQL: transaction scoping for
// repositories and translation of driver errors into the apperror taxonomy.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"go-attendance/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	sqlStateUniqueViolation     = "23505"
	sqlStateForeignKeyViolation = "23503"
	sqlStateExclusionViolation  = "23P01"
	sqlStateCheckViolation      = "23514"
	sqlStateInvalidText         = "22P02"
)

var (
	ErrDuplicate = apperror.New(
		apperror.CodeConflict,
		"record already exists",
		http.StatusConflict,
	)
	ErrOverlap = apperror.New(
		apperror.CodeConflict,
		"record overlaps an existing record",
		http.StatusConflict,
	)
	ErrReferenceNotFound = apperror.New(
		apperror.CodeNotFound,
		"referenced record does not exist",
		http.StatusNotFound,
	)
	ErrConstraint = apperror.New(
		apperror.CodeInvalidInput,
		"value violates a data constraint",
		http.StatusBadRequest,
	)
)

// BindTx returns a gorm handle whose statements run on tx. A nil tx returns
// db unchanged. This is the same wiring gorm's own Begin performs.
func BindTx(db *gorm.DB, tx *sql.Tx) *gorm.DB {
	if tx == nil {
		return db
	}
	bound := db.Session(&gorm.Session{
		Context:                context.Background(),
		SkipDefaultTransaction: true,
	})
	bound.Statement.ConnPool = tx
	return bound
}

// RunInTx runs fn in a single transaction: commit when fn returns nil,
// rollback otherwise. Errors from begin and commit are labelled with op.
func RunInTx(ctx context.Context, db *sql.DB, op string, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return apperror.Storage(op+" begin tx", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return apperror.Storage(op+" commit", err)
	}
	return nil
}

// MapError translates a repository error. Constraint violations become
// client errors; everything else is a StorageError labelled with op.
// gorm.ErrRecordNotFound is left to the caller, which knows the entity.
func MapError(op string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case sqlStateUniqueViolation:
			return ErrDuplicate.WithDetails(pgErr.ConstraintName)
		case sqlStateExclusionViolation:
			return ErrOverlap.WithDetails(pgErr.ConstraintName)
		case sqlStateForeignKeyViolation:
			return ErrReferenceNotFound.WithDetails(pgErr.ConstraintName)
		case sqlStateCheckViolation, sqlStateInvalidText:
			return ErrConstraint.WithDetails(pgErr.ConstraintName)
		}
	}
	return apperror.Storage(op, err)
}
