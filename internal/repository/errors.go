package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
)

// ErrNotFound is returned by every repository when a record does not exist.
// It aliases pgx.ErrNoRows.
var ErrNotFound = pgx.ErrNoRows

// ErrDuplicateID is returned when an insert reuses an existing identifier.
var ErrDuplicateID = errors.New("repository: duplicate id")
