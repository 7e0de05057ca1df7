package repository

import (
	"context"
	"log/slog"

	"github.com/UnknownOlympus/dispatch/internal/models"
	"github.com/google/uuid"
)

// Repository reads assignment inputs from Postgres and stores run results.
type Repository struct {
	db  Database
	log *slog.Logger
}

// Interface is the set of repository operations used by the assignment service.
type Interface interface {
	FetchDriverNames(ctx context.Context) ([]string, error)
	FetchAddressLines(ctx context.Context) ([]string, error)
	SaveResult(ctx context.Context, runID uuid.UUID, strategy string, result models.Result) error
}

// NewRepository creates a new instance of Repository with the provided Database.
// It returns a pointer to the newly created Repository.
func NewRepository(db Database, log *slog.Logger) *Repository {
	return &Repository{db: db, log: log}
}
