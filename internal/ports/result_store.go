package ports

import (
	"context"
	"errors"

	"epsg-finder-service/internal/domain"
)

// ErrNoResult is returned by Get when a session has no stored resolution.
var ErrNoResult = errors.New("no stored result")

// Port: a boundary for keeping the most recent resolution per session.
type ResultStore interface {
	// Replace the stored resolution for the session.
	Save(ctx context.Context, sessionID string, res domain.ResolutionResult) error
	// Return the stored resolution, or ErrNoResult when nothing is stored.
	Get(ctx context.Context, sessionID string) (domain.ResolutionResult, error)
	// Drop the stored resolution. Clearing an empty slot is not an error.
	Clear(ctx context.Context, sessionID string) error
}
