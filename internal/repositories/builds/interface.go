// Package builds persists character build snapshots between editing sessions.
package builds

//go:generate mockgen -destination=mock/mock.go -package=mockbuilds -source=interface.go

import (
	"context"

	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/build"
)

// Repository defines the interface for build persistence
type Repository interface {
	// Create stores a new build for an owner
	Create(ctx context.Context, ownerID string, b *build.Build) error

	// Get retrieves a build by ID
	Get(ctx context.Context, id string) (*build.Build, error)

	// GetByOwner retrieves all builds for an owner
	GetByOwner(ctx context.Context, ownerID string) ([]*build.Build, error)

	// Update replaces an existing build
	Update(ctx context.Context, b *build.Build) error

	// Delete removes a build
	Delete(ctx context.Context, id string) error
}
