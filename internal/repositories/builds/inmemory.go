package builds

import (
	"context"
	"sync"

	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/build"
	dprerr "github.com/KirkDiggler/dnd-dpr-engine/internal/errors"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/uuid"
)

// InMemoryRepository is an in-memory implementation of the build repository.
// Useful for testing and development.
type InMemoryRepository struct {
	mu            sync.RWMutex
	builds        map[string]*build.Build
	owners        map[string]string // build ID -> owner ID
	uuidGenerator uuid.Generator
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		builds:        make(map[string]*build.Build),
		owners:        make(map[string]string),
		uuidGenerator: uuid.NewGoogleUUIDGenerator(),
	}
}

// Create stores a new build for an owner
func (r *InMemoryRepository) Create(ctx context.Context, ownerID string, b *build.Build) error {
	if b == nil {
		return dprerr.InvalidArgument("build cannot be nil")
	}
	if ownerID == "" {
		return dprerr.InvalidArgument("owner ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if b.ID == "" {
		b.ID = r.uuidGenerator.New()
	}
	if _, exists := r.builds[b.ID]; exists {
		return dprerr.AlreadyExistsf("build with ID '%s' already exists", b.ID).
			WithMeta("build_id", b.ID)
	}

	// Store a copy to avoid external modifications
	buildCopy := *b
	r.builds[b.ID] = &buildCopy
	r.owners[b.ID] = ownerID
	return nil
}

// Get retrieves a build by ID
func (r *InMemoryRepository) Get(ctx context.Context, id string) (*build.Build, error) {
	if id == "" {
		return nil, dprerr.InvalidArgument("build ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	b, exists := r.builds[id]
	if !exists {
		return nil, dprerr.NotFoundf("build with ID '%s' not found", id).
			WithMeta("build_id", id)
	}

	buildCopy := *b
	return &buildCopy, nil
}

// GetByOwner retrieves all builds for an owner
func (r *InMemoryRepository) GetByOwner(ctx context.Context, ownerID string) ([]*build.Build, error) {
	if ownerID == "" {
		return nil, dprerr.InvalidArgument("owner ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*build.Build
	for id, b := range r.builds {
		if r.owners[id] != ownerID {
			continue
		}
		buildCopy := *b
		result = append(result, &buildCopy)
	}
	return result, nil
}

// Update replaces an existing build
func (r *InMemoryRepository) Update(ctx context.Context, b *build.Build) error {
	if b == nil {
		return dprerr.InvalidArgument("build cannot be nil")
	}
	if b.ID == "" {
		return dprerr.InvalidArgument("build ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.builds[b.ID]; !exists {
		return dprerr.NotFoundf("build with ID '%s' not found", b.ID).
			WithMeta("build_id", b.ID)
	}

	buildCopy := *b
	r.builds[b.ID] = &buildCopy
	return nil
}

// Delete removes a build
func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return dprerr.InvalidArgument("build ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.builds[id]; !exists {
		return dprerr.NotFoundf("build with ID '%s' not found", id).
			WithMeta("build_id", id)
	}

	delete(r.builds, id)
	delete(r.owners, id)
	return nil
}
