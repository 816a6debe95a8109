package builds

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/build"
	dprerr "github.com/KirkDiggler/dnd-dpr-engine/internal/errors"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/uuid"
)

// currentSchemaVersion tracks the stored JSON shape. Bump it when BuildData
// changes and teach migrateBuildData the upgrade.
const currentSchemaVersion = 1

// BuildData is the serialized form of a build in Redis
type BuildData struct {
	SchemaVersion int          `json:"schema_version"`
	OwnerID       string       `json:"owner_id"`
	Build         *build.Build `json:"build"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// redisRepo implements the Repository interface using Redis
type redisRepo struct {
	client        redis.UniversalClient
	uuidGenerator uuid.Generator
}

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client        redis.UniversalClient
	UUIDGenerator uuid.Generator
}

// NewRedisRepository creates a Redis-backed build repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg.Client == nil {
		panic("redis client is required")
	}

	gen := cfg.UUIDGenerator
	if gen == nil {
		gen = uuid.NewGoogleUUIDGenerator()
	}
	return &redisRepo{
		client:        cfg.Client,
		uuidGenerator: gen,
	}
}

// NewRedis creates a Redis-backed build repository with defaults
func NewRedis(client redis.UniversalClient) Repository {
	return NewRedisRepository(&RedisRepoConfig{
		Client:        client,
		UUIDGenerator: uuid.NewGoogleUUIDGenerator(),
	})
}

func (r *redisRepo) key(id string) string {
	return fmt.Sprintf("build:%s", id)
}

func (r *redisRepo) ownerBuildsKey(ownerID string) string {
	return fmt.Sprintf("owner:%s:builds", ownerID)
}

// Create stores a new build for an owner
func (r *redisRepo) Create(ctx context.Context, ownerID string, b *build.Build) error {
	if b == nil {
		return dprerr.InvalidArgument("build cannot be nil")
	}
	if ownerID == "" {
		return dprerr.InvalidArgument("owner ID is required")
	}
	if b.ID == "" {
		b.ID = r.uuidGenerator.New()
	}

	exists, err := r.client.Exists(ctx, r.key(b.ID)).Result()
	if err != nil {
		return fmt.Errorf("failed to check build existence: %w", err)
	}
	if exists > 0 {
		return dprerr.AlreadyExistsf("build with ID '%s' already exists", b.ID).
			WithMeta("build_id", b.ID)
	}

	now := time.Now().UTC()
	data := &BuildData{
		SchemaVersion: currentSchemaVersion,
		OwnerID:       ownerID,
		Build:         b,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal build: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.key(b.ID), string(jsonData), 0)
	pipe.SAdd(ctx, r.ownerBuildsKey(ownerID), b.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to create build: %w", err)
	}
	return nil
}

// Get retrieves a build by ID
func (r *redisRepo) Get(ctx context.Context, id string) (*build.Build, error) {
	data, err := r.getData(ctx, id)
	if err != nil {
		return nil, err
	}
	return data.Build, nil
}

// GetByOwner retrieves all builds for an owner
func (r *redisRepo) GetByOwner(ctx context.Context, ownerID string) ([]*build.Build, error) {
	if ownerID == "" {
		return nil, dprerr.InvalidArgument("owner ID is required")
	}

	ids, err := r.client.SMembers(ctx, r.ownerBuildsKey(ownerID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list build IDs: %w", err)
	}

	builds := make([]*build.Build, 0, len(ids))
	for _, id := range ids {
		b, err := r.Get(ctx, id)
		if dprerr.IsNotFound(err) {
			// Stale index entry; skip it
			continue
		}
		if err != nil {
			return nil, err
		}
		builds = append(builds, b)
	}
	return builds, nil
}

// Update replaces an existing build
func (r *redisRepo) Update(ctx context.Context, b *build.Build) error {
	if b == nil {
		return dprerr.InvalidArgument("build cannot be nil")
	}
	if b.ID == "" {
		return dprerr.InvalidArgument("build ID is required")
	}

	data, err := r.getData(ctx, b.ID)
	if err != nil {
		return err
	}

	data.SchemaVersion = currentSchemaVersion
	data.Build = b
	data.UpdatedAt = time.Now().UTC()

	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal build: %w", err)
	}
	if err := r.client.Set(ctx, r.key(b.ID), string(jsonData), 0).Err(); err != nil {
		return fmt.Errorf("failed to update build: %w", err)
	}
	return nil
}

// Delete removes a build and its owner index entry
func (r *redisRepo) Delete(ctx context.Context, id string) error {
	data, err := r.getData(ctx, id)
	if err != nil {
		return err
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, r.key(id))
	pipe.SRem(ctx, r.ownerBuildsKey(data.OwnerID), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete build: %w", err)
	}
	return nil
}

func (r *redisRepo) getData(ctx context.Context, id string) (*BuildData, error) {
	if id == "" {
		return nil, dprerr.InvalidArgument("build ID is required")
	}

	jsonData, err := r.client.Get(ctx, r.key(id)).Result()
	if err == redis.Nil {
		return nil, dprerr.NotFoundf("build with ID '%s' not found", id).
			WithMeta("build_id", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get build: %w", err)
	}

	var data BuildData
	if unmarshalErr := json.Unmarshal([]byte(jsonData), &data); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal build: %w", unmarshalErr)
	}
	migrateBuildData(&data)
	return &data, nil
}

// migrateBuildData upgrades records written by older versions in place.
// Version 0 records predate the policy block and the level floor.
func migrateBuildData(data *BuildData) {
	if data.SchemaVersion >= currentSchemaVersion || data.Build == nil {
		return
	}

	if data.Build.Level < 1 {
		data.Build.Level = 1
	}
	if data.Build.Policies.OncePerTurn == "" {
		data.Build.Policies.OncePerTurn = build.TurnPolicyBestHit
	}
	if data.Build.Policies.Resource == "" {
		data.Build.Policies.Resource = build.PolicyOptimal
	}
	if data.Build.Policies.PowerAttack == "" {
		data.Build.Policies.PowerAttack = build.PolicyOptimal
	}
	data.SchemaVersion = currentSchemaVersion
}
