package builds

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/dnd-dpr-engine/internal/dice"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/build"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/shared"
	dprerr "github.com/KirkDiggler/dnd-dpr-engine/internal/errors"
)

// staticGenerator returns a fixed ID so key expectations stay deterministic
type staticGenerator struct{ id string }

func (g *staticGenerator) New() string { return g.id }

type RedisRepoTestSuite struct {
	suite.Suite
	mock redismock.ClientMock
	repo Repository
}

func (s *RedisRepoTestSuite) SetupTest() {
	db, mock := redismock.NewClientMock()
	s.mock = mock
	s.repo = NewRedisRepository(&RedisRepoConfig{
		Client:        db,
		UUIDGenerator: &staticGenerator{id: "generated-id"},
	})
}

func (s *RedisRepoTestSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
}

func TestRedisRepoTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepoTestSuite))
}

func (s *RedisRepoTestSuite) testBuild() *build.Build {
	return &build.Build{
		ID:    "test-id",
		Name:  "Test Fighter",
		Class: build.ClassFighter,
		Level: 5,
		Abilities: map[build.Ability]int{
			build.AbilityStrength: 16,
		},
		MainHand: &build.Weapon{
			Key:        "longsword",
			Name:       "Longsword",
			Damage:     dice.MustParse("1d8"),
			DamageType: shared.DamageTypeSlashing,
			Range:      "Melee",
		},
		Policies: build.Policies{
			Resource:    build.PolicyOptimal,
			PowerAttack: build.PolicyOptimal,
			OncePerTurn: build.TurnPolicyBestHit,
		},
	}
}

func (s *RedisRepoTestSuite) TestCreate_HappyPath() {
	b := s.testBuild()

	s.mock.ExpectExists("build:test-id").SetVal(0)
	s.mock.Regexp().ExpectSet("build:test-id", `.*"schema_version":1.*`, 0).SetVal("OK")
	s.mock.ExpectSAdd("owner:owner-1:builds", "test-id").SetVal(1)

	s.NoError(s.repo.Create(context.Background(), "owner-1", b))
}

func (s *RedisRepoTestSuite) TestCreate_GeneratesIDWhenMissing() {
	b := s.testBuild()
	b.ID = ""

	s.mock.ExpectExists("build:generated-id").SetVal(0)
	s.mock.Regexp().ExpectSet("build:generated-id", `.*`, 0).SetVal("OK")
	s.mock.ExpectSAdd("owner:owner-1:builds", "generated-id").SetVal(1)

	s.NoError(s.repo.Create(context.Background(), "owner-1", b))
	s.Equal("generated-id", b.ID)
}

func (s *RedisRepoTestSuite) TestCreate_AlreadyExists() {
	s.mock.ExpectExists("build:test-id").SetVal(1)

	err := s.repo.Create(context.Background(), "owner-1", s.testBuild())
	s.Error(err)
	s.True(dprerr.Is(err, dprerr.CodeAlreadyExists))
}

func (s *RedisRepoTestSuite) TestCreate_Validation() {
	err := s.repo.Create(context.Background(), "owner-1", nil)
	s.True(dprerr.IsInvalidArgument(err))

	err = s.repo.Create(context.Background(), "", s.testBuild())
	s.True(dprerr.IsInvalidArgument(err))
}

func (s *RedisRepoTestSuite) TestGet_HappyPath() {
	stored, err := json.Marshal(&BuildData{
		SchemaVersion: currentSchemaVersion,
		OwnerID:       "owner-1",
		Build:         s.testBuild(),
	})
	s.Require().NoError(err)

	s.mock.ExpectGet("build:test-id").SetVal(string(stored))

	b, err := s.repo.Get(context.Background(), "test-id")
	s.Require().NoError(err)
	s.Equal("Test Fighter", b.Name)
	s.Equal(build.ClassFighter, b.Class)
	s.Equal(5, b.Level)
}

func (s *RedisRepoTestSuite) TestGet_NotFound() {
	s.mock.ExpectGet("build:missing").RedisNil()

	_, err := s.repo.Get(context.Background(), "missing")
	s.Error(err)
	s.True(dprerr.IsNotFound(err))
}

func (s *RedisRepoTestSuite) TestGet_MigratesLegacyRecord() {
	legacy := s.testBuild()
	legacy.Level = 0
	legacy.Policies = build.Policies{}

	stored, err := json.Marshal(&BuildData{
		SchemaVersion: 0,
		OwnerID:       "owner-1",
		Build:         legacy,
	})
	s.Require().NoError(err)

	s.mock.ExpectGet("build:test-id").SetVal(string(stored))

	b, err := s.repo.Get(context.Background(), "test-id")
	s.Require().NoError(err)
	s.Equal(1, b.Level, "legacy records floor the level")
	s.Equal(build.TurnPolicyBestHit, b.Policies.OncePerTurn)
	s.Equal(build.PolicyOptimal, b.Policies.Resource)
}

func (s *RedisRepoTestSuite) TestGetByOwner() {
	stored, err := json.Marshal(&BuildData{
		SchemaVersion: currentSchemaVersion,
		OwnerID:       "owner-1",
		Build:         s.testBuild(),
	})
	s.Require().NoError(err)

	s.mock.ExpectSMembers("owner:owner-1:builds").SetVal([]string{"test-id", "stale-id"})
	s.mock.ExpectGet("build:test-id").SetVal(string(stored))
	s.mock.ExpectGet("build:stale-id").RedisNil()

	result, err := s.repo.GetByOwner(context.Background(), "owner-1")
	s.Require().NoError(err)
	s.Len(result, 1, "stale index entries are skipped")
	s.Equal("test-id", result[0].ID)
}

func (s *RedisRepoTestSuite) TestUpdate_HappyPath() {
	stored, err := json.Marshal(&BuildData{
		SchemaVersion: currentSchemaVersion,
		OwnerID:       "owner-1",
		Build:         s.testBuild(),
	})
	s.Require().NoError(err)

	updated := s.testBuild()
	updated.Level = 6

	s.mock.ExpectGet("build:test-id").SetVal(string(stored))
	s.mock.Regexp().ExpectSet("build:test-id", `.*"level":6.*`, 0).SetVal("OK")

	s.NoError(s.repo.Update(context.Background(), updated))
}

func (s *RedisRepoTestSuite) TestUpdate_NotFound() {
	s.mock.ExpectGet("build:test-id").RedisNil()

	err := s.repo.Update(context.Background(), s.testBuild())
	s.True(dprerr.IsNotFound(err))
}

func (s *RedisRepoTestSuite) TestDelete_HappyPath() {
	stored, err := json.Marshal(&BuildData{
		SchemaVersion: currentSchemaVersion,
		OwnerID:       "owner-1",
		Build:         s.testBuild(),
	})
	s.Require().NoError(err)

	s.mock.ExpectGet("build:test-id").SetVal(string(stored))
	s.mock.ExpectDel("build:test-id").SetVal(1)
	s.mock.ExpectSRem("owner:owner-1:builds", "test-id").SetVal(1)

	s.NoError(s.repo.Delete(context.Background(), "test-id"))
}
