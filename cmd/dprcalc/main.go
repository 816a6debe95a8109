package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/dnd-dpr-engine/internal/clients/dnd5e"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/config"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/build"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/combat"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/engine/dpr"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/repositories/builds"
)

func main() {
	var (
		buildFile  = flag.String("build", "", "path to a build JSON file")
		buildID    = flag.String("id", "", "load the build from Redis by ID instead of a file")
		monsterKey = flag.String("monster", "", "fetch the target from the 5e API by monster key")
		targetAC   = flag.Int("ac", 15, "target armor class when no monster is given")
		rounds     = flag.Int("rounds", 1, "rounds to project")
		accurate   = flag.Bool("accurate", false, "track spell slots and pools instead of the depletion heuristic")
		levelSweep = flag.Bool("levels", false, "sweep DPR across levels 1-20 instead of a round projection")
	)
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	b, err := loadBuild(ctx, cfg, *buildFile, *buildID)
	if err != nil {
		log.Fatalf("Failed to load build: %v", err)
	}

	target, err := loadTarget(cfg, *monsterKey, *targetAC)
	if err != nil {
		log.Fatalf("Failed to load target: %v", err)
	}

	svc := dpr.NewService(nil)

	var output any
	if *levelSweep {
		output, err = svc.LevelSweep(ctx, &dpr.LevelSweepInput{
			Build:  b,
			Target: target,
		})
	} else {
		output, err = svc.Calculate(ctx, &dpr.CalculateInput{
			Build:             b,
			Target:            target,
			Rounds:            *rounds,
			AccurateResources: *accurate,
		})
	}
	if err != nil {
		log.Fatalf("Calculation failed: %v", err)
	}

	encoded, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode result: %v", err)
	}
	fmt.Println(string(encoded))
}

func loadBuild(ctx context.Context, cfg *config.Config, buildFile, buildID string) (*build.Build, error) {
	switch {
	case buildID != "":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		repo := builds.NewRedis(client)
		return repo.Get(ctx, buildID)

	case buildFile != "":
		data, err := os.ReadFile(buildFile)
		if err != nil {
			return nil, err
		}
		var b build.Build
		if err := json.Unmarshal(data, &b); err != nil {
			return nil, err
		}
		return &b, nil

	default:
		return nil, fmt.Errorf("either -build or -id is required")
	}
}

func loadTarget(cfg *config.Config, monsterKey string, targetAC int) (*combat.Target, error) {
	if monsterKey == "" {
		return &combat.Target{Name: "Training Dummy", ArmorClass: targetAC}, nil
	}

	client, err := dnd5e.New(&dnd5e.Config{
		HttpClient: &http.Client{Timeout: 30 * time.Second},
	})
	if err != nil {
		return nil, err
	}
	return client.GetTarget(monsterKey)
}
