// Package dnd5e imports published monster statblocks as engine targets.
package dnd5e

//go:generate mockgen -destination=mock/mock_client.go -package=mockdnd5e . Client

import (
	"log"
	"net/http"

	apiDnd5e "github.com/fadedpez/dnd5e-api/clients/dnd5e"
	apiEntities "github.com/fadedpez/dnd5e-api/entities"

	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/combat"
	dprerr "github.com/KirkDiggler/dnd-dpr-engine/internal/errors"
)

// Client fetches monster statblocks and shapes them as targets
type Client interface {
	// GetTarget fetches one monster by key
	GetTarget(key string) (*combat.Target, error)

	// ListTargetsByCR fetches all monsters within a challenge rating range
	ListTargetsByCR(minCR, maxCR float32) ([]*combat.Target, error)
}

type client struct {
	client apiDnd5e.Interface
}

// Config holds configuration for the client
type Config struct {
	HttpClient *http.Client
}

// New creates a client backed by the public 5e API
func New(cfg *Config) (Client, error) {
	if cfg == nil {
		return nil, dprerr.InvalidArgument("cfg is required")
	}

	apiClient, err := apiDnd5e.NewDND5eAPI(&apiDnd5e.DND5eAPIConfig{
		Client: cfg.HttpClient,
	})
	if err != nil {
		return nil, err
	}

	return &client{client: apiClient}, nil
}

func (c *client) GetTarget(key string) (*combat.Target, error) {
	if key == "" {
		return nil, dprerr.InvalidArgument("monster key is required")
	}

	monster, err := c.client.GetMonster(key)
	if err != nil {
		return nil, dprerr.Wrapf(err, "failed to fetch monster '%s'", key)
	}

	target := monsterToTarget(monster)
	if target == nil {
		return nil, dprerr.NotFoundf("monster '%s' not found", key)
	}
	return target, nil
}

// ListTargetsByCR fetches every monster at each standard CR value in the
// range. The API filters by exact CR only, so the range expands to one
// request per value.
func (c *client) ListTargetsByCR(minCR, maxCR float32) ([]*combat.Target, error) {
	targets := make([]*combat.Target, 0)
	processedKeys := make(map[string]bool)

	for _, cr := range crValuesInRange(minCR, maxCR) {
		crFloat64 := float64(cr)
		refs, err := c.client.ListMonstersWithFilter(&apiDnd5e.ListMonstersInput{
			ChallengeRating: &crFloat64,
		})
		if err != nil {
			log.Printf("failed to list monsters for CR %g: %v", cr, err)
			continue
		}

		for _, ref := range refs {
			if ref.Key == "" || processedKeys[ref.Key] {
				continue
			}
			monster, err := c.client.GetMonster(ref.Key)
			if err != nil {
				log.Printf("failed to get monster %s: %v", ref.Key, err)
				continue
			}
			if target := monsterToTarget(monster); target != nil {
				targets = append(targets, target)
				processedKeys[ref.Key] = true
			}
		}
	}

	return targets, nil
}

// standard 5e challenge rating ladder
var allCRs = []float32{0, 0.125, 0.25, 0.5, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10,
	11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, 25, 26, 27, 28, 29, 30}

func crValuesInRange(minCR, maxCR float32) []float32 {
	var result []float32
	for _, cr := range allCRs {
		if cr >= minCR && cr <= maxCR {
			result = append(result, cr)
		}
	}
	return result
}

func monsterToTarget(input *apiEntities.Monster) *combat.Target {
	if input == nil {
		return nil
	}

	return &combat.Target{
		Name:       input.Name,
		Type:       input.Type,
		ArmorClass: input.ArmorClass,
		CurrentHP:  input.HitPoints,
		MaxHP:      input.HitPoints,
	}
}
