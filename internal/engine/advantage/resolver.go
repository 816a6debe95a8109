// Package advantage merges independently-triggered advantage and
// disadvantage sources into the single resolved state a roll uses.
package advantage

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/build"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/shared"
)

// Resolution is the merged outcome plus the trail of contributing sources
type Resolution struct {
	State               shared.AdvantageState
	AdvantageSources    []string
	DisadvantageSources []string

	// Reasoning is a human-readable explanation for display and debugging
	Reasoning string
}

// Resolver applies a source catalog to a combat snapshot
type Resolver struct {
	catalog []Source
}

// NewResolver creates a resolver; with no sources it uses the default catalog
func NewResolver(sources ...Source) *Resolver {
	if len(sources) == 0 {
		sources = DefaultCatalog()
	}
	return &Resolver{catalog: sources}
}

// Resolve merges every triggered source into one state. Any advantage plus
// any disadvantage cancels to normal regardless of how many of each fired;
// pure advantage upgrades to triple-advantage with Elven Accuracy.
func (r *Resolver) Resolve(in Input) Resolution {
	var advNames, disadvNames []string

	for _, src := range r.catalog {
		if src.Applies == nil || !src.Applies(in) {
			continue
		}
		switch src.Kind {
		case KindAdvantage:
			advNames = append(advNames, src.Description)
		case KindDisadvantage:
			disadvNames = append(disadvNames, src.Description)
		}
	}

	res := Resolution{
		AdvantageSources:    advNames,
		DisadvantageSources: disadvNames,
	}

	switch {
	case len(advNames) > 0 && len(disadvNames) > 0:
		res.State = shared.AdvantageNormal
		res.Reasoning = fmt.Sprintf("advantage (%s) cancels disadvantage (%s)",
			strings.Join(advNames, ", "), strings.Join(disadvNames, ", "))
	case len(advNames) > 0:
		if in.Build.HasFeature(build.FeatureElvenAccuracy) {
			res.State = shared.AdvantageTriple
			res.Reasoning = fmt.Sprintf("advantage from %s, rolling three dice with Elven Accuracy",
				strings.Join(advNames, ", "))
		} else {
			res.State = shared.AdvantageAdv
			res.Reasoning = fmt.Sprintf("advantage from %s", strings.Join(advNames, ", "))
		}
	case len(disadvNames) > 0:
		res.State = shared.AdvantageDisadv
		res.Reasoning = fmt.Sprintf("disadvantage from %s", strings.Join(disadvNames, ", "))
	default:
		res.State = shared.AdvantageNormal
		res.Reasoning = "no advantage or disadvantage sources apply"
	}

	return res
}
