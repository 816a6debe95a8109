package shared

// AdvantageState is the single resolved roll state for an attack
type AdvantageState string

const (
	AdvantageNormal AdvantageState = "normal"
	AdvantageAdv    AdvantageState = "advantage"
	AdvantageDisadv AdvantageState = "disadvantage"

	// AdvantageTriple is roll-three-keep-best, granted by Elven Accuracy
	AdvantageTriple AdvantageState = "triple-advantage"
)

// AllAdvantageStates lists every resolved state, in comparison-table order
func AllAdvantageStates() []AdvantageState {
	return []AdvantageState{AdvantageNormal, AdvantageAdv, AdvantageDisadv, AdvantageTriple}
}
