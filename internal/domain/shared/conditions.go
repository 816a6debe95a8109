package shared

// Condition represents a 5e status condition on a combatant
type Condition string

const (
	ConditionBlinded     Condition = "blinded"
	ConditionFrightened  Condition = "frightened"
	ConditionInvisible   Condition = "invisible"
	ConditionParalyzed   Condition = "paralyzed"
	ConditionPoisoned    Condition = "poisoned"
	ConditionProne       Condition = "prone"
	ConditionRestrained  Condition = "restrained"
	ConditionStunned     Condition = "stunned"
	ConditionUnconscious Condition = "unconscious"
)

// ConditionSet is a set of conditions keyed by name
type ConditionSet map[Condition]bool

// Has reports whether the condition is present
func (s ConditionSet) Has(c Condition) bool {
	return s[c]
}
