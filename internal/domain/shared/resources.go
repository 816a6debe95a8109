package shared

// ResourceType tags a depletable resource pool
type ResourceType string

const (
	ResourceSpellSlot      ResourceType = "spellSlot"
	ResourceSuperiorityDie ResourceType = "superiorityDie"
	ResourceKi             ResourceType = "ki"
	ResourceRage           ResourceType = "rage"
	ResourceBardic         ResourceType = "bardic"
	ResourceSorcery        ResourceType = "sorcery"
	ResourceWarlock        ResourceType = "warlock"
	ResourceOther          ResourceType = "other"
)

// RestType identifies which rest restores a resource
type RestType string

const (
	RestTypeShort RestType = "short"
	RestTypeLong  RestType = "long"
)

// SpellSlotInfo tracks spell slots at a specific level
type SpellSlotInfo struct {
	Max       int    `json:"max"`
	Remaining int    `json:"remaining"`
	Source    string `json:"source"` // "spellcasting" or "pact_magic"
}
