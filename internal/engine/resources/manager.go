// Package resources tracks the depletable pools a build spends during an
// encounter: spell slots and per-class point pools. The manager is the only
// stateful piece of the engine; everything else consumes snapshots.
package resources

import (
	"sort"
	"sync"

	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/combat"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/shared"
	dprerr "github.com/KirkDiggler/dnd-dpr-engine/internal/errors"
)

// Pool is one class resource (ki, rage uses, superiority dice, ...)
type Pool struct {
	Max     int             `json:"max"`
	Current int             `json:"current"`
	Rest    shared.RestType `json:"rest"` // which rest refills it
}

// Manager owns a single build's pools. Methods are safe for concurrent use,
// but spending is deterministic and sequential per build: one manager, one
// writer.
type Manager struct {
	mu      sync.Mutex
	buildID string
	slots   map[int]shared.SpellSlotInfo
	pools   map[shared.ResourceType]*Pool
}

// Config seeds a manager with a build's starting pools
type Config struct {
	BuildID    string
	SpellSlots map[int]shared.SpellSlotInfo
	Pools      map[shared.ResourceType]Pool
}

// NewManager creates a manager from explicit pool contents
func NewManager(cfg *Config) *Manager {
	m := &Manager{
		slots: make(map[int]shared.SpellSlotInfo),
		pools: make(map[shared.ResourceType]*Pool),
	}
	if cfg == nil {
		return m
	}

	m.buildID = cfg.BuildID
	for level, slot := range cfg.SpellSlots {
		m.slots[level] = slot
	}
	for rt, pool := range cfg.Pools {
		p := pool
		m.pools[rt] = &p
	}
	return m
}

// BuildID returns the owning build's ID
func (m *Manager) BuildID() string {
	return m.buildID
}

// Use spends a resource cost, rejecting underflow. Spell slot costs with no
// explicit level drain the highest available slot first.
func (m *Manager) Use(cost *combat.ResourceCost) error {
	if cost == nil {
		return nil
	}

	if cost.Type == shared.ResourceSpellSlot {
		if cost.SlotLevel > 0 {
			return m.UseSpellSlot(cost.SlotLevel)
		}
		_, err := m.UseHighestSlot()
		return err
	}

	return m.UsePool(cost.Type, cost.Amount)
}

// UseSpellSlot consumes one slot of the given level
func (m *Manager) UseSpellSlot(level int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	slot, exists := m.slots[level]
	if !exists || slot.Remaining <= 0 {
		return dprerr.ResourceExhaustedf("no level %d spell slots remaining", level)
	}

	slot.Remaining--
	m.slots[level] = slot
	return nil
}

// UseHighestSlot consumes one slot from the highest level that still has
// one, returning the level spent
func (m *Manager) UseHighestSlot() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	levels := make([]int, 0, len(m.slots))
	for level := range m.slots {
		levels = append(levels, level)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(levels)))

	for _, level := range levels {
		slot := m.slots[level]
		if slot.Remaining > 0 {
			slot.Remaining--
			m.slots[level] = slot
			return level, nil
		}
	}
	return 0, dprerr.ResourceExhausted("no spell slots remaining")
}

// UsePool spends points from a class pool, rejecting underflow
func (m *Manager) UsePool(rt shared.ResourceType, amount int) error {
	if amount <= 0 {
		amount = 1
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	pool, exists := m.pools[rt]
	if !exists {
		return dprerr.NotFoundf("build has no %s pool", rt)
	}
	if pool.Current < amount {
		return dprerr.ResourceExhaustedf("%s pool has %d of %d requested", rt, pool.Current, amount)
	}

	pool.Current -= amount
	return nil
}

// SlotsRemaining reports remaining slots at a level
func (m *Manager) SlotsRemaining(level int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slots[level].Remaining
}

// PoolRemaining reports remaining points in a class pool
func (m *Manager) PoolRemaining(rt shared.ResourceType) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	pool, exists := m.pools[rt]
	if !exists {
		return 0
	}
	return pool.Current
}

// HasAnySlot reports whether any spell slot remains
func (m *Manager) HasAnySlot() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, slot := range m.slots {
		if slot.Remaining > 0 {
			return true
		}
	}
	return false
}

// ShortRest restores pact magic slots and short-rest pools
func (m *Manager) ShortRest() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for level, slot := range m.slots {
		if slot.Source == "pact_magic" {
			slot.Remaining = slot.Max
			m.slots[level] = slot
		}
	}
	for _, pool := range m.pools {
		if pool.Rest == shared.RestTypeShort {
			pool.Current = pool.Max
		}
	}
}

// LongRest restores everything, filling spell slots from the lowest level up
func (m *Manager) LongRest() {
	m.mu.Lock()
	defer m.mu.Unlock()

	levels := make([]int, 0, len(m.slots))
	for level := range m.slots {
		levels = append(levels, level)
	}
	sort.Ints(levels)

	for _, level := range levels {
		slot := m.slots[level]
		slot.Remaining = slot.Max
		m.slots[level] = slot
	}
	for _, pool := range m.pools {
		pool.Current = pool.Max
	}
}

// Snapshot is a read-only copy for decision functions
type Snapshot struct {
	BuildID    string                       `json:"build_id"`
	SpellSlots map[int]shared.SpellSlotInfo `json:"spell_slots,omitempty"`
	Pools      map[shared.ResourceType]Pool `json:"pools,omitempty"`
}

// Snapshot copies the current pool state
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := Snapshot{
		BuildID:    m.buildID,
		SpellSlots: make(map[int]shared.SpellSlotInfo, len(m.slots)),
		Pools:      make(map[shared.ResourceType]Pool, len(m.pools)),
	}
	for level, slot := range m.slots {
		snap.SpellSlots[level] = slot
	}
	for rt, pool := range m.pools {
		snap.Pools[rt] = *pool
	}
	return snap
}

// HasAnySlot reports whether the snapshot still has a spell slot
func (s Snapshot) HasAnySlot() bool {
	for _, slot := range s.SpellSlots {
		if slot.Remaining > 0 {
			return true
		}
	}
	return false
}

// CanPay reports whether the snapshot could cover a cost
func (s Snapshot) CanPay(cost *combat.ResourceCost) bool {
	if cost == nil {
		return true
	}
	if cost.Type == shared.ResourceSpellSlot {
		if cost.SlotLevel > 0 {
			return s.SpellSlots[cost.SlotLevel].Remaining > 0
		}
		return s.HasAnySlot()
	}

	amount := cost.Amount
	if amount <= 0 {
		amount = 1
	}
	return s.Pools[cost.Type].Current >= amount
}
