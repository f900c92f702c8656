package pet

import (
	"log"
	"slices"
	"sync"
)

// State is the pet's complete mutable state.
type State struct {
	Stats     Stats  `json:"stats"`
	Inventory []Item `json:"inventory"`
}

// Snapshot is a read-only copy of State taken after a mutation. Version
// increases by one with every mutation so listeners can drop stale copies.
type Snapshot struct {
	Version   uint64
	Stats     Stats
	Inventory []Item
}

// EngineConfig allows overriding the engine's default tuning
type EngineConfig struct {
	Name            string
	Templates       []ItemTemplate
	TapAmount       int
	LongPressAmount int
}

// Engine owns the pet state. Every operation runs to completion under one
// lock, so timers and user actions never interleave.
type Engine struct {
	mu      sync.Mutex
	state   State
	version uint64
	store   Store

	name            string
	templates       []ItemTemplate
	tapAmount       int
	longPressAmount int

	listenersMu  sync.Mutex
	listeners    []listener
	nextListener int
}

type listener struct {
	id int
	fn func(Snapshot)
}

// NewEngine creates an engine at full stats with one of each default item.
// A nil store keeps state in memory only. Call Load to restore saved stats.
func NewEngine(store Store, cfg *EngineConfig) *Engine {
	e := &Engine{
		store:           store,
		name:            DefaultPetName,
		templates:       DefaultItemTemplates(),
		tapAmount:       TapHappinessIncrease,
		longPressAmount: LongPressHappinessIncrease,
	}
	if cfg != nil {
		if cfg.Name != "" {
			e.name = cfg.Name
		}
		if len(cfg.Templates) > 0 {
			e.templates = slices.Clone(cfg.Templates)
		}
		if cfg.TapAmount > 0 {
			e.tapAmount = cfg.TapAmount
		}
		if cfg.LongPressAmount > 0 {
			e.longPressAmount = cfg.LongPressAmount
		}
	}

	e.state.Stats = NewStats()
	e.state.Inventory, _ = EnsureDefaults(nil, e.templates)
	log.Printf("Created new pet: %s", e.name)
	return e
}

// Name returns the pet's display name
func (e *Engine) Name() string {
	return e.name
}

// Templates returns the default item templates the engine replenishes.
func (e *Engine) Templates() []ItemTemplate {
	return slices.Clone(e.templates)
}

// Load restores saved stats from the store. Missing or unreadable values
// keep their defaults; Load never fails.
func (e *Engine) Load() {
	if e.store == nil {
		return
	}

	e.mu.Lock()
	for _, stat := range AllStats {
		value, ok := loadStat(e.store, stat)
		if !ok {
			continue
		}
		e.state.Stats = e.state.Stats.Set(stat, value)
	}
	stats := e.state.Stats
	e.mu.Unlock()

	log.Printf("Loaded state: happiness %d, hunger %d", stats.Happiness, stats.Hunger)
}

// CurrentValue returns the current value of stat
func (e *Engine) CurrentValue(stat Stat) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Stats.Value(stat)
}

// Stats returns both current stat values
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Stats
}

// Inventory returns a copy of the current inventory
func (e *Engine) Inventory() []Item {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.state.Inventory)
}

// Snapshot returns a copy of the current state
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// DecayTick lowers both stats by one, floor-clamped at zero.
func (e *Engine) DecayTick() Stats {
	e.mu.Lock()
	e.state.Stats = e.state.Stats.Decay()
	stats := e.state.Stats
	e.persist(stats, AllStats...)
	snap := e.commitLocked()
	e.mu.Unlock()

	log.Printf("Decay tick: happiness %d, hunger %d", stats.Happiness, stats.Hunger)
	e.notify(snap)
	return stats
}

// ApplyDelta adds amount to stat, clamps the result and returns it.
func (e *Engine) ApplyDelta(stat Stat, amount int) int {
	if _, err := ParseStat(string(stat)); err != nil {
		log.Printf("Ignoring delta %d: %v", amount, err)
		return 0
	}

	e.mu.Lock()
	e.state.Stats = e.state.Stats.Apply(stat, amount)
	value := e.state.Stats.Value(stat)
	e.persist(e.state.Stats, stat)
	snap := e.commitLocked()
	e.mu.Unlock()

	log.Printf("%s changed by %d, now %d", stat, amount, value)
	e.notify(snap)
	return value
}

// Tap handles a short touch on the pet.
func (e *Engine) Tap() int {
	return e.ApplyDelta(StatHappiness, e.tapAmount)
}

// LongPress handles a long hold on the pet.
func (e *Engine) LongPress() int {
	return e.ApplyDelta(StatHappiness, e.longPressAmount)
}

// EnsureDefaults restores any default item missing from the inventory and
// returns the items that were added.
func (e *Engine) EnsureDefaults() []Item {
	e.mu.Lock()
	inv, added := EnsureDefaults(e.state.Inventory, e.templates)
	if len(added) == 0 {
		e.mu.Unlock()
		return nil
	}
	e.state.Inventory = inv
	snap := e.commitLocked()
	e.mu.Unlock()

	for _, item := range added {
		log.Printf("Replenished %s", item.Name)
	}
	e.notify(snap)
	return added
}

// Consume removes the item with the given ID and applies its effect as one
// step. A missing ID is a no-op and reports false.
func (e *Engine) Consume(id string) (Item, bool) {
	e.mu.Lock()
	item, ok := e.consumeLocked(id)
	if !ok {
		e.mu.Unlock()
		log.Printf("Item %s already used", id)
		return Item{}, false
	}
	value := e.state.Stats.Value(item.Target)
	snap := e.commitLocked()
	e.mu.Unlock()

	log.Printf("Used %s: %s changed by %d, now %d", item.Name, item.Target, item.Effect, value)
	e.notify(snap)
	return item, true
}

// ConsumeByName consumes the first inventory item called name.
func (e *Engine) ConsumeByName(name string) (Item, bool) {
	e.mu.Lock()
	found, ok := FindItemByName(e.state.Inventory, name)
	if !ok {
		e.mu.Unlock()
		log.Printf("No %s in inventory", name)
		return Item{}, false
	}
	item, _ := e.consumeLocked(found.ID)
	value := e.state.Stats.Value(item.Target)
	snap := e.commitLocked()
	e.mu.Unlock()

	log.Printf("Used %s: %s changed by %d, now %d", item.Name, item.Target, item.Effect, value)
	e.notify(snap)
	return item, true
}

func (e *Engine) consumeLocked(id string) (Item, bool) {
	inv, item, ok := RemoveItem(e.state.Inventory, id)
	if !ok {
		return Item{}, false
	}
	e.state.Inventory = inv
	e.state.Stats = e.state.Stats.Apply(item.Target, item.Effect)
	e.persist(e.state.Stats, item.Target)
	return item, true
}

// Subscribe registers fn to be called with a snapshot after every mutation.
// The returned function removes the registration.
func (e *Engine) Subscribe(fn func(Snapshot)) func() {
	e.listenersMu.Lock()
	defer e.listenersMu.Unlock()

	id := e.nextListener
	e.nextListener++
	e.listeners = append(e.listeners, listener{id: id, fn: fn})

	return func() {
		e.listenersMu.Lock()
		defer e.listenersMu.Unlock()
		e.listeners = slices.DeleteFunc(e.listeners, func(l listener) bool {
			return l.id == id
		})
	}
}

func (e *Engine) notify(snap Snapshot) {
	e.listenersMu.Lock()
	listeners := slices.Clone(e.listeners)
	e.listenersMu.Unlock()

	for _, l := range listeners {
		l.fn(snap)
	}
}

func (e *Engine) commitLocked() Snapshot {
	e.version++
	return e.snapshotLocked()
}

func (e *Engine) snapshotLocked() Snapshot {
	return Snapshot{
		Version:   e.version,
		Stats:     e.state.Stats,
		Inventory: slices.Clone(e.state.Inventory),
	}
}
