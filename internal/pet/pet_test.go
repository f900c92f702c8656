package pet

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"testing"
)

// testStore is an in-memory Store that can be told to fail
type testStore struct {
	mu       sync.Mutex
	values   map[string]string
	failGet  bool
	failSet  bool
	setCalls int
}

func newTestStore() *testStore {
	return &testStore{values: make(map[string]string)}
}

func (s *testStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failGet {
		return "", false, errors.New("read failed")
	}
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *testStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setCalls++
	if s.failSet {
		return errors.New("write failed")
	}
	s.values[key] = value
	return nil
}

func (s *testStore) value(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[key]
}

func inventoryNames(inv []Item) []string {
	var names []string
	for _, item := range inv {
		names = append(names, item.Name)
	}
	return names
}

func countNamed(inv []Item, name string) int {
	n := 0
	for _, item := range inv {
		if item.Name == name {
			n++
		}
	}
	return n
}

func TestNewEngine(t *testing.T) {
	e := NewEngine(nil, nil)

	if got := e.CurrentValue(StatHappiness); got != MaxStat {
		t.Errorf("Expected initial happiness to be %d, got %d", MaxStat, got)
	}
	if got := e.CurrentValue(StatHunger); got != MaxStat {
		t.Errorf("Expected initial hunger to be %d, got %d", MaxStat, got)
	}

	inv := e.Inventory()
	if len(inv) != 2 {
		t.Fatalf("Expected 2 starting items, got %v", inventoryNames(inv))
	}
	if inv[0].Name != ToyName || inv[1].Name != FoodName {
		t.Errorf("Expected [Toy Food], got %v", inventoryNames(inv))
	}
	if inv[0].ID == "" || inv[0].ID == inv[1].ID {
		t.Errorf("Expected distinct non-empty item IDs, got %q and %q", inv[0].ID, inv[1].ID)
	}
	if e.Name() != DefaultPetName {
		t.Errorf("Expected pet name %s, got %s", DefaultPetName, e.Name())
	}
}

func TestEngineConfigOverrides(t *testing.T) {
	e := NewEngine(nil, &EngineConfig{
		Name:            "Biscuit",
		Templates:       []ItemTemplate{{Name: "Bone", Effect: 15, Target: StatHunger, Icon: "bone"}},
		TapAmount:       2,
		LongPressAmount: 7,
	})
	e.ApplyDelta(StatHappiness, -50)

	if got := e.Tap(); got != 52 {
		t.Errorf("Expected tap to raise happiness to 52, got %d", got)
	}
	if got := e.LongPress(); got != 59 {
		t.Errorf("Expected long press to raise happiness to 59, got %d", got)
	}
	if names := inventoryNames(e.Inventory()); len(names) != 1 || names[0] != "Bone" {
		t.Errorf("Expected inventory [Bone], got %v", names)
	}
	if e.Name() != "Biscuit" {
		t.Errorf("Expected name Biscuit, got %s", e.Name())
	}
}

func TestApplyDeltaClamps(t *testing.T) {
	tests := []struct {
		name     string
		start    int
		amount   int
		expected int
	}{
		{"Tap at full happiness stays at max", 100, TapHappinessIncrease, 100},
		{"Positive delta below ceiling", 50, 10, 60},
		{"Positive delta crossing ceiling", 95, 30, 100},
		{"Negative delta above floor", 50, -20, 30},
		{"Negative delta crossing floor", 5, -20, 0},
		{"Zero delta", 42, 0, 42},
		{"Largest int delta", 99, math.MaxInt, 100},
		{"Smallest int delta", 1, math.MinInt, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine(nil, nil)
			e.ApplyDelta(StatHunger, tt.start-MaxStat)
			got := e.ApplyDelta(StatHunger, tt.amount)
			if got != tt.expected {
				t.Errorf("Expected %d, got %d", tt.expected, got)
			}
			if cur := e.CurrentValue(StatHunger); cur != tt.expected {
				t.Errorf("Expected current value %d, got %d", tt.expected, cur)
			}
		})
	}
}

func TestConsumeHugeEffect(t *testing.T) {
	e := NewEngine(nil, &EngineConfig{
		Templates: []ItemTemplate{{Name: "Cake", Effect: math.MaxInt, Target: StatHunger, Icon: "cake"}},
	})
	e.DecayTick()

	if _, ok := e.ConsumeByName("Cake"); !ok {
		t.Fatal("Expected Cake to be consumed")
	}
	if got := e.CurrentValue(StatHunger); got != MaxStat {
		t.Errorf("Expected hunger %d after Cake, got %d", MaxStat, got)
	}
}

func TestApplyDeltaUnknownStat(t *testing.T) {
	store := newTestStore()
	e := NewEngine(store, nil)

	if got := e.ApplyDelta(Stat("energy"), 10); got != 0 {
		t.Errorf("Expected 0 for unknown stat, got %d", got)
	}
	if store.setCalls != 0 {
		t.Errorf("Expected no writes for unknown stat, got %d", store.setCalls)
	}
	if e.Stats() != NewStats() {
		t.Errorf("Expected stats unchanged, got %+v", e.Stats())
	}
}

func TestDecayTick(t *testing.T) {
	store := newTestStore()
	e := NewEngine(store, nil)

	for i := 0; i < 5; i++ {
		e.DecayTick()
	}

	if got := e.CurrentValue(StatHappiness); got != 95 {
		t.Errorf("Expected happiness 95 after 5 ticks, got %d", got)
	}
	if got := e.CurrentValue(StatHunger); got != 95 {
		t.Errorf("Expected hunger 95 after 5 ticks, got %d", got)
	}
	if store.value("happiness") != "95" || store.value("hunger") != "95" {
		t.Errorf("Expected both keys persisted as 95, got %q and %q", store.value("happiness"), store.value("hunger"))
	}
}

func TestDecayTickFloor(t *testing.T) {
	e := NewEngine(nil, nil)
	e.ApplyDelta(StatHappiness, -MaxStat)
	e.ApplyDelta(StatHunger, -MaxStat+1)

	stats := e.DecayTick()
	if stats.Happiness != 0 || stats.Hunger != 0 {
		t.Errorf("Expected both stats at 0, got %+v", stats)
	}

	stats = e.DecayTick()
	if stats.Happiness != 0 || stats.Hunger != 0 {
		t.Errorf("Expected stats to stay at 0, got %+v", stats)
	}
}

func TestStatsStayInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	e := NewEngine(nil, nil)

	for i := 0; i < 2000; i++ {
		switch rng.Intn(4) {
		case 0:
			e.DecayTick()
		case 1:
			e.ApplyDelta(StatHappiness, rng.Intn(301)-150)
		case 2:
			e.ApplyDelta(StatHunger, rng.Intn(301)-150)
		case 3:
			e.Tap()
		}

		s := e.Stats()
		if s.Happiness < MinStat || s.Happiness > MaxStat || s.Hunger < MinStat || s.Hunger > MaxStat {
			t.Fatalf("Step %d: stats out of range: %+v", i, s)
		}
	}
}

func TestTapAndLongPress(t *testing.T) {
	store := newTestStore()
	e := NewEngine(store, nil)
	e.ApplyDelta(StatHappiness, -50)

	if got := e.Tap(); got != 55 {
		t.Errorf("Expected tap to give 55, got %d", got)
	}
	if got := e.LongPress(); got != 65 {
		t.Errorf("Expected long press to give 65, got %d", got)
	}
	if store.value("happiness") != "65" {
		t.Errorf("Expected happiness persisted as 65, got %q", store.value("happiness"))
	}
	if _, ok := store.values["hunger"]; ok {
		t.Error("Tap and long press should not write hunger")
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		saved     map[string]string
		failGet   bool
		happiness int
		hunger    int
	}{
		{"Nothing saved keeps defaults", nil, false, 100, 100},
		{"Both values restored", map[string]string{"happiness": "42", "hunger": "17"}, false, 42, 17},
		{"Only one value saved", map[string]string{"hunger": "3"}, false, 100, 3},
		{"Malformed value is ignored", map[string]string{"happiness": "lots", "hunger": "50"}, false, 100, 50},
		{"Surrounding whitespace is accepted", map[string]string{"happiness": " 61\n"}, false, 61, 100},
		{"Out of range values are clamped", map[string]string{"happiness": "250", "hunger": "-4"}, false, 100, 0},
		{"Read failure keeps defaults", map[string]string{"happiness": "10"}, true, 100, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore()
			for k, v := range tt.saved {
				store.values[k] = v
			}
			store.failGet = tt.failGet

			e := NewEngine(store, nil)
			e.Load()

			if got := e.CurrentValue(StatHappiness); got != tt.happiness {
				t.Errorf("Expected happiness %d, got %d", tt.happiness, got)
			}
			if got := e.CurrentValue(StatHunger); got != tt.hunger {
				t.Errorf("Expected hunger %d, got %d", tt.hunger, got)
			}
		})
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	store := newTestStore()
	e := NewEngine(store, nil)
	e.ApplyDelta(StatHappiness, 42-MaxStat)

	reloaded := NewEngine(store, nil)
	reloaded.Load()

	if got := reloaded.CurrentValue(StatHappiness); got != 42 {
		t.Errorf("Expected happiness 42 after reload, got %d", got)
	}
}

func TestWriteFailureIsNotFatal(t *testing.T) {
	store := newTestStore()
	store.failSet = true
	e := NewEngine(store, nil)

	e.DecayTick()
	e.Tap()

	if got := e.CurrentValue(StatHappiness); got != 100 {
		t.Errorf("Expected in-memory happiness 100, got %d", got)
	}
	if got := e.CurrentValue(StatHunger); got != 99 {
		t.Errorf("Expected in-memory hunger 99, got %d", got)
	}

	// Next successful write resynchronizes storage
	store.failSet = false
	e.DecayTick()
	if store.value("happiness") != "99" || store.value("hunger") != "98" {
		t.Errorf("Expected storage to catch up, got %q and %q", store.value("happiness"), store.value("hunger"))
	}
}

func TestConsume(t *testing.T) {
	store := newTestStore()
	e := NewEngine(store, nil)
	e.ApplyDelta(StatHunger, -50)

	food, ok := FindItemByName(e.Inventory(), FoodName)
	if !ok {
		t.Fatal("Expected Food in starting inventory")
	}

	used, ok := e.Consume(food.ID)
	if !ok {
		t.Fatal("Expected Food to be consumed")
	}
	if used.ID != food.ID {
		t.Errorf("Expected consumed item %s, got %s", food.ID, used.ID)
	}
	if got := e.CurrentValue(StatHunger); got != 80 {
		t.Errorf("Expected hunger 80 after Food, got %d", got)
	}
	if got := e.CurrentValue(StatHappiness); got != 100 {
		t.Errorf("Expected happiness untouched, got %d", got)
	}
	if store.value("hunger") != "80" {
		t.Errorf("Expected hunger persisted as 80, got %q", store.value("hunger"))
	}
	if names := inventoryNames(e.Inventory()); len(names) != 1 || names[0] != ToyName {
		t.Errorf("Expected inventory [Toy], got %v", names)
	}
}

func TestConsumeTwiceIsNoOp(t *testing.T) {
	store := newTestStore()
	e := NewEngine(store, nil)
	e.ApplyDelta(StatHappiness, -50)

	toy, _ := FindItemByName(e.Inventory(), ToyName)
	if _, ok := e.Consume(toy.ID); !ok {
		t.Fatal("Expected first consume to succeed")
	}

	before := e.Snapshot()
	writes := store.setCalls
	notified := false
	e.Subscribe(func(Snapshot) { notified = true })

	if _, ok := e.Consume(toy.ID); ok {
		t.Error("Expected second consume of the same item to report false")
	}

	after := e.Snapshot()
	if after.Stats != before.Stats {
		t.Errorf("Expected stats unchanged, got %+v want %+v", after.Stats, before.Stats)
	}
	if len(after.Inventory) != len(before.Inventory) {
		t.Errorf("Expected inventory unchanged, got %v", inventoryNames(after.Inventory))
	}
	if after.Version != before.Version {
		t.Errorf("Expected version unchanged, got %d want %d", after.Version, before.Version)
	}
	if store.setCalls != writes {
		t.Error("Expected no persistence write for a missing item")
	}
	if notified {
		t.Error("Expected no notification for a missing item")
	}
}

func TestConsumeByName(t *testing.T) {
	e := NewEngine(nil, nil)
	e.ApplyDelta(StatHappiness, -30)

	item, ok := e.ConsumeByName(ToyName)
	if !ok || item.Name != ToyName {
		t.Fatalf("Expected Toy to be consumed, got %+v %v", item, ok)
	}
	if got := e.CurrentValue(StatHappiness); got != 80 {
		t.Errorf("Expected happiness 80, got %d", got)
	}
	if _, ok := e.ConsumeByName(ToyName); ok {
		t.Error("Expected no second Toy")
	}
}

func TestConcurrentConsumeRemovesOnce(t *testing.T) {
	e := NewEngine(nil, nil)
	e.ApplyDelta(StatHunger, -90)
	food, _ := FindItemByName(e.Inventory(), FoodName)

	var wg sync.WaitGroup
	var mu sync.Mutex
	successes := 0
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := e.Consume(food.ID); ok {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if successes != 1 {
		t.Errorf("Expected exactly one successful consume, got %d", successes)
	}
	if got := e.CurrentValue(StatHunger); got != 40 {
		t.Errorf("Expected hunger 40 after one Food, got %d", got)
	}
}

func TestEngineEnsureDefaults(t *testing.T) {
	e := NewEngine(nil, nil)

	if added := e.EnsureDefaults(); len(added) != 0 {
		t.Errorf("Expected nothing added to a full inventory, got %v", inventoryNames(added))
	}

	toy, _ := FindItemByName(e.Inventory(), ToyName)
	e.Consume(toy.ID)

	added := e.EnsureDefaults()
	if len(added) != 1 || added[0].Name != ToyName {
		t.Fatalf("Expected Toy to be replenished, got %v", inventoryNames(added))
	}
	if added[0].ID == toy.ID {
		t.Error("Expected replenished item to get a new ID")
	}

	first := e.Inventory()
	e.EnsureDefaults()
	second := e.Inventory()
	if fmt.Sprint(first) != fmt.Sprint(second) {
		t.Errorf("Expected EnsureDefaults to be idempotent, got %v then %v", first, second)
	}
}

func TestSubscribe(t *testing.T) {
	e := NewEngine(nil, nil)

	var got []Snapshot
	unsubscribe := e.Subscribe(func(s Snapshot) { got = append(got, s) })

	e.Tap()
	e.DecayTick()
	toy, _ := FindItemByName(e.Inventory(), ToyName)
	e.Consume(toy.ID)
	e.EnsureDefaults()

	if len(got) != 4 {
		t.Fatalf("Expected 4 notifications, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Version <= got[i-1].Version {
			t.Errorf("Expected increasing versions, got %d then %d", got[i-1].Version, got[i].Version)
		}
	}
	if got[1].Stats.Hunger != 99 {
		t.Errorf("Expected decay snapshot hunger 99, got %d", got[1].Stats.Hunger)
	}
	if countNamed(got[2].Inventory, ToyName) != 0 {
		t.Error("Expected consume snapshot without Toy")
	}

	unsubscribe()
	e.Tap()
	if len(got) != 4 {
		t.Errorf("Expected no notifications after unsubscribe, got %d", len(got))
	}
}

func TestListenerCanCallEngine(t *testing.T) {
	e := NewEngine(nil, nil)

	var seen int
	e.Subscribe(func(Snapshot) {
		seen = e.CurrentValue(StatHunger)
	})
	e.DecayTick()

	if seen != 99 {
		t.Errorf("Expected listener to read hunger 99, got %d", seen)
	}
}

func TestEndToEndScenario(t *testing.T) {
	store := newTestStore()
	e := NewEngine(store, nil)

	e.Tap()
	if got := e.CurrentValue(StatHappiness); got != 100 {
		t.Errorf("Expected tap at full happiness to stay 100, got %d", got)
	}

	for i := 0; i < 5; i++ {
		e.DecayTick()
	}

	food, _ := FindItemByName(e.Inventory(), FoodName)
	if _, ok := e.Consume(food.ID); !ok {
		t.Fatal("Expected Food to be consumed")
	}
	if got := e.CurrentValue(StatHunger); got != 100 {
		t.Errorf("Expected hunger clamped at 100, got %d", got)
	}
	if names := inventoryNames(e.Inventory()); len(names) != 1 || names[0] != ToyName {
		t.Errorf("Expected inventory [Toy], got %v", names)
	}

	e.EnsureDefaults()

	if got := e.CurrentValue(StatHappiness); got != 95 {
		t.Errorf("Expected final happiness 95, got %d", got)
	}
	if got := e.CurrentValue(StatHunger); got != 100 {
		t.Errorf("Expected final hunger 100, got %d", got)
	}
	inv := e.Inventory()
	if len(inv) != 2 || countNamed(inv, ToyName) != 1 || countNamed(inv, FoodName) != 1 {
		t.Errorf("Expected exactly one Toy and one Food, got %v", inventoryNames(inv))
	}
	if store.value("happiness") != "95" || store.value("hunger") != "100" {
		t.Errorf("Expected persisted 95/100, got %q/%q", store.value("happiness"), store.value("hunger"))
	}
}
