package pet

import "fmt"

// Stat identifies one of the pet's tracked attributes. The name doubles as
// its persistence key.
type Stat string

const (
	StatHappiness Stat = "happiness"
	StatHunger    Stat = "hunger"
)

// AllStats lists every tracked stat in display order.
var AllStats = []Stat{StatHappiness, StatHunger}

// ParseStat converts a name into a Stat.
func ParseStat(name string) (Stat, error) {
	switch Stat(name) {
	case StatHappiness, StatHunger:
		return Stat(name), nil
	default:
		return "", fmt.Errorf("unknown stat %q", name)
	}
}

// Key returns the storage key for the stat
func (s Stat) Key() string {
	return string(s)
}

// Stats holds the pet's two decaying values, each kept in [MinStat, MaxStat].
type Stats struct {
	Happiness int `json:"happiness"`
	Hunger    int `json:"hunger"`
}

// NewStats returns the first-launch stats.
func NewStats() Stats {
	return Stats{Happiness: MaxStat, Hunger: MaxStat}
}

// Clamp limits v to the valid stat range.
func Clamp(v int) int {
	return max(MinStat, min(v, MaxStat))
}

// Value returns the current value of stat, or 0 for an unknown stat.
func (s Stats) Value(stat Stat) int {
	switch stat {
	case StatHappiness:
		return s.Happiness
	case StatHunger:
		return s.Hunger
	default:
		return 0
	}
}

// Apply returns a copy of s with amount added to stat and the result clamped.
// Unknown stats leave s unchanged.
func (s Stats) Apply(stat Stat, amount int) Stats {
	switch stat {
	case StatHappiness:
		s.Happiness = addClamped(s.Happiness, amount)
	case StatHunger:
		s.Hunger = addClamped(s.Hunger, amount)
	}
	return s
}

// addClamped adds amount to v without overflowing for any int amount.
func addClamped(v, amount int) int {
	v = Clamp(v)
	if amount >= 0 {
		return min(MaxStat, v+min(amount, MaxStat))
	}
	return max(MinStat, v+max(amount, -MaxStat))
}

// Set returns a copy of s with stat set to the clamped value.
func (s Stats) Set(stat Stat, value int) Stats {
	switch stat {
	case StatHappiness:
		s.Happiness = Clamp(value)
	case StatHunger:
		s.Hunger = Clamp(value)
	}
	return s
}

// Decay returns the stats after one decay tick. Both values are computed
// from s as it was at tick start.
func (s Stats) Decay() Stats {
	return Stats{
		Happiness: Clamp(s.Happiness - DecayAmount),
		Hunger:    Clamp(s.Hunger - DecayAmount),
	}
}
