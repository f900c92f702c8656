package pet

import (
	"log"
	"strconv"
	"strings"
)

// Store is the key-value storage the engine persists stats to.
type Store interface {
	// Get returns the value saved under key. ok is false when nothing is saved.
	Get(key string) (value string, ok bool, err error)
	// Set saves value under key.
	Set(key, value string) error
}

// loadStat reads the saved value for stat. Missing, unreadable and
// non-numeric values are reported as absent.
func loadStat(store Store, stat Stat) (int, bool) {
	raw, ok, err := store.Get(stat.Key())
	if err != nil {
		log.Printf("Error reading %s: %v", stat, err)
		return 0, false
	}
	if !ok {
		return 0, false
	}

	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		log.Printf("Ignoring malformed %s value %q", stat, raw)
		return 0, false
	}
	return Clamp(value), true
}

// persist writes the given stats to the store. Failures are logged only;
// the in-memory value stays authoritative.
func (e *Engine) persist(stats Stats, which ...Stat) {
	if e.store == nil {
		return
	}
	for _, stat := range which {
		value := strconv.Itoa(stats.Value(stat))
		if err := e.store.Set(stat.Key(), value); err != nil {
			log.Printf("Error saving %s: %v", stat, err)
		}
	}
}
