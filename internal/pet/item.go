package pet

import "github.com/google/uuid"

// ItemTemplate describes a kind of consumable item.
type ItemTemplate struct {
	Name   string `json:"name" yaml:"name"`
	Effect int    `json:"effect" yaml:"effect"`
	Target Stat   `json:"target" yaml:"target"`
	Icon   string `json:"icon" yaml:"icon"`
}

// Item is a single consumable in the inventory. Items are identified by ID;
// two items built from the same template are still distinct.
type Item struct {
	ID string `json:"id"`
	ItemTemplate
}

// NewIDFunc generates item identifiers. Tests may replace it.
var NewIDFunc = func() string { return uuid.NewString() }

// NewItem creates a fresh item from a template
func NewItem(t ItemTemplate) Item {
	return Item{ID: NewIDFunc(), ItemTemplate: t}
}

// HasItemNamed reports whether inv holds an item called name.
func HasItemNamed(inv []Item, name string) bool {
	for _, item := range inv {
		if item.Name == name {
			return true
		}
	}
	return false
}

// EnsureDefaults appends a new item for every template whose name is not in
// inv. It returns the resulting inventory and the items it added. The input
// slice is never modified.
func EnsureDefaults(inv []Item, templates []ItemTemplate) ([]Item, []Item) {
	out := make([]Item, len(inv), len(inv)+len(templates))
	copy(out, inv)

	var added []Item
	for _, t := range templates {
		if HasItemNamed(out, t.Name) {
			continue
		}
		item := NewItem(t)
		out = append(out, item)
		added = append(added, item)
	}
	return out, added
}

// RemoveItem removes the first item with the given ID.
func RemoveItem(inv []Item, id string) ([]Item, Item, bool) {
	for i, item := range inv {
		if item.ID != id {
			continue
		}
		out := make([]Item, 0, len(inv)-1)
		out = append(out, inv[:i]...)
		out = append(out, inv[i+1:]...)
		return out, item, true
	}
	return inv, Item{}, false
}

// FindItemByName returns the first item called name.
func FindItemByName(inv []Item, name string) (Item, bool) {
	for _, item := range inv {
		if item.Name == name {
			return item, true
		}
	}
	return Item{}, false
}
