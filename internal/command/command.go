// Package command turns typed text such as "pet", "use food" or "fed" into
// pet actions, tolerating small typos.
package command

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"

	"pocketpet/internal/pet"
)

// Action is what a typed command asks for
type Action int

const (
	ActionUnknown Action = iota
	ActionTap
	ActionLongPress
	ActionUse
	ActionStats
	ActionInventory
	ActionHelp
	ActionQuit
)

// Intent is the result of parsing one command line.
type Intent struct {
	Raw    string
	Action Action
	// Item is the resolved inventory item for ActionUse
	Item pet.Item
	// Message explains why nothing could be resolved
	Message string
}

// OK reports whether the intent can be carried out
func (i Intent) OK() bool {
	return i.Action != ActionUnknown && i.Message == ""
}

type verb struct {
	action Action
	// target picks an item by stat for shortcuts like "feed"
	target pet.Stat
}

var verbs = map[string]verb{
	"tap":       {action: ActionTap},
	"pat":       {action: ActionTap},
	"pet":       {action: ActionTap},
	"hold":      {action: ActionLongPress},
	"hug":       {action: ActionLongPress},
	"cuddle":    {action: ActionLongPress},
	"press":     {action: ActionLongPress},
	"use":       {action: ActionUse},
	"give":      {action: ActionUse},
	"feed":      {action: ActionUse, target: pet.StatHunger},
	"play":      {action: ActionUse, target: pet.StatHappiness},
	"stats":     {action: ActionStats},
	"status":    {action: ActionStats},
	"inventory": {action: ActionInventory},
	"bag":       {action: ActionInventory},
	"items":     {action: ActionInventory},
	"help":      {action: ActionHelp},
	"quit":      {action: ActionQuit},
	"exit":      {action: ActionQuit},
}

// HelpText lists the commands
const HelpText = "Commands: tap, hold, use <item>, feed, play, stats, bag, help, quit"

// Parse resolves raw against the known verbs and the given inventory.
func Parse(raw string, inventory []pet.Item) Intent {
	intent := Intent{Raw: raw}
	tokens := strings.Fields(strings.ToLower(raw))
	if len(tokens) == 0 {
		intent.Message = "Type a command. " + HelpText
		return intent
	}

	name, ok := matchVerb(tokens[0])
	if !ok {
		intent.Message = fmt.Sprintf("I don't know how to %q. %s", tokens[0], HelpText)
		return intent
	}
	v := verbs[name]
	intent.Action = v.action
	if v.action != ActionUse {
		return intent
	}

	if v.target != "" {
		for _, item := range inventory {
			if item.Target == v.target {
				intent.Item = item
				return intent
			}
		}
		intent.Message = fmt.Sprintf("Nothing in the bag for %s", v.target)
		return intent
	}

	args := strings.Join(tokens[1:], " ")
	if args == "" {
		intent.Message = "Use what? You have: " + listNames(inventory)
		return intent
	}
	item, ok := matchItem(args, inventory)
	if !ok {
		intent.Message = fmt.Sprintf("No %q in the bag. You have: %s", args, listNames(inventory))
		return intent
	}
	intent.Item = item
	return intent
}

func matchVerb(word string) (string, bool) {
	if _, ok := verbs[word]; ok {
		return word, true
	}

	best, bestDist := "", -1
	for alias := range verbs {
		dist := levenshtein.ComputeDistance(word, alias)
		if dist > levenshteinLimit(len(alias)) {
			continue
		}
		// Ties break alphabetically so parsing is deterministic
		if bestDist < 0 || dist < bestDist || (dist == bestDist && alias < best) {
			best, bestDist = alias, dist
		}
	}
	return best, bestDist >= 0
}

func matchItem(name string, inventory []pet.Item) (pet.Item, bool) {
	for _, item := range inventory {
		if strings.EqualFold(item.Name, name) {
			return item, true
		}
	}

	var best pet.Item
	bestDist := -1
	for _, item := range inventory {
		candidate := strings.ToLower(item.Name)
		dist := levenshtein.ComputeDistance(name, candidate)
		if dist > levenshteinLimit(len(candidate)) {
			continue
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = item, dist
		}
	}
	return best, bestDist >= 0
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 3:
		return 0
	case length <= 5:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

func listNames(inventory []pet.Item) string {
	if len(inventory) == 0 {
		return "nothing"
	}
	names := make([]string, 0, len(inventory))
	for _, item := range inventory {
		names = append(names, item.Name)
	}
	return strings.Join(names, ", ")
}
