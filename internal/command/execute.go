package command

import (
	"fmt"

	"pocketpet/internal/pet"
)

// Execute carries out intent on the engine and returns feedback for the
// player. Stats, bag and help only read state.
func Execute(e *pet.Engine, intent Intent) string {
	if !intent.OK() {
		return intent.Message
	}

	switch intent.Action {
	case ActionTap:
		return fmt.Sprintf("😸 Meow! Happiness is now %d%%", e.Tap())
	case ActionLongPress:
		return fmt.Sprintf("😻 Purrrr... Happiness is now %d%%", e.LongPress())
	case ActionUse:
		item, ok := e.Consume(intent.Item.ID)
		if !ok {
			return fmt.Sprintf("The %s is already gone", intent.Item.Name)
		}
		return fmt.Sprintf("Used %s: %s is now %d%%", item.Name, item.Target, e.CurrentValue(item.Target))
	case ActionStats:
		s := e.Stats()
		return fmt.Sprintf("Happiness %d%%  Hunger %d%%  %s", s.Happiness, s.Hunger, pet.GetStatusWithLabel(s))
	case ActionInventory:
		return "Bag: " + listNames(e.Inventory())
	case ActionHelp:
		return HelpText
	case ActionQuit:
		return "Bye!"
	default:
		return HelpText
	}
}

// Run parses raw against the engine's inventory and executes it.
func Run(e *pet.Engine, raw string) (Intent, string) {
	intent := Parse(raw, e.Inventory())
	return intent, Execute(e, intent)
}
