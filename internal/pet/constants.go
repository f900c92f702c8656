package pet

import "time"

// Game constants
const (
	DefaultPetName   = "Mochi"
	MaxStat          = 100
	MinStat          = 0
	LowStatThreshold = 30

	// Timer intervals
	DecayInterval     = 60 * time.Second
	ReplenishInterval = 60 * time.Second

	// Stat change amounts
	DecayAmount                = 1
	TapHappinessIncrease       = 5
	LongPressHappinessIncrease = 10

	// Vitality range used to fade the pet as happiness drops
	MinVitality = 0.3
	MaxVitality = 1.0

	// Status emojis
	StatusEmojiHappy   = "😸" // Default happy status
	StatusEmojiNeutral = "🙂" // Neutral/normal state
	StatusEmojiHungry  = "🙀" // Hungry/desperate
	StatusEmojiSad     = "😿" // Sad/unhappy
	StatusEmojiLoved   = "😻" // Both stats nearly full
)

// Default inventory items
const (
	ToyName    = "Toy"
	ToyEffect  = 10
	ToyIcon    = "pets"
	FoodName   = "Food"
	FoodEffect = 30
	FoodIcon   = "fastfood"
)

// DefaultItemTemplates returns the items the inventory starts with and
// replenishes when missing.
func DefaultItemTemplates() []ItemTemplate {
	return []ItemTemplate{
		{Name: ToyName, Effect: ToyEffect, Target: StatHappiness, Icon: ToyIcon},
		{Name: FoodName, Effect: FoodEffect, Target: StatHunger, Icon: FoodIcon},
	}
}
