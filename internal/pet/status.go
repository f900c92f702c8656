package pet

// GetStatus returns the status emoji for the given stats
func GetStatus(s Stats) string {
	// Most critical need first
	if s.Hunger < LowStatThreshold && s.Hunger <= s.Happiness {
		return StatusEmojiHungry
	}
	if s.Happiness < LowStatThreshold {
		return StatusEmojiSad
	}
	if s.Hunger < LowStatThreshold {
		return StatusEmojiHungry
	}

	avg := (s.Happiness + s.Hunger) / 2
	switch {
	case avg >= 95:
		return StatusEmojiLoved
	case avg >= 60:
		return StatusEmojiHappy
	default:
		return StatusEmojiNeutral
	}
}

// GetStatusWithLabel returns status with a text label for the UI
func GetStatusWithLabel(s Stats) string {
	status := GetStatus(s)
	switch status {
	case StatusEmojiHungry:
		return status + " Hungry"
	case StatusEmojiSad:
		return status + " Sad"
	case StatusEmojiLoved:
		return status + " Loved"
	case StatusEmojiHappy:
		return status + " Happy"
	default:
		return status + " Okay"
	}
}

// Vitality maps happiness onto [MinVitality, MaxVitality]. The UI fades the
// pet with it; it never feeds back into state.
func Vitality(happiness int) float64 {
	h := float64(Clamp(happiness)) / MaxStat
	return MinVitality + h*(MaxVitality-MinVitality)
}
