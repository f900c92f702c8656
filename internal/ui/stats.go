package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"pocketpet/internal/pet"
)

// StatsModel is a simple Bubble Tea model for displaying stats
type StatsModel struct {
	Name     string
	Snapshot pet.Snapshot
}

// Init implements tea.Model
func (m StatsModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m StatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, tea.Quit
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress {
			return m, tea.Quit
		}
	}
	return m, nil
}

// View implements tea.Model
func (m StatsModel) View() string {
	return RenderStatsCard(m.Name, m.Snapshot) + "\nPress ESC, click, or any key to close..."
}

// RenderStatsCard draws the boxed stats summary
func RenderStatsCard(name string, s pet.Snapshot) string {
	makeBar := func(value int) string {
		filled := value / 20
		bar := ""
		for i := 0; i < 5; i++ {
			if i < filled {
				bar += "█"
			} else {
				bar += "░"
			}
		}
		return bar
	}

	var items []string
	for _, item := range s.Inventory {
		items = append(items, item.Name)
	}
	bag := strings.Join(items, ", ")
	if bag == "" {
		bag = "Empty"
	}

	var b strings.Builder
	b.WriteString("╔════════════════════════════════════╗\n")
	b.WriteString(fmt.Sprintf("║  🐾 %-30s ║\n", name))
	b.WriteString("╠════════════════════════════════════╣\n")
	b.WriteString(fmt.Sprintf("║  Status:  %-24s ║\n", pet.GetStatusWithLabel(s.Stats)))
	b.WriteString(fmt.Sprintf("║  Bag:     %-24s ║\n", bag))
	b.WriteString("║                                    ║\n")
	b.WriteString(fmt.Sprintf("║  Happiness: [%s] %3d%%           ║\n", makeBar(s.Stats.Happiness), s.Stats.Happiness))
	b.WriteString(fmt.Sprintf("║  Hunger:    [%s] %3d%%           ║\n", makeBar(s.Stats.Hunger), s.Stats.Hunger))
	b.WriteString("╚════════════════════════════════════╝\n")
	return b.String()
}

// DisplayStats shows the stats display
func DisplayStats(name string, s pet.Snapshot) error {
	program := tea.NewProgram(StatsModel{Name: name, Snapshot: s}, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("error running stats display: %w", err)
	}
	return nil
}
