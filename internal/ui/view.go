package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"pocketpet/internal/pet"
)

const (
	accentColor     = "#FF75B5"
	happinessColor  = "#FFC93C"
	hungerColor     = "#7BD389"
	backgroundColor = "#2B2B2B"
	barWidth        = 20
)

var gameStyles = struct {
	title   lipgloss.Style
	status  lipgloss.Style
	menu    lipgloss.Style
	menuBox lipgloss.Style
	modal   lipgloss.Style
	prompt  lipgloss.Style
}{
	title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(accentColor)).
		Padding(0, 1),

	status: lipgloss.NewStyle().
		Foreground(lipgloss.Color(accentColor)).
		Width(40),

	menu: lipgloss.NewStyle().
		Foreground(lipgloss.Color(accentColor)),

	menuBox: lipgloss.NewStyle().
		Padding(0, 2),

	modal: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(accentColor)).
		Padding(0, 2),

	prompt: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(hungerColor)),
}

// petFace is drawn in the pet's colour, faded as happiness drops
const petFace = `
   /\_/\
  ( o.o )
   > ^ <
`

// View implements tea.Model
func (m Model) View() string {
	if m.Quitting {
		return "Thanks for playing!\n"
	}
	if m.InCheatMenu {
		return m.renderCheatMenu()
	}

	title := gameStyles.title.Render("🐾 " + m.Engine.Name() + " 🐾")

	var body string
	switch {
	case m.ShowingInventory:
		body = m.renderInventory()
	case m.Animation.Type != AnimNone:
		body = m.renderAnimation()
	default:
		body = m.renderPet()
	}

	sections := []string{
		title,
		"",
		m.renderBars(),
		gameStyles.status.Render("Status: " + pet.GetStatusWithLabel(m.Snapshot.Stats)),
		"",
		body,
	}

	if m.Message != "" && time.Now().Before(m.MessageExpires) {
		sections = append(sections, "", gameStyles.status.Render(m.Message))
	}

	if m.Typing {
		sections = append(sections, "", gameStyles.prompt.Render(": "+m.Input+"█"))
	}

	sections = append(sections, "", gameStyles.status.Render(m.helpText()))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) helpText() string {
	switch {
	case m.Typing:
		return "enter to run • esc to cancel"
	case m.ShowingInventory:
		return "↑/↓ to choose • enter to use • esc to close"
	default:
		return "space pet • h hold • i bag • : command • q quit"
	}
}

func (m Model) renderBars() string {
	stats := m.Snapshot.Stats
	lines := []string{
		fmt.Sprintf("😊 %s %3d%%", renderBar(stats.Happiness, happinessColor), stats.Happiness),
		fmt.Sprintf("🍽  %s %3d%%", renderBar(stats.Hunger, hungerColor), stats.Hunger),
	}
	return gameStyles.menuBox.Render(strings.Join(lines, "\n"))
}

// renderBar draws a progress bar for a stat value
func renderBar(value int, color string) string {
	filled := pet.Clamp(value) * barWidth / pet.MaxStat
	fill := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(strings.Repeat("█", filled))
	empty := lipgloss.NewStyle().Foreground(lipgloss.Color(backgroundColor)).Render(strings.Repeat("░", barWidth-filled))
	return fill + empty
}

// PetColor blends the accent colour over the background by the pet's
// vitality, so an unhappy pet looks faded.
func PetColor(happiness int) lipgloss.Color {
	full, _ := colorful.Hex(accentColor)
	faded, _ := colorful.Hex(backgroundColor)
	return lipgloss.Color(faded.BlendRgb(full, pet.Vitality(happiness)).Clamped().Hex())
}

func (m Model) renderPet() string {
	style := lipgloss.NewStyle().
		Foreground(PetColor(m.Snapshot.Stats.Happiness)).
		Bold(true).
		Padding(0, 2)
	return style.Render(petFace)
}

func (m Model) renderAnimation() string {
	animStyle := lipgloss.NewStyle().
		Foreground(PetColor(m.Snapshot.Stats.Happiness)).
		Bold(true).
		Padding(0, 2)
	return animStyle.Render(GetAnimationFrame(m.Animation))
}

// ItemIcon returns the emoji shown for an item icon identifier
func ItemIcon(icon string) string {
	switch icon {
	case pet.ToyIcon:
		return "🧶"
	case pet.FoodIcon:
		return "🍔"
	case "set_meal":
		return "🐟"
	default:
		return "🎁"
	}
}

func (m Model) renderInventory() string {
	header := gameStyles.title.Render("🎒 Bag")
	if len(m.Snapshot.Inventory) == 0 {
		return gameStyles.modal.Render(lipgloss.JoinVertical(lipgloss.Left, header, "", "Empty! Check back soon."))
	}

	var items []string
	for i, item := range m.Snapshot.Inventory {
		cursor := " "
		if m.InventoryChoice == i {
			cursor = ">"
		}
		items = append(items, fmt.Sprintf("%s %s %-6s %+d %s", cursor, ItemIcon(item.Icon), item.Name, item.Effect, item.Target))
	}
	return gameStyles.modal.Render(lipgloss.JoinVertical(lipgloss.Left, header, "", gameStyles.menu.Render(strings.Join(items, "\n"))))
}

func (m Model) renderCheatMenu() string {
	var menuItems []string
	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF0000")).
		Render("⚠️  CHEAT MENU ⚠️")

	for i, choice := range cheatMenuOptions {
		cursor := " "
		if m.CheatChoice == i {
			cursor = ">"
		}
		menuItems = append(menuItems, fmt.Sprintf("%s %s", cursor, choice))
	}

	sections := []string{
		header,
		"",
		gameStyles.menuBox.Render(strings.Join(menuItems, "\n")),
	}
	if m.Message != "" && time.Now().Before(m.MessageExpires) {
		sections = append(sections, "", gameStyles.status.Render(m.Message))
	}
	sections = append(sections, "", gameStyles.status.Render("Press 'c' or Esc to exit"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
