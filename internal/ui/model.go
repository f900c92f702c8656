package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"pocketpet/internal/command"
	"pocketpet/internal/pet"
)

// MessageDuration is how long feedback messages stay on screen
const MessageDuration = 3 * time.Second

// Model represents the game screen state
type Model struct {
	Engine   *pet.Engine
	Snapshot pet.Snapshot
	Updates  <-chan pet.Snapshot

	Quitting         bool
	ShowingInventory bool
	InventoryChoice  int
	Typing           bool
	Input            string
	InCheatMenu      bool
	CheatChoice      int
	Message          string
	MessageExpires   time.Time
	Animation        Animation
}

type stateMsg pet.Snapshot
type animTickMsg struct {
	started time.Time
}
type messageExpiredMsg struct {
	expires time.Time
}

// NewModel creates a game model bound to engine. The returned function
// unsubscribes the model from engine notifications.
func NewModel(engine *pet.Engine) (Model, func()) {
	updates := make(chan pet.Snapshot, 1)
	unsubscribe := engine.Subscribe(func(s pet.Snapshot) {
		// Keep only the newest snapshot; the UI never needs the backlog
		for {
			select {
			case updates <- s:
				return
			default:
			}
			select {
			case <-updates:
			default:
			}
		}
	})

	return Model{
		Engine:   engine,
		Snapshot: engine.Snapshot(),
		Updates:  updates,
	}, unsubscribe
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return waitForUpdate(m.Updates)
}

func waitForUpdate(updates <-chan pet.Snapshot) tea.Cmd {
	if updates == nil {
		return nil
	}
	return func() tea.Msg {
		s, ok := <-updates
		if !ok {
			return nil
		}
		return stateMsg(s)
	}
}

func animTick(start time.Time) tea.Cmd {
	return tea.Tick(AnimationFrameDuration, func(t time.Time) tea.Msg {
		return animTickMsg{started: start}
	})
}

func clearMessage(expires time.Time) tea.Cmd {
	return tea.Tick(time.Until(expires), func(time.Time) tea.Msg {
		return messageExpiredMsg{expires: expires}
	})
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	expires := m.MessageExpires
	next, cmd := m.update(msg)

	// A new message gets its own timer so it disappears without other input
	if nm, ok := next.(Model); ok && nm.Message != "" && !nm.MessageExpires.Equal(expires) {
		return nm, tea.Batch(cmd, clearMessage(nm.MessageExpires))
	}
	return next, cmd
}

func (m Model) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		switch {
		case m.Typing:
			return m.updateTyping(msg)
		case m.InCheatMenu:
			return m.updateCheatMenu(msg)
		case m.ShowingInventory:
			return m.updateInventory(msg)
		}

		switch msg.String() {
		case "q":
			m.Quitting = true
			return m, tea.Quit
		case " ", "t":
			return m, m.tap()
		case "h":
			return m, m.longPress()
		case "i", "b":
			m.openInventory()
		case ":", "/":
			m.Typing = true
			m.Input = ""
		case "c":
			m.InCheatMenu = true
			m.CheatChoice = 0
		}

	case stateMsg:
		if msg.Version > m.Snapshot.Version {
			m.Snapshot = pet.Snapshot(msg)
			m.clampInventoryChoice()
		}
		return m, waitForUpdate(m.Updates)

	case messageExpiredMsg:
		if m.MessageExpires.Equal(msg.expires) {
			m.Message = ""
		}
		return m, nil

	case animTickMsg:
		// Drop ticks that belong to an older animation (e.g., if a new action started)
		if m.Animation.Type == AnimNone || !m.Animation.StartTime.Equal(msg.started) {
			return m, nil
		}

		m.Animation.Frame++
		if IsAnimationComplete(m.Animation) {
			m.Animation = Animation{}
			return m, nil
		}

		return m, animTick(m.Animation.StartTime)
	}

	return m, nil
}

func (m Model) updateTyping(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.Typing = false
		m.Input = ""
	case tea.KeyEnter:
		m.Typing = false
		raw := m.Input
		m.Input = ""
		return m, m.runCommand(raw)
	case tea.KeyBackspace:
		if r := []rune(m.Input); len(r) > 0 {
			m.Input = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.Input += " "
	case tea.KeyRunes:
		m.Input += string(msg.Runes)
	}
	return m, nil
}

func (m Model) updateInventory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.Quitting = true
		return m, tea.Quit
	case "esc", "i", "b", "x":
		m.ShowingInventory = false
	case "up", "k":
		if m.InventoryChoice > 0 {
			m.InventoryChoice--
		}
	case "down", "j":
		if m.InventoryChoice < len(m.Snapshot.Inventory)-1 {
			m.InventoryChoice++
		}
	case "enter", " ":
		if m.InventoryChoice < len(m.Snapshot.Inventory) {
			return m, m.useItem(m.Snapshot.Inventory[m.InventoryChoice])
		}
	}
	return m, nil
}

func (m Model) updateCheatMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.Quitting = true
		return m, tea.Quit
	case "c", "esc":
		m.InCheatMenu = false
	case "up", "k":
		if m.CheatChoice > 0 {
			m.CheatChoice--
		}
	case "down", "j":
		if m.CheatChoice < len(cheatMenuOptions)-1 {
			m.CheatChoice++
		}
	case "enter", " ":
		m.executeCheat()
	}
	return m, nil
}

func (m *Model) refresh() {
	m.Snapshot = m.Engine.Snapshot()
	m.clampInventoryChoice()
}

func (m *Model) clampInventoryChoice() {
	if m.InventoryChoice >= len(m.Snapshot.Inventory) {
		m.InventoryChoice = max(0, len(m.Snapshot.Inventory)-1)
	}
}

func (m *Model) setMessage(msg string) {
	m.Message = msg
	m.MessageExpires = time.Now().Add(MessageDuration)
}

func (m *Model) startAnimation(animType AnimationType) tea.Cmd {
	m.Animation = Animation{
		Type:      animType,
		Frame:     0,
		StartTime: time.Now(),
	}
	return animTick(m.Animation.StartTime)
}

func (m *Model) openInventory() {
	m.ShowingInventory = true
	m.InventoryChoice = 0
}

func (m *Model) tap() tea.Cmd {
	m.Engine.Tap()
	m.refresh()
	m.setMessage("😸 Meow!")
	return m.startAnimation(AnimTap)
}

func (m *Model) longPress() tea.Cmd {
	m.Engine.LongPress()
	m.refresh()
	m.setMessage("😻 Purrrr...")
	return m.startAnimation(AnimLongPress)
}

func (m *Model) useItem(item pet.Item) tea.Cmd {
	used, ok := m.Engine.Consume(item.ID)
	m.refresh()
	if !ok {
		m.setMessage("That " + item.Name + " is already gone")
		return nil
	}
	m.ShowingInventory = false
	m.setMessage(ItemIcon(used.Icon) + " " + used.Name + "!")
	if used.Target == pet.StatHunger {
		return m.startAnimation(AnimFeed)
	}
	return m.startAnimation(AnimPlay)
}

func (m *Model) runCommand(raw string) tea.Cmd {
	intent := command.Parse(raw, m.Engine.Inventory())
	if !intent.OK() {
		m.setMessage(intent.Message)
		return nil
	}

	switch intent.Action {
	case command.ActionTap:
		return m.tap()
	case command.ActionLongPress:
		return m.longPress()
	case command.ActionUse:
		return m.useItem(intent.Item)
	case command.ActionInventory:
		m.openInventory()
		return nil
	case command.ActionQuit:
		m.Quitting = true
		return tea.Quit
	default:
		m.setMessage(command.Execute(m.Engine, intent))
		return nil
	}
}

var cheatMenuOptions = []string{
	"Max All Stats",
	"Min All Stats (Critical)",
	"Decay Tick Now",
	"Replenish Items Now",
	"Back",
}

func (m *Model) executeCheat() {
	switch m.CheatChoice {
	case 0: // Max All Stats
		for _, stat := range pet.AllStats {
			m.Engine.ApplyDelta(stat, pet.MaxStat)
		}
		m.setMessage("🎮 All stats maxed!")
	case 1: // Min All Stats (Critical)
		for _, stat := range pet.AllStats {
			m.Engine.ApplyDelta(stat, 10-m.Engine.CurrentValue(stat))
		}
		m.setMessage("🎮 Stats set to critical!")
	case 2: // Decay Tick Now
		m.Engine.DecayTick()
		m.setMessage("🎮 Time passes...")
	case 3: // Replenish Items Now
		if added := m.Engine.EnsureDefaults(); len(added) > 0 {
			m.setMessage("🎮 Bag refilled!")
		} else {
			m.setMessage("🎮 Bag already full")
		}
	case 4: // Back
		m.InCheatMenu = false
	}
	m.refresh()
}
