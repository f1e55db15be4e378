package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/skyflight/internal/config"
)

var (
	settingOnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	settingOffStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// SettingsModel toggles the audio settings. Changes apply to the audio gate
// immediately and are saved when the screen is left.
type SettingsModel struct {
	svc      Services
	settings config.Settings
	width    int
	height   int
	done     bool
	quitting bool
}

// NewSettingsModel opens the settings screen with the gate's current values.
func NewSettingsModel(svc Services, width, height int) SettingsModel {
	svc = svc.withDefaults()
	return SettingsModel{
		svc:      svc,
		settings: svc.Audio.Settings(),
		width:    width,
		height:   height,
	}
}

// Init implements tea.Model.
func (m SettingsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the settings screen.
func (m SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "s":
			m.settings.Sound = !m.settings.Sound
			m.svc.Audio.SetSettings(m.settings)
		case "h":
			m.settings.HitSound = !m.settings.HitSound
			m.svc.Audio.SetSettings(m.settings)
		case "esc", "b", "enter":
			m.save()
			m.done = true
		case "q", "ctrl+c":
			m.save()
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// save persists the settings; failures are logged and otherwise ignored.
func (m SettingsModel) save() {
	if m.svc.SettingsPath == "" {
		return
	}
	if err := config.SaveSettings(m.svc.SettingsPath, m.settings); err != nil {
		m.svc.Logger.Warn("cannot save settings", "path", m.svc.SettingsPath, "error", err)
	}
}

// View renders the settings screen.
func (m SettingsModel) View() string {
	if m.quitting {
		return ""
	}

	onOff := func(v bool) string {
		if v {
			return settingOnStyle.Render("ON")
		}
		return settingOffStyle.Render("OFF")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("SETTINGS"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Sound:      "+onOff(m.settings.Sound)+"   (S)", m.width))
	b.WriteString("\n")
	b.WriteString(centerText("Hit sound:  "+onOff(m.settings.HitSound)+"   (H)", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(menuFooterStyle.Render("Esc: Back"), m.width))
	b.WriteString("\n")
	return b.String()
}

// Settings returns the edited settings.
func (m SettingsModel) Settings() config.Settings {
	return m.settings
}

// Done reports whether the user left the screen.
func (m SettingsModel) Done() bool {
	return m.done
}

// IsQuitting returns true if user requested to quit.
func (m SettingsModel) IsQuitting() bool {
	return m.quitting
}
