package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// panelWidth is the total outer width of the main panel. borderStyle adds
// a border (1+1) and padding (2+2); Width() includes padding only.
const (
	panelWidth         = 80
	panelWidthForStyle = panelWidth - 2
	panelContentWidth  = panelWidth - 6
)

// View renders the TUI.
func (m Model) View() string {
	var b strings.Builder

	vpos := lipgloss.Top
	if m.Indicator != nil {
		vpos, _ = placement(m.Indicator.Anchor())
	}
	indicator := func(at lipgloss.Position) {
		if m.Indicator != nil && vpos == at {
			b.WriteString(m.Indicator.Render(panelContentWidth, m.theme.Background))
			b.WriteString("\n")
		}
	}

	indicator(lipgloss.Top)

	titleText := "  MUTECUE  "
	barTotal := panelContentWidth - len(titleText)
	barLeft := barTotal / 2
	title := strings.Repeat("▓", barLeft) + titleText + strings.Repeat("▓", barTotal-barLeft)
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Microphone:  "))
	b.WriteString(m.renderBadge())
	b.WriteString("\n\n")

	indicator(lipgloss.Center)

	b.WriteString(labelStyle.Render("Hotkey:  "))
	if m.Editing {
		b.WriteString(inputStyle.Render(m.input.View()))
	} else if m.Hook != nil {
		b.WriteString(hotkeyStyle.Render(m.Hook.Combination().String()))
	} else {
		b.WriteString(bodyStyle.Render("(not installed)"))
	}
	b.WriteString("\n")

	if m.LastError != "" {
		errText := m.LastError
		if len(errText) > panelContentWidth {
			errText = errText[:panelContentWidth-3] + "..."
		}
		b.WriteString(errorStyle.Render(errText))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.renderHelp())

	if m.DebugMode || len(m.DebugEntries) > 0 {
		b.WriteString("\n\n")
		b.WriteString(m.renderDebugPanel())
	}

	if vpos == lipgloss.Bottom {
		b.WriteString("\n\n")
		indicator(lipgloss.Bottom)
	}

	return borderStyle.Width(panelWidthForStyle).Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) renderHelp() string {
	var parts []string
	for _, kb := range m.keys.shortHelp(m.Editing) {
		h := kb.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return helpStyle.Render(strings.Join(parts, " • "))
}

const debugPanelMaxLines = 5

// Debug table column widths. Row content must fit within panelContentWidth.
const (
	colTimeWidth     = 10
	colCategoryWidth = 10
	colSepWidth      = 3 // " │ "
	colMsgWidth      = panelContentWidth - colTimeWidth - colCategoryWidth - colSepWidth*2
)

func (m Model) renderDebugPanel() string {
	sep := debugSepStyle.Render(" │ ")
	rule := debugRuleStyle.Render(strings.Repeat("─", panelContentWidth))

	var db strings.Builder
	db.WriteString(debugTitleStyle.Render("Log"))
	db.WriteString("\n")
	db.WriteString(rule)
	db.WriteString("\n")
	db.WriteString(
		debugHeaderStyle.Width(colTimeWidth).Render("TIME") +
			sep +
			debugHeaderStyle.Width(colCategoryWidth).Render("TYPE") +
			sep +
			debugHeaderStyle.Width(colMsgWidth).Render("MESSAGE"))
	db.WriteString("\n")
	db.WriteString(rule)

	entries := m.DebugEntries
	if len(entries) > debugPanelMaxLines {
		entries = entries[len(entries)-debugPanelMaxLines:]
	}
	for _, entry := range entries {
		db.WriteString("\n")
		db.WriteString(
			debugTimeStyle.Width(colTimeWidth).Render(truncate(entry.Time, colTimeWidth, false)) +
				sep +
				debugCategoryStyle.Width(colCategoryWidth).Render(truncate(entry.Category, colCategoryWidth, false)) +
				sep +
				debugMsgStyle.Width(colMsgWidth).Render(truncate(entry.Message, colMsgWidth, true)))
	}

	return db.String()
}

func truncate(s string, width int, ellipsis bool) string {
	if len(s) <= width {
		return s
	}
	if ellipsis {
		return s[:width-3] + "..."
	}
	return s[:width]
}

func (m Model) renderStatusBar() string {
	startup := statusBadStyle.Render("off")
	if m.Config.RunAtStartup {
		startup = statusOkStyle.Render("on")
	}
	theme := helpStyle.Render("  Theme: " + m.theme.Name)
	if !m.statusChecked {
		return helpStyle.Render("Device: ...  Startup: ") + startup + theme
	}
	var mic string
	if m.MicDetected {
		mic = statusOkStyle.Render("✓")
		if m.MicDeviceName != "" {
			mic += helpStyle.Render(" (" + m.MicDeviceName + ")")
		}
	} else {
		mic = statusBadStyle.Render("✗")
	}
	return helpStyle.Render("Device: ") + mic + helpStyle.Render("  Startup: ") + startup + theme
}

func (m Model) renderBadge() string {
	switch {
	case !m.MuteKnown:
		return unknownBadge.Render("● Unknown")
	case m.Muted:
		return mutedBadge.Render("● Muted")
	default:
		return liveBadge.Render("● Live")
	}
}
