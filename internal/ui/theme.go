package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"gamifylife/internal/engine"
)

// GamifyLife theme (CLI + TUI).
// Kept small: reusable styles and a few emojis.

const (
	IconQuest     = "🗺️"
	IconSparkle   = "✨"
	IconPlus      = "➕"
	IconDone      = "✅"
	IconTrophy    = "🏆"
	IconBolt      = "⚡"
	IconInfo      = "ℹ️"
	IconWarn      = "⚠️"
	IconError     = "🧨"
	IconBox       = "📦"
	IconLoop      = "🔁"
	IconScroll    = "📜"
	IconUndo      = "↩️"
	IconGift      = "🎁"
	IconLock      = "🔒"
	IconClock     = "⏰"
	IconSkull     = "💀"
	IconTrash     = "🗑️"
	IconJournal   = "📓"
	IconChallenge = "🔥"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	ActiveTab   = lipgloss.NewStyle().Bold(true).Foreground(cGold).Underline(true)
	InactiveTab = lipgloss.NewStyle().Foreground(cMuted)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)

	BadgeLevelUp   = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("LEVEL UP")
	BadgeLevelDown = lipgloss.NewStyle().Bold(true).Foreground(cBad).Render("LEVEL DOWN")
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// StatusText renders a quest's state: failed wins over done.
func StatusText(completed, failed bool) string {
	switch {
	case failed:
		return Bad.Render("failed")
	case completed:
		return Good.Render("done")
	default:
		return Warn.Render("open")
	}
}

// KindIcon marks repeating quests.
func KindIcon(repeating bool) string {
	if repeating {
		return IconLoop
	}
	return IconQuest
}

// PopupText formats a point change the way the board and CLI show it,
// e.g. "+20 XP (+5 bonus)" or "-15 XP".
func PopupText(p engine.Popup) string {
	text := fmt.Sprintf("%+d XP", p.Value)
	if p.Bonus != 0 {
		text += fmt.Sprintf(" (%+d bonus)", p.Bonus)
	}
	if p.Value+p.Bonus < 0 {
		return Bad.Render(text)
	}
	return Good.Render(text)
}
