package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gamifylife/internal/engine"
	"gamifylife/internal/notify"
	"gamifylife/internal/ui"
)

const popupTTL = 3 * time.Second

type tab int

const (
	tabQuests tab = iota
	tabChallenges
	tabRewards
	tabJournal
	tabCount
)

var tabNames = [tabCount]string{"Quests", "Challenges", "Rewards", "Journal"}

type rowKind int

const (
	rowTask rowKind = iota
	rowChallenge
	rowReward
	rowItem
	rowLog
)

type row struct {
	kind rowKind
	id   string
	name string
	text string
}

type shownPopup struct {
	popup engine.Popup
	until time.Time
}

type boardModel struct {
	store *engine.Store

	width  int
	height int

	tab      tab
	selected int

	popups  []shownPopup
	lastLog string
}

// changedMsg is sent after a mutation made outside the event loop (sweeps).
type changedMsg struct{ op engine.Op }

type reminderMsg struct{ r notify.Reminder }

type expiredMsg struct{ res engine.ExpireResult }

type tickMsg time.Time

func newBoardModel(store *engine.Store) boardModel {
	return boardModel{
		store:   store,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		m.prunePopups(time.Time(msg))
		return m, tick()
	case changedMsg:
		m.collectPopups()
		m.clampSelection()
		return m, nil
	case reminderMsg:
		m.lastLog = fmt.Sprintf("%s %s: %s", ui.IconClock, msg.r.Title, msg.r.Body)
		return m, nil
	case expiredMsg:
		m.lastLog = fmt.Sprintf("%s Time's up! %d quest(s) failed, -%d XP.", ui.IconSkull, len(msg.res.Expired), msg.res.Penalty)
		m.collectPopups()
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m boardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "tab", "right", "l":
		m.tab = (m.tab + 1) % tabCount
		m.selected = 0
	case "shift+tab", "left", "h":
		m.tab = (m.tab + tabCount - 1) % tabCount
		m.selected = 0
	case "1", "2", "3", "4":
		m.tab = tab(msg.String()[0] - '1')
		m.selected = 0
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(m.rows())-1 {
			m.selected++
		}
	case "enter", " ", "c":
		if r, ok := m.current(); ok {
			m.activate(r)
		}
	case "d", "x":
		if r, ok := m.current(); ok {
			m.remove(r)
		}
	case "r":
		n := m.store.CheckForResets()
		m.lastLog = fmt.Sprintf("Refreshed at %s (%d reset).", m.store.Now().In(m.store.Location()).Format("15:04:05"), n)
	}
	m.collectPopups()
	m.clampSelection()
	return m, nil
}

// activate toggles quests and challenges, buys listings and redeems items.
func (m *boardModel) activate(r row) {
	switch r.kind {
	case rowTask:
		res := m.store.ToggleTask(r.id)
		switch {
		case !res.Found:
			return
		case res.Failed:
			m.lastLog = "Failed quests are locked until they reset."
		case res.Completed:
			m.lastLog = fmt.Sprintf("%s Completed %q (streak %d)", ui.IconDone, r.name, res.Streak)
		default:
			m.lastLog = fmt.Sprintf("%s Reopened %q", ui.IconUndo, r.name)
		}
		m.noteLevel(res)
	case rowChallenge:
		res := m.store.ToggleChallenge(r.id)
		if !res.Found {
			return
		}
		if res.Completed {
			m.lastLog = fmt.Sprintf("%s Challenge done: %q (streak %d)", ui.IconChallenge, r.name, res.Streak)
		} else {
			m.lastLog = fmt.Sprintf("%s Challenge reopened: %q", ui.IconUndo, r.name)
		}
		m.noteLevel(res)
	case rowReward:
		res, err := m.store.BuyReward(r.id)
		switch {
		case err != nil:
			m.lastLog = "Buy failed: " + err.Error()
		case res.Locked:
			m.lastLog = fmt.Sprintf("%s Need %d XP, you have %d.", ui.IconLock, res.Cost, res.Points)
		default:
			m.lastLog = fmt.Sprintf("%s Bought %q", ui.IconGift, res.Item.Text)
		}
	case rowItem:
		if item, ok := m.store.RedeemInventoryItem(r.id); ok {
			m.lastLog = fmt.Sprintf("%s Enjoy %q!", ui.IconSparkle, item.Text)
		}
	case rowLog:
		m.lastLog = r.text
	}
}

func (m *boardModel) remove(r row) {
	removed := false
	switch r.kind {
	case rowTask:
		removed = m.store.DeleteTask(r.id)
	case rowChallenge:
		removed = m.store.DeleteChallenge(r.id)
	case rowReward:
		removed = m.store.DeleteReward(r.id)
	case rowItem:
		m.lastLog = "Redeem items with enter."
		return
	case rowLog:
		removed = m.store.DeleteLogEntry(r.id)
	}
	if removed {
		m.lastLog = fmt.Sprintf("%s Deleted %q", ui.IconTrash, r.name)
	}
}

func (m *boardModel) noteLevel(res engine.ToggleResult) {
	switch {
	case res.LevelUp:
		m.lastLog += fmt.Sprintf("  %s %d", ui.BadgeLevelUp, res.LevelAfter)
	case res.LevelDown:
		m.lastLog += fmt.Sprintf("  %s %d", ui.BadgeLevelDown, res.LevelAfter)
	}
}

func (m *boardModel) collectPopups() {
	until := m.store.Now().Add(popupTTL)
	for _, p := range m.store.DrainPopups() {
		m.popups = append(m.popups, shownPopup{popup: p, until: until})
	}
}

func (m *boardModel) prunePopups(now time.Time) {
	kept := m.popups[:0]
	for _, p := range m.popups {
		if now.Before(p.until) {
			kept = append(kept, p)
		}
	}
	m.popups = kept
}

func (m *boardModel) clampSelection() {
	n := len(m.rows())
	if m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m boardModel) current() (row, bool) {
	rows := m.rows()
	if m.selected < 0 || m.selected >= len(rows) {
		return row{}, false
	}
	return rows[m.selected], true
}

func (m boardModel) rows() []row {
	var out []row
	switch m.tab {
	case tabQuests:
		for _, t := range m.store.TodayTasks() {
			due := ""
			if t.DueDisplay != "" {
				due = " " + ui.IconClock + " " + t.DueDisplay
			}
			text := fmt.Sprintf("%s %s  +%d%s  %s", ui.KindIcon(t.IsRepeating()), t.Text, t.Reward, due, ui.StatusText(t.Completed, t.Failed))
			if t.Streak > 0 {
				text += ui.Muted.Render(fmt.Sprintf("  streak %d", t.Streak))
			}
			out = append(out, row{kind: rowTask, id: t.ID, name: t.Text, text: text})
		}
	case tabChallenges:
		for _, c := range m.store.Challenges() {
			text := fmt.Sprintf("%s [%s] %s  +%d  %s", ui.IconChallenge, c.Type, c.Title, c.Reward, ui.StatusText(c.Completed, false))
			if c.Streak > 0 {
				text += ui.Muted.Render(fmt.Sprintf("  streak %d", c.Streak))
			}
			out = append(out, row{kind: rowChallenge, id: c.ID, name: c.Title, text: text})
		}
	case tabRewards:
		points := m.store.Points()
		for _, r := range m.store.Rewards() {
			icon := ui.IconGift
			if points < r.Cost {
				icon = ui.IconLock
			}
			out = append(out, row{kind: rowReward, id: r.ID, name: r.Text, text: fmt.Sprintf("%s %s  %d XP", icon, r.Text, r.Cost)})
		}
		for _, it := range m.store.Inventory() {
			out = append(out, row{kind: rowItem, id: it.InstanceID, name: it.Text, text: fmt.Sprintf("%s %s  %s", ui.IconBox, it.Text, ui.Muted.Render("bought "+it.PurchaseDate))})
		}
	case tabJournal:
		for _, e := range m.store.Logs() {
			out = append(out, row{kind: rowLog, id: e.ID, name: e.Date, text: fmt.Sprintf("%s %s %s  %s", ui.IconJournal, e.Date, e.Timestamp, journalSummary(e.Learned, e.Missed, e.Notes))})
		}
	}
	return out
}

func journalSummary(learned, missed, notes string) string {
	var parts []string
	if learned != "" {
		parts = append(parts, "learned: "+learned)
	}
	if missed != "" {
		parts = append(parts, "missed: "+missed)
	}
	if notes != "" {
		parts = append(parts, "notes: "+notes)
	}
	return strings.Join(parts, " | ")
}

func (m boardModel) View() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")
	b.WriteString(m.renderMain())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m boardModel) renderHeader() string {
	level := m.store.Level()
	points := m.store.Points()
	threshold := m.store.LevelThreshold()
	done, total := m.store.TodayQuests()
	into := m.store.XPTowardsNext()
	bar := progressBar(into, threshold, 30)
	clock := m.store.Now().In(m.store.Location()).Format("15:04")
	return fmt.Sprintf("%s | Level %d | %d XP %s %d/%d | Today %d/%d | %s",
		ui.Title.Render("GamifyLife"), level, points, bar, into, threshold, done, total, clock)
}

func (m boardModel) renderTabs() string {
	parts := make([]string, 0, tabCount)
	for i, name := range tabNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if tab(i) == m.tab {
			parts = append(parts, ui.ActiveTab.Render(label))
		} else {
			parts = append(parts, ui.InactiveTab.Render(label))
		}
	}
	return strings.Join(parts, "   ")
}

func (m boardModel) renderMain() string {
	rows := m.rows()
	if len(rows) == 0 {
		return ui.Muted.Render(emptyHint(m.tab))
	}
	lines := make([]string, 0, len(rows))
	for i, r := range rows {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		lines = append(lines, cursor+r.text)
	}
	return strings.Join(lines, "\n")
}

func emptyHint(t tab) string {
	switch t {
	case tabQuests:
		return "(no quests today, add one with `gl add`)"
	case tabChallenges:
		return "(no challenges, add one with `gl challenge add`)"
	case tabRewards:
		return "(shop is empty, add one with `gl reward add`)"
	default:
		return "(no entries, write one with `gl log add`)"
	}
}

func (m boardModel) renderFooter() string {
	var popups []string
	for _, p := range m.popups {
		popups = append(popups, ui.PopupText(p.popup))
	}
	keys := ui.Muted.Render("tab: switch  j/k: move  enter: toggle/buy/redeem  d: delete  r: refresh  q: quit")
	line := m.lastLog
	if len(popups) > 0 {
		line = strings.Join(popups, "  ") + "  " + line
	}
	return "\n" + line + "\n" + keys
}

func progressBar(value int, total int, width int) string {
	if total <= 0 {
		total = 1
	}
	if width <= 3 {
		width = 3
	}
	if value < 0 {
		value = 0
	}
	if value > total {
		value = total
	}
	ratio := float64(value) / float64(total)
	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}
