package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamifylife/internal/engine"
)

var wed = time.Date(2026, 10, 14, 10, 1, 0, 0, time.UTC)

func newTestModel(t *testing.T) (boardModel, *engine.Store) {
	t.Helper()
	now := wed
	s := engine.New(engine.WithClock(func() time.Time { return now }), engine.WithLocation(time.UTC))
	return newBoardModel(s), s
}

func press(t *testing.T, m boardModel, keys ...tea.KeyMsg) boardModel {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(boardModel)
	}
	return m
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var enter = tea.KeyMsg{Type: tea.KeyEnter}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "[----------]", progressBar(0, 500, 10))
	assert.Equal(t, "[#####-----]", progressBar(250, 500, 10))
	assert.Equal(t, "[##########]", progressBar(900, 500, 10))
	assert.Equal(t, "[---]", progressBar(-5, 0, 1))
}

func TestToggleQuestFromBoard(t *testing.T) {
	m, s := newTestModel(t)
	_, err := s.AddTask(engine.TaskInput{Text: "Read", Reward: "20"})
	require.NoError(t, err)

	m = press(t, m, enter)
	assert.Equal(t, 20, s.Points())
	assert.Contains(t, m.lastLog, `Completed "Read"`)
	require.Len(t, m.popups, 1)
	assert.Equal(t, 20, m.popups[0].popup.Value)
	assert.Empty(t, s.DrainPopups(), "board drained the queue")

	m = press(t, m, enter)
	assert.Equal(t, 0, s.Points())
	assert.Contains(t, m.lastLog, `Reopened "Read"`)
}

func TestTabsAndSelection(t *testing.T) {
	m, s := newTestModel(t)
	for _, name := range []string{"a", "b", "c"} {
		_, err := s.AddTask(engine.TaskInput{Text: name})
		require.NoError(t, err)
	}

	m = press(t, m, runes("j"), runes("j"), runes("j"))
	assert.Equal(t, 2, m.selected, "selection stops at the last row")

	m = press(t, m, runes("d"))
	assert.Len(t, s.Tasks(), 2)
	assert.Equal(t, 1, m.selected, "selection clamps after delete")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, tabChallenges, m.tab)
	assert.Equal(t, 0, m.selected)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab}, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, tabJournal, m.tab)

	m = press(t, m, runes("3"))
	assert.Equal(t, tabRewards, m.tab)
}

func TestShopBuyAndRedeem(t *testing.T) {
	m, s := newTestModel(t)
	_, err := s.AddReward(engine.RewardInput{Text: "Movie", Cost: "30"})
	require.NoError(t, err)
	m = press(t, m, runes("3"))

	m = press(t, m, enter)
	assert.Contains(t, m.lastLog, "Need 30 XP")
	assert.Empty(t, s.Inventory())

	s.UpdatePoints(40, 0)
	m = press(t, m, enter)
	assert.Equal(t, 10, s.Points())
	require.Len(t, s.Inventory(), 1)

	rows := m.rows()
	require.Len(t, rows, 2)
	assert.Equal(t, rowItem, rows[1].kind)

	m = press(t, m, runes("j"), enter)
	assert.Empty(t, s.Inventory())
	assert.Equal(t, 10, s.Points(), "redeeming is free")
	assert.Contains(t, m.lastLog, `Enjoy "Movie"`)
}

func TestExpiredNoticeAndPopupExpiry(t *testing.T) {
	m, s := newTestModel(t)
	s.UpdatePoints(10, 0)
	_, err := s.AddTask(engine.TaskInput{Text: "Call", DueTime: "09:00", Penalty: "4"})
	require.NoError(t, err)
	s.DrainPopups()

	res := s.CheckExpirations()
	next, _ := m.Update(expiredMsg{res: res})
	m = next.(boardModel)
	assert.Contains(t, m.lastLog, "Time's up!")
	require.Len(t, m.popups, 1)
	assert.Equal(t, -4, m.popups[0].popup.Value)

	next, _ = m.Update(tickMsg(wed.Add(popupTTL + time.Second)))
	m = next.(boardModel)
	assert.Empty(t, m.popups)
}

func TestViewShowsHeroHeader(t *testing.T) {
	m, s := newTestModel(t)
	s.UpdatePoints(520, 0)
	_, err := s.AddTask(engine.TaskInput{Text: "Walk"})
	require.NoError(t, err)

	view := m.View()
	assert.Contains(t, view, "Level 2")
	assert.Contains(t, view, "20/500")
	assert.Contains(t, view, "Today 0/1")
	assert.True(t, strings.Contains(view, "Walk"))
}
