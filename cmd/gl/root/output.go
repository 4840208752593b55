package root

import (
	"fmt"
	"io"
	"strings"

	"gamifylife/internal/engine"
	"gamifylife/internal/ui"
)

// printPopups drains the store's popup queue onto one line.
func printPopups(w io.Writer, s *engine.Store) {
	popups := s.DrainPopups()
	if len(popups) == 0 {
		return
	}
	parts := make([]string, 0, len(popups))
	for _, p := range popups {
		parts = append(parts, ui.PopupText(p))
	}
	fmt.Fprintln(w, strings.Join(parts, "  "))
}

func printLevelChange(w io.Writer, res engine.ToggleResult) {
	if !res.LevelUp && !res.LevelDown {
		return
	}
	fmt.Fprintln(w, ui.LabelValue("Level", fmt.Sprintf("%d → %d", res.LevelBefore, res.LevelAfter)))
	if res.LevelUp {
		fmt.Fprintln(w, ui.BadgeLevelUp)
	} else {
		fmt.Fprintln(w, ui.Warn.Render(ui.IconWarn+" Level decreased"))
	}
}
