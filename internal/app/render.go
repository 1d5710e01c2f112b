package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/henri123lemoine/gallery/internal/compose"
	"github.com/henri123lemoine/gallery/internal/config"
	"github.com/henri123lemoine/gallery/internal/debug"
)

// settleRounds bounds how many rounds of produced results RenderFrame
// waits for.
const settleRounds = 3

// RenderFrame composes the configured demo at the given size without a
// terminal and returns the full view. Pending producers such as image loads
// run to completion first, so the frame shows their final state. Timers are
// never started.
func RenderFrame(cfg *config.Config, deps Deps, width, height int) (string, error) {
	m, err := create(cfg, deps, true)
	if err != nil {
		return "", err
	}
	defer debug.Timed("render " + m.demo.ID)()

	next, _ := m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	m = next.(Model)

	for round := 0; round < settleRounds && len(m.held) > 0; round++ {
		held := m.held
		m.held = nil
		for _, c := range held {
			for _, msg := range collectProduced(c) {
				next, _ := m.Update(msg)
				m = next.(Model)
			}
		}
	}
	return m.View(), nil
}

// collectProduced runs the tree commands inside cmd and keeps the produced
// results.
func collectProduced(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, collectProduced(c)...)
		}
		return out
	case compose.ProducedMsg:
		return []tea.Msg{msg}
	}
	return nil
}
